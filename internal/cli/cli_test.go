package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/survey"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogCommandYAML(t *testing.T) {
	out, err := run(t, "", "catalog", "followup")
	require.NoError(t, err)

	var c survey.Catalog
	require.NoError(t, yaml.Unmarshal([]byte(out), &c))
	require.Equal(t, models.SurveyFollowUp, c.Kind)
	require.Len(t, c.Questions(), 7)
}

func TestCatalogCommandJSON(t *testing.T) {
	out, err := run(t, "", "catalog", "OPINION", "--output", "json")
	require.NoError(t, err)

	var c survey.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	require.Equal(t, "Encuesta de Opinión", c.Title)
	require.Len(t, c.Sections, 5)
}

func TestCatalogCommandErrors(t *testing.T) {
	_, err := run(t, "", "catalog", "exit")
	require.ErrorIs(t, err, survey.ErrUnknownSurvey)

	_, err = run(t, "", "catalog", "opinion", "--output", "xml")
	require.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "", "hash-password", "--cost", "4", "s3cret")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))

	out, err = run(t, "from-stdin\n", "hash-password", "--cost", "4")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("from-stdin")))

	_, err = run(t, "", "hash-password")
	require.Error(t, err)
}

func TestRenderRejectsUnknownKindBeforeConnecting(t *testing.T) {
	_, err := run(t, "", "render", "grades", "--course", "c-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown report kind")
}

func TestRenderOptionsRequest(t *testing.T) {
	opts := &renderOptions{workerID: "w-1", courseID: "c-1", format: "CSV"}
	req, err := opts.request("Attendance")
	require.NoError(t, err)
	require.Equal(t, models.ReportAttendance, req.Kind)
	require.Equal(t, models.ReportFormatCSV, req.Format)
}
