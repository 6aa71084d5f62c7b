package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/service"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
	"github.com/kevin-luna/cursito-api/pkg/jobs"
	"github.com/kevin-luna/cursito-api/pkg/storage"
)

type builderStub struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string][]error
}

func (b *builderStub) Build(_ context.Context, req dto.ReportRequest) (*service.ReportFile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.calls == nil {
		b.calls = map[string]int{}
	}
	b.calls[req.CourseID]++
	if errs := b.failures[req.CourseID]; len(errs) > 0 {
		b.failures[req.CourseID] = errs[1:]
		return nil, errs[0]
	}
	return &service.ReportFile{
		Filename:    "attendance_list_" + req.CourseID + ".csv",
		ContentType: models.ReportFormatCSV.ContentType(),
		Content:     []byte("No.,Nombre Completo\n"),
	}, nil
}

func TestBatchPlanExpandsSubjects(t *testing.T) {
	opts := &batchOptions{workerIDs: []string{"w1", " w2 ", "w1"}, courseIDs: []string{"c1", "", "c2"}, format: "PDF"}

	reqs, err := opts.plan(models.ReportEnrollmentCertificate, true, true)
	require.NoError(t, err)
	require.Len(t, reqs, 4)
	assert.Equal(t, dto.ReportRequest{Kind: models.ReportEnrollmentCertificate, WorkerID: "w1", CourseID: "c1", Format: models.ReportFormatPDF}, reqs[0])
	assert.Equal(t, "w2", reqs[3].WorkerID)
	assert.Equal(t, "c2", reqs[3].CourseID)

	reqs, err = opts.plan(models.ReportAttendance, false, true)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].WorkerID)

	reqs, err = opts.plan(models.ReportInstructorCourses, true, false)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[1].CourseID)

	_, err = (&batchOptions{}).plan(models.ReportAttendance, false, true)
	assert.EqualError(t, err, "attendance needs at least one --course")
	_, err = (&batchOptions{courseIDs: []string{"c1"}}).plan(models.ReportOpinionSurvey, true, true)
	assert.EqualError(t, err, "opinion-survey needs at least one --worker")
}

func TestRunBatchSavesFilesAndRetriesDataFailures(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	builder := &builderStub{failures: map[string][]error{
		"c2": {appErrors.Clone(appErrors.ErrInternal, "failed to load course")},
		"c3": {appErrors.Clone(appErrors.ErrNotFound, "course not found")},
	}}
	opts := &batchOptions{courseIDs: []string{"c1", "c2", "c3"}, format: "csv"}
	reqs, err := opts.plan(models.ReportAttendance, false, true)
	require.NoError(t, err)

	outcomes := runBatch(context.Background(), builder, store, reqs, jobs.QueueConfig{Workers: 2, MaxRetries: 2, RetryDelay: time.Millisecond})

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)
	assert.Equal(t, 2, outcomes[1].Attempts)
	assert.True(t, appErrors.Is(outcomes[2].Err, appErrors.ErrNotFound))
	assert.Equal(t, 1, outcomes[2].Attempts)
	assert.Equal(t, "attendance course=c3", outcomes[2].Job.ID)

	for _, id := range []string{"c1", "c2"} {
		data, err := os.ReadFile(filepath.Join(store.Dir(), "attendance", "attendance_list_"+id+".csv"))
		require.NoError(t, err)
		assert.Equal(t, "No.,Nombre Completo\n", string(data))
	}
	_, err = os.Stat(filepath.Join(store.Dir(), "attendance", "attendance_list_c3.csv"))
	assert.True(t, os.IsNotExist(err))

	out := &bytes.Buffer{}
	err = summarize(out, outcomes)
	assert.EqualError(t, err, "1 of 3 reports failed")
	assert.Contains(t, out.String(), "fail attendance course=c3: course not found")
	assert.Contains(t, out.String(), "2 built, 1 failed")
}

func TestPruneCommand(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "attendance", "old.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(old), 0o755))
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	past := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("y"), 0o644))

	out, err := run(t, "", "prune", "--dir", dir, "--older-than", "168h")
	require.NoError(t, err)
	assert.Equal(t, "attendance/old.pdf\n", out)

	_, err = run(t, "", "prune", "--dir", dir, "--older-than", "0s")
	assert.Error(t, err)
}
