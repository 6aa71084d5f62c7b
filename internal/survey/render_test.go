package survey

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/pkg/export"
)

func catalogFor(t *testing.T, kind models.SurveyKind) *Catalog {
	t.Helper()
	c, err := MustLoadRegistry().Catalog(kind)
	require.NoError(t, err)
	return c
}

// questionBlocks groups rendered blocks by the prompt that introduces them.
func questionBlocks(blocks []export.Block) (prompts []string, bodies map[string][]export.Block) {
	bodies = make(map[string][]export.Block)
	current := ""
	for _, b := range blocks {
		switch b.Kind {
		case export.BlockHeading:
			current = ""
		case export.BlockPrompt:
			current = b.Text
			prompts = append(prompts, b.Text)
		default:
			if current != "" {
				bodies[current] = append(bodies[current], b)
			}
		}
	}
	return prompts, bodies
}

func TestRenderWithoutAnswersMarksNothing(t *testing.T) {
	for _, kind := range models.SurveyKinds() {
		c := catalogFor(t, kind)
		blocks, err := RenderSections(c, Resolve(c, nil))
		require.NoError(t, err)

		for _, b := range blocks {
			require.Zero(t, b.SelectedCount(), "%s: %+v", kind, b)
			if b.Kind == export.BlockText {
				require.Equal(t, NoResponse, b.Text)
				require.True(t, b.Muted)
			}
		}
	}
}

func TestRenderEveryQuestionOnceInCatalogOrder(t *testing.T) {
	for _, kind := range models.SurveyKinds() {
		c := catalogFor(t, kind)
		partial := []models.Answer{answer(3, "2", 0), answer(1, "5", 0)}
		blocks, err := RenderSections(c, Resolve(c, partial))
		require.NoError(t, err)

		prompts, _ := questionBlocks(blocks)
		var want []string
		for _, q := range c.Questions() {
			want = append(want, prompt(q))
		}
		require.Equal(t, want, prompts)

		var headings []string
		for _, b := range blocks {
			require.NotEqual(t, export.BlockKind(0), b.Kind)
			if b.Kind == export.BlockHeading {
				headings = append(headings, b.Text)
			}
		}
		require.Len(t, headings, len(c.Sections))
	}
}

func TestRenderScaleMarksAtMostOne(t *testing.T) {
	c := catalogFor(t, models.SurveyOpinion)
	var answers []models.Answer
	for n := 1; n <= 20; n++ {
		answers = append(answers, answer(n, fmt.Sprint(n%5+1), 0))
	}
	blocks, err := RenderSections(c, Resolve(c, answers))
	require.NoError(t, err)

	for _, b := range blocks {
		if b.Kind == export.BlockOptions {
			require.Len(t, b.Options, ScaleSize)
			require.Equal(t, 1, b.SelectedCount())
		}
	}
}

func TestRenderOpinionWithOnlyInstructorAnswers(t *testing.T) {
	c := catalogFor(t, models.SurveyOpinion)
	var answers []models.Answer
	for n := 1; n <= 7; n++ {
		answers = append(answers, answer(n, fmt.Sprint(n%5+1), 0))
	}
	blocks, err := RenderSections(c, Resolve(c, answers))
	require.NoError(t, err)

	prompts, bodies := questionBlocks(blocks)
	require.Len(t, prompts, 21)
	for i, p := range prompts {
		number := i + 1
		body := bodies[p]
		require.Len(t, body, 1)
		switch {
		case number <= 7:
			require.Equal(t, 1, body[0].SelectedCount())
			for _, o := range body[0].Options {
				require.Equal(t, o.Label == c.Scale[number%5], o.Selected)
			}
		case number <= 20:
			require.Zero(t, body[0].SelectedCount())
		default:
			require.Equal(t, export.BlockText, body[0].Kind)
			require.Equal(t, NoResponse, body[0].Text)
		}
	}
}

func TestRenderMultiSelectWithNote(t *testing.T) {
	c := catalogFor(t, models.SurveyFollowUp)
	blocks, err := RenderSections(c, Resolve(c, []models.Answer{
		answer(5, `{"Falta de recursos o infraestructura": true, "note": "Sin proyector"}`, 0),
		answer(6, "Más horarios", 0),
	}))
	require.NoError(t, err)

	_, bodies := questionBlocks(blocks)
	obstacles := bodies[prompt(c.Sections[2].Questions[0])]
	require.Len(t, obstacles, 2)
	require.Equal(t, []export.Option{
		{Label: "Falta de tiempo"},
		{Label: "Falta de recursos o infraestructura", Selected: true},
		{Label: "Falta de apoyo institucional"},
	}, obstacles[0].Options)
	require.Equal(t, export.Block{Kind: export.BlockNote, Text: "Otro: Sin proyector"}, obstacles[1])

	help := bodies[prompt(c.Sections[2].Questions[1])]
	require.Equal(t, []export.Block{{Kind: export.BlockText, Text: "Más horarios"}}, help)
	require.Contains(t, prompt(c.Sections[2].Questions[1]), "(opcional)")
}

func TestRenderRejectsUnknownQuestionType(t *testing.T) {
	c := &Catalog{Sections: []Section{{Title: "A", Questions: []Question{{Number: 1, Type: "ranking", Prompt: "p"}}}}}
	_, err := RenderSections(c, Resolution{})
	require.Error(t, err)
}
