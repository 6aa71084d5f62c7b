package survey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevin-luna/cursito-api/internal/models"
)

type sectionShape struct {
	title string
	types []QuestionType
}

func shapeOf(c *Catalog) []sectionShape {
	var out []sectionShape
	for _, s := range c.Sections {
		shape := sectionShape{title: s.Title}
		for _, q := range s.Questions {
			shape.types = append(shape.types, q.Type)
		}
		out = append(out, shape)
	}
	return out
}

func repeat(t QuestionType, n int) []QuestionType {
	out := make([]QuestionType, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func TestEmbeddedCatalogsMatchSurveyStructure(t *testing.T) {
	reg := MustLoadRegistry()

	followUp, err := reg.Catalog(models.SurveyFollowUp)
	require.NoError(t, err)
	require.Equal(t, []sectionShape{
		{title: "Aplicación del conocimiento", types: repeat(QuestionScale, 3)},
		{title: "Beneficios del curso", types: []QuestionType{QuestionMultiSelect}},
		{title: "Obstáculos", types: []QuestionType{QuestionMultiSelect, QuestionFreeText}},
		{title: "Comentarios", types: []QuestionType{QuestionFreeText}},
	}, shapeOf(followUp))
	require.Len(t, followUp.Sections[1].Questions[0].Options, 8)
	obstacles := followUp.Sections[2].Questions
	require.Len(t, obstacles[0].Options, 3)
	require.True(t, obstacles[0].AllowsNote())
	require.True(t, obstacles[1].Optional)

	opinion, err := reg.Catalog(models.SurveyOpinion)
	require.NoError(t, err)
	require.Equal(t, []sectionShape{
		{title: "Instructor", types: repeat(QuestionScale, 7)},
		{title: "Material didáctico", types: repeat(QuestionScale, 3)},
		{title: "Curso", types: repeat(QuestionScale, 4)},
		{title: "Infraestructura", types: repeat(QuestionScale, 6)},
		{title: "Comentarios", types: []QuestionType{QuestionFreeText}},
	}, shapeOf(opinion))

	for _, c := range []*Catalog{followUp, opinion} {
		require.Len(t, c.Scale, ScaleSize)
		require.Equal(t, "Totalmente de acuerdo", c.Scale[4])
		for i, q := range c.Questions() {
			require.Equal(t, i+1, q.Number, "questions are numbered in display order")
		}
	}
}

func TestRegistryUnknownSurvey(t *testing.T) {
	_, err := MustLoadRegistry().Catalog(models.SurveyKind("exit"))
	require.ErrorIs(t, err, ErrUnknownSurvey)

	var nilRegistry *Registry
	_, err = nilRegistry.Catalog(models.SurveyOpinion)
	require.ErrorIs(t, err, ErrUnknownSurvey)
}

func TestParseCatalogRejectsInvalidDefinitions(t *testing.T) {
	cases := map[string]string{
		"unknown kind": `kind: exit
sections: [{title: A, questions: [{number: 1, type: free_text, prompt: p}]}]`,
		"short scale": `kind: opinion
scale: [a, b, c]
sections: [{title: A, questions: [{number: 1, type: scale, prompt: p}]}]`,
		"duplicate number": `kind: opinion
sections: [{title: A, questions: [{number: 1, type: free_text, prompt: p}, {number: 1, type: free_text, prompt: q}]}]`,
		"multi-select without options": `kind: followup
sections: [{title: A, questions: [{number: 1, type: multi_select, prompt: p}]}]`,
		"repeated option": `kind: followup
sections: [{title: A, questions: [{number: 1, type: multi_select, prompt: p, options: [Uno, " uno "]}]}]`,
		"unknown type": `kind: followup
sections: [{title: A, questions: [{number: 1, type: ranking, prompt: p}]}]`,
		"empty section": `kind: followup
sections: [{title: A, questions: []}]`,
		"no sections": `kind: followup`,
		"not yaml": `kind: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	c := &Catalog{Kind: models.SurveyOpinion}
	_, err := NewRegistry(c, c)
	require.Error(t, err)
}
