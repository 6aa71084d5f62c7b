package survey

import (
	"fmt"
	"strings"

	"github.com/kevin-luna/cursito-api/pkg/export"
)

// NoResponse is printed for a free-text question without text.
const NoResponse = "Sin respuesta"

// RenderSections lays out every catalog question in catalog order as paragraph and list blocks.
// Survey documents never contain tables.
func RenderSections(c *Catalog, res Resolution) ([]export.Block, error) {
	var blocks []export.Block
	for _, section := range c.Sections {
		blocks = append(blocks, export.Block{Kind: export.BlockHeading, Text: section.Title})
		for _, q := range section.Questions {
			blocks = append(blocks, export.Block{Kind: export.BlockPrompt, Text: prompt(q)})
			r := res.For(q.Number)

			switch q.Type {
			case QuestionScale:
				options := make([]export.Option, len(c.Scale))
				for i, label := range c.Scale {
					options[i] = export.Option{Label: label, Selected: r.Answered && label == r.Choice}
				}
				blocks = append(blocks, export.Block{Kind: export.BlockOptions, Options: options})
			case QuestionMultiSelect:
				chosen := make(map[string]struct{}, len(r.Selected))
				for _, s := range r.Selected {
					chosen[s] = struct{}{}
				}
				options := make([]export.Option, len(q.Options))
				for i, label := range q.Options {
					_, ok := chosen[label]
					options[i] = export.Option{Label: label, Selected: ok}
				}
				blocks = append(blocks, export.Block{Kind: export.BlockOptions, Options: options})
				if q.AllowsNote() && strings.TrimSpace(r.Note) != "" {
					blocks = append(blocks, export.Block{Kind: export.BlockNote, Text: fmt.Sprintf("%s: %s", q.Note, r.Note)})
				}
			case QuestionFreeText:
				if r.Text == "" {
					blocks = append(blocks, export.Block{Kind: export.BlockText, Text: NoResponse, Muted: true})
				} else {
					blocks = append(blocks, export.Block{Kind: export.BlockText, Text: r.Text})
				}
			default:
				return nil, fmt.Errorf("question %d: cannot render type %q", q.Number, q.Type)
			}
		}
	}
	return blocks, nil
}

func prompt(q Question) string {
	text := fmt.Sprintf("%d. %s", q.Number, q.Prompt)
	if q.Optional {
		text += " (opcional)"
	}
	return text
}
