package survey

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kevin-luna/cursito-api/internal/models"
)

// noteKey carries the free-text sub-answer inside a multi-select JSON object.
const noteKey = "note"

// Result is the resolved answer for one catalog question.
type Result struct {
	// Answered is true when a row existed and, for scale questions, mapped onto a label.
	Answered bool
	// Choice is the selected scale label.
	Choice string
	// Selected holds the chosen multi-select options in catalog order.
	Selected []string
	// Note is the free-text sub-answer of a multi-select question.
	Note string
	// Text is the free-text answer.
	Text string
}

// Resolution holds one Result per catalog question.
type Resolution struct {
	results map[int]Result
}

// For returns the result for a question number; unknown numbers resolve as unanswered.
func (r Resolution) For(number int) Result {
	return r.results[number]
}

// AnsweredCount returns how many catalog questions have an answer.
func (r Resolution) AnsweredCount() int {
	n := 0
	for _, res := range r.results {
		if res.Answered {
			n++
		}
	}
	return n
}

// Resolve matches answer rows to catalog questions.
// Rows for numbers outside the catalog are ignored. When several rows target the same
// question the latest RecordedAt wins, and on equal timestamps the later row wins.
func Resolve(c *Catalog, answers []models.Answer) Resolution {
	questions := c.Questions()
	known := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		known[q.Number] = struct{}{}
	}

	index := make(map[int]models.Answer, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionNumber]; !ok {
			continue
		}
		if prev, ok := index[a.QuestionNumber]; ok && a.RecordedAt.Before(prev.RecordedAt) {
			continue
		}
		index[a.QuestionNumber] = a
	}

	results := make(map[int]Result, len(questions))
	for _, q := range questions {
		a, ok := index[q.Number]
		if !ok {
			results[q.Number] = Result{}
			continue
		}
		results[q.Number] = resolveOne(c, q, a.Value)
	}
	return Resolution{results: results}
}

func resolveOne(c *Catalog, q Question, raw string) Result {
	switch q.Type {
	case QuestionScale:
		if label, ok := scaleChoice(c.Scale, raw); ok {
			return Result{Answered: true, Choice: label}
		}
		return Result{}
	case QuestionMultiSelect:
		labels, note := parseSelection(raw)
		res := Result{Answered: true, Selected: project(q.Options, labels)}
		if q.AllowsNote() {
			res.Note = note
		}
		return res
	case QuestionFreeText:
		return Result{Answered: true, Text: raw}
	default:
		return Result{}
	}
}

// scaleChoice accepts a 1-based position or the label itself.
func scaleChoice(scale []string, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= len(scale) {
			return scale[n-1], true
		}
		return "", false
	}
	key := normalize(trimmed)
	for _, label := range scale {
		if normalize(label) == key {
			return label, true
		}
	}
	return "", false
}

// parseSelection understands the three stored shapes of a multi-select answer:
// a JSON array, a JSON object of label to bool (with an optional "note"), or comma separated text.
// Numbers inside a JSON array are 1-based option positions.
func parseSelection(raw string) ([]string, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ""
	}

	var list []interface{}
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		labels := make([]string, 0, len(list))
		for _, item := range list {
			switch v := item.(type) {
			case string:
				labels = append(labels, v)
			case float64:
				labels = append(labels, "#"+strconv.Itoa(int(v)))
			}
		}
		return labels, ""
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		var labels []string
		var note string
		for k, v := range obj {
			switch val := v.(type) {
			case bool:
				if val {
					labels = append(labels, k)
				}
			case string:
				if k == noteKey {
					note = strings.TrimSpace(val)
				}
			}
		}
		return labels, note
	}

	return strings.Split(trimmed, ","), ""
}

// project keeps the labels that belong to options, returned in option order.
func project(options []string, labels []string) []string {
	chosen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if strings.HasPrefix(l, "#") {
			if n, err := strconv.Atoi(l[1:]); err == nil && n >= 1 && n <= len(options) {
				chosen[normalize(options[n-1])] = struct{}{}
			}
			continue
		}
		chosen[normalize(l)] = struct{}{}
	}
	selected := make([]string, 0, len(chosen))
	for _, o := range options {
		if _, ok := chosen[normalize(o)]; ok {
			selected = append(selected, o)
		}
	}
	return selected
}
