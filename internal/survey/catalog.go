// Package survey holds the questionnaire catalogs, maps raw answer rows onto them,
// and lays the result out as renderable blocks.
package survey

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kevin-luna/cursito-api/internal/models"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// ScaleSize is the number of labels on every scale question.
const ScaleSize = 5

// QuestionType is the semantic type of a question.
type QuestionType string

const (
	QuestionScale       QuestionType = "scale"
	QuestionMultiSelect QuestionType = "multi_select"
	QuestionFreeText    QuestionType = "free_text"
)

// ErrUnknownSurvey is returned when no catalog is registered for a survey kind.
var ErrUnknownSurvey = errors.New("unknown survey")

// Question is one catalog entry. Number is the survey-wide identity that answer rows reference.
type Question struct {
	Number   int          `yaml:"number" json:"number"`
	Type     QuestionType `yaml:"type" json:"type"`
	Prompt   string       `yaml:"prompt" json:"prompt"`
	Options  []string     `yaml:"options,omitempty" json:"options,omitempty"`
	Note     string       `yaml:"note,omitempty" json:"note,omitempty"`
	Optional bool         `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// AllowsNote reports whether a multi-select question accepts a free-text sub-answer.
func (q Question) AllowsNote() bool {
	return q.Type == QuestionMultiSelect && q.Note != ""
}

// Section groups questions under a title.
type Section struct {
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Catalog is the static definition of one survey.
type Catalog struct {
	Version  int               `yaml:"version" json:"version"`
	Kind     models.SurveyKind `yaml:"kind" json:"kind"`
	Title    string            `yaml:"title" json:"title"`
	Scale    []string          `yaml:"scale" json:"scale"`
	Sections []Section         `yaml:"sections" json:"sections"`
}

// Options returns the fixed option list a question is rendered with.
func (c *Catalog) Options(q Question) []string {
	if q.Type == QuestionScale {
		return c.Scale
	}
	return q.Options
}

// Questions flattens the catalog in display order.
func (c *Catalog) Questions() []Question {
	var out []Question
	for _, s := range c.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", c.Kind, err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if _, ok := c.Kind.SurveyID(); !ok {
		return fmt.Errorf("unsupported kind %q", c.Kind)
	}
	if len(c.Sections) == 0 {
		return errors.New("no sections")
	}
	seen := make(map[int]struct{})
	for _, s := range c.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return errors.New("section without title")
		}
		if len(s.Questions) == 0 {
			return fmt.Errorf("section %q has no questions", s.Title)
		}
		for _, q := range s.Questions {
			if q.Number <= 0 {
				return fmt.Errorf("section %q: question number must be positive", s.Title)
			}
			if _, dup := seen[q.Number]; dup {
				return fmt.Errorf("question %d defined twice", q.Number)
			}
			seen[q.Number] = struct{}{}
			if strings.TrimSpace(q.Prompt) == "" {
				return fmt.Errorf("question %d has no prompt", q.Number)
			}
			if err := c.validateQuestion(q); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) validateQuestion(q Question) error {
	switch q.Type {
	case QuestionScale:
		if len(c.Scale) != ScaleSize {
			return fmt.Errorf("question %d: scale needs %d labels, catalog has %d", q.Number, ScaleSize, len(c.Scale))
		}
		if len(q.Options) > 0 || q.Note != "" {
			return fmt.Errorf("question %d: scale questions use the catalog scale only", q.Number)
		}
	case QuestionMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d: multi-select without options", q.Number)
		}
		labels := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			key := normalize(o)
			if key == "" {
				return fmt.Errorf("question %d: empty option", q.Number)
			}
			if _, dup := labels[key]; dup {
				return fmt.Errorf("question %d: option %q repeated", q.Number, o)
			}
			labels[key] = struct{}{}
		}
	case QuestionFreeText:
		if len(q.Options) > 0 || q.Note != "" {
			return fmt.Errorf("question %d: free-text questions take no options", q.Number)
		}
	default:
		return fmt.Errorf("question %d: unknown type %q", q.Number, q.Type)
	}
	return nil
}

// Registry maps survey kinds to their catalogs. It is immutable after loading.
type Registry struct {
	catalogs map[models.SurveyKind]*Catalog
}

// NewRegistry builds a registry from already parsed catalogs.
func NewRegistry(catalogs ...*Catalog) (*Registry, error) {
	r := &Registry{catalogs: make(map[models.SurveyKind]*Catalog, len(catalogs))}
	for _, c := range catalogs {
		if _, dup := r.catalogs[c.Kind]; dup {
			return nil, fmt.Errorf("catalog %q registered twice", c.Kind)
		}
		r.catalogs[c.Kind] = c
	}
	return r, nil
}

// LoadRegistry parses the embedded catalogs.
func LoadRegistry() (*Registry, error) {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalogs: %w", err)
	}
	var catalogs []*Catalog
	for _, entry := range entries {
		data, err := catalogFS.ReadFile(path.Join("catalogs", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		c, err := ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		catalogs = append(catalogs, c)
	}
	return NewRegistry(catalogs...)
}

// MustLoadRegistry is LoadRegistry for program start-up and tests.
func MustLoadRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Catalog returns the catalog for kind.
func (r *Registry) Catalog(kind models.SurveyKind) (*Catalog, error) {
	if r != nil {
		if c, ok := r.catalogs[kind]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSurvey, kind)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
