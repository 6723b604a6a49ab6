// Package catalog loads question catalog files and imports them into the store.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/store"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

var (
	ErrUnsupportedCatalogVersion = errors.New("unsupported catalog version")
	ErrEmptyCatalog              = errors.New("catalog has no questions")
)

// QuestionError ties a validation failure to the question that caused it.
type QuestionError struct {
	ID  string
	Err error
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %q: %v", e.ID, e.Err)
}

func (e *QuestionError) Unwrap() error { return e.Err }

// File is a parsed catalog file.
type File struct {
	Version string  `yaml:"version" json:"version"`
	Skills  []Skill `yaml:"skills" json:"skills"`
}

// Skill groups the questions of one skill. Question order is the
// presentation order.
type Skill struct {
	ID        string         `yaml:"id" json:"id"`
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Questions []QuestionSpec `yaml:"questions" json:"questions"`
}

// QuestionSpec is a question as authored.
type QuestionSpec struct {
	ID             string         `yaml:"id" json:"id"`
	Type           string         `yaml:"type" json:"type"`
	Band           string         `yaml:"band,omitempty" json:"band,omitempty"`
	Complexity     float64        `yaml:"complexity,omitempty" json:"complexity,omitempty"`
	Prompt         string         `yaml:"prompt" json:"prompt"`
	Answer         string         `yaml:"answer,omitempty" json:"answer,omitempty"`
	CorrectIndex   *int           `yaml:"correct_index,omitempty" json:"correct_index,omitempty"`
	CorrectIndices []int          `yaml:"correct_indices,omitempty" json:"correct_indices,omitempty"`
	Options        []OptionSpec   `yaml:"options,omitempty" json:"options,omitempty"`
	Config         map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// OptionSpec accepts either a bare string or a {text, misconception} object.
type OptionSpec question.Option

func (o *OptionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Text = node.Value
		return nil
	}
	var opt question.Option
	if err := node.Decode(&opt); err != nil {
		return err
	}
	*o = OptionSpec(opt)
	return nil
}

func (o *OptionSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var opt question.Option
	if err := json.Unmarshal(data, &opt); err != nil {
		return err
	}
	*o = OptionSpec(opt)
	return nil
}

// Load reads and validates a catalog file. Files ending in .json are decoded
// as JSON; everything else as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse decodes and validates catalog bytes.
func Parse(data []byte, isJSON bool) (*File, error) {
	var f File
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the format version and every question. All question
// errors are reported together.
func (f *File) Validate() error {
	if err := checkVersion(f.Version); err != nil {
		return err
	}

	var errs []error
	seen := make(map[string]bool)
	total := 0
	for _, sk := range f.Skills {
		if strings.TrimSpace(sk.ID) == "" {
			errs = append(errs, errors.New("skill with empty id"))
			continue
		}
		for _, q := range sk.Questions {
			total++
			if seen[q.ID] {
				errs = append(errs, &QuestionError{ID: q.ID, Err: errors.New("duplicate id")})
				continue
			}
			seen[q.ID] = true
			if err := q.validate(); err != nil {
				errs = append(errs, &QuestionError{ID: q.ID, Err: err})
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if total == 0 {
		return ErrEmptyCatalog
	}
	return nil
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrUnsupportedCatalogVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedCatalogVersion, v, SupportedMajor)
	}
	return nil
}

func (q QuestionSpec) validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("empty id")
	}
	t := question.ParseType(q.Type)
	if t == question.TypeUnknown {
		return fmt.Errorf("unknown type %q", q.Type)
	}
	if q.Band != "" && !question.Band(strings.ToLower(q.Band)).Valid() {
		return fmt.Errorf("unknown band %q", q.Band)
	}
	switch t {
	case question.TypeSingleChoice:
		if q.CorrectIndex == nil {
			return errors.New("single choice needs correct_index")
		}
		if *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("correct_index %d out of range for %d options", *q.CorrectIndex, len(q.Options))
		}
	case question.TypeMultiChoice:
		if len(q.CorrectIndices) == 0 {
			return errors.New("multi choice needs correct_indices")
		}
	}
	raw, err := q.configJSON()
	if err != nil {
		return err
	}
	return question.ValidateConfig(raw)
}

func (q QuestionSpec) configJSON() ([]byte, error) {
	m, ok := normalize(q.Config).(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, err := question.MarshalConfigMap(m)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return raw, nil
}

// normalize turns YAML's map[interface{}]interface{} (produced for non-string
// keys such as option indices) into JSON-encodable maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

// Records converts the file to store records. Sort keys follow file order
// within each skill.
func (f *File) Records() ([]store.QuestionRecord, error) {
	var out []store.QuestionRecord
	for _, sk := range f.Skills {
		for i, q := range sk.Questions {
			raw, err := q.configJSON()
			if err != nil {
				return nil, &QuestionError{ID: q.ID, Err: err}
			}
			opts := make([]question.Option, len(q.Options))
			for j, o := range q.Options {
				opts[j] = question.Option(o)
			}
			out = append(out, store.QuestionRecord{
				ID:             q.ID,
				SkillID:        sk.ID,
				Type:           question.ParseType(q.Type).String(),
				Band:           string(question.ParseBand(q.Band)),
				Complexity:     q.Complexity,
				SortKey:        i,
				Prompt:         q.Prompt,
				AnswerText:     q.Answer,
				CorrectIndex:   q.CorrectIndex,
				CorrectIndices: q.CorrectIndices,
				Options:        opts,
				Config:         raw,
			})
		}
	}
	return out, nil
}
