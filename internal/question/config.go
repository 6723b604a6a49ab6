package question

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Item is a draggable or orderable element of a question.
type Item struct {
	ID          string
	TargetGroup string
	// CorrectPosition is nil when the item carries no position.
	CorrectPosition *int
}

// Config is the typed form of the authoring configuration blob. Every field
// is optional; malformed values are dropped during parsing so downstream
// checks see nil/empty and fail closed.
type Config struct {
	// OptionMisconceptions maps an option index to a misconception code.
	OptionMisconceptions map[int]string
	// FlatOptionCodes holds legacy "option_<n>_misconception" keys.
	FlatOptionCodes map[int]string
	// DefaultMisconception is the skill-level fallback code.
	DefaultMisconception string
	// RemediationTargets lists the misconception codes this question remediates.
	RemediationTargets []string

	// Blanks maps a sub-field id to its expected value (fill-in-blank, grid arithmetic).
	Blanks map[string]string

	Items         []Item
	ExpectedOrder []string

	TargetValue   *float64
	ExpectedValue *float64

	Rows     *int
	Cols     *int
	Segments *int
	Shape    string

	TargetCount *int
	Numerator   *float64
	Denominator *float64

	Content string
}

var flatOptionKey = regexp.MustCompile(`^option_(\d+)_misconception$`)

// ParseConfig decodes an authoring blob. It never fails: invalid JSON yields
// an empty Config.
func ParseConfig(raw []byte) Config {
	var cfg Config
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return cfg
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return cfg
	}
	return ConfigFromMap(m)
}

// ConfigFromMap builds a Config from an already-decoded blob.
func ConfigFromMap(m map[string]any) Config {
	var cfg Config

	if v, ok := lookup(m, "option_misconceptions", "optionMisconceptions", "misconception_map", "misconceptionMap"); ok {
		cfg.OptionMisconceptions = indexCodeMap(v)
	}
	for key, v := range m {
		sub := flatOptionKey.FindStringSubmatch(key)
		if sub == nil {
			continue
		}
		idx, err := strconv.Atoi(sub[1])
		if err != nil {
			continue
		}
		if code, ok := v.(string); ok && strings.TrimSpace(code) != "" {
			if cfg.FlatOptionCodes == nil {
				cfg.FlatOptionCodes = make(map[int]string)
			}
			cfg.FlatOptionCodes[idx] = strings.TrimSpace(code)
		}
	}
	if v, ok := lookup(m, "default_misconception", "defaultMisconception", "misconception_code"); ok {
		if s, ok := v.(string); ok {
			cfg.DefaultMisconception = strings.TrimSpace(s)
		}
	}
	if v, ok := lookup(m, "remediation_targets", "remediationTargets", "remediates"); ok {
		cfg.RemediationTargets = stringList(v)
	}

	if v, ok := lookup(m, "blanks", "correct_answers", "correctAnswers"); ok {
		cfg.Blanks = stringMap(v)
	}
	if v, ok := lookup(m, "items", "drag_items", "dragItems"); ok {
		cfg.Items = items(v)
	}
	if v, ok := lookup(m, "expected_order", "expectedOrder", "correct_order", "correctOrder"); ok {
		cfg.ExpectedOrder = stringList(v)
	}

	cfg.TargetValue = floatField(m, "target_value", "targetValue")
	cfg.ExpectedValue = floatField(m, "expected_value", "expectedValue")

	cfg.Rows = intField(m, "rows")
	cfg.Cols = intField(m, "cols", "columns")
	cfg.Segments = intField(m, "segments", "pie_segments", "pieSegments")
	if v, ok := lookup(m, "shape"); ok {
		if s, ok := v.(string); ok {
			cfg.Shape = strings.ToLower(strings.TrimSpace(s))
		}
	}
	cfg.TargetCount = intField(m, "target_count", "targetCount", "shaded_count", "shadedCount")
	cfg.Numerator = floatField(m, "numerator")
	cfg.Denominator = floatField(m, "denominator")
	if cfg.Denominator != nil && *cfg.Denominator == 0 {
		cfg.Denominator = nil
	}
	if v, ok := lookup(m, "content"); ok {
		if s, ok := v.(string); ok {
			cfg.Content = s
		}
	}

	return cfg
}

func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func floatField(m map[string]any, keys ...string) *float64 {
	v, ok := lookup(m, keys...)
	if !ok {
		return nil
	}
	f, ok := Number(v)
	if !ok {
		return nil
	}
	return &f
}

func intField(m map[string]any, keys ...string) *int {
	v, ok := lookup(m, keys...)
	if !ok {
		return nil
	}
	n, ok := Int(v)
	if !ok {
		return nil
	}
	return &n
}

// indexCodeMap accepts {"1": "code"} objects and ["code0", "code1"] arrays.
func indexCodeMap(v any) map[int]string {
	out := make(map[int]string)
	switch t := v.(type) {
	case map[string]any:
		for k, raw := range t {
			idx, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil {
				continue
			}
			if code, ok := raw.(string); ok && strings.TrimSpace(code) != "" {
				out[idx] = strings.TrimSpace(code)
			}
		}
	case []any:
		for i, raw := range t {
			if code, ok := raw.(string); ok && strings.TrimSpace(code) != "" {
				out[i] = strings.TrimSpace(code)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, raw := range t {
			if s, ok := Text(raw); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func stringMap(v any) map[string]string {
	t, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(t))
	for k, raw := range t {
		if s, ok := Text(raw); ok {
			out[k] = s
		}
	}
	return out
}

func items(v any) []Item {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Item
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		idRaw, ok := lookup(obj, "id")
		if !ok {
			continue
		}
		id, ok := Text(idRaw)
		if !ok || id == "" {
			continue
		}
		item := Item{ID: id}
		if g, ok := lookup(obj, "target_group", "targetGroup", "group"); ok {
			if s, ok := Text(g); ok {
				item.TargetGroup = strings.TrimSpace(s)
			}
		}
		item.CorrectPosition = intField(obj, "correct_position", "correctPosition")
		out = append(out, item)
	}
	return out
}

// SortedBlankKeys returns the Blanks keys in lexical order.
func (c Config) SortedBlankKeys() []string {
	keys := make([]string, 0, len(c.Blanks))
	for k := range c.Blanks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
