package practice

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abhisek/skillcoach/internal/question"
)

// placeholder returns the input hint for text-entered question types.
func placeholder(q *question.Question) string {
	switch q.Type {
	case question.TypeFillBlank, question.TypeGridArithmetic:
		keys := q.Config.SortedBlankKeys()
		if len(keys) == 1 {
			return "Type your answer..."
		}
		return strings.Join(keys, "=…, ") + "=…"
	case question.TypeDragGroup:
		return "item=group, item=group..."
	case question.TypeOrdering:
		return "item ids in order, comma separated"
	case question.TypeShadeGrid:
		return "How many cells to shade?"
	default:
		return "Type your answer..."
	}
}

// numericInput reports whether only numeric keys make sense for q.
func numericInput(q *question.Question) bool {
	return q.Type == question.TypeMeasurement || q.Type == question.TypeShadeGrid
}

// encodeTextAnswer turns what was typed into the answer payload shape the
// question type expects.
func encodeTextAnswer(q *question.Question, raw string) json.RawMessage {
	raw = strings.TrimSpace(raw)
	var v any
	switch q.Type {
	case question.TypeMeasurement:
		v = numberOrText(raw)
	case question.TypeShadeGrid:
		if n, err := strconv.Atoi(raw); err == nil {
			v = map[string]any{"count": n}
		} else {
			v = raw
		}
	case question.TypeFillBlank, question.TypeGridArithmetic:
		keys := q.Config.SortedBlankKeys()
		if len(keys) == 1 && !strings.Contains(raw, "=") {
			v = map[string]any{"blanks": map[string]any{keys[0]: raw}}
		} else {
			v = map[string]any{"blanks": pairs(raw)}
		}
	case question.TypeDragGroup:
		v = map[string]any{"placements": pairs(raw)}
	case question.TypeOrdering:
		v = map[string]any{"order": splitList(raw)}
	default:
		v = raw
	}
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

// encodeChoiceAnswer encodes selected option indices.
func encodeChoiceAnswer(q *question.Question, selected []int) json.RawMessage {
	if selected == nil {
		selected = []int{}
	}
	var v any = map[string]any{"selected": selected}
	if q.Type == question.TypeSingleChoice && len(selected) > 0 {
		v = map[string]any{"selected": selected[0]}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

func numberOrText(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// pairs parses "a=1, b=2" into a map. Entries without '=' are skipped.
func pairs(s string) map[string]any {
	out := make(map[string]any)
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if fields == nil {
		return []string{}
	}
	return fields
}
