package answer

import (
	"bytes"
	"encoding/json"

	"github.com/abhisek/skillcoach/internal/question"
)

// Payload is an untyped answer as submitted by a client. The zero value is
// the null payload; every accessor on it reports ok=false.
type Payload struct {
	v any
}

// ParsePayload decodes raw JSON. Malformed JSON yields the null payload.
func ParsePayload(raw json.RawMessage) Payload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Payload{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Payload{}
	}
	return Payload{v: v}
}

// IsNull reports whether the payload carries no value.
func (p Payload) IsNull() bool {
	return p.v == nil
}

// Number returns the payload as a number.
func (p Payload) Number() (float64, bool) {
	return question.Number(p.v)
}

// Int returns the payload as a whole number.
func (p Payload) Int() (int, bool) {
	return question.Int(p.v)
}

// String returns scalar payloads as text.
func (p Payload) String() (string, bool) {
	return question.Text(p.v)
}

// List returns the payload's elements when it is an array.
func (p Payload) List() ([]Payload, bool) {
	arr, ok := p.v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Payload, len(arr))
	for i, v := range arr {
		out[i] = Payload{v: v}
	}
	return out, true
}

// Ints returns the payload as a list of whole numbers. A single element that
// fails coercion fails the whole list.
func (p Payload) Ints() ([]int, bool) {
	list, ok := p.List()
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(list))
	for _, e := range list {
		n, ok := e.Int()
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// Strings returns the payload as a list of scalar strings.
func (p Payload) Strings() ([]string, bool) {
	list, ok := p.List()
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, ok := e.String()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Map returns the payload as an object.
func (p Payload) Map() (map[string]any, bool) {
	m, ok := p.v.(map[string]any)
	return m, ok
}

// Field returns the named member of an object payload, or the null payload.
func (p Payload) Field(keys ...string) Payload {
	m, ok := p.Map()
	if !ok {
		return Payload{}
	}
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return Payload{v: v}
		}
	}
	return Payload{}
}

// Unwrap returns the first present member of an object payload among keys
// (default "selected", "value", "answer") so that {"selected": 2} and 2 are
// treated alike. Payloads that are not objects, or objects with none of the
// keys, are returned unchanged.
func (p Payload) Unwrap(keys ...string) Payload {
	if _, ok := p.Map(); !ok {
		return p
	}
	if len(keys) == 0 {
		keys = []string{"selected", "value", "answer"}
	}
	if inner := p.Field(keys...); !inner.IsNull() {
		return inner
	}
	return p
}
