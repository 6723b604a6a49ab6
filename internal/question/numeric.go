package question

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number coerces a decoded JSON value to a float64. Numbers, json.Number and
// numeric strings are accepted; everything else (including NaN and ±Inf)
// reports ok=false.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int coerces v to an int. Values with a fractional part are rejected.
func Int(v any) (int, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Text renders scalar JSON values as strings. Numbers use the shortest
// representation ("3", "2.5"); non-scalars report ok=false.
func Text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := Number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// ParseFraction extracts the first "a/b" fraction from s. The denominator
// must be non-zero.
func ParseFraction(s string) (num, den float64, ok bool) {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\n' || r == '\t'
	}) {
		parts := strings.SplitN(field, "/", 2)
		if len(parts) != 2 {
			continue
		}
		n, errN := strconv.ParseFloat(strings.Trim(parts[0], "()"), 64)
		d, errD := strconv.ParseFloat(strings.Trim(parts[1], "().?!"), 64)
		if errN != nil || errD != nil || d == 0 {
			continue
		}
		return n, d, true
	}
	return 0, 0, false
}
