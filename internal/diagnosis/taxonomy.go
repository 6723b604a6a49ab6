package diagnosis

import "strings"

// Misconception describes a well-known code for display.
type Misconception struct {
	Code        string
	Label       string
	Description string
}

var seedMisconceptions = []Misconception{
	{Code: CodeOffByOne, Label: "Off by one", Description: "Answer is one more or one less than expected"},
	{Code: CodePlaceValueShift, Label: "Place value shift", Description: "Answer is off by exactly ten"},
	{Code: CodeOverestimate, Label: "Overestimate", Description: "Answer is larger than expected"},
	{Code: CodeUnderestimate, Label: "Underestimate", Description: "Answer is smaller than expected"},
	{Code: CodeUnanswered, Label: "No option chosen", Description: "No option could be read from the answer"},
}

// registry is the package-level misconception registry, keyed by code.
var registry map[string]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.Code] = m
	}
}

// GetMisconception returns a well-known misconception by code, or nil.
func GetMisconception(code string) *Misconception {
	return registry[code]
}

// Label returns a human-readable label for any code. Authored codes such as
// "carry_error" are turned into "Carry error".
func Label(code string) string {
	if m := registry[code]; m != nil {
		return m.Label
	}
	s := strings.TrimSpace(strings.ReplaceAll(code, "_", " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
