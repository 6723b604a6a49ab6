package question

// Option is one selectable choice of a choice question.
type Option struct {
	Text string `json:"text" yaml:"text"`
	// Misconception is an optional code authored directly on the option.
	Misconception string `json:"misconception,omitempty" yaml:"misconception,omitempty"`
}

// Question is an immutable content record owned by the catalog.
type Question struct {
	ID         string
	SkillID    string
	Type       Type
	Band       Band
	Complexity float64
	SortKey    int

	// Prompt is the text shown to the learner.
	Prompt string

	// AnswerText is the stored answer for text-like types (text input,
	// picture-word, measurement fallback, shade-grid fraction fallback).
	AnswerText string

	// CorrectIndex is set for single-choice questions.
	CorrectIndex *int

	// CorrectIndices is set for multi-choice questions.
	CorrectIndices []int

	Options []Option

	Config Config
}

// RemediationTargets returns the misconception codes this question remediates.
func (q *Question) RemediationTargets() []string {
	return q.Config.RemediationTargets
}

// Remediates reports whether code is among the question's remediation targets.
func (q *Question) Remediates(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range q.Config.RemediationTargets {
		if c == code {
			return true
		}
	}
	return false
}

// IDs returns the ids of qs in order.
func IDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
