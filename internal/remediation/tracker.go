// Package remediation decides whether a short, misconception-targeted run of
// questions should currently override normal selection.
package remediation

// Length is the number of attempts a remediation sequence lasts after the
// anchoring miss.
const Length = 2

// DefaultWindow is how many recent attempts are scanned for an anchor.
const DefaultWindow = 12

// Attempt is the slice of an attempt event the tracker needs.
type Attempt struct {
	QuestionID        string
	Correct           bool
	MisconceptionCode string
}

// Status is the remediation state derived from history.
type Status struct {
	Active    bool
	Code      string
	Remaining int

	// AnchorIndex is the position of the anchoring miss in the history, or
	// -1 when there is none.
	AnchorIndex int

	// UsedQuestionIDs are the questions already served since the anchor.
	UsedQuestionIDs []string
}

// Inactive is the status when no anchor exists.
func Inactive() Status {
	return Status{AnchorIndex: -1}
}

// Track scans history, newest first, for the most recent incorrect attempt
// carrying a misconception code. Remediation stays active for Length
// attempts after it. Track reads history only.
func Track(history []Attempt) Status {
	for i, a := range history {
		if a.Correct || a.MisconceptionCode == "" {
			continue
		}
		remaining := max(0, Length-i)
		st := Status{
			Active:      remaining > 0,
			Code:        a.MisconceptionCode,
			Remaining:   remaining,
			AnchorIndex: i,
		}
		for _, newer := range history[:i] {
			st.UsedQuestionIDs = append(st.UsedQuestionIDs, newer.QuestionID)
		}
		return st
	}
	return Inactive()
}
