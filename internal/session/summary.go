package session

import "time"

// Summary holds the data displayed when a session ends.
type Summary struct {
	Duration      time.Duration
	Asked         int
	Correct       int
	Accuracy      float64
	Phase         Phase
	FinalBand     string
	LongestStreak int
}

// BuildSummary creates a Summary from a session state. longestStreak is
// tracked by the caller since the state only keeps the current streak.
func BuildSummary(s State, longestStreak int) *Summary {
	return &Summary{
		Duration:      s.UpdatedAt.Sub(s.StartedAt),
		Asked:         s.AskedCount,
		Correct:       s.CorrectCount,
		Accuracy:      s.Accuracy(),
		Phase:         s.Phase,
		FinalBand:     string(s.ActiveDifficulty),
		LongestStreak: longestStreak,
	}
}
