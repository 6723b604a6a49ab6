package mastery

import "fmt"

// Percent renders a [0,1] estimate as a whole percentage.
func Percent(v float64) int {
	return int(clamp(v, 0, 1)*100 + 0.5)
}

// Summary is the one-line description used by the stats listing.
func (s State) Summary() string {
	return fmt.Sprintf("mastery %d%%, confidence %d%%, %s band, streak %d (%d/%d correct)",
		Percent(s.Mastery), Percent(s.Confidence), s.Band, s.Streak, s.CorrectTotal, s.AttemptsTotal)
}
