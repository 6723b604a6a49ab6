// Package smartscore computes the visible per-attempt score change.
package smartscore

import (
	"math"

	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/session"
)

// Input describes one attempt after it has been applied. Streak includes
// the current answer when it was correct; MissStreak includes it when it
// was not. A LatencyMs of zero or less means the response time was not
// recorded and never counts as a fast guess.
type Input struct {
	Correct    bool
	Mastery    float64
	Confidence float64
	Difficulty question.Band
	Phase      session.Phase
	LatencyMs  int
	Streak     int
	MissStreak int
}

// Gains never drop below MinGain; losses never shrink below MinLoss.
const (
	MinGain = 1
	MinLoss = 2
)

// Delta returns the signed score change for an attempt.
func Delta(in Input) int {
	dw := DifficultyWeight(in.Difficulty)
	fast := FastGuessPenalty(in.LatencyMs)

	if in.Correct {
		base := 2.6 + in.Mastery*2.8 + in.Confidence*1.6
		boost := math.Min(1.35, 1+float64(in.Streak)*0.06)
		gain := base*dw*PhaseWeight(in.Phase)*boost - fast - LowConfidencePenalty(in.Confidence)
		return int(math.Round(math.Max(MinGain, gain)))
	}

	base := 3.8 + float64(in.MissStreak)*0.8
	phaseLoss := 1.0
	if in.Phase == session.PhaseRecovery {
		phaseLoss = 0.8
	}
	difficultyLoss := 0.85 + (dw-1)*0.5
	loss := base*phaseLoss*difficultyLoss + fast
	return -int(math.Round(math.Max(MinLoss, loss)))
}
