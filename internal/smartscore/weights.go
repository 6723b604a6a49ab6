package smartscore

import (
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/session"
)

var difficultyWeights = map[question.Band]float64{
	question.BandEasy:   1.0,
	question.BandMedium: 1.2,
	question.BandHard:   1.45,
}

var phaseWeights = map[session.Phase]float64{
	session.PhaseWarmup:    0.95,
	session.PhaseCore:      1.0,
	session.PhaseChallenge: 1.2,
	session.PhaseRecovery:  0.85,
	session.PhaseDone:      1.0,
}

// DifficultyWeight returns the multiplier for a band. Unknown bands weigh as easy.
func DifficultyWeight(b question.Band) float64 {
	if w, ok := difficultyWeights[b]; ok {
		return w
	}
	return 1.0
}

// PhaseWeight returns the multiplier for a session phase, 1.0 if unknown.
func PhaseWeight(p session.Phase) float64 {
	if w, ok := phaseWeights[p]; ok {
		return w
	}
	return 1.0
}

// FastGuessPenalty discourages answers submitted too quickly to be read.
// An unrecorded latency (<= 0) carries no penalty.
func FastGuessPenalty(latencyMs int) float64 {
	switch {
	case latencyMs <= 0:
		return 0
	case latencyMs < 1200:
		return 2.2
	case latencyMs < 2200:
		return 1.2
	default:
		return 0
	}
}

// LowConfidencePenalty applies while the estimate is still mostly a guess.
func LowConfidencePenalty(confidence float64) float64 {
	if confidence < 0.35 {
		return 0.6
	}
	return 0
}
