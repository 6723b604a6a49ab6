package mastery

import (
	"time"

	"github.com/abhisek/skillcoach/internal/question"
)

// Per-attempt mastery adjustments.
const (
	CorrectDelta   = 0.05
	IncorrectDelta = -0.06
	FastBonus      = 0.01
	SlowPenalty    = 0.01
	HintPenalty    = 0.02
	RepeatPenalty  = 0.01

	ConfidenceStep = 0.03

	FastLatencyMs = 6000
	SlowLatencyMs = 12000
)

// Band movement thresholds.
const (
	EscalateStreak  = 5
	EscalateMastery = 0.75
	DeescalateBelow = 0.35
)

// Proficiency thresholds.
const (
	ProficientMastery    = 0.85
	ProficientConfidence = 0.6
)

// Attempt is the outcome of one answer as seen by the estimator.
type Attempt struct {
	Correct bool

	// LatencyMs is the response time. Values <= 0 mean it was not recorded.
	LatencyMs int

	HintUsed bool

	// PriorQuestionAttempts counts earlier attempts on the same question;
	// anything above zero makes this a repeat.
	PriorQuestionAttempts int
}

// Delta returns the raw mastery change for an attempt, before clamping.
func Delta(a Attempt) float64 {
	d := IncorrectDelta
	if a.Correct {
		d = CorrectDelta
	}
	switch {
	case a.LatencyMs <= 0:
	case a.LatencyMs <= FastLatencyMs:
		d += FastBonus
	case a.LatencyMs > SlowLatencyMs:
		d -= SlowPenalty
	}
	if a.HintUsed {
		d -= HintPenalty
	}
	if a.PriorQuestionAttempts > 0 {
		d -= RepeatPenalty
	}
	return d
}

// Update applies one attempt to prev and returns the next state.
func Update(prev State, a Attempt, now time.Time) State {
	next := prev
	if !next.Band.Valid() {
		next.Band = question.BandEasy
	}

	next.Mastery = clamp(prev.Mastery+Delta(a), MinMastery, MaxMastery)
	next.Confidence = clamp(prev.Confidence+ConfidenceStep, MinConfidence, MaxConfidence)

	next.AttemptsTotal = prev.AttemptsTotal + 1
	if a.Correct {
		next.CorrectTotal = prev.CorrectTotal + 1
		next.Streak = prev.Streak + 1
	} else {
		next.Streak = 0
	}

	if a.LatencyMs > 0 {
		if prev.AvgLatencyMs <= 0 {
			next.AvgLatencyMs = float64(a.LatencyMs)
		} else {
			next.AvgLatencyMs = prev.AvgLatencyMs + (float64(a.LatencyMs)-prev.AvgLatencyMs)/float64(next.AttemptsTotal)
		}
	}

	switch {
	case a.Correct && next.Streak >= EscalateStreak && next.Mastery > EscalateMastery:
		next.Band = next.Band.Step(1)
	case !a.Correct && next.Mastery < DeescalateBelow:
		next.Band = next.Band.Step(-1)
	}

	next.NextReviewAt = now.Add(ReviewDelay(next.Mastery))
	next.Status = ResolveStatus(next.Mastery, next.Confidence)
	next.UpdatedAt = now
	return next
}

// ReviewDelay returns how long until a skill at the given mastery is due.
func ReviewDelay(m float64) time.Duration {
	switch {
	case m >= 0.85:
		return 72 * time.Hour
	case m >= 0.6:
		return 24 * time.Hour
	default:
		return 8 * time.Hour
	}
}

// ResolveStatus labels a mastery/confidence pair.
func ResolveStatus(m, confidence float64) Status {
	if m >= ProficientMastery && confidence >= ProficientConfidence {
		return StatusProficient
	}
	return StatusLearning
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
