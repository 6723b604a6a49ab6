package session

import (
	"time"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
)

// Phase transition thresholds.
const (
	WarmupQuestions = 3

	ChallengeStreak   = 3
	ChallengeAccuracy = 0.6

	RecoveryExitStreak = 2

	DoneAccuracy   = 0.8
	DoneMastery    = 0.85
	DoneConfidence = 0.65
	DoneMaxLatency = 9000
)

// Outcome is one answered question as seen by the session.
type Outcome struct {
	QuestionID        string
	Correct           bool
	MisconceptionCode string

	// Mastery is the skill state after this attempt was applied.
	Mastery mastery.State

	// PoolIDs lists every question id of the skill, for the full-cycle reset
	// of the recent window.
	PoolIDs []string

	At time.Time
}

// Record applies one outcome to prev and returns the next session state.
func Record(prev State, o Outcome) State {
	next := prev
	if next.TargetCorrectStreak <= 0 {
		next.TargetCorrectStreak = DefaultTargetCorrectStreak
	}
	if !next.ActiveDifficulty.Valid() {
		next.ActiveDifficulty = question.BandEasy
	}

	next.AskedCount++
	if o.Correct {
		next.CorrectCount++
		next.CurrentStreak++
		next.MissStreak = 0
	} else {
		next.CurrentStreak = 0
		next.MissStreak++
	}

	// Phase rules see the difficulty that was active while answering.
	next.Phase = NextPhase(next, o)
	if o.Mastery.Band.Valid() {
		next.ActiveDifficulty = o.Mastery.Band
	}

	if o.QuestionID != "" {
		next.LastQuestionID = o.QuestionID
	}
	next.RecentQuestionIDs = PushRecent(prev.RecentQuestionIDs, o.QuestionID, o.PoolIDs)
	if !o.At.IsZero() {
		next.UpdatedAt = o.At
	}
	return next
}

// NextPhase evaluates the transition rules in order against s, whose
// counters already include the outcome. The first rule that matches wins.
func NextPhase(s State, o Outcome) Phase {
	switch {
	case s.Phase == PhaseDone:
		return PhaseDone
	case s.Phase == PhaseWarmup && s.AskedCount >= WarmupQuestions:
		return PhaseCore
	case s.Phase == PhaseCore && s.CurrentStreak >= ChallengeStreak && s.Accuracy() >= ChallengeAccuracy:
		return PhaseChallenge
	case s.Phase == PhaseChallenge && !o.Correct:
		return PhaseRecovery
	case !o.Correct && o.MisconceptionCode != "":
		return PhaseRecovery
	case s.Phase == PhaseRecovery && s.CurrentStreak >= RecoveryExitStreak:
		return PhaseCore
	case readyToFinish(s, o.Mastery):
		return PhaseDone
	}
	return s.Phase
}

func readyToFinish(s State, m mastery.State) bool {
	return s.ActiveDifficulty == question.BandHard &&
		s.CurrentStreak >= s.TargetCorrectStreak &&
		s.Accuracy() >= DoneAccuracy &&
		m.Mastery >= DoneMastery &&
		m.Confidence >= DoneConfidence &&
		(!m.LatencyRecorded() || m.AvgLatencyMs <= DoneMaxLatency)
}
