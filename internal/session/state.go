package session

import (
	"time"

	"github.com/abhisek/skillcoach/internal/question"
)

// Phase is the coarse stage of one practice session.
type Phase string

const (
	PhaseWarmup    Phase = "warmup"
	PhaseCore      Phase = "core"
	PhaseChallenge Phase = "challenge"
	PhaseRecovery  Phase = "recovery"
	PhaseDone      Phase = "done"
)

// ParsePhase maps a stored phase name back to a Phase. Unknown names are
// treated as warmup.
func ParsePhase(s string) Phase {
	switch p := Phase(s); p {
	case PhaseWarmup, PhaseCore, PhaseChallenge, PhaseRecovery, PhaseDone:
		return p
	}
	return PhaseWarmup
}

// DefaultTargetCorrectStreak is the correct streak required to finish.
const DefaultTargetCorrectStreak = 5

// State is one practice session. Record returns a fresh State; the input
// is never modified.
type State struct {
	ID        string
	StudentID string
	SkillID   string

	Phase               Phase
	TargetCorrectStreak int

	// CurrentStreak counts consecutive correct answers; MissStreak counts
	// consecutive incorrect ones. At most one of them is non-zero.
	CurrentStreak int
	MissStreak    int

	AskedCount   int
	CorrectCount int

	ActiveDifficulty  question.Band
	LastQuestionID    string
	RecentQuestionIDs []string

	StartedAt time.Time
	UpdatedAt time.Time
}

// New returns a session in the warmup phase.
func New(id, studentID, skillID string, now time.Time) State {
	return State{
		ID:                  id,
		StudentID:           studentID,
		SkillID:             skillID,
		Phase:               PhaseWarmup,
		TargetCorrectStreak: DefaultTargetCorrectStreak,
		ActiveDifficulty:    question.BandEasy,
		StartedAt:           now,
		UpdatedAt:           now,
	}
}

// Accuracy returns the running accuracy of the session.
func (s State) Accuracy() float64 {
	if s.AskedCount == 0 {
		return 0.0
	}
	return float64(s.CorrectCount) / float64(s.AskedCount)
}

// IsDone reports whether the session reached its terminal phase.
func (s State) IsDone() bool {
	return s.Phase == PhaseDone
}
