package mastery

import (
	"time"

	"github.com/abhisek/skillcoach/internal/question"
)

// Status is the coarse proficiency label of a skill.
type Status string

const (
	StatusLearning   Status = "learning"
	StatusProficient Status = "proficient"
)

// Bounds for the clamped estimates.
const (
	MinMastery    = 0.01
	MaxMastery    = 0.99
	MinConfidence = 0.05
	MaxConfidence = 0.99
)

// Starting values for a skill the student has never attempted.
const (
	DefaultMastery    = 0.2
	DefaultConfidence = 0.1
)

// State is the per-student, per-skill estimate. It is a value: Update
// returns a new State and never mutates its input.
type State struct {
	StudentID     string
	SkillID       string
	Mastery       float64
	Confidence    float64
	Band          question.Band
	Streak        int
	AttemptsTotal int
	CorrectTotal  int
	AvgLatencyMs  float64 // 0 until a latency has been recorded
	NextReviewAt  time.Time
	Status        Status
	UpdatedAt     time.Time
}

// DefaultState returns the state used before the first attempt on a skill.
func DefaultState(studentID, skillID string) State {
	return State{
		StudentID:  studentID,
		SkillID:    skillID,
		Mastery:    DefaultMastery,
		Confidence: DefaultConfidence,
		Band:       question.BandEasy,
		Status:     StatusLearning,
	}
}

// Accuracy returns the lifetime accuracy ratio.
func (s State) Accuracy() float64 {
	if s.AttemptsTotal == 0 {
		return 0.0
	}
	return float64(s.CorrectTotal) / float64(s.AttemptsTotal)
}

// LatencyRecorded reports whether any attempt carried a response time.
func (s State) LatencyRecorded() bool {
	return s.AvgLatencyMs > 0
}
