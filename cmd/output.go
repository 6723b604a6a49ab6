package cmd

import (
	"encoding/json"
	"io"
	"time"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/practice"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/session"
)

type questionView struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Band    string   `json:"band"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

type masteryView struct {
	Mastery       float64   `json:"mastery"`
	Confidence    float64   `json:"confidence"`
	Band          string    `json:"band"`
	Streak        int       `json:"streak"`
	AttemptsTotal int       `json:"attempts_total"`
	CorrectTotal  int       `json:"correct_total"`
	AvgLatencyMs  float64   `json:"avg_latency_ms"`
	Status        string    `json:"status"`
	NextReviewAt  time.Time `json:"next_review_at"`
}

type sessionView struct {
	ID               string   `json:"id"`
	Phase            string   `json:"phase"`
	AskedCount       int      `json:"asked_count"`
	CorrectCount     int      `json:"correct_count"`
	CurrentStreak    int      `json:"current_streak"`
	MissStreak       int      `json:"miss_streak"`
	ActiveDifficulty string   `json:"active_difficulty"`
	RecentQuestions  []string `json:"recent_question_ids"`
}

type remediationView struct {
	Active    bool   `json:"active"`
	Code      string `json:"code,omitempty"`
	Remaining int    `json:"remaining"`
}

type attemptView struct {
	IsCorrect         bool            `json:"is_correct"`
	MisconceptionCode string          `json:"misconception_code,omitempty"`
	Mastery           masteryView     `json:"mastery"`
	Session           sessionView     `json:"session"`
	NextQuestion      *questionView   `json:"next_question"`
	SelectionReason   string          `json:"selection_reason"`
	CycleReset        bool            `json:"cycle_reset,omitempty"`
	ScoreDelta        int             `json:"score_delta"`
	Remediation       remediationView `json:"remediation"`
}

type startView struct {
	Session         sessionView   `json:"session"`
	Mastery         masteryView   `json:"mastery"`
	Question        *questionView `json:"question"`
	SelectionReason string        `json:"selection_reason"`
	Resumed         bool          `json:"resumed,omitempty"`
}

func newQuestionView(q *question.Question) *questionView {
	if q == nil {
		return nil
	}
	v := &questionView{ID: q.ID, Type: q.Type.String(), Band: string(q.Band), Prompt: q.Prompt}
	for _, o := range q.Options {
		v.Options = append(v.Options, o.Text)
	}
	return v
}

func newMasteryView(m mastery.State) masteryView {
	return masteryView{
		Mastery:       m.Mastery,
		Confidence:    m.Confidence,
		Band:          string(m.Band),
		Streak:        m.Streak,
		AttemptsTotal: m.AttemptsTotal,
		CorrectTotal:  m.CorrectTotal,
		AvgLatencyMs:  m.AvgLatencyMs,
		Status:        string(m.Status),
		NextReviewAt:  m.NextReviewAt,
	}
}

func newSessionView(s session.State) sessionView {
	return sessionView{
		ID:               s.ID,
		Phase:            string(s.Phase),
		AskedCount:       s.AskedCount,
		CorrectCount:     s.CorrectCount,
		CurrentStreak:    s.CurrentStreak,
		MissStreak:       s.MissStreak,
		ActiveDifficulty: string(s.ActiveDifficulty),
		RecentQuestions:  s.RecentQuestionIDs,
	}
}

func newAttemptView(r *practice.AttemptResult) attemptView {
	return attemptView{
		IsCorrect:         r.IsCorrect,
		MisconceptionCode: r.MisconceptionCode,
		Mastery:           newMasteryView(r.Mastery),
		Session:           newSessionView(r.Session),
		NextQuestion:      newQuestionView(r.NextQuestion),
		SelectionReason:   string(r.SelectionReason),
		CycleReset:        r.CycleReset,
		ScoreDelta:        r.ScoreDelta,
		Remediation: remediationView{
			Active:    r.Remediation.Active,
			Code:      r.Remediation.Code,
			Remaining: r.Remediation.Remaining,
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
