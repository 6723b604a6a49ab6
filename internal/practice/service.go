// Package practice runs the per-attempt pipeline: it loads state, calls the
// engine packages in order and persists the results.
package practice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillcoach/internal/answer"
	"github.com/abhisek/skillcoach/internal/diagnosis"
	"github.com/abhisek/skillcoach/internal/logger"
	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/remediation"
	"github.com/abhisek/skillcoach/internal/selection"
	"github.com/abhisek/skillcoach/internal/session"
	"github.com/abhisek/skillcoach/internal/smartscore"
	"github.com/abhisek/skillcoach/internal/store"
)

// Catalog provides the ordered question pool of a skill.
type Catalog interface {
	QuestionsBySkill(ctx context.Context, skillID string) ([]question.Question, error)
}

// StateStore reads and writes the mutable per-student and per-session rows.
type StateStore interface {
	SkillState(ctx context.Context, studentID, skillID string) (mastery.State, bool, error)
	SkillStates(ctx context.Context, studentID string) ([]mastery.State, error)
	UpsertSkillState(ctx context.Context, st mastery.State) error
	Session(ctx context.Context, id string) (session.State, error)
	UpsertSession(ctx context.Context, st session.State) error
}

// EventLog is the append-only attempt log.
type EventLog interface {
	AppendAttempt(ctx context.Context, ev store.AttemptEvent) (store.AttemptEvent, error)
	RecentAttempts(ctx context.Context, sessionID string, limit int) ([]store.AttemptEvent, error)
	CountAttempts(ctx context.Context, sessionID, questionID string) (int, error)
}

// Options tune a Service. Zero values pick production defaults.
type Options struct {
	// MisconceptionLog receives detected misconceptions. Nil disables it.
	MisconceptionLog store.MisconceptionLog

	Logger *logger.Logger

	// Rand drives question selection. Nil uses the process-wide source.
	Rand *rand.Rand

	// HistoryWindow bounds the attempts scanned for remediation.
	HistoryWindow int

	Now   func() time.Time
	NewID func() string
}

// Service processes attempts for any number of sessions. It holds no
// per-session state.
type Service struct {
	catalog        Catalog
	states         StateStore
	events         EventLog
	misconceptions store.MisconceptionLog
	selector       *selection.Selector
	log            *logger.Logger
	window         int
	now            func() time.Time
	newID          func() string
}

// NewService creates a practice service.
func NewService(catalog Catalog, states StateStore, events EventLog, opts Options) *Service {
	s := &Service{
		catalog:        catalog,
		states:         states,
		events:         events,
		misconceptions: opts.MisconceptionLog,
		selector:       selection.NewSelector(opts.Rand),
		log:            opts.Logger,
		window:         opts.HistoryWindow,
		now:            opts.Now,
		newID:          opts.NewID,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.window <= 0 {
		s.window = remediation.DefaultWindow
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// StartResult is a freshly opened session and its first question.
type StartResult struct {
	Session  session.State
	Mastery  mastery.State
	Question *question.Question
	Reason   selection.Reason
	Resumed  bool
}

// AttemptResult is everything the caller needs after one answer.
type AttemptResult struct {
	IsCorrect         bool
	MisconceptionCode string
	Mastery           mastery.State
	Session           session.State
	NextQuestion      *question.Question
	SelectionReason   selection.Reason
	CycleReset        bool
	ScoreDelta        int
	Remediation       remediation.Status
	Sequence          int64
}

// StartSession opens a session and picks its first question. The session
// starts at the student's current difficulty band for the skill. An explicit
// id naming a stored session resumes it for the same student and skill and is
// ErrSessionMismatch for anyone else.
func (s *Service) StartSession(ctx context.Context, req StartRequest) (*StartResult, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.SkillID = strings.TrimSpace(req.SkillID)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pool, err := s.catalog.QuestionsBySkill(ctx, req.SkillID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	ms, err := s.skillState(ctx, req.StudentID, req.SkillID)
	if err != nil {
		return nil, err
	}

	if req.SessionID != "" {
		existing, err := s.states.Session(ctx, req.SessionID)
		switch {
		case err == nil:
			return s.resumeSession(ctx, req, existing, pool, ms)
		case !errors.Is(err, store.ErrSessionNotFound):
			return nil, fmt.Errorf("load session: %w", err)
		}
	}

	id := req.SessionID
	if id == "" {
		id = s.newID()
	}
	sess := session.New(id, req.StudentID, req.SkillID, s.now())
	sess.ActiveDifficulty = ms.Band

	sel := s.selector.Select(selection.Input{
		Pool:        pool,
		TargetBand:  sess.ActiveDifficulty,
		Remediation: remediation.Inactive(),
	})
	if !sel.Found() {
		s.log.Warn("no questions for skill", "skill_id", req.SkillID, "session_id", id)
	}

	if err := s.states.UpsertSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Info("session started", "session_id", id, "student_id", req.StudentID, "skill_id", req.SkillID)

	return &StartResult{Session: sess, Mastery: ms, Question: sel.Question, Reason: sel.Reason}, nil
}

// resumeSession picks up an existing session for its owner. The stored row
// is left untouched; the next question honours any running remediation.
func (s *Service) resumeSession(ctx context.Context, req StartRequest, sess session.State, pool []question.Question, ms mastery.State) (*StartResult, error) {
	if sess.StudentID != req.StudentID || sess.SkillID != req.SkillID {
		return nil, fmt.Errorf("%w: %s", ErrSessionMismatch, req.SessionID)
	}
	rem, err := s.remediationStatus(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	sel := s.selector.Select(selection.Input{
		Pool:               pool,
		TargetBand:         sess.ActiveDifficulty,
		RecentIDs:          sess.RecentQuestionIDs,
		RemediationUsedIDs: rem.UsedQuestionIDs,
		ExcludeID:          sess.LastQuestionID,
		Remediation:        rem,
	})
	s.log.Info("session resumed", "session_id", sess.ID, "asked", sess.AskedCount, "phase", sess.Phase)

	return &StartResult{Session: sess, Mastery: ms, Question: sel.Question, Reason: sel.Reason, Resumed: true}, nil
}

// ProcessAttempt validates one answer and advances every piece of state it
// touches: mastery, session, the attempt log and the misconception log. It
// then picks the next question and computes the score delta.
func (s *Service) ProcessAttempt(ctx context.Context, req AttemptRequest) (*AttemptResult, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.SkillID = strings.TrimSpace(req.SkillID)
	req.QuestionID = strings.TrimSpace(req.QuestionID)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	now := s.now()

	pool, err := s.catalog.QuestionsBySkill(ctx, req.SkillID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	q := findQuestion(pool, req.QuestionID)
	if q == nil {
		return nil, fmt.Errorf("%w: %s in skill %s", ErrQuestionNotFound, req.QuestionID, req.SkillID)
	}

	prevSess, err := s.loadSession(ctx, req, now)
	if err != nil {
		return nil, err
	}
	prevMastery, err := s.skillState(ctx, req.StudentID, req.SkillID)
	if err != nil {
		return nil, err
	}
	prior, err := s.events.CountAttempts(ctx, req.SessionID, q.ID)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}

	payload := answer.ParsePayload(req.Answer)
	correct := answer.Check(q, payload)
	var code string
	if !correct {
		code = diagnosis.Detect(q, payload)
	}

	ms := mastery.Update(prevMastery, mastery.Attempt{
		Correct:               correct,
		LatencyMs:             req.ResponseMs,
		HintUsed:              req.HintUsed,
		PriorQuestionAttempts: prior,
	}, now)

	sess := session.Record(prevSess, session.Outcome{
		QuestionID:        q.ID,
		Correct:           correct,
		MisconceptionCode: code,
		Mastery:           ms,
		PoolIDs:           question.IDs(pool),
		At:                now,
	})

	ev, err := s.events.AppendAttempt(ctx, store.AttemptEvent{
		Timestamp:         now,
		SessionID:         req.SessionID,
		StudentID:         req.StudentID,
		SkillID:           req.SkillID,
		QuestionID:        q.ID,
		IsCorrect:         correct,
		MisconceptionCode: code,
		Answer:            req.Answer,
		ResponseMs:        req.ResponseMs,
		HintUsed:          req.HintUsed,
	})
	if err != nil {
		return nil, fmt.Errorf("append attempt: %w", err)
	}
	if code != "" {
		s.recordMisconception(ctx, req, code, now)
	}

	rem, err := s.remediationStatus(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	sel := s.selector.Select(selection.Input{
		Pool:               pool,
		TargetBand:         sess.ActiveDifficulty,
		RecentIDs:          sess.RecentQuestionIDs,
		RemediationUsedIDs: rem.UsedQuestionIDs,
		ExcludeID:          q.ID,
		Remediation:        rem,
	})
	if !sel.Found() {
		s.log.Warn("no next question", "skill_id", req.SkillID, "session_id", req.SessionID)
	}

	delta := smartscore.Delta(smartscore.Input{
		Correct:    correct,
		Mastery:    ms.Mastery,
		Confidence: ms.Confidence,
		Difficulty: q.Band,
		Phase:      prevSess.Phase,
		LatencyMs:  req.ResponseMs,
		Streak:     sess.CurrentStreak,
		MissStreak: sess.MissStreak,
	})

	if err := s.states.UpsertSkillState(ctx, ms); err != nil {
		return nil, fmt.Errorf("save skill state: %w", err)
	}
	if err := s.states.UpsertSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("attempt processed",
		"session_id", req.SessionID,
		"student_id", req.StudentID,
		"question_id", q.ID,
		"correct", correct,
		"misconception", code,
		"phase", string(sess.Phase),
		"mastery", ms.Mastery,
		"next_reason", string(sel.Reason),
		"score_delta", delta,
	)

	return &AttemptResult{
		IsCorrect:         correct,
		MisconceptionCode: code,
		Mastery:           ms,
		Session:           sess,
		NextQuestion:      sel.Question,
		SelectionReason:   sel.Reason,
		CycleReset:        sel.CycleReset,
		ScoreDelta:        delta,
		Remediation:       rem,
		Sequence:          ev.Sequence,
	}, nil
}

// SkillStates lists a student's skill rows.
func (s *Service) SkillStates(ctx context.Context, studentID string) ([]mastery.State, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, &ValidationError{Field: "student_id", Rule: "required"}
	}
	states, err := s.states.SkillStates(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load skill states: %w", err)
	}
	return states, nil
}

// loadSession returns the stored session, or a new one when the id has not
// been seen yet.
func (s *Service) loadSession(ctx context.Context, req AttemptRequest, now time.Time) (session.State, error) {
	st, err := s.states.Session(ctx, req.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		s.log.Debug("creating session on first attempt", "session_id", req.SessionID)
		return session.New(req.SessionID, req.StudentID, req.SkillID, now), nil
	}
	if err != nil {
		return session.State{}, fmt.Errorf("load session: %w", err)
	}
	if st.StudentID != req.StudentID || st.SkillID != req.SkillID {
		return session.State{}, fmt.Errorf("%w: %s", ErrSessionMismatch, req.SessionID)
	}
	return st, nil
}

func (s *Service) skillState(ctx context.Context, studentID, skillID string) (mastery.State, error) {
	st, found, err := s.states.SkillState(ctx, studentID, skillID)
	if err != nil {
		return mastery.State{}, fmt.Errorf("load skill state: %w", err)
	}
	if !found {
		return mastery.DefaultState(studentID, skillID), nil
	}
	return st, nil
}

// remediationStatus reads the newest attempts of the session, including the
// one just appended.
func (s *Service) remediationStatus(ctx context.Context, sessionID string) (remediation.Status, error) {
	events, err := s.events.RecentAttempts(ctx, sessionID, s.window)
	if err != nil {
		return remediation.Status{}, fmt.Errorf("load recent attempts: %w", err)
	}
	history := make([]remediation.Attempt, len(events))
	for i, ev := range events {
		history[i] = remediation.Attempt{
			QuestionID:        ev.QuestionID,
			Correct:           ev.IsCorrect,
			MisconceptionCode: ev.MisconceptionCode,
		}
	}
	return remediation.Track(history), nil
}

// recordMisconception never fails the attempt; the log is best effort.
func (s *Service) recordMisconception(ctx context.Context, req AttemptRequest, code string, now time.Time) {
	if s.misconceptions == nil {
		return
	}
	err := s.misconceptions.AppendMisconception(ctx, store.MisconceptionEvent{
		Timestamp:  now,
		StudentID:  req.StudentID,
		SkillID:    req.SkillID,
		Code:       code,
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		s.log.Warn("misconception log write failed",
			"session_id", req.SessionID, "code", code, "error", err)
	}
}

func findQuestion(pool []question.Question, id string) *question.Question {
	for i := range pool {
		if pool[i].ID == id {
			return &pool[i]
		}
	}
	return nil
}
