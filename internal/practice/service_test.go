package practice

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/selection"
	"github.com/abhisek/skillcoach/internal/session"
	"github.com/abhisek/skillcoach/internal/store"
)

// memStore is an in-memory Catalog, StateStore and EventLog.
type memStore struct {
	questions map[string][]question.Question
	skills    map[string]mastery.State
	sessions  map[string]session.State
	events    []store.AttemptEvent
	seq       int64
}

func newMemStore() *memStore {
	return &memStore{
		questions: make(map[string][]question.Question),
		skills:    make(map[string]mastery.State),
		sessions:  make(map[string]session.State),
	}
}

func (m *memStore) QuestionsBySkill(_ context.Context, skillID string) ([]question.Question, error) {
	return m.questions[skillID], nil
}

func (m *memStore) SkillState(_ context.Context, studentID, skillID string) (mastery.State, bool, error) {
	st, ok := m.skills[studentID+"|"+skillID]
	return st, ok, nil
}

func (m *memStore) SkillStates(_ context.Context, studentID string) ([]mastery.State, error) {
	var out []mastery.State
	for _, st := range m.skills {
		if st.StudentID == studentID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out, nil
}

func (m *memStore) UpsertSkillState(_ context.Context, st mastery.State) error {
	m.skills[st.StudentID+"|"+st.SkillID] = st
	return nil
}

func (m *memStore) Session(_ context.Context, id string) (session.State, error) {
	st, ok := m.sessions[id]
	if !ok {
		return session.State{}, store.ErrSessionNotFound
	}
	return st, nil
}

func (m *memStore) UpsertSession(_ context.Context, st session.State) error {
	m.sessions[st.ID] = st
	return nil
}

func (m *memStore) AppendAttempt(_ context.Context, ev store.AttemptEvent) (store.AttemptEvent, error) {
	m.seq++
	ev.Sequence = m.seq
	m.events = append(m.events, ev)
	return ev, nil
}

func (m *memStore) RecentAttempts(_ context.Context, sessionID string, limit int) ([]store.AttemptEvent, error) {
	var out []store.AttemptEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].SessionID != sessionID {
			continue
		}
		out = append(out, m.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) CountAttempts(_ context.Context, sessionID, questionID string) (int, error) {
	n := 0
	for _, ev := range m.events {
		if ev.SessionID == sessionID && ev.QuestionID == questionID {
			n++
		}
	}
	return n, nil
}

type recordingLog struct {
	events []store.MisconceptionEvent
	err    error
}

func (l *recordingLog) AppendMisconception(_ context.Context, ev store.MisconceptionEvent) error {
	if l.err != nil {
		return l.err
	}
	l.events = append(l.events, ev)
	return nil
}

func (l *recordingLog) SchemaVersion() int { return store.MisconceptionSchemaV2 }

func intPtr(n int) *int { return &n }

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func subtractionPool() []question.Question {
	return []question.Question{
		{
			ID: "q1", SkillID: "sub", Type: question.TypeSingleChoice, Band: question.BandEasy,
			Prompt: "12 - 5 = ?", CorrectIndex: intPtr(0),
			Options: []question.Option{{Text: "7"}, {Text: "17", Misconception: "carry_error"}, {Text: "6"}},
		},
		{
			ID: "r1", SkillID: "sub", Type: question.TypeTextInput, Band: question.BandEasy,
			Prompt: "14 - 6 = ?", AnswerText: "8",
			Config: question.Config{RemediationTargets: []string{"carry_error"}},
		},
		{
			ID: "r2", SkillID: "sub", Type: question.TypeTextInput, Band: question.BandMedium,
			Prompt: "42 - 17 = ?", AnswerText: "25",
			Config: question.Config{RemediationTargets: []string{"carry_error"}},
		},
		{
			ID: "p1", SkillID: "sub", Type: question.TypeTextInput, Band: question.BandEasy,
			Prompt: "9 - 4 = ?", AnswerText: "5",
		},
	}
}

func newTestService(t *testing.T, mem *memStore, log *recordingLog) *Service {
	t.Helper()
	opts := Options{
		Rand:  rand.New(rand.NewPCG(1, 2)),
		Now:   func() time.Time { return testNow },
		NewID: func() string { return "sess-generated" },
	}
	if log != nil {
		opts.MisconceptionLog = log
	}
	return NewService(mem, mem, mem, opts)
}

func attempt(questionID, answer string) AttemptRequest {
	return AttemptRequest{
		SessionID:  "s1",
		StudentID:  "stu",
		SkillID:    "sub",
		QuestionID: questionID,
		Answer:     json.RawMessage(answer),
		ResponseMs: 4000,
	}
}

func TestProcessAttempt_CorrectCreatesSession(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, nil)

	res, err := svc.ProcessAttempt(context.Background(), attempt("q1", "0"))
	require.NoError(t, err)

	assert.True(t, res.IsCorrect)
	assert.Empty(t, res.MisconceptionCode)
	assert.Greater(t, res.ScoreDelta, 0)
	assert.Greater(t, res.Mastery.Mastery, mastery.DefaultMastery)
	assert.Equal(t, 1, res.Mastery.AttemptsTotal)
	assert.EqualValues(t, 1, res.Sequence)

	assert.Equal(t, "s1", res.Session.ID)
	assert.Equal(t, session.PhaseWarmup, res.Session.Phase)
	assert.Equal(t, 1, res.Session.AskedCount)
	assert.Equal(t, 1, res.Session.CurrentStreak)
	assert.Equal(t, []string{"q1"}, res.Session.RecentQuestionIDs)

	require.NotNil(t, res.NextQuestion)
	assert.NotEqual(t, "q1", res.NextQuestion.ID)
	assert.Equal(t, question.BandEasy, res.NextQuestion.Band)
	assert.Equal(t, selection.ReasonTargetBand, res.SelectionReason)
	assert.False(t, res.Remediation.Active)

	stored, ok := mem.skills["stu|sub"]
	require.True(t, ok)
	assert.Equal(t, res.Mastery, stored)
	assert.Equal(t, res.Session, mem.sessions["s1"])
	require.Len(t, mem.events, 1)
	assert.True(t, mem.events[0].IsCorrect)
}

func TestProcessAttempt_MisconceptionDrivesRemediation(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	log := &recordingLog{}
	svc := newTestService(t, mem, log)
	ctx := context.Background()

	res, err := svc.ProcessAttempt(ctx, attempt("q1", `{"selected": 1}`))
	require.NoError(t, err)

	assert.False(t, res.IsCorrect)
	assert.Equal(t, "carry_error", res.MisconceptionCode)
	assert.Equal(t, session.PhaseRecovery, res.Session.Phase)
	assert.Equal(t, 1, res.Session.MissStreak)
	// 3.8 + 0.8 for the miss streak, scaled by the easy-band loss weight.
	assert.Equal(t, -4, res.ScoreDelta)

	assert.True(t, res.Remediation.Active)
	assert.Equal(t, 2, res.Remediation.Remaining)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, "r1", res.NextQuestion.ID, "easy remediation question preferred")
	assert.Equal(t, selection.ReasonRemediation, res.SelectionReason)

	require.Len(t, log.events, 1)
	assert.Equal(t, "carry_error", log.events[0].Code)
	assert.Equal(t, "s1", log.events[0].SessionID)
	assert.Equal(t, "q1", log.events[0].QuestionID)

	// The next remediation pick skips the question already used.
	res, err = svc.ProcessAttempt(ctx, attempt("r1", `"8"`))
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1, res.Remediation.Remaining)
	assert.Equal(t, []string{"r1"}, res.Remediation.UsedQuestionIDs)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, "r2", res.NextQuestion.ID)
	assert.Equal(t, selection.ReasonRemediation, res.SelectionReason)

	// After two attempts the sequence is over.
	res, err = svc.ProcessAttempt(ctx, attempt("r2", `"25"`))
	require.NoError(t, err)
	assert.False(t, res.Remediation.Active)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, "p1", res.NextQuestion.ID)
}

func TestProcessAttempt_RepeatCountsPriorAttempts(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, nil)
	ctx := context.Background()

	first, err := svc.ProcessAttempt(ctx, attempt("p1", `"5"`))
	require.NoError(t, err)
	second, err := svc.ProcessAttempt(ctx, attempt("p1", `"5"`))
	require.NoError(t, err)

	firstGain := first.Mastery.Mastery - mastery.DefaultMastery
	secondGain := second.Mastery.Mastery - first.Mastery.Mastery
	assert.Less(t, secondGain, firstGain, "a repeated question earns less")
}

func TestProcessAttempt_MisconceptionLogFailureIsNotFatal(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, &recordingLog{err: errors.New("no such column: session_id")})

	res, err := svc.ProcessAttempt(context.Background(), attempt("q1", "1"))
	require.NoError(t, err)
	assert.Equal(t, "carry_error", res.MisconceptionCode)
	assert.Len(t, mem.events, 1)
}

func TestProcessAttempt_UncodedChoiceMissStaysInCore(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	core := session.New("s1", "stu", "sub", testNow)
	core.Phase = session.PhaseCore
	core.AskedCount = 4
	core.CorrectCount = 4
	core.CurrentStreak = 1
	core.ActiveDifficulty = question.BandEasy
	mem.sessions["s1"] = core
	log := &recordingLog{}
	svc := newTestService(t, mem, log)

	res, err := svc.ProcessAttempt(context.Background(), attempt("q1", "2"))
	require.NoError(t, err)

	assert.False(t, res.IsCorrect)
	assert.Empty(t, res.MisconceptionCode)
	assert.Equal(t, session.PhaseCore, res.Session.Phase)
	assert.Equal(t, 1, res.Session.MissStreak)
	assert.False(t, res.Remediation.Active)
	assert.NotEqual(t, selection.ReasonRemediation, res.SelectionReason)
	assert.Empty(t, log.events, "no misconception to log")
}

func TestProcessAttempt_OnlyQuestionInPool(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()[:1]
	svc := newTestService(t, mem, nil)

	res, err := svc.ProcessAttempt(context.Background(), attempt("q1", "0"))
	require.NoError(t, err)
	assert.Nil(t, res.NextQuestion)
	assert.Equal(t, selection.ReasonNoQuestions, res.SelectionReason)
	assert.Empty(t, res.Session.RecentQuestionIDs, "window covering the pool resets")
}

func TestProcessAttempt_Errors(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	mem.sessions["other"] = session.New("other", "someone-else", "sub", testNow)
	svc := newTestService(t, mem, nil)
	ctx := context.Background()

	t.Run("missing student", func(t *testing.T) {
		req := attempt("q1", "0")
		req.StudentID = "  "
		_, err := svc.ProcessAttempt(ctx, req)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "student_id", ve.Field)
		assert.Equal(t, "required", ve.Rule)
	})

	t.Run("negative latency", func(t *testing.T) {
		req := attempt("q1", "0")
		req.ResponseMs = -5
		_, err := svc.ProcessAttempt(ctx, req)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "response_ms", ve.Field)
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := svc.ProcessAttempt(ctx, attempt("nope", "0"))
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})

	t.Run("session of another student", func(t *testing.T) {
		req := attempt("q1", "0")
		req.SessionID = "other"
		_, err := svc.ProcessAttempt(ctx, req)
		assert.ErrorIs(t, err, ErrSessionMismatch)
	})

	assert.Empty(t, mem.events, "failed requests append nothing")
}

func TestStartSession(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	prev := mastery.DefaultState("stu", "sub")
	prev.Band = question.BandMedium
	mem.skills["stu|sub"] = prev
	svc := newTestService(t, mem, nil)

	res, err := svc.StartSession(context.Background(), StartRequest{StudentID: "stu", SkillID: "sub"})
	require.NoError(t, err)
	assert.Equal(t, "sess-generated", res.Session.ID)
	assert.Equal(t, session.PhaseWarmup, res.Session.Phase)
	assert.Equal(t, question.BandMedium, res.Session.ActiveDifficulty)
	require.NotNil(t, res.Question)
	assert.Equal(t, "r2", res.Question.ID)
	assert.Equal(t, selection.ReasonTargetBand, res.Reason)
	assert.Contains(t, mem.sessions, "sess-generated")
}

func TestStartSession_ReusedIDOfAnotherStudent(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, nil)
	ctx := context.Background()

	_, err := svc.ProcessAttempt(ctx, attempt("q1", "1"))
	require.NoError(t, err)
	owned := mem.sessions["s1"]

	_, err = svc.StartSession(ctx, StartRequest{SessionID: "s1", StudentID: "other", SkillID: "sub"})
	assert.ErrorIs(t, err, ErrSessionMismatch)

	_, err = svc.StartSession(ctx, StartRequest{SessionID: "s1", StudentID: "stu", SkillID: "add"})
	assert.ErrorIs(t, err, ErrSessionMismatch)

	assert.Equal(t, owned, mem.sessions["s1"], "stored session is not overwritten")
}

func TestStartSession_ResumesOwnSession(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, nil)
	ctx := context.Background()

	_, err := svc.ProcessAttempt(ctx, attempt("q1", "1"))
	require.NoError(t, err)

	res, err := svc.StartSession(ctx, StartRequest{SessionID: "s1", StudentID: "stu", SkillID: "sub"})
	require.NoError(t, err)
	assert.True(t, res.Resumed)
	assert.Equal(t, 1, res.Session.AskedCount)
	assert.Equal(t, session.PhaseRecovery, res.Session.Phase)
	require.NotNil(t, res.Question)
	assert.Equal(t, "r1", res.Question.ID)
	assert.Equal(t, selection.ReasonRemediation, res.Reason)
	assert.Equal(t, res.Session, mem.sessions["s1"])
}

func TestStartSession_EmptyPool(t *testing.T) {
	mem := newMemStore()
	svc := newTestService(t, mem, nil)

	res, err := svc.StartSession(context.Background(), StartRequest{SessionID: "fixed", StudentID: "stu", SkillID: "empty"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", res.Session.ID)
	assert.Nil(t, res.Question)
	assert.Equal(t, selection.ReasonNoQuestions, res.Reason)
}

func TestSkillStates(t *testing.T) {
	mem := newMemStore()
	mem.questions["sub"] = subtractionPool()
	svc := newTestService(t, mem, nil)

	_, err := svc.ProcessAttempt(context.Background(), attempt("q1", "0"))
	require.NoError(t, err)

	states, err := svc.SkillStates(context.Background(), "stu")
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "sub", states[0].SkillID)

	_, err = svc.SkillStates(context.Background(), "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
