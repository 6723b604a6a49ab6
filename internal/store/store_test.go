package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/session"
)

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "skillcoach.db")
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testDBPath(t))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(n int) *int { return &n }

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"questions", "student_skill_states", "session_states", "attempt_events", "misconception_events", "global_sequence"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := testDBPath(t)
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertQuestion(ctx, QuestionRecord{ID: "q1", SkillID: "frac", Type: "text_input", Band: "easy", AnswerText: "4"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	qs, err := s.QuestionsBySkill(ctx, "frac")
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.db)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), seq)
	}
}

func TestQuestions_UpsertAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cfg := json.RawMessage(`{"option_misconceptions": {"1": "sign_error"}, "remediation_targets": ["carry_error"]}`)
	recs := []QuestionRecord{
		{ID: "q-b", SkillID: "frac", Type: "mcq", Band: "medium", SortKey: 2, Prompt: "Pick", CorrectIndex: intPtr(2),
			Options: []question.Option{{Text: "1"}, {Text: "2", Misconception: "embedded"}, {Text: "3"}}, Config: cfg},
		{ID: "q-a", SkillID: "frac", Type: "multi_choice", Band: "hard", SortKey: 1, CorrectIndices: []int{0, 2}},
		{ID: "q-c", SkillID: "other", Type: "text_input", AnswerText: "x"},
	}
	for _, r := range recs {
		require.NoError(t, s.UpsertQuestion(ctx, r))
	}

	qs, err := s.QuestionsBySkill(ctx, "frac")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, []string{"q-a", "q-b"}, question.IDs(qs))

	a, b := qs[0], qs[1]
	assert.Equal(t, question.TypeMultiChoice, a.Type)
	assert.Equal(t, []int{0, 2}, a.CorrectIndices)
	assert.Nil(t, a.CorrectIndex)

	assert.Equal(t, question.TypeSingleChoice, b.Type)
	assert.Equal(t, question.BandMedium, b.Band)
	require.NotNil(t, b.CorrectIndex)
	assert.Equal(t, 2, *b.CorrectIndex)
	assert.Equal(t, "embedded", b.Options[1].Misconception)
	assert.Equal(t, "sign_error", b.Config.OptionMisconceptions[1])
	assert.True(t, b.Remediates("carry_error"))

	// Upsert replaces.
	recs[0].Prompt = "Pick again"
	require.NoError(t, s.UpsertQuestion(ctx, recs[0]))
	qs, err = s.QuestionsBySkill(ctx, "frac")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Pick again", qs[1].Prompt)

	skills, err := s.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"frac", "other"}, skills)
}

func TestSkillState_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, found, err := s.SkillState(ctx, "stu", "frac")
	require.NoError(t, err)
	assert.False(t, found)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	st := mastery.Update(mastery.DefaultState("stu", "frac"), mastery.Attempt{Correct: true, LatencyMs: 4000}, now)
	require.NoError(t, s.UpsertSkillState(ctx, st))

	got, found, err := s.SkillState(ctx, "stu", "frac")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, st.Mastery, got.Mastery, 1e-9)
	assert.InDelta(t, st.Confidence, got.Confidence, 1e-9)
	assert.Equal(t, st.Band, got.Band)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 1, got.AttemptsTotal)
	assert.Equal(t, mastery.StatusLearning, got.Status)
	assert.True(t, st.NextReviewAt.Equal(got.NextReviewAt))

	st = mastery.Update(st, mastery.Attempt{}, now.Add(time.Minute))
	require.NoError(t, s.UpsertSkillState(ctx, st))
	got, _, err = s.SkillState(ctx, "stu", "frac")
	require.NoError(t, err)
	assert.Equal(t, 2, got.AttemptsTotal)
	assert.Equal(t, 0, got.Streak)

	require.NoError(t, s.UpsertSkillState(ctx, mastery.DefaultState("stu", "add")))
	all, err := s.SkillStates(ctx, "stu")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "add", all[0].SkillID)
	assert.Equal(t, "frac", all[1].SkillID)
}

func TestSession_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Session(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	st := session.New("sess-1", "stu", "frac", now)
	st = session.Record(st, session.Outcome{
		QuestionID: "q1",
		Correct:    true,
		Mastery:    mastery.State{Mastery: 0.3, Band: question.BandMedium},
		PoolIDs:    []string{"q1", "q2"},
		At:         now.Add(time.Minute),
	})
	require.NoError(t, s.UpsertSession(ctx, st))

	got, err := s.Session(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, session.PhaseWarmup, got.Phase)
	assert.Equal(t, 1, got.AskedCount)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, question.BandMedium, got.ActiveDifficulty)
	assert.Equal(t, "q1", got.LastQuestionID)
	assert.Equal(t, []string{"q1"}, got.RecentQuestionIDs)
	assert.True(t, now.Equal(got.StartedAt))
	assert.True(t, now.Add(time.Minute).Equal(got.UpdatedAt))
}

func TestAttempts_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, qid := range []string{"q1", "q2", "q1", "q3"} {
		ev, err := s.AppendAttempt(ctx, AttemptEvent{
			Timestamp:         base.Add(time.Duration(i) * time.Second),
			SessionID:         "sess",
			StudentID:         "stu",
			SkillID:           "frac",
			QuestionID:        qid,
			IsCorrect:         i%2 == 0,
			MisconceptionCode: map[bool]string{true: "", false: "carry_error"}[i%2 == 0],
			Answer:            json.RawMessage(`{"selected": 1}`),
			ResponseMs:        1000 * (i + 1),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), ev.Sequence)
	}
	_, err := s.AppendAttempt(ctx, AttemptEvent{SessionID: "other", QuestionID: "q1"})
	require.NoError(t, err)

	recent, err := s.RecentAttempts(ctx, "sess", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "q3", recent[0].QuestionID)
	assert.Equal(t, "carry_error", recent[0].MisconceptionCode)
	assert.Equal(t, "q1", recent[1].QuestionID)
	assert.Equal(t, "", recent[1].MisconceptionCode)
	assert.JSONEq(t, `{"selected": 1}`, string(recent[0].Answer))
	assert.Equal(t, 4000, recent[0].ResponseMs)

	all, err := s.RecentAttempts(ctx, "sess", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	n, err := s.CountAttempts(ctx, "sess", "q1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.CountAttempts(ctx, "sess", "q9")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestMisconceptionLog_V2(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	log := s.MisconceptionLog()
	require.Equal(t, MisconceptionSchemaV2, log.SchemaVersion())
	require.NoError(t, log.AppendMisconception(ctx, MisconceptionEvent{
		StudentID: "stu", SkillID: "frac", Code: "carry_error", SessionID: "sess", QuestionID: "q1",
	}))

	var code, sessionID string
	require.NoError(t, s.db.QueryRow("SELECT code, session_id FROM misconception_events").Scan(&code, &sessionID))
	assert.Equal(t, "carry_error", code)
	assert.Equal(t, "sess", sessionID)
}

func TestMisconceptionLog_Legacy(t *testing.T) {
	path := testDBPath(t)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE misconception_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		code TEXT NOT NULL
	)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	log := s.MisconceptionLog()
	require.Equal(t, MisconceptionSchemaLegacy, log.SchemaVersion())
	require.NoError(t, log.AppendMisconception(context.Background(), MisconceptionEvent{
		StudentID: "stu", SkillID: "frac", Code: "carry_error", SessionID: "sess",
	}))
	assert.Equal(t, 1, countRows(t, s.db, "misconception_events"))
}

func TestMisconceptionLog_Disabled(t *testing.T) {
	s, err := OpenWithOptions(testDBPath(t), Options{NoMisconceptionTable: true})
	require.NoError(t, err)
	defer s.Close()

	log := s.MisconceptionLog()
	require.Equal(t, MisconceptionSchemaNone, log.SchemaVersion())
	require.NoError(t, log.AppendMisconception(context.Background(), MisconceptionEvent{Code: "x"}))

	cols, err := s.tableColumns(context.Background(), "misconception_events")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("SKILLCOACH_DB", filepath.Join(dir, "nested", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "nested"))

	t.Setenv("SKILLCOACH_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "skillcoach", "skillcoach.db"), p)
}
