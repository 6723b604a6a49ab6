package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/session"
)

// ErrSessionNotFound is returned when a session id has no stored state.
var ErrSessionNotFound = errors.New("session not found")

var sessionColumns = []string{
	"id", "student_id", "skill_id", "phase", "target_correct_streak", "current_streak",
	"miss_streak", "asked_count", "correct_count", "active_difficulty", "last_question_id",
	"recent_question_ids", "started_at", "updated_at",
}

// Session returns a stored session, or ErrSessionNotFound.
func (s *Store) Session(ctx context.Context, id string) (session.State, error) {
	sel := builder().Select(sessionColumns...).
		From(entsql.Table(SessionStatesTable.Name)).
		Where(entsql.EQ("id", id)).
		Limit(1)

	var (
		st    session.State
		found bool
	)
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var scanErr error
		st, scanErr = scanSession(rows)
		found = scanErr == nil
		return scanErr
	})
	if err != nil {
		return session.State{}, fmt.Errorf("query session %s: %w", id, err)
	}
	if !found {
		return session.State{}, ErrSessionNotFound
	}
	return st, nil
}

// UpsertSession writes a session keyed by its id.
func (s *Store) UpsertSession(ctx context.Context, st session.State) error {
	recent := st.RecentQuestionIDs
	if recent == nil {
		recent = []string{}
	}
	recentJSON, err := json.Marshal(recent)
	if err != nil {
		return fmt.Errorf("encode recent questions: %w", err)
	}
	updated := st.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	ins := builder().Insert(SessionStatesTable.Name).
		Columns(sessionColumns...).
		Values(st.ID, st.StudentID, st.SkillID, string(st.Phase), st.TargetCorrectStreak,
			st.CurrentStreak, st.MissStreak, st.AskedCount, st.CorrectCount,
			string(st.ActiveDifficulty), st.LastQuestionID, string(recentJSON),
			toMillis(st.StartedAt), updated.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert session %s: %w", st.ID, err)
	}
	return nil
}

func scanSession(rows *entsql.Rows) (session.State, error) {
	var (
		st                session.State
		phase, difficulty string
		recent            string
		started, updated  int64
	)
	err := rows.Scan(&st.ID, &st.StudentID, &st.SkillID, &phase, &st.TargetCorrectStreak,
		&st.CurrentStreak, &st.MissStreak, &st.AskedCount, &st.CorrectCount, &difficulty,
		&st.LastQuestionID, &recent, &started, &updated)
	if err != nil {
		return st, fmt.Errorf("scan session: %w", err)
	}
	st.Phase = session.ParsePhase(phase)
	st.ActiveDifficulty = question.ParseBand(difficulty)
	if err := json.Unmarshal([]byte(recent), &st.RecentQuestionIDs); err != nil {
		st.RecentQuestionIDs = nil
	}
	st.StartedAt = fromMillis(started)
	st.UpdatedAt = fromMillis(updated)
	return st, nil
}
