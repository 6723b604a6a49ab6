package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
)

var skillStateColumns = []string{
	"student_id", "skill_id", "mastery_score", "confidence", "difficulty_band", "streak",
	"attempts_total", "correct_total", "avg_latency_ms", "next_review_at", "status", "updated_at",
}

// SkillState returns the stored state for (student, skill). found is false
// when the student has never attempted the skill.
func (s *Store) SkillState(ctx context.Context, studentID, skillID string) (st mastery.State, found bool, err error) {
	sel := builder().Select(skillStateColumns...).
		From(entsql.Table(SkillStatesTable.Name)).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("skill_id", skillID),
		)).
		Limit(1)

	err = s.query(ctx, sel, func(rows *entsql.Rows) error {
		var scanErr error
		st, scanErr = scanSkillState(rows)
		found = scanErr == nil
		return scanErr
	})
	if err != nil {
		return mastery.State{}, false, fmt.Errorf("query skill state: %w", err)
	}
	return st, found, nil
}

// SkillStates returns every skill state of a student, ordered by skill.
func (s *Store) SkillStates(ctx context.Context, studentID string) ([]mastery.State, error) {
	sel := builder().Select(skillStateColumns...).
		From(entsql.Table(SkillStatesTable.Name)).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy("skill_id")

	var out []mastery.State
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		st, err := scanSkillState(rows)
		if err != nil {
			return err
		}
		out = append(out, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query skill states: %w", err)
	}
	return out, nil
}

// UpsertSkillState writes st keyed by (student, skill). Concurrent writers
// are last-writer-wins.
func (s *Store) UpsertSkillState(ctx context.Context, st mastery.State) error {
	updated := st.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	ins := builder().Insert(SkillStatesTable.Name).
		Columns(skillStateColumns...).
		Values(st.StudentID, st.SkillID, st.Mastery, st.Confidence, string(st.Band), st.Streak,
			st.AttemptsTotal, st.CorrectTotal, st.AvgLatencyMs, toMillis(st.NextReviewAt),
			string(st.Status), updated.UnixMilli()).
		OnConflict(entsql.ConflictColumns("student_id", "skill_id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert skill state %s/%s: %w", st.StudentID, st.SkillID, err)
	}
	return nil
}

func scanSkillState(rows *entsql.Rows) (mastery.State, error) {
	var (
		st                 mastery.State
		band, status       string
		nextReview, update int64
	)
	err := rows.Scan(&st.StudentID, &st.SkillID, &st.Mastery, &st.Confidence, &band, &st.Streak,
		&st.AttemptsTotal, &st.CorrectTotal, &st.AvgLatencyMs, &nextReview, &status, &update)
	if err != nil {
		return st, fmt.Errorf("scan skill state: %w", err)
	}
	st.Band = question.ParseBand(band)
	st.Status = mastery.Status(status)
	st.NextReviewAt = fromMillis(nextReview)
	st.UpdatedAt = fromMillis(update)
	return st, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
