package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AttemptEvent is one append-only attempt log entry.
type AttemptEvent struct {
	Sequence          int64
	Timestamp         time.Time
	SessionID         string
	StudentID         string
	SkillID           string
	QuestionID        string
	IsCorrect         bool
	MisconceptionCode string // empty when none was detected
	Answer            json.RawMessage
	ResponseMs        int
	HintUsed          bool
}

var attemptColumns = []string{
	"sequence", "timestamp", "session_id", "student_id", "skill_id", "question_id",
	"is_correct", "misconception_code", "answer_payload", "response_ms", "hint_used",
}

// AppendAttempt records an attempt and returns it with its sequence number
// and timestamp filled in.
func (s *Store) AppendAttempt(ctx context.Context, ev AttemptEvent) (AttemptEvent, error) {
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return ev, fmt.Errorf("next sequence: %w", err)
	}
	ev.Sequence = seqNum
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	var code any
	if ev.MisconceptionCode != "" {
		code = ev.MisconceptionCode
	}
	answer := string(ev.Answer)
	if answer == "" {
		answer = "null"
	}

	ins := builder().Insert(AttemptEventsTable.Name).
		Columns(attemptColumns...).
		Values(ev.Sequence, ev.Timestamp.UnixMilli(), ev.SessionID, ev.StudentID, ev.SkillID,
			ev.QuestionID, ev.IsCorrect, code, answer, ev.ResponseMs, ev.HintUsed)
	if err := s.exec(ctx, ins); err != nil {
		return ev, fmt.Errorf("save attempt event: %w", err)
	}
	return ev, nil
}

// RecentAttempts returns up to limit attempts of a session, newest first.
// A limit <= 0 returns the whole session.
func (s *Store) RecentAttempts(ctx context.Context, sessionID string, limit int) ([]AttemptEvent, error) {
	sel := builder().Select(attemptColumns...).
		From(entsql.Table(AttemptEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	var out []AttemptEvent
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			ev     AttemptEvent
			ts     int64
			code   sql.NullString
			answer string
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.SessionID, &ev.StudentID, &ev.SkillID,
			&ev.QuestionID, &ev.IsCorrect, &code, &answer, &ev.ResponseMs, &ev.HintUsed); err != nil {
			return fmt.Errorf("scan attempt event: %w", err)
		}
		ev.Timestamp = fromMillis(ts)
		ev.MisconceptionCode = code.String
		ev.Answer = json.RawMessage(answer)
		out = append(out, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query attempts for %s: %w", sessionID, err)
	}
	return out, nil
}

// CountAttempts returns how many attempts a session has made on a question.
func (s *Store) CountAttempts(ctx context.Context, sessionID, questionID string) (int, error) {
	sel := builder().Select(entsql.Count("*")).
		From(entsql.Table(AttemptEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("session_id", sessionID),
			entsql.EQ("question_id", questionID),
		))

	var n int
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}
