package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MisconceptionEvent is one detected misconception occurrence.
type MisconceptionEvent struct {
	Timestamp  time.Time
	StudentID  string
	SkillID    string
	Code       string
	Resolved   bool
	SessionID  string
	QuestionID string
}

// Misconception table schema versions.
const (
	MisconceptionSchemaNone   = 0
	MisconceptionSchemaLegacy = 1
	MisconceptionSchemaV2     = 2
)

// MisconceptionLog appends misconception events using whatever schema the
// deployment has. Callers never branch on the version.
type MisconceptionLog interface {
	AppendMisconception(ctx context.Context, ev MisconceptionEvent) error
	SchemaVersion() int
}

// MisconceptionLog returns the adapter chosen for this database at open time.
func (s *Store) MisconceptionLog() MisconceptionLog {
	return s.misconceptions
}

// misconceptionLogV2 writes the full field set.
type misconceptionLogV2 struct {
	s *Store
}

func (l *misconceptionLogV2) SchemaVersion() int { return MisconceptionSchemaV2 }

func (l *misconceptionLogV2) AppendMisconception(ctx context.Context, ev MisconceptionEvent) error {
	seqNum, err := l.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ins := builder().Insert(MisconceptionEventsTable.Name).
		Columns("sequence", "timestamp", "student_id", "skill_id", "code", "resolved", "session_id", "question_id").
		Values(seqNum, eventTime(ev).UnixMilli(), ev.StudentID, ev.SkillID, ev.Code, ev.Resolved, ev.SessionID, ev.QuestionID)
	if err := l.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save misconception event: %w", err)
	}
	return nil
}

// misconceptionLogV1 writes the reduced field set of older deployments.
type misconceptionLogV1 struct {
	s *Store
}

func (l *misconceptionLogV1) SchemaVersion() int { return MisconceptionSchemaLegacy }

func (l *misconceptionLogV1) AppendMisconception(ctx context.Context, ev MisconceptionEvent) error {
	ins := builder().Insert(MisconceptionEventsTable.Name).
		Columns("student_id", "skill_id", "code").
		Values(ev.StudentID, ev.SkillID, ev.Code)
	if err := l.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save legacy misconception event: %w", err)
	}
	return nil
}

// misconceptionLogDisabled drops events for deployments without the table.
type misconceptionLogDisabled struct{}

func (misconceptionLogDisabled) SchemaVersion() int { return MisconceptionSchemaNone }

func (misconceptionLogDisabled) AppendMisconception(context.Context, MisconceptionEvent) error {
	return nil
}

func eventTime(ev MisconceptionEvent) time.Time {
	if ev.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return ev.Timestamp
}

// openMisconceptionLog picks the adapter matching the columns of an
// existing misconception_events table, creating the table first unless
// opts says not to.
func (s *Store) openMisconceptionLog(ctx context.Context, opts Options) (MisconceptionLog, error) {
	cols, err := s.tableColumns(ctx, MisconceptionEventsTable.Name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		if opts.NoMisconceptionTable {
			return misconceptionLogDisabled{}, nil
		}
		if err := migrate(ctx, s.drv, MisconceptionEventsTable); err != nil {
			return nil, fmt.Errorf("create misconception table: %w", err)
		}
		return &misconceptionLogV2{s: s}, nil
	}

	switch {
	case cols["sequence"] && cols["resolved"] && cols["session_id"] && cols["question_id"]:
		return &misconceptionLogV2{s: s}, nil
	case cols["student_id"] && cols["skill_id"] && cols["code"]:
		return &misconceptionLogV1{s: s}, nil
	default:
		return misconceptionLogDisabled{}, nil
	}
}

// tableColumns returns the column names of a table, or an empty set when
// the table does not exist.
func (s *Store) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("inspect %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
