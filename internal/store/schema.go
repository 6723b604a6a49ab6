package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "type", Type: field.TypeString},
		{Name: "band", Type: field.TypeString, Default: "easy"},
		{Name: "complexity", Type: field.TypeFloat64, Default: 0},
		{Name: "sort_key", Type: field.TypeInt, Default: 0},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "answer_text", Type: field.TypeString, Default: ""},
		{Name: "correct_index", Type: field.TypeInt, Nullable: true},
		{Name: "correct_indices", Type: field.TypeString, Default: "[]"},
		{Name: "options", Type: field.TypeString, Size: 2147483647, Default: "[]"},
		{Name: "config", Type: field.TypeString, Size: 2147483647, Default: "{}"},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       "questions",
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "question_skill_id_sort_key",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[1], QuestionsColumns[5]},
			},
		},
	}

	// SkillStatesColumns holds the columns for the "student_skill_states" table.
	SkillStatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "mastery_score", Type: field.TypeFloat64},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "difficulty_band", Type: field.TypeString},
		{Name: "streak", Type: field.TypeInt, Default: 0},
		{Name: "attempts_total", Type: field.TypeInt, Default: 0},
		{Name: "correct_total", Type: field.TypeInt, Default: 0},
		{Name: "avg_latency_ms", Type: field.TypeFloat64, Default: 0},
		{Name: "next_review_at", Type: field.TypeInt64, Default: 0},
		{Name: "status", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// SkillStatesTable holds the schema information for the "student_skill_states" table.
	SkillStatesTable = &schema.Table{
		Name:       "student_skill_states",
		Columns:    SkillStatesColumns,
		PrimaryKey: []*schema.Column{SkillStatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "studentskillstate_student_id_skill_id",
				Unique:  true,
				Columns: []*schema.Column{SkillStatesColumns[1], SkillStatesColumns[2]},
			},
		},
	}

	// SessionStatesColumns holds the columns for the "session_states" table.
	SessionStatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "phase", Type: field.TypeString},
		{Name: "target_correct_streak", Type: field.TypeInt, Default: 5},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "miss_streak", Type: field.TypeInt, Default: 0},
		{Name: "asked_count", Type: field.TypeInt, Default: 0},
		{Name: "correct_count", Type: field.TypeInt, Default: 0},
		{Name: "active_difficulty", Type: field.TypeString},
		{Name: "last_question_id", Type: field.TypeString, Default: ""},
		{Name: "recent_question_ids", Type: field.TypeString, Size: 2147483647, Default: "[]"},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// SessionStatesTable holds the schema information for the "session_states" table.
	SessionStatesTable = &schema.Table{
		Name:       "session_states",
		Columns:    SessionStatesColumns,
		PrimaryKey: []*schema.Column{SessionStatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "sessionstate_student_id_skill_id",
				Unique:  false,
				Columns: []*schema.Column{SessionStatesColumns[1], SessionStatesColumns[2]},
			},
		},
	}

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "misconception_code", Type: field.TypeString, Nullable: true},
		{Name: "answer_payload", Type: field.TypeString, Size: 2147483647},
		{Name: "response_ms", Type: field.TypeInt, Default: 0},
		{Name: "hint_used", Type: field.TypeBool, Default: false},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       "attempt_events",
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_session_id_sequence",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[3], AttemptEventsColumns[1]},
			},
			{
				Name:    "attemptevent_student_id_skill_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[4], AttemptEventsColumns[5]},
			},
		},
	}

	// MisconceptionEventsColumns holds the columns for the current
	// "misconception_events" table.
	MisconceptionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "student_id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "code", Type: field.TypeString},
		{Name: "resolved", Type: field.TypeBool, Default: false},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "question_id", Type: field.TypeString, Default: ""},
	}
	// MisconceptionEventsTable holds the schema information for the
	// "misconception_events" table.
	MisconceptionEventsTable = &schema.Table{
		Name:       "misconception_events",
		Columns:    MisconceptionEventsColumns,
		PrimaryKey: []*schema.Column{MisconceptionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "misconceptionevent_student_id_skill_id_code",
				Unique:  false,
				Columns: []*schema.Column{MisconceptionEventsColumns[3], MisconceptionEventsColumns[4], MisconceptionEventsColumns[5]},
			},
		},
	}

	// Tables holds the tables every deployment has.
	Tables = []*schema.Table{
		QuestionsTable,
		SkillStatesTable,
		SessionStatesTable,
		AttemptEventsTable,
	}
)
