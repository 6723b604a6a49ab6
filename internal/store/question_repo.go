package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/skillcoach/internal/question"
)

// QuestionRecord is a question as written by the catalog importer. Config
// is the raw authoring blob; it is parsed into question.Config on read.
type QuestionRecord struct {
	ID             string
	SkillID        string
	Type           string
	Band           string
	Complexity     float64
	SortKey        int
	Prompt         string
	AnswerText     string
	CorrectIndex   *int
	CorrectIndices []int
	Options        []question.Option
	Config         json.RawMessage
}

var questionColumns = []string{
	"id", "skill_id", "type", "band", "complexity", "sort_key", "prompt",
	"answer_text", "correct_index", "correct_indices", "options", "config",
}

// UpsertQuestion inserts or replaces a question by id.
func (s *Store) UpsertQuestion(ctx context.Context, rec QuestionRecord) error {
	indices, err := json.Marshal(nonNilInts(rec.CorrectIndices))
	if err != nil {
		return fmt.Errorf("encode correct indices: %w", err)
	}
	options := rec.Options
	if options == nil {
		options = []question.Option{}
	}
	opts, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	cfg := string(rec.Config)
	if cfg == "" {
		cfg = "{}"
	}
	var correctIndex any
	if rec.CorrectIndex != nil {
		correctIndex = *rec.CorrectIndex
	}

	ins := builder().Insert(QuestionsTable.Name).
		Columns(append(questionColumns, "updated_at")...).
		Values(rec.ID, rec.SkillID, rec.Type, rec.Band, rec.Complexity, rec.SortKey, rec.Prompt,
			rec.AnswerText, correctIndex, string(indices), string(opts), cfg, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert question %s: %w", rec.ID, err)
	}
	return nil
}

// QuestionsBySkill returns a skill's questions ordered by sort key.
func (s *Store) QuestionsBySkill(ctx context.Context, skillID string) ([]question.Question, error) {
	sel := builder().Select(questionColumns...).
		From(entsql.Table(QuestionsTable.Name)).
		Where(entsql.EQ("skill_id", skillID)).
		OrderBy("sort_key", "id")

	var out []question.Question
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		q, err := scanQuestion(rows)
		if err != nil {
			return err
		}
		out = append(out, q)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query questions for %s: %w", skillID, err)
	}
	return out, nil
}

// Skills returns every skill id that has at least one question.
func (s *Store) Skills(ctx context.Context) ([]string, error) {
	sel := builder().Select("skill_id").Distinct().
		From(entsql.Table(QuestionsTable.Name)).
		OrderBy("skill_id")

	var out []string
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	return out, nil
}

func scanQuestion(rows *entsql.Rows) (question.Question, error) {
	var (
		q                         question.Question
		typ, band                 string
		correctIndex              sql.NullInt64
		indices, options, cfgBlob string
	)
	err := rows.Scan(&q.ID, &q.SkillID, &typ, &band, &q.Complexity, &q.SortKey, &q.Prompt,
		&q.AnswerText, &correctIndex, &indices, &options, &cfgBlob)
	if err != nil {
		return q, fmt.Errorf("scan question: %w", err)
	}

	q.Type = question.ParseType(typ)
	q.Band = question.ParseBand(band)
	if correctIndex.Valid {
		idx := int(correctIndex.Int64)
		q.CorrectIndex = &idx
	}
	// Stored JSON was written by UpsertQuestion; a corrupt value degrades
	// to an empty field rather than failing the whole pool.
	_ = json.Unmarshal([]byte(indices), &q.CorrectIndices)
	_ = json.Unmarshal([]byte(options), &q.Options)
	q.Config = question.ParseConfig([]byte(cfgBlob))
	return q, nil
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
