package practice

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StartRequest opens a practice session. SessionID is optional; a new id is
// generated when it is empty.
type StartRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	StudentID string `json:"student_id" validate:"required,max=128"`
	SkillID   string `json:"skill_id" validate:"required,max=128"`
}

// AttemptRequest is one submitted answer.
type AttemptRequest struct {
	SessionID  string          `json:"session_id" validate:"required,max=128"`
	StudentID  string          `json:"student_id" validate:"required,max=128"`
	SkillID    string          `json:"skill_id" validate:"required,max=128"`
	QuestionID string          `json:"question_id" validate:"required,max=128"`
	Answer     json.RawMessage `json:"answer"`
	ResponseMs int             `json:"response_ms" validate:"gte=0"`
	HintUsed   bool            `json:"hint_used"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateRequest returns a *ValidationError for the first failing field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return &ValidationError{Field: fe.Field(), Rule: fe.Tag(), Err: err}
	}
	return &ValidationError{Field: "request", Rule: "struct", Err: err}
}
