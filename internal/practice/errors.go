package practice

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionMismatch  = errors.New("session belongs to a different student or skill")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field string
	Rule  string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: failed %q", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error { return e.Err }
