package practice

import (
	svc "github.com/abhisek/skillcoach/internal/practice"
)

// sessionStartedMsg carries the opened session and its first question.
type sessionStartedMsg struct {
	Result *svc.StartResult
	Err    error
}

// attemptDoneMsg carries the outcome of a submitted answer.
type attemptDoneMsg struct {
	Result *svc.AttemptResult
	Err    error
}
