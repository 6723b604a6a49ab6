// Package answer decides whether a submitted answer is correct for a
// question. Checks never panic or return errors: a payload or question field
// that cannot be interpreted makes the check fail.
package answer

import "github.com/abhisek/skillcoach/internal/question"

// Checker decides correctness for one question type.
type Checker func(q *question.Question, p Payload) bool

// checkers holds one rule per known type. TypeUnknown is deliberately absent.
var checkers = map[question.Type]Checker{
	question.TypeSingleChoice:   checkSingleChoice,
	question.TypeMultiChoice:    checkMultiChoice,
	question.TypeTextInput:      checkTextInput,
	question.TypeFillBlank:      checkBlanks,
	question.TypeGridArithmetic: checkBlanks,
	question.TypeDragGroup:      checkDragGroup,
	question.TypeOrdering:       checkOrdering,
	question.TypePictureWord:    checkPictureWord,
	question.TypeMeasurement:    checkMeasurement,
	question.TypeShadeGrid:      checkShadeGrid,
}

// Check reports whether p is a correct answer to q. Unknown question types
// are never correct.
func Check(q *question.Question, p Payload) bool {
	if q == nil {
		return false
	}
	check, ok := checkers[q.Type]
	if !ok {
		return false
	}
	return check(q, p)
}
