package diagnosis

import (
	"github.com/abhisek/skillcoach/internal/answer"
	"github.com/abhisek/skillcoach/internal/question"
)

// Generic misconception codes produced when authoring metadata has nothing
// more specific to say.
const (
	CodeOffByOne        = "off_by_one"
	CodePlaceValueShift = "place_value_shift"
	CodeOverestimate    = "overestimate"
	CodeUnderestimate   = "underestimate"
	CodeUnanswered      = "mcq_unanswered"
)

// ClassifyInput holds the context for classifying a wrong answer.
type ClassifyInput struct {
	Question *question.Question
	Answer   answer.Payload
}

// IncorrectCode is the last-resort code for a question type.
func IncorrectCode(t question.Type) string {
	return "incorrect_" + t.String()
}
