package diagnosis

import (
	"github.com/abhisek/skillcoach/internal/answer"
	"github.com/abhisek/skillcoach/internal/question"
)

// Classifier is a rule-based misconception classifier.
// Returns a misconception code, or "" if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) string
}

// DefaultClassifiers returns classifiers in priority order. Only a choice
// miss on an uncoded option comes back empty.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&ChoiceClassifier{},
		&NumericDiffClassifier{},
		&FallbackClassifier{},
	}
}

// RunClassifiers executes classifiers in order.
// Returns the first match and the classifier name, or ("", "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (string, string) {
	for _, c := range classifiers {
		if code := c.Classify(input); code != "" {
			return code, c.Name()
		}
	}
	return "", ""
}

var defaultChain = DefaultClassifiers()

// Detect derives a misconception code for an incorrect answer to q, or "" when
// a selected option carries no code. Only call it after answer.Check has
// returned false.
func Detect(q *question.Question, p answer.Payload) string {
	if q == nil {
		return IncorrectCode(question.TypeUnknown)
	}
	code, _ := RunClassifiers(defaultChain, &ClassifyInput{Question: q, Answer: p})
	return code
}
