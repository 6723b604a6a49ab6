package diagnosis

import (
	"math"

	"github.com/abhisek/skillcoach/internal/answer"
	"github.com/abhisek/skillcoach/internal/question"
)

const diffEpsilon = 1e-9

// NumericDiffClassifier classifies the gap between a numeric answer and the
// numeric expected value.
type NumericDiffClassifier struct{}

func (c *NumericDiffClassifier) Name() string { return "numeric-diff" }

func (c *NumericDiffClassifier) Classify(input *ClassifyInput) string {
	got, want, ok := numericPair(input)
	if !ok {
		return ""
	}
	return ClassifyDifference(got - want)
}

// ClassifyDifference names a signed difference (actual minus expected).
// A zero difference has no code.
func ClassifyDifference(diff float64) string {
	switch abs := math.Abs(diff); {
	case abs < diffEpsilon:
		return ""
	case math.Abs(abs-1) < diffEpsilon:
		return CodeOffByOne
	case math.Abs(abs-10) < diffEpsilon:
		return CodePlaceValueShift
	case diff > 0:
		return CodeOverestimate
	default:
		return CodeUnderestimate
	}
}

func numericPair(input *ClassifyInput) (got, want float64, ok bool) {
	q := input.Question
	switch q.Type {
	case question.TypeTextInput:
		want, ok = question.Number(q.AnswerText)
		if !ok {
			return 0, 0, false
		}
		got, ok = input.Answer.Unwrap().Number()
		return got, want, ok

	case question.TypeMeasurement:
		want, ok = answer.ExpectedMeasurement(q)
		if !ok {
			return 0, 0, false
		}
		got, ok = input.Answer.Unwrap().Number()
		return got, want, ok

	case question.TypeFillBlank, question.TypeGridArithmetic:
		return blankPair(input)
	}
	return 0, 0, false
}

// blankPair returns the first mismatching blank, in key order, where both
// sides are numeric.
func blankPair(input *ClassifyInput) (float64, float64, bool) {
	cfg := input.Question.Config
	answers, ok := input.Answer.Unwrap("blanks", "answers").Map()
	if !ok {
		return 0, 0, false
	}
	for _, key := range cfg.SortedBlankKeys() {
		want, okWant := question.Number(cfg.Blanks[key])
		got, okGot := question.Number(answers[key])
		if !okWant || !okGot || math.Abs(got-want) < diffEpsilon {
			continue
		}
		return got, want, true
	}
	return 0, 0, false
}
