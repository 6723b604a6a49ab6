package answer

import (
	"math"

	"github.com/abhisek/skillcoach/internal/question"
)

// MeasurementTolerance is the absolute tolerance for measurement answers.
const MeasurementTolerance = 1e-4

// ExpectedMeasurement resolves the target value of a measurement question:
// explicit target fields first, then a numeric parse of the stored answer.
func ExpectedMeasurement(q *question.Question) (float64, bool) {
	if q.Config.TargetValue != nil {
		return *q.Config.TargetValue, true
	}
	if q.Config.ExpectedValue != nil {
		return *q.Config.ExpectedValue, true
	}
	return question.Number(q.AnswerText)
}

func checkMeasurement(q *question.Question, p Payload) bool {
	want, ok := ExpectedMeasurement(q)
	if !ok {
		return false
	}
	got, ok := p.Unwrap().Number()
	if !ok {
		return false
	}
	return math.Abs(got-want) <= MeasurementTolerance
}

// GridCells returns the number of shadeable cells: pie segments for pie
// shapes, otherwise rows×cols, otherwise the segment count. Zero means the
// geometry is unknown.
func GridCells(cfg question.Config) int {
	segments := 0
	if cfg.Segments != nil && *cfg.Segments > 0 {
		segments = *cfg.Segments
	}
	if cfg.Shape == "pie" && segments > 0 {
		return segments
	}
	if cfg.Rows != nil && cfg.Cols != nil && *cfg.Rows > 0 && *cfg.Cols > 0 {
		return *cfg.Rows * *cfg.Cols
	}
	return segments
}

// ExpectedShadedCount derives how many cells a correct answer shades.
// Precedence: explicit target count, authored numerator/denominator, then a
// fraction found in the answer text, config content or prompt. A fraction
// that does not land on a whole number of cells has no expected count.
func ExpectedShadedCount(q *question.Question) (int, bool) {
	cfg := q.Config
	if cfg.TargetCount != nil {
		if *cfg.TargetCount < 0 {
			return 0, false
		}
		return *cfg.TargetCount, true
	}

	num, den, ok := authoredFraction(q)
	if !ok {
		return 0, false
	}

	cells := float64(GridCells(cfg))
	if cells == 0 {
		cells = den
	}
	exact := num * cells / den
	rounded := math.Round(exact)
	if math.Abs(exact-rounded) > 1e-9 || rounded < 0 {
		return 0, false
	}
	return int(rounded), true
}

func authoredFraction(q *question.Question) (float64, float64, bool) {
	cfg := q.Config
	if cfg.Numerator != nil && cfg.Denominator != nil {
		return *cfg.Numerator, *cfg.Denominator, true
	}
	for _, s := range []string{q.AnswerText, cfg.Content, q.Prompt} {
		if num, den, ok := question.ParseFraction(s); ok {
			return num, den, true
		}
	}
	return 0, 0, false
}

// ShadedCount derives the number of shaded cells from the answer's shape: a
// number or numeric string, an array of cells, or an object with a count or
// selected member. An explicit count wins over the selected list.
func ShadedCount(p Payload) (int, bool) {
	if n, ok := p.Int(); ok {
		return n, n >= 0
	}
	if list, ok := p.List(); ok {
		return len(list), true
	}
	if _, ok := p.Map(); !ok {
		return 0, false
	}
	if n, ok := p.Field("count").Int(); ok {
		return n, n >= 0
	}
	if list, ok := p.Field("selected").List(); ok {
		return len(list), true
	}
	return 0, false
}

func checkShadeGrid(q *question.Question, p Payload) bool {
	want, ok := ExpectedShadedCount(q)
	if !ok {
		return false
	}
	got, ok := ShadedCount(p)
	if !ok {
		return false
	}
	return got == want
}
