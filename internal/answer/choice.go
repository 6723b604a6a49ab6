package answer

import (
	"sort"

	"github.com/abhisek/skillcoach/internal/question"
)

// SelectedIndex returns the single option index chosen in p. Both a bare
// number and {"selected": n} are accepted.
func SelectedIndex(p Payload) (int, bool) {
	return p.Unwrap().Int()
}

// SelectedIndices returns the option indices chosen in p. A bare number is
// treated as a one-element selection.
func SelectedIndices(p Payload) ([]int, bool) {
	v := p.Unwrap()
	if idx, ok := v.Ints(); ok {
		return idx, true
	}
	if n, ok := v.Int(); ok {
		return []int{n}, true
	}
	return nil, false
}

func checkSingleChoice(q *question.Question, p Payload) bool {
	if q.CorrectIndex == nil {
		return false
	}
	idx, ok := SelectedIndex(p)
	if !ok {
		return false
	}
	return idx == *q.CorrectIndex
}

func checkMultiChoice(q *question.Question, p Payload) bool {
	if len(q.CorrectIndices) == 0 {
		return false
	}
	got, ok := p.Unwrap().Ints()
	if !ok {
		return false
	}
	return equalSortedInts(got, q.CorrectIndices)
}

func equalSortedInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
