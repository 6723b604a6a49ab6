package answer

import (
	"sort"
	"strings"

	"github.com/abhisek/skillcoach/internal/question"
)

// checkDragGroup checks every item that has a target group. Items without a
// target are free placements and are not checked.
func checkDragGroup(q *question.Question, p Payload) bool {
	placements, ok := p.Unwrap("placements", "groups").Map()
	if !ok {
		return false
	}

	checked := 0
	for _, item := range q.Config.Items {
		if item.TargetGroup == "" {
			continue
		}
		raw, present := placements[item.ID]
		if !present {
			return false
		}
		group, ok := question.Text(raw)
		if !ok || strings.TrimSpace(group) != item.TargetGroup {
			return false
		}
		checked++
	}
	return checked > 0
}

// ExpectedOrder returns the explicit expected order if authored, otherwise
// the ids of items carrying a correct position, sorted by that position.
func ExpectedOrder(q *question.Question) []string {
	if len(q.Config.ExpectedOrder) > 0 {
		return q.Config.ExpectedOrder
	}

	var positioned []question.Item
	for _, item := range q.Config.Items {
		if item.CorrectPosition != nil {
			positioned = append(positioned, item)
		}
	}
	sort.SliceStable(positioned, func(i, j int) bool {
		return *positioned[i].CorrectPosition < *positioned[j].CorrectPosition
	})

	ids := make([]string, len(positioned))
	for i, item := range positioned {
		ids[i] = item.ID
	}
	return ids
}

func checkOrdering(q *question.Question, p Payload) bool {
	expected := ExpectedOrder(q)
	if len(expected) == 0 {
		return false
	}
	got, ok := p.Unwrap("order", "items").Strings()
	if !ok || len(got) != len(expected) {
		return false
	}
	for i := range expected {
		if strings.TrimSpace(got[i]) != expected[i] {
			return false
		}
	}
	return true
}
