package answer

import (
	"strings"

	"github.com/abhisek/skillcoach/internal/question"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func checkTextInput(q *question.Question, p Payload) bool {
	expected := normalize(q.AnswerText)
	if expected == "" {
		return false
	}
	got, ok := p.Unwrap().String()
	if !ok {
		return false
	}
	return normalize(got) == expected
}

// checkBlanks requires every expected sub-field to be present and equal,
// ignoring case and surrounding whitespace. Extra answer keys are ignored.
func checkBlanks(q *question.Question, p Payload) bool {
	expected := q.Config.Blanks
	if len(expected) == 0 {
		return false
	}
	got, ok := p.Unwrap("blanks", "answers").Map()
	if !ok {
		return false
	}
	for key, want := range expected {
		raw, present := got[key]
		if !present {
			return false
		}
		s, ok := question.Text(raw)
		if !ok || normalize(s) != normalize(want) {
			return false
		}
	}
	return true
}

// PictureWord joins a string or character-array answer into one uppercased word.
func PictureWord(p Payload) (string, bool) {
	v := p.Unwrap("letters", "word", "answer")
	if s, ok := v.String(); ok {
		return strings.ToUpper(strings.TrimSpace(s)), true
	}
	letters, ok := v.Strings()
	if !ok {
		return "", false
	}
	return strings.ToUpper(strings.TrimSpace(strings.Join(letters, ""))), true
}

func checkPictureWord(q *question.Question, p Payload) bool {
	expected := strings.ToUpper(strings.TrimSpace(q.AnswerText))
	if expected == "" {
		return false
	}
	got, ok := PictureWord(p)
	if !ok {
		return false
	}
	return got == expected
}
