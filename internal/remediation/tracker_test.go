package remediation

import (
	"reflect"
	"testing"
)

func TestTrack_Empty(t *testing.T) {
	st := Track(nil)
	if st.Active || st.AnchorIndex != -1 || st.Code != "" {
		t.Errorf("got %+v, want inactive", st)
	}
}

func TestTrack_AnchorJustHappened(t *testing.T) {
	history := []Attempt{
		{QuestionID: "q5", MisconceptionCode: "carry_error"},
		{QuestionID: "q4", Correct: true},
	}
	st := Track(history)
	if !st.Active || st.Code != "carry_error" || st.Remaining != 2 || st.AnchorIndex != 0 {
		t.Errorf("got %+v, want active carry_error with 2 remaining", st)
	}
	if len(st.UsedQuestionIDs) != 0 {
		t.Errorf("UsedQuestionIDs = %v, want none", st.UsedQuestionIDs)
	}
}

func TestTrack_ExpiresAfterTwoAttempts(t *testing.T) {
	anchor := Attempt{QuestionID: "q1", MisconceptionCode: "carry_error"}

	one := Track([]Attempt{{QuestionID: "r1", Correct: true}, anchor})
	if !one.Active || one.Remaining != 1 {
		t.Errorf("after one attempt: %+v, want active with 1 remaining", one)
	}
	if !reflect.DeepEqual(one.UsedQuestionIDs, []string{"r1"}) {
		t.Errorf("UsedQuestionIDs = %v", one.UsedQuestionIDs)
	}

	// A miss without a code does not re-anchor.
	two := Track([]Attempt{{QuestionID: "r2"}, {QuestionID: "r1", Correct: true}, anchor})
	if two.Active || two.Remaining != 0 {
		t.Errorf("after two attempts: %+v, want inactive", two)
	}
	if two.Code != "carry_error" || two.AnchorIndex != 2 {
		t.Errorf("expired status should still name the anchor, got %+v", two)
	}
}

func TestTrack_ReAnchor(t *testing.T) {
	history := []Attempt{
		{QuestionID: "r2", MisconceptionCode: "sign_error"},
		{QuestionID: "r1", Correct: true},
		{QuestionID: "q1", MisconceptionCode: "carry_error"},
	}
	st := Track(history)
	if st.Code != "sign_error" || st.Remaining != 2 {
		t.Errorf("got %+v, want newest anchor sign_error", st)
	}
}

func TestTrack_Idempotent(t *testing.T) {
	history := []Attempt{
		{QuestionID: "r1", Correct: true},
		{QuestionID: "q1", MisconceptionCode: "carry_error"},
	}
	first := Track(history)
	second := Track(history)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Track is not idempotent: %+v vs %+v", first, second)
	}
	if history[0].QuestionID != "r1" || len(history) != 2 {
		t.Error("history was modified")
	}
}
