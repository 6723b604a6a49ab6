package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/skillcoach/internal/mastery"
	"github.com/abhisek/skillcoach/internal/question"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func learning() mastery.State {
	return mastery.State{Mastery: 0.4, Confidence: 0.3, Band: question.BandEasy}
}

func strong() mastery.State {
	return mastery.State{Mastery: 0.9, Confidence: 0.7, Band: question.BandHard, AvgLatencyMs: 5000}
}

func TestNew(t *testing.T) {
	s := New("sess-1", "stu", "frac", t0)
	if s.Phase != PhaseWarmup {
		t.Errorf("Phase = %s, want warmup", s.Phase)
	}
	if s.TargetCorrectStreak != DefaultTargetCorrectStreak {
		t.Errorf("TargetCorrectStreak = %d", s.TargetCorrectStreak)
	}
	if s.ActiveDifficulty != question.BandEasy {
		t.Errorf("ActiveDifficulty = %s", s.ActiveDifficulty)
	}
}

func TestRecord_Counters(t *testing.T) {
	s := New("sess", "stu", "frac", t0)
	s = Record(s, Outcome{QuestionID: "q1", Correct: true, Mastery: learning()})
	s = Record(s, Outcome{QuestionID: "q2", Correct: true, Mastery: learning()})
	if s.CurrentStreak != 2 || s.MissStreak != 0 {
		t.Errorf("streaks = %d/%d, want 2/0", s.CurrentStreak, s.MissStreak)
	}
	s = Record(s, Outcome{QuestionID: "q3", Mastery: learning()})
	if s.CurrentStreak != 0 || s.MissStreak != 1 {
		t.Errorf("streaks = %d/%d, want 0/1", s.CurrentStreak, s.MissStreak)
	}
	if s.AskedCount != 3 || s.CorrectCount != 2 {
		t.Errorf("asked %d correct %d", s.AskedCount, s.CorrectCount)
	}
	if s.LastQuestionID != "q3" {
		t.Errorf("LastQuestionID = %q", s.LastQuestionID)
	}
}

func TestRecord_DoesNotMutateInput(t *testing.T) {
	prev := New("sess", "stu", "frac", t0)
	prev.RecentQuestionIDs = []string{"a", "b"}
	_ = Record(prev, Outcome{QuestionID: "a", Correct: true, Mastery: learning()})
	if prev.AskedCount != 0 || prev.RecentQuestionIDs[0] != "a" || prev.RecentQuestionIDs[1] != "b" {
		t.Errorf("prev was modified: %+v", prev)
	}
}

func TestPhase_WarmupToCore(t *testing.T) {
	s := New("sess", "stu", "frac", t0)
	for i := 0; i < 2; i++ {
		s = Record(s, Outcome{Correct: true, Mastery: learning()})
		if s.Phase != PhaseWarmup {
			t.Fatalf("after %d answers phase = %s, want warmup", i+1, s.Phase)
		}
	}
	s = Record(s, Outcome{Mastery: learning()})
	if s.Phase != PhaseCore {
		t.Errorf("phase = %s, want core after 3 answers", s.Phase)
	}
}

func TestPhase_CoreToChallenge(t *testing.T) {
	s := State{Phase: PhaseCore, AskedCount: 4, CorrectCount: 2, CurrentStreak: 2, TargetCorrectStreak: 5}
	s = Record(s, Outcome{Correct: true, Mastery: learning()})
	if s.Phase != PhaseChallenge {
		t.Errorf("phase = %s, want challenge", s.Phase)
	}

	low := State{Phase: PhaseCore, AskedCount: 9, CorrectCount: 3, CurrentStreak: 2, TargetCorrectStreak: 5}
	low = Record(low, Outcome{Correct: true, Mastery: learning()})
	if low.Phase != PhaseCore {
		t.Errorf("phase = %s, low accuracy should stay in core", low.Phase)
	}
}

func TestPhase_ChallengeMissWithoutCode(t *testing.T) {
	s := State{Phase: PhaseChallenge, AskedCount: 8, CorrectCount: 7, CurrentStreak: 4}
	s = Record(s, Outcome{Correct: false, Mastery: learning()})
	if s.Phase != PhaseRecovery {
		t.Errorf("phase = %s, want recovery", s.Phase)
	}
}

func TestPhase_MisconceptionFromAnyPhase(t *testing.T) {
	for _, p := range []Phase{PhaseCore, PhaseRecovery} {
		s := State{Phase: p, AskedCount: 5, CorrectCount: 4, CurrentStreak: 2}
		s = Record(s, Outcome{Correct: false, MisconceptionCode: "carry_error", Mastery: learning()})
		if s.Phase != PhaseRecovery {
			t.Errorf("from %s: phase = %s, want recovery", p, s.Phase)
		}
	}

	// Warmup completion is evaluated first.
	s := State{Phase: PhaseWarmup, AskedCount: 2}
	s = Record(s, Outcome{Correct: false, MisconceptionCode: "carry_error", Mastery: learning()})
	if s.Phase != PhaseCore {
		t.Errorf("phase = %s, warmup exit takes precedence", s.Phase)
	}

	// A miss without a code in core stays in core.
	s = State{Phase: PhaseCore, AskedCount: 5, CorrectCount: 4}
	s = Record(s, Outcome{Correct: false, Mastery: learning()})
	if s.Phase != PhaseCore {
		t.Errorf("phase = %s, want core", s.Phase)
	}
}

func TestPhase_RecoveryToCore(t *testing.T) {
	s := State{Phase: PhaseRecovery, AskedCount: 6, CorrectCount: 3}
	s = Record(s, Outcome{Correct: true, Mastery: learning()})
	if s.Phase != PhaseRecovery {
		t.Fatalf("phase = %s after one correct, want recovery", s.Phase)
	}
	s = Record(s, Outcome{Correct: true, Mastery: learning()})
	if s.Phase != PhaseCore {
		t.Errorf("phase = %s after two correct, want core", s.Phase)
	}
}

func TestPhase_Done(t *testing.T) {
	base := State{
		Phase:               PhaseChallenge,
		TargetCorrectStreak: 5,
		AskedCount:          9,
		CorrectCount:        9,
		CurrentStreak:       4,
		ActiveDifficulty:    question.BandHard,
	}

	s := Record(base, Outcome{Correct: true, Mastery: strong()})
	if s.Phase != PhaseDone {
		t.Fatalf("phase = %s, want done", s.Phase)
	}

	tests := []struct {
		name   string
		mutate func(*State, *mastery.State)
	}{
		{"not hard yet", func(s *State, _ *mastery.State) { s.ActiveDifficulty = question.BandMedium }},
		{"short streak", func(s *State, _ *mastery.State) { s.CurrentStreak = 3 }},
		{"low accuracy", func(s *State, _ *mastery.State) { s.CorrectCount = 5 }},
		{"low mastery", func(_ *State, m *mastery.State) { m.Mastery = 0.84 }},
		{"low confidence", func(_ *State, m *mastery.State) { m.Confidence = 0.6 }},
		{"slow", func(_ *State, m *mastery.State) { m.AvgLatencyMs = 9500 }},
	}
	for _, tc := range tests {
		st, m := base, strong()
		tc.mutate(&st, &m)
		got := Record(st, Outcome{Correct: true, Mastery: m})
		if got.Phase == PhaseDone {
			t.Errorf("%s: phase = done, want not done", tc.name)
		}
	}

	noLatency := strong()
	noLatency.AvgLatencyMs = 0
	if got := Record(base, Outcome{Correct: true, Mastery: noLatency}); got.Phase != PhaseDone {
		t.Errorf("no latency recorded: phase = %s, want done", got.Phase)
	}
}

func TestPhase_DoneIsTerminal(t *testing.T) {
	s := State{Phase: PhaseDone, AskedCount: 10}
	for _, o := range []Outcome{
		{Correct: false, MisconceptionCode: "x", Mastery: learning()},
		{Correct: true, Mastery: learning()},
	} {
		s = Record(s, o)
		if s.Phase != PhaseDone {
			t.Fatalf("phase = %s, done must be terminal", s.Phase)
		}
	}
}

func TestRecord_ActiveDifficultyFollowsMastery(t *testing.T) {
	s := New("sess", "stu", "frac", t0)
	m := learning()
	m.Band = question.BandMedium
	s = Record(s, Outcome{Correct: true, Mastery: m})
	if s.ActiveDifficulty != question.BandMedium {
		t.Errorf("ActiveDifficulty = %s, want medium", s.ActiveDifficulty)
	}
}

func TestPushRecent(t *testing.T) {
	pool := []string{"a", "b", "c"}
	r := PushRecent(nil, "a", pool)
	r = PushRecent(r, "b", pool)
	if len(r) != 2 {
		t.Fatalf("recent = %v", r)
	}
	r = PushRecent(r, "a", pool)
	if len(r) != 2 || r[0] != "b" || r[1] != "a" {
		t.Errorf("repeat should move to newest, got %v", r)
	}
	r = PushRecent(r, "c", pool)
	if len(r) != 0 {
		t.Errorf("window covering the pool should reset, got %v", r)
	}
}

func TestPushRecent_Cap(t *testing.T) {
	var pool, r []string
	for i := 0; i < 60; i++ {
		pool = append(pool, fmt.Sprintf("q%02d", i))
	}
	for i := 0; i < 50; i++ {
		r = PushRecent(r, pool[i], pool)
	}
	if len(r) != MaxRecentQuestions {
		t.Fatalf("len = %d, want %d", len(r), MaxRecentQuestions)
	}
	if r[0] != "q10" || r[len(r)-1] != "q49" {
		t.Errorf("window = %s..%s, want q10..q49", r[0], r[len(r)-1])
	}
}

func TestParsePhase(t *testing.T) {
	if ParsePhase("challenge") != PhaseChallenge || ParsePhase("bogus") != PhaseWarmup {
		t.Error("ParsePhase mismatch")
	}
}

func TestBuildSummary(t *testing.T) {
	s := State{AskedCount: 4, CorrectCount: 3, Phase: PhaseCore, ActiveDifficulty: question.BandMedium,
		StartedAt: t0, UpdatedAt: t0.Add(5 * time.Minute)}
	sum := BuildSummary(s, 3)
	if sum.Duration != 5*time.Minute || sum.Accuracy != 0.75 || sum.FinalBand != "medium" || sum.LongestStreak != 3 {
		t.Errorf("summary = %+v", sum)
	}
}
