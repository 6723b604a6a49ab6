// Package selection picks the next question for a practice session.
package selection

import (
	"math/rand/v2"

	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/remediation"
)

// Reason tags why a question was chosen.
type Reason string

const (
	ReasonRemediation  Reason = "misconception_remediation"
	ReasonTargetBand   Reason = "target_band_reinforcement"
	ReasonAdjacentBand Reason = "adjacent_band_fallback"
	ReasonAnyAvailable Reason = "any_available"
	ReasonNoQuestions  Reason = "no_questions"
)

// Input is everything the selector looks at.
type Input struct {
	// Pool is the full question list for the skill in catalog order.
	Pool       []question.Question
	TargetBand question.Band

	// RecentIDs are questions seen recently in this session.
	RecentIDs []string

	// RemediationUsedIDs are questions already served during the active
	// remediation sequence.
	RemediationUsedIDs []string

	// ExcludeID is the question just answered.
	ExcludeID string

	Remediation remediation.Status
}

// Result is the selection outcome. Question is nil only with ReasonNoQuestions.
type Result struct {
	Question   *question.Question
	Reason     Reason
	CycleReset bool
}

// Found reports whether a question was selected.
func (r Result) Found() bool {
	return r.Question != nil
}

// Selector chooses questions with a prioritized policy cascade. Random picks
// come from rng; a nil rng uses the process-wide source.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector. Pass a seeded *rand.Rand for reproducible
// picks, or nil in production.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select runs the cascade: remediation targets, then the target band, then
// adjacent bands, then anything in the candidate pool.
func (s *Selector) Select(in Input) Result {
	pool, reset := candidates(in)
	if len(pool) == 0 {
		return Result{Reason: ReasonNoQuestions, CycleReset: reset}
	}

	target := in.TargetBand
	if !target.Valid() {
		target = question.BandEasy
	}

	if in.Remediation.Active && in.Remediation.Code != "" {
		if picked := s.remediationPick(pool, target, in); picked != nil {
			return Result{Question: picked, Reason: ReasonRemediation, CycleReset: reset}
		}
	}

	if matched := filter(pool, func(q *question.Question) bool { return q.Band == target }); len(matched) > 0 {
		return Result{Question: s.pick(matched), Reason: ReasonTargetBand, CycleReset: reset}
	}
	if matched := filter(pool, func(q *question.Question) bool { return q.Band.Distance(target) == 1 }); len(matched) > 0 {
		return Result{Question: s.pick(matched), Reason: ReasonAdjacentBand, CycleReset: reset}
	}
	return Result{Question: s.pick(pool), Reason: ReasonAnyAvailable, CycleReset: reset}
}

func (s *Selector) remediationPick(pool []*question.Question, target question.Band, in Input) *question.Question {
	used := toSet(in.RemediationUsedIDs)
	matched := filter(pool, func(q *question.Question) bool {
		return q.Remediates(in.Remediation.Code) && !used[q.ID]
	})
	if len(matched) == 0 {
		return nil
	}
	if atTarget := filter(matched, func(q *question.Question) bool { return q.Band == target }); len(atTarget) > 0 {
		return s.pick(atTarget)
	}
	return s.pick(matched)
}

// candidates returns unseen questions other than the excluded one. When
// everything has been seen, it resets to the whole pool minus the excluded
// question and reports the reset.
func candidates(in Input) ([]*question.Question, bool) {
	recent := toSet(in.RecentIDs)
	var unseen, rest []*question.Question
	for i := range in.Pool {
		q := &in.Pool[i]
		if q.ID == in.ExcludeID {
			continue
		}
		rest = append(rest, q)
		if !recent[q.ID] {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) > 0 {
		return unseen, false
	}
	return rest, len(rest) > 0
}

func (s *Selector) pick(qs []*question.Question) *question.Question {
	return qs[s.intN(len(qs))]
}

func (s *Selector) intN(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

func filter(qs []*question.Question, keep func(*question.Question) bool) []*question.Question {
	var out []*question.Question
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
