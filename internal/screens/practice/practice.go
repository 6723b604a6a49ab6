package practice

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillcoach/internal/mastery"
	svc "github.com/abhisek/skillcoach/internal/practice"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/router"
	"github.com/abhisek/skillcoach/internal/screen"
	"github.com/abhisek/skillcoach/internal/screens/summary"
	"github.com/abhisek/skillcoach/internal/selection"
	"github.com/abhisek/skillcoach/internal/session"
	"github.com/abhisek/skillcoach/internal/ui/components"
	"github.com/abhisek/skillcoach/internal/ui/layout"
)

// Engine is the part of the practice service the screen drives.
type Engine interface {
	StartSession(ctx context.Context, req svc.StartRequest) (*svc.StartResult, error)
	ProcessAttempt(ctx context.Context, req svc.AttemptRequest) (*svc.AttemptResult, error)
}

// PracticeScreen runs one practice session for a student and skill.
type PracticeScreen struct {
	engine    Engine
	studentID string
	skillID   string
	now       func() time.Time

	session  *session.State
	mastery  mastery.State
	question *question.Question
	reason   selection.Reason
	askedAt  time.Time

	choices    components.ChoiceList
	input      components.TextInput
	usingInput bool

	result        *svc.AttemptResult
	pending       bool
	confirmQuit   bool
	score         int
	longestStreak int
	errMsg        string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen.
func New(engine Engine, studentID, skillID string) *PracticeScreen {
	return &PracticeScreen{
		engine:    engine,
		studentID: studentID,
		skillID:   skillID,
		now:       time.Now,
		input:     components.NewTextInput("Type your answer...", false, 80),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(s.start(), s.input.Init())
}

func (s *PracticeScreen) Title() string {
	return "Practice: " + s.skillID
}

func (s *PracticeScreen) Status() string {
	if s.session == nil {
		return ""
	}
	return fmt.Sprintf("%s  score %+d", s.session.Phase, s.score)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "End session"}, {Key: "N", Description: "Keep going"}}
	case s.result != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.question != nil && !s.usingInput && s.choices.Multi:
		return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Space", Description: "Toggle"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
	case s.question != nil && !s.usingInput:
		return []layout.KeyHint{{Key: "↑↓/1-9", Description: "Choose"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)
	case attemptDoneMsg:
		return s.handleAttemptDone(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.usingInput && s.result == nil && !s.pending {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) start() tea.Cmd {
	return func() tea.Msg {
		res, err := s.engine.StartSession(context.Background(), svc.StartRequest{
			StudentID: s.studentID,
			SkillID:   s.skillID,
		})
		return sessionStartedMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	st := msg.Result.Session
	s.session = &st
	s.mastery = msg.Result.Mastery
	s.reason = msg.Result.Reason
	if msg.Result.Question == nil {
		s.errMsg = fmt.Sprintf("No questions for skill %q. Import a catalog first.", s.skillID)
		return s, nil
	}
	s.showQuestion(msg.Result.Question)
	return s, nil
}

// showQuestion resets the input widgets for q and starts its clock.
func (s *PracticeScreen) showQuestion(q *question.Question) {
	s.question = q
	s.result = nil
	s.askedAt = s.now()
	s.usingInput = !q.Type.IsChoice()
	if s.usingInput {
		s.input.Reset(placeholder(q), numericInput(q))
		return
	}
	texts := make([]string, len(q.Options))
	for i, o := range q.Options {
		texts[i] = o.Text
	}
	s.choices = components.NewChoiceList(texts, q.Type == question.TypeMultiChoice)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.finish()
	}
	if s.session == nil || s.pending {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.result != nil {
		return s, s.advance()
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.usingInput {
		if key == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	s.choices, _ = s.choices.Update(msg)
	if s.choices.Submitted {
		return s.submit()
	}
	return s, nil
}

func (s *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	q := s.question
	if q == nil {
		return s, nil
	}

	var ans []byte
	if s.usingInput {
		if s.input.Value() == "" {
			return s, nil
		}
		ans = encodeTextAnswer(q, s.input.Value())
	} else {
		ans = encodeChoiceAnswer(q, s.choices.Selection())
	}

	req := svc.AttemptRequest{
		SessionID:  s.session.ID,
		StudentID:  s.studentID,
		SkillID:    s.skillID,
		QuestionID: q.ID,
		Answer:     ans,
		ResponseMs: int(s.now().Sub(s.askedAt).Milliseconds()),
	}
	s.pending = true
	return s, func() tea.Msg {
		res, err := s.engine.ProcessAttempt(context.Background(), req)
		return attemptDoneMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) handleAttemptDone(msg attemptDoneMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	res := msg.Result
	s.result = res
	s.score += res.ScoreDelta
	st := res.Session
	s.session = &st
	s.mastery = res.Mastery
	s.reason = res.SelectionReason
	s.longestStreak = max(s.longestStreak, st.CurrentStreak)
	if s.usingInput {
		s.input.Submit(res.IsCorrect)
	}
	return s, nil
}

// advance moves past the feedback to the next question, or ends the
// session when it is done or out of questions.
func (s *PracticeScreen) advance() tea.Cmd {
	res := s.result
	if res.Session.IsDone() || res.NextQuestion == nil {
		return s.finish()
	}
	s.showQuestion(res.NextQuestion)
	return nil
}

// finish shows the summary, or leaves directly if nothing was answered.
func (s *PracticeScreen) finish() tea.Cmd {
	if s.session == nil || s.session.AskedCount == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum := session.BuildSummary(*s.session, s.longestStreak)
	next := summary.New(sum, s.score)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
