package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcoach/internal/diagnosis"
	"github.com/abhisek/skillcoach/internal/question"
	"github.com/abhisek/skillcoach/internal/selection"
	"github.com/abhisek/skillcoach/internal/ui/components"
	"github.com/abhisek/skillcoach/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect, "\n\n"+s.errMsg)
	case s.session == nil:
		return centered(width, theme.Muted, "\n\n  Starting session...")
	case s.confirmQuit:
		return centered(width, theme.Body, "\n\nEnd this session now?\n\n(y / n)")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(theme.Divider.Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if q := s.question; q != nil {
		b.WriteString(centered(width, theme.Body.Bold(true), q.Prompt))
		b.WriteString("\n\n")
		if extra := questionDetails(q); extra != "" {
			b.WriteString(centered(width, theme.Hint, extra))
			b.WriteString("\n\n")
		}
		if s.usingInput {
			b.WriteString("  " + s.input.View())
		} else {
			b.WriteString(s.choices.View(s.correctOptions()))
		}
		b.WriteString("\n\n")
	}

	if s.pending {
		b.WriteString(theme.Muted.Render("  Checking..."))
	} else if s.result != nil {
		b.WriteString(s.renderFeedback())
	}

	b.WriteString("\n\n")
	barWidth := min(width-4, 60)
	b.WriteString("  " + components.NewProgressBar("Mastery", s.mastery.Mastery, barWidth).View())
	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar("Confidence", s.mastery.Confidence, barWidth).View())
	return b.String()
}

func (s *PracticeScreen) renderInfoLine(width int) string {
	st := s.session
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s", s.skillID))
	right := theme.Muted.Render(fmt.Sprintf("Q %d  ✓ %d  streak %d  ", st.AskedCount+1, st.CorrectCount, st.CurrentStreak)) +
		theme.PhaseStyle(string(st.Phase)).Render(string(st.Phase)) +
		theme.Muted.Render(fmt.Sprintf("  %s", st.ActiveDifficulty))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *PracticeScreen) renderFeedback() string {
	res := s.result
	var b strings.Builder
	if res.IsCorrect {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("  Correct!  %+d", res.ScoreDelta)))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  Not quite.  %+d", res.ScoreDelta)))
		if res.MisconceptionCode != "" {
			b.WriteString("\n  ")
			b.WriteString(theme.Muted.Render(diagnosis.Label(res.MisconceptionCode)))
		}
	}
	if res.SelectionReason == selection.ReasonRemediation {
		b.WriteString("\n  ")
		b.WriteString(theme.Remediation.Render(
			fmt.Sprintf("Next up: practice on %s", diagnosis.Label(res.Remediation.Code))))
	}
	if res.Session.IsDone() {
		b.WriteString("\n  ")
		b.WriteString(theme.Correct.Render("You've finished this skill."))
	}
	return b.String()
}

// correctOptions marks the right options once an answer has been checked.
func (s *PracticeScreen) correctOptions() map[int]bool {
	if s.result == nil || s.question == nil {
		return nil
	}
	q := s.question
	out := make(map[int]bool)
	if q.CorrectIndex != nil {
		out[*q.CorrectIndex] = true
	}
	for _, i := range q.CorrectIndices {
		out[i] = true
	}
	return out
}

// questionDetails lists what a text answer has to refer to for the
// structured question types.
func questionDetails(q *question.Question) string {
	switch q.Type {
	case question.TypeDragGroup, question.TypeOrdering:
		ids := make([]string, len(q.Config.Items))
		for i, it := range q.Config.Items {
			ids[i] = it.ID
		}
		if len(ids) > 0 {
			return "Items: " + strings.Join(ids, ", ")
		}
	case question.TypeFillBlank, question.TypeGridArithmetic:
		if keys := q.Config.SortedBlankKeys(); len(keys) > 1 {
			return "Blanks: " + strings.Join(keys, ", ")
		}
	case question.TypeShadeGrid:
		if q.Config.Rows != nil && q.Config.Cols != nil {
			return fmt.Sprintf("Grid: %d x %d", *q.Config.Rows, *q.Config.Cols)
		}
	}
	if q.Config.Content != "" {
		return q.Config.Content
	}
	return ""
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
