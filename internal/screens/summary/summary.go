package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcoach/internal/router"
	"github.com/abhisek/skillcoach/internal/screen"
	"github.com/abhisek/skillcoach/internal/session"
	"github.com/abhisek/skillcoach/internal/ui/layout"
	"github.com/abhisek/skillcoach/internal/ui/theme"
)

// SummaryScreen displays the end-of-session summary.
type SummaryScreen struct {
	summary *session.Summary
	score   int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. score is the net score change of the session.
func New(summary *session.Summary, score int) *SummaryScreen {
	return &SummaryScreen{summary: summary, score: score}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	heading := "Session ended"
	if sum.Phase == session.PhaseDone {
		heading = "Skill complete!"
	}
	b.WriteString(center(theme.Title, heading))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Muted, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Asked, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Divider, strings.Repeat("─", max(min(width-8, 60), 0))))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Longest streak: %d    Final band: %s    Phase: %s",
		sum.LongestStreak, sum.FinalBand, sum.Phase)))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	sign := "+"
	if s.score < 0 {
		scoreStyle = theme.Incorrect
		sign = ""
	}
	b.WriteString(center(scoreStyle, fmt.Sprintf("Score %s%d", sign, s.score)))
	b.WriteString("\n")

	return b.String()
}
