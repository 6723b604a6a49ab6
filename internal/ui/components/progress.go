package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillcoach/internal/ui/theme"
)

// ProgressBar is a horizontal gauge for a [0,1] value.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// View renders the label, the bar and the percentage.
func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Body.Render(fmt.Sprintf("%-11s", p.Label)) + " "
	}

	barWidth := max(p.Width-lipgloss.Width(label)-6, 4)
	pct := min(max(p.Percent, 0), 1)
	filled := int(float64(barWidth) * pct)

	return label +
		theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Muted.Render(fmt.Sprintf(" %3d%%", int(pct*100+0.5)))
}
