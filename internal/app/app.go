package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillcoach/internal/router"
	"github.com/abhisek/skillcoach/internal/screen"
	"github.com/abhisek/skillcoach/internal/ui/layout"
)

// Model is the root Bubble Tea model. It owns the screen stack and draws
// the header and footer around the active screen.
type Model struct {
	router *router.Router
	width  int
	height int
}

// New creates the root model with root as the bottom screen.
func New(root screen.Screen) Model {
	return Model{router: router.New(root)}
}

func (m Model) Init() tea.Cmd {
	return m.router.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = append(hp.KeyHints(), hints...)
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program with root as the first screen.
func Run(root screen.Screen) error {
	_, err := tea.NewProgram(New(root)).Run()
	return err
}
