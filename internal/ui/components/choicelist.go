package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillcoach/internal/ui/theme"
)

// ChoiceList is an option selector. In multi mode space toggles options
// and enter submits the set; in single mode enter submits the cursor.
type ChoiceList struct {
	Options   []string
	Multi     bool
	Cursor    int
	Submitted bool

	toggled map[int]bool
}

// NewChoiceList creates a choice list over options.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{
		Options: options,
		Multi:   multi,
		toggled: make(map[int]bool),
	}
}

// Update handles navigation, toggling and submission. Number keys jump to
// an option; in single mode they also submit it.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.toggle(c.Cursor)
		}
	case "enter":
		c.Submitted = len(c.Options) > 0
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(c.Options) {
				c.Cursor = idx
				if c.Multi {
					c.toggle(idx)
				} else {
					c.Submitted = true
				}
			}
		}
	}
	return c, nil
}

func (c *ChoiceList) toggle(i int) {
	if c.toggled == nil {
		c.toggled = make(map[int]bool)
	}
	c.toggled[i] = !c.toggled[i]
}

// Selection returns the chosen indices in ascending order. Single mode
// returns the cursor.
func (c ChoiceList) Selection() []int {
	if !c.Multi {
		return []int{c.Cursor}
	}
	var out []int
	for i := range c.Options {
		if c.toggled[i] {
			out = append(out, i)
		}
	}
	return out
}

// View renders the options. After submission, correct options are shown in
// green and wrongly chosen ones in red when correct is non-nil.
func (c ChoiceList) View(correct map[int]bool) string {
	chosen := make(map[int]bool)
	for _, i := range c.Selection() {
		chosen[i] = true
	}

	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Submitted {
			prefix = "▸ "
		}
		mark := ""
		if c.Multi {
			mark = "[ ] "
			if chosen[i] {
				mark = "[x] "
			}
		}
		line := fmt.Sprintf("%s%d) %s%s", prefix, i+1, mark, opt)

		switch {
		case c.Submitted && correct != nil && correct[i]:
			line = theme.Correct.Render(line)
		case c.Submitted && correct != nil && chosen[i]:
			line = theme.Incorrect.Render(line)
		case c.Submitted:
			line = theme.Muted.Render(line)
		case i == c.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
