package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// MultiChoice is a single-select option list. Options are numbered from 1
// and Chosen holds the 1-based pick, or 0 before anything was picked.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Cursor   int
	Chosen   int
	Focused  bool
	Numbered bool
}

// NewMultiChoice creates an option list with chosen (1-based, 0 for none)
// preselected and the cursor on it.
func NewMultiChoice(prompt string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen > 0 && chosen <= len(options) {
		cursor = chosen - 1
	}
	return MultiChoice{
		Prompt:   prompt,
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
		Focused:  true,
		Numbered: true,
	}
}

// Update moves the cursor with ↑↓ and picks with Enter or Space. Digit keys
// pick the matching option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if !m.Focused {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space", " ":
		m.Chosen = m.Cursor + 1
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '0'); n <= len(m.Options) {
				m.Cursor = n - 1
				m.Chosen = n
			}
		}
	}
	return m, nil
}

// Answered reports whether an option was picked.
func (m MultiChoice) Answered() bool { return m.Chosen > 0 }

// View renders the prompt and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Prompt != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if !m.Focused {
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(m.Prompt))
		b.WriteString("\n")
	}

	for i, opt := range m.Options {
		prefix := "  "
		if m.Focused && i == m.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if i+1 == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)
		if m.Numbered {
			line = fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)
		}

		switch {
		case m.Focused && i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case i+1 == m.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case !m.Focused:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
