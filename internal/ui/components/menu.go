package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown dimmed and
// skipped by the cursor.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions with a wrapping cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by dir to the next enabled item, wrapping around.
// The cursor stays put when no other item is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update moves the cursor on ↑/↓ (or k/j) and runs the item on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// View renders one line per item with a marker on the cursor.
func (m Menu) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines[i] = dim.Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + item.Label)
		default:
			lines[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
