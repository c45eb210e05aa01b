package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

var (
	buttonActive = lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2)

	buttonInactive = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2)
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress on Enter while the button is active.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return buttonActive.Render("▸ " + b.Label)
	}
	return buttonInactive.Render(b.Label)
}
