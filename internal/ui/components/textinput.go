package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an error line.
type TextInput struct {
	Model textinput.Model
	Label string
	Err   string
}

// NewTextInput creates a labelled text input. A positive maxLen limits the
// number of characters.
func NewTextInput(label, placeholder string, maxLen int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetWidth(40)
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return TextInput{Model: ti, Label: label}
}

// NewPasswordInput creates a masked text input.
func NewPasswordInput(label string) TextInput {
	t := NewTextInput(label, "", 128)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and any error.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	view := ""
	if t.Label != "" {
		view = labelStyle.Render(t.Label) + "\n"
	}
	view += t.Model.View()
	if t.Err != "" {
		view += "\n" + theme.ErrorText.Render(t.Err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
