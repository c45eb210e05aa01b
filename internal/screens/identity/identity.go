package identity

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/layout"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

const (
	fieldName = iota
	fieldEmail
	fieldCompany
	fieldCount
)

// IdentityScreen collects the respondent's name, email and company.
type IdentityScreen struct {
	inputs []components.TextInput
	focus  int
	next   func(respondent.Respondent) screen.Screen
	done   bool
}

var _ screen.Screen = (*IdentityScreen)(nil)
var _ screen.KeyHintProvider = (*IdentityScreen)(nil)
var _ screen.InputCapturer = (*IdentityScreen)(nil)

// New creates an IdentityScreen prefilled with initial. Once the data is
// valid it replaces itself with next(r).
func New(initial respondent.Respondent, next func(respondent.Respondent) screen.Screen) *IdentityScreen {
	inputs := make([]components.TextInput, fieldCount)
	inputs[fieldName] = components.NewTextInput("Full name", "Ana Pérez", 120)
	inputs[fieldEmail] = components.NewTextInput("Email", "ana@example.com", 254)
	inputs[fieldCompany] = components.NewTextInput("Company", "Acme Corp", 120)
	inputs[fieldName].SetValue(initial.Name)
	inputs[fieldEmail].SetValue(initial.Email)
	inputs[fieldCompany].SetValue(initial.Company)
	return &IdentityScreen{inputs: inputs, next: next}
}

func (s *IdentityScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *IdentityScreen) Title() string {
	return "Respondent"
}

func (s *IdentityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// CapturingInput keeps Esc from leaving while fields are being typed.
func (s *IdentityScreen) CapturingInput() bool { return true }

func (s *IdentityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focus < fieldCount-1 && s.inputs[s.focus].Value() != "" {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.submit()
		case "esc":
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *IdentityScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[s.focus].Focus()
}

// Respondent returns the current field values.
func (s *IdentityScreen) Respondent() respondent.Respondent {
	return respondent.Respondent{
		Name:    s.inputs[fieldName].Value(),
		Email:   s.inputs[fieldEmail].Value(),
		Company: s.inputs[fieldCompany].Value(),
	}.Normalize()
}

func (s *IdentityScreen) submit() tea.Cmd {
	if s.done {
		return nil
	}
	for i := range s.inputs {
		s.inputs[i].Err = ""
	}

	r := s.Respondent()
	if err := r.Validate(); err != nil {
		field := fieldName
		msg := "Please enter your full name."
		switch {
		case errors.Is(err, respondent.ErrInvalidEmail):
			field, msg = fieldEmail, "Please enter a valid email address."
		case errors.Is(err, respondent.ErrCompanyRequired):
			field, msg = fieldCompany, "Please enter your company."
		}
		s.inputs[field].Err = msg
		return s.setFocus(field)
	}

	s.done = true
	next := s.next(r)
	return tea.Batch(
		func() tea.Msg { return screen.RespondentMsg{Label: r.String()} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func (s *IdentityScreen) View(width, height int) string {
	fields := make([]string, 0, len(s.inputs))
	for _, in := range s.inputs {
		fields = append(fields, in.View())
	}
	content := strings.Join([]string{
		theme.Title.Render("📋 Respondent details"),
		"",
		theme.Subtitle.Render("These appear on the report and in the response log."),
		"",
		theme.Card.Render(strings.Join(fields, "\n\n")),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
