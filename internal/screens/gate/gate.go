package gate

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/gate"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/layout"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// GateScreen asks for the access password before anything else is shown.
type GateScreen struct {
	gate     *gate.Gate
	next     func() screen.Screen
	input    components.TextInput
	attempts int
	passed   bool
}

var _ screen.Screen = (*GateScreen)(nil)
var _ screen.KeyHintProvider = (*GateScreen)(nil)

// New creates a GateScreen that replaces itself with next() once the
// password is accepted.
func New(g *gate.Gate, next func() screen.Screen) *GateScreen {
	return &GateScreen{
		gate:  g,
		next:  next,
		input: components.NewPasswordInput("Password"),
	}
}

func (s *GateScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *GateScreen) Title() string {
	return "Restricted access"
}

func (s *GateScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Unlock"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GateScreen) submit() tea.Cmd {
	if s.passed {
		return nil
	}
	if s.input.Value() == "" {
		return nil
	}
	if err := s.gate.Check(s.input.Value()); err != nil {
		s.attempts++
		s.input.SetValue("")
		if errors.Is(err, gate.ErrWrongPassword) {
			s.input.Err = "Incorrect password."
		} else {
			s.input.Err = err.Error()
		}
		return nil
	}
	s.passed = true
	s.input.Err = ""
	next := s.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *GateScreen) View(width, height int) string {
	var sections []string
	sections = append(sections,
		theme.Title.Render("🔐 Restricted access"),
		"",
		theme.Subtitle.Render("Enter the password to open the questionnaire."),
		"",
		theme.Card.Render(s.input.View()),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
