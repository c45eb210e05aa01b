package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// Factories builds the screens reachable from home. Nil entries disable the
// matching menu item.
type Factories struct {
	Assessment func(f *form.Form) screen.Screen
	History    func() screen.Screen
}

// HomeScreen is the main menu shown after the respondent is identified.
type HomeScreen struct {
	bank      *questionbank.Bank
	who       respondent.Respondent
	factories Factories
	notice    string
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. notice is shown under the menu, e.g. when
// recommendations are unavailable.
func New(bank *questionbank.Bank, who respondent.Respondent, factories Factories, notice string) *HomeScreen {
	s := &HomeScreen{bank: bank, who: who, factories: factories, notice: notice}

	items := []components.MenuItem{
		{Label: "Start assessment", Disabled: factories.Assessment == nil, Action: func() tea.Cmd {
			next := factories.Assessment(form.New(bank))
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "History", Disabled: factories.History == nil, Action: func() tea.Cmd {
			next := factories.History()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	counts := make(map[string]int)
	for _, q := range s.bank.Questions {
		counts[q.Category]++
	}
	var cats []string
	for _, c := range s.bank.Categories() {
		cats = append(cats, fmt.Sprintf("%s (%d)", c, counts[c]))
	}

	sections := []string{
		theme.Title.Render(s.bank.Title),
	}
	if s.bank.Objective != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(min(width-8, 80)).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.bank.Objective))
	}
	sections = append(sections,
		"",
		theme.Hint.Render(fmt.Sprintf("%d questions · %s", len(s.bank.Questions), strings.Join(cats, " · "))),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render("Respondent: "+s.who.String()),
		"",
		s.menu.View(),
	)
	if s.notice != "" {
		sections = append(sections, theme.Hint.Render(s.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
