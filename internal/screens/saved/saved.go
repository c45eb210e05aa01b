package saved

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/submission"
	"github.com/decisionmotor/maturity/internal/ui/layout"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// SavedScreen confirms a stored submission.
type SavedScreen struct {
	outcome *submission.Outcome
}

var _ screen.Screen = (*SavedScreen)(nil)
var _ screen.KeyHintProvider = (*SavedScreen)(nil)

// New creates a SavedScreen for outcome.
func New(outcome *submission.Outcome) *SavedScreen {
	return &SavedScreen{outcome: outcome}
}

func (s *SavedScreen) Init() tea.Cmd { return nil }

func (s *SavedScreen) Title() string { return "Saved" }

func (s *SavedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SavedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SavedScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := lipgloss.NewStyle().Foreground(theme.Text)

	lines := []string{
		theme.Title.Render("✅ Responses saved"),
		"",
		dim.Render("Submission ") + body.Render(s.outcome.SubmissionID),
		dim.Render("Report     ") + body.Render(s.outcome.ReportPath),
	}

	if recs := s.outcome.Recommendations; recs != nil && recs.Summary != "" {
		lines = append(lines, "",
			lipgloss.NewStyle().Width(min(width-8, 90)).Foreground(theme.Secondary).Render(recs.Summary))
	}
	if s.outcome.AdviceErr != nil {
		lines = append(lines, "", theme.Warning.Render("Recommendations were unavailable; the report was written without them."))
	}

	card := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
