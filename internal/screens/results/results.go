package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/submission"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/layout"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// Submitter stores a completed form.
type Submitter interface {
	Submit(ctx context.Context, who respondent.Respondent, f *form.Form) (*submission.Outcome, error)
}

// SavedFactory builds the confirmation screen shown after a save.
type SavedFactory func(*submission.Outcome) screen.Screen

type savedMsg struct {
	outcome *submission.Outcome
	err     error
}

// ResultsScreen shows the live scoring of a form and saves it on request.
type ResultsScreen struct {
	submitter Submitter
	who       respondent.Respondent
	form      *form.Form
	saved     SavedFactory

	result  form.Result
	saving  bool
	stored  bool
	warning string
	errMsg  string
	offset  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.Resumer = (*ResultsScreen)(nil)

// New creates a ResultsScreen for f.
func New(submitter Submitter, who respondent.Respondent, f *form.Form, saved SavedFactory) *ResultsScreen {
	s := &ResultsScreen{submitter: submitter, who: who, form: f, saved: saved}
	s.result = f.Evaluate()
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

// Resume re-scores the form.
func (s *ResultsScreen) Resume() tea.Cmd {
	s.result = s.form.Evaluate()
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save results and generate PDF"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back to questions"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			var inc *form.IncompleteError
			switch {
			case errors.As(msg.err, &inc):
				s.warning = incompleteWarning(inc.Missing)
			case msg.outcome != nil:
				// Answers were stored; only the report failed.
				s.stored = true
				s.errMsg = fmt.Sprintf("Responses saved (%s) but the report failed: %v", msg.outcome.SubmissionID, msg.err)
			default:
				s.errMsg = "Save failed: " + msg.err.Error()
			}
			return s, nil
		}
		next := s.saved(msg.outcome)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "s":
			return s, s.save()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ResultsScreen) save() tea.Cmd {
	if s.saving || s.stored {
		return nil
	}
	s.result = s.form.Evaluate()
	s.errMsg = ""
	if !s.result.Complete() {
		s.warning = incompleteWarning(s.result.Missing)
		return nil
	}
	s.warning = ""
	s.saving = true

	submitter, who, f := s.submitter, s.who, s.form
	return func() tea.Msg {
		out, err := submitter.Submit(context.Background(), who, f)
		return savedMsg{outcome: out, err: err}
	}
}

func incompleteWarning(missing []string) string {
	return fmt.Sprintf("%d question(s) still unanswered: %s", len(missing), strings.Join(missing, ", "))
}

func (s *ResultsScreen) View(width, height int) string {
	var lines []string

	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines = append(lines, "", "  "+title.Render("Level by question"))
	varWidth := 10
	for _, a := range s.result.Answers {
		varWidth = max(varWidth, lipgloss.Width(a.Variable))
	}
	varWidth = min(varWidth, width/2)
	for _, a := range s.result.Answers {
		level := lipgloss.NewStyle().Foreground(theme.LevelColor(float64(a.Level))).Bold(true).
			Render(fmt.Sprintf("Level %d", a.Level))
		lines = append(lines, fmt.Sprintf("  %s  %s  %s", components.Fit(a.Variable, varWidth), level,
			dim.Render(fmt.Sprintf("(score %.2f, %s)", a.Average, a.Category))))
	}
	for _, v := range s.result.Missing {
		lines = append(lines, fmt.Sprintf("  %s  %s", components.Fit(v, varWidth), theme.Warning.Render("unanswered")))
	}

	lines = append(lines, "", "  "+title.Render("Summary by category"))
	catWidth := 10
	for _, c := range s.result.Categories {
		catWidth = max(catWidth, lipgloss.Width(c.Category))
	}
	catWidth = min(catWidth, width/3)
	barWidth := max(width-catWidth-16, 10)
	for _, c := range s.result.Categories {
		lines = append(lines, fmt.Sprintf("  %s  %s", components.Fit(c.Category, catWidth), components.LevelBar(c.Mean, barWidth)))
	}
	if len(s.result.Answers) > 0 {
		lines = append(lines, "", "  "+title.Render(fmt.Sprintf("Overall mean level: %.2f", s.result.Overall())))
	}

	lines = append(lines, "")
	switch {
	case s.saving:
		lines = append(lines, "  "+theme.Hint.Render("Saving responses and generating the report..."))
	case s.errMsg != "":
		lines = append(lines, "  "+theme.ErrorText.Render(s.errMsg))
	case s.warning != "":
		lines = append(lines, "  "+theme.Warning.Render("⚠ "+s.warning))
	default:
		btn := components.NewButton("Save results and generate PDF", s.result.Complete(), nil)
		lines = append(lines, "  "+btn.View())
	}

	// Keep the status line visible by scrolling the body only.
	offset := min(s.offset, max(len(lines)-height, 0))
	s.offset = offset
	return strings.Join(lines[offset:], "\n")
}
