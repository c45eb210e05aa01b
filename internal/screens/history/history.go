package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/scoring"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/store"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/layout"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Submissions []store.SubmissionRecord
	Err         error
}

type categoriesLoadedMsg struct {
	SubmissionID string
	Categories   []scoring.CategorySummary
	Err          error
}

// HistoryScreen lists stored submissions, newest first.
type HistoryScreen struct {
	repo        store.ResponseRepo
	submissions []store.SubmissionRecord
	categories  map[string][]scoring.CategorySummary
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.ResponseRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:       repo,
		categories: make(map[string][]scoring.CategorySummary),
		expanded:   make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		subs, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Submissions: subs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Categories"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.submissions = msg.Submissions
		}
		s.loaded = true
		return s, nil

	case categoriesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.categories[msg.SubmissionID] = msg.Categories
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.submissions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.submissions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.submissions[s.selected].SubmissionID
			if _, ok := s.categories[id]; s.expanded[s.selected] && !ok {
				return s, s.loadCategories(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadCategories(id string) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		rows, err := repo.QueryResponses(context.Background(), store.ResponseFilter{SubmissionID: id})
		if err != nil {
			return categoriesLoadedMsg{SubmissionID: id, Err: err}
		}
		answers := make([]scoring.Answer, 0, len(rows))
		for _, r := range rows {
			answers = append(answers, scoring.Answer{
				Category: r.Category,
				Variable: r.Variable,
				Average:  r.Average,
				Level:    scoring.Level(r.Level),
			})
		}
		return categoriesLoadedMsg{SubmissionID: id, Categories: scoring.Aggregate(answers)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.submissions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No submissions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sub := range s.submissions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %s  %2d questions  mean %.2f",
			prefix, sub.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			components.Fit(sub.RespondentName, 20), components.Fit(sub.Company, 20),
			sub.QuestionCount, sub.OverallLevel)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(sub, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(sub store.SubmissionRecord, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	cats, ok := s.categories[sub.SubmissionID]
	if !ok {
		b.WriteString(dim.Italic(true).Render("      Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	catWidth := 10
	for _, c := range cats {
		catWidth = max(catWidth, lipgloss.Width(c.Category))
	}
	catWidth = min(catWidth, max(width/3, 10))
	barWidth := max(width-catWidth-20, 10)
	for _, c := range cats {
		b.WriteString(fmt.Sprintf("      %s  %s\n", components.Fit(c.Category, catWidth), components.LevelBar(c.Mean, barWidth)))
	}
	if sub.ReportPath != "" {
		b.WriteString(dim.Render("      Report: " + sub.ReportPath))
		b.WriteString("\n")
	}
	return b.String()
}
