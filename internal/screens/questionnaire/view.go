package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/theme"
)

func (s *QuestionnaireScreen) View(width, height int) string {
	q := s.question()
	total := len(s.form.Bank().Questions)
	answered, _ := s.form.Progress()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Category)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", s.index+1, total))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n  ")

	bar := components.NewProgressBar(fmt.Sprintf("%d/%d answered", answered, total),
		float64(answered)/float64(max(total, 1)), true, width-6)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	title := q.Variable
	if s.form.Answered(q) {
		title += "  " + theme.Chosen.Render("✓")
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width-4).PaddingLeft(2).Foreground(theme.TextDim).Render(q.Description))
	b.WriteString("\n\n")

	if q.HasSubQuestions() {
		b.WriteString(s.renderSubQuestions())
	} else {
		b.WriteString(indent(s.choice.View(), "  "))
	}

	b.WriteString("\n")
	if s.editingNote {
		b.WriteString(indent(s.note.View(), "  "))
	} else if note := s.form.Note(q.Variable); note != "" {
		b.WriteString("  " + theme.Hint.Render("Note: "+note))
	}
	return b.String()
}

// renderSubQuestions shows the focused sub-question with its options and
// the others as a single summary line.
func (s *QuestionnaireScreen) renderSubQuestions() string {
	q := s.question()
	var b strings.Builder
	b.WriteString("  " + theme.Hint.Render("Specific sub-assessment:"))
	b.WriteString("\n")
	for j, sq := range q.SubQuestions {
		if j == s.sub {
			b.WriteString(indent(s.choice.View(), "  "))
			continue
		}
		mark := "○"
		answer := theme.Hint.Render("unanswered")
		if v := s.form.Selection(q.Variable, j); v > 0 {
			mark = "●"
			answer = lipgloss.NewStyle().Foreground(theme.Success).Render(sq.Options[v-1])
		}
		line := fmt.Sprintf("  %s %s  ", mark, sq.Text)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + answer)
		b.WriteString("\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
