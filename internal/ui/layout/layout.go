// Package layout composes the header, body and footer of every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// Smallest terminal the questionnaire renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether width x height is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("The window is too small (%d x %d).\nResize it to at least %d x %d.",
			width, height, MinWidth, MinHeight))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws brand, screen title and respondent in three columns.
// The title column takes whatever the outer two leave.
func RenderHeader(brand, title, who string, width int) string {
	inner := max(width-2, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).PaddingLeft(1).Render(brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).PaddingRight(1).Render(who)
	mid := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	center := lipgloss.NewStyle().Width(mid).Align(lipgloss.Center).Foreground(theme.Text).Render(title)
	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// RenderFooter lists key hints separated by wide gaps.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).PaddingLeft(1).Render(strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, clipping the body to the
// rows left between them.
func RenderFrame(header, body, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
