package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/decisionmotor/maturity/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// LevelBar renders a fixed-width bar for a mean level on the 0..5 scale,
// colored by level, followed by the value.
func LevelBar(mean float64, width int) string {
	const maxLevel = 5.0
	if width < 5 {
		width = 5
	}
	filled := int(float64(width)*mean/maxLevel + 0.5)
	filled = max(0, min(filled, width))
	bar := lipgloss.NewStyle().Foreground(theme.LevelColor(mean)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
	return bar + lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(" %.2f", mean))
}
