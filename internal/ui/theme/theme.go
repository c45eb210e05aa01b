package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, muted for a business audience
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// levelColors runs from red (ad hoc) to green (optimized).
var levelColors = []color.Color{
	lipgloss.Color("#F43F5E"),
	lipgloss.Color("#F97316"),
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#84CC16"),
	lipgloss.Color("#22C55E"),
}

// LevelColor returns the color for a maturity level or mean level.
func LevelColor(level float64) color.Color {
	i := int(level+0.5) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(levelColors) {
		i = len(levelColors) - 1
	}
	return levelColors[i]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)
