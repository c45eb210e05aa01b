package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Fit truncates s to width cells and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
