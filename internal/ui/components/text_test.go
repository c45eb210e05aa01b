package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "quality", 10, "quality"},
		{"ascii cut", "data_quality_checks", 8, "data_qu…"},
		{"accented", "Gestión de información", 8, "Gestión…"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateWideRunes(t *testing.T) {
	wide := strings.Repeat("品", 25)
	for _, w := range []int{1, 10, 39, 49, 50, 80} {
		got := Truncate(wide, w)
		if lipgloss.Width(got) > w {
			t.Errorf("width %d: got %d cells", w, lipgloss.Width(got))
		}
	}
	if got := Truncate(wide, 50); got != wide {
		t.Error("a string exactly as wide as the limit must not be cut")
	}
}

func TestFit(t *testing.T) {
	if got := Fit("ab", 5); got != "ab   " {
		t.Errorf("Fit pad = %q", got)
	}
	if got := Fit(strings.Repeat("品", 10), 7); lipgloss.Width(got) != 7 {
		t.Errorf("Fit(wide, 7) is %d cells wide", lipgloss.Width(got))
	}
}
