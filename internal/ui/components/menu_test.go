package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabledAndWraps(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	down := tea.KeyPressMsg{Code: tea.KeyDown}
	steps := []int{3, 1, 3}
	for _, want := range steps {
		m, _ = m.Update(down)
		if m.Selected != want {
			t.Fatalf("selected = %d, want %d", m.Selected, want)
		}
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter should run the selected action")
	}
}
