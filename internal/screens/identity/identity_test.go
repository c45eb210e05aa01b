package identity

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestIdentity(initial respondent.Respondent) (*IdentityScreen, *[]respondent.Respondent) {
	var got []respondent.Respondent
	s := New(initial, func(r respondent.Respondent) screen.Screen {
		got = append(got, r)
		return &stubScreen{}
	})
	s.Init()
	return s, &got
}

func typeText(s screen.Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s screen.Screen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestEnterAdvancesFields(t *testing.T) {
	s, _ := newTestIdentity(respondent.Respondent{})
	typeText(s, "Ana")
	enter(s)
	if s.focus != fieldEmail {
		t.Errorf("focus = %d, want email field", s.focus)
	}
}

func TestInvalidEmailReprompts(t *testing.T) {
	s, got := newTestIdentity(respondent.Respondent{Name: "Ana", Email: "ana@", Company: "Acme"})
	s.setFocus(fieldCompany)

	enter(s)

	if len(*got) != 0 {
		t.Fatal("invalid email must not continue")
	}
	if s.focus != fieldEmail {
		t.Errorf("focus = %d, want email field", s.focus)
	}
	if s.inputs[fieldEmail].Err == "" {
		t.Error("expected an email error")
	}
	if s.inputs[fieldName].Value() != "Ana" || s.inputs[fieldCompany].Value() != "Acme" {
		t.Error("other fields must keep their values")
	}
}

func TestMissingCompany(t *testing.T) {
	s, got := newTestIdentity(respondent.Respondent{Name: "Ana", Email: "ana@example.com"})
	s.setFocus(fieldCompany)
	enter(s)
	if len(*got) != 0 {
		t.Fatal("missing company must not continue")
	}
	if s.inputs[fieldCompany].Err == "" {
		t.Error("expected a company error")
	}
}

func TestValidSubmit(t *testing.T) {
	s, got := newTestIdentity(respondent.Respondent{Name: " Ana ", Email: "ana@example.com"})
	s.setFocus(fieldCompany)
	typeText(s, "Acme")

	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if len(*got) != 1 {
		t.Fatalf("next called %d times, want 1", len(*got))
	}
	want := respondent.Respondent{Name: "Ana", Email: "ana@example.com", Company: "Acme"}
	if (*got)[0] != want {
		t.Errorf("respondent = %+v, want %+v", (*got)[0], want)
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	var replaced bool
	for _, c := range batch {
		if _, ok := c().(router.ReplaceScreenMsg); ok {
			replaced = true
		}
	}
	if !replaced {
		t.Error("expected a ReplaceScreenMsg in the batch")
	}
}

func TestTabWraps(t *testing.T) {
	s, _ := newTestIdentity(respondent.Respondent{})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldCompany {
		t.Errorf("shift+tab from first field: focus = %d, want company", s.focus)
	}
}
