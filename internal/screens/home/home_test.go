package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

var who = respondent.Respondent{Name: "Ana", Email: "ana@example.com", Company: "Acme"}

func TestStartAssessmentGetsFreshForm(t *testing.T) {
	var forms []*form.Form
	s := New(questionbank.Default(), who, Factories{
		Assessment: func(f *form.Form) screen.Screen {
			forms = append(forms, f)
			return &stubScreen{title: "assessment"}
		},
	}, "")

	for i := 0; i < 2; i++ {
		_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(router.PushScreenMsg); !ok {
			t.Fatal("expected PushScreenMsg")
		}
	}
	if len(forms) != 2 || forms[0] == forms[1] {
		t.Error("each assessment should start with a new form")
	}
	if len(forms[0].Missing()) != len(questionbank.Default().Questions) {
		t.Error("new form should have no answers")
	}
}

func TestHistoryDisabledWithoutFactory(t *testing.T) {
	s := New(questionbank.Default(), who, Factories{}, "")
	if !s.menu.Items[1].Disabled {
		t.Error("History should be disabled without a factory")
	}
	// With Start disabled too, the cursor lands on Exit.
	if s.menu.Selected != 2 {
		t.Errorf("selected = %d, want Exit", s.menu.Selected)
	}
}

func TestViewShowsBankAndRespondent(t *testing.T) {
	s := New(questionbank.Default(), who, Factories{}, "Recommendations disabled")
	view := s.View(120, 40)
	for _, want := range []string{questionbank.DefaultTitle, "Acme", "Recommendations disabled"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
