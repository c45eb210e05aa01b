package questionnaire

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "results" }
func (s *stubScreen) Title() string                           { return "Results" }

func testBank() *questionbank.Bank {
	opts := []string{"one", "two", "three", "four", "five"}
	return &questionbank.Bank{
		Title: "Test",
		Questions: []questionbank.Question{
			{Category: "Data", Variable: "single", Description: "first", Options: opts},
			{
				Category: "Models", Variable: "subs", Description: "second", Options: opts,
				SubQuestions: []questionbank.SubQuestion{
					{Text: "sub a", Options: []string{"no", "partly", "yes"}},
					{Text: "sub b", Options: []string{"no", "partly", "yes"}},
				},
			},
		},
	}
}

func newTestScreen() (*QuestionnaireScreen, *form.Form, *int) {
	f := form.New(testBank())
	calls := 0
	s := New(f, func(*form.Form) screen.Screen {
		calls++
		return &stubScreen{}
	})
	return s, f, &calls
}

func press(s screen.Screen, key string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch key {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		msg = tea.KeyPressMsg{Code: tea.KeyUp}
	case "right":
		msg = tea.KeyPressMsg{Code: tea.KeyRight}
	case "left":
		msg = tea.KeyPressMsg{Code: tea.KeyLeft}
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	default:
		r := []rune(key)[0]
		msg = tea.KeyPressMsg{Code: r, Text: key}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func TestSingleChoiceSelectsAndAdvances(t *testing.T) {
	s, f, _ := newTestScreen()

	press(s, "down")
	press(s, "down")
	press(s, "down")
	press(s, "enter")

	if got := f.Selection("single", form.Single); got != 4 {
		t.Errorf("selection = %d, want 4", got)
	}
	if s.index != 1 {
		t.Errorf("index = %d, want 1 after answering", s.index)
	}
	if s.sub != 0 {
		t.Errorf("sub = %d, want first sub-question", s.sub)
	}
}

func TestDigitSelects(t *testing.T) {
	s, f, _ := newTestScreen()
	press(s, "2")
	if got := f.Selection("single", form.Single); got != 2 {
		t.Errorf("selection = %d, want 2", got)
	}
}

func TestArrowKeysOnlyMoveCursor(t *testing.T) {
	s, f, _ := newTestScreen()
	press(s, "down")
	if got := f.Selection("single", form.Single); got != 0 {
		t.Errorf("moving the cursor must not answer, got %d", got)
	}
	if s.index != 0 {
		t.Error("moving the cursor must not change question")
	}
}

func TestSubQuestionsCompleteOpensResults(t *testing.T) {
	s, f, calls := newTestScreen()
	press(s, "5")

	press(s, "1") // sub a
	if s.sub != 1 {
		t.Fatalf("sub = %d, want 1 after answering sub a", s.sub)
	}
	cmd := press(s, "3") // sub b, last question complete
	if cmd == nil {
		t.Fatal("expected results to open")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("results factory calls = %d, want 1", *calls)
	}
	if len(f.Missing()) != 0 {
		t.Errorf("missing = %v", f.Missing())
	}

	res := f.Evaluate()
	if res.Answers[1].Average != 2 || res.Answers[1].Level != 2 {
		t.Errorf("subs scored %+v, want average 2 level 2", res.Answers[1])
	}
}

func TestNavigationClamps(t *testing.T) {
	s, _, _ := newTestScreen()
	press(s, "left")
	if s.index != 0 {
		t.Errorf("index = %d, want 0", s.index)
	}
	press(s, "right")
	press(s, "right")
	if s.index != 1 {
		t.Errorf("index = %d, want 1", s.index)
	}
}

func TestTabCyclesSubQuestions(t *testing.T) {
	s, _, _ := newTestScreen()
	press(s, "right")
	press(s, "tab")
	if s.sub != 1 {
		t.Errorf("sub = %d, want 1", s.sub)
	}
	press(s, "tab")
	if s.sub != 0 {
		t.Errorf("sub = %d, want wrap to 0", s.sub)
	}
}

func TestNoteEditing(t *testing.T) {
	s, f, _ := newTestScreen()
	press(s, "n")
	if !s.CapturingInput() {
		t.Fatal("note editor should capture input")
	}
	for _, r := range "pilot" {
		press(s, string(r))
	}
	press(s, "enter")
	if s.CapturingInput() {
		t.Error("Enter should close the note editor")
	}
	if got := f.Note("single"); got != "pilot" {
		t.Errorf("note = %q, want %q", got, "pilot")
	}
	if got := f.Selection("single", form.Single); got != 0 {
		t.Error("typing a note must not select options")
	}
}

func TestNoteCancel(t *testing.T) {
	s, f, _ := newTestScreen()
	press(s, "n")
	press(s, "x")
	press(s, "esc")
	if s.CapturingInput() {
		t.Error("Esc should close the note editor")
	}
	if f.Note("single") != "" {
		t.Error("cancelled note must not be stored")
	}
}

func TestResultsKey(t *testing.T) {
	s, _, calls := newTestScreen()
	cmd := press(s, "r")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("results factory calls = %d", *calls)
	}
}

func TestView(t *testing.T) {
	s, _, _ := newTestScreen()
	if s.View(100, 30) == "" {
		t.Error("expected non-empty view")
	}
	press(s, "right")
	if s.View(100, 30) == "" {
		t.Error("expected non-empty view for sub-questions")
	}
}
