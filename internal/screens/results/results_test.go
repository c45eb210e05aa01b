package results

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/respondent"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/submission"
)

type fakeSubmitter struct {
	calls int
	out   *submission.Outcome
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ respondent.Respondent, _ *form.Form) (*submission.Outcome, error) {
	f.calls++
	return f.out, f.err
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "saved" }
func (s *stubScreen) Title() string                           { return "Saved" }

func testForm(t *testing.T, complete bool) *form.Form {
	t.Helper()
	opts := []string{"one", "two", "three", "four", "five"}
	f := form.New(&questionbank.Bank{
		Title: "Test",
		Questions: []questionbank.Question{
			{Category: "Data", Variable: "quality", Description: "d", Options: opts},
			{Category: "Models", Variable: "usage", Description: "d", Options: opts},
		},
	})
	if err := f.Select("quality", form.Single, 3); err != nil {
		t.Fatal(err)
	}
	if complete {
		if err := f.Select("usage", form.Single, 5); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

var who = respondent.Respondent{Name: "Ana", Email: "ana@example.com", Company: "Acme"}

func newTestResults(sub Submitter, f *form.Form) (*ResultsScreen, *int) {
	calls := 0
	s := New(sub, who, f, func(*submission.Outcome) screen.Screen {
		calls++
		return &stubScreen{}
	})
	return s, &calls
}

func enter(s screen.Screen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestIncompleteBlocksSave(t *testing.T) {
	sub := &fakeSubmitter{}
	s, _ := newTestResults(sub, testForm(t, false))

	if cmd := enter(s); cmd != nil {
		t.Fatal("incomplete form must not start a save")
	}
	if sub.calls != 0 {
		t.Errorf("submit called %d times", sub.calls)
	}
	if !strings.Contains(s.warning, "usage") {
		t.Errorf("warning %q should name the missing question", s.warning)
	}
}

func TestSaveReplacesWithConfirmation(t *testing.T) {
	sub := &fakeSubmitter{out: &submission.Outcome{SubmissionID: "id-1", ReportPath: "/tmp/r.pdf"}}
	s, calls := newTestResults(sub, testForm(t, true))

	cmd := enter(s)
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if !s.saving {
		t.Error("screen should be saving")
	}
	if again := enter(s); again != nil {
		t.Error("Enter while saving must be ignored")
	}

	msg := cmd()
	if sub.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", sub.calls)
	}
	_, next := s.Update(msg)
	if next == nil {
		t.Fatal("expected navigation after save")
	}
	if _, ok := next().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("saved factory calls = %d", *calls)
	}
}

func TestSaveErrorShown(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("disk full")}
	s, calls := newTestResults(sub, testForm(t, true))

	s.Update(enter(s)())
	if s.saving {
		t.Error("saving flag should clear after an error")
	}
	if !strings.Contains(s.errMsg, "disk full") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if *calls != 0 {
		t.Error("no confirmation screen on error")
	}
	if enter(s) == nil {
		t.Error("a failed store may be retried")
	}
}

func TestReportFailureDoesNotResubmit(t *testing.T) {
	sub := &fakeSubmitter{
		out: &submission.Outcome{SubmissionID: "id-1"},
		err: errors.New("render failed"),
	}
	s, _ := newTestResults(sub, testForm(t, true))

	s.Update(enter(s)())
	if !strings.Contains(s.errMsg, "id-1") {
		t.Errorf("errMsg = %q should mention the stored submission", s.errMsg)
	}
	if enter(s) != nil {
		t.Error("stored answers must not be submitted twice")
	}
}

func TestViewShowsCategories(t *testing.T) {
	s, _ := newTestResults(&fakeSubmitter{}, testForm(t, true))
	view := s.View(100, 40)
	for _, want := range []string{"Data", "Models", "quality", "Overall mean level: 4.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResumeRescores(t *testing.T) {
	f := testForm(t, false)
	s, _ := newTestResults(&fakeSubmitter{}, f)
	if s.result.Complete() {
		t.Fatal("expected incomplete result")
	}
	if err := f.Select("usage", form.Single, 1); err != nil {
		t.Fatal(err)
	}
	s.Resume()
	if !s.result.Complete() {
		t.Error("Resume should re-evaluate the form")
	}
}

func TestViewWideVariableNames(t *testing.T) {
	opts := []string{"one", "two", "three", "four", "five"}
	wide := strings.Repeat("品", 25)
	f := form.New(&questionbank.Bank{
		Title: "Test",
		Questions: []questionbank.Question{
			{Category: "データ品質管理と運用体制の成熟度評価カテゴリ", Variable: wide, Description: "d", Options: opts},
			{Category: "Data", Variable: "ガバナンス体制の整備状況と責任分担の明確化", Description: "d", Options: opts},
		},
	})
	if err := f.Select(wide, form.Single, 3); err != nil {
		t.Fatal(err)
	}
	s, _ := newTestResults(&fakeSubmitter{}, f)

	for _, w := range []int{80, 100, 41} {
		view := s.View(w, 40)
		if !strings.Contains(view, "Level 3") {
			t.Errorf("width %d: view missing the answered level", w)
		}
	}
}
