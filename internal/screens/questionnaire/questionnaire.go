package questionnaire

import (
	tea "charm.land/bubbletea/v2"

	"github.com/decisionmotor/maturity/internal/form"
	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/router"
	"github.com/decisionmotor/maturity/internal/screen"
	"github.com/decisionmotor/maturity/internal/ui/components"
	"github.com/decisionmotor/maturity/internal/ui/layout"
)

// ResultsFactory builds the results screen for a form.
type ResultsFactory func(f *form.Form) screen.Screen

// QuestionnaireScreen walks through the bank one question per page.
type QuestionnaireScreen struct {
	form    *form.Form
	results ResultsFactory

	index  int // current question
	sub    int // focused sub-question, form.Single for direct choice
	choice components.MultiChoice

	note        components.TextInput
	editingNote bool
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.InputCapturer = (*QuestionnaireScreen)(nil)

// New creates a questionnaire over f. results is pushed when the user asks
// to review answers or completes the last question.
func New(f *form.Form, results ResultsFactory) *QuestionnaireScreen {
	s := &QuestionnaireScreen{
		form:    f,
		results: results,
		note:    components.NewTextInput("Note", "optional comment for the report", 500),
	}
	s.goTo(0)
	return s
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionnaireScreen) Title() string {
	return "Assessment"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	if s.editingNote {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save note"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Select"},
		{Key: "←→", Description: "Question"},
	}
	if s.question().HasSubQuestions() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Sub-question"})
	}
	return append(hints,
		layout.KeyHint{Key: "n", Description: "Note"},
		layout.KeyHint{Key: "r", Description: "Results"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// CapturingInput is true while the note editor is open.
func (s *QuestionnaireScreen) CapturingInput() bool { return s.editingNote }

// Resume rebuilds the option list in case answers changed elsewhere.
func (s *QuestionnaireScreen) Resume() tea.Cmd {
	s.focusSub(s.sub)
	return nil
}

func (s *QuestionnaireScreen) question() questionbank.Question {
	return s.form.Bank().Questions[s.index]
}

func (s *QuestionnaireScreen) goTo(i int) {
	n := len(s.form.Bank().Questions)
	s.index = max(0, min(i, n-1))
	q := s.question()
	if !q.HasSubQuestions() {
		s.focusSub(form.Single)
		return
	}
	// Land on the first unanswered sub-question.
	first := 0
	for j := range q.SubQuestions {
		if s.form.Selection(q.Variable, j) == 0 {
			first = j
			break
		}
	}
	s.focusSub(first)
}

func (s *QuestionnaireScreen) focusSub(sub int) {
	q := s.question()
	s.sub = sub
	if sub == form.Single {
		s.choice = components.NewMultiChoice("", q.Options, s.form.Selection(q.Variable, form.Single))
		return
	}
	sq := q.SubQuestions[sub]
	s.choice = components.NewMultiChoice(sq.Text, sq.Options, s.form.Selection(q.Variable, sub))
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.editingNote {
			var cmd tea.Cmd
			s.note, cmd = s.note.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.editingNote {
		return s, s.updateNote(kmsg)
	}

	q := s.question()
	switch kmsg.String() {
	case "right", "l", "pgdown":
		s.goTo(s.index + 1)
		return s, nil
	case "left", "h", "pgup":
		s.goTo(s.index - 1)
		return s, nil
	case "tab":
		if q.HasSubQuestions() {
			s.focusSub((s.sub + 1) % len(q.SubQuestions))
		}
		return s, nil
	case "shift+tab":
		if q.HasSubQuestions() {
			s.focusSub((s.sub + len(q.SubQuestions) - 1) % len(q.SubQuestions))
		}
		return s, nil
	case "n":
		s.editingNote = true
		s.note.SetValue(s.form.Note(q.Variable))
		s.note.Model.CursorEnd()
		return s, s.note.Focus()
	case "r":
		return s, s.showResults()
	}

	before := s.choice.Chosen
	s.choice, _ = s.choice.Update(kmsg)
	if s.choice.Chosen == before && kmsg.String() != "enter" {
		return s, nil
	}
	if s.choice.Chosen == 0 {
		return s, nil
	}
	if err := s.form.Select(q.Variable, s.sub, s.choice.Chosen); err != nil {
		return s, nil
	}
	return s, s.advance()
}

// advance moves to the next unanswered sub-question, then to the next
// question. Completing the last question opens the results.
func (s *QuestionnaireScreen) advance() tea.Cmd {
	q := s.question()
	if q.HasSubQuestions() {
		for j := 1; j <= len(q.SubQuestions); j++ {
			next := (s.sub + j) % len(q.SubQuestions)
			if s.form.Selection(q.Variable, next) == 0 {
				s.focusSub(next)
				return nil
			}
		}
	}
	if s.index < len(s.form.Bank().Questions)-1 {
		s.goTo(s.index + 1)
		return nil
	}
	// Keep the picked option visible when coming back from results.
	s.focusSub(s.sub)
	return s.showResults()
}

func (s *QuestionnaireScreen) showResults() tea.Cmd {
	if s.results == nil {
		return nil
	}
	next := s.results(s.form)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *QuestionnaireScreen) updateNote(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "enter":
		s.form.SetNote(s.question().Variable, s.note.Value())
		s.closeNote()
		return nil
	case "esc":
		s.closeNote()
		return nil
	}
	var cmd tea.Cmd
	s.note, cmd = s.note.Update(kmsg)
	return cmd
}

func (s *QuestionnaireScreen) closeNote() {
	s.editingNote = false
	s.note.Blur()
	s.note.SetValue("")
}
