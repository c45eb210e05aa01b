// Package form tracks the in-progress answers of a single questionnaire
// session and scores them on demand.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/decisionmotor/maturity/internal/questionbank"
	"github.com/decisionmotor/maturity/internal/scoring"
)

// Single is passed as the sub index to Select for questions without
// sub-questions.
const Single = -1

// ErrIncomplete is wrapped by IncompleteError.
var ErrIncomplete = errors.New("questionnaire incomplete")

// IncompleteError lists the variables still lacking an answer.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d unanswered (%s)", ErrIncomplete, len(e.Missing), strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// Result is the scored view of a form.
type Result struct {
	Answers    []scoring.Answer
	Categories []scoring.CategorySummary
	Missing    []string
}

// Complete reports whether every question was answered.
func (r Result) Complete() bool { return len(r.Missing) == 0 }

// Overall is the mean level across answers.
func (r Result) Overall() float64 { return scoring.OverallMean(r.Answers) }

type selection struct {
	single int
	subs   []int
}

// Form holds selections and notes keyed by variable. The zero value is not
// usable; call New.
type Form struct {
	bank  *questionbank.Bank
	sel   map[string]*selection
	notes map[string]string
}

// New creates an empty form for bank.
func New(bank *questionbank.Bank) *Form {
	return &Form{
		bank:  bank,
		sel:   make(map[string]*selection),
		notes: make(map[string]string),
	}
}

// Bank returns the bank the form was created for.
func (f *Form) Bank() *questionbank.Bank { return f.bank }

// Select records a 1-based option for a question, or for one of its
// sub-questions when sub >= 0.
func (f *Form) Select(variable string, sub, option int) error {
	q, ok := f.bank.Question(variable)
	if !ok {
		return fmt.Errorf("unknown variable %q", variable)
	}
	s := f.sel[variable]
	if s == nil {
		s = &selection{subs: make([]int, len(q.SubQuestions))}
	}

	switch {
	case sub == Single:
		if q.HasSubQuestions() {
			return fmt.Errorf("%s: answer its sub-questions instead", variable)
		}
		if option < 1 || option > len(q.Options) {
			return fmt.Errorf("%s: option %d out of range 1..%d", variable, option, len(q.Options))
		}
		s.single = option
	case sub >= 0 && sub < len(q.SubQuestions):
		n := len(q.SubQuestions[sub].Options)
		if option < 1 || option > n {
			return fmt.Errorf("%s sub-question %d: option %d out of range 1..%d", variable, sub+1, option, n)
		}
		s.subs[sub] = option
	default:
		return fmt.Errorf("%s: no sub-question %d", variable, sub+1)
	}

	f.sel[variable] = s
	return nil
}

// Selection returns the recorded option (1-based) or 0 when unanswered.
func (f *Form) Selection(variable string, sub int) int {
	s := f.sel[variable]
	if s == nil {
		return 0
	}
	if sub == Single {
		return s.single
	}
	if sub < 0 || sub >= len(s.subs) {
		return 0
	}
	return s.subs[sub]
}

// SetNote stores free text for a question. Blank text clears the note.
func (f *Form) SetNote(variable, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		delete(f.notes, variable)
		return
	}
	f.notes[variable] = text
}

// Note returns the note for variable.
func (f *Form) Note(variable string) string { return f.notes[variable] }

// Answered reports whether q has every selection it needs.
func (f *Form) Answered(q questionbank.Question) bool {
	s := f.sel[q.Variable]
	if s == nil {
		return false
	}
	if !q.HasSubQuestions() {
		return s.single > 0
	}
	for _, v := range s.subs {
		if v == 0 {
			return false
		}
	}
	return true
}

// Missing lists unanswered variables in bank order.
func (f *Form) Missing() []string {
	var out []string
	for _, q := range f.bank.Questions {
		if !f.Answered(q) {
			out = append(out, q.Variable)
		}
	}
	return out
}

// Progress returns the number of answered questions and the total.
func (f *Form) Progress() (answered, total int) {
	total = len(f.bank.Questions)
	return total - len(f.Missing()), total
}

// Evaluate scores every answered question and aggregates by category. It has
// no side effects; repeated calls on unchanged state return equal results.
func (f *Form) Evaluate() Result {
	var res Result
	for _, q := range f.bank.Questions {
		if !f.Answered(q) {
			res.Missing = append(res.Missing, q.Variable)
			continue
		}
		s := f.sel[q.Variable]

		var (
			sc  scoring.Score
			err error
		)
		if q.HasSubQuestions() {
			sc, err = scoring.ScoreSubQuestions(s.subs)
		} else {
			sc, err = scoring.ScoreSingle(s.single)
		}
		if err != nil {
			// Select guards ranges, so this only fires on a corrupt form.
			res.Missing = append(res.Missing, q.Variable)
			continue
		}

		res.Answers = append(res.Answers, scoring.Answer{
			Category: q.Category,
			Variable: q.Variable,
			Average:  sc.Average,
			Level:    sc.Level,
			Note:     f.notes[q.Variable],
		})
	}
	res.Categories = scoring.Aggregate(res.Answers)
	return res
}

// Submit evaluates the form and refuses to return a result for an
// incomplete questionnaire.
func (f *Form) Submit() (Result, error) {
	res := f.Evaluate()
	if !res.Complete() {
		return Result{}, &IncompleteError{Missing: res.Missing}
	}
	return res, nil
}
