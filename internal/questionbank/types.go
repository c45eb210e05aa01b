// Package questionbank loads and validates the list of maturity questions.
package questionbank

// OptionCount is the number of level labels every question carries.
const OptionCount = 5

// Bank is an ordered set of questions plus display metadata.
type Bank struct {
	Title     string     `json:"title" yaml:"title"`
	Objective string     `json:"objective,omitempty" yaml:"objective,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one assessed variable. Options describe levels 1..5 in order.
// When SubQuestions is non-empty the level is derived from them instead of
// a direct choice among Options.
type Question struct {
	Category     string        `json:"category" yaml:"category"`
	Variable     string        `json:"variable" yaml:"variable"`
	Description  string        `json:"description" yaml:"description"`
	Options      []string      `json:"options" yaml:"options"`
	SubQuestions []SubQuestion `json:"sub_questions,omitempty" yaml:"sub_questions,omitempty"`
}

// SubQuestion has its own ordered option scale.
type SubQuestion struct {
	Text    string   `json:"text" yaml:"text"`
	Options []string `json:"options" yaml:"options"`
}

// HasSubQuestions reports whether the question is scored from sub-answers.
func (q Question) HasSubQuestions() bool {
	return len(q.SubQuestions) > 0
}

// LevelLabel returns the option text that describes level (1-based), or ""
// when level is out of range.
func (q Question) LevelLabel(level int) string {
	if level < 1 || level > len(q.Options) {
		return ""
	}
	return q.Options[level-1]
}

// Question returns the question with the given variable.
func (b *Bank) Question(variable string) (Question, bool) {
	for _, q := range b.Questions {
		if q.Variable == variable {
			return q, true
		}
	}
	return Question{}, false
}

// Categories returns category names in first-seen order.
func (b *Bank) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range b.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}
