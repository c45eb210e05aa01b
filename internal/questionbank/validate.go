package questionbank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBank wraps every structural problem reported by Validate.
var ErrInvalidBank = errors.New("invalid question bank")

// Validate checks the structural rules every bank must satisfy and reports
// all violations at once.
func Validate(b *Bank) error {
	var errs []string
	if len(b.Questions) == 0 {
		errs = append(errs, "no questions defined")
	}

	seen := make(map[string]int)
	for i, q := range b.Questions {
		label := fmt.Sprintf("questions[%d]", i)
		if q.Variable != "" {
			label = fmt.Sprintf("questions[%d] (%s)", i, q.Variable)
		}

		if q.Category == "" {
			errs = append(errs, label+": category is required")
		}
		if q.Variable == "" {
			errs = append(errs, label+": variable is required")
		} else if prev, dup := seen[q.Variable]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicate variable (first at questions[%d])", label, prev))
		} else {
			seen[q.Variable] = i
		}
		if q.Description == "" {
			errs = append(errs, label+": description is required")
		}
		if len(q.Options) != OptionCount {
			errs = append(errs, fmt.Sprintf("%s: expected %d options, got %d", label, OptionCount, len(q.Options)))
		}
		if hasBlank(q.Options) {
			errs = append(errs, label+": options must not be blank")
		}

		for j, sq := range q.SubQuestions {
			sub := fmt.Sprintf("%s.sub_questions[%d]", label, j)
			if sq.Text == "" {
				errs = append(errs, sub+": text is required")
			}
			if len(sq.Options) < 2 {
				errs = append(errs, sub+": at least 2 options are required")
			}
			if hasBlank(sq.Options) {
				errs = append(errs, sub+": options must not be blank")
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidBank, strings.Join(errs, "\n  - "))
	}
	return nil
}

func hasBlank(ss []string) bool {
	for _, s := range ss {
		if s == "" {
			return true
		}
	}
	return false
}
