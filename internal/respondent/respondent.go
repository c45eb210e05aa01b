// Package respondent holds the identity of the person answering the
// questionnaire.
package respondent

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrCompanyRequired = errors.New("company is required")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// Respondent identifies who answered a submission.
type Respondent struct {
	Name    string
	Email   string
	Company string
}

// Normalize trims surrounding whitespace from every field.
func (r Respondent) Normalize() Respondent {
	return Respondent{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Company: strings.TrimSpace(r.Company),
	}
}

// Validate returns the first problem found with r. Name and company are
// mandatory; the email must be a bare address such as "ana@example.com".
func (r Respondent) Validate() error {
	r = r.Normalize()
	if r.Name == "" {
		return ErrNameRequired
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Company == "" {
		return ErrCompanyRequired
	}
	return nil
}

// ValidateEmail checks that s is a single address without a display name.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, s)
	}
	if addr.Name != "" || addr.Address != s {
		return fmt.Errorf("%w: %q is not a bare address", ErrInvalidEmail, s)
	}
	at := strings.LastIndexByte(addr.Address, '@')
	if !strings.Contains(addr.Address[at+1:], ".") {
		return fmt.Errorf("%w: %q has no domain suffix", ErrInvalidEmail, s)
	}
	return nil
}

// Slug returns a filesystem-safe form of the respondent name.
func (r Respondent) Slug() string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(strings.TrimSpace(r.Name)) {
		switch {
		case c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)):
			b.WriteRune(c)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('_')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return "anonymous"
	}
	return s
}

func (r Respondent) String() string {
	r = r.Normalize()
	if r.Company == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Company)
}
