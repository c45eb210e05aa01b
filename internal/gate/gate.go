// Package gate implements the shared-password check in front of the
// questionnaire.
package gate

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned by Check when the password does not match.
var ErrWrongPassword = errors.New("incorrect password")

// Gate verifies a typed password against a configured secret. The secret is
// either plaintext or a bcrypt hash (recognized by its "$2" prefix).
type Gate struct {
	secret string
	hashed bool
}

// New creates a gate for secret. An empty secret yields an open gate.
func New(secret string) *Gate {
	return &Gate{
		secret: secret,
		hashed: strings.HasPrefix(secret, "$2"),
	}
}

// Open reports whether no password is configured.
func (g *Gate) Open() bool {
	return g == nil || g.secret == ""
}

// Check returns nil if password is accepted.
func (g *Gate) Check(password string) error {
	if g.Open() {
		return nil
	}
	if g.hashed {
		if err := bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(password)); err != nil {
			return ErrWrongPassword
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(password)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// Hash returns a bcrypt hash of password suitable for MATURITY_PASSWORD.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
