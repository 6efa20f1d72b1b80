package username

import (
	"net/mail"
	"strings"

	"golang.org/x/text/cases"
)

// maxEmailLen follows the RFC 5321 limit on address length.
const maxEmailLen = 254

// Email is an email-address account identifier. Construct via ParseEmail.
type Email string

// ParseEmail validates s as a bare email address (no display name).
func ParseEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)

	if len(s) == 0 {
		return "", ErrEmpty
	}
	if len(s) > maxEmailLen {
		return "", ErrTooLong
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", ErrInvalidEmail
	}

	return Email(s), nil
}

func (e Email) String() string {
	return string(e)
}

// Fold applies Unicode case folding. Addresses with internationalized local
// parts fold correctly, not just ASCII.
func (e Email) Fold() string {
	return cases.Fold().String(string(e))
}
