package username

import "errors"

// Validation errors shared by the built-in policies. Each maps to one
// distinct rejection reason so callers can report a precise message.
var (
	ErrEmpty        = errors.New("username must not be empty")
	ErrTooLong      = errors.New("username too long")
	ErrNonASCII     = errors.New("non-ASCII characters found in username")
	ErrNonPrintable = errors.New("non-printable characters found in username")
	ErrInvalidEmail = errors.New("username is not a valid email address")
)

// Name is the minimal capability the rest of the module needs from an
// identifier: render it, and produce its case-insensitive canonical form.
type Name interface {
	String() string

	// Fold returns the case-folded form used for equality, ordering,
	// and uniqueness.
	Fold() string
}

// Parser turns a raw string into a validated identifier of type N.
// ParseASCII and ParseEmail satisfy this for the built-in policies.
type Parser[N Name] func(string) (N, error)

// Equal reports whether two identifiers name the same account.
func Equal[N Name](a, b N) bool {
	return a.Fold() == b.Fold()
}
