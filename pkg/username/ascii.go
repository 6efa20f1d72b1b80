package username

import "strings"

// maxASCIILen bounds handle length; matches the column width used by the
// shipped migrations.
const maxASCIILen = 64

// ASCII is a printable-ASCII account handle. Construct via ParseASCII.
type ASCII string

// ParseASCII validates s as an ASCII handle: trimmed, non-empty, at most 64
// bytes, printable ASCII only (no spaces or control characters).
func ParseASCII(s string) (ASCII, error) {
	s = strings.TrimSpace(s)

	if len(s) == 0 {
		return "", ErrEmpty
	}
	if len(s) > maxASCIILen {
		return "", ErrTooLong
	}

	for _, c := range s {
		if c > '' {
			return "", ErrNonASCII
		}
		// Graphic range only; space and control characters are rejected.
		if c < '!' || c > '~' {
			return "", ErrNonPrintable
		}
	}

	return ASCII(s), nil
}

func (u ASCII) String() string {
	return string(u)
}

// Fold lowercases the handle. ASCII-only input makes the simple byte-wise
// lowering exact.
func (u ASCII) Fold() string {
	return strings.ToLower(string(u))
}
