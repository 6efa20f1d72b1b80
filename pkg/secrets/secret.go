package secrets

import (
	"fmt"
	"log/slog"
)

// redacted is the only representation a Secret ever exposes through
// formatting, marshaling, or logging.
const redacted = "[REDACTED]"

// Secret wraps a sensitive value so it cannot leak through formatting,
// JSON marshaling, or structured logging. Retrieve the value with Expose.
type Secret[T any] struct {
	value T
}

// New wraps a sensitive value.
func New[T any](value T) Secret[T] {
	return Secret[T]{value: value}
}

// Expose returns the wrapped value. This is the only accessor; keep calls
// close to the point of actual use (hashing, comparison, persistence).
func (s Secret[T]) Expose() T {
	return s.value
}

// String implements fmt.Stringer.
func (s Secret[T]) String() string {
	return redacted
}

// GoString implements fmt.GoStringer, covering the %#v verb.
func (s Secret[T]) GoString() string {
	return redacted
}

// Format implements fmt.Formatter so every verb, including %+v and
// width/precision flags, prints the redaction placeholder.
func (s Secret[T]) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, redacted)
}

// MarshalJSON implements json.Marshaler.
func (s Secret[T]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// LogValue implements slog.LogValuer.
func (s Secret[T]) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
