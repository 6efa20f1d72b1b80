// Package secrets provides a redacting wrapper for sensitive values such as
// passwords, peppers, and API tokens.
//
// A Secret renders as "[REDACTED]" through every accidental output path:
// fmt verbs (%s, %v, %+v, %#v), JSON marshaling, and slog logging. The wrapped
// value is only reachable through the explicit Expose accessor, which makes
// every use of the raw value grep-able at the call site.
//
// # Usage
//
//	pepper := secrets.New([]byte("process-wide pepper"))
//
//	fmt.Println(pepper)          // [REDACTED]
//	log.Info("cfg", "p", pepper) // p=[REDACTED]
//
//	hash := argon2.IDKey(input, salt, t, m, p, 32)
//	_ = hmac.New(sha256.New, pepper.Expose())
//
// The zero value of Secret[T] wraps the zero value of T and is safe to use.
package secrets
