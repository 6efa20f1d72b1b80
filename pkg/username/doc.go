// Package username provides validated, case-insensitive account identifier
// types.
//
// Each policy is a distinct string-backed type produced only by its parse
// function, so holding a value of the type proves it passed validation.
// Equality, ordering, and uniqueness are defined over the case-folded form:
// "Alice" and "alice" name the same account.
//
//	name, err := username.ParseASCII("Alice")
//	if err != nil {
//		// username.ErrEmpty, ErrTooLong, ErrNonASCII, ErrNonPrintable
//	}
//	name.Fold() // "alice" — canonical key for lookups and unique indexes
//
// Two policies ship with the package: ASCII (printable ASCII handles) and
// Email (RFC 5322 addresses). Consumers that need another format implement
// the Name interface and supply their own parse function.
package username
