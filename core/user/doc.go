// Package user manages durable user accounts: creation, lookup, password
// verification, and the password-reset flow.
//
// Accounts are generic over their username policy. The Backend stores a
// User[N] for any username type from pkg/username, so an application picks
// at construction time whether its identifiers are ASCII handles or email
// addresses:
//
//	backend := user.NewBackend(pool, "users", strategy, username.ParseEmail)
//	created, err := backend.CreateUser(ctx, newUser)
//
// Passwords never touch the store in plain form. The backend hashes through
// a password.Strategy on create and change, and VerifyPassword compares
// against the stored hash only. Stored hashes ride in secrets.Secret so they
// do not leak through logs or rendered errors.
//
// Username lookups are case-insensitive. Pair the backend's table with a
// unique index on LOWER(username) so the taken-username check holds under
// concurrent registration; the backend translates that unique violation to
// ErrUsernameTaken.
//
// ResetFlow ties the account store to the session manager's one-time reset
// ids: a reset id is consumed first, atomically, and only a successful
// consumption can change the password. A reset id therefore never authorizes
// more than one change attempt.
package user
