package session

import "errors"

var (
	// ErrNotFound is returned when a session or reset id is absent or
	// already expired. Expired records are observationally identical to
	// deleted ones.
	ErrNotFound = errors.New("session not found")
	// ErrNoResetBackend is returned from the password-reset operations when
	// the manager was built without a reset backend.
	ErrNoResetBackend = errors.New("no password-reset backend configured")
)
