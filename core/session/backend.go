package session

import (
	"context"
	"time"
)

// Backend is the minimal storage capability the Manager needs: point
// create/read/update/delete of session records keyed by an opaque id.
// Implementations must be safe for concurrent use and must report absent or
// expired records as ErrNotFound.
type Backend[U any] interface {
	// NewSession allocates a fresh id, persists the record, and returns it.
	NewSession(ctx context.Context, userID U, expiresAt time.Time) (Session[U], error)

	// Session returns the record for id. A non-zero extendTo requests the
	// atomic get-and-extend path: the lookup and the expiry update must not
	// interleave with concurrent readers of the same id.
	Session(ctx context.Context, id SessionID, extendTo time.Time) (Session[U], error)

	// ExtendExpiry moves the record's expiry and returns the updated record.
	ExtendExpiry(ctx context.Context, id SessionID, expiresAt time.Time) (Session[U], error)

	// Expire deletes the record. Deleting an absent record is not an error.
	Expire(ctx context.Context, id SessionID) error

	// Take atomically reads and deletes an unexpired record. This is the
	// single-use primitive behind password-reset consumption.
	Take(ctx context.Context, id SessionID) (Session[U], error)

	// ClearStale removes expired records best-effort. Backends whose store
	// enforces expiry natively may make this a no-op.
	ClearStale(ctx context.Context) error
}
