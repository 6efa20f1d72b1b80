package session

import (
	"context"
	"time"
)

const defaultAliveDuration = 24 * time.Hour

// Manager orchestrates one Backend and owns the expiry policy. It also
// issues and consumes password-reset ids against an optional second backend
// scoped to its own table or key namespace.
type Manager[U any] struct {
	backend       Backend[U]
	resets        Backend[U]
	autoRefresh   bool
	aliveDuration time.Duration
}

// Option configures a Manager.
type Option[U any] func(*Manager[U])

// WithAliveDuration sets the lifetime granted to new sessions and to each
// refresh. Defaults to 24 hours.
func WithAliveDuration[U any](d time.Duration) Option[U] {
	return func(m *Manager[U]) {
		m.aliveDuration = d
	}
}

// WithAutoRefresh controls whether a successful read silently extends the
// session's life by the alive duration. Callers relying on absolute session
// lifetimes must leave this off.
func WithAutoRefresh[U any](enabled bool) Option[U] {
	return func(m *Manager[U]) {
		m.autoRefresh = enabled
	}
}

// WithResetBackend supplies the storage for password-reset ids. Reset ids
// must not share a namespace with login sessions.
func WithResetBackend[U any](backend Backend[U]) Option[U] {
	return func(m *Manager[U]) {
		m.resets = backend
	}
}

// NewManager creates a session manager around the given backend.
func NewManager[U any](backend Backend[U], opts ...Option[U]) *Manager[U] {
	m := &Manager[U]{
		backend:       backend,
		aliveDuration: defaultAliveDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AliveDuration returns the configured session lifetime.
func (m *Manager[U]) AliveDuration() time.Duration {
	return m.aliveDuration
}

// NewSession creates a session for userID expiring one alive duration from
// now.
func (m *Manager[U]) NewSession(ctx context.Context, userID U) (Session[U], error) {
	return m.backend.NewSession(ctx, userID, time.Now().Add(m.aliveDuration))
}

// Session retrieves a session by id. Under auto-refresh the read and the
// expiry extension happen on the backend's atomic path.
func (m *Manager[U]) Session(ctx context.Context, id SessionID) (Session[U], error) {
	if m.autoRefresh {
		return m.backend.Session(ctx, id, time.Now().Add(m.aliveDuration))
	}
	return m.backend.Session(ctx, id, time.Time{})
}

// ExtendExpiry pushes the session's expiry one alive duration from now.
func (m *Manager[U]) ExtendExpiry(ctx context.Context, id SessionID) (Session[U], error) {
	return m.backend.ExtendExpiry(ctx, id, time.Now().Add(m.aliveDuration))
}

// Expire deletes the session. Expiring an already absent session is not an
// error.
func (m *Manager[U]) Expire(ctx context.Context, id SessionID) error {
	return m.backend.Expire(ctx, id)
}

// ClearStaleSessions sweeps expired records from the backend. Call
// periodically to keep the session table from growing.
func (m *Manager[U]) ClearStaleSessions(ctx context.Context) error {
	return m.backend.ClearStale(ctx)
}

// GeneratePasswordResetID issues a one-time reset id bound to userID with
// its own expiry, independent of the session alive duration.
func (m *Manager[U]) GeneratePasswordResetID(ctx context.Context, userID U, expiresAt time.Time) (PasswordResetID, error) {
	if m.resets == nil {
		return PasswordResetID{}, ErrNoResetBackend
	}

	rec, err := m.resets.NewSession(ctx, userID, expiresAt)
	if err != nil {
		return PasswordResetID{}, err
	}
	return PasswordResetID(rec.ID), nil
}

// ConsumePasswordResetID atomically verifies the id exists and is unexpired,
// invalidates it, and returns the bound user id. A second consumption of the
// same id fails with ErrNotFound; a reset link is never replayable.
func (m *Manager[U]) ConsumePasswordResetID(ctx context.Context, id PasswordResetID) (U, error) {
	var zero U
	if m.resets == nil {
		return zero, ErrNoResetBackend
	}

	rec, err := m.resets.Take(ctx, SessionID(id))
	if err != nil {
		return zero, err
	}
	return rec.UserID, nil
}
