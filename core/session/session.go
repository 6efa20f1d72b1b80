package session

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// SessionID is an opaque session handle: a random 128-bit identifier with no
// semantic structure, never reused.
type SessionID uuid.UUID

// NewSessionID returns a fresh random id.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParseSessionID parses the canonical string form of a session id.
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	return SessionID(id), err
}

func (id SessionID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is the zero value, which is never issued.
func (id SessionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id SessionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *SessionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id SessionID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *SessionID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }

// PasswordResetID is a one-time reset capability bound to a single user.
// It shares the representation of SessionID but is deliberately a distinct
// type so the two kinds of id cannot be mixed up at compile time.
type PasswordResetID uuid.UUID

func (id PasswordResetID) String() string { return uuid.UUID(id).String() }

func (id PasswordResetID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *PasswordResetID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id PasswordResetID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *PasswordResetID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }

// Session is an authenticated principal's active record. The UserID type
// parameter is supplied by the consuming application.
type Session[U any] struct {
	ID        SessionID
	UserID    U
	ExpiresAt time.Time
}

// IsExpired reports whether the session's expiry has passed. Expired
// sessions are treated as absent everywhere in this package.
func (s Session[U]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
