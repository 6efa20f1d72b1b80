package appauth

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

var (
	// ErrNotFound is returned when no credential exists for the given id.
	ErrNotFound = errors.New("app credential not found")
	// ErrInvalidToken is returned when the presented token does not match
	// the authoritative record.
	ErrInvalidToken = errors.New("the provided token was invalid")
)

// AppAuthID is an opaque credential handle, immutable once issued.
type AppAuthID uuid.UUID

func (id AppAuthID) String() string { return uuid.UUID(id).String() }

func (id AppAuthID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *AppAuthID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id AppAuthID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *AppAuthID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }

// NewAppAuth carries the attributes of a credential to be issued. Tokens are
// not rotated in place; re-issuing creates a new record.
type NewAppAuth struct {
	Name        string
	Description *string
	Token       secrets.Secret[string]
	Meta        json.RawMessage
	ExpiresAt   *time.Time
}

// AppAuth is a machine credential record as read back from the durable
// store.
type AppAuth struct {
	ID          AppAuthID
	Name        string
	Description *string
	Token       secrets.Secret[string]
	Meta        json.RawMessage
	ExpiresAt   *time.Time
}

// Store is the durable system of record for credentials.
type Store interface {
	// Insert persists the credential and returns the generated id.
	Insert(ctx context.Context, auth NewAppAuth) (AppAuthID, error)

	// Find returns the canonical record, or ErrNotFound.
	Find(ctx context.Context, id AppAuthID) (AppAuth, error)
}

// TokenCache is the fast lookup layer in front of the Store. Implementations
// only hold the secret token, keyed by credential id.
type TokenCache interface {
	// Get returns the cached token and whether one was present. An absent
	// key is (_, false, nil), not an error.
	Get(ctx context.Context, id AppAuthID) (token string, ok bool, err error)

	// Put stores the record's token under its id, honoring the record's
	// expiry if set.
	Put(ctx context.Context, auth AppAuth) error

	// Del evicts the token.
	Del(ctx context.Context, id AppAuthID) error
}
