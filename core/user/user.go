package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/username"
)

var (
	// ErrNotFound is returned when no account matches the given id or
	// username.
	ErrNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when an account with the same username
	// (ignoring case) already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidPassword is returned when a presented password does not
	// match the stored hash. Callers exposing login failures externally
	// should collapse this and ErrNotFound into one message.
	ErrInvalidPassword = errors.New("invalid password")
)

// UserID identifies a durable user account.
type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }

func (id UserID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id UserID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id *UserID) Scan(src any) error           { return (*uuid.UUID)(id).Scan(src) }

// User is a stored account. PasswordHash carries the strategy-encoded hash,
// never the password itself, and renders redacted.
type User[N username.Name] struct {
	ID           UserID
	Username     N
	PasswordHash secrets.Secret[string]
	Meta         json.RawMessage
}

// NewUser is the input for account creation. The password travels wrapped so
// an errant log statement cannot print it.
type NewUser[N username.Name] struct {
	Username N
	Password secrets.Secret[string]
	Meta     json.RawMessage
}

// New validates the raw username with parse and wraps the password.
func New[N username.Name](parse username.Parser[N], name, password string) (NewUser[N], error) {
	parsed, err := parse(name)
	if err != nil {
		return NewUser[N]{}, err
	}
	return NewUser[N]{
		Username: parsed,
		Password: secrets.New(password),
	}, nil
}
