package user

import (
	"context"

	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/pkg/username"
)

// ResetFlow completes self-service password resets. It consumes a one-time
// reset id through the session manager and, only on success, changes the
// account's password.
type ResetFlow[N username.Name] struct {
	users   *Backend[N]
	manager *session.Manager[UserID]
}

// NewResetFlow wires the account backend to the session manager issuing the
// reset ids.
func NewResetFlow[N username.Name](users *Backend[N], manager *session.Manager[UserID]) *ResetFlow[N] {
	return &ResetFlow[N]{users: users, manager: manager}
}

// ResetPassword consumes the reset id and changes the password of the user
// it was issued for. Consumption is atomic: of any number of concurrent
// calls with the same id, at most one reaches the password change. A change
// failure after consumption leaves the id spent; the user requests a fresh
// one rather than retrying a half-used capability.
func (f *ResetFlow[N]) ResetPassword(ctx context.Context, id session.PasswordResetID, newPassword string) (User[N], error) {
	userID, err := f.manager.ConsumePasswordResetID(ctx, id)
	if err != nil {
		return User[N]{}, err
	}
	return f.users.ChangePassword(ctx, userID, newPassword)
}
