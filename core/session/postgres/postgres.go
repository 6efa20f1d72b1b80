// Package postgres provides a durable session backend on PostgreSQL.
//
// One backend instance is scoped to a single table; run separate instances
// over separate tables for login sessions and password-reset ids. The
// get-and-extend path is a single conditional UPDATE so a concurrent reader
// and writer of the same id can never disagree on the stored value.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/authkit/core/session"
)

// DB is the subset of pgxpool.Pool the backend needs. pgxmock satisfies it
// for tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Backend stores session records in a PostgreSQL table with columns
// (id uuid, user_id, expires_at timestamptz). Expired rows are filtered on
// read and removed by ClearStale.
type Backend[U any] struct {
	db    DB
	table string

	insertSQL  string
	selectSQL  string
	extendSQL  string
	refreshSQL string
	takeSQL    string
	deleteSQL  string
	sweepSQL   string
}

// New creates a backend over the given table. The table name is interpolated
// into statement text once here; it must come from configuration, never from
// request input.
func New[U any](db DB, table string) *Backend[U] {
	return &Backend[U]{
		db:    db,
		table: table,

		insertSQL:  fmt.Sprintf(`INSERT INTO %s (id, user_id, expires_at) VALUES ($1, $2, $3)`, table),
		selectSQL:  fmt.Sprintf(`SELECT id, user_id, expires_at FROM %s WHERE id = $1 AND expires_at > now()`, table),
		extendSQL:  fmt.Sprintf(`UPDATE %s SET expires_at = $2 WHERE id = $1 RETURNING id, user_id, expires_at`, table),
		refreshSQL: fmt.Sprintf(`UPDATE %s SET expires_at = $2 WHERE id = $1 AND expires_at > now() RETURNING id, user_id, expires_at`, table),
		takeSQL:    fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND expires_at > now() RETURNING id, user_id, expires_at`, table),
		deleteSQL:  fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table),
		sweepSQL:   fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= now()`, table),
	}
}

func (b *Backend[U]) NewSession(ctx context.Context, userID U, expiresAt time.Time) (session.Session[U], error) {
	rec := session.Session[U]{
		ID:        session.NewSessionID(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	if _, err := b.db.Exec(ctx, b.insertSQL, rec.ID, userID, expiresAt); err != nil {
		return session.Session[U]{}, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

func (b *Backend[U]) Session(ctx context.Context, id session.SessionID, extendTo time.Time) (session.Session[U], error) {
	if extendTo.IsZero() {
		return b.scanRow(b.db.QueryRow(ctx, b.selectSQL, id))
	}
	// Lookup and extension in one transactional round trip.
	return b.scanRow(b.db.QueryRow(ctx, b.refreshSQL, id, extendTo))
}

func (b *Backend[U]) ExtendExpiry(ctx context.Context, id session.SessionID, expiresAt time.Time) (session.Session[U], error) {
	return b.scanRow(b.db.QueryRow(ctx, b.extendSQL, id, expiresAt))
}

func (b *Backend[U]) Expire(ctx context.Context, id session.SessionID) error {
	if _, err := b.db.Exec(ctx, b.deleteSQL, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *Backend[U]) Take(ctx context.Context, id session.SessionID) (session.Session[U], error) {
	return b.scanRow(b.db.QueryRow(ctx, b.takeSQL, id))
}

func (b *Backend[U]) ClearStale(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, b.sweepSQL); err != nil {
		return fmt.Errorf("sweep stale sessions: %w", err)
	}
	return nil
}

func (b *Backend[U]) scanRow(row pgx.Row) (session.Session[U], error) {
	var rec session.Session[U]
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session[U]{}, session.ErrNotFound
		}
		return session.Session[U]{}, fmt.Errorf("scan session: %w", err)
	}
	return rec, nil
}
