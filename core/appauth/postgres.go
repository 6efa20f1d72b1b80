package appauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

// DB is the subset of pgx pool behaviour the store needs. *pgxpool.Pool,
// pgx.Tx, and pgxmock all satisfy it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists app credentials in a Postgres table. The table owns
// id generation so concurrent inserts never race on ids.
type PostgresStore struct {
	db        DB
	insertSQL string
	selectSQL string
}

// NewPostgresStore creates a store over the given table.
func NewPostgresStore(db DB, table string) *PostgresStore {
	return &PostgresStore{
		db: db,
		insertSQL: fmt.Sprintf(
			`INSERT INTO %s (name, description, token, meta, expires_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			table,
		),
		selectSQL: fmt.Sprintf(
			`SELECT id, name, description, token, meta, expires_at FROM %s WHERE id = $1`,
			table,
		),
	}
}

// Insert stores a new credential and returns the generated id.
func (s *PostgresStore) Insert(ctx context.Context, auth NewAppAuth) (AppAuthID, error) {
	meta := auth.Meta
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	var id AppAuthID
	err := s.db.QueryRow(ctx, s.insertSQL,
		auth.Name,
		auth.Description,
		auth.Token.Expose(),
		meta,
		auth.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return AppAuthID{}, fmt.Errorf("insert app credential: %w", err)
	}
	return id, nil
}

// Find loads the credential by id. Returns ErrNotFound when no row matches.
func (s *PostgresStore) Find(ctx context.Context, id AppAuthID) (AppAuth, error) {
	var (
		rec   AppAuth
		token string
	)
	err := s.db.QueryRow(ctx, s.selectSQL, id).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Description,
		&token,
		&rec.Meta,
		&rec.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return AppAuth{}, ErrNotFound
	}
	if err != nil {
		return AppAuth{}, fmt.Errorf("find app credential: %w", err)
	}
	rec.Token = secrets.New(token)
	return rec, nil
}
