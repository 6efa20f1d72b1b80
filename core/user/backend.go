package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/authkit/core/password"
	"github.com/dmitrymomot/authkit/integration/database/pg"
	"github.com/dmitrymomot/authkit/pkg/secrets"
	"github.com/dmitrymomot/authkit/pkg/username"
)

// DB is the subset of pgx pool behaviour the backend needs. *pgxpool.Pool
// and pgxmock both satisfy it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Backend stores accounts in a Postgres table and hashes passwords through
// the configured strategy. The table name is injected so several backends
// with different username policies can share one database.
type Backend[N username.Name] struct {
	db       DB
	strategy password.Strategy
	parse    username.Parser[N]

	insertSQL string
	byIDSQL   string
	byNameSQL string
	rehashSQL string
}

// NewBackend creates a backend over the given table. The parser decides the
// username policy for every account the backend touches.
func NewBackend[N username.Name](db DB, table string, strategy password.Strategy, parse username.Parser[N]) *Backend[N] {
	return &Backend[N]{
		db:       db,
		strategy: strategy,
		parse:    parse,
		insertSQL: fmt.Sprintf(
			`INSERT INTO %s (username, password_hash, meta) VALUES ($1, $2, $3) RETURNING id, username, password_hash, meta`,
			table,
		),
		byIDSQL: fmt.Sprintf(
			`SELECT id, username, password_hash, meta FROM %s WHERE id = $1`,
			table,
		),
		byNameSQL: fmt.Sprintf(
			`SELECT id, username, password_hash, meta FROM %s WHERE LOWER(username) = LOWER($1)`,
			table,
		),
		rehashSQL: fmt.Sprintf(
			`UPDATE %s SET password_hash = $2 WHERE id = $1 RETURNING id, username, password_hash, meta`,
			table,
		),
	}
}

// CreateUser hashes the password and inserts the account inside one
// transaction, so a failure leaves no partial row behind. When the context
// already carries a transaction from pg.WithTx the insert joins it and the
// surrounding owner keeps commit responsibility.
func (b *Backend[N]) CreateUser(ctx context.Context, newUser NewUser[N]) (User[N], error) {
	hash, err := b.strategy.HashPassword(newUser.Password.Expose())
	if err != nil {
		return User[N]{}, fmt.Errorf("hash password: %w", err)
	}

	meta := newUser.Meta
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	if tx, ok := pg.TxFromContext(ctx); ok {
		return b.insert(ctx, tx, newUser.Username, hash, meta)
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return User[N]{}, fmt.Errorf("begin create user: %w", err)
	}
	created, err := b.insert(ctx, tx, newUser.Username, hash, meta)
	if err != nil {
		_ = tx.Rollback(ctx)
		return User[N]{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return User[N]{}, fmt.Errorf("commit create user: %w", err)
	}
	return created, nil
}

func (b *Backend[N]) insert(ctx context.Context, tx pgx.Tx, name N, hash secrets.Secret[string], meta json.RawMessage) (User[N], error) {
	row := tx.QueryRow(ctx, b.insertSQL, name.String(), hash.Expose(), meta)
	created, err := b.scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return User[N]{}, ErrUsernameTaken
		}
		return User[N]{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindByID loads the account by id. Returns ErrNotFound when no row matches.
func (b *Backend[N]) FindByID(ctx context.Context, id UserID) (User[N], error) {
	return b.queryUser(ctx, b.byIDSQL, id)
}

// FindByUsername loads the account whose username matches raw, ignoring
// case. The raw value goes through the backend's parser first, so lookups
// reject the same inputs creation does.
func (b *Backend[N]) FindByUsername(ctx context.Context, raw string) (User[N], error) {
	name, err := b.parse(raw)
	if err != nil {
		return User[N]{}, err
	}
	return b.queryUser(ctx, b.byNameSQL, name.String())
}

// VerifyPassword checks the presented password against the stored hash.
func (b *Backend[N]) VerifyPassword(u User[N], presented string) error {
	ok, err := b.strategy.VerifyPassword(u.PasswordHash.Expose(), presented)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrInvalidPassword
	}
	return nil
}

// ChangePassword rehashes and stores the new password, returning the
// updated account.
func (b *Backend[N]) ChangePassword(ctx context.Context, id UserID, newPassword string) (User[N], error) {
	hash, err := b.strategy.HashPassword(newPassword)
	if err != nil {
		return User[N]{}, fmt.Errorf("hash password: %w", err)
	}
	return b.queryUser(ctx, b.rehashSQL, id, hash.Expose())
}

func (b *Backend[N]) queryUser(ctx context.Context, sql string, args ...any) (User[N], error) {
	u, err := b.scanUser(b.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return User[N]{}, ErrNotFound
	}
	if err != nil {
		return User[N]{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (b *Backend[N]) scanUser(row pgx.Row) (User[N], error) {
	var (
		u    User[N]
		name string
		hash string
	)
	if err := row.Scan(&u.ID, &name, &hash, &u.Meta); err != nil {
		return User[N]{}, err
	}
	parsed, err := b.parse(name)
	if err != nil {
		return User[N]{}, fmt.Errorf("stored username is invalid: %w", err)
	}
	u.Username = parsed
	u.PasswordHash = secrets.New(hash)
	return u, nil
}
