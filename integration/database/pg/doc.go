// Package pg provides PostgreSQL connection management, migrations, and
// health checking for the authkit backends.
//
// It wraps the pgx driver with application-level retry logic, connection
// pool tuning, and goose migration support. Connection establishment uses
// exponential backoff so simultaneous service restarts do not stampede the
// database.
//
// # Configuration
//
// Configuration is handled through the Config struct with environment
// variable mapping, parsed with caarlos0/env:
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
// # Migrations
//
// Migrate applies embedded goose migrations through a database/sql handle
// opened from the same pool, so no second connection configuration is
// needed:
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, logger); err != nil {
//		log.Fatal(err)
//	}
//
// # Health checking
//
// Healthcheck returns a probe function for readiness and liveness
// endpoints:
//
//	check := pg.Healthcheck(pool)
//	if err := check(ctx); err != nil {
//		// report unhealthy
//	}
//
// # Transactions
//
// WithTx and TxFromContext propagate a pgx.Tx through context so several
// stores can join one transaction:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx) // safe even after commit
//
//	ctx = pg.WithTx(ctx, tx)
//	if _, err := users.CreateUser(ctx, newUser); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
//
// The error classification helpers (IsNotFoundError, IsDuplicateKeyError,
// IsForeignKeyViolationError, IsTxClosedError) give stable checks over the
// pgx error types for retry logic and user-facing messages.
package pg
