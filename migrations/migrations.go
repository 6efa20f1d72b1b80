// Package migrations embeds the goose SQL migrations for the authkit
// Postgres backends. Apply them with pg.Migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
