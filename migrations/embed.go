// Package migrations embeds the goose SQL migrations so the server can apply
// them on start-up and integration tests can run them without a filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
