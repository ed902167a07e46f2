// Package migrations ships the SQL schema of the Postgres collection store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
