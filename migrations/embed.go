package migrations

import "embed"

// FS holds the SQL migrations applied at startup and by roomctl migrate.
//
//go:embed *.sql
var FS embed.FS
