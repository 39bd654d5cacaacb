// Package migrations embeds the SQL schema so the server binary and the
// integration tests apply the same DDL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
