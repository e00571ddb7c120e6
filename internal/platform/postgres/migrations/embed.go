// Package migrations embeds the goose SQL migrations for the schema.
package migrations

import "embed"

// TableName is the goose version table used by the server and tests.
const TableName = "schema_migrations"

// FS holds the migration files, rooted at this directory.
//
//go:embed *.sql
var FS embed.FS
