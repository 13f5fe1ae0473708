// Package db embeds the goose SQL migrations so the binary and the integration
// tests apply the same schema without depending on the working directory.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
