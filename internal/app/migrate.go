package app

import (
	"context"
	"database/sql"
	"fmt"

	schema "github.com/guttosm/orderpulse/db"
	"github.com/guttosm/orderpulse/internal/logger"
	goose "github.com/pressly/goose/v3"
)

// Migrate applies every pending embedded schema migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(schema.Migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, schema.MigrationsDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through the service logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) {
	lg := logger.WithComponent("migrate")
	lg.Fatal().Msgf(format, v...)
}

func (gooseLogger) Printf(format string, v ...any) {
	lg := logger.WithComponent("migrate")
	lg.Info().Msgf(format, v...)
}
