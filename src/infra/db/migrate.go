package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/src/infra/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending embedded schema migrations. It opens a
// short-lived database/sql connection for goose; the pgx pool is not
// involved.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) error {
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connCfg)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("schema migrations applied", "version", version)
	return nil
}
