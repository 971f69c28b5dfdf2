// Package main is the entry point for the Inkwell blog API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"inkwell/src/app/server"
	"inkwell/src/infra/config"
	"inkwell/src/infra/db"
	"inkwell/src/infra/logger"
	"inkwell/src/infra/repo"
	"inkwell/src/infra/token"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()

	// Apply schema migrations before opening the pool
	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, cfg.Database, log); err != nil {
			return err
		}
	}

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Make sure the upload directory exists before serving from it
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return err
	}

	// Initialize repository and token issuer
	blogRepo := repo.NewPostgresRepository(pg, log)
	tokens := token.NewJWTIssuer(cfg.Auth)

	// Create and run HTTP server
	srv := server.New(cfg, log, blogRepo, tokens)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
