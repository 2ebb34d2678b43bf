// Command token-sweeper deletes refresh-token rows whose expiry (plus a
// retention grace) has passed. The token services never delete rows
// themselves; retention is an operational concern and lives here.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dsmirnov/authkit/internal/config"
	"github.com/dsmirnov/authkit/logging"
	"github.com/dsmirnov/authkit/store/pgstore"
)

func main() {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	cfg := config.LoadConfig()

	db, err := pgstore.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "db open failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := pgstore.New(db)
	if err := store.RunMigrations(ctx); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	cutoff := time.Now().Add(-cfg.RetentionGrace)
	deleted, err := store.DeleteExpired(ctx, cutoff)
	if err != nil {
		logger.Error(ctx, "sweep failed", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "sweep complete", "deleted", deleted, "cutoff", cutoff)
}
