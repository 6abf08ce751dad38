// Package main implements the worker that watches the inventory file and
// logs a summary whenever it changes.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dsjohal14/stockroom/internal/libs/config"
	"github.com/dsjohal14/stockroom/internal/libs/obs"
	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/streamlite"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("worker")

	if cfg.StoreBackend != db.BackendFile {
		logger.Fatal().Str("backend", cfg.StoreBackend).Msg("worker only watches the file backend")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := db.NewFileStore(cfg.InventoryFile)
	summarize(ctx, store, logger)

	conn := streamlite.NewFileConnector(cfg.InventoryFile, func(string) {
		summarize(ctx, store, logger)
	}, logger)
	if err := conn.Start(); err != nil {
		logger.Fatal().Err(err).Str("file", cfg.InventoryFile).Msg("failed to start watcher")
	}

	logger.Info().Str("connector", conn.Name()).Msg("worker started")
	<-ctx.Done()

	if err := conn.Stop(); err != nil {
		logger.Warn().Err(err).Msg("watcher stop failed")
	}
	logger.Info().Msg("worker stopped")
}

// summarize logs line, record and malformed-line counts for the inventory
func summarize(ctx context.Context, store *db.FileStore, logger zerolog.Logger) {
	lines, err := store.Lines(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("file", store.Path()).Msg("inventory unavailable")
		return
	}
	records, err := store.Records(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("file", store.Path()).Msg("inventory unavailable")
		return
	}

	logger.Info().
		Str("file", store.Path()).
		Int("lines", len(lines)).
		Int("records", len(records)).
		Int("malformed", len(lines)-len(records)).
		Msg("inventory changed")
}
