// Package main implements the HTTP API server for the inventory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/dsjohal14/stockroom/internal/http"
	"github.com/dsjohal14/stockroom/internal/libs/config"
	"github.com/dsjohal14/stockroom/internal/libs/obs"
	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := db.Open(openCtx, db.Options{
		Backend:     cfg.StoreBackend,
		File:        cfg.InventoryFile,
		BoltPath:    cfg.BoltPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to initialize store")
	}
	defer func() { _ = store.Close() }()

	query := inventory.NewService(cfg.Matcher(),
		append(cfg.QueryOptions(), inventory.WithLogger(obs.Logger("query")))...)

	// Create HTTP handler
	handler := apihttp.NewHandler(store, query, logger)

	r := handler.Routes(middleware.Logger)

	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().
		Str("addr", addr).
		Str("backend", cfg.StoreBackend).
		Int("modulus", cfg.SearchModulus).
		Str("hash", cfg.SearchHash).
		Msg("starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("API server stopped")
}
