// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package main is the entry point for the Spokeworks recommendation server.
//
// The server surfaces product recommendations for the marketplace storefront.
// It initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Database: DuckDB catalog and interaction store
//  3. Recommendation engine: concurrent candidate generators merged into a
//     single ranked response
//  4. HTTP server: Chi router with health, metrics, and recommendation routes
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (CONFIG_PATH or ./config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (SHUTDOWN_TIMEOUT, 10s default)
//   - Closes the database connection
//
// # Example Usage
//
// Development with an ephemeral database:
//
//	export DUCKDB_PATH=:memory:
//	export LOG_LEVEL=debug
//	export LOG_FORMAT=console
//	./marketplace-server
//
// Production:
//
//	export DUCKDB_PATH=/data/marketplace.duckdb
//	export HTTP_PORT=8080
//	export API_CORS_ORIGINS=https://shop.example.com
//	./marketplace-server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spokeworks/marketplace/internal/api"
	"github.com/spokeworks/marketplace/internal/config"
	"github.com/spokeworks/marketplace/internal/database"
	"github.com/spokeworks/marketplace/internal/logging"
	"github.com/spokeworks/marketplace/internal/recommend"
	"github.com/spokeworks/marketplace/internal/recommend/generators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Path).
		Msg("Starting Spokeworks recommendation server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Logger(), db, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	generators.RegisterDefaults(engine, generators.Sources{
		Products:     db,
		Scores:       db,
		Interactions: db,
		Preferences:  db,
		Onboarding:   db,
	}, &cfg.Recommend)
	logging.Info().
		Int("default_limit", cfg.Recommend.DefaultLimit).
		Dur("generator_timeout", cfg.Recommend.GeneratorTimeout).
		Msg("Recommendation engine initialized")

	handler := api.NewHandler(engine, db, &cfg.Recommend)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		if err := server.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
