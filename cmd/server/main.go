/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the delivery planning server: configuration,
  catalog seeding, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Build the catalog: from SQLite when -db is set, otherwise the built-in
     seed; an empty database is initialised from the seed first
  3. Freeze the catalog and create the planner
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS (environment fallback in parentheses):
  -port        HTTP server port (PORT, default 8080)
  -db          SQLite catalog path (DATABASE_PATH, default: none - in-memory seed)
  -processing  Order processing time in minutes (ORDER_PROCESSING_MINUTES, default 60)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the database, exit.

EXAMPLES:
  # In-memory seed catalog
  ./server

  # Persist the catalog between runs
  ./server -db=./data/catalog.db

SEE ALSO:
  - api/server.go: Router configuration
  - api/scenarios.go: The built-in seed catalog
  - store/sqlite/sqlite.go: Catalog persistence
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/warp/delivery-engine/api"
	"github.com/warp/delivery-engine/logistics"
	"github.com/warp/delivery-engine/metrics"
	"github.com/warp/delivery-engine/store/sqlite"
)

func main() {
	// .env is optional; flags take precedence over environment values.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", os.Getenv("DATABASE_PATH"), "SQLite catalog path (empty = in-memory seed)")
	processingMinutes := flag.Int("processing", envInt("ORDER_PROCESSING_MINUTES", 60), "order processing time in minutes")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "delivery-engine").Logger()

	catalog, cleanup, err := buildCatalog(*dbPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build catalog")
	}
	defer cleanup()
	catalog.Freeze()

	cfg := logistics.DefaultConfig()
	cfg.Processing = time.Duration(*processingMinutes) * time.Minute

	planner := logistics.NewPlanner(catalog, cfg)
	handler := api.NewHandler(planner, cfg, logger, metrics.New())
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", *port).Int("stores", len(catalog.Stores())).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server stopped")
}

// buildCatalog returns the catalog to serve from. With a database path the
// catalog is loaded from SQLite, initialising an empty database from the
// built-in seed first; without one the seed is used directly.
func buildCatalog(dbPath string, logger zerolog.Logger) (*logistics.Catalog, func(), error) {
	if dbPath == "" {
		logger.Info().Msg("using built-in seed catalog")
		return api.SeedCatalog(), func() {}, nil
	}

	src, err := sqlite.New(dbPath)
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	empty, err := src.Empty(ctx)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	if empty {
		logger.Info().Str("db", dbPath).Msg("initialising empty catalog database from seed")
		if err := src.SaveCatalog(ctx, api.SeedCatalog()); err != nil {
			src.Close()
			return nil, nil, err
		}
	}

	catalog, err := src.LoadCatalog(ctx)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	logger.Info().Str("db", dbPath).Int("stores", len(catalog.Stores())).Msg("catalog loaded")
	return catalog, func() { src.Close() }, nil
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
