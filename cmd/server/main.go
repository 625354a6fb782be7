// Package main is the entry point for the etiquetas server. It loads
// configuration, establishes database connections, runs migrations and
// seeding, wires the feature packages, and starts the HTTP server.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docesmara/etiquetas/internal/app"
	"github.com/docesmara/etiquetas/internal/config"
	"github.com/docesmara/etiquetas/internal/database"
	"github.com/docesmara/etiquetas/internal/session"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment.
	setupLogging(cfg)

	slog.Info("starting etiquetas",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("session_backend", cfg.Session.Backend),
	)

	// --- Connect to PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to PostgreSQL")

	// --- Run Migrations ---
	if err := database.RunMigrations(db, "migrations"); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Seed ---
	// Creates the admin account when configured, plus example labels in
	// development. Idempotent: existing rows are left alone.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Seed(ctx, db, cfg); err != nil {
		cancel()
		slog.Error("failed to seed database", slog.Any("error", err))
		os.Exit(1)
	}
	cancel()

	// --- Session Store ---
	application, cleanup, err := buildApp(cfg, db)
	if err != nil {
		slog.Error("failed to build application", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	// --- Graceful Shutdown ---
	// Listen for interrupt/term signals to drain connections cleanly.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		// Give in-flight requests 10 seconds to complete.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := application.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		// Echo returns http.ErrServerClosed on graceful shutdown, which is expected.
		slog.Info("server stopped", slog.Any("reason", err))
	}
}

// buildApp constructs the session store for the configured backend and wires
// the application around it. The returned cleanup closes backend-specific
// resources (the Redis client, when one exists).
func buildApp(cfg *config.Config, db *sql.DB) (*app.App, func(), error) {
	var store session.Store
	var application *app.App
	cleanup := func() {}

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { rdb.Close() }
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
		application = app.New(cfg, db, rdb)

	case config.SessionBackendMemory:
		store = session.NewMemoryStore(cfg.Session.TTL)
		application = app.New(cfg, db, nil)

	default: // config.SessionBackendPostgres
		store = session.NewPostgresStore(db, cfg.Session.TTL)
		application = app.New(cfg, db, nil)
	}

	application.RegisterRoutes(store)
	return application, cleanup, nil
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format for readability. Production uses JSON for
// structured log aggregation.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler

	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	slog.SetDefault(slog.New(handler))
}
