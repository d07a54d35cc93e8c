package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Dependencies{
		DB:           db,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		CookieSecure: cfg.CookieSecure,
		CORSOrigins:  cfg.CORSOrigins,
		CacheTTL:     cfg.CacheTTL,
		HealthChecks: map[string]server.HealthCheck{},
	}

	// --- Product cache (optional) ---
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, "storefront")
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis is not reachable, product cache stays enabled and will retry", "addr", cfg.RedisAddr, "error", err)
		}
		deps.ProductCache = redisCache
		deps.HealthChecks["redis"] = redisCache.Ping
	}

	// --- Order events (optional) ---
	events, err := server.OpenEvents(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			slog.Warn("failed to close event transport", "error", err)
		}
	}()
	deps.Publisher = events.Publisher
	if err := events.StartAudit(ctx); err != nil {
		slog.Error("failed to start order event consumer", "error", err)
	}

	app := server.New(deps)

	// --- Start HTTP Server ---
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.AppPort, "events", cfg.EventsDriver, "database", cfg.DatabaseDriver)
		serverErr <- app.Listen(cfg.AppPort)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("error during Fiber shutdown", "error", err)
	}
	slog.Info("server gracefully stopped")
	return nil
}
