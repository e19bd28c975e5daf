package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/task-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/task-api/internal/server"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also batched into system_logs
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewFanoutHandler(stdoutHandler, dbLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Sentry error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Shared limiter counters when more than one instance runs
	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" && cfg.RateLimitMax > 0 {
		limiterStorage = middleware.NewRedisStorage(cfg.RedisURL)
		slog.Info("rate limiter using redis storage")
	}

	app := server.New(cfg, db, server.Options{
		LimiterStorage: limiterStorage,
		Sentry:         sentryEnabled,
		AccessLog:      true,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if limiterStorage != nil {
		if err := limiterStorage.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
