// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Inkpost HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Build optional collaborators (object storage, summary assistant).
//  6. Wire services and HTTP handlers, bootstrap the admin account.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/inkpost/internal/ai"
	"github.com/taibuivan/inkpost/internal/api"
	"github.com/taibuivan/inkpost/internal/core/blog"
	"github.com/taibuivan/inkpost/internal/core/cover"
	"github.com/taibuivan/inkpost/internal/core/tag"
	"github.com/taibuivan/inkpost/internal/platform/config"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/migration"
	pgstore "github.com/taibuivan/inkpost/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkpost/internal/platform/redis"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/storage"
	"github.com/taibuivan/inkpost/internal/users/account"
	"github.com/taibuivan/inkpost/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
		slog.Bool("ai_enabled", cfg.AIEnabled()),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// ── 4. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Optional Collaborators ─────────────────────────────────────────
	var coverStore cover.Store
	if cfg.StorageEnabled() {
		client, err := storage.New(storage.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		must(log, err, "initialize object storage")
		if client != nil {
			coverStore = client
		}
	}

	var generator ai.Generator
	if cfg.AIEnabled() {
		generator = ai.NewGeminiClient(ai.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewSessionTokens(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize session tokens")

	authService := auth.NewService(auth.NewAccountRepository(pool), auth.NewSessionRepository(rdb), tokens, log)
	if cfg.AdminBootstrap() {
		created, err := authService.EnsureAccount(startupCtx, cfg.AdminEmail, cfg.AdminPassword)
		must(log, err, "bootstrap admin account")
		log.Info("admin_account_checked", slog.Bool("created", created))
	}

	coverService := cover.NewService(coverStore, log)
	blogService := blog.NewService(blog.NewPostgresRepository(pool), log, blog.WithCoverRemover(coverService))
	tagService := tag.NewService(tag.NewPostgresRepository(pool), log)
	aiService := ai.NewService(generator, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Account:   account.NewHandler(accountService),
		Blog:      blog.NewHandler(blogService),
		Tag:       tag.NewHandler(tagService),
		Cover:     cover.NewHandler(coverService),
		AI:        ai.NewHandler(aiService),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	// Cancelled on shutdown to stop background workers such as the rate limiter sweep.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, authService, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
