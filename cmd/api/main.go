// Copyright (c) 2026 VidShare. All rights reserved.

// Command api is the entry point for the VidShare HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to S3-compatible object storage.
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/Monuyadav-01/vidoeshareapp/internal/api"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/comment"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/dashboard"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/like"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/playlist"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/subscription"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/tweet"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/video"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/config"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/constants"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/migration"
	pgstore "github.com/Monuyadav-01/vidoeshareapp/internal/platform/postgres"
	redisstore "github.com/Monuyadav-01/vidoeshareapp/internal/platform/redis"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/sec"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/storage"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/account"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	mediaStore, err := storage.NewS3Store(startupCtx, cfg, log)
	must(log, err, "connect to object storage")

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountRepository := account.NewAccountRepository(pool)
	accountService := account.NewService(userRepository, accountRepository, mediaStore, storage.NewKey, log)
	accountHandler := account.NewHandler(accountService)

	videoRepository := video.NewPostgresRepository(pool)
	viewDeduper := video.NewRedisViewDeduper(rdb)
	videoService := video.NewService(videoRepository, mediaStore, viewDeduper, storage.NewKey, log)
	videoHandler := video.NewHandler(videoService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, videoRepository, log)
	commentHandler := comment.NewHandler(commentService)

	likeRepository := like.NewPostgresRepository(pool)
	likeService := like.NewService(likeRepository, log)
	likeHandler := like.NewHandler(likeService)

	tweetRepository := tweet.NewPostgresRepository(pool)
	tweetService := tweet.NewService(tweetRepository, log)
	tweetHandler := tweet.NewHandler(tweetService)

	playlistRepository := playlist.NewPostgresRepository(pool)
	playlistService := playlist.NewService(playlistRepository, videoRepository, log)
	playlistHandler := playlist.NewHandler(playlistService)

	subscriptionRepository := subscription.NewPostgresRepository(pool)
	subscriptionService := subscription.NewService(subscriptionRepository, subscriptionRepository, log)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	dashboardRepository := dashboard.NewPostgresRepository(pool)
	dashboardService := dashboard.NewService(dashboardRepository, log)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Video:        videoHandler,
		Comment:      commentHandler,
		Like:         likeHandler,
		Tweet:        tweetHandler,
		Playlist:     playlistHandler,
		Subscription: subscriptionHandler,
		Dashboard:    dashboardHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
