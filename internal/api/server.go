// Copyright (c) 2026 VidShare. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Monuyadav-01/vidoeshareapp/internal/core/comment"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/dashboard"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/like"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/playlist"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/subscription"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/tweet"
	"github.com/Monuyadav-01/vidoeshareapp/internal/core/video"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/config"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/constants"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/middleware"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/account"
	"github.com/Monuyadav-01/vidoeshareapp/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles session routes (register, login, refresh, logout).
	Auth *auth.Handler

	// Account handles user profiles, channel pages, and watch history.
	Account *account.Handler

	// Video handles the video catalogue, publishing, and playback.
	Video *video.Handler

	// Comment handles video comment threads.
	Comment *comment.Handler

	// Like handles like toggles across videos, comments, and tweets.
	Like *like.Handler

	// Tweet handles channel micro-posts.
	Tweet *tweet.Handler

	// Playlist handles playlist CRUD and membership.
	Playlist *playlist.Handler

	// Subscription handles channel subscriptions.
	Subscription *subscription.Handler

	// Dashboard handles the channel owner's analytics views.
	Dashboard *dashboard.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.AccessVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/videos", h.Video.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/likes", h.Like.Routes())
		api.Mount("/tweets", h.Tweet.Routes())
		api.Mount("/playlists", h.Playlist.Routes())
		api.Mount("/subscriptions", h.Subscription.Routes())
		api.Mount("/dashboard", h.Dashboard.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
