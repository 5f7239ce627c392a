// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the composition root for the chi router.
  - Reads of the catalogue are public; every mutation sits behind a session.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/inkpost/internal/ai"
	"github.com/taibuivan/inkpost/internal/core/blog"
	"github.com/taibuivan/inkpost/internal/core/cover"
	"github.com/taibuivan/inkpost/internal/core/tag"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/config"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/middleware"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/internal/users/account"
	"github.com/taibuivan/inkpost/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler and returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler and returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles sign-in, sign-out and the current session.
	Auth *auth.Handler

	// Account serves the signed-in admin's profile and password.
	Account *account.Handler

	// Blog handles the article catalogue and its workflow.
	Blog *blog.Handler

	// Tag lists the tag vocabulary.
	Tag *tag.Handler

	// Cover uploads and deletes cover images.
	Cover *cover.Handler

	// AI drafts article summaries.
	AI *ai.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions middleware.SessionResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	proxies := middleware.TrustedProxies(cfg.Proxies())

	r.Use(middleware.StructuredLogger(log, proxies))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst, proxies))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.IsDevelopment(), cfg.Origins()))
	r.Use(chimw.CleanPath)
	r.Use(middleware.LoadSession(sessions))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.NotFound("Route"))
		})

		api.Route("/auth", h.Auth.RegisterRoutes)
		api.Route("/account", h.Account.RegisterRoutes)
		api.Route("/blogs", h.Blog.RegisterRoutes)
		api.Route("/tags", h.Tag.RegisterRoutes)
		api.Route("/covers", h.Cover.RegisterRoutes)
		api.Route("/ai", h.AI.RegisterRoutes)
	})

	// # Presentation
	// Optional static front end. Admin pages are gated on the session.
	if cfg.WebRoot != "" {
		r.With(middleware.AdminGate).Handle("/*", http.FileServer(http.Dir(cfg.WebRoot)))
	}

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

// Handler exposes the router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
