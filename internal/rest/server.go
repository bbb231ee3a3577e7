// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-passkey.
//
// go-passkey is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeremyhahn/go-passkey/pkg/metrics"
	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

// Server represents the REST API server.
type Server struct {
	server   *http.Server
	router   *chi.Mux
	handlers *Handlers
	addr     string
	logger   *slog.Logger
}

// Config holds the REST server configuration.
type Config struct {
	// Host is the interface to bind (default: all interfaces).
	Host string

	// Port is the HTTP port to listen on (default: 3001).
	Port int

	// Service is the passkey service backing the API (required).
	Service *passkey.Service

	// Logger is the structured logger (optional, slog default if not provided).
	Logger *slog.Logger

	// AllowedOrigin is the front-end origin for credentialed CORS.
	AllowedOrigin string

	// CookieName is the session cookie name (default: authToken).
	CookieName string

	// CookieMaxAge is the session cookie lifetime in seconds (default: 24h).
	CookieMaxAge int

	// MetricsEnabled exposes Prometheus metrics on MetricsPath.
	MetricsEnabled bool

	// MetricsPath is the metrics endpoint path (default: /metrics).
	MetricsPath string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request.
	IdleTimeout time.Duration
}

// NewServer creates a new REST API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("passkey service is required")
	}

	// Set defaults
	if cfg.Port == 0 {
		cfg.Port = 3001
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "authToken"
	}
	if cfg.CookieMaxAge == 0 {
		cfg.CookieMaxAge = 24 * 60 * 60
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "http://localhost:5173"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	server := &Server{
		handlers: NewHandlers(cfg.Service, log, cfg.CookieName, cfg.CookieMaxAge),
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		logger:   log,
	}

	router := server.setupRouter(cfg)
	server.router = router

	server.server = &http.Server{
		Addr:         server.addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return server, nil
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter(cfg *Config) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(s.RecoveryMiddleware())
	r.Use(s.LoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)
	r.Use(CORSMiddleware(cfg.AllowedOrigin))

	// Health endpoint (no auth required)
	r.Get("/health", s.handlers.HealthHandler)
	r.Head("/health", s.handlers.HealthHandler)

	if cfg.MetricsEnabled {
		r.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	// User endpoints
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", s.handlers.RegisterUserHandler)
		r.Get("/check", s.handlers.CheckUserHandler)
		r.Get("/", s.handlers.ListUsersHandler)
		r.Get("/{id}", s.handlers.GetUserHandler)
	})

	// Credential endpoints
	r.Route("/api/credentials", func(r chi.Router) {
		r.Post("/register", s.handlers.RegisterCredentialHandler)
		r.Get("/get-info", s.handlers.GetCredentialInfoHandler)
		r.Post("/verify", s.handlers.VerifyCredentialHandler)
	})

	// Auth endpoints
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handlers.LoginHandler)
		r.Post("/logout", s.handlers.LogoutHandler)
		r.Get("/verify", s.handlers.VerifyAuthHandler)
	})

	return r
}

// Start starts the REST API server.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the REST API server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shutdown server", "error", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Router returns the configured router. Exposed for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
