// Package server exposes the expression evaluator over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/calcctl/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	handlerTimeout    = 30 * time.Second
)

// Server wraps the HTTP listener and its dependencies.
type Server struct {
	cfg    config.HTTPServerConfig
	logger *slog.Logger
	server *http.Server
}

// New builds a server with the eval routes and the full middleware chain.
func New(cfg config.HTTPServerConfig, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("POST /v1/eval", handleEval(cfg.MaxBodyBytes))
	mux.HandleFunc("GET /v1/constants", handleConstants)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)

	var handler http.Handler = mux
	handler = withAPIKey(cfg.APIKey, handler)
	handler = withRateLimit(limiter, handler)
	handler = withCORS(handler)
	handler = withRecovery(logger, handler)
	handler = withLogging(logger, handler)
	handler = withRequestID(handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       handlerTimeout,
		WriteTimeout:      handlerTimeout,
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		server: srv,
	}
}

// Handler exposes the fully wrapped handler chain (tests drive it directly).
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the HTTP server and blocks until it exits or errors.
func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server within the provided context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
