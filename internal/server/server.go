// Package server exposes the bot's HTTP surface: the LINE callback, wake-up, health and metrics routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"StockAdvisor/internal/logger"
)

// Config holds server settings.
type Config struct {
	Port    int
	Service string
	Version string
	Timeout time.Duration // read/write timeout; analyses of several symbols can take a while
}

// Handlers are the externally built route handlers.
type Handlers struct {
	Callback http.Handler
	Metrics  http.Handler // optional
}

// Server is the bot HTTP server.
type Server struct {
	server *http.Server
	log    *logger.Logger
}

// New creates a new Server.
func New(cfg Config, h Handlers, log *logger.Logger) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	log = log.With("component", "http_server")

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      NewHandler(cfg, h, log),
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		log: log,
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(cfg Config, h Handlers, log *logger.Logger) http.Handler {
	health := &healthHandler{
		service: cfg.Service,
		version: cfg.Version,
		start:   time.Now(),
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.Handle("/callback", h.Callback)
	mux.HandleFunc("GET /render_wake_up", handleWakeUp)
	mux.HandleFunc("GET /healthz", health.handleHealth)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	chain := Chain(
		Recovery(log),
		Logging(log),
	)
	return chain(mux)
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	s.log.Infow("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Serve serves on an existing listener until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Infow("starting HTTP server", "addr", ln.Addr().String())
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests up to ctx's deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
