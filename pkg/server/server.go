// Package server exposes the quilt pipeline over HTTP.
//
// # Routes
//
//	GET /healthz                   liveness probe, returns "ok"
//	GET /v1/quilt/{seed}           encoded quilt
//	GET /v1/quilt/{seed}/colors    JSON colour export
//
// The quilt route accepts the query parameters grid, block, scale,
// algorithm, format, base64=1 and download=1. Responses are immutable: the
// same URL always yields the same bytes, so they carry a strong ETag and a
// one-year Cache-Control.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, keyer, logger)
//	srv := server.New(runner, server.WithAddr(":8080"), server.WithLogger(logger))
//	err := srv.ListenAndServe(ctx) // returns after ctx is cancelled
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/quilt/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	defaultTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves quilts over HTTP.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	limits   pipeline.Limits
	defaults pipeline.Options
	addr     string
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLimits bounds the sizes a request may ask for.
func WithLimits(l pipeline.Limits) Option {
	return func(s *Server) { s.limits = l }
}

// WithDefaults sets the render options used for absent query parameters.
// Seed, formats and flags in d are ignored.
func WithDefaults(d pipeline.Options) Option {
	return func(s *Server) { s.defaults = d }
}

// WithTimeout bounds the time spent on one request. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		limits:  pipeline.DefaultLimits(),
		addr:    defaultAddr,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.NotFound(s.handleNotFound)
	r.Get("/healthz", handleHealth)
	r.Route("/v1/quilt/{seed}", func(r chi.Router) {
		r.Get("/", s.handleQuilt)
		r.Get("/colors", s.handleColors)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
