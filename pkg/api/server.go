// Package api serves background synthesis over HTTP.
//
// # Routes
//
//	GET  /healthz          liveness and build version
//	GET  /v1/modes         modes with descriptions and default parameters
//	GET  /v1/themes        color themes
//	POST /v1/backgrounds   PNG foreground in, composited PNG out
//
// POST /v1/backgrounds takes its options from the query string: mode,
// theme, colors, seed and random, plus any mode parameter by name:
//
//	curl --data-binary @logo.png \
//	    'localhost:8080/v1/backgrounds?mode=gradient&direction=radial&seed=7' > out.png
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code and message.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spa-dev/rbgen/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 32 << 20
	DefaultTimeout      = 2 * time.Minute
	shutdownGrace       = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	// Timeout bounds the handling of one request.
	Timeout time.Duration
}

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New builds a server around runner. Zero config fields take defaults.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Get("/themes", s.handleThemes)
		r.Post("/backgrounds", s.handleBackground)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the listen address after defaults.
func (s *Server) Addr() string { return s.cfg.Addr }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
