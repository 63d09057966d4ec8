// Package server exposes the catalog and recorded traces over HTTP.
//
// # Routes
//
//	GET  /healthz
//	GET  /algorithms[?category=trees]
//	GET  /algorithms/{id}
//	POST /algorithms/{id}/validate   {"input": {...}, "params": {...}}
//	POST /algorithms/{id}/run        same body, returns the trace
//	POST /algorithms/{id}/render?step=N&format=svg|dot|png|pdf
//	GET  /metrics                    when a metrics handler is configured
//
// Invalid input or parameters answer 422 with the validator's message
// verbatim in the "error" field.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/trace"
)

// KeyPrefix scopes API cache entries apart from CLI entries in a shared
// backend.
const KeyPrefix = "api:"

// maxBodyBytes bounds request bodies. Inputs are capped far below this by
// the catalog limits.
const maxBodyBytes = 64 << 10

// Server serves the API.
type Server struct {
	registry *catalog.Registry
	runner   *trace.Runner
	logger   *log.Logger
	metrics  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New creates a server over reg. Runs go through a copy of runner whose keys
// carry [KeyPrefix], so API clients share its cache with each other but not
// with the CLI.
func New(reg *catalog.Registry, runner *trace.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	scoped := *runner
	scoped.Keyer = cache.NewScopedKeyer(runner.Keyer, KeyPrefix)
	s := &Server{registry: reg, runner: &scoped, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.health)
	r.Route("/algorithms", func(r chi.Router) {
		r.Get("/", s.list)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.info)
			r.Post("/validate", s.validate)
			r.Post("/run", s.run)
			r.Post("/render", s.render)
		})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// instrument reports each request to the HTTP hooks and the debug log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", d)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
