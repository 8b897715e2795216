// Package api serves enumerations and counts over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/trees/{n}                     NDJSON stream of level sequences
//	GET /v1/partitions/{n}/{l}            NDJSON stream of partitions
//	GET /v1/counts/trees/{n}              closed-form count, ?verify=true walks
//	GET /v1/counts/partitions/{n}/{l}
//	GET /v1/census/{kind}/{max}           count table
//	GET /metrics                          Prometheus metrics
//
// Streams accept ?limit= (default 1000) and ?format=json|text. A client that
// disconnects cancels the walk.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// Stream limits.
const (
	DefaultLimit = 1000
	MaxLimit     = 100_000
)

// requestTimeout bounds count and census requests, which walk the successor
// to the end.
const requestTimeout = 60 * time.Second

// Options configures a Server.
type Options struct {
	// MaxSize caps n for every route. Defaults to MaxEnumerationSize.
	MaxSize int
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	// CensusWorkers bounds census parallelism. Zero means GOMAXPROCS.
	CensusWorkers int
}

// Server is the HTTP front end for a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server. A nil logger uses the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if opts.MaxSize <= 0 || opts.MaxSize > fserrors.MaxEnumerationSize {
		opts.MaxSize = fserrors.MaxEnumerationSize
	}
	return &Server{runner: runner, logger: logger, opts: opts}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/trees/{n}", s.handleTrees)
		r.Get("/partitions/{n}/{l}", s.handlePartitions)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Get("/counts/trees/{n}", s.handleCountTrees)
			r.Get("/counts/partitions/{n}/{l}", s.handleCountPartitions)
			r.Get("/census/{kind}/{max}", s.handleCensus)
		})
	})
	if s.opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down,
// giving in-flight requests up to grace to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", grace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
