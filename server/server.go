// Package server exposes one engine over HTTP: POST /post, /post_multi and
// /query with JSON bodies, plus health and prometheus endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/telemstore/telemstore/engine"
)

// Server fronts an engine for one record kind. I is the incoming (possibly
// timestamp-less) form of T; record converts on ingestion.
type Server[I, T, Q any] struct {
	engine   *engine.Engine[T, Q]
	record   func(I) T
	host     string
	port     int
	log      *zap.Logger
	gatherer prometheus.Gatherer

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*options)

type options struct {
	log      *zap.Logger
	gatherer prometheus.Gatherer
}

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithGatherer exposes a prometheus registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) { o.gatherer = g }
}

// New builds a server for eng listening on host:port.
func New[I, T, Q any](eng *engine.Engine[T, Q], record func(I) T, host string, port int, opts ...Option) *Server[I, T, Q] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server[I, T, Q]{
		engine:   eng,
		record:   record,
		host:     host,
		port:     port,
		log:      o.log,
		gatherer: o.gatherer,
	}
}

// Handler returns the route table. Unknown paths and wrong methods get the
// same JSON error envelope as handler failures.
func (s *Server[I, T, Q]) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.log))

	r.Post("/post", s.handlePost)
	r.Post("/post_multi", s.handlePostMulti)
	r.Post("/query", s.handleQuery)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeOK(w)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Addr returns the listen address.
func (s *Server[I, T, Q]) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Run serves until ctx is cancelled, then shuts down gracefully with a
// bounded timeout.
func (s *Server[I, T, Q]) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.log.Info("http server listening", zap.String("addr", s.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		s.log.Info("http server stopped")
		return nil
	}
}
