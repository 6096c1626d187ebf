// Package admin exposes havoc's operator surface over HTTP: stats
// inspection and reset, the resolved configuration, built-in profiles,
// and Prometheus metrics.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gethavoc/havoc/pkg/chaos"
	"github.com/gethavoc/havoc/pkg/logging"
	"github.com/gethavoc/havoc/pkg/metrics"
)

// API serves the admin endpoints for one chaos engine.
type API struct {
	engine   *chaos.Engine
	recorder *metrics.Recorder
	logger   *slog.Logger

	httpServer *http.Server
}

// Option customizes the API.
type Option func(*API)

// WithLogger sets the logger used for request-level diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics mounts a Prometheus recorder at /metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *API) { a.recorder = r }
}

// New creates an admin API bound to the given engine, listening on port.
func New(engine *chaos.Engine, port int, opts ...Option) *API {
	a := &API{
		engine: engine,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      a.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return a
}

// Handler returns the admin route table.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealth)
	mux.HandleFunc("GET /chaos/stats", a.handleGetStats)
	mux.HandleFunc("POST /chaos/stats/reset", a.handleResetStats)
	mux.HandleFunc("GET /chaos/config", a.handleGetConfig)
	mux.HandleFunc("GET /chaos/profiles", a.handleListProfiles)
	mux.HandleFunc("GET /chaos/profiles/{name}", a.handleGetProfile)

	if a.recorder != nil {
		mux.Handle("GET /metrics", a.recorder.Handler())
	}

	return mux
}

// Start begins serving. It blocks until the server stops.
func (a *API) Start() error {
	a.logger.Info("admin API listening", "addr", a.httpServer.Addr)
	err := a.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (a *API) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
