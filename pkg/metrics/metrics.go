// Package metrics exports havoc decision outcomes as Prometheus
// metrics. A Recorder observes every engine decision and serves the
// standard exposition format for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gethavoc/havoc/pkg/chaos"
)

// Recorder implements chaos.Observer over a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry
	requests prometheus.Counter
	injected *prometheus.CounterVec
}

// NewRecorder creates a recorder with its metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.requests = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "havoc_requests_total", Help: "Total number of requests seen by the chaos engine."},
	)
	r.registry.MustRegister(r.requests)

	r.injected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "havoc_chaos_injected_total", Help: "Total number of chaos actions applied, by kind."},
		[]string{"kind"},
	)
	r.registry.MustRegister(r.injected)

	return r
}

// Observe implements chaos.Observer.
func (r *Recorder) Observe(d chaos.Decision) {
	r.requests.Inc()
	if d.Applied {
		r.injected.WithLabelValues(string(d.Kind)).Inc()
	}
}

// Registry returns the underlying Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an http.Handler serving the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var _ chaos.Observer = (*Recorder)(nil)
