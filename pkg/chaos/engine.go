package chaos

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/gethavoc/havoc/pkg/logging"
)

// Request is the abstract descriptor the engine consumes; it never sees
// the hosting framework's own request type.
type Request struct {
	Path   string
	Method string
}

// Observer receives every decision the engine makes, applied or not.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(Decision)
}

// Engine is the chaos decision core. It is immutable after New apart
// from the stats collector; one engine may serve many concurrent
// requests.
type Engine struct {
	cfg       Config
	src       Source
	registry  *Registry
	stats     *Collector
	logger    *slog.Logger
	observers []Observer
}

// EngineOption customizes an Engine at construction.
type EngineOption func(*Engine)

// WithSource replaces the random source, typically with a deterministic
// sequence in tests.
func WithSource(src Source) EngineOption {
	return func(e *Engine) { e.src = src }
}

// WithRegistry replaces the default action registry, narrowing or
// extending the eligible chaos kinds.
func WithRegistry(r *Registry) EngineOption {
	return func(e *Engine) { e.registry = r }
}

// WithLogger sets the logger used for applied-decision records when
// logging is enabled in the configuration.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCollector injects a stats collector, letting callers share one
// collector across engines or inspect it directly.
func WithCollector(c *Collector) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.stats = c
		}
	}
}

// WithObserver registers an observer for every decision, e.g. a metrics
// recorder.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// New resolves opts into a canonical configuration and builds an engine.
// Configuration problems surface here, wrapped in
// ErrInvalidConfiguration; Decide never fails afterwards.
func New(opts Options, engineOpts ...EngineOption) (*Engine, error) {
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		stats:  NewCollector(),
		logger: logging.Nop(),
	}
	for _, opt := range engineOpts {
		opt(e)
	}
	if e.src == nil {
		e.src = newDefaultSource()
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	return e, nil
}

// Decide runs the per-request pipeline: route filter, probability gate,
// action selection. It is total — every call returns a decision and
// updates the stats collector exactly once.
func (e *Engine) Decide(req Request) Decision {
	e.stats.recordRequest()

	d := Decision{Kind: ActionNone, Route: req.Path}
	if e.cfg.Eligible(req.Path) && e.src.Float64() < e.cfg.Probability {
		if picked := e.registry.Pick(e.cfg, e.src); picked.Kind != ActionNone {
			d = picked
			d.Applied = true
			d.ID = uuid.NewString()
			d.Route = req.Path
			e.stats.recordChaos(d.Kind)
			if e.cfg.LoggingEnabled {
				e.logger.Info("chaos injected",
					"decision", d.ID,
					"route", d.Route,
					"action", string(d.Kind),
					"detail", d.Detail(),
				)
			}
		}
	}

	for _, o := range e.observers {
		o.Observe(d)
	}
	return d
}

// Config returns the resolved configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Snapshot {
	return e.stats.Snapshot()
}

// ResetStats zeros the engine's counters.
func (e *Engine) ResetStats() {
	e.stats.Reset()
}
