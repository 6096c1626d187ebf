package chaos

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action materializes the parameters of one chaos kind into a Decision.
// Implementations must be stateless; all randomness comes from the
// supplied Source.
type Action interface {
	Kind() ActionKind
	Materialize(cfg Config, src Source) Decision
}

// Registry holds the weighted set of actions the selector picks from.
// New chaos kinds are added here; the gate and the route filter never
// change.
type Registry struct {
	entries []registryEntry
	total   int
}

type registryEntry struct {
	action Action
	weight int
}

// NewRegistry returns an empty action registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns delay, error and corruption at equal weight.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(DelayAction{}, 1)
	r.Register(ErrorAction{}, 1)
	r.Register(CorruptionAction{}, 1)
	return r
}

// Register adds an action with the given selection weight. Weights below
// one are ignored.
func (r *Registry) Register(a Action, weight int) {
	if weight < 1 {
		return
	}
	r.entries = append(r.entries, registryEntry{action: a, weight: weight})
	r.total += weight
}

// Kinds returns the registered action kinds in registration order.
func (r *Registry) Kinds() []ActionKind {
	kinds := make([]ActionKind, 0, len(r.entries))
	for _, e := range r.entries {
		kinds = append(kinds, e.action.Kind())
	}
	return kinds
}

// Pick selects one action proportionally to its weight and materializes
// it. An empty registry yields a pass-through decision.
func (r *Registry) Pick(cfg Config, src Source) Decision {
	if r.total == 0 {
		return Decision{Kind: ActionNone}
	}
	n := src.Intn(r.total)
	for _, e := range r.entries {
		n -= e.weight
		if n < 0 {
			return e.action.Materialize(cfg, src)
		}
	}
	return Decision{Kind: ActionNone}
}

// DelayAction suspends the response for a duration drawn uniformly from
// the configured delay range.
type DelayAction struct{}

// Kind returns ActionDelay.
func (DelayAction) Kind() ActionKind { return ActionDelay }

// Materialize draws the delay duration. A degenerate range (min == max)
// always yields exactly that duration.
func (DelayAction) Materialize(cfg Config, src Source) Decision {
	d := cfg.DelayMin
	if span := cfg.DelayMax - cfg.DelayMin; span > 0 {
		d += time.Duration(src.Int63n(int64(span) + 1))
	}
	return Decision{Kind: ActionDelay, Delay: d}
}

// ErrorMarker tags synthetic error bodies so clients and tests can tell
// injected failures apart from real ones.
const ErrorMarker = "chaos_injected"

// ErrorAction short-circuits the response with a synthetic HTTP error.
type ErrorAction struct{}

// Kind returns ActionError.
func (ErrorAction) Kind() ActionKind { return ActionError }

// Materialize draws a status code uniformly from the configured set and
// builds the synthetic error body.
func (ErrorAction) Materialize(cfg Config, src Source) Decision {
	code := cfg.ErrorCodes[src.Intn(len(cfg.ErrorCodes))]
	return Decision{Kind: ActionError, StatusCode: code, Body: errorBody(code)}
}

type syntheticError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func errorBody(code int) []byte {
	b, _ := json.Marshal(syntheticError{
		Error:   ErrorMarker,
		Message: fmt.Sprintf("havoc injected a simulated %d failure", code),
		Status:  code,
	})
	return b
}

// CorruptionAction mutates the upstream response body before delivery.
type CorruptionAction struct{}

// Kind returns ActionCorruption.
func (CorruptionAction) Kind() ActionKind { return ActionCorruption }

var corruptionStrategies = []CorruptionStrategy{
	StrategyNullBody,
	StrategyScrambleFields,
	StrategyInvalidPayload,
}

// Materialize draws one of the corruption strategies uniformly. The
// chosen strategy is recorded in the decision for observability.
func (CorruptionAction) Materialize(cfg Config, src Source) Decision {
	return Decision{
		Kind:     ActionCorruption,
		Strategy: corruptionStrategies[src.Intn(len(corruptionStrategies))],
	}
}
