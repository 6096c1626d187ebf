package chaos

import (
	"fmt"
	"time"
)

// ActionKind identifies the chaos action carried by a Decision.
type ActionKind string

const (
	// ActionNone means the request passes through untouched.
	ActionNone ActionKind = "none"
	// ActionDelay holds the response for a duration before normal flow resumes.
	ActionDelay ActionKind = "delay"
	// ActionError replaces the response with a synthetic HTTP error.
	ActionError ActionKind = "error"
	// ActionCorruption mutates the real response body before it is sent.
	ActionCorruption ActionKind = "corruption"
)

// CorruptionStrategy names how a response body is mutated.
type CorruptionStrategy string

const (
	// StrategyNullBody replaces the body with a JSON null.
	StrategyNullBody CorruptionStrategy = "null_body"
	// StrategyScrambleFields randomizes string values while keeping JSON shape.
	StrategyScrambleFields CorruptionStrategy = "scramble_fields"
	// StrategyInvalidPayload replaces well-formed content with broken syntax.
	StrategyInvalidPayload CorruptionStrategy = "invalid_payload"
)

// Decision records whether and how chaos applies to one request. It is
// created per request and discarded once realized; only the fields for
// the decision's Kind are populated.
type Decision struct {
	ID      string     `json:"id,omitempty"`
	Route   string     `json:"route"`
	Applied bool       `json:"applied"`
	Kind    ActionKind `json:"kind"`

	// Delay action.
	Delay time.Duration `json:"delay,omitempty"`

	// Error action.
	StatusCode int    `json:"statusCode,omitempty"`
	Body       []byte `json:"-"`

	// Corruption action.
	Strategy CorruptionStrategy `json:"strategy,omitempty"`
}

// Detail returns a short human-readable description of the action
// parameters, used in structured log records and admin payloads.
func (d Decision) Detail() string {
	switch d.Kind {
	case ActionDelay:
		return d.Delay.String()
	case ActionError:
		return fmt.Sprintf("status %d", d.StatusCode)
	case ActionCorruption:
		return string(d.Strategy)
	default:
		return "pass-through"
	}
}
