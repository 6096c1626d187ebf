package chaos

import (
	"context"
	"time"
)

// ResponseSink is the abstract response surface an applier drives. The
// hosting adapter owns its lifecycle; appliers only call into it.
type ResponseSink interface {
	// SetStatus stages the response status code.
	SetStatus(code int)
	// SetBody finalizes the response with the given body.
	SetBody(body []byte)
	// Suspend parks this response for d without blocking other in-flight
	// requests. It returns the context's error when the host cancels
	// mid-suspension.
	Suspend(ctx context.Context, d time.Duration) error
}

// DelayApplier realizes a delay decision: suspend completion, then let
// the normal response flow proceed unchanged.
type DelayApplier struct{}

// Apply suspends the sink for the decided duration. A non-nil error
// means the host canceled and the response must be abandoned without
// finalizing.
func (DelayApplier) Apply(ctx context.Context, d Decision, sink ResponseSink) error {
	return sink.Suspend(ctx, d.Delay)
}

// ErrorApplier short-circuits the response with the decision's synthetic
// error; the underlying handler's real result is never sent.
type ErrorApplier struct{}

// Apply writes the synthetic status and body to the sink.
func (ErrorApplier) Apply(_ context.Context, d Decision, sink ResponseSink) error {
	sink.SetStatus(d.StatusCode)
	sink.SetBody(d.Body)
	return nil
}

// CorruptionApplier mutates an already-produced response body per the
// decision's strategy and sends the result.
type CorruptionApplier struct {
	// Source drives byte-level randomness during mutation. Nil falls
	// back to a fresh time-seeded source.
	Source Source
}

// Apply corrupts body and writes it to the sink, returning the strategy
// that was actually applied (non-JSON bodies degrade to invalid
// payload).
func (a CorruptionApplier) Apply(_ context.Context, d Decision, body []byte, sink ResponseSink) CorruptionStrategy {
	src := a.Source
	if src == nil {
		src = newDefaultSource()
	}
	out, applied := Corrupt(body, d.Strategy, src)
	sink.SetBody(out)
	return applied
}
