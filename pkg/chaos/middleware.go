package chaos

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"
)

// Middleware wraps an http.Handler with chaos injection. It adapts
// net/http to the engine's abstract request/sink model: decide first,
// then realize the decision through the matching applier.
type Middleware struct {
	next   http.Handler
	engine *Engine
}

// NewMiddleware wraps next with the given engine. A nil engine yields a
// transparent middleware.
func NewMiddleware(next http.Handler, engine *Engine) *Middleware {
	return &Middleware{next: next, engine: engine}
}

// ServeHTTP implements http.Handler.
func (m *Middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.engine == nil {
		m.next.ServeHTTP(w, r)
		return
	}

	d := m.engine.Decide(Request{Path: r.URL.Path, Method: r.Method})
	if !d.Applied {
		m.next.ServeHTTP(w, r)
		return
	}

	switch d.Kind {
	case ActionDelay:
		if err := (DelayApplier{}).Apply(r.Context(), d, &writerSink{w: w}); err != nil {
			// Client went away mid-suspension; abandon the response.
			return
		}
		m.next.ServeHTTP(w, r)

	case ActionError:
		_ = ErrorApplier{}.Apply(r.Context(), d, &writerSink{w: w})

	case ActionCorruption:
		// The real handler must produce its result first; record it,
		// then mutate before anything reaches the wire.
		rec := newBodyRecorder(w)
		m.next.ServeHTTP(rec, r)
		CorruptionApplier{Source: m.engine.src}.Apply(r.Context(), d, rec.body.Bytes(), rec)

	default:
		m.next.ServeHTTP(w, r)
	}
}

// writerSink adapts http.ResponseWriter to ResponseSink for the delay
// and error paths.
type writerSink struct {
	w      http.ResponseWriter
	status int
}

func (s *writerSink) SetStatus(code int) {
	s.status = code
}

func (s *writerSink) SetBody(body []byte) {
	s.w.Header().Set("Content-Type", "application/json")
	s.w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if s.status != 0 {
		s.w.WriteHeader(s.status)
	}
	_, _ = s.w.Write(body)
}

func (s *writerSink) Suspend(ctx context.Context, d time.Duration) error {
	return suspend(ctx, d)
}

func suspend(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// bodyRecorder buffers the handler's response so the corruption applier
// can mutate it before delivery. It doubles as the ResponseSink the
// applier flushes through.
type bodyRecorder struct {
	w      http.ResponseWriter
	status int
	body   bytes.Buffer
}

func newBodyRecorder(w http.ResponseWriter) *bodyRecorder {
	return &bodyRecorder{w: w}
}

// Header implements http.ResponseWriter.
func (r *bodyRecorder) Header() http.Header {
	return r.w.Header()
}

// WriteHeader implements http.ResponseWriter; the status is held back
// until the mutated body is flushed.
func (r *bodyRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

// Write implements http.ResponseWriter, capturing the body.
func (r *bodyRecorder) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// SetStatus implements ResponseSink.
func (r *bodyRecorder) SetStatus(code int) {
	r.status = code
}

// SetBody implements ResponseSink, flushing the held-back status and the
// mutated body to the real writer.
func (r *bodyRecorder) SetBody(body []byte) {
	r.w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	r.w.WriteHeader(status)
	_, _ = r.w.Write(body)
}

// Suspend implements ResponseSink; the corruption path never suspends.
func (r *bodyRecorder) Suspend(ctx context.Context, d time.Duration) error {
	return suspend(ctx, d)
}
