package chaos

import (
	"encoding/json"
	"testing"
	"time"
)

func mustResolve(t *testing.T, opts Options) Config {
	t.Helper()
	cfg, err := Resolve(opts)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return cfg
}

func TestDelayActionDegenerateRange(t *testing.T) {
	// A [1s, 1s] range must always materialize exactly 1s, regardless of
	// what the source returns.
	cfg := mustResolve(t, Options{DelayMin: "1s", DelayMax: "1s"})
	src := &scriptedSource{ints: []int{17, 3, 99}}

	for i := 0; i < 5; i++ {
		d := DelayAction{}.Materialize(cfg, src)
		if d.Delay != time.Second {
			t.Fatalf("delay = %v, want exactly 1s", d.Delay)
		}
	}
}

func TestDelayActionRangeBounds(t *testing.T) {
	cfg := mustResolve(t, Options{DelayMin: "100ms", DelayMax: "200ms"})
	src := NewSource(1)

	for i := 0; i < 200; i++ {
		d := DelayAction{}.Materialize(cfg, src)
		if d.Delay < 100*time.Millisecond || d.Delay > 200*time.Millisecond {
			t.Fatalf("delay %v outside [100ms, 200ms]", d.Delay)
		}
	}
}

func TestErrorActionBody(t *testing.T) {
	cfg := mustResolve(t, Options{ErrorCodes: []int{503}})
	d := ErrorAction{}.Materialize(cfg, &scriptedSource{ints: []int{0}})

	if d.StatusCode != 503 {
		t.Fatalf("status = %d, want 503", d.StatusCode)
	}

	var body struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(d.Body, &body); err != nil {
		t.Fatalf("synthetic body is not JSON: %v", err)
	}
	if body.Error != ErrorMarker {
		t.Errorf("marker = %q, want %q", body.Error, ErrorMarker)
	}
	if body.Status != 503 {
		t.Errorf("body status = %d, want 503", body.Status)
	}
}

func TestCorruptionActionRecordsStrategy(t *testing.T) {
	cfg := mustResolve(t, Options{})

	for i, want := range corruptionStrategies {
		d := CorruptionAction{}.Materialize(cfg, &scriptedSource{ints: []int{i}})
		if d.Strategy != want {
			t.Errorf("strategy[%d] = %q, want %q", i, d.Strategy, want)
		}
	}
}

func TestRegistryWeightedPick(t *testing.T) {
	cfg := mustResolve(t, Options{})

	r := NewRegistry()
	r.Register(DelayAction{}, 1)
	r.Register(ErrorAction{}, 3)

	// Weight 1+3: index 0 is delay, 1..3 are error.
	if d := r.Pick(cfg, &scriptedSource{ints: []int{0}}); d.Kind != ActionDelay {
		t.Errorf("index 0 picked %q, want delay", d.Kind)
	}
	for i := 1; i <= 3; i++ {
		if d := r.Pick(cfg, &scriptedSource{ints: []int{i}}); d.Kind != ActionError {
			t.Errorf("index %d picked %q, want error", i, d.Kind)
		}
	}
}

func TestRegistryEmpty(t *testing.T) {
	cfg := mustResolve(t, Options{})
	d := NewRegistry().Pick(cfg, NewSource(1))
	if d.Kind != ActionNone {
		t.Fatalf("empty registry picked %q, want none", d.Kind)
	}
}

// fuseAction is a custom kind, proving the selector is extensible
// without touching the gate or filter.
type fuseAction struct{}

func (fuseAction) Kind() ActionKind { return ActionKind("fuse") }

func (fuseAction) Materialize(cfg Config, src Source) Decision {
	return Decision{Kind: ActionKind("fuse")}
}

func TestRegistryCustomAction(t *testing.T) {
	cfg := mustResolve(t, Options{})

	r := NewRegistry()
	r.Register(fuseAction{}, 1)

	d := r.Pick(cfg, &scriptedSource{ints: []int{0}})
	if d.Kind != ActionKind("fuse") {
		t.Fatalf("picked %q, want custom fuse kind", d.Kind)
	}

	kinds := r.Kinds()
	if len(kinds) != 1 || kinds[0] != ActionKind("fuse") {
		t.Fatalf("Kinds() = %v", kinds)
	}
}

func TestRegistryIgnoresZeroWeight(t *testing.T) {
	r := NewRegistry()
	r.Register(DelayAction{}, 0)
	if len(r.Kinds()) != 0 {
		t.Fatal("zero-weight registration must be ignored")
	}
}
