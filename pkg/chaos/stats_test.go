package chaos

import (
	"sync"
	"testing"
)

func TestCollectorSnapshotIdempotent(t *testing.T) {
	c := NewCollector()
	c.recordRequest()
	c.recordChaos(ActionDelay)

	if c.Snapshot() != c.Snapshot() {
		t.Fatal("back-to-back snapshots differ without intervening requests")
	}
}

func TestCollectorSnapshotIsCopy(t *testing.T) {
	c := NewCollector()
	c.recordRequest()

	s := c.Snapshot()
	s.TotalRequests = 999

	if c.Snapshot().TotalRequests != 1 {
		t.Fatal("mutating a snapshot leaked into the collector")
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()
	for i := 0; i < 5; i++ {
		c.recordRequest()
	}
	c.recordChaos(ActionError)
	c.recordChaos(ActionCorruption)

	c.Reset()

	if c.Snapshot() != (Snapshot{}) {
		t.Fatalf("snapshot after reset = %+v, want zeros", c.Snapshot())
	}
}

func TestCollectorConcurrentInvariant(t *testing.T) {
	c := NewCollector()
	kinds := []ActionKind{ActionDelay, ActionError, ActionCorruption}

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.recordRequest()
				if i%2 == 0 {
					c.recordChaos(kinds[(w+i)%len(kinds)])
				}
			}
		}(w)
	}
	wg.Wait()

	s := c.Snapshot()
	if s.TotalRequests != 16*500 {
		t.Fatalf("totalRequests = %d, want %d (lost updates)", s.TotalRequests, 16*500)
	}
	if s.Delays+s.Errors+s.Corruptions != s.ChaosInjected {
		t.Fatalf("per-kind sum != chaosInjected: %+v", s)
	}
	if s.ChaosInjected > s.TotalRequests {
		t.Fatalf("chaosInjected exceeds totalRequests: %+v", s)
	}
}

func TestCollectorIgnoresNoneKind(t *testing.T) {
	c := NewCollector()
	c.recordRequest()
	c.recordChaos(ActionNone)

	if got := c.Snapshot().ChaosInjected; got != 0 {
		t.Fatalf("chaosInjected = %d, want 0 for none kind", got)
	}
}
