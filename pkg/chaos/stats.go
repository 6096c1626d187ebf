package chaos

import "sync"

// Snapshot is an immutable copy of a Collector's counters. The invariant
// ChaosInjected == Delays+Errors+Corruptions <= TotalRequests holds for
// every snapshot.
type Snapshot struct {
	TotalRequests int64 `json:"totalRequests"`
	ChaosInjected int64 `json:"chaosInjected"`
	Delays        int64 `json:"delays"`
	Errors        int64 `json:"errors"`
	Corruptions   int64 `json:"corruptions"`
}

// Collector aggregates decision outcomes. It is an explicitly owned
// component passed into the engine, so several engines in one process
// can keep independent counts or deliberately share one. All methods
// are safe for concurrent use.
type Collector struct {
	mu sync.Mutex
	s  Snapshot
}

// NewCollector returns a zeroed collector.
func NewCollector() *Collector {
	return &Collector{}
}

// recordRequest counts one intercepted request, chaos or not.
func (c *Collector) recordRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.TotalRequests++
}

// recordChaos counts one applied action. Callers only invoke it for
// decisions with Applied set.
func (c *Collector) recordChaos(kind ActionKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case ActionDelay:
		c.s.Delays++
	case ActionError:
		c.s.Errors++
	case ActionCorruption:
		c.s.Corruptions++
	default:
		return
	}
	c.s.ChaosInjected++
}

// Snapshot returns a copy of the current counters, never a live
// reference.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// Reset zeros all counters, for callers that window their statistics
// externally.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s = Snapshot{}
}
