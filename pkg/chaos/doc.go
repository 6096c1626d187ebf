// Package chaos implements the havoc decision engine: a fault-injection
// core that probabilistically degrades otherwise-correct HTTP responses
// so clients can be exercised against realistic failure modes.
//
// For every intercepted request the engine runs a fixed pipeline:
//
//	route filter -> probability gate -> action selector -> applier
//
// The route filter checks the request path against enabled/disabled
// prefixes (disabled always wins). The probability gate rolls one fresh
// uniform draw against the configured probability. When the gate fires,
// the action selector picks one action from a weighted registry (delay,
// error injection, body corruption by default) and materializes its
// parameters into a Decision. Appliers realize decisions against an
// abstract ResponseSink; the bundled Middleware adapts net/http.
//
// Decide is total: it always returns a Decision and never panics, so a
// fault-injection tool cannot itself become a source of faults in the
// host pipeline. All configuration problems surface once, at
// construction, wrapped in ErrInvalidConfiguration.
//
// Randomness flows through the injectable Source interface; supplying a
// deterministic Source makes decision sequences reproducible for tests.
// Statistics live in an injectable Collector, so multiple engines in one
// process can keep independent counts.
package chaos
