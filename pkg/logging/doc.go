// Package logging configures structured logging for havoc on top of
// log/slog. It provides text and JSON handlers, level/format parsing for
// CLI flags, and a no-op logger for disabled sinks.
package logging
