// Package logging assembles structured slog loggers and formatting helpers used
// by the pika dispatcher.
//
// It owns the configurable console/JSON handlers, centralizes level parsing,
// and exposes context helpers so every line emitted during one dispatch run
// carries the same run identifier. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Diagnostics are written to stderr: standard output belongs to the
// dispatcher's user-facing records.
package logging
