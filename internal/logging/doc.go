// Package logging assembles the structured slog loggers used across discoprowl.
//
// It owns the console and JSON handlers, level parsing, and optional file
// output, and exposes context helpers so cycle code automatically tags log
// lines with the cycle ID, search term, and transport. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
