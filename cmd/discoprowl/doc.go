// Package main hosts the discoprowl CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the polling daemon, dry-runs a single
// search term, sends test notifications, reports readiness, and scaffolds
// configuration. It centralizes configuration resolution and logger setup so
// subcommands can focus on output instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
