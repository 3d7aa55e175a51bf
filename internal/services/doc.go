// Package services defines shared utilities consumed by the cycle driver and
// the external integrations (indexer, artwork, notification transports).
//
// Key responsibilities:
//   - Context helpers that stamp cycle IDs, search terms, and transport names
//     for logging.
//   - Structured error markers plus the Wrap helper so callers can tell a
//     timeout from a missing record or a transient network failure.
//
// Use these helpers when wiring new integrations so operational behaviour
// (error classification, observability) stays uniform across the pipeline.
package services
