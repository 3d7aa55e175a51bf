// Package filter decides which indexer hits are worth a notification.
//
// A hit must look like a PC game, avoid every disallowed keyword, be no older
// than the configured age, and contain the search term as a whole word. The
// surviving hits are trimmed to the configured count without reordering.
package filter
