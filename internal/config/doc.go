// Package config loads, normalizes, and validates discoprowl configuration.
//
// It supplies repository defaults, reads TOML files, and overlays the
// environment variables used by container deployments (PROWLARR_URL, API_KEY,
// SEARCH_ITEMS and friends), including a .env file in the working directory.
// The Config type centralizes every knob the poller and CLI need so the
// filtering pipeline receives an immutable value rather than reading globals.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, lowercase keyword lists, and clear validation errors.
package config
