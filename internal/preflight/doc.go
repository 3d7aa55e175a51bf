// Package preflight provides readiness checks for the indexer, the optional
// artwork lookup, notification endpoints, and the state directory.
//
// These checks back the CLI "discoprowl check" command and the startup
// snapshot logged by the daemon. Checks never send a notification; transport
// checks only confirm the endpoint is well formed.
package preflight
