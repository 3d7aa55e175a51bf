// Package daemon coordinates the long-running discoprowl poller.
//
// It wires the cycle runner and the scheduler into a single lifecycle with
// flock-based locking so two pollers never send duplicate notifications from
// the same state directory. Each cycle receives a UUID that is attached to
// every log line the cycle produces.
//
// Keep orchestration logic here: searching, filtering, and delivery live in
// their own packages while the daemon focuses on startup, shutdown, and
// scheduling.
package daemon
