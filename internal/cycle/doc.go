// Package cycle drives one polling pass over the configured search terms and
// the schedule that repeats it.
//
// A Runner processes terms strictly one at a time: search the indexer, filter
// and select hits, format the payload, and dispatch it. Every collaborator
// call finishes or times out before the next begins, and no failure in one
// term stops the others. The Scheduler runs a cycle immediately and then
// sleeps until the next time produced by the cron schedule.
package cycle
