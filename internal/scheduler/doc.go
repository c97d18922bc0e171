// Package scheduler drives the per-second tick loop that fires webcron jobs.
//
// # Timing
//
// The loop anchors to wall-clock second boundaries: each iteration computes
// the next whole second and sleeps until it arrives, rather than sleeping a
// fixed second and drifting. A tick that is missed because the process fell
// behind, or because the clock stepped, is skipped — the loop resynchronizes
// to the next real boundary instead of replaying or double-firing seconds.
//
// Schedules are evaluated against the tick instant in UTC.
//
// # Dispatch
//
// Every job due on a tick is handed to its own goroutine immediately; the
// loop never waits for a dispatch to finish before evaluating the next job
// or starting the next tick. A hanging call for one job cannot delay or
// skip another job's firing.
//
// Overlapping runs of the same job are allowed: if a schedule fires again
// while an earlier call is still in flight, both run. Jobs are assumed to
// be independent idempotent pings, so serializing per job would only add
// head-of-line blocking.
package scheduler
