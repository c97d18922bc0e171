package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"webcron/internal/dispatch"
	"webcron/internal/job"
)

// Dispatcher executes one job attempt for one tick.
type Dispatcher interface {
	Dispatch(ctx context.Context, j job.Job, tick time.Time) dispatch.Outcome
}

// resyncWindow bounds how far the loop will chase its own last tick before
// deciding the wall clock has genuinely stepped backward and realigning to
// it. Small backward adjustments (NTP slew, timer jitter) stay monotonic;
// large steps resync.
const resyncWindow = 5 * time.Second

// Loop evaluates every job against the cron matcher once per second and
// spawns dispatches for the due ones. The job list is read-only for the
// life of the loop; no locking is needed anywhere in the tick path.
type Loop struct {
	jobs     []job.Job
	dispatch Dispatcher
	report   dispatch.Reporter
	log      zerolog.Logger

	now      func() time.Time // test seam
	lastTick time.Time
}

func New(jobs []job.Job, d Dispatcher, r dispatch.Reporter, log zerolog.Logger) *Loop {
	return &Loop{
		jobs:     jobs,
		dispatch: d,
		report:   r,
		log:      log,
		now:      time.Now,
	}
}

// Run ticks until ctx is canceled; that cancellation is the only way out.
// In-flight dispatches are abandoned on return, by design — there is no
// durability guarantee for calls in progress at shutdown.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info().Int("jobs", len(l.jobs)).Msg("scheduler started")
	for {
		next := l.nextTick(l.now())

		d := next.Sub(l.now())
		if d < 0 {
			d = 0
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			l.log.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		l.runTick(ctx, next)
		l.lastTick = next
	}
}

// nextTick picks the boundary to fire next. Normally that is the next whole
// second after now; around clock anomalies it guarantees a boundary is never
// fired twice and that the loop realigns rather than spinning or stalling.
func (l *Loop) nextTick(now time.Time) time.Time {
	next := now.Truncate(time.Second).Add(time.Second)
	if l.lastTick.IsZero() {
		return next
	}
	if !next.After(l.lastTick) {
		if l.lastTick.Sub(next) < resyncWindow {
			// Jitter or a small backward step landed us on (or before) a
			// second already fired; take the following one.
			return l.lastTick.Add(time.Second)
		}
		l.log.Warn().Time("last_tick", l.lastTick).Time("next", next).
			Msg("clock moved backward; resynchronizing to wall clock")
		return next
	}
	if missed := next.Sub(l.lastTick)/time.Second - 1; missed > 0 {
		l.log.Warn().Int64("missed_ticks", int64(missed)).
			Msg("fell behind second boundary; skipping to next")
	}
	return next
}

// runTick evaluates all jobs against the tick instant and fires the due
// ones. Matching is pure, so evaluation order across jobs is immaterial.
// Each dispatch runs in its own goroutine and reports its own outcome; the
// tick path never blocks on any of them.
func (l *Loop) runTick(ctx context.Context, tick time.Time) {
	at := tick.UTC()
	for _, j := range l.jobs {
		if !j.Schedule.Matches(at) {
			continue
		}
		go func(j job.Job) {
			l.report.Report(l.dispatch.Dispatch(ctx, j, at))
		}(j)
	}
}
