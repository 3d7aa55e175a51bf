package cycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"discoprowl/internal/logging"
)

// Scheduler repeats a job on a cron schedule. It only computes wake times;
// jobs never overlap because the next time is derived after a job returns.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	logger   *slog.Logger
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

// SchedulerOption customizes a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock overrides the time source and the wait primitive.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
		if after != nil {
			s.after = after
		}
	}
}

// NewScheduler parses spec with the standard cron parser, which accepts
// five-field expressions and descriptors such as "@every 12h".
func NewScheduler(spec string, logger *slog.Logger, opts ...SchedulerOption) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	s := &Scheduler{
		spec:     spec,
		schedule: schedule,
		logger:   logging.NewComponentLogger(logger, "scheduler"),
		now:      time.Now,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Spec returns the expression the scheduler was built from.
func (s *Scheduler) Spec() string { return s.spec }

// Next returns the first activation strictly after from.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// Run invokes job immediately and then at each scheduled time until ctx is
// done. Only ctx cancellation ends the wait.
func (s *Scheduler) Run(ctx context.Context, job func(context.Context)) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		job(ctx)

		next := s.Next(s.now())
		wait := max(next.Sub(s.now()), 0)
		s.logger.Info("waiting for next cycle",
			logging.String("next_run", next.Format(time.RFC3339)),
			logging.Duration("wait", wait),
		)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-s.after(wait):
		}
	}
}
