package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"discoprowl/internal/config"
	"discoprowl/internal/cycle"
	"discoprowl/internal/logging"
	"discoprowl/internal/services"
)

// CycleRunner executes one polling cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) cycle.Report
}

// Daemon owns the instance lock and repeats cycles on the configured schedule.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	runner    CycleRunner
	scheduler *cycle.Scheduler
	newID     func() string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	mu         sync.RWMutex
	lastReport *cycle.Report
	nextRun    time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Schedule     string
	NextRun      time.Time
	LastReport   *cycle.Report
	LockFilePath string
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithIDGenerator overrides how cycle IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(d *Daemon) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// WithScheduler replaces the scheduler built from cfg.ScheduleSpec.
func WithScheduler(s *cycle.Scheduler) Option {
	return func(d *Daemon) {
		if s != nil {
			d.scheduler = s
		}
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, runner CycleRunner, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("daemon requires config and cycle runner")
	}

	logger = logging.NewComponentLogger(logger, "daemon")
	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		runner:   runner,
		newID:    uuid.NewString,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.scheduler == nil {
		scheduler, err := cycle.NewScheduler(cfg.ScheduleSpec(), logger)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "daemon", "schedule", "", err)
		}
		d.scheduler = scheduler
	}
	return d, nil
}

// Start acquires the instance lock.
func (d *Daemon) Start() error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return err
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another discoprowl poller is already running (lock %s)", d.lockPath)
	}

	d.running.Store(true)
	d.logger.Info("discoprowl daemon started",
		logging.String("lock", d.lockPath),
		logging.String("schedule", d.scheduler.Spec()),
	)
	return nil
}

// Stop releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("discoprowl daemon stopped")
}

// Run holds the lock and repeats cycles until ctx is cancelled. The first
// cycle starts immediately.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	return d.scheduler.Run(ctx, func(ctx context.Context) {
		d.RunOnce(ctx)
		d.mu.Lock()
		d.nextRun = d.scheduler.Next(time.Now())
		d.mu.Unlock()
	})
}

// RunOnce executes a single cycle under a fresh cycle ID.
func (d *Daemon) RunOnce(ctx context.Context) cycle.Report {
	ctx = services.WithCycleID(ctx, d.newID())
	report := d.runner.RunCycle(ctx)

	d.mu.Lock()
	d.lastReport = &report
	d.mu.Unlock()
	return report
}

// LockPath returns the advisory lock file.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	status := Status{
		Running:      d.running.Load(),
		Schedule:     d.scheduler.Spec(),
		NextRun:      d.nextRun,
		LockFilePath: d.lockPath,
	}
	if d.lastReport != nil {
		report := *d.lastReport
		status.LastReport = &report
	}
	return status
}
