package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"discoprowl/internal/artwork"
	"discoprowl/internal/config"
	"discoprowl/internal/cycle"
	"discoprowl/internal/daemon"
	"discoprowl/internal/indexer"
	"discoprowl/internal/logging"
	"discoprowl/internal/notifications"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Runtime holds the wired collaborators for one process.
type Runtime struct {
	Logger     *slog.Logger
	Indexer    indexer.Client
	Dispatcher *notifications.Dispatcher
	Runner     *cycle.Runner
	Daemon     *daemon.Daemon
}

// NewLogger builds the process logger from cfg, honoring a level override.
func NewLogger(cfg *config.Config, opts Options) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout"},
		FilePath:    cfg.Logging.File,
		Development: opts.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// NewRuntime wires the indexer, artwork, notification, and cycle layers.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := indexer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create indexer client: %w", err)
	}
	resolver := artwork.NewResolverFromConfig(cfg, logger)
	formatter := notifications.NewFormatter(resolver, cfg.Artwork.Thumbnail)
	dispatcher := notifications.NewFromConfig(cfg, logger)
	runner := cycle.NewRunner(cfg, client, formatter, dispatcher, logger)

	d, err := daemon.New(cfg, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("create daemon: %w", err)
	}
	return &Runtime{
		Logger:     logger,
		Indexer:    client,
		Dispatcher: dispatcher,
		Runner:     runner,
		Daemon:     d,
	}, nil
}

// Run starts the discoprowl polling loop and blocks until SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := NewLogger(cfg, opts)
	if err != nil {
		return err
	}
	rt, err := NewRuntime(cfg, logger)
	if err != nil {
		return err
	}
	logConfigSnapshot(logger, cfg, rt)

	if err := rt.Daemon.Run(signalCtx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.state_dir permissions or stop the other poller"),
		)
		return err
	}
	logger.Info("discoprowl daemon shutting down")
	return nil
}

// RunOnce executes a single cycle while holding the instance lock.
func RunOnce(cmdCtx context.Context, cfg *config.Config, opts Options) (cycle.Report, error) {
	if cfg == nil {
		return cycle.Report{}, fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := NewLogger(cfg, opts)
	if err != nil {
		return cycle.Report{}, err
	}
	rt, err := NewRuntime(cfg, logger)
	if err != nil {
		return cycle.Report{}, err
	}
	if err := rt.Daemon.Start(); err != nil {
		return cycle.Report{}, err
	}
	defer rt.Daemon.Stop()

	return rt.Daemon.RunOnce(signalCtx), nil
}

func logConfigSnapshot(logger *slog.Logger, cfg *config.Config, rt *Runtime) {
	if logger == nil || cfg == nil || rt == nil {
		return
	}
	logger.Info("configuration snapshot",
		logging.String(logging.FieldEventType, "config_snapshot"),
		logging.String("indexer_kind", rt.Indexer.Kind()),
		logging.String("indexer_url", cfg.Indexer.URL),
		logging.Int("terms", len(cfg.Search.Terms)),
		logging.Int("max_results", cfg.Filter.MaxResults),
		logging.Int("max_age_days", cfg.Filter.MaxAgeDays),
		logging.Int("disallowed_keywords", len(cfg.Filter.DisallowedKeywords)),
		logging.String("schedule", cfg.ScheduleSpec()),
		logging.Bool("artwork_key_present", strings.TrimSpace(cfg.Artwork.APIKey) != ""),
		logging.Bool("thumbnail", cfg.Artwork.Thumbnail),
		logging.String("transports", strings.Join(rt.Dispatcher.Transports(), ",")),
	)
}
