// Package app wires configuration, logging, dispatch and the tick loop
// into the runnable webcron daemon.
package app

import (
	"context"
	"errors"
	"os"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"

	"webcron/internal/config"
	"webcron/internal/dispatch"
	"webcron/internal/logging"
	"webcron/internal/scheduler"
)

type App struct {
	cfgPath string
	cfg     *config.Config
	log     zerolog.Logger
	loop    *scheduler.Loop
}

// New loads and validates configuration and builds the daemon. Any
// configuration problem — malformed job entry, bad cron expression,
// missing secret — is fatal here, before anything starts.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{Level: cfg.Logging.Level}
	if cfg.Logging.File.Enabled {
		logCfg.FilePath = cfg.Logging.File.Path
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	d := dispatch.New(cfg.Secret, dispatch.Options{
		Timeout:   timeout,
		MaxPerSec: cfg.Dispatch.MaxPerSec,
		UserAgent: cfg.Dispatch.UserAgent,
	}, log.With().Str("comp", "dispatch").Logger())

	// Successful pings on stdout, failures on stderr.
	reporter := dispatch.NewLineWriter(os.Stdout, os.Stderr)

	loop := scheduler.New(cfg.JobList, d, reporter,
		log.With().Str("comp", "scheduler").Logger())

	return &App{cfgPath: cfgPath, cfg: cfg, log: log, loop: loop}, nil
}

// Config returns the validated configuration, job list included.
func (a *App) Config() *config.Config { return a.cfg }

// Run drives the scheduler until ctx is canceled. Under systemd it raises
// READY=1 once the loop is about to start and STOPPING=1 on the way out;
// elsewhere SdNotify is a no-op.
func (a *App) Run(ctx context.Context) error {
	if a.cfgPath != "" {
		go func() {
			if err := config.WatchAdvisory(ctx, a.cfgPath, a.log); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Debug().Err(err).Msg("config watcher exited")
			}
		}()
	}

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		a.log.Debug().Err(err).Msg("sd_notify ready failed")
	}
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	err := a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
