package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/config"
	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/prefs"
	"github.com/roach88/researchhub/internal/store"
	"github.com/roach88/researchhub/internal/tracker"
)

// app is everything one command invocation needs: the resolved config,
// the open database, and the services built on it.
type app struct {
	cfg     config.Config
	db      *store.Store
	hub     *tracker.Store
	prefs   *prefs.Prefs
	metrics *metrics.Recorder
	out     *OutputFormatter
	now     func() time.Time

	metricsTextfile string
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// resolveConfig loads the config file and environment, then applies flags.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg, err := config.Load(opts.ConfigPath, getenv)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Driver != "" {
		cfg.Driver = opts.Driver
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp resolves config and opens the database. Failures are reported
// through the formatter and come back as an ExitError.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	out := newFormatter(opts, cmd)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, out.FailWith(ExitCommandError, ErrCodeConfig, err)
	}

	slog.Debug("opening database", "path", cfg.Database, "driver", cfg.Driver)
	db, err := store.Open(cfg.Database, cfg.Driver)
	if err != nil {
		return nil, out.FailWith(ExitCommandError, ErrCodeOpenFailed, fmt.Errorf("open database: %w", err))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	var gen ids.Generator = ids.UUIDv7Generator{}
	if opts.IDs != nil {
		gen = opts.IDs
	}

	rec := metrics.New()
	a := &app{
		cfg:     cfg,
		db:      db,
		metrics: rec,
		out:     out,
		now:     now,
		hub: tracker.New(db, gen,
			tracker.WithClock(now),
			tracker.WithLogger(slog.Default()),
			tracker.WithMetrics(rec),
		),
		prefs:           prefs.New(db, store.NewMemory(), now),
		metricsTextfile: opts.MetricsTextfile,
	}
	return a, nil
}

// close writes the metrics textfile, if requested, and closes the database.
func (a *app) close() {
	if a.metricsTextfile != "" {
		if err := a.metrics.WriteTextfile(a.metricsTextfile); err != nil {
			slog.Error("error writing metrics textfile", "path", a.metricsTextfile, "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// withApp runs fn against an open app and closes it afterwards.
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
