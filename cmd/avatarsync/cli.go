package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/avatarsync/internal/app"
	"github.com/bft-labs/avatarsync/internal/cliconfig"
	"github.com/bft-labs/avatarsync/internal/configwatch"
	"github.com/bft-labs/avatarsync/internal/report"
	"github.com/bft-labs/avatarsync/pkg/log"
)

// cli holds flag-bound configuration shared by all commands.
type cli struct {
	cfgPath string
	cfg     cliconfig.Config

	// set by load
	flagCfg cliconfig.Config
	changed map[string]bool
}

// configFile returns the explicit --config path or the default.
func (c *cli) configFile() string {
	if c.cfgPath != "" {
		return c.cfgPath
	}
	return cliconfig.DefaultConfigPath()
}

// load applies file and env on top of defaults and flags, then validates.
func (c *cli) load(cmd *cobra.Command) (cliconfig.Config, error) {
	c.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { c.changed[f.Name] = true })
	c.flagCfg = c.cfg

	cfg := c.cfg
	if err := cliconfig.LoadAndApply(&cfg, c.configFile(), c.changed); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// reload rebuilds the configuration from the current file and env.
func (c *cli) reload() (cliconfig.Config, error) {
	cfg := c.flagCfg
	if err := cliconfig.LoadAndApply(&cfg, c.configFile(), c.changed); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runnerConfig(cfg cliconfig.Config) app.Config {
	return app.Config{
		BaseURL:      cfg.BaseURL,
		Endpoint:     cfg.Endpoint,
		PollInterval: cfg.PollInterval,
		HTTPTimeout:  cfg.HTTPTimeout,
		SeedFile:     cfg.SeedFile,
		StateDir:     cfg.StateDir,
		NoCache:      cfg.NoCache,
		Prefetch:     cfg.Prefetch,
	}
}

// newReporter returns nil when no DSN is configured.
func newReporter(cfg cliconfig.Config, logger log.Logger) (*report.Reporter, error) {
	return report.New(report.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     "avatarsync@" + getVersion(),
		BaseURL:     cfg.BaseURL,
		Logger:      logger,
	})
}

// newRunner wires the runner with the reporter and any extra handlers.
func newRunner(cfg cliconfig.Config, logger log.Logger, rep *report.Reporter, opts ...app.Option) (*app.Runner, error) {
	if rep != nil {
		opts = append(opts, app.WithEventHandler(rep))
	}
	opts = append([]app.Option{app.WithLogger(logger)}, opts...)
	return app.New(runnerConfig(cfg), opts...)
}

// watchConfig reloads runner whenever the config file changes. Returns nil
// when the file's directory does not exist.
func (c *cli) watchConfig(runner *app.Runner, logger log.Logger) *configwatch.Watcher {
	path := c.configFile()
	if path == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil
	}

	w := configwatch.New(path, func() {
		next, err := c.reload()
		if err != nil {
			logger.Warn("ignoring invalid config change", log.Err(err))
			return
		}
		if err := runner.Reload(runnerConfig(next)); err != nil {
			logger.Warn("reload failed", log.Err(err))
		}
	}, configwatch.WithLogger(logger))
	return w
}

// openLogFile returns a logger writing to <state-dir>/avatarsync.log.
func openLogFile(cfg cliconfig.Config) (zerolog.Logger, *os.File, error) {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return zerolog.Logger{}, nil, err
	}
	f, err := os.OpenFile(filepath.Join(cfg.StateDir, "avatarsync.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	return cliconfig.NewLogger(f, cfg.LogLevel), f, nil
}
