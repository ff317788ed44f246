package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bft-labs/avatarsync/internal/cliconfig"
)

const helpDescription = `
Keep a local copy of the avatar configuration in sync with the backend.

Highlights:
  - Polls GET /api/avatar-config every 30s and keeps the last good config on failure.
  - Seeds from a file, a prefetch or the last saved copy so consumers start with data.
  - Mirrors the current state over HTTP and reloads when the config file changes.
  - Configure via file (~/.avatarsync/config.toml), AVATARSYNC_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  avatarsync --base-url http://localhost:8080
  avatarsync run --listen :9090 --prefetch
  avatarsync view
  avatarsync fetch --markdown
  avatarsync init
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	// a local .env may carry AVATARSYNC_* overrides
	_ = godotenv.Load()

	log := cliconfig.Logger()

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("avatarsync")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cli := &cli{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "avatarsync",
		Short:         "Keep the avatar configuration in sync with the backend",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cli.cfgPath, "config", "", "path to config file (default: $HOME/.avatarsync/config.toml)")
	flags.StringVar(&cli.cfg.BaseURL, "base-url", cli.cfg.BaseURL, "backend base URL")
	flags.StringVar(&cli.cfg.Endpoint, "endpoint", cli.cfg.Endpoint, "avatar config endpoint path")
	flags.DurationVar(&cli.cfg.PollInterval, "poll", cli.cfg.PollInterval, "refresh interval")
	flags.DurationVar(&cli.cfg.HTTPTimeout, "timeout", cli.cfg.HTTPTimeout, "HTTP timeout per fetch")
	flags.StringVar(&cli.cfg.SeedFile, "seed-file", cli.cfg.SeedFile, "JSON avatar config to show before the first fetch")
	flags.StringVar(&cli.cfg.StateDir, "state-dir", cli.cfg.StateDir, "directory for the saved config and logs")
	flags.BoolVar(&cli.cfg.NoCache, "no-cache", cli.cfg.NoCache, "neither load nor save the last known config")
	flags.BoolVar(&cli.cfg.Prefetch, "prefetch", cli.cfg.Prefetch, "fetch once before starting and use the result as seed")
	flags.StringVar(&cli.cfg.Listen, "listen", cli.cfg.Listen, "address for the HTTP mirror (empty disables it)")
	flags.StringVar(&cli.cfg.LogLevel, "log-level", cli.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cli.cfg.SentryDSN, "sentry-dsn", cli.cfg.SentryDSN, "Sentry DSN for fetch failure reports")
	flags.StringVar(&cli.cfg.Environment, "environment", cli.cfg.Environment, "environment reported to Sentry")

	run := newRunCommand(cli)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.LocalFlags())

	root.AddCommand(run, newViewCommand(cli), newFetchCommand(cli), newInitCommand(cli))
	return root
}
