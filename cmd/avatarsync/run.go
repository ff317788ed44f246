package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/avatarsync/internal/cliconfig"
	"github.com/bft-labs/avatarsync/internal/mirror"
	"github.com/bft-labs/avatarsync/pkg/log"
)

func newRunCommand(c *cli) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the synchronizer headless until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			cfg.Once = once

			zl := cliconfig.NewLogger(os.Stderr, cfg.LogLevel)
			logger := log.NewZerolog(zl)

			rep, err := newReporter(cfg, logger.Named("report"))
			if err != nil {
				return err
			}
			defer rep.Close()

			runner, err := newRunner(cfg, logger, rep)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Once {
				ac, err := runner.FetchOnce(ctx)
				if err != nil {
					return err
				}
				zl.Info().Interface("config", ac).Msg("fetched avatar config")
				return nil
			}

			if err := runner.Start(ctx); err != nil {
				return err
			}

			if w := c.watchConfig(runner, logger.Named("configwatch")); w != nil {
				if err := w.Start(ctx); err != nil {
					logger.Warn("config watcher disabled", log.Err(err))
				} else {
					defer w.Stop()
				}
			}

			mirrorErr := make(chan error, 1)
			if cfg.Listen != "" {
				srv := mirror.New(runner, logger.Named("mirror"))
				go func() { mirrorErr <- srv.Run(ctx, cfg.Listen) }()
			}

			select {
			case <-ctx.Done():
				logger.Info("received signal, stopping")
			case err = <-mirrorErr:
				if err != nil {
					logger.Error("mirror failed", log.Err(err))
				}
			}
			stop()

			if stopErr := runner.Stop(); stopErr != nil {
				return errors.Join(err, stopErr)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "fetch once, print the config and exit")
	return cmd
}
