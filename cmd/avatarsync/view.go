package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/avatarsync/internal/app"
	"github.com/bft-labs/avatarsync/internal/ui"
	"github.com/bft-labs/avatarsync/pkg/log"
)

func newViewCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the live avatar config in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}

			zl, f, err := openLogFile(cfg)
			if err != nil {
				return err
			}
			defer f.Close()
			logger := log.NewZerolog(zl)

			rep, err := newReporter(cfg, logger.Named("report"))
			if err != nil {
				return err
			}
			defer rep.Close()

			bridge := ui.NewBridge()
			runner, err := newRunner(cfg, logger, rep, app.WithEventHandler(bridge))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
			defer stop()

			if err := runner.Start(ctx); err != nil {
				return err
			}
			defer runner.Stop()

			if w := c.watchConfig(runner, logger.Named("configwatch")); w != nil {
				if err := w.Start(ctx); err == nil {
					defer w.Stop()
				}
			}

			return ui.Run(ctx, runner, bridge, cfg.BaseURL)
		},
	}
}
