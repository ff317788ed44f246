package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/avatarsync/internal/app"
	"github.com/bft-labs/avatarsync/internal/cliconfig"
	"github.com/bft-labs/avatarsync/internal/ui"
	"github.com/bft-labs/avatarsync/pkg/log"
)

func newFetchCommand(c *cli) *cobra.Command {
	var markdown bool
	var style string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the avatar config once and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			logger := log.NewZerolog(cliconfig.NewLogger(os.Stderr, cfg.LogLevel))

			runner, err := app.New(runnerConfig(cfg), app.WithLogger(logger))
			if err != nil {
				return err
			}
			ac, err := runner.FetchOnce(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if markdown {
				rendered, err := ui.RenderMarkdown(ui.Markdown(ac), style)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, rendered)
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ac)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as a markdown table")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style for --markdown (dark, light, notty, ...)")
	return cmd
}
