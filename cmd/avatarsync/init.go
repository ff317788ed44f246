package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/avatarsync/internal/cliconfig"
)

func newInitCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			if path == "" {
				return fmt.Errorf("no config path: pass --config")
			}
			created, err := cliconfig.InitFile(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}
