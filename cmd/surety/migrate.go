package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(newLogger loggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			application, err := openApp(cmd, newLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if err := application.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}
