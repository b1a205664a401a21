package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"surety/internal/transport/mcpserver"
)

func newMCPCommand(newLogger loggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the read-only MCP tools over stdio",
		Long: `Serve the read-only MCP tools over stdin/stdout for local assistants.

Tools only answer when MCP access is enabled, either with the mcp.enabled
setting or with ` + mcpserver.EnvEnabled + `=true. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := newLogger(cmd.ErrOrStderr()).With("transport", "stdio")

			application, err := openApp(cmd, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					log.Error("app: close failed", "err", err)
				}
			}()

			log.Info("mcp: serving stdio")
			err = mcpserver.ServeStdio(cmd.Context(), application.MCPServer())
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("mcp: stopped")
			return nil
		},
	}
}
