package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"surety/internal/app"
	"surety/internal/config"
	"surety/pkg/logger"
)

func main() {
	os.Exit(submain(context.Background()))
}

func submain(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(logger.NewFromEnv)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if err != context.Canceled {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		return 1
	}
	return 0
}

// loggerFactory builds the process logger once a command knows where log
// output may go. The stdio MCP transport owns stdout, so it logs to stderr.
type loggerFactory func(io.Writer) logger.Logger

func newRootCommand(newLogger loggerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "surety",
		Short:         "surety keeps household insurance policy records",
		SilenceErrors: true,
		Example: `
  # Serve the REST API, the MCP endpoint and metrics on :7015
  surety

  # Use the example database
  SURETY_DB=example surety serve

  # Expose the read-only MCP tools over stdio
  surety mcp

  # Write a backup file and restore it later
  surety backup export --out surety-backup.json
  surety backup restore surety-backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runServe(cmd, newLogger(cmd.OutOrStdout()))
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("db", "", "database profile: production, example or test (env SURETY_DB)")
	flags.String("db-path", "", "database file, overrides the profile (env DB_PATH)")
	cmd.Flags().String("port", "", "HTTP listen port (env HTTP_PORT)")

	cmd.AddCommand(
		newServeCommand(newLogger),
		newMCPCommand(newLogger),
		newBackupCommand(newLogger),
		newMigrateCommand(newLogger),
	)
	return cmd
}

// flagKeys maps command line flags onto the configuration keys they set.
var flagKeys = map[string]string{
	"db":      "SURETY_DB",
	"db-path": "DB_PATH",
	"port":    "HTTP_PORT",
}

// openApp loads configuration, with any flags set on cmd taking precedence,
// and builds the application. Callers own the returned App and must Close it.
func openApp(cmd *cobra.Command, log logger.Logger) (*app.App, error) {
	v, err := config.New(log)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if key, ok := flagKeys[flag.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, flag)
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags: %w", bindErr)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	application, err := app.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return application, nil
}
