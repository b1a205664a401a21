package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	backupdomain "surety/internal/domain/backup"
)

func newBackupCommand(newLogger loggerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore a JSON backup of the database",
	}
	cmd.AddCommand(newBackupExportCommand(newLogger), newBackupRestoreCommand(newLogger))
	return cmd
}

func newBackupExportCommand(newLogger loggerFactory) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of every table as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := newLogger(cmd.ErrOrStderr())

			application, err := openApp(cmd, log)
			if err != nil {
				return err
			}
			defer application.Close()

			snapshot, err := application.Backup().Build(cmd.Context())
			if err != nil {
				return fmt.Errorf("build backup: %w", err)
			}
			payload, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("encode backup: %w", err)
			}
			payload = append(payload, '\n')

			if out == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(out, payload, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			log.Info("backup: exported", "path", out, "bytes", len(payload))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the backup to this file instead of stdout")
	return cmd
}

func newBackupRestoreCommand(newLogger loggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace all data with the contents of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := newLogger(cmd.ErrOrStderr())

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			application, err := openApp(cmd, log)
			if err != nil {
				return err
			}
			defer application.Close()

			counts, err := application.Backup().RestoreJSON(cmd.Context(), raw)
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			w := cmd.OutOrStdout()
			for _, table := range backupdomain.InsertOrder {
				if n, ok := counts[table.Key]; ok {
					fmt.Fprintf(w, "%s: %d\n", table.Key, n)
				}
			}
			return nil
		},
	}
}
