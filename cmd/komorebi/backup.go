package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/backup"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored key of the namespace as a backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") && output != "" {
				format = formatFromPath(output)
			}
			f, err := backup.ParseFormat(format)
			if err != nil {
				return err
			}
			kv, err := a.store()
			if err != nil {
				return err
			}
			data, err := backup.Export(cmd.Context(), kv, a.ns, f)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			// The backup can hold the API key.
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			logErrf("Backup written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "backup format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore keys from a backup file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !cmd.Flags().Changed("format") {
				format = formatFromPath(path)
			}
			f, err := backup.ParseFormat(format)
			if err != nil {
				return err
			}
			var data []byte
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			kv, err := a.store()
			if err != nil {
				return err
			}
			n, err := backup.Import(cmd.Context(), kv, data, f)
			if err != nil {
				return err
			}
			return out(cmd, "Restored %d keys.\n", n)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "backup format: json or yaml (default: from extension)")
	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return string(backup.FormatYAML)
	default:
		return string(backup.FormatJSON)
	}
}
