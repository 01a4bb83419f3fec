package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/config"
	"github.com/verte-zerg/komorebi/internal/protocol"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open the settings file in $EDITOR",
		Args:  cobra.NoArgs,
		// Editing must work even when the current file does not parse.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			log, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.log = log
			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			return runConfigCmd(a.settingsPath())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the settings file and the stored protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if err := out(cmd, "Settings OK (%s)\n", a.settingsPath()); err != nil {
				return err
			}
			kv, err := a.store()
			if err != nil {
				return err
			}
			key := a.ns.Config()
			raw, ok, err := kv.Get(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			if !ok {
				return out(cmd, "No stored protocol under %s, defaults are in use.\n", key)
			}
			cfg, err := protocol.Merge([]byte(raw))
			if err != nil {
				return fmt.Errorf("stored protocol under %s is malformed: %w", key, err)
			}
			if err := protocol.Validate(cfg); err != nil {
				return err
			}
			return out(cmd, "Protocol OK (%s)\n", key)
		},
	})
	return cmd
}

func (a *app) settingsPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultConfigPath()
}

func runConfigCmd(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := config.Defaults()
	return fmt.Sprintf(`# komorebi configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# backend = %q          # sqlite, badger or memory
# path = %q            # Database file (sqlite) or directory (badger)
# namespace = %q      # Key prefix for every stored record

[assistant]
# model = %q
# embed-model = %q
# weaviate-url = "http://localhost:8080"   # Enables document retrieval
# weaviate-class = %q
# match-threshold = %.2f     # Minimum certainty for retrieved documents
# match-count = %d            # Maximum retrieved documents

[stats]
# days = %d                  # Days shown by komorebi stats
# window = %d                 # Moving average window

[reminders]
# morning-hour = %d           # Morning reminder fires during this hour
# evening-start = %d         # Evening reminder window start hour
# evening-end = %d           # Evening reminder window end hour (exclusive)
`,
		d.Backend,
		config.DefaultDBPath(),
		d.Namespace,
		d.Model,
		d.EmbedModel,
		d.WeaviateClass,
		d.MatchThreshold,
		d.MatchCount,
		d.StatsDays,
		d.StatsWindow,
		d.MorningHour,
		d.EveningStart,
		d.EveningEnd,
	)
}
