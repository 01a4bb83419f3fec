// Package main provides the CLI entrypoint for komorebi.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/komorebi/internal/config"
	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/day"
	"github.com/verte-zerg/komorebi/internal/protocol"
	"github.com/verte-zerg/komorebi/internal/store"
	"github.com/verte-zerg/komorebi/internal/ui"
)

// app carries state shared by every command.
type app struct {
	log      *zap.Logger
	settings config.Settings
	ns       store.Namespace
	kv       store.KV

	verbose     bool
	configPath  string
	dateFlag    string
	nsFlag      string
	backendFlag string
	pathFlag    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{log: zap.NewNop()}
	rootCmd := newRootCmd(a)
	err := rootCmd.ExecuteContext(ctx)
	a.close()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorLine.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "komorebi",
		Short:         "Daily discipline tracker",
		Long:          "Komorebi OS: track daily habits as XP, review history and reflect with your animal spirit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
		RunE: a.runDayTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/komorebi/config.toml)")
	flags.StringVar(&a.dateFlag, "date", "", "day to act on (YYYY-MM-DD, default: today)")
	flags.StringVar(&a.nsFlag, "namespace", defaults.Namespace, "storage key namespace")
	flags.StringVar(&a.backendFlag, "backend", defaults.Backend, "storage backend: sqlite, badger or memory")
	flags.StringVar(&a.pathFlag, "db", "", "storage path (file for sqlite, directory for badger)")

	rootCmd.AddCommand(
		newTodayCmd(a),
		newToggleCmd(a),
		newNoteCmd(a),
		newScoreCmd(a),
		newInspireCmd(a),
		newStatsCmd(a),
		newCardCmd(a),
		newItemCmd(a),
		newWorkoutCmd(a),
		newLibraryCmd(a),
		newPersonaCmd(a),
		newLevelsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newKeyCmd(a),
		newAskCmd(a),
		newExploreCmd(a),
		newRemindCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	log, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log

	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s := config.Resolve(fileCfg)
	applyStringFlag(cmd, "namespace", &s.Namespace, a.nsFlag)
	applyStringFlag(cmd, "backend", &s.Backend, a.backendFlag)
	applyStringFlag(cmd, "db", &s.Path, a.pathFlag)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	a.settings = s
	a.ns = store.NS(s.Namespace)

	if a.dateFlag != "" && !daily.ValidDate(a.dateFlag) {
		return fmt.Errorf("--date must be YYYY-MM-DD, got %q", a.dateFlag)
	}
	a.log.Debug("settings resolved", zap.String("config", path), zap.String("backend", s.Backend), zap.String("namespace", s.Namespace))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// store opens the configured backend once per process.
func (a *app) store() (store.KV, error) {
	if a.kv != nil {
		return a.kv, nil
	}
	backend, err := store.ParseBackend(a.settings.Backend)
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(backend, a.settings.StoragePath(), a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", backend, err)
	}
	a.kv = kv
	return kv, nil
}

func (a *app) close() {
	if a.kv == nil {
		return
	}
	if err := a.kv.Close(); err != nil {
		logErrf("failed to close store: %v\n", err)
	}
	a.kv = nil
}

func (a *app) configRepo() (*protocol.Repo, error) {
	kv, err := a.store()
	if err != nil {
		return nil, err
	}
	return protocol.NewRepo(kv, a.ns, a.log), nil
}

func (a *app) dayRepo() (*day.Repo, error) {
	kv, err := a.store()
	if err != nil {
		return nil, err
	}
	return day.NewRepo(kv, a.ns, a.log), nil
}

// date returns the --date value or today's local date.
func (a *app) date() string {
	if a.dateFlag != "" {
		return a.dateFlag
	}
	return daily.Today(time.Now())
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = strings.TrimSpace(value)
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func out(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
