package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/day"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/stats"
	"github.com/verte-zerg/komorebi/internal/statsui"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		days   int
		until  string
		window int
		missed int
		tui    bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show XP history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := model.StatsConfig{
				Until:  until,
				Days:   a.settings.StatsDays,
				Window: a.settings.StatsWindow,
			}
			applyIntFlag(cmd, "days", &sc.Days, days)
			applyIntFlag(cmd, "window", &sc.Window, window)
			if sc.Days <= 0 {
				return fmt.Errorf("--days must be greater than 0")
			}
			if sc.Window <= 0 {
				return fmt.Errorf("--window must be greater than 0")
			}
			if sc.Until != "" && !daily.ValidDate(sc.Until) {
				return fmt.Errorf("--until must be YYYY-MM-DD, got %q", sc.Until)
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			kv, err := a.store()
			if err != nil {
				return err
			}
			history, err := day.BuildHistory(cmd.Context(), kv, a.ns, a.log)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			today := a.date()

			if tui {
				m := statsui.NewModel(history, cfg, sc, today)
				program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("failed to run stats TUI: %w", err)
				}
				return nil
			}

			report, err := stats.BuildReport(history, cfg, sc, today)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := stats.RenderSummary(w, report); err != nil {
				return err
			}
			if report.Summary.Saved == 0 {
				return nil
			}
			if err := out(cmd, "\n"); err != nil {
				return err
			}
			if err := stats.RenderBars(w, report, 0, false); err != nil {
				return err
			}
			if err := stats.RenderTrend(w, report, sc.Window); err != nil {
				return err
			}
			if err := out(cmd, "\n"); err != nil {
				return err
			}
			if err := stats.RenderTable(w, report); err != nil {
				return err
			}
			if missed <= 0 {
				return nil
			}
			if err := out(cmd, "\n"); err != nil {
				return err
			}
			return stats.RenderMissed(w, stats.MostMissed(history, cfg, report, missed))
		},
	}
	cmd.Flags().IntVar(&days, "days", stats.DefaultDays, "number of days to show")
	cmd.Flags().StringVar(&until, "until", "", "last day to show (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&window, "window", 7, "moving average window")
	cmd.Flags().IntVar(&missed, "missed", 5, "list the N most missed items (0 disables)")
	cmd.Flags().BoolVar(&tui, "tui", false, "open the interactive stats view")
	return cmd
}
