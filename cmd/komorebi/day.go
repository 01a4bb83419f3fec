package main

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/day"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/scoring"
	"github.com/verte-zerg/komorebi/internal/tui"
	"github.com/verte-zerg/komorebi/internal/ui"
)

func (a *app) runDayTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, rec, _, err := a.loadDay(cmd)
	if err != nil {
		return err
	}
	kv, err := a.store()
	if err != nil {
		return err
	}
	date := a.date()
	m := tui.NewModel(ctx, tui.Options{
		Config:  cfg,
		Day:     rec,
		Saver:   day.NewRepo(kv, a.ns, zap.NewNop()),
		Content: daily.Select(date, cfg.Library),
		Workout: daily.WorkoutFor(date, cfg.Workouts),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m.Dirty() {
		logErrf("Unsaved changes for %s were discarded.\n", date)
	}
	return nil
}

func (a *app) loadDay(cmd *cobra.Command) (model.AppConfig, model.DayData, bool, error) {
	repo, err := a.configRepo()
	if err != nil {
		return model.AppConfig{}, model.DayData{}, false, err
	}
	cfg, err := repo.Load(cmd.Context())
	if err != nil {
		return model.AppConfig{}, model.DayData{}, false, err
	}
	days, err := a.dayRepo()
	if err != nil {
		return model.AppConfig{}, model.DayData{}, false, err
	}
	rec, saved, err := days.Load(cmd.Context(), a.date())
	if err != nil {
		return model.AppConfig{}, model.DayData{}, false, err
	}
	return cfg, rec, saved, nil
}

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "today",
		Aliases: []string{"show"},
		Short:   "Print the day's checklist and score",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, rec, saved, err := a.loadDay(cmd)
			if err != nil {
				return err
			}
			return printDay(cmd, cfg, rec, saved)
		},
	}
}

func printDay(cmd *cobra.Command, cfg model.AppConfig, rec model.DayData, saved bool) error {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSun, "Komorebi OS") + "  " + ui.Muted.Render(rec.Date) + "\n\n")
	for si, section := range cfg.Protocols {
		b.WriteString(ui.H2.Render(section.Title) + "\n")
		for ci, card := range section.Cards {
			xp := scoring.CardXP(card, rec.CheckedItems)
			fmt.Fprintf(&b, "  %d.%d %s %s\n", si+1, ci+1, card.Title, ui.Muted.Render(fmt.Sprintf("%d/%d XP", xp, card.MaxXP)))
			for ii, item := range card.Items {
				box := "[ ]"
				if rec.IsChecked(item.ID) {
					box = ui.Good.Render("[" + ui.IconCheck + "]")
				}
				fmt.Fprintf(&b, "    %s %d.%d.%d %s %s\n", box, si+1, ci+1, ii+1, item.Label,
					ui.Muted.Render(fmt.Sprintf("+%d  %s", item.XP, item.ID)))
			}
		}
	}
	if strings.TrimSpace(rec.Note) != "" {
		b.WriteString("\n" + ui.LabelValue("Note", rec.Note) + "\n")
	}
	b.WriteString("\n" + scoreLine(cfg, rec))
	if !saved {
		b.WriteString("  " + ui.Muted.Render("(not saved)"))
	}
	b.WriteString("\n")
	return out(cmd, "%s", b.String())
}

func scoreLine(cfg model.AppConfig, rec model.DayData) string {
	xp := scoring.TotalXP(cfg, rec)
	level := scoring.ClassifyLevel(xp, cfg.Levels)
	pct := scoring.ProgressPercent(xp, cfg.MaxXP)
	line := fmt.Sprintf("%s %s %d%%  %s", ui.LabelValue("XP", fmt.Sprintf("%d/%d", xp, cfg.MaxXP)),
		ui.ProgressBar(pct, 20), pct, ui.LevelText(level))
	if next, toGo, ok := scoring.NextLevel(xp, cfg.Levels); ok {
		line += ui.Muted.Render(fmt.Sprintf("  %s in %d", next, toGo))
	}
	return line
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ITEM...",
		Short: "Toggle items by id or SECTION.CARD.ITEM and save the day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rec, _, err := a.loadDay(cmd)
			if err != nil {
				return err
			}
			for _, arg := range args {
				item, err := resolveItem(cfg, arg)
				if err != nil {
					return err
				}
				rec = rec.Toggle(item.ID)
			}
			if err := a.saveDay(cmd, rec); err != nil {
				return err
			}
			return out(cmd, "%s\n", scoreLine(cfg, rec))
		},
	}
}

func newNoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "note TEXT...",
		Short: "Set the day's note and save the day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rec, _, err := a.loadDay(cmd)
			if err != nil {
				return err
			}
			rec = rec.SetNote(strings.Join(args, " "))
			if err := a.saveDay(cmd, rec); err != nil {
				return err
			}
			return out(cmd, "Note saved for %s.\n", rec.Date)
		},
	}
}

func (a *app) saveDay(cmd *cobra.Command, rec model.DayData) error {
	days, err := a.dayRepo()
	if err != nil {
		return err
	}
	return days.Save(cmd.Context(), rec)
}

type scoreJSON struct {
	Date     string      `json:"date"`
	Saved    bool        `json:"saved"`
	XP       int         `json:"xp"`
	MaxXP    int         `json:"maxXP"`
	Progress int         `json:"progress"`
	Level    model.Level `json:"level"`
	Next     model.Level `json:"next,omitempty"`
	ToGo     int         `json:"toGo,omitempty"`
	Cards    []cardJSON  `json:"cards"`
}

type cardJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	XP      int    `json:"xp"`
	MaxXP   int    `json:"maxXP"`
	Checked int    `json:"checked"`
	Items   int    `json:"items"`
}

func newScoreCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the day's XP breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, rec, saved, err := a.loadDay(cmd)
			if err != nil {
				return err
			}
			xp := scoring.TotalXP(cfg, rec)
			res := scoreJSON{
				Date:     rec.Date,
				Saved:    saved,
				XP:       xp,
				MaxXP:    cfg.MaxXP,
				Progress: scoring.ProgressPercent(xp, cfg.MaxXP),
				Level:    scoring.ClassifyLevel(xp, cfg.Levels),
				Cards:    []cardJSON{},
			}
			if next, toGo, ok := scoring.NextLevel(xp, cfg.Levels); ok {
				res.Next, res.ToGo = next, toGo
			}
			for _, c := range scoring.Breakdown(cfg, rec) {
				res.Cards = append(res.Cards, cardJSON{ID: c.CardID, Title: c.Title, XP: c.XP, MaxXP: c.MaxXP, Checked: c.Checked, Items: c.Items})
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			for _, c := range res.Cards {
				if err := out(cmd, "%-28s %5d/%-5d %d/%d\n", c.Title, c.XP, c.MaxXP, c.Checked, c.Items); err != nil {
					return err
				}
			}
			return out(cmd, "%s\n", scoreLine(cfg, rec))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newInspireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspire",
		Short: "Print the day's mental model, technique, quote, investor and workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.configRepo()
			if err != nil {
				return err
			}
			cfg, err := repo.Load(cmd.Context())
			if err != nil {
				return err
			}
			date := a.date()
			c := daily.Select(date, cfg.Library)
			w := daily.WorkoutFor(date, cfg.Workouts)

			lines := []string{ui.Heading(ui.IconSpark, "Daily Wisdom") + "  " + ui.Muted.Render(date)}
			lines = append(lines, describeItem("Mental Model", c.Model, func(it model.LibraryItem) string { return it.Desc }))
			lines = append(lines, describeItem("Productivity", c.Productivity, func(it model.LibraryItem) string { return it.Desc }))
			lines = append(lines, describeItem("Investor", c.Investor, investorDetail))
			quote := ui.Muted.Render("(no quotes)")
			if c.Quote != nil {
				quote = *c.Quote
			}
			lines = append(lines, ui.LabelValue("Quote", quote), ui.LabelValue("Workout", w.Title+": "+w.Desc))
			return out(cmd, "%s\n", strings.Join(lines, "\n"))
		},
	}
}

func describeItem(label string, it *model.LibraryItem, detail func(model.LibraryItem) string) string {
	if it == nil {
		return ui.LabelValue(label, ui.Muted.Render("(empty)"))
	}
	text := it.Name
	if d := detail(*it); d != "" {
		text += ui.Muted.Render("  " + d)
	}
	return ui.LabelValue(label, text)
}

func investorDetail(it model.LibraryItem) string {
	switch {
	case it.Years == "":
		return it.Resource
	case it.Resource == "":
		return it.Years
	default:
		return it.Resource + " (" + it.Years + ")"
	}
}
