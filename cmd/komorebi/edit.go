package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/editor"
	"github.com/verte-zerg/komorebi/internal/model"
)

// update applies fn to the stored configuration and persists the result.
func (a *app) update(cmd *cobra.Command, fn func(model.AppConfig) (model.AppConfig, error)) (model.AppConfig, error) {
	repo, err := a.configRepo()
	if err != nil {
		return model.AppConfig{}, err
	}
	return repo.Update(cmd.Context(), fn)
}

func (a *app) loadConfig(cmd *cobra.Command) (model.AppConfig, error) {
	repo, err := a.configRepo()
	if err != nil {
		return model.AppConfig{}, err
	}
	return repo.Load(cmd.Context())
}

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Edit protocol cards",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rename SECTION.CARD TITLE",
		Short: "Rename a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 2)
			if err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.RenameCard(cfg, r.section, r.card, args[1])
			}); err != nil {
				return err
			}
			return out(cmd, "Card %s renamed to %q.\n", r, args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "max-xp SECTION.CARD VALUE",
		Short: "Set a card's XP budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 2)
			if err != nil {
				return err
			}
			cfg, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetCardMaxXP(cfg, r.section, r.card, args[1])
			})
			if err != nil {
				return err
			}
			return out(cmd, "Card %s max XP is %d.\n", r, cfg.Protocols[r.section].Cards[r.card].MaxXP)
		},
	})
	return cmd
}

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Edit checklist items",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "label SECTION.CARD.ITEM LABEL",
		Short: "Set an item's label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 3)
			if err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetItemLabel(cfg, r.section, r.card, r.item, args[1])
			}); err != nil {
				return err
			}
			return out(cmd, "Item %s relabeled.\n", r)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "xp SECTION.CARD.ITEM VALUE",
		Short: "Set an item's XP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 3)
			if err != nil {
				return err
			}
			cfg, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetItemXP(cfg, r.section, r.card, r.item, args[1])
			})
			if err != nil {
				return err
			}
			return out(cmd, "Item %s is worth %d XP.\n", r, cfg.Protocols[r.section].Cards[r.card].Items[r.item].XP)
		},
	})
	cmd.AddCommand(newItemAddCmd(a), newItemRemoveCmd(a))
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var label, xp string
	cmd := &cobra.Command{
		Use:   "add SECTION.CARD",
		Short: "Append a new item to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 2)
			if err != nil {
				return err
			}
			var added model.ProtocolItem
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				next, _, err := editor.AddItem(cfg, r.section, r.card)
				if err != nil {
					return cfg, err
				}
				idx := len(next.Protocols[r.section].Cards[r.card].Items) - 1
				if label != "" {
					if next, err = editor.SetItemLabel(next, r.section, r.card, idx, label); err != nil {
						return cfg, err
					}
				}
				if xp != "" {
					if next, err = editor.SetItemXP(next, r.section, r.card, idx, xp); err != nil {
						return cfg, err
					}
				}
				added = next.Protocols[r.section].Cards[r.card].Items[idx]
				return next, nil
			}); err != nil {
				return err
			}
			return out(cmd, "Added %q (+%d XP) as %s.\n", added.Label, added.XP, added.ID)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "item label (default: "+strconv.Quote(editor.DefaultItemLabel)+")")
	cmd.Flags().StringVar(&xp, "xp", "", fmt.Sprintf("item XP (default: %d)", editor.DefaultItemXP))
	return cmd
}

func newItemRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm SECTION.CARD.ITEM",
		Aliases: []string{"remove"},
		Short:   "Remove an item from a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRef(args[0], 3)
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			item, err := resolveItem(cfg, args[0])
			if err != nil {
				return err
			}
			if err := confirm(cmd, fmt.Sprintf("Remove %q from %s?", item.Label, cfg.Protocols[r.section].Cards[r.card].Title), yes); err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.RemoveItem(cfg, r.section, r.card, r.item)
			}); err != nil {
				return err
			}
			return out(cmd, "Removed %q.\n", item.Label)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newWorkoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Show or edit the weekly workout plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			for i, w := range cfg.Workouts {
				if err := out(cmd, "%d %s  %s: %s\n", i, weekdays[i], w.Title, w.Desc); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set WEEKDAY t|d VALUE",
		Short: "Set a weekday's workout title (t) or description (d)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayIdx, err := parseWeekday(args[0])
			if err != nil {
				return err
			}
			field, err := parseWorkoutField(args[1])
			if err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetWorkout(cfg, dayIdx, field, args[2])
			}); err != nil {
				return err
			}
			return out(cmd, "Workout for %s updated.\n", weekdays[dayIdx])
		},
	})
	return cmd
}

func parseWorkoutField(s string) (model.WorkoutField, error) {
	switch s {
	case "t", "title":
		return model.WorkoutTitle, nil
	case "d", "desc", "description":
		return model.WorkoutDesc, nil
	default:
		return "", fmt.Errorf("%w: workout field %q (use t or d)", editor.ErrUnknownField, s)
	}
}

func newPersonaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Show or edit the assistant persona",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			p := cfg.Persona
			return out(cmd, "anima: %s\narchetype: %s\nsymbol: %s\n", p.Anima, p.Archetype, p.Symbol)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set anima|archetype|symbol VALUE",
		Short: "Set one persona field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetPersonaField(cfg, model.PersonaField(args[0]), args[1])
			}); err != nil {
				return err
			}
			return out(cmd, "Persona %s set to %q.\n", args[0], args[1])
		},
	})
	return cmd
}

func newLevelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show or edit level thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			l := cfg.Levels
			return out(cmd, "%s >= %d\n%s >= %d\n%s >= %d\nmax XP: %d\n",
				model.LevelElite, l.Elite, model.LevelStrong, l.Strong, model.LevelSurvival, l.Survival, cfg.MaxXP)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set ELITE STRONG SURVIVAL",
		Short: "Set the level thresholds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]int, len(args))
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid threshold %q", arg)
				}
				vals[i] = n
			}
			levels := model.LevelThresholds{Elite: vals[0], Strong: vals[1], Survival: vals[2]}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.SetLevels(cfg, levels)
			}); err != nil {
				return err
			}
			return out(cmd, "Levels updated.\n")
		},
	})
	return cmd
}
