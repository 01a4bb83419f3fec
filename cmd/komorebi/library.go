package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/editor"
	"github.com/verte-zerg/komorebi/internal/library"
	"github.com/verte-zerg/komorebi/internal/model"
)

func newLibraryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Manage mental models, productivity techniques, investors and quotes",
	}
	cmd.AddCommand(
		newLibraryListCmd(a),
		newLibraryAddCmd(a),
		newLibraryRemoveCmd(a),
		newLibrarySetCmd(a),
		newLibraryImportCmd(a),
	)
	return cmd
}

func newLibraryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [CATEGORY]",
		Short: "List library entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := model.Categories
			if len(args) == 1 {
				cat, err := model.ParseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []model.Category{cat}
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			for i, cat := range cats {
				if i > 0 {
					if err := out(cmd, "\n"); err != nil {
						return err
					}
				}
				if err := printCategory(cmd, cfg.Library, cat); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printCategory(cmd *cobra.Command, lib model.Library, cat model.Category) error {
	if err := out(cmd, "%s (%d)\n", cat, lib.Len(cat)); err != nil {
		return err
	}
	switch cat {
	case model.CategoryQuotes:
		for i, q := range lib.Quotes {
			if err := out(cmd, "%3d  %s\n", i+1, q); err != nil {
				return err
			}
		}
	case model.CategoryInvestors:
		for i, it := range lib.Investors {
			if err := out(cmd, "%3d  %s  %s\n", i+1, it.Name, investorDetail(it)); err != nil {
				return err
			}
		}
	default:
		items := lib.MentalModels
		if cat == model.CategoryProductivity {
			items = lib.Productivity
		}
		for i, it := range items {
			if err := out(cmd, "%3d  %s: %s\n", i+1, it.Name, it.Desc); err != nil {
				return err
			}
		}
	}
	return nil
}

func newLibraryAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add CATEGORY",
		Short: "Prepend a placeholder entry to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.AddLibraryItem(cfg, cat)
			}); err != nil {
				return err
			}
			return out(cmd, "Added a placeholder as %s #1. Edit it with `komorebi library set %s 1 FIELD VALUE`.\n", cat, cat)
		},
	}
}

func newLibraryRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm CATEGORY INDEX",
		Aliases: []string{"remove"},
		Short:   "Remove a library entry",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, idx, err := parseLibraryTarget(args[0], args[1])
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if idx >= cfg.Library.Len(cat) {
				return fmt.Errorf("%w: %s has %d entries", editor.ErrIndexOutOfRange, cat, cfg.Library.Len(cat))
			}
			if err := confirm(cmd, fmt.Sprintf("Remove %s #%d?", cat, idx+1), yes); err != nil {
				return err
			}
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.RemoveLibraryItem(cfg, cat, idx)
			}); err != nil {
				return err
			}
			return out(cmd, "Removed %s #%d.\n", cat, idx+1)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newLibrarySetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set CATEGORY INDEX FIELD VALUE",
		Short: "Edit a field of a library entry (name, desc, resource, years, quote)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, idx, err := parseLibraryTarget(args[0], args[1])
			if err != nil {
				return err
			}
			field := model.LibraryField(args[2])
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				return editor.UpdateLibraryItem(cfg, cat, idx, field, args[3])
			}); err != nil {
				return err
			}
			return out(cmd, "Updated %s #%d %s.\n", cat, idx+1, field)
		},
	}
}

func newLibraryImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-quotes FILE",
		Short: "Append quotes from a text file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes, err := library.LoadQuotes(args[0])
			if err != nil {
				return err
			}
			added := 0
			if _, err := a.update(cmd, func(cfg model.AppConfig) (model.AppConfig, error) {
				next, n := editor.ImportQuotes(cfg, quotes)
				added = n
				return next, nil
			}); err != nil {
				return err
			}
			return out(cmd, "Imported %d new quotes (%d skipped).\n", added, len(quotes)-added)
		},
	}
}

// parseLibraryTarget takes a category and a 1-based index.
func parseLibraryTarget(catArg, indexArg string) (model.Category, int, error) {
	cat, err := model.ParseCategory(catArg)
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.Atoi(indexArg)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("invalid index %q", indexArg)
	}
	return cat, n - 1, nil
}
