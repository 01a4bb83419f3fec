package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errAborted = errors.New("aborted")

func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirm asks before a destructive edit. --yes skips the prompt; without a
// terminal the edit is refused unless --yes is given.
func confirm(cmd *cobra.Command, title string, yes bool) error {
	if yes {
		return nil
	}
	if !interactive(cmd) {
		return fmt.Errorf("%s: refusing without a terminal, pass --yes", title)
	}
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Remove").
			Negative("Keep").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	if !ok {
		return errAborted
	}
	return nil
}
