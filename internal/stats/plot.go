package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/komorebi/internal/model"
)

const (
	minBarWidth         = 10
	barFull             = "█"
	barEmpty            = "░"
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var levelColors = map[model.Level]string{
	model.LevelElite:    "\x1b[32m",
	model.LevelStrong:   "\x1b[36m",
	model.LevelSurvival: "\x1b[33m",
	model.LevelRedZone:  "\x1b[31m",
}

// RenderBars prints a horizontal XP bar per day, scaled to maxXP (or to the
// best day when maxXP is zero). Width 0 fits the terminal.
func RenderBars(w io.Writer, r Report, width int, forceColor bool) error {
	if len(r.Points) == 0 {
		return nil
	}
	scale := r.MaxXP
	if scale <= 0 {
		for _, p := range r.Points {
			scale = max(scale, p.XP)
		}
	}
	if width <= 0 {
		width = BarWidthFor(terminalWidth())
	}
	width = max(width, minBarWidth)
	useColor := shouldUseColor(w, forceColor)

	if _, err := fmt.Fprintln(w, "Daily XP"); err != nil {
		return err
	}
	for _, p := range r.Points {
		filled := 0
		if scale > 0 {
			filled = p.XP * width / scale
		}
		filled = max(0, min(filled, width))
		bar := strings.Repeat(barFull, filled)
		if useColor && filled > 0 {
			bar = levelColors[p.Level] + bar + colorReset
		}
		bar += strings.Repeat(barEmpty, width-filled)

		label := "-"
		if p.Saved {
			label = fmt.Sprintf("%d %s", p.XP, p.Level)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s %s\n", p.Date, axisSeparator, bar, label); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// BarWidthFor computes a bar width that leaves room for the date and label columns.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	reserved := len("2006-01-02") + runewidth.StringWidth(axisSeparator) + len(" 10000 Red Zone")
	return max(totalWidth-reserved, minBarWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
