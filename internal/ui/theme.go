// Package ui holds the shared lipgloss styles for CLI and TUI output.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/komorebi/internal/model"
)

const (
	IconSun     = "☀"
	IconMoon    = "☾"
	IconCheck   = "✓"
	IconBox     = "·"
	IconUnsaved = "●"
	IconSpark   = "✦"
)

var (
	cPrimary = lipgloss.Color("72")  // moss
	cAccent  = lipgloss.Color("179") // amber
	cGood    = lipgloss.Color("42")
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
	cInfo    = lipgloss.Color("39")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Info  = lipgloss.NewStyle().Foreground(cInfo)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	ErrorLine   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
)

// Heading renders a title with an optional icon.
func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// LevelText colors a level label by tier.
func LevelText(level model.Level) string {
	switch level {
	case model.LevelElite:
		return Good.Render(string(level))
	case model.LevelStrong:
		return Info.Bold(true).Render(string(level))
	case model.LevelSurvival:
		return Warn.Render(string(level))
	default:
		return Bad.Render(string(level))
	}
}

// ProgressBar renders a fixed-width bar for a 0..100 percentage.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return H2.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
