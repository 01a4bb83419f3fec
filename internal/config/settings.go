package config

import (
	"fmt"
	"os"
	"strings"
)

// Settings are resolved application settings with every default applied.
type Settings struct {
	Backend   string
	Path      string
	Namespace string

	Model          string
	EmbedModel     string
	WeaviateURL    string
	WeaviateClass  string
	MatchThreshold float64
	MatchCount     int

	StatsDays   int
	StatsWindow int

	MorningHour  int
	EveningStart int
	EveningEnd   int
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Backend:        "sqlite",
		Namespace:      "komorebi",
		Model:          "gemini-2.5-flash",
		EmbedModel:     "text-embedding-004",
		WeaviateClass:  "Document",
		MatchThreshold: 0.3,
		MatchCount:     5,
		StatsDays:      14,
		StatsWindow:    7,
		MorningHour:    8,
		EveningStart:   18,
		EveningEnd:     20,
	}
}

// Resolve overlays file values on the defaults.
func Resolve(file FileConfig) Settings {
	s := Defaults()
	setString(&s.Backend, file.Storage.Backend)
	setString(&s.Path, file.Storage.Path)
	setString(&s.Namespace, file.Storage.Namespace)
	setString(&s.Model, file.Assistant.Model)
	setString(&s.EmbedModel, file.Assistant.EmbedModel)
	setString(&s.WeaviateURL, file.Assistant.WeaviateURL)
	setString(&s.WeaviateClass, file.Assistant.WeaviateClass)
	if file.Assistant.MatchThreshold != nil {
		s.MatchThreshold = *file.Assistant.MatchThreshold
	}
	setInt(&s.MatchCount, file.Assistant.MatchCount)
	setInt(&s.StatsDays, file.Stats.Days)
	setInt(&s.StatsWindow, file.Stats.Window)
	setInt(&s.MorningHour, file.Reminders.MorningHour)
	setInt(&s.EveningStart, file.Reminders.EveningStart)
	setInt(&s.EveningEnd, file.Reminders.EveningEnd)
	return s
}

func setString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// StoragePath returns the configured path or the backend's XDG default.
func (s Settings) StoragePath() string {
	if s.Path != "" {
		return expandHome(s.Path)
	}
	if s.Backend == "badger" {
		return DefaultBadgerDir()
	}
	return DefaultDBPath()
}

// Validate checks ranges that would make commands misbehave.
func (s Settings) Validate() error {
	if s.MatchThreshold < 0 || s.MatchThreshold > 1 {
		return fmt.Errorf("match-threshold must be between 0 and 1")
	}
	if s.MatchCount <= 0 {
		return fmt.Errorf("match-count must be > 0")
	}
	if s.StatsDays <= 0 {
		return fmt.Errorf("stats days must be > 0")
	}
	if s.StatsWindow <= 0 {
		return fmt.Errorf("stats window must be > 0")
	}
	for name, h := range map[string]int{"morning-hour": s.MorningHour, "evening-start": s.EveningStart, "evening-end": s.EveningEnd} {
		if h < 0 || h > 24 {
			return fmt.Errorf("%s must be between 0 and 24", name)
		}
	}
	if s.EveningStart >= s.EveningEnd {
		return fmt.Errorf("evening-start must be before evening-end")
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}
