// Package config provides settings helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML settings file.
type FileConfig struct {
	Storage   StorageConfig   `toml:"storage"`
	Assistant AssistantConfig `toml:"assistant"`
	Stats     StatsConfig     `toml:"stats"`
	Reminders RemindersConfig `toml:"reminders"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	Backend   *string `toml:"backend"`
	Path      *string `toml:"path"`
	Namespace *string `toml:"namespace"`
}

// AssistantConfig maps assistant settings.
type AssistantConfig struct {
	Model          *string  `toml:"model"`
	EmbedModel     *string  `toml:"embed-model"`
	WeaviateURL    *string  `toml:"weaviate-url"`
	WeaviateClass  *string  `toml:"weaviate-class"`
	MatchThreshold *float64 `toml:"match-threshold"`
	MatchCount     *int     `toml:"match-count"`
}

// StatsConfig maps history output settings.
type StatsConfig struct {
	Days   *int `toml:"days"`
	Window *int `toml:"window"`
}

// RemindersConfig maps reminder windows.
type RemindersConfig struct {
	MorningHour  *int `toml:"morning-hour"`
	EveningStart *int `toml:"evening-start"`
	EveningEnd   *int `toml:"evening-end"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
