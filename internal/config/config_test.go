package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[storage]
backend = "badger"
namespace = "test"

[assistant]
match-threshold = 0.5
weaviate-url = "http://localhost:8080"

[stats]
days = 30

[reminders]
evening-start = 19
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	file, err := LoadConfig(path)
	require.NoError(t, err)
	s := Resolve(file)

	assert.Equal(t, "badger", s.Backend)
	assert.Equal(t, "test", s.Namespace)
	assert.Equal(t, 0.5, s.MatchThreshold)
	assert.Equal(t, 5, s.MatchCount)
	assert.Equal(t, "http://localhost:8080", s.WeaviateURL)
	assert.Equal(t, "Document", s.WeaviateClass)
	assert.Equal(t, 30, s.StatsDays)
	assert.Equal(t, 7, s.StatsWindow)
	assert.Equal(t, 8, s.MorningHour)
	assert.Equal(t, 19, s.EveningStart)
	assert.Equal(t, 20, s.EveningEnd)
	require.NoError(t, s.Validate())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackedn = \"sqlite\"\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "backedn")
}

func TestValidate(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	bad := s
	bad.MatchThreshold = 1.5
	assert.Error(t, bad.Validate())

	bad = s
	bad.EveningStart, bad.EveningEnd = 20, 18
	assert.Error(t, bad.Validate())

	bad = s
	bad.StatsDays = 0
	assert.Error(t, bad.Validate())
}

func TestStoragePathDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	s := Defaults()
	assert.Equal(t, filepath.Join("/data", "komorebi", "komorebi.db"), s.StoragePath())
	s.Backend = "badger"
	assert.Equal(t, filepath.Join("/data", "komorebi", "badger"), s.StoragePath())
	s.Path = "/tmp/custom"
	assert.Equal(t, "/tmp/custom", s.StoragePath())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "komorebi", "config.toml"), DefaultConfigPath())
}
