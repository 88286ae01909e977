package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolate points the lookup locations at empty temporary directories.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", FileName), "game:\n  win_value: 512\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Game.WinValue, "local configs directory is used")

	writeFile(t, filepath.Join(home, ".torus2048", "config.yaml"), "game:\n  win_value: 256\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Game.WinValue, "user config wins over the local one")

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "game:\n  win_value: 128\n")
	cfg, err = Load(custom)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Game.WinValue, "explicit path wins")
}

func TestLoadSkipsBrokenSearchFiles(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".torus2048", "config.yaml"), "game: [not, a, map")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	writeFile(t, path, `
server:
  address: "127.0.0.1:2222"
  idle_timeout: 5m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2222", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Default().Game, cfg.Game)
	assert.Equal(t, Default().Storage, cfg.Storage)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "game: [")
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "game:\n  four_probability: 2\n")
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero start tiles", func(c *Config) { c.Game.StartTiles = 0 }},
		{"too many start tiles", func(c *Config) { c.Game.StartTiles = 17 }},
		{"zero four probability", func(c *Config) { c.Game.FourProbability = 0 }},
		{"four probability above one", func(c *Config) { c.Game.FourProbability = 1.5 }},
		{"win value not a power of two", func(c *Config) { c.Game.WinValue = 1000 }},
		{"win value too small", func(c *Config) { c.Game.WinValue = 2 }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }},
		{"empty address", func(c *Config) { c.Server.Address = "" }},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	opts := GameConfig{StartTiles: 3, FourProbability: 0.25, WinValue: 4096}.EngineOptions()
	assert.Equal(t, 3, opts.StartTiles)
	assert.Equal(t, 0.25, opts.FourProbability)
	assert.Equal(t, 4096, opts.WinValue)
	assert.Nil(t, opts.Store)
}

func TestDifficultyPresets(t *testing.T) {
	for _, p := range Presets {
		cfg := Default()
		ApplyDifficulty(&cfg, p)
		assert.NoError(t, cfg.Validate(), "preset %s", p)
	}

	cfg := Default()
	ApplyDifficulty(&cfg, DifficultyHard)
	assert.Equal(t, 4096, cfg.Game.WinValue)

	cfg = Default()
	ApplyDifficulty(&cfg, "")
	assert.Equal(t, Default(), cfg)
}

func TestParseDifficulty(t *testing.T) {
	p, err := ParseDifficulty("easy")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, p)

	p, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.MaxTimeout = 2 * time.Hour

	data, err := Marshal(cfg)
	require.NoError(t, err)

	got, err := parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
