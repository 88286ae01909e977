// Package config provides YAML-based configuration loading for the game,
// its storage, the SSH server and logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/torus2048/internal/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig holds the rules handed to the engine.
type GameConfig struct {
	StartTiles      int     `yaml:"start_tiles"`
	FourProbability float64 `yaml:"four_probability"` // Chance a spawned tile is a 4
	WinValue        int     `yaml:"win_value"`
}

// DisplayConfig controls the terminal front end.
type DisplayConfig struct {
	FPS        int  `yaml:"fps"`
	Animations bool `yaml:"animations"`
}

// StorageConfig locates the database and names the local player.
type StorageConfig struct {
	Path    string `yaml:"path"`
	Profile string `yaml:"profile"` // Used by local play; SSH sessions use the SSH user
}

// ServerConfig configures `torus2048 serve`.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Generated when missing
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"` // 0 disables
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty discards logs while the TUI owns the terminal
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			StartTiles:      engine.DefaultStartTiles,
			FourProbability: engine.DefaultFourProbability,
			WinValue:        engine.DefaultWinValue,
		},
		Display: DisplayConfig{
			FPS:        60,
			Animations: true,
		},
		Storage: StorageConfig{
			Path:    "~/.torus2048/torus2048.db",
			Profile: "local",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks ranges the engine and front ends rely on.
func (c Config) Validate() error {
	g := c.Game
	if g.StartTiles < 1 || g.StartTiles > engine.Size*engine.Size {
		return fmt.Errorf("%w: game.start_tiles %d outside [1, %d]", ErrInvalid, g.StartTiles, engine.Size*engine.Size)
	}
	if g.FourProbability <= 0 || g.FourProbability > 1 {
		return fmt.Errorf("%w: game.four_probability %v outside (0, 1]", ErrInvalid, g.FourProbability)
	}
	if g.WinValue < 4 || !engine.IsTileValue(g.WinValue) {
		return fmt.Errorf("%w: game.win_value %d is not a power of two >= 4", ErrInvalid, g.WinValue)
	}
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("%w: display.fps %d outside [1, 240]", ErrInvalid, c.Display.FPS)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is empty", ErrInvalid)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server.address is empty", ErrInvalid)
	}
	if c.Server.IdleTimeout < 0 || c.Server.MaxTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// EngineOptions converts the game rules into engine options. Randomness,
// storage and presentation are left for the caller.
func (g GameConfig) EngineOptions() engine.Options {
	return engine.Options{
		StartTiles:      g.StartTiles,
		FourProbability: g.FourProbability,
		WinValue:        g.WinValue,
	}
}
