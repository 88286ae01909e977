package config

import "fmt"

// DifficultyPreset is a named set of game rules.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty accepts a preset name; the empty string means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (easy, normal, hard)", ErrInvalid, s)
	}
}

// ApplyDifficulty overrides the game rules for a preset. An empty preset
// keeps the configured rules.
func ApplyDifficulty(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.FourProbability = 0.05
		cfg.Game.WinValue = 1024
		cfg.Game.StartTiles = 2
	case DifficultyNormal:
		cfg.Game.FourProbability = 0.1
		cfg.Game.WinValue = 2048
		cfg.Game.StartTiles = 2
	case DifficultyHard:
		cfg.Game.FourProbability = 0.25
		cfg.Game.WinValue = 4096
		cfg.Game.StartTiles = 3
	}
}
