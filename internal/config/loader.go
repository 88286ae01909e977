package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/torus2048.yaml
var defaultYAML []byte

// FileName is the config file looked up in the user and local directories.
const FileName = "torus2048.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.torus2048/config.yaml -> ./configs/torus2048.yaml
// -> embedded default -> Default(). Values missing from a file keep their
// defaults. A custom path that cannot be read or parsed is an error; the
// other locations are skipped when unusable.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if the embedded file is broken
	}
	return cfg, cfg.Validate()
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".torus2048", "config.yaml")
}

// Marshal encodes the configuration as YAML, as written by `config show`.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
