package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads the Tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml ->
// ./configs/tetris.yaml -> embedded default -> DefaultTetrisConfig.
//
// Files are layered over the defaults, so a file only needs the keys it
// changes. A custom path that is missing, malformed or invalid is an error;
// the other locations are skipped silently when unusable.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		cfg, err := readTetris(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("tetris.yaml"), filepath.Join("configs", "tetris.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := readTetris(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return ParseTetris(defaultTetrisYAML)
}

// ParseTetris decodes YAML over the defaults and validates the result.
// Broken input yields DefaultTetrisConfig together with the error.
func ParseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultTetrisConfig(), fmt.Errorf("failed to parse tetris config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultTetrisConfig(), err
	}
	return cfg, nil
}

func readTetris(path string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file path, or "" when the home
// directory is unknown.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
