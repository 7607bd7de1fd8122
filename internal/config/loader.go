package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "tetris.yaml"

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// An explicit customPath must exist, parse and validate; the other locations are skipped on error.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return TetrisConfig{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", ConfigFile)); err == nil {
		return cfg, nil
	}

	cfg, err := parse(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil
	}
	return cfg, nil
}

func loadFile(path string) (TetrisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes data over the built-in defaults, so a partial file only overrides what it names.
func parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns ~/.tetris/configs/<filename>, or "" if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset adjusts the delays for a difficulty preset.
// Fixed pins the standard delays regardless of the file, so sessions stay comparable.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	def := DefaultTetrisConfig().Timing

	switch preset {
	case DifficultyEasy:
		cfg.Timing.StepDelay = cfg.Timing.StepDelay * 3 / 2
		cfg.Timing.LockDelay = cfg.Timing.LockDelay * 3 / 2
	case DifficultyHard:
		cfg.Timing.StepDelay /= 2
		cfg.Timing.LockDelay /= 2
	case DifficultyFixed:
		cfg.Timing = def
	}
}
