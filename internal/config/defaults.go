package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration, matching defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{Width: 10, Height: 20},
		Spawn: SpawnConfig{X: -1, Y: 8},
		Timing: TimingConfig{
			StepDelay: 700 * time.Millisecond,
			LockDelay: 500 * time.Millisecond,
		},
		Randomizer: "uniform",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
