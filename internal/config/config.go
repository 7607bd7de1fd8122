// Package config loads the YAML game configuration and applies difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// TetrisConfig is the on-disk game configuration.
type TetrisConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Spawn      SpawnConfig   `yaml:"spawn"`
	Timing     TimingConfig  `yaml:"timing"`
	Randomizer string        `yaml:"randomizer"`
	Shapes     []ShapeConfig `yaml:"shapes,omitempty"`
}

// BoardConfig is the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpawnConfig is the pivot position of new pieces, in board coordinates.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// TimingConfig holds the gravity and lock delays ("700ms", "1s").
type TimingConfig struct {
	StepDelay time.Duration `yaml:"step_delay"`
	LockDelay time.Duration `yaml:"lock_delay"`
}

// ShapeConfig overrides one shape. Cells and kicks are [x, y] pairs.
type ShapeConfig struct {
	Kind  string     `yaml:"kind"`
	Cells [][2]int   `yaml:"cells"`
	Kicks [][][2]int `yaml:"kicks,omitempty"`
}

// Validate checks everything engine.New and engine.NewCatalog would reject.
func (c TetrisConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Timing.StepDelay <= 0 {
		return fmt.Errorf("%w: step_delay must be positive, got %v", ErrInvalidConfig, c.Timing.StepDelay)
	}
	if c.Timing.LockDelay < 0 {
		return fmt.Errorf("%w: lock_delay must not be negative, got %v", ErrInvalidConfig, c.Timing.LockDelay)
	}
	if !engine.NewBounds(c.Board.Width, c.Board.Height).Contains(engine.C(c.Spawn.X, c.Spawn.Y)) {
		return fmt.Errorf("%w: spawn (%d, %d) outside the board", ErrInvalidConfig, c.Spawn.X, c.Spawn.Y)
	}
	switch engine.RandomizerKind(c.Randomizer) {
	case "", engine.RandomizerUniform, engine.RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfig, c.Randomizer)
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Engine converts the configuration into engine settings. The seed is chosen by the caller.
func (c TetrisConfig) Engine(seed int64) engine.Config {
	return engine.Config{
		Width:      c.Board.Width,
		Height:     c.Board.Height,
		Spawn:      engine.C(c.Spawn.X, c.Spawn.Y),
		StepDelay:  c.Timing.StepDelay,
		LockDelay:  c.Timing.LockDelay,
		Seed:       seed,
		Randomizer: engine.RandomizerKind(c.Randomizer),
	}
}

// ShapeSpecs converts the shape overrides. Cell-count and kick-table checks are left to
// engine.NewCatalog.
func (c TetrisConfig) ShapeSpecs() ([]engine.ShapeSpec, error) {
	specs := make([]engine.ShapeSpec, 0, len(c.Shapes))
	for _, s := range c.Shapes {
		kind, ok := engine.ParseShapeKind(s.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s.Kind)
		}

		spec := engine.ShapeSpec{Kind: kind, Cells: pairs(s.Cells)}
		if s.Kicks != nil {
			spec.Kicks = make([][]engine.Coord, len(s.Kicks))
			for i, row := range s.Kicks {
				spec.Kicks[i] = pairs(row)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Catalog builds the shape catalog, applying any overrides.
func (c TetrisConfig) Catalog() (*engine.Catalog, error) {
	specs, err := c.ShapeSpecs()
	if err != nil {
		return nil, err
	}
	cat, err := engine.NewCatalog(specs...)
	if err != nil {
		return nil, fmt.Errorf("config: shapes: %w", err)
	}
	return cat, nil
}

func pairs(in [][2]int) []engine.Coord {
	out := make([]engine.Coord, len(in))
	for i, p := range in {
		out[i] = engine.C(p[0], p[1])
	}
	return out
}

// DifficultyPreset is a named timing profile.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. The empty string means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (easy, normal, hard, fixed)", ErrInvalidConfig, s)
	}
}
