package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error = %v", err)
	}

	def := DefaultTetrisConfig()
	if cfg.Board != def.Board || cfg.Spawn != def.Spawn || cfg.Timing != def.Timing || cfg.Randomizer != def.Randomizer {
		t.Errorf("embedded config = %+v, expected %+v", cfg, def)
	}
	if len(cfg.Shapes) != 0 {
		t.Errorf("embedded config has %d shape overrides, expected none", len(cfg.Shapes))
	}

	ec := cfg.Engine(0)
	want := engine.DefaultConfig()
	if ec != want {
		t.Errorf("Engine(0) = %+v, expected %+v", ec, want)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := writeConfig(t, `
board:
  width: 8
timing:
  step_delay: 1s
randomizer: bag
`)

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}

	if cfg.Board.Width != 8 {
		t.Errorf("Board.Width = %d, expected 8", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("Board.Height = %d, expected default 20", cfg.Board.Height)
	}
	if cfg.Timing.StepDelay != time.Second {
		t.Errorf("StepDelay = %v, expected 1s", cfg.Timing.StepDelay)
	}
	if cfg.Timing.LockDelay != 500*time.Millisecond {
		t.Errorf("LockDelay = %v, expected default 500ms", cfg.Timing.LockDelay)
	}
	if got := cfg.Engine(9).Randomizer; got != engine.RandomizerBag {
		t.Errorf("Randomizer = %q, expected bag", got)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "board: [1, 2"},
		{"zero width", "board:\n  width: 0\n"},
		{"bad duration", "timing:\n  step_delay: soon\n"},
		{"unknown randomizer", "randomizer: weighted\n"},
		{"unknown shape", "shapes:\n  - kind: Q\n    cells: [[0, 0], [1, 0], [2, 0], [3, 0]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTetris(writeConfig(t, tt.body)); err == nil {
				t.Error("LoadTetris() should fail")
			}
		})
	}

	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTetris(missing) should fail")
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Timing.LockDelay = -time.Second

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
	}
}

func TestShapeOverrides(t *testing.T) {
	path := writeConfig(t, `
shapes:
  - kind: o
    cells: [[0, 0], [1, 0], [2, 0], [3, 0]]
  - kind: T
    cells: [[0, 1], [-1, 0], [0, 0], [1, 0]]
    kicks:
      - [[0, 0], [1, 0]]
      - [[0, 0], [-1, 0]]
`)

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}

	cat, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	o := cat.Shape(engine.ShapeO)
	if o.Cells[3] != engine.C(3, 0) {
		t.Errorf("O cells = %v, expected a flat line", o.Cells)
	}
	if len(o.Kicks) != 8 {
		t.Errorf("O kick rows = %d, expected the standard 8", len(o.Kicks))
	}

	tk := cat.Shape(engine.ShapeT)
	if len(tk.Kicks) != 2 || tk.Kicks[1][1] != engine.C(-1, 0) {
		t.Errorf("T kicks = %v", tk.Kicks)
	}
}

func TestCatalogRejectsBadShape(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Shapes = []ShapeConfig{{Kind: "S", Cells: [][2]int{{0, 0}, {0, 0}, {1, 0}, {2, 0}}}}

	_, err := cfg.Catalog()
	if !errors.Is(err, engine.ErrInvalidShape) {
		t.Errorf("Catalog() = %v, expected ErrInvalidShape", err)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		step, lock time.Duration
	}{
		{DifficultyEasy, 1500 * time.Millisecond, 600 * time.Millisecond},
		{DifficultyNormal, time.Second, 400 * time.Millisecond},
		{DifficultyHard, 500 * time.Millisecond, 200 * time.Millisecond},
		{DifficultyFixed, 700 * time.Millisecond, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			cfg.Timing = TimingConfig{StepDelay: time.Second, LockDelay: 400 * time.Millisecond}

			ApplyTetrisPreset(&cfg, tt.preset)

			if cfg.Timing.StepDelay != tt.step {
				t.Errorf("StepDelay = %v, expected %v", cfg.Timing.StepDelay, tt.step)
			}
			if cfg.Timing.LockDelay != tt.lock {
				t.Errorf("LockDelay = %v, expected %v", cfg.Timing.LockDelay, tt.lock)
			}
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficultyPreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficultyPreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDifficultyPreset(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
