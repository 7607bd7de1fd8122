// Package tetris adapts the rules engine to the platform's Game interface.
package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Game IDs.
const (
	IDClassic = "tetris"
	IDBag     = "tetris_bag"
)

// Package-level settings applied on the next Reset, set by the CLI before the game starts.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the YAML config file to load. Empty means the default search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger routes config warnings and engine debug events to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is one playable mode backed by an engine.Engine.
type Game struct {
	id         string
	title      string
	randomizer engine.RandomizerKind // forced policy; empty keeps the config file's

	rng    *rand.Rand // seeds restarts
	seed   int64
	rec    *engine.Recorder
	dt     time.Duration
	tick   uint64
	paused bool

	flashLines int // rows removed by the last clear, shown in the HUD
	flashTicks int // ticks left to show flashLines

	screenW int
	screenH int
}

// New creates the classic game: the randomizer comes from the config file (uniform by default).
func New() *Game {
	return &Game{id: IDClassic, title: "Tetris"}
}

// NewBag creates the seven-bag variant.
func NewBag() *Game {
	return &Game{id: IDBag, title: "Tetris (7-bag)", randomizer: engine.RandomizerBag}
}

func init() {
	registry.Register(IDClassic, func() registry.Game { return New() })
	registry.Register(IDBag, func() registry.Game { return NewBag() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new engine.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.tick = 0
	g.paused = false
	g.flashLines = 0
	g.flashTicks = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(tickRate)

	gameCfg := g.loadConfig()
	ecfg := gameCfg.Engine(g.seed)

	cat, err := gameCfg.Catalog()
	if err != nil {
		logger.Warn("invalid shapes, using the standard set", "err", err)
		cat = engine.DefaultCatalog()
	}

	e, err := engine.New(ecfg, engine.WithCatalog(cat), engine.WithLogger(logger))
	if err != nil {
		logger.Warn("invalid engine config, using defaults", "err", err)
		ecfg = config.DefaultTetrisConfig().Engine(g.seed)
		if g.randomizer != "" {
			ecfg.Randomizer = g.randomizer
		}
		e = defaultEngine(ecfg)
	}

	g.rec = engine.NewRecorder(e)
	logger.Debug("game reset", "game", g.id, "seed", g.seed, "board", ecfg.Width, "rows", ecfg.Height)
}

// defaultEngine builds an engine without shape overrides. cfg comes from the embedded
// defaults, so a failure is a programming error.
func defaultEngine(cfg engine.Config) *engine.Engine {
	e, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		panic(fmt.Sprintf("tetris: embedded default config rejected: %v", err))
	}
	return e
}

// loadConfig resolves the config file and preset, falling back to the embedded defaults.
func (g *Game) loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("cannot load config, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultTetrisConfig()
	}

	preset, err := config.ParseDifficultyPreset(difficultyPreset)
	if err != nil {
		logger.Warn("unknown difficulty, using normal", "err", err)
		preset = config.DifficultyNormal
	}
	config.ApplyTetrisPreset(&cfg, preset)

	if g.randomizer != "" {
		cfg.Randomizer = string(g.randomizer)
	}
	return cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	e := g.rec.Engine()

	if in.Has(core.ActionRestart) && e.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(time.Second / g.dt),
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !e.GameOver() {
		g.paused = !g.paused
	}

	if e.GameOver() || g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.rec.Tick(g.dt, Commands(in)...)
	if g.flashTicks > 0 {
		g.flashTicks--
	}
	if res.Cleared > 0 {
		g.flashLines = res.Cleared
		g.flashTicks = int(time.Second / g.dt)
	}
	return core.StepResult{State: g.State(), Cleared: res.Cleared}
}

// Commands maps the movement actions of a frame to engine commands, keeping their order.
func Commands(in core.InputFrame) []engine.Command {
	var cmds []engine.Command
	for _, a := range in.Actions {
		if cmd, ok := actionCommands[a]; ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

var actionCommands = map[core.Action]engine.Command{
	core.ActionMoveLeft:  engine.CmdMoveLeft,
	core.ActionMoveRight: engine.CmdMoveRight,
	core.ActionSoftDrop:  engine.CmdSoftDrop,
	core.ActionHardDrop:  engine.CmdHardDrop,
	core.ActionRotateCW:  engine.CmdRotateClockwise,
	core.ActionRotateCCW: engine.CmdRotateCounterClockwise,
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	e := g.rec.Engine()
	return core.GameState{
		Lines:    e.LinesCleared(),
		Pieces:   e.PiecesLocked(),
		GameOver: e.GameOver(),
		Paused:   g.paused,
	}
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Elapsed returns the simulated play time of the current run.
func (g *Game) Elapsed() time.Duration {
	return g.rec.Engine().Clock()
}

// Snapshot returns the engine state.
func (g *Game) Snapshot() engine.Snapshot {
	return g.rec.Engine().Snapshot()
}

// Recording encodes the replay of the current run.
func (g *Game) Recording() ([]byte, int64, error) {
	data, err := engine.MarshalReplay(g.rec.Replay())
	if err != nil {
		return nil, 0, err
	}
	return data, g.seed, nil
}

var _ registry.Recordable = (*Game)(nil)
