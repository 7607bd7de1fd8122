package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Configuration errors returned by New.
var (
	ErrInvalidBoard  = errors.New("engine: invalid board dimensions")
	ErrInvalidTiming = errors.New("engine: invalid timing")
	ErrInvalidSpawn  = errors.New("engine: spawn outside board")
)

// Config is fixed for the lifetime of an Engine.
type Config struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Spawn      Coord          `json:"spawn"`
	StepDelay  time.Duration  `json:"step_delay"`
	LockDelay  time.Duration  `json:"lock_delay"`
	Seed       int64          `json:"seed"`
	Randomizer RandomizerKind `json:"randomizer"`
}

// DefaultConfig returns the standard 10x20 board with 0.7s gravity and 0.5s lock delay.
func DefaultConfig() Config {
	return Config{
		Width:      10,
		Height:     20,
		Spawn:      Coord{X: -1, Y: 8},
		StepDelay:  700 * time.Millisecond,
		LockDelay:  500 * time.Millisecond,
		Randomizer: RandomizerUniform,
	}
}

// Validate checks the configuration for programmer errors.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoard, c.Width, c.Height)
	}
	if c.StepDelay <= 0 {
		return fmt.Errorf("%w: step delay %v", ErrInvalidTiming, c.StepDelay)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("%w: lock delay %v", ErrInvalidTiming, c.LockDelay)
	}
	if !NewBounds(c.Width, c.Height).Contains(c.Spawn) {
		return fmt.Errorf("%w: %s", ErrInvalidSpawn, c.Spawn)
	}
	return nil
}

// Option customizes an Engine.
type Option func(*Engine)

// WithCatalog replaces the standard shape catalog.
func WithCatalog(cat *Catalog) Option {
	return func(e *Engine) {
		e.catalog = cat
	}
}

// WithRandomizer replaces the seeded randomizer named in Config.
func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithLogger routes debug events (spawn, lock, line clear, game over) to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine owns the grid and the active piece. It is not safe for concurrent use.
type Engine struct {
	cfg     Config
	catalog *Catalog
	rand    Randomizer
	logger  *log.Logger

	grid  *Grid
	piece Piece
	clock time.Duration

	gameOver     bool
	linesCleared int
	piecesLocked int
}

// New validates cfg, builds the engine and spawns the first piece.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.rand == nil {
		r, err := NewRandomizer(cfg.Randomizer, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return nil, err
		}
		e.rand = r
	}

	e.grid = NewGrid(NewBounds(cfg.Width, cfg.Height))
	e.spawn()
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Bounds returns the board rectangle.
func (e *Engine) Bounds() Bounds {
	return e.grid.Bounds()
}

// Cell returns the tag at c, including the active piece's cells.
func (e *Engine) Cell(c Coord) (Tag, bool) {
	return e.grid.Tag(c)
}

// Piece returns a copy of the active piece.
func (e *Engine) Piece() Piece {
	return e.piece
}

// Ghost projects the active piece onto the stack.
func (e *Engine) Ghost() Ghost {
	if e.gameOver {
		return Ghost{}
	}
	return Project(e.grid, &e.piece)
}

// GameOver reports whether the last spawn failed.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Clock returns the simulation time.
func (e *Engine) Clock() time.Duration {
	return e.clock
}

// LinesCleared returns the total number of rows removed.
func (e *Engine) LinesCleared() int {
	return e.linesCleared
}

// PiecesLocked returns the number of pieces that have locked.
func (e *Engine) PiecesLocked() int {
	return e.piecesLocked
}

// TickResult reports what one Tick did.
type TickResult struct {
	Accepted []bool // per command, in order
	Cleared  int    // rows removed during this tick
	Locked   int    // pieces locked during this tick
	Snapshot Snapshot
}

// Tick advances the clock by dt, applies cmds in order and then runs gravity.
func (e *Engine) Tick(dt time.Duration, cmds ...Command) TickResult {
	res := TickResult{Accepted: make([]bool, len(cmds))}
	locked, cleared := e.piecesLocked, e.linesCleared

	if !e.gameOver {
		e.clock += dt
		e.piece.lockTime += dt

		for i, cmd := range cmds {
			res.Accepted[i] = e.Apply(cmd)
		}

		if !e.gameOver && e.clock >= e.piece.stepTime {
			e.step()
		}
	}

	res.Locked = e.piecesLocked - locked
	res.Cleared = e.linesCleared - cleared
	res.Snapshot = e.Snapshot()
	return res
}

// Apply executes one command immediately and reports whether it changed the piece.
// Commands are rejected once the game is over.
func (e *Engine) Apply(cmd Command) bool {
	if e.gameOver {
		return false
	}

	switch cmd {
	case CmdMoveLeft:
		return e.move(Coord{X: -1})
	case CmdMoveRight:
		return e.move(Coord{X: 1})
	case CmdSoftDrop:
		return e.move(Coord{Y: -1})
	case CmdHardDrop:
		return e.hardDrop()
	case CmdRotateClockwise:
		return e.rotate(Clockwise)
	case CmdRotateCounterClockwise:
		return e.rotate(CounterClockwise)
	default:
		return false
	}
}

// step is the forced gravity move.
func (e *Engine) step() {
	e.piece.stepTime = e.clock + e.cfg.StepDelay
	if e.move(Coord{Y: -1}) {
		return
	}
	if e.piece.lockTime >= e.cfg.LockDelay {
		e.lock()
	}
}

func (e *Engine) hardDrop() bool {
	moved := false
	for e.move(Coord{Y: -1}) {
		moved = true
	}
	if e.piece.lockTime >= e.cfg.LockDelay {
		e.lock()
		return true
	}
	return moved
}

func (e *Engine) move(delta Coord) bool {
	p := &e.piece
	self := p.Absolute()
	pos := p.Position.Add(delta)
	if !e.grid.IsValidPlacement(p.Cells, pos, self[:]) {
		return false
	}

	e.lift()
	p.Position = pos
	p.lockTime = 0
	e.place()
	return true
}

func (e *Engine) rotate(dir Direction) bool {
	p := &e.piece
	self := p.Absolute()
	cells := RotateCells(p.Kind(), p.Cells, dir)

	for _, kick := range KickCandidates(p.Shape, p.Rotation, dir) {
		pos := p.Position.Add(kick)
		if !e.grid.IsValidPlacement(cells, pos, self[:]) {
			continue
		}
		e.lift()
		p.Cells = cells
		p.Position = pos
		p.Rotation = p.Rotation.Turn(dir)
		p.lockTime = 0
		e.place()
		return true
	}
	return false
}

func (e *Engine) lock() {
	e.piecesLocked++
	n := e.grid.ClearLines()
	e.linesCleared += n
	e.logger.Debug("piece locked",
		"shape", e.piece.Kind(),
		"position", e.piece.Position,
		"cleared", n,
		"clock", e.clock,
	)
	e.spawn()
}

func (e *Engine) spawn() {
	kind := e.rand.Next()
	e.piece.Initialize(e.catalog.Shape(kind), e.cfg.Spawn, e.clock+e.cfg.StepDelay)

	if !e.grid.IsValidPlacement(e.piece.Cells, e.piece.Position, nil) {
		e.gameOver = true
		e.grid.Reset()
		e.logger.Debug("game over",
			"shape", kind,
			"lines", e.linesCleared,
			"pieces", e.piecesLocked,
		)
		return
	}

	e.place()
	e.logger.Debug("piece spawned", "shape", kind, "clock", e.clock)
}

// lift removes the active piece's cells from the grid.
func (e *Engine) lift() {
	for _, c := range e.piece.Absolute() {
		e.grid.Clear(c)
	}
}

// place commits the active piece's cells to the grid.
func (e *Engine) place() {
	tag := TagFor(e.piece.Kind())
	for _, c := range e.piece.Absolute() {
		e.grid.Set(c, tag)
	}
}
