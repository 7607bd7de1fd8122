package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// elapsed is implemented by games that track simulated play time.
type elapsed interface {
	Elapsed() time.Duration
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	loop       uint64
	quitting   bool
	saved      bool  // session stored for the current game over
	savedID    int64 // row id of the last stored session
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithKeyMapper replaces the default bindings.
func WithKeyMapper(km *KeyMapper) ModelOption {
	return func(m *Model) {
		if km != nil {
			m.keys = km
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game. store may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		logger:     log.New(io.Discard),
		inputFrame: core.NewInputFrame(),
		loop:       nextLoopID(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	if quit := m.keys.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only resizes the buffer: the playfield does not depend on the terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.saved = false
	} else if !m.saved {
		m.saveSession()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveSession stores the finished game and its replay. Failures are logged, the game continues.
func (m *Model) saveSession() {
	if m.store == nil {
		return
	}

	sess := storage.Session{
		GameID: m.game.ID(),
		Seed:   m.config.Seed,
		Lines:  m.gameState.Lines,
		Pieces: m.gameState.Pieces,
	}
	if e, ok := m.game.(elapsed); ok {
		sess.Duration = e.Elapsed()
	}
	if r, ok := m.game.(registry.Recordable); ok {
		data, seed, err := r.Recording()
		if err != nil {
			m.logger.Warn("cannot encode replay", "game", m.game.ID(), "err", err)
		} else {
			sess.Replay = data
			sess.Seed = seed
		}
	}

	id, err := m.store.SaveSession(sess)
	if err != nil {
		m.logger.Error("cannot save session", "game", m.game.ID(), "err", err)
		return
	}
	m.savedID = id
	m.logger.Info("session saved", "id", id, "game", sess.GameID, "lines", sess.Lines, "pieces", sess.Pieces)
}

// saveScreenshot writes the current screen as plain text to ~/.tetris/screenshots.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// IsQuitting reports whether the player asked to leave the game.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// SavedSessionID returns the id of the last stored session, or 0.
func (m Model) SavedSessionID() int64 {
	return m.savedID
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts...),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
