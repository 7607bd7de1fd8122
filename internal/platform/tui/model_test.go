package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// stubGame ends after a fixed number of ticks and records every frame it saw.
type stubGame struct {
	ticks    int
	endAfter int
	frames   [][]core.Action
	resets   int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over() {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	if g.over() {
		return core.StepResult{State: g.State()}
	}
	g.frames = append(g.frames, in.Clone().Actions)
	g.ticks++
	return core.StepResult{State: g.State()}
}

func (g *stubGame) over() bool { return g.ticks >= g.endAfter }

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Lines: g.ticks, Pieces: 2 * g.ticks, GameOver: g.over()}
}

func (g *stubGame) Recording() ([]byte, int64, error) {
	return []byte(`{"version":1}`), 42, nil
}

func (g *stubGame) Elapsed() time.Duration {
	return time.Duration(g.ticks) * time.Second
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg{At: time.Now(), Loop: m.loop})
	if cmd == nil {
		t.Fatal("tick should re-arm the loop")
	}
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 7}
}

func TestModelPassesKeysInOrder(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, testConfig())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, runeKey("x"))
	m = tick(t, m)
	m = tick(t, m)

	if len(game.frames) != 2 {
		t.Fatalf("game saw %d frames, expected 2", len(game.frames))
	}
	first := game.frames[0]
	if len(first) != 2 || first[0] != core.ActionMoveLeft || first[1] != core.ActionRotateCW {
		t.Errorf("first frame = %v, expected [MoveLeft RotateCW]", first)
	}
	if len(game.frames[1]) != 0 {
		t.Errorf("second frame = %v, expected empty", game.frames[1])
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, testConfig())

	next, cmd := m.Update(TickMsg{Loop: m.loop + 1000})
	if cmd != nil {
		t.Error("stale tick should not re-arm the loop")
	}
	if len(game.frames) != 0 {
		t.Errorf("stale tick stepped the game %d times", len(game.frames))
	}
	_ = next
}

func TestModelSavesSessionOnceOnGameOver(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{endAfter: 3}
	m := NewModel(game, store, testConfig())

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	sessions, err := store.RecentSessions("stub", 10)
	if err != nil {
		t.Fatalf("RecentSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, expected 1", len(sessions))
	}

	s := sessions[0]
	if s.Lines != 3 || s.Pieces != 6 {
		t.Errorf("session lines/pieces = %d/%d, expected 3/6", s.Lines, s.Pieces)
	}
	if s.Seed != 42 {
		t.Errorf("session seed = %d, expected 42", s.Seed)
	}
	if s.Duration != 3*time.Second {
		t.Errorf("session duration = %v, expected 3s", s.Duration)
	}
	if !s.HasReplay {
		t.Error("session should have a replay")
	}
	if m.SavedSessionID() != s.ID {
		t.Errorf("SavedSessionID() = %d, expected %d", m.SavedSessionID(), s.ID)
	}

	full, err := store.SessionByID(s.ID)
	if err != nil {
		t.Fatalf("SessionByID() error = %v", err)
	}
	if string(full.Replay) != `{"version":1}` {
		t.Errorf("replay = %q", full.Replay)
	}
}

func TestModelSavesAgainAfterRestart(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{endAfter: 2}
	m := NewModel(game, store, testConfig())

	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	m, _ = press(m, runeKey("r"))
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}

	sessions, err := store.RecentSessions("stub", 10)
	if err != nil {
		t.Fatalf("RecentSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("got %d sessions, expected 2", len(sessions))
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{endAfter: 10}, nil, testConfig())

	m, cmd := press(m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{endAfter: 10}
	m := NewModel(game, nil, testConfig())
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	m = next.(Model)

	if game.resets != 1 {
		t.Errorf("resize reset the game: %d resets", game.resets)
	}
	if got := strings.Count(m.View(), "\n"); got != 7 {
		t.Errorf("View() has %d line breaks, expected 7", got)
	}
}

func TestRenderScreenLines(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("RenderScreen() has %d line breaks, expected 2", got)
	}
	if !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen() = %q, expected it to contain cd", out)
	}
}
