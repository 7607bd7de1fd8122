package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// playToEnd hard-drops every tick until the well fills up and stores the session.
func playToEnd(t *testing.T, store *storage.Store) int64 {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.ConfigFile)
	if err := os.WriteFile(path, config.DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}
	tetris.SetConfigPath(path)
	t.Cleanup(func() { tetris.SetConfigPath("") })

	g := tetris.NewBag()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11})

	in := core.NewInputFrame()
	in.Set(core.ActionHardDrop)
	for i := 0; i < 100000; i++ {
		if g.Step(in).State.GameOver {
			break
		}
	}
	st := g.State()
	if !st.GameOver {
		t.Fatal("game did not end")
	}

	data, seed, err := g.Recording()
	if err != nil {
		t.Fatalf("Recording() error = %v", err)
	}
	id, err := store.SaveSession(storage.Session{
		GameID:   g.ID(),
		Seed:     seed,
		Lines:    st.Lines,
		Pieces:   st.Pieces,
		Duration: g.Elapsed(),
		Replay:   data,
	})
	if err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	return id
}

func TestReplayCommand(t *testing.T) {
	flagDBPath = filepath.Join(t.TempDir(), "tetris.db")
	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	id := playToEnd(t, store)
	store.Close()

	var out bytes.Buffer
	replayCmd.SetOut(&out)
	replayCmd.SetErr(&out)

	if err := runReplay(replayCmd, []string{strconv.FormatInt(id, 10)}); err != nil {
		t.Fatalf("runReplay() error = %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Replay matches the stored result.") {
		t.Errorf("output = %q, expected a match", out.String())
	}
	board := strings.SplitN(out.String(), "\n\n", 2)[0]
	if rows := strings.Split(board, "\n"); len(rows) != 20 || rows[0] != strings.Repeat(".", 10) {
		t.Errorf("output should draw the cleared 10x20 board, got:\n%s", board)
	}
}

func TestReplayCommandErrors(t *testing.T) {
	flagDBPath = filepath.Join(t.TempDir(), "tetris.db")
	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	noReplay, err := store.SaveSession(storage.Session{GameID: tetris.IDClassic, Lines: 1})
	if err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	store.Close()

	tests := []struct {
		arg  string
		want string
	}{
		{"abc", "invalid session id"},
		{"999", "not found"},
		{strconv.FormatInt(noReplay, 10), "has no replay"},
	}
	for _, tt := range tests {
		err := runReplay(replayCmd, []string{tt.arg})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("runReplay(%q) error = %v, expected %q", tt.arg, err, tt.want)
		}
	}
}
