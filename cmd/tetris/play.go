package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. The mode defaults to "tetris".

Controls:
  Left/Right, h/l  - Move
  Down, j          - Soft drop
  Space            - Hard drop
  Up, x            - Rotate clockwise
  z                - Rotate counter-clockwise
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower gravity and a longer lock delay
  normal - Delays from the config file
  hard   - Twice as fast
  fixed  - Standard 700ms gravity and 500ms lock delay, ignoring the config file

Examples:
  tetris play
  tetris play tetris_bag
  tetris play --difficulty hard
  tetris play --config ./wide.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// prepareGame validates the config flags before a full-screen program takes the terminal.
func prepareGame() {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		exitf("%v", err)
	}
	if _, err := config.LoadTetris(flagConfig); err != nil {
		exitf("%v", err)
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
}

func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the session database. The game still runs without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		logger.Warn("session database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	prepareGame()

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	store := openStore(logger)
	runErr := tui.Run(game, store, terminalConfig(), tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		exitf("running game: %v", runErr)
	}
}
