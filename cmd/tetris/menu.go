package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode interactively",
	Long: `Start with a mode picker. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Session history
  Q            - Quit`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	prepareGame()

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsHistory:
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}
			if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}
		}
	}
}
