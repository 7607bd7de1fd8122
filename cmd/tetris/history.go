package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryBest  bool
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show finished sessions",
	Long: `List finished sessions, most recent first, followed by per-mode statistics.
Without a mode every mode is shown.

Examples:
  tetris history
  tetris history tetris_bag --best
  tetris history --tui
  tetris history tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Sort by lines cleared instead of date")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse sessions interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the stored sessions of the mode")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			exitf("unknown mode %q", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening session database: %v", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if gameID == "" {
			store.Close()
			exitf("--clear needs a mode")
		}
		if err := store.ClearSessions(gameID); err != nil {
			store.Close()
			exitf("%v", err)
		}
		fmt.Printf("Cleared sessions of %s.\n", gameID)

	case flagHistoryTUI:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			exitf("%v", err)
		}

	default:
		if err := printHistory(store, gameID); err != nil {
			store.Close()
			exitf("%v", err)
		}
	}
}

func printHistory(store *storage.Store, gameID string) error {
	var (
		sessions []storage.Session
		err      error
	)
	if flagHistoryBest {
		sessions, err = store.BestSessions(gameID, flagHistoryLimit)
	} else {
		sessions, err = store.RecentSessions(gameID, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris play' and finish a game to record one.")
		return nil
	}

	fmt.Printf("  %-6s  %-12s  %6s  %6s  %6s  %-16s  %s\n", "ID", "Mode", "Lines", "Pieces", "Time", "Date", "Replay")
	fmt.Printf("  %-6s  %-12s  %6s  %6s  %6s  %-16s  %s\n", "--", "----", "-----", "------", "----", "----", "------")
	for _, s := range sessions {
		replay := "-"
		if s.HasReplay {
			replay = "yes"
		}
		secs := int(s.Duration.Seconds())
		fmt.Printf("  %-6d  %-12s  %6d  %6d  %3d:%02d  %-16s  %s\n",
			s.ID, s.GameID, s.Lines, s.Pieces, secs/60, secs%60,
			s.CreatedAt.Format("2006-01-02 15:04"), replay)
	}

	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if gameID == "" || id == gameID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("%s: %d games, best %d lines, avg %.1f, %d lines and %d pieces in total\n",
			id, st.Games, st.BestLines, st.AvgLines, st.TotalLines, st.TotalPieces)
	}
	return nil
}
