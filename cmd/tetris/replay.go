package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Re-simulate a stored session",
	Long: `Load the replay of a finished session, run it through the engine again and
print the final board. The result is checked against the stored line count.

Examples:
  tetris history
  tetris replay 12`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	logger, err := newLogger(cmd.ErrOrStderr(), "replay")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.SessionByID(id)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session %d not found", id)
	}
	if !sess.HasReplay {
		return fmt.Errorf("session %d has no replay", id)
	}

	r, err := engine.UnmarshalReplay(sess.Replay)
	if err != nil {
		return err
	}
	logger.Debug("replaying", "session", id, "ticks", r.Ticks(), "seed", r.Config.Seed, "shapes", len(r.Shapes))

	snap, err := engine.Run(r, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, snap.String())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Session %d (%s, seed %d): %d lines, %d pieces in %s\n",
		id, sess.GameID, r.Config.Seed, snap.LinesCleared, snap.PiecesLocked, r.Duration().Round(time.Millisecond))

	if snap.LinesCleared != sess.Lines || snap.PiecesLocked != sess.Pieces {
		return fmt.Errorf("replay diverged: stored %d lines and %d pieces, simulated %d and %d",
			sess.Lines, sess.Pieces, snap.LinesCleared, snap.PiecesLocked)
	}
	fmt.Fprintln(out, "Replay matches the stored result.")
	return nil
}
