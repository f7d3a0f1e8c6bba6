package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

--clear deletes every recorded run for the game and forgets its stored
best score.

Examples:
  codekriti scores brickbreaker
  codekriti scores brickbreaker --limit 25
  codekriti scores brickbreaker --all
  codekriti scores brickbreaker --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded runs and the stored best score")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "clear")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'codekriti list' to see available scenes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Fatal("could not create scene", "game", gameID, "err", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("could not open scores database", "path", flagDBPath, "err", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := clearScores(store, gameID); err != nil {
			logger.Error("could not clear scores", "game", gameID, "err", err)
			return
		}
		logger.Info("scores cleared", "game", gameID)
		return
	}

	limit := flagScoresLimit
	if flagScoresAll {
		limit = 0
	}
	if err := printScores(os.Stdout, store, gameID, game.Title(), limit); err != nil {
		logger.Error("could not read scores", "game", gameID, "err", err)
	}
}

// clearScores drops the run history for gameID. The brick breaker's best
// score lives in the key-value table and is removed with it, so the next
// game starts from zero.
func clearScores(store *storage.Store, gameID string) error {
	err := store.ClearScores(gameID)
	if gameID == "brickbreaker" {
		err = errors.Join(err, store.Delete(brickbreaker.HighScoreKey))
	}
	return err
}

// printScores writes the score table. A limit of 0 lists every run.
func printScores(w io.Writer, store *storage.Store, gameID, title string, limit int) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if limit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'codekriti play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Fprintf(w, "Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
