package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/platform/tui"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Open the high score table, starting on the given game.
With --plain the top 10 scores of one game are printed instead, followed
by the game's totals. --clear forgets every score of one game.

Examples:
  termfolio scores
  termfolio scores tetris --plain
  termfolio scores snake --plain --all
  termfolio scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print the top 10 instead of opening the table")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "With --plain, print every score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q, run 'termfolio list' to see available games", gameID)
		}
	}

	a, err := openApp(app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()
	if a.Store == nil {
		return errors.New("scores database is unavailable")
	}

	if flagScoresClear {
		if gameID == "" {
			return errors.New("--clear needs a game")
		}
		if err := a.Store.ClearScores(gameID); err != nil {
			return err
		}
		a.Logger.Info("scores cleared", "game", gameID)
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s\n", gameID)
		return nil
	}

	if !flagScoresPlain {
		w, h := termSize()
		return tui.RunScores(tuiEnv(a, config.DifficultyNormal), gameID, w, h)
	}
	if gameID == "" {
		return errors.New("--plain needs a game")
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = a.Store.AllScores(gameID)
	} else {
		scores, err = a.Store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", gameID)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'termfolio play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := a.Store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "\nBest: %d\n", best)
	}
	if stats, err := a.Store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(out, "Games: %d  Average: %.1f  Total: %d  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.TotalScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
