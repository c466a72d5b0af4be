package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagClear bool
	flagMine  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard or a player's stats",
	Long: `Display the top scores across all players, or statistics for one player.

Examples:
  neonflip scores
  neonflip scores --limit 25
  neonflip scores --mine --player neo
  neonflip scores --clear --player neo`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Show stats and recent runs for --player")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of --player")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "neonflip")
	if err != nil {
		fail("%v", err)
	}

	store, board, err := openBoard(cfg, logger)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	switch {
	case flagClear:
		if err := store.ClearScores(ctx, flagPlayer); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s\n", flagPlayer)

	case flagMine:
		stats, err := store.Stats(ctx, flagPlayer)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Stats - %s\n\n", flagPlayer)
		if stats.GamesCount == 0 {
			fmt.Println("No scores recorded yet.")
			return
		}
		fmt.Printf("  Games:    %d\n", stats.GamesCount)
		fmt.Printf("  Best:     %d\n", stats.HighScore)
		fmt.Printf("  Average:  %.1f\n", stats.AvgScore)
		fmt.Printf("  Total:    %d\n", stats.TotalScore)
		fmt.Printf("  Last run: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))

		if score, ok, err := store.Pending(ctx, flagPlayer); err == nil && ok {
			fmt.Printf("  Pending:  %d (not yet submitted)\n", score)
		}
		if left, err := board.AutoplaysLeft(ctx, flagPlayer); err == nil {
			fmt.Printf("  Autoplays left: %d\n", left)
		}

		recent, err := store.PlayerScores(ctx, flagPlayer, flagLimit)
		if err != nil || len(recent) == 0 {
			return
		}
		fmt.Println()
		fmt.Printf("  %-10s  %s\n", "Score", "Date")
		fmt.Printf("  %-10s  %s\n", "-----", "----")
		for _, e := range recent {
			fmt.Printf("  %-10d  %s\n", e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
		}

	default:
		entries, err := board.Top(ctx, flagLimit)
		if err != nil {
			store.Close()
			fail("retrieving scores: %v", err)
		}

		fmt.Println("High Scores - Neon Flip")
		fmt.Println()

		if len(entries) == 0 {
			fmt.Println("No scores recorded yet.")
			fmt.Println()
			fmt.Println("Play 'neonflip play' to set the first high score!")
			return
		}

		fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
		fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")
		for _, e := range entries {
			fmt.Printf("  %-4d  %-16s  %-10d  %s\n", e.Rank, e.Player, e.Score, e.At.Format("2006-01-02 15:04"))
		}
	}
}
