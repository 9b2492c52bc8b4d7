package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carelink/brainarcade/internal/registry"
	"github.com/carelink/brainarcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show the leaderboard for a board",
	Long: `Display the best rounds for the specified board: highest score first,
fewer moves breaking ties.

Examples:
  brainarcade scores memory
  brainarcade scores memory_hard --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q; run 'brainarcade list' to see available boards", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating board: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	results, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("Leaderboard - %s\n", game.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brainarcade play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-12s  %s\n", "Rank", "Score", "Moves", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "----", "------", "----")

	for i, r := range results {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-5d  %-5d  %-8s  %-12s  %s\n",
			i+1, r.Score, r.Moves, r.Duration.Round(100*time.Millisecond), player,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Best: %d  Fewest moves: %d  Avg moves: %.1f\n",
			stats.GamesCount, stats.HighScore, stats.BestMoves, stats.AvgMoves)
	}
	return nil
}
