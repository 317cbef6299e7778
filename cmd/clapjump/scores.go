package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/registry"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 runs for the specified game, with how many claps
each run used and whether it was won.

Examples:
  clapjump scores pony
  clapjump scores flappy
  clapjump scores pony --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score for the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'clapjump list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID, gameOptions())
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store := mustOpenStore()
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Scores for %s cleared.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'clapjump play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-6s  %s\n", "Rank", "Score", "Claps", "Input", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-6s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-8s  %-6s  %s\n", i+1, entry.Score, entry.Claps, entry.Input, result, dateStr)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Best: %d  Runs: %d  Wins: %d  Avg: %.1f  Claps: %d\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore, stats.TotalClaps)
	}
}
