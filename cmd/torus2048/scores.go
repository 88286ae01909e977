package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresMine  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode (classic by default).

Every finished game is recorded: a game over, or a game abandoned with
R while it had points.

Examples:
  torus2048 scores
  torus2048 scores endless --limit 25
  torus2048 scores --mine --profile alice
  torus2048 scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Only show the current profile")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)
	mode := mustResolveMode(args)

	store := mustOpenStore(cfg)
	defer store.Close()

	if flagScoresClear {
		high, err := store.HighScore(mode.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading scores: %v\n", err)
			os.Exit(1)
		}
		if err := store.ClearScores(mode.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scores for %s cleared (high score was %d).\n", mode.Title, high)
		return
	}

	filter := storage.ScoreFilter{GameID: mode.GameID, Limit: flagScoresLimit}
	if flagScoresMine {
		filter.Profile = cfg.Storage.Profile
	}

	scores, err := store.TopScores(filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", mode.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'torus2048 play %s' to set the first high score!\n", mode.Mode)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "----")

	for i, e := range scores {
		tile := fmt.Sprintf("%d", e.MaxTile)
		if e.Won {
			tile += "*"
		}
		fmt.Printf("  %-4d  %-16s  %-8d  %-6s  %-5d  %s\n",
			i+1, e.Profile, e.Score, tile, e.Moves, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(mode.GameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Wins: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	fmt.Println("* reached the win tile")
}
