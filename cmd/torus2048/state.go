package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/engine"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show or clear a saved game",
	Long: `Inspect the game in progress that is saved for a profile.

Examples:
  torus2048 state show
  torus2048 state show endless --profile alice
  torus2048 state clear classic`,
}

var stateShowCmd = &cobra.Command{
	Use:   "show [mode]",
	Short: "Print the saved board and score",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStateShow,
}

var stateClearCmd = &cobra.Command{
	Use:   "clear [mode]",
	Short: "Discard the saved game; the next game starts fresh",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStateClear,
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)
}

func runStateShow(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)
	mode := mustResolveMode(args)

	store := mustOpenStore(cfg)
	defer store.Close()

	profile := store.Profile(cfg.Storage.Profile, mode.GameID)
	out := termenv.NewOutput(os.Stdout)

	fmt.Fprintf(out, "%s - profile %s\n\n", mode.Title, profile.Name())

	best, err := profile.BestScore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading best score: %v\n", err)
		os.Exit(1)
	}

	saved, err := profile.GameState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "The saved game is unreadable; it will be replaced by a new game.")
		os.Exit(1)
	}
	if saved == nil {
		fmt.Fprintln(out, "No saved game.")
		fmt.Fprintf(out, "Best: %d\n", best)
		return
	}

	grid, err := engine.GridFromSaved(saved.Grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printBoard(out, grid.Values())
	fmt.Fprintln(out)
	maxTile := grid.MaxValue()
	fmt.Fprintf(out, "Score: %d  Best: %d  Max tile: %s\n", saved.Score, best, highlight(out, maxTile, fmt.Sprint(maxTile)))

	switch {
	case saved.Over:
		fmt.Fprintln(out, "State: game over")
	case saved.Won && !saved.KeepPlaying:
		fmt.Fprintln(out, "State: won, waiting to continue")
	case saved.Won:
		fmt.Fprintln(out, "State: won, playing on")
	default:
		fmt.Fprintln(out, "State: playing")
	}
	fmt.Fprintf(out, "Moves left: %t\n", engine.MovesAvailable(grid))
}

func runStateClear(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)
	mode := mustResolveMode(args)

	store := mustOpenStore(cfg)
	defer store.Close()

	profile := store.Profile(cfg.Storage.Profile, mode.GameID)
	if err := profile.ClearGameState(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing saved game: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s game for %s cleared.\n", mode.Mode, profile.Name())
}
