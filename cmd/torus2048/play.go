package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start playing. Without a mode a menu lets you pick the mode and
difficulty and browse high scores.

A game in progress is saved after every move and resumed next time.

Controls:
  Arrows/WASD/HJKL  - Slide tiles (edges wrap around)
  C                 - Keep playing after a win
  R                 - New game
  P                 - Pause
  Esc/B             - Back to menu
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  torus2048 play
  torus2048 play classic
  torus2048 play endless --difficulty easy
  torus2048 play --profile alice --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)

	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	preset, _ := config.ParseDifficulty(flagDifficulty)
	opts := tui.Options{
		Config:        cfg,
		Runtime:       runtimeConfig(cfg),
		Store:         store,
		Profile:       cfg.Storage.Profile,
		Difficulty:    preset,
		Logger:        logger,
		ScreenshotDir: filepath.Join(filepath.Dir(expandHome(cfg.Storage.Path)), "screenshots"),
	}

	if len(args) == 0 {
		err = tui.RunSession(opts)
	} else {
		mode := mustResolveMode(args)
		game, gameErr := tui.NewGame(mode.GameID, opts)
		if gameErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", gameErr)
			os.Exit(1)
		}
		err = tui.Run(game, opts)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
