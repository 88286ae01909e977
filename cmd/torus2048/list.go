package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/games/torus"
	"github.com/vovakirdan/torus2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows the registered game modes and what they do.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := len("Mode")
	for _, m := range torus.Modes {
		maxIDLen = max(maxIDLen, len(m.Mode))
	}

	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "Mode", "Game ID", "Description")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "----", "-------", "-----------")

	for _, m := range torus.Modes {
		if !registry.Exists(m.GameID) {
			continue
		}
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, m.Mode, m.GameID, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'torus2048 play <mode>' to play.")
}
