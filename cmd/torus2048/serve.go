package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own session with the mode menu. The SSH user name
is the player profile: saved games and best scores follow the user, and all
users share one leaderboard.

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.torus2048/host_key

Examples:
  torus2048 serve                           # Listen on :23234
  torus2048 serve --ssh :2222               # Listen on port 2222
  torus2048 serve --host-key ./my_host_key  # Use specific host key
  torus2048 serve --idle-timeout 10m

Users can connect with:
  ssh <name>@localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagIdleTimeout, "idle-timeout", "", "Idle timeout before disconnecting (e.g. 30m)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)
	if err := applyServeFlags(&cfg.Server); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg, false)
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
	base := tui.Options{
		Config:     cfg,
		Runtime:    runtimeConfig(cfg),
		Store:      store,
		Difficulty: preset,
		Logger:     logger,
	}

	server, err := tui.NewSSHServer(cfg.Server, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Torus 2048 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func applyServeFlags(s *config.ServerConfig) error {
	if flagSSHAddr != "" {
		s.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		s.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout != "" {
		d, err := time.ParseDuration(flagIdleTimeout)
		if err != nil {
			return fmt.Errorf("idle timeout: %w", err)
		}
		s.IdleTimeout = d
	}
	return nil
}
