// torus2048 is 2048 on a toroidal board, played in the terminal or over SSH.
//
// Usage:
//
//	torus2048 play [mode]        - Play, with a mode menu when no mode is given
//	torus2048 serve              - Start SSH server for remote play
//	torus2048 scores [mode]      - Show high scores
//	torus2048 list               - List game modes
//	torus2048 state show|clear   - Inspect or discard a saved game
//	torus2048 sim [mode]         - Headless self-play
//	torus2048 config show        - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.torus2048/config.yaml, ./configs/torus2048.yaml)
//	--fps <rate>         - Set tick rate
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path
//	--profile <name>     - Player profile for local play
//	--difficulty <name>  - Rules preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/games/torus"
	"github.com/vovakirdan/torus2048/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "torus2048",
	Short: "Torus 2048 - 2048 on a board whose edges wrap around",
	Long: `Torus 2048 is the sliding tile game played on a torus: tiles that
leave one edge of the board come back on the opposite edge.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show the game modes
  state    - Show or clear a saved game
  sim      - Let the computer play
  config   - Show the effective configuration

Examples:
  torus2048 play
  torus2048 play endless --difficulty hard
  torus2048 serve --ssh :2222
  torus2048 scores classic --mine
  torus2048 sim --games 20 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Player profile (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagProfile != "" {
		cfg.Storage.Profile = flagProfile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyDifficulty(&cfg, preset)

	return cfg, cfg.Validate()
}

// mustLoadConfig is loadConfig for commands that cannot run without one.
func mustLoadConfig(cmd *cobra.Command) config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the application logger. While a full-screen program owns
// the terminal, logs go to the configured file or nowhere.
func newLogger(cfg config.Config, fullscreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(expandHome(cfg.Log.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case fullscreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "torus2048",
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the database. Play continues without one, as scores and
// saved games are optional.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("running without storage", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits; for commands that only read it.
func mustOpenStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Display.FPS
	rc.Seed = flagSeed
	return rc
}

// resolveMode accepts a mode name ("classic", "endless") or a game ID.
// The empty string selects classic.
func resolveMode(arg string) (torus.ModeInfo, error) {
	if arg == "" {
		return torus.Modes[0], nil
	}
	for _, m := range torus.Modes {
		if strings.EqualFold(arg, string(m.Mode)) || arg == m.GameID {
			return m, nil
		}
	}
	return torus.ModeInfo{}, fmt.Errorf("unknown mode %q (run 'torus2048 list')", arg)
}

// mustResolveMode resolves the optional first argument or exits.
func mustResolveMode(args []string) torus.ModeInfo {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	mode, err := resolveMode(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return mode
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
