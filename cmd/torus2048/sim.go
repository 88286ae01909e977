package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
	"github.com/vovakirdan/torus2048/internal/games/torus"
	"github.com/vovakirdan/torus2048/internal/registry"
)

var (
	flagSimGames    int
	flagSimMaxMoves int
	flagSimPolicy   string
	flagSimBoard    bool
	flagSimMoves    string
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Let the computer play",
	Long: `Play games headlessly with a simple policy and report the results.
Nothing is saved. The same --seed always produces the same games.

Policies:
  random  - pick a legal move at random
  corner  - prefer down, left, right, up

--moves plays a fixed opening first. Entries that would not change the
board are dropped, then the policy takes over.

Examples:
  torus2048 sim
  torus2048 sim --games 100 --seed 7
  torus2048 sim endless --policy corner --board
  torus2048 sim --games 1 --moves up,up,left --max-moves 3 --board`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = play to the end)")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", "random", "Move policy: random, corner")
	simCmd.Flags().BoolVar(&flagSimBoard, "board", false, "Print the final board of each game")
	simCmd.Flags().StringVar(&flagSimMoves, "moves", "", "Opening moves, comma separated (up,right,down,left)")
}

func runSim(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)
	mode := mustResolveMode(args)

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opening, err := parseMoves(flagSimMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := termenv.NewOutput(os.Stdout)
	fmt.Fprintf(out, "%s: %d games, policy %s, seed %d\n\n", mode.Title, flagSimGames, flagSimPolicy, seed)

	var total, best, bestTile, wins int
	for i := range flagSimGames {
		gameSeed := seed + int64(i)
		policy, err := simPolicy(flagSimPolicy, gameSeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(opening) > 0 {
			policy = torus.ScriptedPolicy(opening, policy)
		}

		game, err := newSimGame(mode.GameID, cfg, logger, gameSeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}

		snap := torus.Autoplay(game, policy, flagSimMaxMoves)
		won := game.Manager().Won()
		logger.Debug("sim game finished", "seed", gameSeed, "score", snap.Score, "max_tile", snap.MaxTile)

		total += snap.Score
		best = max(best, snap.Score)
		bestTile = max(bestTile, snap.MaxTile)
		if won {
			wins++
		}

		mark := ""
		if won {
			mark = " won"
		}
		fmt.Fprintf(out, "#%-3d seed %-20d score %-7d max %s  moves %-5d %s%s\n",
			i+1, gameSeed, snap.Score, highlight(out, snap.MaxTile, fmt.Sprintf("%-5d", snap.MaxTile)),
			snap.Moves, snap.State, mark)
		if flagSimBoard {
			printBoard(out, snap.Board)
			fmt.Fprintln(out)
		}
	}

	if flagSimGames > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Average %.1f  Best %d  Best tile %s  Wins %d/%d\n",
			float64(total)/float64(flagSimGames), best, highlight(out, bestTile, fmt.Sprint(bestTile)), wins, flagSimGames)
	}
}

// newSimGame builds a game that keeps everything in memory and skips
// animation, so every step is one move.
func newSimGame(gameID string, cfg config.Config, logger *log.Logger, seed int64) (*torus.Game, error) {
	g, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	game, ok := g.(*torus.Game)
	if !ok {
		return nil, fmt.Errorf("game %q cannot be simulated", gameID)
	}

	cfg.Display.Animations = false
	game.Configure(cfg)
	game.AttachStore(engine.NewMemoryStore())
	game.SetLogger(logger)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: cfg.Display.FPS, Seed: seed})
	return game, nil
}

func simPolicy(name string, seed int64) (torus.Policy, error) {
	switch name {
	case "random":
		return torus.RandomPolicy(rand.New(rand.NewSource(seed))), nil
	case "corner":
		return torus.CornerPolicy(engine.Down, engine.Left, engine.Right, engine.Up), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (random, corner)", name)
	}
}

// parseMoves reads a comma separated list of direction names.
func parseMoves(s string) ([]engine.Direction, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var moves []engine.Direction
	for _, name := range strings.Split(s, ",") {
		d, ok := engine.ParseDirection(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown move %q (up, right, down, left)", name)
		}
		moves = append(moves, d)
	}
	return moves, nil
}
