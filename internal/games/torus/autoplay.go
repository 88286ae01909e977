package torus

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
)

// Policy picks the next move from the directions that change the board.
// legal is never empty.
type Policy func(legal []engine.Direction) engine.Direction

// RandomPolicy picks a legal direction uniformly using rng.
func RandomPolicy(rng *rand.Rand) Policy {
	return func(legal []engine.Direction) engine.Direction {
		return legal[rng.Intn(len(legal))]
	}
}

// CornerPolicy prefers directions in the given order, the usual
// "keep the big tile in a corner" heuristic.
func CornerPolicy(order ...engine.Direction) Policy {
	return func(legal []engine.Direction) engine.Direction {
		for _, want := range order {
			for _, d := range legal {
				if d == want {
					return d
				}
			}
		}
		return legal[0]
	}
}

// ScriptedPolicy plays script in order, dropping entries that would not
// change the board, then hands over to then.
func ScriptedPolicy(script []engine.Direction, then Policy) Policy {
	script = slices.Clone(script)
	return func(legal []engine.Direction) engine.Direction {
		for len(script) > 0 {
			d := script[0]
			script = script[1:]
			if slices.Contains(legal, d) {
				return d
			}
		}
		return then(legal)
	}
}

// Autoplay drives a reset game with policy until no move is left or
// maxMoves moves were made (0 means no limit). A win is continued past.
func Autoplay(g *Game, policy Policy, maxMoves int) Snapshot {
	for maxMoves <= 0 || g.moves < maxMoves {
		if g.paused || g.tooSmall || g.manager.Over() {
			break
		}

		legal := legalMoves(g.manager.Grid())
		if len(legal) == 0 {
			break
		}

		in := core.NewInputFrame()
		if g.manager.IsTerminated() {
			in.Set(core.ActionContinue)
		}
		in.Set(actionFor(policy(legal)))
		g.Step(in)
	}
	return g.Snapshot()
}

func legalMoves(grid *engine.Grid) []engine.Direction {
	legal := make([]engine.Direction, 0, len(engine.Directions))
	for _, d := range engine.Directions {
		if engine.CanMoveIn(grid, d) {
			legal = append(legal, d)
		}
	}
	return legal
}

func actionFor(d engine.Direction) core.Action {
	switch d {
	case engine.Up:
		return core.ActionUp
	case engine.Right:
		return core.ActionRight
	case engine.Down:
		return core.ActionDown
	case engine.Left:
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}
