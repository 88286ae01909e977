package torus

import "github.com/vovakirdan/torus2048/internal/engine"

// StateType names the phase a game is in.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateWon         StateType = "won"
	StateGameOver    StateType = "game_over"
	StatePaused      StateType = "paused"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing,
// headless runs and replay.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Score     int
	BestScore int
	Moves     int
	Board     [engine.Size][engine.Size]int // Indexed [x][y]; 0 is empty
	MaxTile   int
	State     StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.manager.Over():
		state = StateGameOver
	case g.manager.IsTerminated():
		state = StateWon
	}

	st := g.State()
	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Score:     st.Score,
		BestScore: st.BestScore,
		Moves:     g.moves,
		Board:     g.manager.Grid().Values(),
		MaxTile:   st.MaxTile,
		State:     state,
	}
}
