package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultStartTiles      = 2
	DefaultFourProbability = 0.1
	DefaultWinValue        = 2048
)

// Options configures a Manager. Zero fields fall back to the defaults; a
// nil Store keeps state in memory and a nil Actuator discards output.
type Options struct {
	StartTiles      int
	FourProbability float64
	WinValue        int

	Rand     Source
	Store    StateStore
	Actuator Actuator
	Logger   *log.Logger
}

// MoveResult describes the outcome of one move request.
type MoveResult struct {
	Moved      bool
	ScoreDelta int
	Merges     int
	Spawned    *Tile // Nil when the move was rejected or the board was full
}

// Manager owns a game and resolves moves. It is not safe for concurrent use.
type Manager struct {
	startTiles      int
	fourProbability float64
	winValue        int

	rng      Source
	store    StateStore
	actuator Actuator
	logger   *log.Logger

	grid        *Grid
	score       int
	over        bool
	won         bool
	keepPlaying bool
}

// NewManager creates a manager. Call Setup before the first move.
func NewManager(opts Options) *Manager {
	m := &Manager{
		startTiles:      opts.StartTiles,
		fourProbability: opts.FourProbability,
		winValue:        opts.WinValue,
		rng:             opts.Rand,
		store:           opts.Store,
		actuator:        opts.Actuator,
		logger:          opts.Logger,
		grid:            NewGrid(),
	}
	if m.startTiles <= 0 {
		m.startTiles = DefaultStartTiles
	}
	if m.fourProbability <= 0 {
		m.fourProbability = DefaultFourProbability
	}
	if m.winValue <= 0 {
		m.winValue = DefaultWinValue
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.actuator == nil {
		m.actuator = NopActuator{}
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Setup restores the saved game from the store, or starts a fresh one when
// nothing usable is saved, then actuates.
func (m *Manager) Setup() {
	if !m.restore() {
		m.grid = NewGrid()
		m.score = 0
		m.over = false
		m.won = false
		m.keepPlaying = false
		m.addStartTiles()
	}
	m.actuate()
}

func (m *Manager) restore() bool {
	saved, err := m.store.GameState()
	if err != nil {
		m.logger.Warn("discarding saved game", "error", err)
		return false
	}
	if saved == nil {
		return false
	}
	if err := saved.Validate(); err != nil {
		m.logger.Warn("discarding saved game", "error", err)
		return false
	}
	grid, err := GridFromSaved(saved.Grid)
	if err != nil {
		m.logger.Warn("discarding saved game", "error", err)
		return false
	}

	m.grid = grid
	m.score = saved.Score
	m.over = saved.Over
	m.won = saved.Won
	m.keepPlaying = saved.KeepPlaying
	m.logger.Debug("restored saved game", "score", m.score, "tiles", grid.Tiles())
	return true
}

// Restart discards the current game and starts a new one.
func (m *Manager) Restart() {
	if err := m.store.ClearGameState(); err != nil {
		m.logger.Warn("cannot clear saved game", "error", err)
	}
	m.actuator.ContinueGame()
	m.restartFresh()
}

// restartFresh starts a new game without consulting the store.
func (m *Manager) restartFresh() {
	m.grid = NewGrid()
	m.score = 0
	m.over = false
	m.won = false
	m.keepPlaying = false
	m.addStartTiles()
	m.actuate()
}

// KeepPlaying lets play continue after a win. It has no effect before the
// game is won.
func (m *Manager) KeepPlaying() {
	if !m.won || m.keepPlaying {
		return
	}
	m.keepPlaying = true
	m.actuator.ContinueGame()
	m.actuate()
}

// IsTerminated reports whether moves are currently refused: the game is
// lost, or won and not continued.
func (m *Manager) IsTerminated() bool {
	return m.over || (m.won && !m.keepPlaying)
}

func (m *Manager) addStartTiles() {
	for range m.startTiles {
		m.addRandomTile()
	}
}

// addRandomTile spawns a 2 or 4 on a random empty cell.
func (m *Manager) addRandomTile() *Tile {
	pos, ok := m.grid.RandomAvailableCell(m.rng)
	if !ok {
		return nil
	}
	value := 2
	if m.rng.Float64() < m.fourProbability {
		value = 4
	}
	tile := NewTile(pos, value)
	m.grid.Insert(tile)
	return tile
}

// prepareTiles clears merge provenance and records positions for animation.
func (m *Manager) prepareTiles() {
	m.grid.EachCell(func(_ Position, t *Tile) {
		if t != nil {
			t.MergedFrom = nil
			t.SavePosition()
		}
	})
}

// Move resolves a move in dir. A move that changes nothing, an invalid
// direction or a terminated game leaves the state untouched.
func (m *Manager) Move(dir Direction) MoveResult {
	if m.IsTerminated() || !dir.Valid() {
		return MoveResult{}
	}
	// Tried on a copy first so a no-op move leaves tile history untouched.
	if !CanMoveIn(m.grid, dir) {
		return MoveResult{}
	}

	m.prepareTiles()
	moved, delta, merges := resolve(m.grid, dir)
	if !moved {
		return MoveResult{}
	}

	m.score += delta
	if m.grid.MaxValue() >= m.winValue {
		m.won = true
	}

	spawned := m.addRandomTile()

	if !MovesAvailable(m.grid) {
		m.over = true
	}

	m.logger.Debug("move",
		"direction", dir,
		"delta", delta,
		"merges", merges,
		"score", m.score,
		"over", m.over,
		"won", m.won,
	)

	m.actuate()

	return MoveResult{
		Moved:      true,
		ScoreDelta: delta,
		Merges:     merges,
		Spawned:    spawned,
	}
}

// actuate updates the best score, persists or clears the game and notifies
// the actuator.
func (m *Manager) actuate() {
	best, err := m.store.BestScore()
	switch {
	case err != nil:
		// An unreadable best must not be overwritten by a lower score.
		m.logger.Warn("cannot read best score", "error", err)
		best = max(best, m.score)
	case best < m.score:
		best = m.score
		if err := m.store.SetBestScore(best); err != nil {
			m.logger.Warn("cannot save best score", "error", err)
		}
	}

	if m.over {
		if err := m.store.ClearGameState(); err != nil {
			m.logger.Warn("cannot clear saved game", "error", err)
		}
	} else if err := m.store.SetGameState(m.Serialize()); err != nil {
		m.logger.Warn("cannot save game", "error", err)
	}

	m.actuator.Actuate(m.grid, Metadata{
		Score:      m.score,
		Over:       m.over,
		Won:        m.won,
		BestScore:  best,
		Terminated: m.IsTerminated(),
	})
}

// Serialize returns the persisted form of the game.
func (m *Manager) Serialize() SavedGame {
	return SavedGame{
		Grid:        m.grid.Serialize(),
		Score:       m.score,
		Over:        m.over,
		Won:         m.won,
		KeepPlaying: m.keepPlaying,
	}
}

// Grid returns the live board. Callers must not mutate it.
func (m *Manager) Grid() *Grid { return m.grid }

// Score returns the current score.
func (m *Manager) Score() int { return m.score }

// Over reports whether no moves remain.
func (m *Manager) Over() bool { return m.over }

// Won reports whether the win tile has been reached this game.
func (m *Manager) Won() bool { return m.won }

// KeepPlayingSet reports whether play was continued after a win.
func (m *Manager) KeepPlayingSet() bool { return m.keepPlaying }

// WinValue returns the tile value that wins the game.
func (m *Manager) WinValue() int { return m.winValue }

// BestScore returns the stored best score, never less than the current
// score.
func (m *Manager) BestScore() int {
	best, err := m.store.BestScore()
	if err != nil {
		m.logger.Warn("cannot read best score", "error", err)
	}
	return max(best, m.score)
}
