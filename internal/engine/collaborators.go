package engine

import "sync"

// Source supplies randomness for tile spawning. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Metadata accompanies every actuation.
type Metadata struct {
	Score      int
	Over       bool
	Won        bool
	BestScore  int
	Terminated bool // Over, or won without continuing
}

// Actuator presents the game. Actuate is called after setup and after
// every accepted move; ContinueGame clears a won or lost message.
type Actuator interface {
	Actuate(g *Grid, meta Metadata)
	ContinueGame()
}

// NopActuator discards all presentation calls.
type NopActuator struct{}

// Actuate does nothing.
func (NopActuator) Actuate(*Grid, Metadata) {}

// ContinueGame does nothing.
func (NopActuator) ContinueGame() {}

// StateStore persists the game in progress and the best score.
// GameState returns nil, nil when nothing is saved.
type StateStore interface {
	GameState() (*SavedGame, error)
	SetGameState(state SavedGame) error
	ClearGameState() error
	BestScore() (int, error)
	SetBestScore(score int) error
}

// MemoryStore is an in-process StateStore. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.Mutex
	state []byte
	best  int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// GameState decodes the saved game, if any.
func (s *MemoryStore) GameState() (*SavedGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, nil
	}
	return UnmarshalSavedGame(s.state)
}

// SetGameState stores the encoded game.
func (s *MemoryStore) SetGameState(state SavedGame) error {
	data, err := MarshalSavedGame(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = data
	s.mu.Unlock()
	return nil
}

// ClearGameState forgets the saved game.
func (s *MemoryStore) ClearGameState() error {
	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()
	return nil
}

// BestScore returns the stored best score.
func (s *MemoryStore) BestScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best, nil
}

// SetBestScore replaces the stored best score.
func (s *MemoryStore) SetBestScore(score int) error {
	s.mu.Lock()
	s.best = score
	s.mu.Unlock()
	return nil
}

// RawState returns the encoded saved game, or nil. Used to compare
// persisted bytes.
func (s *MemoryStore) RawState() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	out := make([]byte, len(s.state))
	copy(out, s.state)
	return out
}

// SetRawState replaces the encoded saved game without validation.
func (s *MemoryStore) SetRawState(data []byte) {
	s.mu.Lock()
	s.state = data
	s.mu.Unlock()
}
