package engine

import (
	"encoding/json"
	"fmt"
)

// SavedTile is the persisted form of a tile.
type SavedTile struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

// SavedGrid is the persisted form of a grid. Cells is indexed [x][y];
// empty cells are null.
type SavedGrid struct {
	Size  int            `json:"size"`
	Cells [][]*SavedTile `json:"cells"`
}

// SavedGame is the persisted form of a game in progress.
type SavedGame struct {
	Grid        SavedGrid `json:"grid"`
	Score       int       `json:"score"`
	Over        bool      `json:"over"`
	Won         bool      `json:"won"`
	KeepPlaying bool      `json:"keepPlaying"`
}

// Validate checks the saved game against the board invariants.
func (s SavedGame) Validate() error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrMalformedState, s.Score)
	}
	return s.Grid.Validate()
}

// Validate checks dimensions, tile values and that every tile sits in the
// cell matching its recorded position.
func (s SavedGrid) Validate() error {
	if s.Size != Size {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, s.Size, Size)
	}
	if len(s.Cells) != Size {
		return fmt.Errorf("%w: %d columns", ErrMalformedState, len(s.Cells))
	}
	for x, col := range s.Cells {
		if len(col) != Size {
			return fmt.Errorf("%w: column %d has %d cells", ErrMalformedState, x, len(col))
		}
		for y, st := range col {
			if st == nil {
				continue
			}
			if !st.Position.Equal(Pos(x, y)) {
				return fmt.Errorf("%w: tile at %v records position %v", ErrMalformedState, Pos(x, y), st.Position)
			}
			if !IsTileValue(st.Value) {
				return fmt.Errorf("%w: invalid tile value %d at %v", ErrMalformedState, st.Value, Pos(x, y))
			}
		}
	}
	return nil
}

// IsTileValue reports whether v is a power of two no smaller than 2.
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// MarshalSavedGame encodes a saved game as JSON.
func MarshalSavedGame(s SavedGame) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSavedGame decodes and validates a saved game.
func UnmarshalSavedGame(data []byte) (*SavedGame, error) {
	var s SavedGame
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
