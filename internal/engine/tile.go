package engine

// Tile is a numbered tile on the board.
//
// A merge never mutates its sources: it produces a new Tile whose MergedFrom
// holds the two consumed tiles. Tiles that only slide keep their identity,
// which is what move detection compares against.
type Tile struct {
	Position

	// PreviousPosition is the cell the tile occupied before the current
	// move. Nil for tiles created during the move.
	PreviousPosition *Position

	Value int

	// MergedFrom is nil or the two tiles combined into this one during the
	// current move.
	MergedFrom []*Tile
}

// NewTile creates a tile with no previous position and no merge provenance.
func NewTile(pos Position, value int) *Tile {
	return &Tile{Position: pos, Value: value}
}

// SavePosition snapshots the current position for animation.
func (t *Tile) SavePosition() {
	prev := t.Position
	t.PreviousPosition = &prev
}

// UpdatePosition moves the tile. PreviousPosition is left untouched.
func (t *Tile) UpdatePosition(pos Position) {
	t.Position = pos
}

// Merged reports whether the tile was produced by a merge this move.
func (t *Tile) Merged() bool {
	return len(t.MergedFrom) > 0
}

// Serialize returns the persisted form. Provenance and previous position
// are transient and not included.
func (t *Tile) Serialize() SavedTile {
	return SavedTile{Position: t.Position, Value: t.Value}
}
