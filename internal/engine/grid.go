package engine

import (
	"fmt"
	"iter"
	"slices"
)

// Grid is the Size×Size board. Cells are indexed [x][y].
type Grid struct {
	cells [Size][Size]*Tile
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// GridFromSaved rebuilds a grid from its persisted form.
func GridFromSaved(s SavedGrid) (*Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := NewGrid()
	for x := range Size {
		for y := range Size {
			if st := s.Cells[x][y]; st != nil {
				g.cells[x][y] = NewTile(st.Position, st.Value)
			}
		}
	}
	return g, nil
}

// GridFromValues builds a grid from a value matrix indexed [x][y].
// Zero means empty.
func GridFromValues(values [Size][Size]int) *Grid {
	g := NewGrid()
	for x := range Size {
		for y := range Size {
			if values[x][y] != 0 {
				g.cells[x][y] = NewTile(Pos(x, y), values[x][y])
			}
		}
	}
	return g
}

// WithinBounds reports whether pos is on the board.
func (g *Grid) WithinBounds(pos Position) bool {
	return pos.Valid()
}

// CellAt returns the tile at pos, or nil when the cell is empty or pos is
// off the board.
func (g *Grid) CellAt(pos Position) *Tile {
	if !g.WithinBounds(pos) {
		return nil
	}
	return g.cells[pos.X][pos.Y]
}

// CellAvailable reports whether pos is on the board and empty.
func (g *Grid) CellAvailable(pos Position) bool {
	return g.WithinBounds(pos) && g.cells[pos.X][pos.Y] == nil
}

// Insert places tile at its position, replacing any occupant.
// The caller guarantees the cell is empty.
func (g *Grid) Insert(tile *Tile) {
	g.mustBeWithin(tile.Position)
	g.cells[tile.X][tile.Y] = tile
}

// Remove clears the cell at the tile's position.
func (g *Grid) Remove(tile *Tile) {
	g.mustBeWithin(tile.Position)
	g.cells[tile.X][tile.Y] = nil
}

func (g *Grid) clear(pos Position) {
	g.mustBeWithin(pos)
	g.cells[pos.X][pos.Y] = nil
}

// An out-of-bounds mutation is a bug in the caller, not a runtime condition.
func (g *Grid) mustBeWithin(pos Position) {
	if !g.WithinBounds(pos) {
		panic(fmt.Sprintf("engine: position %v outside %dx%d grid", pos, Size, Size))
	}
}

// AvailableCells yields every empty position, x-major then y.
// Each range over the sequence rescans the grid.
func (g *Grid) AvailableCells() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for x := range Size {
			for y := range Size {
				if pos := Pos(x, y); g.CellAvailable(pos) && !yield(pos) {
					return
				}
			}
		}
	}
}

// HasAvailableCells reports whether at least one cell is empty.
func (g *Grid) HasAvailableCells() bool {
	for range g.AvailableCells() {
		return true
	}
	return false
}

// RandomAvailableCell picks an empty cell uniformly at random.
// Returns false when the board is full.
func (g *Grid) RandomAvailableCell(src Source) (Position, bool) {
	cells := slices.Collect(g.AvailableCells())
	if len(cells) == 0 {
		return Position{}, false
	}
	return cells[src.Intn(len(cells))], true
}

// EachCell calls fn for every cell, empty ones included, x-major.
func (g *Grid) EachCell(fn func(pos Position, tile *Tile)) {
	for x := range Size {
		for y := range Size {
			fn(Pos(x, y), g.cells[x][y])
		}
	}
}

// Tiles returns the number of occupied cells.
func (g *Grid) Tiles() int {
	n := 0
	g.EachCell(func(_ Position, t *Tile) {
		if t != nil {
			n++
		}
	})
	return n
}

// MaxValue returns the highest tile value, or 0 for an empty grid.
func (g *Grid) MaxValue() int {
	maxVal := 0
	g.EachCell(func(_ Position, t *Tile) {
		if t != nil && t.Value > maxVal {
			maxVal = t.Value
		}
	})
	return maxVal
}

// Values returns the value matrix indexed [x][y], 0 for empty cells.
func (g *Grid) Values() [Size][Size]int {
	var v [Size][Size]int
	g.EachCell(func(pos Position, t *Tile) {
		if t != nil {
			v[pos.X][pos.Y] = t.Value
		}
	})
	return v
}

// Clone returns a deep copy holding fresh tiles with the same positions and
// values. Transient animation fields are not copied.
func (g *Grid) Clone() *Grid {
	return GridFromValues(g.Values())
}

// Serialize returns the persisted form of the grid.
func (g *Grid) Serialize() SavedGrid {
	cells := make([][]*SavedTile, Size)
	for x := range Size {
		cells[x] = make([]*SavedTile, Size)
		for y := range Size {
			if t := g.cells[x][y]; t != nil {
				st := t.Serialize()
				cells[x][y] = &st
			}
		}
	}
	return SavedGrid{Size: Size, Cells: cells}
}
