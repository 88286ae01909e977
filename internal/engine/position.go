// Package engine implements move resolution for 2048 on a toroidal board.
// It has no UI or storage dependencies: rendering, input and persistence are
// reached through the Actuator and StateStore interfaces.
package engine

import "fmt"

// Size is the board dimension. The band mapping is defined for 4 only.
const Size = 4

// Position is a cell coordinate. X indexes the outer array of the grid
// (cells[x][y]), Y the inner one.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Equal reports whether both coordinates match.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Valid reports whether the position lies on a Size×Size board.
func (p Position) Valid() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
