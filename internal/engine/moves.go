package engine

import (
	"cmp"
	"slices"
	"sync"
)

var (
	mergePairsOnce sync.Once
	mergePairs     [][2]Position
)

// MergePairs returns every pair of cells that are neighbours in some band
// of some direction. Only these pairs can ever merge, so on a full board a
// move exists iff one of them holds equal values. Pairs are normalized
// (lower position first) and sorted.
func MergePairs() [][2]Position {
	mergePairsOnce.Do(func() {
		seen := make(map[[2]Position]bool)
		for _, dir := range Directions {
			for _, band := range Bands(dir) {
				for k := 0; k+1 < len(band); k++ {
					pair := normalizePair(band[k], band[k+1])
					if !seen[pair] {
						seen[pair] = true
						mergePairs = append(mergePairs, pair)
					}
				}
			}
		}
		slices.SortFunc(mergePairs, func(a, b [2]Position) int {
			if c := comparePos(a[0], b[0]); c != 0 {
				return c
			}
			return comparePos(a[1], b[1])
		})
	})
	return slices.Clone(mergePairs)
}

func normalizePair(a, b Position) [2]Position {
	if comparePos(b, a) < 0 {
		a, b = b, a
	}
	return [2]Position{a, b}
}

func comparePos(a, b Position) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// TileMatchesAvailable reports whether any band-adjacent pair of tiles
// share a value.
func TileMatchesAvailable(g *Grid) bool {
	for _, pair := range MergePairs() {
		a, b := g.CellAt(pair[0]), g.CellAt(pair[1])
		if a != nil && b != nil && a.Value == b.Value {
			return true
		}
	}
	return false
}

// MovesAvailable reports whether any direction can change the board.
func MovesAvailable(g *Grid) bool {
	return g.HasAvailableCells() || TileMatchesAvailable(g)
}

// CanMove answers the same question as MovesAvailable by trying every
// direction on a scratch copy of the grid.
func CanMove(g *Grid) bool {
	for _, dir := range Directions {
		if CanMoveIn(g, dir) {
			return true
		}
	}
	return false
}

// CanMoveIn reports whether a move in dir would change the board.
// g is not modified.
func CanMoveIn(g *Grid, dir Direction) bool {
	moved, _, _ := resolve(g.Clone(), dir)
	return moved
}
