package engine

// Direction is a move direction. The numbering matches the persisted and
// wire representation: 0 up, 1 right, 2 down, 3 left.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four valid directions in numeric order.
var Directions = [...]Direction{Up, Right, Down, Left}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "invalid"
	}
}

// Delta is the one-cell step a tile takes when moving in d, with y growing
// downward. Steps wrap around the board edges.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Wrap reduces a coordinate onto the board.
func Wrap(v int) int {
	return ((v % Size) + Size) % Size
}

// ParseDirection converts a name ("up", "right", "down", "left") to a
// Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return -1, false
}

// Band is one toroidal line of cells, ordered so that index 0 is the cell
// tiles collapse toward.
type Band [Size]Position

// bandCell maps a lane (0 or 1) and a travel index k to a board cell.
type bandCell func(lane, k int) Position

// bandMappings holds, per direction, the cell functions for band A and
// band B. Band B always sits two lanes over from band A.
var bandMappings = map[Direction][2]bandCell{
	Up: {
		func(i, k int) Position { return Pos(i, (k+3)%4) },
		func(i, k int) Position { return Pos(i+2, (k+1)%4) },
	},
	Down: {
		func(i, k int) Position { return Pos(i, (6-k)%4) },
		func(i, k int) Position { return Pos(i+2, (4-k)%4) },
	},
	Right: {
		func(j, k int) Position { return Pos((4-k)%4, j) },
		func(j, k int) Position { return Pos((6-k)%4, j+2) },
	},
	Left: {
		func(j, k int) Position { return Pos((k+1)%4, j) },
		func(j, k int) Position { return Pos((k+3)%4, j+2) },
	},
}

// Bands returns the four bands a move in dir resolves, in the order
// lane 0 A, lane 0 B, lane 1 A, lane 1 B. Nil for an invalid direction.
func Bands(dir Direction) []Band {
	mapping, ok := bandMappings[dir]
	if !ok {
		return nil
	}
	bands := make([]Band, 0, 4)
	for lane := range Size / 2 {
		for _, cell := range mapping {
			var b Band
			for k := range Size {
				b[k] = cell(lane, k)
			}
			bands = append(bands, b)
		}
	}
	return bands
}

// resolveBand collapses one band in place and reports whether any cell
// changed occupant, the score gained and the number of merges.
func resolveBand(g *Grid, band Band) (moved bool, score, merges int) {
	line := make([]*Tile, Size)
	for k, pos := range band {
		line[k] = g.CellAt(pos)
	}

	collapsed, score := Collapse(line)

	for k, pos := range band {
		next := collapsed[k]
		if next == g.CellAt(pos) {
			continue
		}
		moved = true
		if next == nil {
			g.clear(pos)
			continue
		}
		next.UpdatePosition(pos)
		for _, src := range next.MergedFrom {
			src.UpdatePosition(pos)
		}
		if next.Merged() {
			merges++
		}
		g.Insert(next)
	}
	return moved, score, merges
}

// resolve applies a full move to g.
func resolve(g *Grid, dir Direction) (moved bool, score, merges int) {
	for _, band := range Bands(dir) {
		m, s, n := resolveBand(g, band)
		moved = moved || m
		score += s
		merges += n
	}
	return moved, score, merges
}
