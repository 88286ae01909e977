package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandsCoverBoard(t *testing.T) {
	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			bands := Bands(dir)
			require.Len(t, bands, 4)

			seen := make(map[Position]int)
			for _, b := range bands {
				for _, pos := range b {
					require.True(t, pos.Valid(), "position %v out of bounds", pos)
					seen[pos]++
				}
			}
			assert.Len(t, seen, Size*Size)
			for pos, n := range seen {
				assert.Equal(t, 1, n, "cell %v covered %d times", pos, n)
			}
		})
	}
}

func TestBandsMapping(t *testing.T) {
	tests := []struct {
		dir   Direction
		index int
		want  Band
	}{
		{Up, 0, Band{Pos(0, 3), Pos(0, 0), Pos(0, 1), Pos(0, 2)}},
		{Up, 1, Band{Pos(2, 1), Pos(2, 2), Pos(2, 3), Pos(2, 0)}},
		{Up, 2, Band{Pos(1, 3), Pos(1, 0), Pos(1, 1), Pos(1, 2)}},
		{Down, 0, Band{Pos(0, 2), Pos(0, 1), Pos(0, 0), Pos(0, 3)}},
		{Down, 1, Band{Pos(2, 0), Pos(2, 3), Pos(2, 2), Pos(2, 1)}},
		{Right, 0, Band{Pos(0, 0), Pos(3, 0), Pos(2, 0), Pos(1, 0)}},
		{Right, 1, Band{Pos(2, 2), Pos(1, 2), Pos(0, 2), Pos(3, 2)}},
		{Left, 0, Band{Pos(1, 0), Pos(2, 0), Pos(3, 0), Pos(0, 0)}},
		{Left, 3, Band{Pos(3, 3), Pos(0, 3), Pos(1, 3), Pos(2, 3)}},
	}

	for _, tt := range tests {
		bands := Bands(tt.dir)
		assert.Equal(t, tt.want, bands[tt.index], "%s band %d", tt.dir, tt.index)
	}
}

func TestOppositeDirectionsReverseBands(t *testing.T) {
	pairs := [][2]Direction{{Up, Down}, {Left, Right}}
	for _, p := range pairs {
		a, b := Bands(p[0]), Bands(p[1])
		for i := range a {
			reversed := a[i]
			slices.Reverse(reversed[:])
			assert.Equal(t, reversed, b[i], "%s/%s band %d", p[0], p[1], i)
		}
	}
}

func TestBandsFollowDelta(t *testing.T) {
	for _, dir := range Directions {
		dx, dy := dir.Delta()
		for _, b := range Bands(dir) {
			for k := 1; k < Size; k++ {
				next := Pos(Wrap(b[k].X+dx), Wrap(b[k].Y+dy))
				assert.Equal(t, b[k-1], next, "%s: one step from %v", dir, b[k])
			}
		}
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 3, Wrap(-1))
	assert.Equal(t, 0, Wrap(4))
	assert.Equal(t, 2, Wrap(2))
	assert.Equal(t, 1, Wrap(-7))
}

func TestBandsInvalidDirection(t *testing.T) {
	assert.Nil(t, Bands(Direction(7)))
	assert.Nil(t, Bands(Direction(-1)))
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		require.True(t, ok)
		assert.Equal(t, d, got)
	}
	_, ok := ParseDirection("sideways")
	assert.False(t, ok)
}

func TestResolveBandWritesBack(t *testing.T) {
	g := NewGrid()
	a := NewTile(Pos(0, 3), 2)
	b := NewTile(Pos(0, 0), 2)
	c := NewTile(Pos(0, 2), 8)
	g.Insert(a)
	g.Insert(b)
	g.Insert(c)

	moved, score, merges := resolveBand(g, Bands(Up)[0])

	require.True(t, moved)
	assert.Equal(t, 4, score)
	assert.Equal(t, 1, merges)

	merged := g.CellAt(Pos(0, 3))
	require.NotNil(t, merged)
	assert.Equal(t, 4, merged.Value)
	assert.Equal(t, Pos(0, 3), merged.Position)
	assert.Equal(t, Pos(0, 3), b.Position, "merge source follows the merge")

	assert.Same(t, c, g.CellAt(Pos(0, 0)))
	assert.Equal(t, Pos(0, 0), c.Position)
	assert.Nil(t, g.CellAt(Pos(0, 1)))
	assert.Nil(t, g.CellAt(Pos(0, 2)))
}

func TestResolveBandUnchanged(t *testing.T) {
	g := NewGrid()
	g.Insert(NewTile(Pos(0, 3), 2))
	g.Insert(NewTile(Pos(0, 0), 4))

	moved, score, merges := resolveBand(g, Bands(Up)[0])

	assert.False(t, moved)
	assert.Zero(t, score)
	assert.Zero(t, merges)
}
