package torus

import (
	"math"

	"github.com/vovakirdan/torus2048/internal/engine"
)

// Animation lengths in ticks.
const (
	slideTicks = 8 // ~133ms at 60fps
	popTicks   = 6 // ~100ms at 60fps
)

type animPhase int

const (
	phaseNone animPhase = iota
	phaseSlide
	phasePop
)

// tileSlide is one tile travelling along the move direction. Tiles that
// merged are represented by their two sources sliding into the same cell.
type tileSlide struct {
	value int
	from  engine.Position
	to    engine.Position
	steps int // Cells travelled, counted with wrap-around
}

// animator turns the engine's per-move bookkeeping (PreviousPosition,
// MergedFrom and the spawned tile) into a slide followed by a pop.
type animator struct {
	phase  animPhase
	ticks  int
	dir    engine.Direction
	slides []tileSlide
	merged []engine.Position
	spawn  *engine.Position
}

// start prepares the animation for the move just resolved on grid.
func (a *animator) start(grid *engine.Grid, dir engine.Direction, spawned *engine.Tile) {
	*a = animator{phase: phaseSlide, dir: dir}
	if spawned != nil {
		pos := spawned.Position
		a.spawn = &pos
	}

	grid.EachCell(func(pos engine.Position, tile *engine.Tile) {
		if tile == nil || tile == spawned {
			return
		}
		if tile.Merged() {
			a.merged = append(a.merged, pos)
			for _, src := range tile.MergedFrom {
				a.slides = append(a.slides, a.slide(src, pos))
			}
			return
		}
		a.slides = append(a.slides, a.slide(tile, pos))
	})
}

func (a *animator) slide(tile *engine.Tile, to engine.Position) tileSlide {
	from := to
	if tile.PreviousPosition != nil {
		from = *tile.PreviousPosition
	}
	return tileSlide{
		value: tile.Value,
		from:  from,
		to:    to,
		steps: travel(a.dir, from, to),
	}
}

// travel counts the cells between from and to going in dir, wrapping at
// the edges.
func travel(dir engine.Direction, from, to engine.Position) int {
	dx, dy := dir.Delta()
	if dx != 0 {
		return engine.Wrap((to.X - from.X) * dx)
	}
	return engine.Wrap((to.Y - from.Y) * dy)
}

// advance moves the animation one tick forward. Disabled animations end
// immediately.
func (a *animator) advance(enabled bool) {
	if a.phase == phaseNone {
		return
	}
	if !enabled {
		*a = animator{}
		return
	}

	a.ticks++
	switch a.phase {
	case phaseSlide:
		if a.ticks >= slideTicks {
			a.ticks = 0
			a.phase = phasePop
			if a.spawn == nil && len(a.merged) == 0 {
				*a = animator{}
			}
		}
	case phasePop:
		if a.ticks >= popTicks {
			*a = animator{}
		}
	}
}

func (a *animator) sliding() bool { return a.phase == phaseSlide }

func (a *animator) popping() bool { return a.phase == phasePop }

// progress returns how far the current phase is, eased, in [0, 1].
func (a *animator) progress() float64 {
	var total int
	switch a.phase {
	case phaseSlide:
		total = slideTicks
	case phasePop:
		total = popTicks
	default:
		return 1
	}
	return easeOutQuad(math.Min(float64(a.ticks)/float64(total), 1))
}

// position returns where a sliding tile is drawn, in fractional cells
// within [0, Size).
func (a *animator) position(s tileSlide) (x, y float64) {
	dx, dy := a.dir.Delta()
	d := float64(s.steps) * a.progress()
	return wrapF(float64(s.from.X) + float64(dx)*d), wrapF(float64(s.from.Y) + float64(dy)*d)
}

// highlighted reports whether pos should be drawn emphasised during the pop.
func (a *animator) highlighted(pos engine.Position) bool {
	if !a.popping() {
		return false
	}
	if a.spawn != nil && *a.spawn == pos {
		return true
	}
	for _, m := range a.merged {
		if m == pos {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

func wrapF(v float64) float64 {
	v = math.Mod(v, engine.Size)
	if v < 0 {
		v += engine.Size
	}
	return v
}
