package torus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
	"github.com/vovakirdan/torus2048/internal/registry"
)

var testCfg = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

func savedStore(t *testing.T, values [engine.Size][engine.Size]int) *engine.MemoryStore {
	t.Helper()
	store := engine.NewMemoryStore()
	require.NoError(t, store.SetGameState(engine.SavedGame{
		Grid: engine.GridFromValues(values).Serialize(),
	}))
	return store
}

func newGameWith(t *testing.T, g *Game, values [engine.Size][engine.Size]int) *Game {
	t.Helper()
	g.AttachStore(savedStore(t, values))
	g.Reset(testCfg)
	return g
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func render(g *Game) string {
	s := core.NewScreen(testCfg.ScreenW, testCfg.ScreenH)
	g.Render(s)
	return s.String()
}

func TestRegistered(t *testing.T) {
	for _, info := range Modes {
		g, err := registry.Create(info.GameID)
		require.NoError(t, err)
		assert.Equal(t, info.GameID, g.ID())
		assert.Equal(t, info.Title, g.Title())
	}
}

func TestResetFreshGame(t *testing.T) {
	g := New()
	g.Reset(testCfg)

	st := g.State()
	assert.Zero(t, st.Score)
	assert.False(t, st.GameOver)
	assert.False(t, st.Won)
	assert.Equal(t, 2, g.Manager().Grid().Tiles())
	assert.Equal(t, StatePlaying, g.Snapshot().State)
}

func TestDeterministicUnderSeed(t *testing.T) {
	play := func() Snapshot {
		g := New()
		g.Reset(testCfg)
		moves := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
		for i := range 100 {
			g.Step(input(moves[i%len(moves)]))
		}
		return g.Snapshot()
	}

	assert.Equal(t, play(), play())
}

func TestStepAppliesMove(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{2, 0, 2, 0}})

	res := g.Step(input(core.ActionUp))

	assert.True(t, res.Moved)
	assert.Equal(t, 4, res.State.Score)
	assert.Equal(t, 1, res.State.Moves)
	assert.Equal(t, 4, res.State.BestScore)
	assert.Equal(t, 4, g.Snapshot().Board[0][3], "column 0 collapses toward y=3")
}

func TestStepIgnoresBlockedMove(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{0, 0, 0, 2}})
	before := g.Snapshot().Board

	res := g.Step(input(core.ActionUp))

	assert.False(t, res.Moved)
	assert.Zero(t, res.State.Moves)
	assert.Equal(t, before, g.Snapshot().Board)
}

func TestPauseBlocksMoves(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{2, 0, 2, 0}})

	res := g.Step(input(core.ActionPause))
	assert.True(t, res.State.Paused)

	res = g.Step(input(core.ActionUp))
	assert.False(t, res.Moved)
	assert.Contains(t, render(g), "PAUSED")

	g.Step(input(core.ActionPause))
	res = g.Step(input(core.ActionUp))
	assert.True(t, res.Moved)
}

func TestClassicWinWaitsForContinue(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{1024, 0, 0, 1024}})

	res := g.Step(input(core.ActionUp))
	require.True(t, res.Moved)
	assert.True(t, res.State.Won)
	assert.False(t, res.State.GameOver)
	assert.Equal(t, StateWon, g.Snapshot().State)
	assert.Contains(t, render(g), "YOU WIN!")

	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		assert.False(t, g.Step(input(a)).Moved, "moves are refused after a win")
	}

	g.Step(input(core.ActionContinue))
	assert.Equal(t, StatePlaying, g.Snapshot().State)
	assert.NotContains(t, render(g), "YOU WIN!")
	assert.True(t, g.State().Won, "the win stays recorded")
}

func TestEndlessContinuesAutomatically(t *testing.T) {
	g := newGameWith(t, NewEndless(), [engine.Size][engine.Size]int{{1024, 0, 0, 1024}})

	res := g.Step(input(core.ActionUp))
	require.True(t, res.Moved)
	assert.True(t, res.State.Won)
	assert.True(t, g.Manager().KeepPlayingSet())
	assert.Equal(t, StatePlaying, g.Snapshot().State)
	assert.NotContains(t, render(g), "YOU WIN!")
}

func TestEndlessResumesWonGame(t *testing.T) {
	store := engine.NewMemoryStore()
	require.NoError(t, store.SetGameState(engine.SavedGame{
		Grid: engine.GridFromValues([engine.Size][engine.Size]int{{2048, 2}}).Serialize(),
		Won:  true,
	}))

	g := NewEndless()
	g.AttachStore(store)
	g.Reset(testCfg)

	assert.True(t, g.Manager().KeepPlayingSet())
	assert.Equal(t, StatePlaying, g.Snapshot().State)
}

func TestGameOver(t *testing.T) {
	var cells [engine.Size][engine.Size]int
	for x := range engine.Size {
		for y := range engine.Size {
			cells[x][y] = 1 << (2 + 4*x + y)
		}
	}
	cells[0][0] = 0

	cfg := config.Default()
	cfg.Game.WinValue = 1 << 20
	g := New()
	g.Configure(cfg)
	newGameWith(t, g, cells)

	res := g.Step(input(core.ActionUp))

	require.True(t, res.Moved)
	assert.True(t, res.State.GameOver)
	assert.Equal(t, StateGameOver, g.Snapshot().State)
	assert.Contains(t, render(g), "GAME OVER")
}

func TestRestart(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{2, 0, 2, 0}})
	g.Step(input(core.ActionUp))
	require.Equal(t, 4, g.State().Score)

	res := g.Step(input(core.ActionRestart))

	assert.Zero(t, res.State.Score)
	assert.Zero(t, res.State.Moves)
	assert.Equal(t, 4, res.State.BestScore)
	assert.Equal(t, 2, g.Manager().Grid().Tiles())
}

func TestProgressSurvivesNewSession(t *testing.T) {
	store := savedStore(t, [engine.Size][engine.Size]int{{2, 0, 2, 0}})

	first := New()
	first.AttachStore(store)
	first.Reset(testCfg)
	first.Step(input(core.ActionUp))
	want := first.Snapshot()

	second := New()
	second.AttachStore(store)
	second.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})
	got := second.Snapshot()

	assert.Equal(t, want.Board, got.Board)
	assert.Equal(t, want.Score, got.Score)
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.AttachStore(savedStore(t, [engine.Size][engine.Size]int{{2, 0, 2, 0}}))
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	res := g.Step(input(core.ActionUp))
	assert.False(t, res.Moved)
	assert.True(t, res.State.Paused)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	s := core.NewScreen(20, 10)
	g.Render(s)
	assert.Contains(t, s.String(), "Window too small")

	g.Resize(80, 24)
	assert.True(t, g.Step(input(core.ActionUp)).Moved)
}

func TestRenderShowsBoard(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{2, 0, 0, 0}, {0, 128}})

	out := render(g)
	assert.Contains(t, out, "TORUS 2048")
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "128")
	assert.Contains(t, out, "┌")
	assert.Equal(t, testCfg.ScreenH, strings.Count(out, "\n")+1)
}

func TestAnimationLifecycle(t *testing.T) {
	g := newGameWith(t, New(), [engine.Size][engine.Size]int{{2, 0, 2, 0}})

	g.Step(input(core.ActionUp))
	require.True(t, g.anim.sliding())
	require.NotEmpty(t, g.anim.slides)
	render(g) // drawing in flight must not panic

	for range slideTicks {
		g.Step(core.NewInputFrame())
	}
	assert.True(t, g.anim.popping(), "merge and spawn pop after the slide")
	assert.True(t, g.anim.highlighted(engine.Pos(0, 3)))

	for range popTicks {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, phaseNone, g.anim.phase)
}

func TestAnimationsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Animations = false
	g := New()
	g.Configure(cfg)
	newGameWith(t, g, [engine.Size][engine.Size]int{{2, 0, 2, 0}})

	g.Step(input(core.ActionUp))
	assert.Equal(t, phaseNone, g.anim.phase)
}

func TestAnimationSlidesFromPreviousPosition(t *testing.T) {
	grid := engine.GridFromValues([engine.Size][engine.Size]int{{}, {}, {}, {8}})
	tile := grid.CellAt(engine.Pos(3, 0))
	tile.SavePosition()
	grid.Remove(tile)
	tile.UpdatePosition(engine.Pos(1, 0))
	grid.Insert(tile)

	var a animator
	a.start(grid, engine.Left, nil)

	require.Len(t, a.slides, 1)
	assert.Equal(t, tileSlide{value: 8, from: engine.Pos(3, 0), to: engine.Pos(1, 0), steps: 2}, a.slides[0])

	x, y := a.position(a.slides[0])
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 0.0, y)

	a.ticks = slideTicks
	x, _ = a.position(a.slides[0])
	assert.InDelta(t, 1.0, x, 1e-9)
}

func TestTravelWraps(t *testing.T) {
	tests := []struct {
		dir      engine.Direction
		from, to engine.Position
		want     int
	}{
		{engine.Left, engine.Pos(3, 0), engine.Pos(1, 0), 2},
		{engine.Left, engine.Pos(0, 0), engine.Pos(1, 0), 3},
		{engine.Right, engine.Pos(3, 2), engine.Pos(0, 2), 1},
		{engine.Up, engine.Pos(0, 0), engine.Pos(0, 3), 1},
		{engine.Down, engine.Pos(1, 3), engine.Pos(1, 2), 3},
		{engine.Up, engine.Pos(2, 1), engine.Pos(2, 1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, travel(tt.dir, tt.from, tt.to), "%s %v->%v", tt.dir, tt.from, tt.to)
	}
}

func TestTileColor(t *testing.T) {
	assert.Equal(t, core.ColorDefault, TileColor(0))
	assert.Equal(t, core.ColorWhite, TileColor(2))
	assert.Equal(t, core.ColorBrightMagenta, TileColor(2048))
	assert.Equal(t, core.ColorMagenta, TileColor(1<<16))
}

func TestInfoFallsBackToClassic(t *testing.T) {
	assert.Equal(t, "torus", Info("unknown").GameID)
	assert.Equal(t, "torus_endless", Info(ModeEndless).GameID)
}
