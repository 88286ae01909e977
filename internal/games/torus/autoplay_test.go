package torus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
)

func newQuietGame(seed int64) *Game {
	g := New()
	cfg := config.Default()
	cfg.Display.Animations = false
	g.Configure(cfg)

	rc := testCfg
	rc.Seed = seed
	g.Reset(rc)
	return g
}

func TestAutoplayRunsToGameOver(t *testing.T) {
	g := newQuietGame(3)

	snap := Autoplay(g, RandomPolicy(rand.New(rand.NewSource(3))), 0)

	assert.Equal(t, StateGameOver, snap.State)
	assert.False(t, engine.MovesAvailable(g.Manager().Grid()))
	assert.Positive(t, snap.Moves)
	assert.Equal(t, g.Manager().Score(), snap.Score)
}

func TestAutoplayDeterministic(t *testing.T) {
	a := Autoplay(newQuietGame(11), RandomPolicy(rand.New(rand.NewSource(5))), 200)
	b := Autoplay(newQuietGame(11), RandomPolicy(rand.New(rand.NewSource(5))), 200)

	assert.Equal(t, a, b)
}

func TestAutoplayMoveLimit(t *testing.T) {
	g := newQuietGame(1)

	snap := Autoplay(g, CornerPolicy(engine.Down, engine.Left, engine.Right, engine.Up), 5)

	assert.Equal(t, 5, snap.Moves)
	assert.Equal(t, StatePlaying, snap.State)
}

func TestAutoplayStopsWhenPaused(t *testing.T) {
	g := newQuietGame(1)
	g.Step(input(core.ActionPause))

	snap := Autoplay(g, RandomPolicy(rand.New(rand.NewSource(1))), 10)

	assert.Zero(t, snap.Moves)
	assert.Equal(t, StatePaused, snap.State)
}

func TestAutoplayContinuesPastWin(t *testing.T) {
	g := New()
	cfg := config.Default()
	cfg.Display.Animations = false
	cfg.Game.WinValue = 8
	g.Configure(cfg)
	g.Reset(testCfg)

	snap := Autoplay(g, RandomPolicy(rand.New(rand.NewSource(9))), 0)

	require.True(t, g.Manager().Won())
	assert.True(t, g.Manager().KeepPlayingSet())
	assert.Equal(t, StateGameOver, snap.State)
}

func TestCornerPolicyOrder(t *testing.T) {
	p := CornerPolicy(engine.Down, engine.Left)

	assert.Equal(t, engine.Down, p([]engine.Direction{engine.Up, engine.Down}))
	assert.Equal(t, engine.Left, p([]engine.Direction{engine.Right, engine.Left}))
	assert.Equal(t, engine.Up, p([]engine.Direction{engine.Up, engine.Right}))
}

func TestScriptedPolicy(t *testing.T) {
	fallback := CornerPolicy(engine.Right)
	p := ScriptedPolicy([]engine.Direction{engine.Up, engine.Left, engine.Down}, fallback)
	all := engine.Directions[:]

	assert.Equal(t, engine.Up, p(all))
	// Left would not move anything, so it is dropped.
	assert.Equal(t, engine.Down, p([]engine.Direction{engine.Down, engine.Right}))
	assert.Equal(t, engine.Right, p(all), "script used up")
}
