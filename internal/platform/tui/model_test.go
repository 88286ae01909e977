package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/storage"
)

// stubGame reports whatever state the test sets and remembers its inputs.
type stubGame struct {
	state   core.GameState
	inputs  []core.InputFrame
	resets  int
	resized [2]int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Resize(width, height int) { g.resized = [2]int{width, height} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range []core.Action{core.ActionRestart, core.ActionUp, core.ActionPause} {
		if in.Has(a) {
			frame.Set(a)
		}
	}
	g.inputs = append(g.inputs, frame)
	return core.StepResult{State: g.state}
}

type fakeRecorder struct {
	entries []storage.ScoreEntry
	err     error
}

func (r *fakeRecorder) SaveScore(e storage.ScoreEntry) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.entries = append(r.entries, e)
	return int64(len(r.entries)), nil
}

func newTestModel(game *stubGame) (Model, *fakeRecorder) {
	rec := &fakeRecorder{}
	m := NewModel(game, Options{
		Profile: "ann",
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
	})
	m.scores = rec
	return m, rec
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestRecordsGameOverOnce(t *testing.T) {
	game := &stubGame{state: core.GameState{Score: 120, MaxTile: 32, Moves: 40, GameOver: true}}
	m, rec := newTestModel(game)

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	assert.True(t, m.State().GameOver)
	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, "stub", e.GameID)
	assert.Equal(t, "ann", e.Profile)
	assert.Equal(t, 120, e.Score)
	assert.Equal(t, 32, e.MaxTile)
	assert.Equal(t, 40, e.Moves)
	assert.NotEmpty(t, e.RunID)
}

func TestRestartRecordsAbandonedRun(t *testing.T) {
	game := &stubGame{state: core.GameState{Score: 64, MaxTile: 16, Moves: 12}}
	m, rec := newTestModel(game)

	m = update(t, m, TickMsg{})
	assert.Empty(t, rec.entries, "running games are not recorded")

	firstRun := m.runID
	m = update(t, m, runeKey("r"))
	game.state = core.GameState{}
	m = update(t, m, TickMsg{})

	require.Len(t, rec.entries, 1)
	assert.Equal(t, firstRun, rec.entries[0].RunID)
	assert.Equal(t, 64, rec.entries[0].Score)
	assert.NotEqual(t, firstRun, m.runID)
	assert.True(t, game.inputs[len(game.inputs)-1].Has(core.ActionRestart))
}

func TestRestartWithoutPointsIsNotRecorded(t *testing.T) {
	game := &stubGame{}
	m, rec := newTestModel(game)

	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("r"))
	update(t, m, TickMsg{})

	assert.Empty(t, rec.entries)
}

func TestRestartAfterGameOverDoesNotRecordTwice(t *testing.T) {
	game := &stubGame{state: core.GameState{Score: 300, GameOver: true}}
	m, rec := newTestModel(game)

	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("r"))
	game.state = core.GameState{}
	update(t, m, TickMsg{})

	assert.Len(t, rec.entries, 1)
}

func TestRecordFailureDoesNotStopPlay(t *testing.T) {
	game := &stubGame{state: core.GameState{Score: 8, GameOver: true}}
	m, rec := newTestModel(game)
	rec.err = errors.New("disk full")

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	assert.True(t, m.recorded)
	assert.Len(t, game.inputs, 2)
}

func TestInputClearedEachTick(t *testing.T) {
	game := &stubGame{}
	m, _ := newTestModel(game)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	require.Len(t, game.inputs, 2)
	assert.True(t, game.inputs[0].Has(core.ActionUp))
	assert.False(t, game.inputs[1].Has(core.ActionUp))
}

func TestBackAndQuit(t *testing.T) {
	t.Run("standalone back quits", func(t *testing.T) {
		m, _ := newTestModel(&stubGame{})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		assert.True(t, m.WantsMenu())
		assert.True(t, m.IsQuitting())
	})

	t.Run("embedded back returns to menu", func(t *testing.T) {
		m, _ := newTestModel(&stubGame{})
		m.embedded = true
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		assert.True(t, m.WantsMenu())
		assert.False(t, m.IsQuitting())
	})

	t.Run("quit", func(t *testing.T) {
		m, _ := newTestModel(&stubGame{})
		m = update(t, m, runeKey("q"))
		assert.True(t, m.IsQuitting())
		assert.Empty(t, m.View())
	})
}

func TestResizeKeepsGame(t *testing.T) {
	game := &stubGame{}
	m, _ := newTestModel(game)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 0, game.resets, "resize must not reset the game")
	assert.Equal(t, [2]int{100, 39}, game.resized)
}

func TestViewIncludesHelp(t *testing.T) {
	m, _ := newTestModel(&stubGame{})

	view := m.View()

	assert.Contains(t, view, "stub")
	assert.Contains(t, view, "quit")
}

func TestRecordsIntoStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	game := &stubGame{state: core.GameState{Score: 2048, MaxTile: 256, Moves: 300, Won: true, GameOver: true}}
	m := NewModel(game, Options{Store: store, Profile: "bob", Runtime: core.DefaultConfig()})
	update(t, m, TickMsg{})

	scores, err := store.TopScores(storage.ScoreFilter{GameID: "stub"})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "bob", scores[0].Profile)
	assert.Equal(t, 2048, scores[0].Score)
	assert.True(t, scores[0].Won)
}
