package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/engine"
	"github.com/vovakirdan/torus2048/internal/games/torus"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"", "torus"},
		{"classic", "torus"},
		{"Endless", "torus_endless"},
		{"torus_endless", "torus_endless"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			mode, err := resolveMode(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode.GameID)
		})
	}

	_, err := resolveMode("tetris")
	assert.Error(t, err)
}

func TestSimPolicy(t *testing.T) {
	for _, name := range []string{"random", "corner"} {
		p, err := simPolicy(name, 1)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}

	_, err := simPolicy("greedy", 1)
	assert.Error(t, err)
}

func TestParseMoves(t *testing.T) {
	moves, err := parseMoves("up, Left,down")
	require.NoError(t, err)
	assert.Equal(t, []engine.Direction{engine.Up, engine.Left, engine.Down}, moves)

	moves, err = parseMoves("")
	require.NoError(t, err)
	assert.Empty(t, moves)

	_, err = parseMoves("up,sideways")
	assert.Error(t, err)
}

func TestSimOpeningIsPlayedFirst(t *testing.T) {
	logger := log.New(io.Discard)
	g, err := newSimGame("torus", config.Default(), logger, 5)
	require.NoError(t, err)
	opening, err := parseMoves("up,right,down,left,up,right,down,left")
	require.NoError(t, err)

	var played []engine.Direction
	then := func(legal []engine.Direction) engine.Direction {
		t.Fatal("opening should cover every move")
		return legal[0]
	}
	script := torus.ScriptedPolicy(opening, then)
	record := func(legal []engine.Direction) engine.Direction {
		d := script(legal)
		played = append(played, d)
		return d
	}

	snap := torus.Autoplay(g, record, 2)

	assert.Equal(t, 2, snap.Moves)
	require.Len(t, played, 2)
	assert.Subset(t, opening, played)
}

func TestSimGamesAreReproducible(t *testing.T) {
	logger := log.New(io.Discard)
	play := func() torus.Snapshot {
		g, err := newSimGame("torus", config.Default(), logger, 99)
		require.NoError(t, err)
		p, err := simPolicy("random", 99)
		require.NoError(t, err)
		return torus.Autoplay(g, p, 150)
	}

	assert.Equal(t, play(), play())
}

func TestNewLoggerLevels(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "debug"
	logger, closeLog, err := newLogger(cfg, true)
	require.NoError(t, err)
	defer closeLog()
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	cfg.Log.File = t.TempDir() + "/torus.log"
	_, closeFile, err := newLogger(cfg, true)
	require.NoError(t, err)
	closeFile()

	cfg.Log.Level = "loud"
	_, _, err = newLogger(cfg, false)
	assert.Error(t, err)
}
