package torus

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
	"github.com/vovakirdan/torus2048/internal/registry"
)

// Game adapts an engine.Manager to the registry.Game interface. It is also
// the manager's actuator: every actuation refreshes what Render shows.
type Game struct {
	mode       Mode
	rules      config.GameConfig
	animations bool
	store      engine.StateStore
	logger     *log.Logger

	manager *engine.Manager
	tick    uint64
	moves   int

	// Last actuation
	meta        engine.Metadata
	showMessage bool

	anim animator

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

var (
	_ registry.Game         = (*Game)(nil)
	_ registry.Persistent   = (*Game)(nil)
	_ registry.Configurable = (*Game)(nil)
	_ registry.Logged       = (*Game)(nil)
	_ registry.Resizable    = (*Game)(nil)
	_ engine.Actuator       = (*Game)(nil)
)

// New creates a classic mode game.
func New() *Game {
	return newGame(ModeClassic)
}

// NewEndless creates an endless mode game.
func NewEndless() *Game {
	return newGame(ModeEndless)
}

func newGame(mode Mode) *Game {
	cfg := config.Default()
	return &Game{
		mode:       mode,
		rules:      cfg.Game,
		animations: cfg.Display.Animations,
		logger:     log.New(io.Discard),
	}
}

func init() {
	registry.Register("torus", func() registry.Game {
		return New()
	})
	registry.Register("torus_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return Info(g.mode).GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return Info(g.mode).Title
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Configure applies game rules and display options.
func (g *Game) Configure(cfg config.Config) {
	g.rules = cfg.Game
	g.animations = cfg.Display.Animations
}

// AttachStore sets where the game in progress and best score are kept.
// Without a store the game lives in memory only.
func (g *Game) AttachStore(store engine.StateStore) {
	g.store = store
}

// SetLogger sets the logger handed to the engine.
func (g *Game) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Reset builds the engine and restores the saved game, if any.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := g.rules.EngineOptions()
	opts.Rand = rand.New(rand.NewSource(seed))
	opts.Store = g.store
	opts.Actuator = g
	opts.Logger = g.logger.With("game", g.ID())

	g.tick = 0
	g.moves = 0
	g.paused = false
	g.anim = animator{}
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.manager = engine.NewManager(opts)
	g.manager.Setup()
	g.autoContinue()
}

// Resize adapts the layout to a new terminal size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < minScreenW || height < minScreenH
}

// Actuate records the state for rendering. Called by the engine.
func (g *Game) Actuate(_ *engine.Grid, meta engine.Metadata) {
	g.meta = meta
	g.showMessage = meta.Terminated
}

// ContinueGame hides the win or game over message. Called by the engine.
func (g *Game) ContinueGame() {
	g.showMessage = false
}

// Step advances the game by one tick and applies at most one move.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.advance(g.animations)

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionContinue) {
		g.manager.KeepPlaying()
	}

	action, ok := in.Move()
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.move(directionFor(action))
	return core.StepResult{State: g.State(), Moved: moved}
}

// move applies one move and starts its animation.
func (g *Game) move(dir engine.Direction) bool {
	res := g.manager.Move(dir)
	if !res.Moved {
		return false
	}

	g.moves++
	if g.animations {
		g.anim.start(g.manager.Grid(), dir, res.Spawned)
	}
	g.autoContinue()
	return true
}

func (g *Game) restart() {
	g.manager.Restart()
	g.moves = 0
	g.anim = animator{}
	g.autoContinue()
}

// autoContinue skips the win pause in endless mode.
func (g *Game) autoContinue() {
	if g.mode == ModeEndless && g.manager.Won() && !g.manager.KeepPlayingSet() {
		g.manager.KeepPlaying()
	}
}

func directionFor(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.Up
	case core.ActionRight:
		return engine.Right
	case core.ActionDown:
		return engine.Down
	case core.ActionLeft:
		return engine.Left
	default:
		return -1
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.manager == nil {
		return core.GameState{}
	}
	score := g.manager.Score()
	return core.GameState{
		Score:     score,
		BestScore: max(g.meta.BestScore, score),
		MaxTile:   g.manager.Grid().MaxValue(),
		Moves:     g.moves,
		GameOver:  g.manager.Over(),
		Won:       g.manager.Won(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Manager exposes the engine, used by headless drivers such as `sim`.
func (g *Game) Manager() *engine.Manager {
	return g.manager
}
