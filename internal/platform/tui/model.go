package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/registry"
	"github.com/vovakirdan/torus2048/internal/storage"
)

// Options carries everything a front end needs to run games for one player.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil runs without persistence
	Profile string
	// Difficulty overrides Config.Game when set.
	Difficulty config.DifficultyPreset
	Renderer   *lipgloss.Renderer // nil uses the default renderer
	Logger     *log.Logger
	// ScreenshotDir enables ctrl+s screenshots when set.
	ScreenshotDir string
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// ScoreRecorder stores finished runs.
type ScoreRecorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// NewGame creates the game registered under id and wires configuration,
// the profile's saved state and the logger into it.
func NewGame(id string, opts Options) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(registry.Configurable); ok {
		cfg := opts.Config
		config.ApplyDifficulty(&cfg, opts.Difficulty)
		c.Configure(cfg)
	}
	if p, ok := game.(registry.Persistent); ok && opts.Store != nil {
		p.AttachStore(opts.Store.Profile(opts.Profile, id))
	}
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(opts.logger())
	}
	return game, nil
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	scores     ScoreRecorder
	profile    string
	runID      string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	logger     *log.Logger
	shotDir    string
	embedded   bool // back returns to the session menu instead of quitting
	quitting   bool
	back       bool
	recorded   bool // current run already stored
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	// One row is kept for the help bar.
	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewScreenRenderer(opts.Renderer),
		profile:    opts.Profile,
		runID:      uuid.NewString(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		logger:     opts.logger().With("game", game.ID(), "profile", opts.Profile),
		shotDir:    opts.ScreenshotDir,
	}
	if opts.Store != nil {
		m.scores = opts.Store
	}
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case msg.String() == "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the running game; the board is re-centred on render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-1, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart abandons the current run; keep it on the scoreboard.
	if m.inputFrame.Has(core.ActionRestart) {
		if !m.recorded && m.gameState.Score > 0 {
			m.record()
		}
		m.runID = uuid.NewString()
		m.recorded = false
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.record()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record stores the current run once. Failures are logged; play goes on.
func (m *Model) record() {
	m.recorded = true
	if m.scores == nil {
		return
	}
	entry := storage.ScoreEntry{
		RunID:   m.runID,
		GameID:  m.game.ID(),
		Profile: m.profile,
		Score:   m.gameState.Score,
		MaxTile: m.gameState.MaxTile,
		Moves:   m.gameState.Moves,
		Won:     m.gameState.Won,
	}
	if _, err := m.scores.SaveScore(entry); err != nil {
		m.logger.Warn("failed to record score", "run", m.runID, "err", err)
		return
	}
	m.logger.Info("run recorded", "run", m.runID, "score", entry.Score, "max_tile", entry.MaxTile)
}

func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the game and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// WantsMenu reports whether the player asked to go back to the menu.
func (m Model) WantsMenu() bool {
	return m.back
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run plays a single game in the local terminal until the player quits.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(NewModel(game, opts), tea.WithAltScreen())

	_, err := p.Run()
	return err
}
