package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. It serves both local play and
// SSH sessions.
type SessionModel struct {
	opts       Options
	current    screenKind
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	return SessionModel{
		opts: opts,
		menu: newEmbeddedMenu(opts),
	}
}

func newEmbeddedMenu(opts Options) MenuModel {
	menu := NewMenuModel(opts)
	menu.embedded = true
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		// Ticks still in flight from a finished game are dropped here.
		if _, ok := msg.(TickMsg); ok {
			return m, nil
		}
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		rt := m.opts.Runtime
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Profile, m.opts.Renderer, rt.ScreenW, rt.ScreenH)
		m.scoreboard.embedded = true
		m.current = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		m.opts.Difficulty = m.menu.Difficulty()
		game, err := NewGame(m.menu.Selected().GameID, m.opts)
		if err != nil {
			m.opts.logger().Error("cannot start game", "err", err)
			m.menu = newEmbeddedMenu(m.opts)
			return m, nil
		}
		model := NewModel(game, m.opts)
		model.embedded = true
		m.game = &model
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if model, ok := next.(Model); ok {
		m.game = &model
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.WantsMenu():
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores and saved games are fresh.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = newEmbeddedMenu(m.opts)
	m.current = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())

	_, err := p.Run()
	return err
}
