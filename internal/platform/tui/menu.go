package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/torus2048/internal/config"
	"github.com/vovakirdan/torus2048/internal/games/torus"
	"github.com/vovakirdan/torus2048/internal/storage"
)

// menuEntry is one line of the mode menu.
type menuEntry struct {
	label  string
	mode   *torus.ModeInfo
	scores bool
	quit   bool
}

// modeStatus is what the menu knows about a mode for the current profile.
type modeStatus struct {
	best  int
	saved bool
}

// difficulties is the menu cycle; the empty preset keeps configured rules.
var difficulties = append([]config.DifficultyPreset{""}, config.Presets...)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	entries    []menuEntry
	status     map[string]modeStatus
	cursor     int
	difficulty int
	profile    string
	width      int
	height     int
	keys       MenuKeyMap
	help       help.Model
	lg         *lipgloss.Renderer
	embedded   bool
	quitting   bool
	selected   *torus.ModeInfo
	scoreboard bool
}

// NewMenuModel creates a new menu model for the profile in opts.
func NewMenuModel(opts Options) MenuModel {
	entries := make([]menuEntry, 0, len(torus.Modes)+2)
	for i := range torus.Modes {
		entries = append(entries, menuEntry{label: torus.Modes[i].Title, mode: &torus.Modes[i]})
	}
	entries = append(entries,
		menuEntry{label: "High Scores", scores: true},
		menuEntry{label: "Quit", quit: true},
	)

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	m := MenuModel{
		entries: entries,
		status:  loadModeStatus(opts.Store, opts.Profile),
		profile: opts.Profile,
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
		lg:      r,
	}
	for i, d := range difficulties {
		if d == opts.Difficulty {
			m.difficulty = i
		}
	}
	return m
}

func loadModeStatus(store *storage.Store, profile string) map[string]modeStatus {
	status := make(map[string]modeStatus, len(torus.Modes))
	if store == nil {
		return status
	}
	for _, mode := range torus.Modes {
		ps := store.Profile(profile, mode.GameID)
		var st modeStatus
		if best, err := ps.BestScore(); err == nil {
			st.best = best
		}
		if raw, err := ps.RawGameState(); err == nil && len(raw) > 0 {
			st.saved = true
		}
		status[mode.GameID] = st
	}
	return status
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Easier):
		if m.difficulty > 0 {
			m.difficulty--
		}

	case key.Matches(msg, m.keys.Harder):
		if m.difficulty < len(difficulties)-1 {
			m.difficulty++
		}

	case key.Matches(msg, m.keys.Scores):
		return m.finish(func(m *MenuModel) { m.scoreboard = true })

	case key.Matches(msg, m.keys.Select):
		entry := m.entries[m.cursor]
		switch {
		case entry.quit:
			m.quitting = true
			return m, tea.Quit
		case entry.scores:
			return m.finish(func(m *MenuModel) { m.scoreboard = true })
		default:
			return m.finish(func(m *MenuModel) { m.selected = entry.mode })
		}
	}

	return m, nil
}

// finish records the choice; a standalone menu exits so the caller can act.
func (m MenuModel) finish(choose func(*MenuModel)) (tea.Model, tea.Cmd) {
	choose(&m)
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.lg.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := m.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T O R U S   2 0 4 8  "), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("2048 on a board whose edges wrap around"), m.width))
	b.WriteString("\n\n")
	if m.profile != "" {
		b.WriteString(centerText("Player: "+m.profile, m.width))
		b.WriteString("\n\n")
	}

	for i, entry := range m.entries {
		cursor := "  "
		style := m.lg.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		line := cursor + entry.label
		if entry.mode != nil {
			st := m.status[entry.mode.GameID]
			if st.best > 0 {
				line += fmt.Sprintf("  (best %d)", st.best)
			}
			if st.saved {
				line += "  [resume]"
			}
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if entry := m.entries[m.cursor]; entry.mode != nil {
		b.WriteString(centerText(dimStyle.Render(entry.mode.Description), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", difficultyLabel(m.Difficulty())), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func difficultyLabel(d config.DifficultyPreset) string {
	if d == "" {
		return "custom"
	}
	return string(d)
}

// Selected returns the chosen mode, or nil if none was chosen.
func (m MenuModel) Selected() *torus.ModeInfo {
	return m.selected
}

// Difficulty returns the preset currently shown in the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// centerText centers text within width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
