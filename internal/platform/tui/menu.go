package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clapjump/internal/core"
	"github.com/vovakirdan/clapjump/internal/registry"
	"github.com/vovakirdan/clapjump/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is a selectable game with its record so far.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Runs      int
	Wins      int
	Claps     int64
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items          []MenuItem
	lastSession    string
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	micNote        string
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered game with its record.
// micNote is shown under the title, e.g. "Mic: default" or "Keyboard only".
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, micNote string) MenuModel {
	items, lastSession := menuEntries(store)
	return MenuModel{
		items:       items,
		lastSession: lastSession,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		micNote:     micNote,
		keyMapper:   NewKeyMapper(),
	}
}

// menuEntries joins the registry with stored stats. A nil store, or one
// that fails, yields items with zero records.
func menuEntries(store *storage.Store) ([]MenuItem, string) {
	var stats map[string]*storage.GameStats
	var lastSession string
	if store != nil {
		stats, _ = store.GetAllGamesStats()
		if recent, err := store.RecentClapSessions(1); err == nil && len(recent) > 0 {
			s := recent[0]
			lastSession = fmt.Sprintf("Last clap session: %d claps at sensitivity %.2f", s.Claps, s.Sensitivity)
		}
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if st, ok := stats[g.ID]; ok {
			item.HighScore = st.HighScore
			item.Runs = st.GamesCount
			item.Wins = st.Wins
			item.Claps = st.TotalClaps
		}
		items = append(items, item)
	}
	return items, lastSession
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C L A P J U M P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(m.micNote), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.line()
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.line())
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastSession != "" {
		b.WriteString(centerText(menuDimStyle.Render(m.lastSession), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuDimStyle.Render("Clap or Space to jump  |  Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (it MenuItem) line() string {
	if it.Runs == 0 {
		return fmt.Sprintf("%-24s %s", it.Title, "not played yet")
	}
	return fmt.Sprintf("%-24s best %6d  runs %3d  wins %3d  claps %5d", it.Title, it.HighScore, it.Runs, it.Wins, it.Claps)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, micNote string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, micNote), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
