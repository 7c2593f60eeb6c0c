package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	store       *storage.Store
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a game
	openResults bool      // True if user pressed Tab for results
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
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
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit // Exit menu to show results
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hexMarkX))
	b.WriteString("\n")
	b.WriteString(centerText("  S U P P L Y   T I C - T A C - T O E  ", m.width, titleStyle))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a variant", m.width, lipgloss.NewStyle()))
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(centerText(cursor+item.Title, m.width, style))
		b.WriteString("\n")
		if i == m.cursor && item.Description != "" {
			b.WriteString(centerText(item.Description, m.width, descStyle))
			b.WriteString("\n")
		}
	}

	if m.store != nil && len(m.items) > 0 {
		if t, err := m.store.Tally(m.items[m.cursor].GameID); err == nil && t.Games > 0 {
			b.WriteString("\n")
			line := fmt.Sprintf("%d played: X %d  O %d  draws %d", t.Games, t.XWins, t.OWins, t.Draws)
			b.WriteString(centerText(line, m.width, descStyle))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, m.width, descStyle))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user requested the results board.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers styled text within the given width.
func centerText(text string, width int, style lipgloss.Style) string {
	rendered := style.Render(text)
	w := lipgloss.Width(rendered)
	if w >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-w)/2) + rendered
}
