package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

// Results board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show game list sidebar
	sidebarWidth       = 28  // Width of game list sidebar
	maxResults         = 100 // Max results to load
)

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev variant"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next variant"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next variant"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the results board: a tally per
// variant and the most recent finished games.
type ResultsModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	tally       *storage.Tally
	results     []storage.ResultEntry
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewResultsModel creates a new results board, opened on gameID when it is
// registered.
func NewResultsModel(store *storage.Store, width, height int, gameID string) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadResults(m.games[m.gameCursor].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Outcome", Width: 8},
		{Title: "Line", Width: 12},
		{Title: "Moves", Width: 6},
		{Title: "Left X/O", Width: 9},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, tally and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadResults loads the tally and recent games for the given game ID.
func (m *ResultsModel) loadResults(gameID string) {
	m.tally = nil
	m.results = nil

	if m.store != nil {
		if t, err := m.store.Tally(gameID); err == nil {
			m.tally = t
		}
		if rs, err := m.store.RecentResults(gameID, maxResults); err == nil {
			m.results = rs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *ResultsModel) updateTableRows() {
	m.table.SetRows(ResultRows(m.results))
	m.table.GotoTop()
}

// ResultRows formats ledger entries as table rows, newest first.
func ResultRows(results []storage.ResultEntry) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		line := r.WinningLine
		if line == "" {
			line = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			OutcomeLabel(r.Outcome),
			line,
			fmt.Sprintf("%d", r.Placements),
			fmt.Sprintf("%d/%d", r.RemainingX, r.RemainingO),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// OutcomeLabel returns the short display form of a stored outcome.
func OutcomeLabel(outcome string) string {
	switch outcome {
	case core.OutcomeXWon:
		return "X won"
	case core.OutcomeOWon:
		return "O won"
	case core.OutcomeDraw:
		return "Draw"
	default:
		return outcome
	}
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadResults(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadResults(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RESULTS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("RESULTS - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(title, m.width, titleStyle))
	b.WriteString("\n")
	b.WriteString(centerText(m.tallyLine(), m.width, lipgloss.NewStyle()))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tallyLine summarises wins and draws with the mark colours.
func (m ResultsModel) tallyLine() string {
	if m.tally == nil || m.tally.Games == 0 {
		return "No games yet"
	}
	x := lipgloss.NewStyle().Foreground(lipgloss.Color(hexMarkX)).Bold(true)
	o := lipgloss.NewStyle().Foreground(lipgloss.Color(hexMarkO)).Bold(true)
	n := lipgloss.NewStyle().Foreground(lipgloss.Color(hexNeutral))
	return fmt.Sprintf("%d games   %s   %s   %s   avg %.1f moves",
		m.tally.Games,
		x.Render(fmt.Sprintf("X %d", m.tally.XWins)),
		o.Render(fmt.Sprintf("O %d", m.tally.OWins)),
		n.Render(fmt.Sprintf("Draw %d", m.tally.Draws)),
		m.tally.AvgPlacements,
	)
}

// renderWideLayout renders the board with a sidebar for variant selection.
func (m ResultsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Variants\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(g.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the current variant name above the table.
func (m ResultsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].ID), m.width, lipgloss.NewStyle()))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ResultsModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No finished games recorded yet.\nPlay one to fill the ledger!")
	}

	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunResults(store *storage.Store, width, height int, gameID string) (goBack bool, err error) {
	model := NewResultsModel(store, width, height, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
