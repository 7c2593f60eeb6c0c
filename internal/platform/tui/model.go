// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, the results ledger hook
// and the SSH server.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/registry"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// GameModel runs one registered game: it maps input, steps the game on
// every tick and writes finished games to the results ledger.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	sessionID  string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current finished game is in the ledger
	lastSaved  string
}

// GameOption customises a GameModel.
type GameOption func(*GameModel)

// WithLogger sets the logger for ledger and lifecycle events.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) { m.logger = l }
}

// WithSession tags ledger rows with a session ID.
func WithSession(id string) GameOption {
	return func(m *GameModel) { m.sessionID = id }
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		sessionID:  storage.LocalSession,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	// Reset here rather than in Init: Init has a value receiver and the
	// game must be ready before the first View.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The board re-centres on render; no reset needed.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu (B or Esc) once the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.recorded:
		m.recordResult()
		m.recorded = true
	case !m.gameState.GameOver:
		m.recorded = false
	}

	return m, tickCmd(m.config.TickRate)
}

// recordResult writes the finished game to the ledger. Failures are logged
// and the game continues.
func (m *GameModel) recordResult() {
	rec, ok := m.game.(registry.Recorder)
	if !ok {
		return
	}
	res, ok := rec.Result()
	if !ok {
		return
	}

	if m.store == nil {
		m.logger.Debug("no results store, result not saved", "game", m.game.ID(), "outcome", res.Outcome)
		return
	}

	id, err := m.store.SaveResult(m.game.ID(), m.sessionID, res)
	if err != nil {
		m.logger.Warn("could not save result", "game", m.game.ID(), "error", err)
		return
	}
	m.lastSaved = id
	m.logger.Info("result saved",
		"game", m.game.ID(),
		"session", m.sessionID,
		"outcome", res.Outcome,
		"placements", res.Placements,
		"id", id,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastSavedResult returns the ledger ID of the last recorded game.
func (m GameModel) LastSavedResult() string {
	return m.lastSaved
}

// GameState returns the state seen on the last tick.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game. It returns true
// when the player asked to go back to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		runner{model},
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks place marks
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if r, ok := final.(runner); ok {
		return r.BackToMenu(), nil
	}
	return false, nil
}

// runner ends the program when a standalone game asks for the menu.
type runner struct {
	GameModel
}

func (r runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		r.GameModel = gm
	}
	if r.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}
