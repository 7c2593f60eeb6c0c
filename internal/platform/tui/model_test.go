package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/supply-tictactoe/internal/config"
	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe"
	"github.com/vovakirdan/supply-tictactoe/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send feeds a message and then a tick, as the runtime would.
func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	next, _ = next.(GameModel).Update(TickMsg(time.Now()))
	return next.(GameModel)
}

func newClassicModel(t *testing.T, store *storage.Store) GameModel {
	t.Helper()
	game := tictactoe.New(config.VariantClassic, tictactoe.WithConfig(config.DefaultTicTacToeConfig()))
	return NewGameModel(game, store, testConfig, WithSession("tester"))
}

func TestGameModelRecordsFinishedGameOnce(t *testing.T) {
	store := openStore(t)
	m := newClassicModel(t, store)

	// X: 1 2 3, O: 4 5
	for _, r := range "14253" {
		m = send(t, m, runeKey(r))
	}

	if !m.GameState().GameOver {
		t.Fatal("Expected the game to be over")
	}
	if m.LastSavedResult() == "" {
		t.Fatal("Expected the result to be saved")
	}

	// More ticks must not write again.
	for i := 0; i < 5; i++ {
		m = send(t, m, TickMsg(time.Now()))
	}

	tally, err := store.Tally(tictactoe.IDClassic)
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 1 || tally.XWins != 1 {
		t.Errorf("Expected one X win, got %+v", tally)
	}

	entry, err := store.ResultByID(m.LastSavedResult())
	if err != nil || entry == nil {
		t.Fatalf("ResultByID() = %v, %v", entry, err)
	}
	if entry.SessionID != "tester" || entry.WinningLine != "0,0 0,1 0,2" {
		t.Errorf("Unexpected ledger entry: %+v", entry)
	}
}

func TestGameModelRematchRecordsAgain(t *testing.T) {
	store := openStore(t)
	m := newClassicModel(t, store)

	for _, r := range "14253" {
		m = send(t, m, runeKey(r))
	}
	m = send(t, m, runeKey('r'))
	if m.GameState().GameOver {
		t.Fatal("Expected a fresh game after R")
	}

	// O wins the rematch: X 1 2 9, O 4 5 6
	for _, r := range "142596" {
		m = send(t, m, runeKey(r))
	}

	tally, err := store.Tally(tictactoe.IDClassic)
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 2 || tally.XWins != 1 || tally.OWins != 1 {
		t.Errorf("Expected one win each, got %+v", tally)
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	m := newClassicModel(t, nil)

	for _, r := range "14253" {
		m = send(t, m, runeKey(r))
	}

	if !m.GameState().GameOver {
		t.Fatal("Expected the game to be over")
	}
	if m.LastSavedResult() != "" {
		t.Errorf("Expected nothing saved without a store, got %q", m.LastSavedResult())
	}
}

func TestGameModelClickPlaces(t *testing.T) {
	game := tictactoe.New(config.VariantClassic, tictactoe.WithConfig(config.DefaultTicTacToeConfig()))
	m := NewGameModel(game, nil, testConfig)

	x, y := game.CellRect(game.Cursor()).Center()
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if got := m.GameState().Score; got != 1 {
		t.Errorf("Expected one placement after a click, got %d", got)
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := newClassicModel(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Expected Esc to be ignored mid-game")
	}

	m = send(t, m, runeKey('p'))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Expected Esc to leave a paused game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newClassicModel(t, nil)

	next, cmd := m.Update(runeKey('q'))

	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("Expected q to quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("Expected an empty view after quitting")
	}
}

func TestGameModelViewShowsBoard(t *testing.T) {
	m := newClassicModel(t, nil)

	view := m.View()

	if !strings.Contains(view, "Tic-Tac-Toe (Classic)") {
		t.Errorf("Expected the title in the view:\n%s", view)
	}
}

func TestResultRows(t *testing.T) {
	entries := []storage.ResultEntry{
		{Result: core.Result{Outcome: core.OutcomeOWon, WinningLine: "0,2 1,1 2,0", Placements: 6, RemainingX: 2, RemainingO: 2}},
		{Result: core.Result{Outcome: core.OutcomeDraw, Placements: 9, RemainingO: 1}},
	}

	rows := ResultRows(entries)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "O won" || rows[0][2] != "0,2 1,1 2,0" || rows[0][4] != "2/2" {
		t.Errorf("Unexpected first row: %v", rows[0])
	}
	if rows[1][1] != "Draw" || rows[1][2] != "-" || rows[1][3] != "9" {
		t.Errorf("Unexpected second row: %v", rows[1])
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	var m tea.Model = NewSessionModel(store, testConfig, "session-test", nil)

	// Tab opens the results board, Esc comes back.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s := m.(SessionModel); s.current != screenResults {
		t.Fatalf("Expected results screen, got %v", s.current)
	}
	if !strings.Contains(m.View(), "RESULTS") {
		t.Errorf("Expected the results board:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.(SessionModel); s.current != screenMenu {
		t.Fatalf("Expected menu after Esc, got %v", s.current)
	}

	// Enter starts the highlighted variant.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := m.(SessionModel)
	if s.current != screenGame || s.gameModel == nil {
		t.Fatalf("Expected a game to start, got screen %v", s.current)
	}
	if cmd == nil {
		t.Error("Expected the game tick loop to start")
	}

	// Pause, then back to the menu.
	m, _ = m.Update(runeKey('p'))
	m, _ = m.Update(TickMsg(time.Now()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.(SessionModel); s.current != screenMenu {
		t.Errorf("Expected menu after leaving a paused game, got %v", s.current)
	}

	m, _ = m.Update(runeKey('q'))
	if !m.(SessionModel).quitting {
		t.Error("Expected q to quit the session")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(3, 1, 'X', core.ColorMarkX)

	out := RenderScreen(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("Expected default-colour text unstyled, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "X") {
		t.Errorf("Expected the X mark in row 2, got %q", lines[1])
	}
}
