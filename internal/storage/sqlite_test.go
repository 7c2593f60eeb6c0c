package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var (
	xWin = core.Result{
		Outcome:     core.OutcomeXWon,
		Winner:      "X",
		WinningLine: "0,0 0,1 0,2",
		Placements:  5,
		RemainingX:  2,
		RemainingO:  3,
	}
	oWin = core.Result{
		Outcome:     core.OutcomeOWon,
		Winner:      "O",
		WinningLine: "0,2 1,1 2,0",
		Placements:  7,
		RemainingX:  1,
		RemainingO:  2,
	}
	draw = core.Result{
		Outcome:    core.OutcomeDraw,
		Placements: 9,
		RemainingO: 1,
	}
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult("tictactoe", "", xWin)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected a UUID result ID, got %q: %v", id, err)
	}

	got, err := store.ResultByID(id)
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected the saved result to be found")
	}
	if got.Result != xWin {
		t.Errorf("Round trip mismatch: want %+v, got %+v", xWin, got.Result)
	}
	if got.GameID != "tictactoe" || got.SessionID != LocalSession {
		t.Errorf("Unexpected game/session: %q/%q", got.GameID, got.SessionID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	missing, err := store.ResultByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for an unknown ID, got %v, %v", missing, err)
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveResult("tictactoe", "", core.Result{Outcome: "in_progress"})

	if !errors.Is(err, ErrUnknownOutcome) {
		t.Errorf("Expected ErrUnknownOutcome, got %v", err)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.Result{xWin, oWin, draw, xWin} {
		if _, err := store.SaveResult("tictactoe", "s1", r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	if _, err := store.SaveResult("tictactoe_classic", "s2", oWin); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	recent, err := store.RecentResults("tictactoe", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(recent))
	}

	// Newest first
	want := []string{core.OutcomeXWon, core.OutcomeDraw, core.OutcomeOWon}
	for i, w := range want {
		if recent[i].Outcome != w {
			t.Errorf("Result %d: expected %s, got %s", i, w, recent[i].Outcome)
		}
	}

	all, err := store.RecentResults("", 0)
	if err != nil {
		t.Fatalf("RecentResults(all) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 results across games, got %d", len(all))
	}
	if all[0].GameID != "tictactoe_classic" {
		t.Errorf("Expected the classic game newest, got %s", all[0].GameID)
	}
}

func TestStoreTally(t *testing.T) {
	store := openTestStore(t)

	// No results yet
	empty, err := store.Tally("tictactoe")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected an empty tally, got %+v", empty)
	}

	for _, r := range []core.Result{xWin, xWin, oWin, draw} {
		store.SaveResult("tictactoe", "", r)
	}

	tally, err := store.Tally("tictactoe")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 4 || tally.XWins != 2 || tally.OWins != 1 || tally.Draws != 1 {
		t.Errorf("Unexpected tally: %+v", tally)
	}
	if want := (5.0 + 5 + 7 + 9) / 4; tally.AvgPlacements != want {
		t.Errorf("Expected average placements %.2f, got %.2f", want, tally.AvgPlacements)
	}
	if tally.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}

func TestStoreAllTallies(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult("tictactoe", "", xWin)
	store.SaveResult("tictactoe_fair", "", draw)
	store.SaveResult("tictactoe_fair", "", oWin)

	tallies, err := store.AllTallies()
	if err != nil {
		t.Fatalf("AllTallies() failed: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("Expected 2 tallies, got %d", len(tallies))
	}
	if fair := tallies["tictactoe_fair"]; fair.Games != 2 || fair.Draws != 1 || fair.OWins != 1 {
		t.Errorf("Unexpected fair tally: %+v", fair)
	}
	if _, ok := tallies["tictactoe_classic"]; ok {
		t.Error("Expected no tally for an unplayed game")
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult("tictactoe", "", xWin)
	store.SaveResult("tictactoe", "", draw)
	store.SaveResult("tictactoe_classic", "", oWin)

	// Clear only the weighted variant
	n, err := store.ClearResults("tictactoe")
	if err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows cleared, got %d", n)
	}

	left, _ := store.RecentResults("tictactoe", 10)
	if len(left) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(left))
	}

	classic, _ := store.RecentResults("tictactoe_classic", 10)
	if len(classic) != 1 {
		t.Errorf("Classic results should not be affected by clearing tictactoe")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveResult("tictactoe", "", draw)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	tally, err := store.Tally("tictactoe")
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if tally.Games != 1 {
		t.Errorf("Expected 1 game after reopen, got %d", tally.Games)
	}
}
