// Package storage provides the SQLite results ledger: one row per finished
// game. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

// LocalSession is the session ID recorded for games played in a local terminal.
const LocalSession = "local"

// ErrUnknownOutcome is returned when a result carries an outcome the ledger
// does not store.
var ErrUnknownOutcome = errors.New("storage: unknown outcome")

// Store manages the SQLite database connection for the results ledger.
type Store struct {
	db *sql.DB
}

// ResultEntry is one finished game.
type ResultEntry struct {
	ID        int64
	ResultID  string // UUID, stable across exports
	GameID    string
	SessionID string
	core.Result
	CreatedAt time.Time
}

// Tally aggregates the results of one game variant.
type Tally struct {
	GameID        string
	Games         int
	XWins         int
	OWins         int
	Draws         int
	AvgPlacements float64
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			result_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			winning_line TEXT NOT NULL DEFAULT '',
			placements INTEGER NOT NULL,
			remaining_x INTEGER NOT NULL DEFAULT 0,
			remaining_o INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns its result ID.
func (s *Store) SaveResult(gameID, sessionID string, res core.Result) (string, error) {
	switch res.Outcome {
	case core.OutcomeXWon, core.OutcomeOWon, core.OutcomeDraw:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, res.Outcome)
	}
	if sessionID == "" {
		sessionID = LocalSession
	}

	resultID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO results
		 (result_id, game_id, session_id, outcome, winner, winning_line, placements, remaining_x, remaining_o)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resultID, gameID, sessionID,
		res.Outcome, res.Winner, res.WinningLine,
		res.Placements, res.RemainingX, res.RemainingO,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	return resultID, nil
}

const resultColumns = `id, result_id, game_id, session_id, outcome, winner, winning_line,
	placements, remaining_x, remaining_o, created_at`

// RecentResults returns the latest results for a game, newest first. An
// empty gameID returns results across all games.
func (s *Store) RecentResults(gameID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if gameID == "" {
		rows, err = s.db.Query(
			`SELECT `+resultColumns+` FROM results ORDER BY id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+resultColumns+` FROM results WHERE game_id = ? ORDER BY id DESC LIMIT ?`,
			gameID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.ResultID, &e.GameID, &e.SessionID,
			&e.Outcome, &e.Winner, &e.WinningLine,
			&e.Placements, &e.RemainingX, &e.RemainingO,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ResultByID looks up one result. It returns nil, nil when none matches.
func (s *Store) ResultByID(resultID string) (*ResultEntry, error) {
	var e ResultEntry
	var createdAt any

	err := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE result_id = ?`,
		resultID,
	).Scan(
		&e.ID, &e.ResultID, &e.GameID, &e.SessionID,
		&e.Outcome, &e.Winner, &e.WinningLine,
		&e.Placements, &e.RemainingX, &e.RemainingO,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}

	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

const tallyColumns = `COUNT(*),
	COALESCE(SUM(CASE WHEN outcome = 'x_won' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN outcome = 'o_won' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN outcome = 'draw' THEN 1 ELSE 0 END), 0),
	COALESCE(AVG(placements), 0),
	MAX(created_at)`

// Tally aggregates all results of a game. A game with no results yields a
// zero tally, not an error.
func (s *Store) Tally(gameID string) (*Tally, error) {
	t := &Tally{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT `+tallyColumns+` FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&t.Games, &t.XWins, &t.OWins, &t.Draws, &t.AvgPlacements, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tally: %w", err)
	}

	t.LastPlayed = parseTimestamp(lastPlayed)
	return t, nil
}

// AllTallies returns a tally for every game that has results.
func (s *Store) AllTallies() (map[string]*Tally, error) {
	rows, err := s.db.Query(
		`SELECT game_id, ` + tallyColumns + ` FROM results GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tallies: %w", err)
	}
	defer rows.Close()

	tallies := make(map[string]*Tally)
	for rows.Next() {
		var t Tally
		var lastPlayed any
		if err := rows.Scan(&t.GameID, &t.Games, &t.XWins, &t.OWins, &t.Draws, &t.AvgPlacements, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally row: %w", err)
		}
		t.LastPlayed = parseTimestamp(lastPlayed)
		tallies[t.GameID] = &t
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tallies, nil
}

// ClearResults deletes every result for a game and reports how many went.
func (s *Store) ClearResults(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// parseTimestamp handles both time.Time and the string SQLite returns for
// aggregates.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
