package tictactoe

import (
	"strings"

	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Variant    string
	Board      string // row-major, '.' for empty
	Turn       string // "X", "O" or "" once decided
	Placed     int
	RemainingX int
	RemainingO int
	Outcome    string
	Line       string // winning line, empty unless won
	CursorRow  int
	CursorCol  int
	Paused     bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Variant:   string(g.variant),
		CursorRow: g.cursor.Row,
		CursorCol: g.cursor.Col,
		Paused:    g.paused,
	}
	if g.eng == nil {
		return s
	}

	var sb strings.Builder
	for _, m := range g.eng.Grid().Flat() {
		if m == engine.Empty {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(m.String())
	}

	out := g.eng.Outcome()
	s.Board = sb.String()
	s.Turn = g.eng.CurrentTurn().String()
	s.Placed = g.eng.Placed()
	s.RemainingX, s.RemainingO = g.eng.RemainingCounts()
	s.Outcome = out.String()
	if out.Kind == engine.Won {
		s.Line = out.Line.String()
	}
	return s
}
