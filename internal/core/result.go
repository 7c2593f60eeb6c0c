package core

// Result summarises a finished game for the results ledger.
type Result struct {
	Outcome     string // "x_won", "o_won" or "draw"
	Winner      string // "X", "O" or "" for a draw
	WinningLine string // "r,c r,c r,c", empty for a draw
	Placements  int
	RemainingX  int
	RemainingO  int
}

// Outcome values stored in Result.Outcome.
const (
	OutcomeXWon = "x_won"
	OutcomeOWon = "o_won"
	OutcomeDraw = "draw"
)
