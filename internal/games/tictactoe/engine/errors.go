package engine

import "errors"

// Errors returned by engine operations. They are wrapped with the offending
// cell where one exists, so compare with errors.Is.
var (
	// ErrInvalidCell means the coordinates are outside the board. Correct
	// callers never produce it.
	ErrInvalidCell = errors.New("invalid cell")

	// ErrCellOccupied means the cell already holds a mark. Usually a
	// duplicate input event; safe to ignore.
	ErrCellOccupied = errors.New("cell is already occupied")

	// ErrGameOver means the game reached a win or draw and needs a reset.
	ErrGameOver = errors.New("game is over")

	// ErrExhaustedSupply means a draw was attempted with no marks left.
	// The engine never triggers it while the board has space, so seeing it
	// indicates the supply and placement counters have drifted apart.
	ErrExhaustedSupply = errors.New("mark supply is exhausted")
)
