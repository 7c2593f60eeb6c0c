package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// MinInitialCount is the smallest per-side supply that can fill the board.
// Engines clamp configured counts up to it so a draw never runs dry while
// cells are still empty.
const MinInitialCount = (CellCount + 1) / 2

// State is the engine's lifecycle state.
type State int

const (
	Active State = iota
	Terminal
)

// PlacementResult describes a successful placement.
type PlacementResult struct {
	Cell       Cell
	Assigned   Mark
	Grid       Grid
	Outcome    Outcome
	RemainingX int
	RemainingO int
}

// WinningLine returns the completed line when the placement won the game.
func (r PlacementResult) WinningLine() (Line, bool) {
	if r.Outcome.Kind != Won {
		return Line{}, false
	}
	return r.Outcome.Line, true
}

type options struct {
	rng          RandSource
	initialCount int
	supply       *SupplyAllocator
	noSupply     bool
}

// Option configures a BoardEngine.
type Option func(*options)

// WithRand injects the random source used for mark assignment.
func WithRand(rng RandSource) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithInitialCount sets the per-side supply. Values below MinInitialCount
// are raised to it.
func WithInitialCount(n int) Option {
	return func(o *options) {
		o.initialCount = n
	}
}

// WithSupply makes the engine draw from an existing allocator. Its initial
// count replaces any WithInitialCount value.
func WithSupply(a *SupplyAllocator) Option {
	return func(o *options) {
		o.supply = a
	}
}

// WithoutSupply disables random assignment: every placement receives the
// current turn label, giving plain alternating tic-tac-toe.
func WithoutSupply() Option {
	return func(o *options) {
		o.noSupply = true
	}
}

// BoardEngine owns the grid, the supply and the turn label, and evaluates
// the outcome after every placement.
type BoardEngine struct {
	supply  *SupplyAllocator // nil when marks follow the turn label
	initial int
	grid    Grid
	turn    Mark
	placed  int
	state   State
	outcome Outcome
}

// New creates an engine in the Active state with an empty grid, a full
// supply and X to move.
func New(opts ...Option) *BoardEngine {
	o := options{initialCount: DefaultInitialCount}
	for _, opt := range opts {
		opt(&o)
	}
	if o.supply != nil {
		o.initialCount = o.supply.InitialCount()
	}

	if o.initialCount < MinInitialCount {
		o.initialCount = MinInitialCount
	}

	e := &BoardEngine{initial: o.initialCount}
	switch {
	case o.noSupply:
	case o.supply != nil:
		e.supply = o.supply
		if o.rng != nil {
			e.supply.SetRand(o.rng)
		}
	default:
		rng := o.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // game randomness
		}
		e.supply = NewSupplyAllocator(rng, o.initialCount)
	}

	e.Reset()
	return e
}

// Reset clears the grid, refills the supply and hands the turn to X.
func (e *BoardEngine) Reset() {
	e.grid = Grid{}
	e.turn = X
	e.placed = 0
	e.state = Active
	e.outcome = Outcome{}
	if e.supply != nil {
		e.supply.Reset(e.initial)
	}
}

// Reseed replaces the random source. It has no effect without a supply.
func (e *BoardEngine) Reseed(rng RandSource) {
	if e.supply != nil {
		e.supply.SetRand(rng)
	}
}

// PlaceMark draws a mark for the cell at (row, col) and writes it.
//
// It fails with ErrInvalidCell for coordinates off the board, ErrGameOver
// once the game is decided and ErrCellOccupied for a marked cell. On any
// error the engine is left exactly as it was.
func (e *BoardEngine) PlaceMark(row, col int) (PlacementResult, error) {
	cell := Cell{Row: row, Col: col}
	if !cell.Valid() {
		return PlacementResult{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, row, col)
	}
	if e.state == Terminal {
		return PlacementResult{}, fmt.Errorf("%w: %s", ErrGameOver, e.outcome)
	}
	if e.grid[row][col] != Empty {
		return PlacementResult{}, fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, row, col)
	}

	mark := e.turn
	if e.supply != nil {
		var err error
		mark, err = e.supply.Draw()
		if err != nil {
			return PlacementResult{}, fmt.Errorf("place (%d,%d): %w", row, col, err)
		}
	}

	e.grid[row][col] = mark
	e.turn = e.turn.Opponent()
	e.placed++

	e.outcome = e.EvaluateOutcome()
	if e.outcome.Terminal() {
		e.state = Terminal
	}

	rx, ro := e.RemainingCounts()
	return PlacementResult{
		Cell:       cell,
		Assigned:   mark,
		Grid:       e.grid,
		Outcome:    e.outcome,
		RemainingX: rx,
		RemainingO: ro,
	}, nil
}

// EvaluateOutcome derives the outcome from the current grid. X is checked
// before O, and within a symbol the first complete line in Lines order is
// reported.
func (e *BoardEngine) EvaluateOutcome() Outcome {
	return evaluate(e.grid, e.placed)
}

// Evaluate derives the outcome of an arbitrary grid, counting its filled
// cells as the placed-count.
func Evaluate(g Grid) Outcome {
	return evaluate(g, g.Filled())
}

func evaluate(g Grid, placed int) Outcome {
	for _, sym := range [...]Mark{X, O} {
		if line, ok := completeLine(g, sym); ok {
			return Outcome{Kind: Won, Winner: sym, Line: line}
		}
	}
	if placed >= CellCount {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: InProgress}
}

func completeLine(g Grid, sym Mark) (Line, bool) {
	for _, line := range Lines {
		if g.At(line[0]) == sym && g.At(line[1]) == sym && g.At(line[2]) == sym {
			return line, true
		}
	}
	return Line{}, false
}

// RemainingCounts returns the supply left per side, or (0, 0) when the
// engine runs without a supply.
func (e *BoardEngine) RemainingCounts() (x, o int) {
	if e.supply == nil {
		return 0, 0
	}
	return e.supply.Remaining()
}

// Probability returns the odds of the next mark being X and O.
func (e *BoardEngine) Probability() (px, po float64) {
	if e.supply == nil {
		if e.state == Terminal {
			return 0, 0
		}
		if e.turn == X {
			return 1, 0
		}
		return 0, 1
	}
	return e.supply.Probability()
}

// CurrentTurn returns the display label of the side to move, or Empty once
// the game is decided.
func (e *BoardEngine) CurrentTurn() Mark {
	if e.state == Terminal {
		return Empty
	}
	return e.turn
}

// HasSupply reports whether marks are drawn from a supply.
func (e *BoardEngine) HasSupply() bool {
	return e.supply != nil
}

// InitialCount returns the per-side supply the engine resets to.
func (e *BoardEngine) InitialCount() int {
	return e.initial
}

// Grid returns a copy of the grid.
func (e *BoardEngine) Grid() Grid {
	return e.grid
}

// Placed returns the number of successful placements since the last reset.
func (e *BoardEngine) Placed() int {
	return e.placed
}

// State returns Active or Terminal.
func (e *BoardEngine) State() State {
	return e.state
}

// Outcome returns the outcome computed by the last placement.
func (e *BoardEngine) Outcome() Outcome {
	return e.outcome
}
