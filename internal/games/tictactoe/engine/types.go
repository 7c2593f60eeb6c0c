// Package engine implements the rules of supply tic-tac-toe: a 3x3 grid where
// the mark written into a cell is drawn at random from a finite supply of X
// and O marks, weighted by how many of each remain.
//
// The package has no UI or platform dependencies. A BoardEngine is owned by a
// single caller and must not be mutated concurrently.
package engine

import "fmt"

// Size is the fixed board dimension.
const Size = 3

// CellCount is the number of cells on the board.
const CellCount = Size * Size

// Mark is the occupancy value of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns "X", "O" or "" for Empty.
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other symbol. Empty stays Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Cell identifies one of the nine board positions.
type Cell struct {
	Row, Col int
}

// Valid reports whether both coordinates are inside [0,3).
func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// Index returns the row-major index of the cell (0 is top-left).
func (c Cell) Index() int {
	return c.Row*Size + c.Col
}

// String formats the cell as "r,c".
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// CellAt returns the cell for a row-major index.
func CellAt(index int) Cell {
	return Cell{Row: index / Size, Col: index % Size}
}

// Grid is the 3x3 occupancy grid, indexed [row][col].
type Grid [Size][Size]Mark

// At returns the mark at the given cell.
func (g Grid) At(c Cell) Mark {
	return g[c.Row][c.Col]
}

// Flat returns the nine values in row-major order.
func (g Grid) Flat() [CellCount]Mark {
	var out [CellCount]Mark
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r*Size+c] = g[r][c]
		}
	}
	return out
}

// Filled returns the number of non-empty cells.
func (g Grid) Filled() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Line is a triple of cells that wins when uniformly one symbol.
type Line [Size]Cell

// Contains reports whether the line passes through c.
func (l Line) Contains(c Cell) bool {
	for _, lc := range l {
		if lc == c {
			return true
		}
	}
	return false
}

// String formats the line as "r,c r,c r,c".
func (l Line) String() string {
	return fmt.Sprintf("%s %s %s", l[0], l[1], l[2])
}

// Lines holds the eight candidate lines in evaluation order: rows top to
// bottom, columns left to right, forward diagonal, backward diagonal.
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// OutcomeKind classifies a game outcome.
type OutcomeKind int

const (
	InProgress OutcomeKind = iota
	Won
	Draw
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome is derived from the grid after every placement. Winner and Line
// are only meaningful when Kind is Won.
type Outcome struct {
	Kind   OutcomeKind
	Winner Mark
	Line   Line
}

// Terminal reports whether no further placements are accepted.
func (o Outcome) Terminal() bool {
	return o.Kind != InProgress
}

// String returns "X won", "O won", "draw" or "in progress".
func (o Outcome) String() string {
	if o.Kind == Won {
		return o.Winner.String() + " won"
	}
	return o.Kind.String()
}
