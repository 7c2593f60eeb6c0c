package tictactoe

import (
	"fmt"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
	"github.com/vovakirdan/supply-tictactoe/internal/games/tictactoe/engine"
)

// Board geometry in screen cells.
const (
	cellW = 7
	cellH = 3

	boardW = engine.Size*cellW + engine.Size + 1
	boardH = engine.Size*cellH + engine.Size + 1

	boardTop = 2 // below title and separator
	hudLines = 5 // turn, supply, odds, status, help

	minScreenW = boardW + 2
	minScreenH = boardTop + boardH + hudLines
)

// layout maps board cells to screen rectangles.
type layout struct {
	board    core.Rect
	cells    [engine.CellCount]core.Rect
	tooSmall bool
}

func newLayout(screenW, screenH int) layout {
	l := layout{tooSmall: screenW < minScreenW || screenH < minScreenH}
	l.board = core.NewRect((screenW-boardW)/2, boardTop, boardW, boardH)
	for i := 0; i < engine.CellCount; i++ {
		c := engine.CellAt(i)
		l.cells[i] = core.NewRect(
			l.board.X+1+c.Col*(cellW+1),
			l.board.Y+1+c.Row*(cellH+1),
			cellW, cellH,
		)
	}
	return l
}

// cellAt returns the board cell under screen position (x, y). Grid lines
// belong to no cell.
func (l layout) cellAt(x, y int) (engine.Cell, bool) {
	if l.tooSmall {
		return engine.Cell{}, false
	}
	for i, r := range l.cells {
		if r.Contains(x, y) {
			return engine.CellAt(i), true
		}
	}
	return engine.Cell{}, false
}

// CellRect returns the screen rectangle of a cell for the current layout.
func (g *Game) CellRect(c engine.Cell) core.Rect {
	return g.layout.cells[c.Index()]
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if dst.Width() != g.runtime.ScreenW || dst.Height() != g.runtime.ScreenH {
		g.runtime.ScreenW, g.runtime.ScreenH = dst.Width(), dst.Height()
		g.layout = newLayout(dst.Width(), dst.Height())
	}

	dst.DrawTextCentered(0, g.Title(), core.ColorAccent)
	for x, w := 0, dst.Width(); x < w; x++ {
		dst.SetColor(x, 1, '─', core.ColorDim)
	}

	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderGrid(dst)
	g.renderMarks(dst)
	g.renderHUD(dst)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderGrid(dst *core.Screen) {
	b := g.layout.board
	dst.DrawBox(b, core.ColorDim)

	for i := 1; i < engine.Size; i++ {
		x := b.X + i*(cellW+1)
		y := b.Y + i*(cellH+1)
		for yy := b.Y + 1; yy < b.Bottom()-1; yy++ {
			dst.SetColor(x, yy, '│', core.ColorDim)
		}
		for xx := b.X + 1; xx < b.Right()-1; xx++ {
			dst.SetColor(xx, y, '─', core.ColorDim)
		}
		dst.SetColor(x, b.Y, '┬', core.ColorDim)
		dst.SetColor(x, b.Bottom()-1, '┴', core.ColorDim)
		dst.SetColor(b.X, y, '├', core.ColorDim)
		dst.SetColor(b.Right()-1, y, '┤', core.ColorDim)
	}
	for i := 1; i < engine.Size; i++ {
		for j := 1; j < engine.Size; j++ {
			dst.SetColor(b.X+i*(cellW+1), b.Y+j*(cellH+1), '┼', core.ColorDim)
		}
	}
}

func (g *Game) renderMarks(dst *core.Screen) {
	grid := g.eng.Grid()
	out := g.eng.Outcome()
	active := g.eng.State() == engine.Active

	for i, r := range g.layout.cells {
		c := engine.CellAt(i)
		cx, cy := r.Center()

		switch m := grid.At(c); m {
		case engine.Empty:
			if active {
				dst.SetColor(r.X, r.Y, rune('1'+i), core.ColorDim)
			}
		default:
			color := markColor(m)
			if out.Kind == engine.Won && out.Line.Contains(c) {
				color = core.ColorWinLine
				dst.SetColor(cx-2, cy, '═', color)
				dst.SetColor(cx+2, cy, '═', color)
			}
			dst.SetColor(cx, cy, []rune(m.String())[0], color)
		}

		if active && c == g.cursor {
			dst.SetColor(cx-1, cy, '[', core.ColorCursor)
			dst.SetColor(cx+1, cy, ']', core.ColorCursor)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	y := g.layout.board.Bottom()
	x := g.layout.board.X

	// Turn label: whose turn, or NO once the game is decided.
	turn := g.eng.CurrentTurn()
	label, color := "NO", core.ColorNeutral
	if turn != engine.Empty {
		label, color = turn.String(), markColor(turn)
	}
	dst.DrawText(x, y, "Turn: ")
	dst.DrawTextColor(x+6, y, label, color)

	switch out := g.eng.Outcome(); out.Kind {
	case engine.Won:
		dst.DrawTextColor(x+10, y, out.Winner.String()+" wins!", markColor(out.Winner))
	case engine.Draw:
		dst.DrawTextColor(x+10, y, "Draw", core.ColorNeutral)
	}

	if g.eng.HasSupply() {
		if g.cfg.Display.ShowRemaining {
			rx, ro := g.eng.RemainingCounts()
			dst.DrawText(x, y+1, "Supply: ")
			dst.DrawTextColor(x+8, y+1, fmt.Sprintf("X %d", rx), core.ColorMarkX)
			dst.DrawTextColor(x+14, y+1, fmt.Sprintf("O %d", ro), core.ColorMarkO)
		}
		if g.cfg.Display.ShowOdds && g.eng.State() == engine.Active {
			px, po := g.eng.Probability()
			dst.DrawText(x, y+2, "Next:   ")
			dst.DrawTextColor(x+8, y+2, fmt.Sprintf("X %2.0f%%", px*100), core.ColorMarkX)
			dst.DrawTextColor(x+16, y+2, fmt.Sprintf("O %2.0f%%", po*100), core.ColorMarkO)
		}
	} else {
		dst.DrawTextColor(x, y+1, "Marks alternate", core.ColorDim)
	}

	if g.status != "" {
		dst.DrawTextColor(x, y+3, g.status, core.ColorWarn)
	}

	help := "Arrows move  Enter place  1-9 cell  P pause  Q quit"
	if g.eng.State() == engine.Terminal {
		help = "R rematch  Q quit"
	}
	dst.DrawTextCentered(y+4, help, core.ColorDim)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorAccent)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorAccent)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}

func markColor(m engine.Mark) core.Color {
	switch m {
	case engine.X:
		return core.ColorMarkX
	case engine.O:
		return core.ColorMarkO
	default:
		return core.ColorNeutral
	}
}
