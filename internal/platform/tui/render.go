package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

// Mark colours.
const (
	hexMarkX   = "#0672CA"
	hexMarkO   = "#F2545B"
	hexNeutral = "#BEE9E8"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorMarkX:   lipgloss.NewStyle().Foreground(lipgloss.Color(hexMarkX)).Bold(true),
	core.ColorMarkO:   lipgloss.NewStyle().Foreground(lipgloss.Color(hexMarkO)).Bold(true),
	core.ColorNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color(hexNeutral)),
	core.ColorWinLine: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// DisableColorIfRequested switches lipgloss to plain ASCII output when the
// environment asks for no colour (NO_COLOR, CLICOLOR=0). It returns true
// when colour was disabled.
func DisableColorIfRequested() bool {
	if !termenv.EnvNoColor() {
		return false
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	return true
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok || startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
