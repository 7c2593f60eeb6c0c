package core

// Color is a semantic foreground colour for a screen cell. The platform
// decides how each one is rendered.
type Color uint8

const (
	ColorDefault Color = iota
	ColorMarkX         // X marks and labels
	ColorMarkO         // O marks and labels
	ColorNeutral       // turn label once the game is decided
	ColorWinLine       // cells of the winning line
	ColorCursor        // board cursor brackets
	ColorDim           // grid lines and hints
	ColorAccent        // titles and overlays
	ColorWarn          // status messages
)
