package core

// Action is a semantic input, decoupled from the physical key.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter, Space
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P

	// ActionCell1..ActionCell9 select a board cell directly, numbered
	// row-major from the top-left.
	ActionCell1
	ActionCell2
	ActionCell3
	ActionCell4
	ActionCell5
	ActionCell6
	ActionCell7
	ActionCell8
	ActionCell9
)

// CellAction returns the direct-selection action for a 0-based index.
func CellAction(index int) Action {
	if index < 0 || index > 8 {
		return ActionNone
	}
	return ActionCell1 + Action(index)
}

// CellIndex returns the 0-based cell index for a direct-selection action.
func (a Action) CellIndex() (int, bool) {
	if a < ActionCell1 || a > ActionCell9 {
		return 0, false
	}
	return int(a - ActionCell1), true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if idx, ok := a.CellIndex(); ok {
		return "Cell" + string(rune('1'+idx))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer is a mouse click in screen coordinates.
type Pointer struct {
	X, Y int
}

// InputFrame collects the input gathered between two game steps.
type InputFrame struct {
	Actions map[Action]bool

	// Click is the last pointer press of the frame, if any.
	Click *Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetClick records a pointer press at (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Pointer{X: x, Y: y}
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Click == nil
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = nil
}

// Clone creates an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Click != nil {
		p := *f.Click
		clone.Click = &p
	}
	return clone
}
