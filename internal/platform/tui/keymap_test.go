package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"k is up", runeKey('k'), core.ActionUp, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"h is left", runeKey('h'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space confirms", runeKey(' '), core.ActionConfirm, false},
		{"esc is back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"1 is top-left", runeKey('1'), core.ActionCell1, false},
		{"5 is centre", runeKey('5'), core.ActionCell5, false},
		{"9 is bottom-right", runeKey('9'), core.ActionCell9, false},
		{"0 is unbound", runeKey('0'), core.ActionNone, false},
		{"x is unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want {
				t.Errorf("MapKey(%q) action = %v, want %v", tt.msg.String(), got, tt.want)
			}
			if quit != tt.wantQuit {
				t.Errorf("MapKey(%q) quit = %v, want %v", tt.msg.String(), quit, tt.wantQuit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.MouseMsg
		want bool
	}{
		{"left press", tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()

			got := km.MapMouseToFrame(tt.msg, &frame)

			if got != tt.want {
				t.Fatalf("MapMouseToFrame() = %v, want %v", got, tt.want)
			}
			if tt.want && (frame.Click == nil || *frame.Click != (core.Pointer{X: 10, Y: 4})) {
				t.Errorf("Expected click at (10,4), got %+v", frame.Click)
			}
			if !tt.want && frame.Click != nil {
				t.Errorf("Expected no click, got %+v", frame.Click)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('q'), MenuActionQuit},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionResults},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
