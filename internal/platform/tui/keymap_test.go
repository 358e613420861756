package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"r", runeKey('r'), core.ActionRestart},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapMapKeyToFrame(t *testing.T) {
	km := DefaultKeyMap()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('w'), &frame) {
		t.Error("Jump should not be a quit request")
	}
	if !frame.Has(core.ActionJump) {
		t.Error("Frame should contain the jump action")
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should be a quit request")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("Quit should not be forwarded to the game")
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected core.Action
	}{
		{"left press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.ActionJump},
		{"left release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, core.ActionNone},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.ActionNone},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapMouse(tc.msg); got != tc.expected {
				t.Errorf("MapMouse() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestKeyMapHelpLine(t *testing.T) {
	line := DefaultKeyMap().HelpLine()
	for _, want := range []string{"space flap", "p/esc pause", "r restart", "q quit"} {
		if !strings.Contains(line, want) {
			t.Errorf("HelpLine() = %q, missing %q", line, want)
		}
	}
}
