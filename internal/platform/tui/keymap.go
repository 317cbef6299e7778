package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clapjump/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// The keyboard is always available as a fallback for the microphone.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionJump {
		frame.Source = core.SourceKeyboard
	}
	frame.Set(action)
	return isQuit
}

// SensitivityDelta returns +1 or -1 for the sensitivity keys, 0 otherwise.
func (km *KeyMapper) SensitivityDelta(msg tea.KeyMsg) int {
	switch msg.String() {
	case "+", "=":
		return 1
	case "-", "_":
		return -1
	}
	return 0
}

// IsMicToggle reports whether the key switches the microphone on or off.
func (km *KeyMapper) IsMicToggle(msg tea.KeyMsg) bool {
	return msg.String() == "m"
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
