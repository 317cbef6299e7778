package core

// Action is a semantic input, independent of the key or sound behind it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionJump // the single game input: a clap, Space or Up
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputSource tells where a jump came from.
type InputSource int

const (
	SourceKeyboard InputSource = iota
	SourceClap
)

func (s InputSource) String() string {
	if s == SourceClap {
		return "clap"
	}
	return "keyboard"
}

// InputFrame is the set of actions triggered during one tick.
type InputFrame struct {
	actions uint32
	Source  InputSource // origin of ActionJump, when set
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions |= 1 << uint(a)
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.actions&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.actions == 0
}

// Clear removes every action.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Source = SourceKeyboard
}
