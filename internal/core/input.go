package core

// Action is a semantic player intent, decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotateCW
	ActionRotateCCW
	ActionPause
	ActionRestart
	ActionConfirm
	ActionBack
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionMoveLeft:  "MoveLeft",
	ActionMoveRight: "MoveRight",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the ordered list of actions triggered during one tick.
// Order matters: a move followed by a rotation is not the same as the reverse.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends a to the frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	if f.Actions == nil {
		return InputFrame{}
	}
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
