package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games react to intents; the platform decides which keys produce them.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow
	ActionRight           // D, L, Right arrow
	ActionDown            // S, J, Down arrow
	ActionLeft            // A, H, Left arrow
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R - start a new game
	ActionContinue        // C - keep playing after a win
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionContinue:
		return "Continue"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four move directions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionLeft
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Move returns the first move action set in the frame, in Up, Right, Down,
// Left order, and false when none is set. One move is applied per tick.
func (f InputFrame) Move() (Action, bool) {
	for _, a := range []Action{ActionUp, ActionRight, ActionDown, ActionLeft} {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}
