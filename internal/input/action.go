// internal/input/action.go
package input

// Action represents a viewer command bound to a key.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- Gestures ---
	ActionCancelGesture // abandon the press in progress and restore the document

	// --- View ---
	ActionNextTheme
	ActionReload // re-read the file from disk and render it again
	ActionToggleWrap
	ActionHelp
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionCancelGesture:
		return "cancel"
	case ActionNextTheme:
		return "theme"
	case ActionReload:
		return "reload"
	case ActionToggleWrap:
		return "wrap"
	case ActionHelp:
		return "help"
	}
	return "unknown"
}

// ActionEvent represents a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // the key pressed, when it was a rune
}
