// internal/event/event.go
package event

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Interaction lifecycle
	TypeActionHighlighted   // a highlight was applied for a matched action
	TypeActionCleared       // the pointer left the matched action mid-gesture
	TypeActionDispatched    // an action's callback was invoked
	TypeInteractionReverted // a session ended without dispatch

	// Surface
	TypeDocumentChanged // a new document was rendered into a surface
	TypeGeometryChanged // the container was resized

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeActionHighlighted:
		return "ActionHighlighted"
	case TypeActionCleared:
		return "ActionCleared"
	case TypeActionDispatched:
		return "ActionDispatched"
	case TypeInteractionReverted:
		return "InteractionReverted"
	case TypeDocumentChanged:
		return "DocumentChanged"
	case TypeGeometryChanged:
		return "GeometryChanged"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ActionHighlightedData names the span now highlighted.
type ActionHighlightedData struct {
	Surface string
	Range   types.Range
	Trigger action.Trigger
}

// ActionClearedData names the span whose highlight was removed.
type ActionClearedData struct {
	Surface string
	Range   types.Range
}

// ActionDispatchedData carries the result handed to the callback.
type ActionDispatchedData struct {
	Surface string
	Trigger action.Trigger
	Gesture action.Gesture
	Result  action.Result
}

// Revert reasons.
const (
	ReasonNoMatch         = "no-match"
	ReasonTriggerMismatch = "trigger-mismatch"
	ReasonCancelled       = "cancelled"
	ReasonSuperseded      = "superseded"
)

// InteractionRevertedData says why a session ended without dispatch.
type InteractionRevertedData struct {
	Surface string
	Reason  string
	Gesture action.Gesture
}

// DocumentChangedData reports the size of the new document.
type DocumentChangedData struct {
	Surface string
	Length  int
	Actions int
}

// GeometryChangedData carries the new container size.
type GeometryChangedData struct {
	Surface string
	Size    types.Size
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData carries nothing yet.
type AppReadyData struct{}
