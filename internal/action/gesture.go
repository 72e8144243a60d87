package action

import "fmt"

// GestureKind is the concrete interaction observed by the host.
type GestureKind int

const (
	GestureTap GestureKind = iota
	GestureLongPress
	GestureCustom
)

// Phase is the recognition state of a gesture at the time it is reported.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
	PhaseFailed
)

// Gesture describes the interaction that terminated a session.
type Gesture struct {
	Kind  GestureKind
	ID    string // custom gesture name
	Phase Phase
}

// Tap is a completed tap.
func Tap() Gesture { return Gesture{Kind: GestureTap, Phase: PhaseEnded} }

// LongPress is a recognized long press that has been released.
func LongPress() Gesture { return Gesture{Kind: GestureLongPress, Phase: PhaseEnded} }

// Custom is a completed custom gesture.
func Custom(id string) Gesture { return Gesture{Kind: GestureCustom, ID: id, Phase: PhaseEnded} }

func (g Gesture) String() string {
	var kind string
	switch g.Kind {
	case GestureTap:
		kind = "tap"
	case GestureLongPress:
		kind = "long-press"
	case GestureCustom:
		kind = "custom(" + g.ID + ")"
	default:
		kind = fmt.Sprintf("GestureKind(%d)", int(g.Kind))
	}
	return fmt.Sprintf("%s/%d", kind, int(g.Phase))
}
