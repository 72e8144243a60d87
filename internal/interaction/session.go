// Package interaction drives one gesture at a time over a rendered document:
// it highlights the action under the pointer, follows the pointer as it
// moves, and on completion either dispatches the action or restores the
// document exactly as it was.
package interaction

import (
	"fmt"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/hittest"
)

// State is the lifecycle position of a surface's session.
type State int

const (
	Idle State = iota
	Armed
	Committed
	Reverted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Committed:
		return "committed"
	case Reverted:
		return "reverted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// session is the per-gesture state. backup is the document shown when the
// gesture began; it is the only document ever hit-tested during the gesture
// and the one restored at the end.
type session struct {
	backup  *document.Document
	matched *hittest.Match
}

// Outcome reports how End or Cancel finished a session. Committed and
// Reverted are terminal: by the time an Outcome is returned the surface is
// back to Idle.
type Outcome struct {
	State   State
	Reason  string         // why a session was reverted, see event.Reason*
	Result  *action.Result // set when State is Committed
	Trigger action.Trigger // trigger of the action that was dispatched or rejected
}

// Dispatched reports whether a callback ran.
func (o Outcome) Dispatched() bool {
	return o.State == Committed && o.Result != nil
}
