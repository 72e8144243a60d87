// Package gesture turns raw tcell mouse events into the begin, move, end and
// cancel calls an interaction surface expects.
package gesture

import (
	"time"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Custom gesture identifiers produced by the non-primary buttons.
const (
	Secondary = "secondary"
	Middle    = "middle"
)

// Kind is the step of a gesture an Event reports.
type Kind int

const (
	Begin Kind = iota
	Move
	End
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case Move:
		return "move"
	case End:
		return "end"
	case Cancel:
		return "cancel"
	}
	return "unknown"
}

// Event is one recognized step. X and Y are screen cells; Gesture is only
// meaningful for End.
type Event struct {
	Kind    Kind
	X, Y    int
	Gesture action.Gesture
}

// Point converts the event's cell into a point relative to a container whose
// top-left cell is (originX, originY). Points sit at the centre of the cell
// so that they fall strictly inside a one-cell glyph.
func (e Event) Point(originX, originY int) types.Point {
	return types.Point{X: float64(e.X-originX) + 0.5, Y: float64(e.Y-originY) + 0.5}
}

// Config tunes recognition.
type Config struct {
	LongPress time.Duration // hold time from which a primary release is a long press
	Slop      int           // cells a tap may drift in either direction
}

// Recognizer tracks one pressed button at a time. Other buttons pressed
// meanwhile are ignored, and once a gesture ends or is cancelled no new one
// starts until every button is up.
type Recognizer struct {
	cfg Config

	pressed bool
	button  tcell.ButtonMask
	startX  int
	startY  int
	lastX   int
	lastY   int
	start   time.Time
	drifted bool
	settle  bool // waiting for all buttons to be released

	custom map[string]bool // nil accepts every custom gesture
}

// New returns an idle recognizer.
func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// SetTriggers limits the custom gestures reported to those some trigger
// listens for. Presses of a button whose gesture nobody uses are ignored.
func (r *Recognizer) SetTriggers(triggers []action.Trigger) {
	r.custom = make(map[string]bool)
	for _, t := range triggers {
		if t.Kind == action.TriggerCustom {
			r.custom[t.ID] = true
		}
	}
}

// Pressed reports whether a gesture is in progress.
func (r *Recognizer) Pressed() bool { return r.pressed }

// HandleMouse feeds a tcell mouse event in. It reports the recognized step,
// if any.
func (r *Recognizer) HandleMouse(ev *tcell.EventMouse) (Event, bool) {
	x, y := ev.Position()
	return r.handle(x, y, ev.Buttons(), ev.When())
}

// Cancel abandons the gesture in progress.
func (r *Recognizer) Cancel() (Event, bool) {
	if !r.pressed {
		return Event{}, false
	}
	r.pressed = false
	r.settle = true
	logger.DebugTagf("gesture", "cancelled at (%d,%d)", r.lastX, r.lastY)
	return Event{
		Kind:    Cancel,
		X:       r.lastX,
		Y:       r.lastY,
		Gesture: action.Gesture{Kind: r.kindOf(r.button), ID: r.idOf(r.button), Phase: action.PhaseCancelled},
	}, true
}

func (r *Recognizer) handle(x, y int, buttons tcell.ButtonMask, when time.Time) (Event, bool) {
	buttons &= tcell.Button1 | tcell.Button2 | tcell.Button3

	if r.settle {
		r.settle = buttons != tcell.ButtonNone
		return Event{}, false
	}

	if !r.pressed {
		button := pick(buttons)
		if button == tcell.ButtonNone {
			return Event{}, false
		}
		if id := r.idOf(button); id != "" && r.custom != nil && !r.custom[id] {
			logger.DebugTagf("gesture", "ignoring %s press, no trigger listens for it", id)
			return Event{}, false
		}
		r.pressed = true
		r.button = button
		r.startX, r.startY = x, y
		r.lastX, r.lastY = x, y
		r.start = when
		r.drifted = false
		return Event{Kind: Begin, X: x, Y: y}, true
	}

	if buttons&r.button != 0 {
		if x == r.lastX && y == r.lastY {
			return Event{}, false
		}
		r.lastX, r.lastY = x, y
		if abs(x-r.startX) > r.cfg.Slop || abs(y-r.startY) > r.cfg.Slop {
			r.drifted = true
		}
		return Event{Kind: Move, X: x, Y: y}, true
	}

	r.pressed = false
	r.settle = buttons != tcell.ButtonNone
	g := r.classify(when.Sub(r.start))
	logger.DebugTagf("gesture", "ended at (%d,%d) as %v", x, y, g)
	return Event{Kind: End, X: x, Y: y, Gesture: g}, true
}

// classify names the finished gesture. A short primary press that drifted
// further than the slop is neither a tap nor a long press.
func (r *Recognizer) classify(held time.Duration) action.Gesture {
	if id := r.idOf(r.button); id != "" {
		return action.Custom(id)
	}
	switch {
	case held >= r.cfg.LongPress:
		return action.LongPress()
	case r.drifted:
		return action.Gesture{Kind: action.GestureTap, Phase: action.PhaseFailed}
	}
	return action.Tap()
}

func (r *Recognizer) kindOf(button tcell.ButtonMask) action.GestureKind {
	if r.idOf(button) != "" {
		return action.GestureCustom
	}
	return action.GestureTap
}

func (r *Recognizer) idOf(button tcell.ButtonMask) string {
	switch button {
	case tcell.Button2:
		return Secondary
	case tcell.Button3:
		return Middle
	}
	return ""
}

// pick chooses the button that starts a gesture when several are down.
func pick(buttons tcell.ButtonMask) tcell.ButtonMask {
	for _, b := range []tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3} {
		if buttons&b != 0 {
			return b
		}
	}
	return tcell.ButtonNone
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
