package interaction

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/dispatch"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/hittest"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/types"
)

// Config wires a Surface to its collaborators.
type Config struct {
	Name     string          // identifies the surface in events and logs
	Tester   *hittest.Tester // required
	Events   *event.Manager  // optional
	Geometry layout.Geometry
}

// Surface is one interactable piece of rendered text. It owns the document
// being shown and at most one active session; the restore point lives in that
// session, so separate surfaces never disturb each other's state.
//
// A Surface is not safe for concurrent use. Hosts deliver begin, move, end
// and cancel from a single event loop.
type Surface struct {
	name     string
	tester   *hittest.Tester
	events   *event.Manager
	geometry layout.Geometry
	enabled  bool

	shown   *document.Document
	session *session
}

// NewSurface returns an idle surface showing doc.
func NewSurface(cfg Config, doc *document.Document) *Surface {
	if doc == nil {
		doc = document.Empty()
	}
	return &Surface{
		name:     cfg.Name,
		tester:   cfg.Tester,
		events:   cfg.Events,
		geometry: cfg.Geometry,
		enabled:  true,
		shown:    doc,
	}
}

// Name returns the surface name given in Config.
func (s *Surface) Name() string { return s.name }

// Document returns the document the host should draw right now, which
// carries the highlight while a session is armed.
func (s *Surface) Document() *document.Document { return s.shown }

// Geometry returns the current container geometry.
func (s *Surface) Geometry() layout.Geometry { return s.geometry }

// State is Idle or Armed.
func (s *Surface) State() State {
	if s.session != nil {
		return Armed
	}
	return Idle
}

// Matched returns the span currently under the pointer, if any.
func (s *Surface) Matched() (hittest.Match, bool) {
	if s.session == nil || s.session.matched == nil {
		return hittest.Match{}, false
	}
	return *s.session.matched, true
}

// Triggers lists the distinct triggers of the unhighlighted document.
func (s *Surface) Triggers() []action.Trigger {
	return s.base().Triggers()
}

// base is the document without any transient highlight.
func (s *Surface) base() *document.Document {
	if s.session != nil {
		return s.session.backup
	}
	return s.shown
}

// SetDocument shows a newly rendered document. Any session in progress is
// discarded along with its restore point, which belongs to the old render.
func (s *Surface) SetDocument(doc *document.Document) {
	if doc == nil {
		doc = document.Empty()
	}
	if s.session != nil {
		logger.DebugTagf("session", "%s: new document supersedes armed session", s.name)
		s.session = nil
		s.publish(event.TypeInteractionReverted, event.InteractionRevertedData{Surface: s.name, Reason: event.ReasonSuperseded})
	}
	s.shown = doc
	s.publish(event.TypeDocumentChanged, event.DocumentChangedData{
		Surface: s.name,
		Length:  doc.Len(),
		Actions: len(doc.Actions()),
	})
}

// SetGeometry records a new container size. An armed session keeps going;
// later hit tests use the new geometry.
func (s *Surface) SetGeometry(g layout.Geometry) {
	if g == s.geometry {
		return
	}
	s.geometry = g
	s.publish(event.TypeGeometryChanged, event.GeometryChangedData{Surface: s.name, Size: g.Size})
}

// SetEnabled turns hit testing on or off. Hosts disable it while glyph
// positions are unstable, e.g. for text that rescales to fit. Disabling
// cancels an armed session.
func (s *Surface) SetEnabled(enabled bool) {
	if !enabled && s.session != nil {
		s.Cancel()
	}
	s.enabled = enabled
}

// Begin starts a session at p. If p hits an action its highlight is shown
// and the surface is Armed; otherwise nothing changes and the surface stays
// Idle. A Begin while already Armed first restores the previous backup.
// It reports whether a session was armed.
func (s *Surface) Begin(p types.Point) bool {
	if !s.enabled {
		return false
	}
	if s.session != nil {
		logger.DebugTagf("session", "%s: begin while armed, restoring previous backup", s.name)
		s.shown = s.session.backup
		s.session = nil
		s.publish(event.TypeInteractionReverted, event.InteractionRevertedData{Surface: s.name, Reason: event.ReasonSuperseded})
	}

	backup := s.shown
	m, ok := s.tester.Resolve(backup, p, s.geometry)
	if !ok {
		return false
	}
	s.session = &session{backup: backup}
	s.highlight(m)
	logger.DebugTagf("session", "%s: armed on %v (%v)", s.name, m.Range, m.Action.Trigger)
	return true
}

// Move follows the pointer to p. Hit testing always runs against the backup
// so the highlight never influences it. Moving off every action clears the
// highlight but keeps the session armed so moving back re-applies it.
// It reports whether the shown document changed.
func (s *Surface) Move(p types.Point) bool {
	if s.session == nil {
		return false
	}
	m, ok := s.tester.Resolve(s.session.backup, p, s.geometry)
	prev := s.session.matched
	if ok && prev != nil && prev.Same(m) {
		return false
	}
	if !ok && prev == nil {
		return false
	}
	if prev != nil {
		s.shown = s.session.backup
		s.session.matched = nil
		s.publish(event.TypeActionCleared, event.ActionClearedData{Surface: s.name, Range: prev.Range})
	}
	if ok {
		s.highlight(m)
	}
	return true
}

// End finishes the session with the terminating gesture g observed at p. The
// backup is always restored first. The action under p, resolved with the
// current geometry, is dispatched if its trigger matches g.
func (s *Surface) End(g action.Gesture, p types.Point) Outcome {
	if s.session == nil {
		return Outcome{State: Idle}
	}
	sess := s.session
	s.session = nil
	s.shown = sess.backup

	if sess.matched == nil {
		return s.revert(event.ReasonNoMatch, g, action.Trigger{})
	}
	m, ok := s.tester.Resolve(sess.backup, p, s.geometry)
	if !ok {
		return s.revert(event.ReasonNoMatch, g, action.Trigger{})
	}
	if !m.Action.Trigger.Matches(g) {
		logger.DebugTagf("session", "%s: %v does not satisfy %v", s.name, g, m.Action.Trigger)
		return s.revert(event.ReasonTriggerMismatch, g, m.Action.Trigger)
	}

	res := dispatch.Dispatch(sess.backup, m.Range, m.Action)
	s.publish(event.TypeActionDispatched, event.ActionDispatchedData{
		Surface: s.name,
		Trigger: m.Action.Trigger,
		Gesture: g,
		Result:  res,
	})
	return Outcome{State: Committed, Result: &res, Trigger: m.Action.Trigger}
}

// Cancel abandons the session and restores the backup.
func (s *Surface) Cancel() Outcome {
	if s.session == nil {
		return Outcome{State: Idle}
	}
	s.shown = s.session.backup
	s.session = nil
	return s.revert(event.ReasonCancelled, action.Gesture{Phase: action.PhaseCancelled}, action.Trigger{})
}

func (s *Surface) highlight(m hittest.Match) {
	s.shown = s.session.backup.WithMergedAttributes(m.Range, m.Action.Highlight)
	s.session.matched = &m
	s.publish(event.TypeActionHighlighted, event.ActionHighlightedData{
		Surface: s.name,
		Range:   m.Range,
		Trigger: m.Action.Trigger,
	})
}

func (s *Surface) revert(reason string, g action.Gesture, t action.Trigger) Outcome {
	logger.DebugTagf("session", "%s: reverted (%s)", s.name, reason)
	s.publish(event.TypeInteractionReverted, event.InteractionRevertedData{Surface: s.name, Reason: reason, Gesture: g})
	return Outcome{State: Reverted, Reason: reason, Trigger: t}
}

func (s *Surface) publish(t event.Type, data interface{}) {
	s.events.Dispatch(t, data)
}
