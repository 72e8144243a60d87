// Package hittest resolves a point in a rendered container to the action
// under it.
package hittest

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/types"
)

// Match is an action together with the full range it covers.
type Match struct {
	Range  types.Range
	Action *action.Action
}

// Same reports whether two matches refer to the same span.
func (m Match) Same(o Match) bool {
	return m.Range == o.Range && m.Action == o.Action
}

// Tester composes a layout adapter with a document's action index. It keeps
// no state between calls: the container may change size without the
// document changing.
type Tester struct {
	adapter layout.Adapter
}

// New returns a tester backed by adapter.
func New(adapter layout.Adapter) *Tester {
	return &Tester{adapter: adapter}
}

// Resolve maps p, in container coordinates, to the action span under it.
// Points that land exactly on a glyph edge are misses so that a contact on
// the boundary between an action and plain text is never attributed to
// either.
func (t *Tester) Resolve(doc *document.Document, p types.Point, g layout.Geometry) (Match, bool) {
	if doc == nil || doc.Len() == 0 || g.Size.IsZero() {
		return Match{}, false
	}

	used := t.adapter.UsedExtent(doc, g)
	adjusted := types.Point{X: p.X, Y: p.Y - g.VerticalOffset(used)}

	index, fraction, ok := t.adapter.IndexAndFraction(adjusted, doc, g)
	if !ok {
		logger.DebugTagf("hittest", "Resolve: no character at %v (adjusted %v)", p, adjusted)
		return Match{}, false
	}
	if !(fraction > 0 && fraction < 1) {
		logger.DebugTagf("hittest", "Resolve: index %d rejected, fraction %.3f on glyph edge", index, fraction)
		return Match{}, false
	}

	r, a, ok := doc.ActionAt(index)
	if !ok {
		return Match{}, false
	}
	logger.DebugTagf("hittest", "Resolve: %v -> index %d, action %v over %v", p, index, a.Trigger, r)
	return Match{Range: r, Action: a}, true
}
