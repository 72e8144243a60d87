package layout

import (
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/types"
)

// Hit is a canned adapter answer.
type Hit struct {
	Index    int
	Fraction float64
}

// Static answers from a fixed point table, independent of any text engine.
// Points missing from the table have no character.
type Static struct {
	Table  map[types.Point]Hit
	Extent types.Size
}

func (s *Static) IndexAndFraction(p types.Point, doc *document.Document, geo Geometry) (int, float64, bool) {
	if geo.Size.IsZero() || doc == nil || doc.Len() == 0 {
		return 0, 0, false
	}
	hit, ok := s.Table[p]
	if !ok || hit.Index < 0 || hit.Index >= doc.Len() {
		return 0, 0, false
	}
	return hit.Index, hit.Fraction, true
}

func (s *Static) UsedExtent(doc *document.Document, geo Geometry) types.Size {
	if s.Extent.IsZero() {
		return geo.Size
	}
	return s.Extent
}

var _ Adapter = (*Static)(nil)
