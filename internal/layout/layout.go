// Package layout defines the adapter that maps container points to character
// indexes, and the terminal cell-grid implementation used by the viewer.
package layout

import (
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/types"
)

// VAlign positions laid-out text inside a taller container.
type VAlign int

const (
	AlignCenter VAlign = iota
	AlignTop
	AlignBottom
)

// ParseVAlign maps a config value to a VAlign; unknown names are centered.
func ParseVAlign(s string) VAlign {
	switch s {
	case "top":
		return AlignTop
	case "bottom":
		return AlignBottom
	}
	return AlignCenter
}

func (a VAlign) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	}
	return "center"
}

// Geometry is the container the text is rendered into, supplied per call
// because the host may resize between calls.
type Geometry struct {
	Size  types.Size
	Align VAlign
}

// VerticalOffset is how far the used text extent is pushed down inside the
// container. Points in container coordinates are moved up by this amount
// before asking the adapter.
func (g Geometry) VerticalOffset(used types.Size) float64 {
	slack := g.Size.Height - used.Height
	if slack <= 0 {
		return 0
	}
	switch g.Align {
	case AlignTop:
		return 0
	case AlignBottom:
		return slack
	}
	return slack / 2
}

// Adapter answers which character is nearest to a point and how far across
// its glyph the point lies (0 = leading edge, 1 = trailing edge). ok is false
// when there is no character at the point or the geometry cannot be laid out.
type Adapter interface {
	IndexAndFraction(p types.Point, doc *document.Document, g Geometry) (index int, fraction float64, ok bool)
	UsedExtent(doc *document.Document, g Geometry) types.Size
}
