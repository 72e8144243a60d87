package document

import (
	"sort"

	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/types"
)

// Run is a contiguous range of characters sharing one attribute bag.
// The runs of a document partition [0, Len) in order.
type Run struct {
	Range types.Range
	Attrs style.Attributes
}

// override is a pending attribute merge over a range.
type override struct {
	rng   types.Range
	attrs style.Attributes
}

type edge struct {
	pos   int
	index int
	start bool
}

// resolveRuns returns a new partition where the overrides are merged into
// base in slice order, later overrides winning per key. It makes one sweep
// over the sorted override boundaries. base is not modified.
func resolveRuns(base []Run, overrides []override) []Run {
	if len(overrides) == 0 {
		return coalesce(base)
	}
	edges := make([]edge, 0, 2*len(overrides))
	for i, o := range overrides {
		if o.rng.IsEmpty() || len(o.attrs) == 0 {
			continue
		}
		edges = append(edges,
			edge{pos: o.rng.Start, index: i, start: true},
			edge{pos: o.rng.End, index: i},
		)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].pos < edges[j].pos })

	// indexes of the overrides covering the current position, ascending
	var active []int
	out := make([]Run, 0, len(base)+len(edges))
	e := 0
	for _, run := range base {
		pos := run.Range.Start
		for pos < run.Range.End {
			for ; e < len(edges) && edges[e].pos <= pos; e++ {
				active = toggle(active, edges[e])
			}
			end := run.Range.End
			if e < len(edges) && edges[e].pos < end {
				end = edges[e].pos
			}
			attrs := run.Attrs
			for _, i := range active {
				attrs = attrs.Merge(overrides[i].attrs)
			}
			out = append(out, Run{Range: types.Range{Start: pos, End: end}, Attrs: attrs})
			pos = end
		}
	}
	return coalesce(out)
}

func toggle(active []int, e edge) []int {
	k := sort.SearchInts(active, e.index)
	if e.start {
		active = append(active, 0)
		copy(active[k+1:], active[k:])
		active[k] = e.index
		return active
	}
	if k < len(active) && active[k] == e.index {
		active = append(active[:k], active[k+1:]...)
	}
	return active
}

// coalesce joins neighbouring runs whose attributes are equal and drops empty
// runs.
func coalesce(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Range.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Range.End == r.Range.Start && out[n-1].Attrs.Equal(r.Attrs) {
			out[n-1].Range.End = r.Range.End
			continue
		}
		out = append(out, r)
	}
	return out
}

// withoutReserved drops keys the document manages itself.
func withoutReserved(a style.Attributes) style.Attributes {
	if _, ok := a[style.KeyAction]; !ok {
		return a
	}
	out := a.Clone()
	delete(out, style.KeyAction)
	return out
}
