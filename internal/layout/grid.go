package layout

import (
	"math"

	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/types"
	"github.com/rivo/uniseg"
)

// Cell is one grapheme cluster placed on the grid.
type Cell struct {
	X, Y  int    // column and line of the leftmost cell
	Width int    // number of terminal cells occupied
	Index int    // character index of the first rune in the cluster
	Runes []rune // the cluster; tabs are reported as a single '\t'
}

// Lines is a laid-out document.
type Lines struct {
	Cells  []Cell
	Count  int // number of lines
	Width  int // widest line in cells
	byLine [][]Cell
}

// Line returns the cells placed on line y.
func (l *Lines) Line(y int) []Cell {
	if y < 0 || y >= len(l.byLine) {
		return nil
	}
	return l.byLine[y]
}

// Grid lays text out on a terminal cell grid: grapheme clusters take their
// display width, '\n' breaks lines, and long lines wrap at the container
// width when Wrap is set.
type Grid struct {
	TabWidth int
	Wrap     bool
	MaxLines int // 0 means unlimited
}

// NewGrid returns a wrapping grid with the given tab width.
func NewGrid(tabWidth int) *Grid {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &Grid{TabWidth: tabWidth, Wrap: true}
}

// Layout places doc on a grid width cells wide. A non-positive width
// disables wrapping.
func (g *Grid) Layout(doc *document.Document, width int) *Lines {
	out := &Lines{}
	if doc == nil || doc.Len() == 0 {
		return out
	}
	tab := g.TabWidth
	if tab <= 0 {
		tab = 4
	}

	x, y, index := 0, 0, 0
	newLine := func() bool {
		x = 0
		y++
		return g.MaxLines <= 0 || y < g.MaxLines
	}

	gr := uniseg.NewGraphemes(doc.Text())
	for gr.Next() {
		runes := gr.Runes()
		start := index
		index += len(runes)

		if runes[0] == '\n' || runes[0] == '\r' {
			if !newLine() {
				break
			}
			continue
		}

		w := gr.Width()
		if runes[0] == '\t' {
			w = tab - (x % tab)
			runes = []rune{'\t'}
		}
		if w <= 0 {
			w = 1
		}
		if g.Wrap && width > 0 && x > 0 && x+w > width {
			if !newLine() {
				break
			}
		}

		cell := Cell{X: x, Y: y, Width: w, Index: start, Runes: runes}
		out.Cells = append(out.Cells, cell)
		for len(out.byLine) <= y {
			out.byLine = append(out.byLine, nil)
		}
		out.byLine[y] = append(out.byLine[y], cell)
		x += w
		out.Width = max(out.Width, x)
	}
	out.Count = y + 1
	if g.MaxLines > 0 && out.Count > g.MaxLines {
		out.Count = g.MaxLines
	}
	for len(out.byLine) < out.Count {
		out.byLine = append(out.byLine, nil)
	}
	return out
}

// UsedExtent is the width of the widest line by the number of lines.
func (g *Grid) UsedExtent(doc *document.Document, geo Geometry) types.Size {
	if geo.Size.IsZero() {
		return types.Size{}
	}
	lines := g.Layout(doc, int(geo.Size.Width))
	if len(lines.Cells) == 0 && lines.Count <= 1 {
		return types.Size{}
	}
	return types.Size{Width: float64(lines.Width), Height: float64(lines.Count)}
}

// IndexAndFraction finds the cluster nearest to p on the line p falls on.
// Points before the first or after the last cluster of a line snap to that
// cluster with fraction 0 or 1. Points off the laid-out lines or outside the
// container have no character.
func (g *Grid) IndexAndFraction(p types.Point, doc *document.Document, geo Geometry) (int, float64, bool) {
	if geo.Size.IsZero() || doc == nil || doc.Len() == 0 {
		return 0, 0, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= geo.Size.Width {
		return 0, 0, false
	}
	lines := g.Layout(doc, int(geo.Size.Width))
	row := int(math.Floor(p.Y))
	cells := lines.Line(row)
	if len(cells) == 0 {
		return 0, 0, false
	}

	first, last := cells[0], cells[len(cells)-1]
	if p.X < float64(first.X) {
		return first.Index, 0, true
	}
	for _, c := range cells {
		left := float64(c.X)
		right := left + float64(c.Width)
		if p.X >= left && p.X < right {
			return c.Index, (p.X - left) / float64(c.Width), true
		}
	}
	return last.Index, 1, true
}

var _ Adapter = (*Grid)(nil)
