// internal/tui/drawing.go
package tui

import (
	"math"

	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/theme"
)

// AttachmentGlyph stands in for an attachment on the terminal.
const AttachmentGlyph = '◆'

// Rect is a screen area in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DrawDocument lays doc out with grid inside area and draws it. Text is
// shifted down by the geometry's vertical offset, rounded down to a whole
// cell, which keeps drawn rows and hit-tested rows the same.
func DrawDocument(t *TUI, area Rect, doc *document.Document, grid *layout.Grid, geo layout.Geometry, th *theme.Theme) {
	if area.Empty() {
		return
	}
	defaultStyle := th.GetStyle(theme.StyleDefault)
	attachmentStyle := th.Attributes(theme.StyleAttachment)

	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}
	if doc == nil || doc.Len() == 0 {
		return
	}

	offset := int(math.Floor(geo.VerticalOffset(grid.UsedExtent(doc, geo))))
	lines := grid.Layout(doc, int(geo.Size.Width))
	drawn := 0

	for _, cell := range lines.Cells {
		screenY := area.Y + offset + cell.Y
		screenX := area.X + cell.X
		if screenY < area.Y || screenY >= area.Y+area.Height {
			continue
		}
		if screenX >= area.X+area.Width {
			continue
		}

		attrs := doc.StyleAt(cell.Index)
		mainRune := cell.Runes[0]
		combining := cell.Runes[1:]
		if doc.IsAttachment(cell.Index) {
			attrs = attachmentStyle.Merge(attrs)
			mainRune, combining = AttachmentGlyph, nil
		}
		style := attrs.ToTcell(defaultStyle)

		if mainRune == '\t' {
			for i := 0; i < cell.Width && screenX+i < area.X+area.Width; i++ {
				t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
			}
			drawn++
			continue
		}
		t.screen.SetContent(screenX, screenY, mainRune, combining, style)
		for cw := 1; cw < cell.Width; cw++ {
			if fillX := screenX + cw; fillX < area.X+area.Width {
				t.screen.SetContent(fillX, screenY, ' ', nil, style)
			}
		}
		drawn++
	}
	logger.DebugTagf("draw", "DrawDocument: %d of %d cells in %v (offset %d)", drawn, len(lines.Cells), area, offset)
}
