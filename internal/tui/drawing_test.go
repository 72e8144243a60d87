package tui

import (
	"testing"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/bethropolis/tidetap/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	tui, err := NewWithScreen(sim, &theme.Dark)
	require.NoError(t, err)
	sim.SetSize(w, h)
	t.Cleanup(tui.Close)
	return tui, sim
}

func row(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes[0])
	}
	return string(out)
}

func cellStyle(sim tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := sim.GetContents()
	return cells[y*w+x].Style
}

func TestDrawDocumentCentered(t *testing.T) {
	tui, sim := newSim(t, 12, 5)
	a := action.New(action.TapTrigger(), nil, nil)
	doc := document.NewBuilder().
		Append("Tap ").
		AppendAction("here", style.Attributes{style.KeyBold: true}, a).
		Append(" now").
		MustBuild()

	geo := layout.Geometry{Size: types.Size{Width: 12, Height: 4}}
	DrawDocument(tui, Rect{X: 0, Y: 1, Width: 12, Height: 4}, doc, layout.NewGrid(4), geo, &theme.Dark)
	tui.Show()

	// one line in four rows: offset 1.5 rounds down to 1
	assert.Equal(t, "            ", row(sim, 1))
	assert.Equal(t, "Tap here now", row(sim, 2))

	_, _, attrs := cellStyle(sim, 5, 2).Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
	_, _, attrs = cellStyle(sim, 1, 2).Decompose()
	assert.Zero(t, attrs&tcell.AttrBold)
}

func TestDrawDocumentWrapsAndClips(t *testing.T) {
	tui, sim := newSim(t, 4, 2)
	doc := document.FromString("Tap here now")
	geo := layout.Geometry{Size: types.Size{Width: 4, Height: 2}, Align: layout.AlignTop}
	DrawDocument(tui, Rect{Width: 4, Height: 2}, doc, layout.NewGrid(4), geo, &theme.Dark)
	tui.Show()

	assert.Equal(t, "Tap ", row(sim, 0))
	assert.Equal(t, "here", row(sim, 1))
}

func TestDrawAttachmentAndTab(t *testing.T) {
	tui, sim := newSim(t, 8, 1)
	doc := document.NewBuilder().Append("\tx").AppendAttachment("logo", nil, nil).MustBuild()
	geo := layout.Geometry{Size: types.Size{Width: 8, Height: 1}}
	DrawDocument(tui, Rect{Width: 8, Height: 1}, doc, layout.NewGrid(4), geo, &theme.Dark)
	tui.Show()

	assert.Equal(t, "    x◆  ", row(sim, 0))
	fg, _, attrs := cellStyle(sim, 5, 0).Decompose()
	wantFg, _, _ := theme.Dark.GetStyle(theme.StyleAttachment).Decompose()
	assert.Equal(t, wantFg, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 1, Width: 3, Height: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 1))
	assert.False(t, r.Contains(2, 3))
	assert.True(t, Rect{Width: 0, Height: 3}.Empty())
}
