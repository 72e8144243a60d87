package app

import (
	"github.com/bethropolis/tidetap/internal/interaction"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/tui"
	"github.com/bethropolis/tidetap/internal/types"
)

// toolbarHeight is the number of rows the toolbar takes above the status bar.
const toolbarHeight = 1

// areas splits the screen into body, toolbar and status bar rows.
func (a *App) areas() (body, toolbar tui.Rect, statusY int) {
	width, height := a.tuiManager.Size()
	statusBarHeight := a.cfg.Viewer.StatusBarHeight

	viewHeight := height - statusBarHeight - toolbarHeight
	if viewHeight < 0 {
		viewHeight = 0
	}
	body = tui.Rect{X: 0, Y: 0, Width: width, Height: viewHeight}
	toolbar = tui.Rect{X: 0, Y: viewHeight, Width: width, Height: toolbarHeight}
	if toolbar.Y+toolbar.Height > height {
		toolbar.Height = 0
	}
	return body, toolbar, height - statusBarHeight
}

// areaOf returns the screen area of s.
func (a *App) areaOf(s *interaction.Surface) tui.Rect {
	body, toolbar, _ := a.areas()
	if s == a.toolbar {
		return toolbar
	}
	return body
}

// surfaceAt returns the surface drawn at screen cell (x, y).
func (a *App) surfaceAt(x, y int) *interaction.Surface {
	body, toolbar, _ := a.areas()
	switch {
	case body.Contains(x, y):
		return a.body
	case toolbar.Contains(x, y):
		return a.toolbar
	}
	return nil
}

func geometryOf(r tui.Rect, align layout.VAlign) layout.Geometry {
	return layout.Geometry{
		Size:  types.Size{Width: float64(r.Width), Height: float64(r.Height)},
		Align: align,
	}
}

// layout pushes the current screen size into both surfaces. A gesture in
// progress keeps going with the new geometry.
func (a *App) layout() {
	body, toolbar, _ := a.areas()
	logger.DebugTagf("draw", "layout: body %+v, toolbar %+v", body, toolbar)
	a.body.SetGeometry(geometryOf(body, a.cfg.Interaction.VAlign()))
	a.toolbar.SetGeometry(geometryOf(toolbar, layout.AlignTop))
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	th := a.themes.Current()
	body, toolbar, statusY := a.areas()
	width, _ := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, body, a.body.Document(), a.grid, a.body.Geometry(), th)
	tui.DrawDocument(a.tuiManager, toolbar, a.toolbar.Document(), a.barGrid, a.toolbar.Geometry(), th)
	a.statusBar.Draw(a.tuiManager.GetScreen(), statusY, width)
	a.tuiManager.Show()
}
