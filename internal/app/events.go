package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/gesture"
	"github.com/bethropolis/tidetap/internal/input"
	"github.com/bethropolis/tidetap/internal/interaction"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/gdamore/tcell/v2"
)

const helpText = "tap links to copy | long-press imports | right-click attachments | esc cancels | t theme | w wrap | r reload | q quit"

// handleEvent reacts to one terminal event and reports whether the screen
// needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		a.layout()
		return true
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		g, ok := a.recognizer.HandleMouse(ev)
		if !ok {
			return false
		}
		return a.handleGesture(g)
	}
	return false
}

// handleKey runs the viewer action bound to a key.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	act := a.inputProcessor.ProcessEvent(ev)
	switch act.Action {
	case input.ActionQuit:
		a.Quit()
		return false
	case input.ActionCancelGesture:
		g, ok := a.recognizer.Cancel()
		if !ok {
			return false
		}
		return a.handleGesture(g)
	case input.ActionNextTheme:
		th := a.themes.Next()
		a.applyTheme(th)
		a.setStatus("Theme: %s", th.Name)
		return true
	case input.ActionReload:
		a.reload()
		return true
	case input.ActionToggleWrap:
		a.toggleWrap()
		return true
	case input.ActionHelp:
		a.setStatus(helpText)
		return true
	}
	return false
}

// handleGesture routes a recognized step to the surface the gesture began on.
// That surface keeps receiving the gesture even when the pointer leaves it.
func (a *App) handleGesture(g gesture.Event) bool {
	if g.Kind == gesture.Begin {
		a.active = a.surfaceAt(g.X, g.Y)
		if a.active == nil {
			return false
		}
		area := a.areaOf(a.active)
		a.active.Begin(g.Point(area.X, area.Y))
		return true
	}

	s := a.active
	if s == nil {
		return false
	}
	area := a.areaOf(s)
	p := g.Point(area.X, area.Y)

	switch g.Kind {
	case gesture.Move:
		return s.Move(p)
	case gesture.End:
		a.active = nil
		a.report(s, s.End(g.Gesture, p))
		return true
	case gesture.Cancel:
		a.active = nil
		a.report(s, s.Cancel())
		return true
	}
	return false
}

// report tells the user why nothing happened when a gesture found an action
// it could not fire.
func (a *App) report(s *interaction.Surface, out interaction.Outcome) {
	logger.DebugTagf("session", "App: %s finished %v (%s)", s.Name(), out.State, out.Reason)
	if out.State == interaction.Reverted && out.Reason == event.ReasonTriggerMismatch {
		a.setStatus("That needs a %s", out.Trigger)
	}
}

// --- Event Handlers (App reacts to events) ---

func (a *App) surfaceNamed(name string) *interaction.Surface {
	if name == ToolbarSurface {
		return a.toolbar
	}
	return a.body
}

func (a *App) handleHighlightedForStatus(e event.Event) bool {
	data, ok := e.Data.(event.ActionHighlightedData)
	if !ok {
		logger.Warnf("App: Received ActionHighlighted event with unexpected data type: %T", e.Data)
		return false
	}
	text := a.surfaceNamed(data.Surface).Document().Substring(data.Range)
	text = strings.ReplaceAll(text, "\n", " ")
	a.statusBar.SetDetail("%s %q", data.Trigger, text)
	return false
}

func (a *App) handleClearedForStatus(e event.Event) bool {
	a.statusBar.SetDetail("")
	return false
}

func (a *App) handleDispatchedForStatus(e event.Event) bool {
	a.statusBar.SetDetail("")
	return false
}

func (a *App) handleRevertedForStatus(e event.Event) bool {
	a.statusBar.SetDetail("")
	return false
}

func (a *App) handleDocumentChanged(e event.Event) bool {
	data, ok := e.Data.(event.DocumentChangedData)
	if !ok || data.Surface != BodySurface {
		return false
	}
	logger.Debugf("App: body now %d characters, %d actions", data.Length, data.Actions)
	a.statusBar.SetTitle(fmt.Sprintf("%s (%d actions)", a.title(), data.Actions))
	return false
}
