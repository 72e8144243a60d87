// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/clipboard"
	"github.com/bethropolis/tidetap/internal/config"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/gesture"
	"github.com/bethropolis/tidetap/internal/hittest"
	"github.com/bethropolis/tidetap/internal/input"
	"github.com/bethropolis/tidetap/internal/interaction"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/linkify"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/plugin"
	"github.com/bethropolis/tidetap/internal/statusbar"
	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/bethropolis/tidetap/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Surface names used in events.
const (
	BodySurface    = "body"
	ToolbarSurface = "toolbar"
)

// Options configures a new App.
type Options struct {
	Config    *config.Config     // required
	Path      string             // file to view; empty shows the demo document
	Screen    tcell.Screen       // nil opens the terminal
	Themes    *theme.Manager     // nil loads themes from theme.DefaultDir()
	Clipboard *clipboard.Manager // nil follows Config.Viewer.SystemClipboard
	Plugins   []func() plugin.Plugin
}

// App encapsulates the core components and main loop of the viewer.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	themes         *theme.Manager
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	inputProcessor *input.InputProcessor
	recognizer     *gesture.Recognizer
	clipboard      *clipboard.Manager
	renderer       *renderManager
	viewerAPI      plugin.ViewerAPI

	path    string
	bodyDoc *document.Document // last rendered body, without highlight

	grid    *layout.Grid // body layout, shared by drawing and hit testing
	barGrid *layout.Grid
	body    *interaction.Surface
	toolbar *interaction.Surface
	tools   []tool
	active  *interaction.Surface // surface that received the current gesture's begin

	// Channels managed by the App
	events        chan tcell.Event
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// New creates and initializes a new application instance. The body document
// is rendered before New returns.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: missing configuration")
	}
	cfg := opts.Config

	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager(theme.DefaultDir())
	}
	if err := themes.SetTheme(cfg.Viewer.Theme); err != nil {
		logger.Warnf("App: %v, keeping %s", err, themes.Current().Name)
	}
	th := themes.Current()

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, th)
	} else {
		tuiManager, err = tui.New(th)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewManager(cfg.Viewer.SystemClipboard)
	}

	eventManager := event.NewManager()
	grid := cfg.Interaction.Grid()
	barGrid := layout.NewGrid(cfg.Interaction.TabWidth)
	barGrid.Wrap = false
	barGrid.MaxLines = 1

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		themes:         themes,
		statusBar:      statusbar.New(statusbar.ConfigFromTheme(th, config.MessageTimeout)),
		eventManager:   eventManager,
		pluginManager:  plugin.NewManager(),
		inputProcessor: input.NewInputProcessor(),
		recognizer: gesture.New(gesture.Config{
			LongPress: cfg.Interaction.LongPress(),
			Slop:      cfg.Interaction.TapSlop,
		}),
		clipboard: clip,
		path:      opts.Path,
		grid:      grid,
		barGrid:   barGrid,
		body: interaction.NewSurface(interaction.Config{
			Name:   BodySurface,
			Tester: hittest.New(grid),
			Events: eventManager,
		}, nil),
		toolbar: interaction.NewSurface(interaction.Config{
			Name:   ToolbarSurface,
			Tester: hittest.New(barGrid),
			Events: eventManager,
		}, nil),
		events:        make(chan tcell.Event, 16),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	a.renderer = newRenderManager(a.renderBody)
	a.viewerAPI = newViewerAPI(a)
	a.statusBar.SetTitle(a.title())
	a.statusBar.SetHint("? help")

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeActionHighlighted, a.handleHighlightedForStatus)
	eventManager.Subscribe(event.TypeActionCleared, a.handleClearedForStatus)
	eventManager.Subscribe(event.TypeActionDispatched, a.handleDispatchedForStatus)
	eventManager.Subscribe(event.TypeInteractionReverted, a.handleRevertedForStatus)
	eventManager.Subscribe(event.TypeDocumentChanged, a.handleDocumentChanged)

	// --- Built-in tools, then plugins (which add their own) ---
	registerAppTools(a)
	constructors := opts.Plugins
	if constructors == nil {
		constructors = defaultPlugins
	}
	if err := registerPlugins(a.pluginManager, constructors); err != nil {
		logger.Warnf("App: %v", err)
	}
	if failed := a.pluginManager.InitializePlugins(a.viewerAPI); len(failed) > 0 {
		a.setStatus("Plugins failed to start: %v", failed)
	}

	// --- Initial render, synchronous ---
	start := time.Now()
	doc, err := a.renderBody(context.Background(), th)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	logger.Debugf("App: initial render of %q took %v", a.title(), time.Since(start))
	a.setBody(doc)
	a.layout()

	return a, nil
}

// Run starts the application's main event and drawing loops. It returns
// after a quit request.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.renderer.Shutdown()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.setStatus("tidetap - tap a link, ? for help, q to quit")
	a.requestRedraw()

	// --- Main Loop ---
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case res := <-a.renderer.Results():
			a.applyRender(res)
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// Quit asks Run to return. Safe to call more than once and from any goroutine.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// pollEvents forwards terminal events to the main loop so that all state
// changes happen on one goroutine.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// title names what is being viewed.
func (a *App) title() string {
	if a.path == "" {
		return "demo"
	}
	return filepath.Base(a.path)
}

// renderBody produces the body document for th. It runs on the render
// manager's goroutine and must not touch mutable App state.
func (a *App) renderBody(ctx context.Context, th *theme.Theme) (*document.Document, error) {
	if a.path == "" {
		return demoDocument(th, a.callbacks()), nil
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", a.path, err)
	}
	doc, err := linkify.File(ctx, a.path, data, th, a.linker(th))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", a.path, err)
	}
	return doc, nil
}

// applyRender shows a finished background render, unless a newer one was
// requested meanwhile.
func (a *App) applyRender(res renderResult) {
	if res.seq != a.renderer.Latest() {
		logger.DebugTagf("render", "App: dropping stale render %d", res.seq)
		return
	}
	if res.err != nil {
		logger.Warnf("App: render failed: %v", res.err)
		a.setStatus("Reload failed: %v", res.err)
		a.requestRedraw()
		return
	}
	a.setBody(res.doc)
	a.requestRedraw()
}

// setBody shows doc in the body surface and updates the gestures listened for.
func (a *App) setBody(doc *document.Document) {
	a.bodyDoc = doc
	a.body.SetDocument(doc)
	a.syncTriggers()
}

// syncTriggers lets the recognizer report only the custom gestures some
// visible action listens for.
func (a *App) syncTriggers() {
	var triggers []action.Trigger
	triggers = append(triggers, a.body.Triggers()...)
	triggers = append(triggers, a.toolbar.Triggers()...)
	a.recognizer.SetTriggers(triggers)
}

// setStatus shows a temporary message and schedules the redraw that clears it.
func (a *App) setStatus(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	time.AfterFunc(config.MessageTimeout+50*time.Millisecond, a.requestRedraw)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// applyTheme activates th everywhere and re-renders both surfaces with its
// styles.
func (a *App) applyTheme(th *theme.Theme) {
	a.tuiManager.SetTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th, config.MessageTimeout))
	a.rebuildToolbar()
	a.renderer.Request(th)
	a.eventManager.Dispatch(event.TypeThemeChanged, th.Name)
	a.requestRedraw()
}

// reload re-reads the viewed file in the background.
func (a *App) reload() {
	a.renderer.Request(a.themes.Current())
	a.setStatus("Reloading %s...", a.title())
}

// toggleWrap switches soft wrapping. Hit testing is off while the layout
// changes, which also abandons a gesture in progress.
func (a *App) toggleWrap() {
	a.body.SetEnabled(false)
	a.grid.Wrap = !a.grid.Wrap
	a.body.SetEnabled(true)
	if a.grid.Wrap {
		a.setStatus("Wrapping long lines")
	} else {
		a.setStatus("Clipping long lines")
	}
}
