package app

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/plugin"
	"github.com/bethropolis/tidetap/internal/theme"
)

// Ensure appViewerAPI implements the plugin.ViewerAPI interface.
var _ plugin.ViewerAPI = (*appViewerAPI)(nil)

// appViewerAPI provides the concrete implementation of the ViewerAPI interface.
type appViewerAPI struct {
	app *App // Reference back to the main application
}

func newViewerAPI(app *App) *appViewerAPI {
	return &appViewerAPI{app: app}
}

// --- Document Access ---

func (api *appViewerAPI) Document() *document.Document {
	if api.app.bodyDoc == nil {
		return document.Empty()
	}
	return api.app.bodyDoc
}

func (api *appViewerAPI) Title() string {
	return api.app.title()
}

// --- Event Bus Interaction ---

func (api *appViewerAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appViewerAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Toolbar ---

func (api *appViewerAPI) RegisterTool(label string, trigger action.Trigger, fn plugin.ToolFunc) error {
	if err := api.app.addTool(label, trigger, fn); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

// --- Status Bar ---

func (api *appViewerAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.setStatus(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appViewerAPI) GetTheme() *theme.Theme {
	return api.app.themes.Current()
}

func (api *appViewerAPI) SetTheme(name string) error {
	if err := api.app.themes.SetTheme(name); err != nil {
		return err
	}
	api.app.applyTheme(api.app.themes.Current())
	return nil
}

func (api *appViewerAPI) ListThemes() []string {
	return api.app.themes.ListThemes()
}

// --- Configuration ---

func (api *appViewerAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
