// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/theme"
)

// ToolFunc runs when a toolbar entry is activated. It receives the dispatched
// result of the toolbar action.
type ToolFunc func(res action.Result)

// ViewerAPI defines what plugins can reach of the viewer.
type ViewerAPI interface {
	// --- Document Access (read-only) ---
	Document() *document.Document // body document without any highlight
	Title() string

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Toolbar ---
	// RegisterTool adds an entry to the toolbar that runs fn when trigger
	// fires on it.
	RegisterTool(label string, trigger action.Trigger, fn ToolFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string

	// --- Configuration ---
	// GetPluginConfigValue reads [plugins.<plugin>] <key> from the config file.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register tools here.
	Initialize(api ViewerAPI) error

	// Shutdown is called once when the viewer is closing.
	Shutdown() error
}
