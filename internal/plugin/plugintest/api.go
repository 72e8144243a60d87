// Package plugintest provides an in-memory plugin.ViewerAPI for plugin tests.
package plugintest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/plugin"
	"github.com/bethropolis/tidetap/internal/theme"
)

var _ plugin.ViewerAPI = (*API)(nil)

// Tool is a registered toolbar entry.
type Tool struct {
	Label   string
	Trigger action.Trigger
	Run     plugin.ToolFunc
}

// API records what plugins do with the viewer.
type API struct {
	Doc    *document.Document
	Name   string
	Events *event.Manager
	Config map[string]map[string]interface{}

	mu       sync.Mutex
	tools    []Tool
	messages []string
	theme    *theme.Theme
}

// New returns an API viewing doc.
func New(doc *document.Document) *API {
	return &API{
		Doc:    doc,
		Events: event.NewManager(),
		Config: make(map[string]map[string]interface{}),
		theme:  &theme.Dark,
	}
}

func (a *API) Document() *document.Document { return a.Doc }
func (a *API) Title() string                { return a.Name }

func (a *API) DispatchEvent(t event.Type, data interface{}) {
	a.Events.Dispatch(t, data)
}

func (a *API) SubscribeEvent(t event.Type, h event.Handler) {
	a.Events.Subscribe(t, h)
}

func (a *API) RegisterTool(label string, trigger action.Trigger, fn plugin.ToolFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range a.tools {
		if t.Label == label {
			return fmt.Errorf("tool %q already registered", label)
		}
	}
	a.tools = append(a.tools, Tool{Label: label, Trigger: trigger, Run: fn})
	return nil
}

// Tool returns the registered tool named label.
func (a *API) Tool(label string) (Tool, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range a.tools {
		if t.Label == label {
			return t, true
		}
	}
	return Tool{}, false
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, fmt.Sprintf(format, args...))
}

// Messages returns every status message set so far.
func (a *API) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}

func (a *API) GetTheme() *theme.Theme { return a.theme }

func (a *API) SetTheme(name string) error {
	for _, t := range []*theme.Theme{&theme.Dark, &theme.Light} {
		if strings.EqualFold(t.Name, name) {
			a.theme = t
			return nil
		}
	}
	return fmt.Errorf("theme %q not found", name)
}

func (a *API) ListThemes() []string {
	return []string{theme.Dark.Name, theme.Light.Name}
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}
