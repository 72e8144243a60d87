package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/plugin"
	"github.com/bethropolis/tidetap/internal/theme"
)

// tool is one toolbar entry.
type tool struct {
	label   string
	trigger action.Trigger
	run     plugin.ToolFunc
}

// addTool appends a toolbar entry. Labels are unique.
func (a *App) addTool(label string, trigger action.Trigger, fn plugin.ToolFunc) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("tool label cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("tool '%s' has no function", label)
	}
	for _, t := range a.tools {
		if t.label == label {
			return fmt.Errorf("tool '%s' already registered", label)
		}
	}
	a.tools = append(a.tools, tool{label: label, trigger: trigger, run: fn})
	a.rebuildToolbar()
	return nil
}

// toolbarDocument lays the tools out on one line, each label carrying its
// action.
func toolbarDocument(tools []tool, th *theme.Theme) *document.Document {
	base := th.Attributes(theme.StyleToolbar)
	hl := th.Attributes(theme.StyleLinkHighlight)

	b := document.NewBuilder()
	for i, t := range tools {
		if i > 0 {
			b.AppendStyled(" ", base)
		}
		b.AppendStyled(" ", base)
		b.AppendAction(t.label, base, action.New(t.trigger, hl, t.run))
		b.AppendStyled(" ", base)
	}
	doc, err := b.Build()
	if err != nil {
		logger.Errorf("App: building toolbar: %v", err)
		return document.Empty()
	}
	return doc
}

func (a *App) rebuildToolbar() {
	a.toolbar.SetDocument(toolbarDocument(a.tools, a.themes.Current()))
	a.syncTriggers()
}

// registerAppTools registers the built-in toolbar entries.
func registerAppTools(app *App) {
	api := app.viewerAPI

	tools := []struct {
		label   string
		trigger action.Trigger
		fn      plugin.ToolFunc
	}{
		{"quit", action.TapTrigger(), func(action.Result) { app.Quit() }},
		{"theme", action.TapTrigger(), func(action.Result) {
			th := app.themes.Next()
			app.applyTheme(th)
			api.SetStatusMessage("Theme: %s (long-press for the list)", th.Name)
		}},
		{"themes", action.LongPressTrigger(), func(action.Result) {
			api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		}},
		{"wrap", action.TapTrigger(), func(action.Result) { app.toggleWrap() }},
		{"reload", action.TapTrigger(), func(action.Result) { app.reload() }},
		{"help", action.TapTrigger(), func(action.Result) { api.SetStatusMessage(helpText) }},
	}
	for _, t := range tools {
		if err := api.RegisterTool(t.label, t.trigger, t.fn); err != nil {
			logger.Warnf("Failed to register '%s' tool: %v", t.label, err)
		}
	}
}
