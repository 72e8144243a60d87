package app

import (
	"fmt"

	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/plugin"
	"github.com/bethropolis/tidetap/plugins/taplog"
	"github.com/bethropolis/tidetap/plugins/wordcount"
)

// defaultPlugins lists the plugins built into the viewer.
var defaultPlugins = []func() plugin.Plugin{
	wordcount.New,
	taplog.New,
}

// registerPlugins constructs and registers plugins with the manager.
func registerPlugins(pm *plugin.Manager, constructors []func() plugin.Plugin) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var finalErr error
	for _, newPlugin := range constructors {
		p := newPlugin()
		pluginName := p.Name()

		logger.DebugTagf("plugin", "Registering plugin: %s", pluginName)
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", pluginName, err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr // Store the first error encountered
			}
		}
	}
	return finalErr
}
