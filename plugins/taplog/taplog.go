// Package taplog records every dispatched action and periodically appends
// the records to a log file.
package taplog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/event"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/plugin"
)

// Ensure TapLog implements plugin.Plugin
var _ plugin.Plugin = (*TapLog)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 30 * time.Second
)

// Entry is one dispatched action.
type Entry struct {
	When    time.Time
	Surface string
	Trigger action.Trigger
	Result  action.Result
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s %v %s", e.When.Format(time.RFC3339), e.Surface, e.Trigger, e.Result.Range, e.Result.Content)
}

// TapLog collects dispatch events. Entries are always counted; they are
// written out only when the plugin is enabled and has a path.
type TapLog struct {
	api plugin.ViewerAPI
	now func() time.Time

	// Configuration
	mutex    sync.RWMutex // Protects config and pending below
	enabled  bool
	interval time.Duration
	path     string

	pending []Entry
	total   int

	// Runtime state
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the TapLog plugin.
func New() plugin.Plugin {
	return &TapLog{
		now:      time.Now,
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *TapLog) Name() string {
	return "taplog"
}

// Initialize reads [plugins.taplog] (enabled, interval, path), subscribes to
// dispatch events, adds a "taps" toolbar entry and starts the flush loop.
func (p *TapLog) Initialize(api plugin.ViewerAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			if err != nil {
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			} else if parsedInterval <= 0 {
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			} else {
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	if pathVal, ok := api.GetPluginConfigValue(pluginName, "path"); ok {
		if strVal, isStr := pathVal.(string); isStr {
			p.path = strVal
		} else {
			logger.Warnf("%s: Invalid type for 'path' config (%T)", pluginName, pathVal)
		}
	}
	isEnabled := p.enabled && p.path != ""
	interval := p.interval
	p.mutex.Unlock()

	api.SubscribeEvent(event.TypeActionDispatched, p.record)
	if err := api.RegisterTool("taps", action.TapTrigger(), p.showCount); err != nil {
		return fmt.Errorf("failed to register 'taps' tool: %w", err)
	}

	logger.Infof("%s initialized. Writing: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.flushLoop(interval)
	}
	return nil
}

// Shutdown stops the flush loop and writes what is left.
func (p *TapLog) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
	}
	p.mutex.RLock()
	write := p.enabled && p.path != ""
	p.mutex.RUnlock()
	if write {
		return p.Flush()
	}
	return nil
}

func (p *TapLog) record(e event.Event) bool {
	data, ok := e.Data.(event.ActionDispatchedData)
	if !ok {
		logger.Warnf("%s: unexpected dispatch payload %T", p.Name(), e.Data)
		return false
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.pending = append(p.pending, Entry{
		When:    p.now(),
		Surface: data.Surface,
		Trigger: data.Trigger,
		Result:  data.Result,
	})
	p.total++
	return false
}

func (p *TapLog) showCount(action.Result) {
	p.mutex.RLock()
	total, pending := p.total, len(p.pending)
	p.mutex.RUnlock()
	p.api.SetStatusMessage("%d actions dispatched, %d not yet written", total, pending)
}

// Total returns the number of dispatches seen.
func (p *TapLog) Total() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.total
}

// Flush appends pending entries to the configured file.
func (p *TapLog) Flush() error {
	p.mutex.Lock()
	entries := p.pending
	p.pending = nil
	path := p.path
	p.mutex.Unlock()

	if len(entries) == 0 || path == "" {
		return nil
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		p.requeue(entries)
		return fmt.Errorf("%s: open %s: %w", p.Name(), path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(sb.String()); err != nil {
		p.requeue(entries)
		return fmt.Errorf("%s: write %s: %w", p.Name(), path, err)
	}
	logger.DebugTagf("taplog", "%s: wrote %d entries to %s", p.Name(), len(entries), path)
	return nil
}

func (p *TapLog) requeue(entries []Entry) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.pending = append(entries, p.pending...)
}

func (p *TapLog) flushLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.Flush(); err != nil {
				logger.Errorf("%v", err)
			}
		case <-p.stopChan:
			return
		}
	}
}
