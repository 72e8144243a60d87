// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/bethropolis/tidetap/internal/logger"
)

// ErrConfigFile is wrapped by errors reading or decoding the config file.
var ErrConfigFile = errors.New("config file")

// Config holds the application's combined configuration.
type Config struct {
	Logger      logger.Config     `toml:"logger"`
	Interaction InteractionConfig `toml:"interaction"`
	Viewer      ViewerConfig      `toml:"viewer"`

	// Plugins holds free-form [plugins.<name>] tables.
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// PluginValue returns [plugins.<plugin>] <key>.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	v, ok := c.Plugins[plugin][key]
	return v, ok
}

// InteractionConfig controls gesture recognition and text layout.
type InteractionConfig struct {
	LongPressMS int    `toml:"long_press_ms"` // hold time that turns a press into a long press
	TapSlop     int    `toml:"tap_slop"`      // cells the pointer may drift and still tap
	Align       string `toml:"align"`         // top, center or bottom
	Wrap        *bool  `toml:"wrap"`
	MaxLines    int    `toml:"max_lines"` // 0 means unlimited
	TabWidth    int    `toml:"tab_width"`
}

// LongPress returns the long press threshold as a duration.
func (c InteractionConfig) LongPress() time.Duration {
	return time.Duration(c.LongPressMS) * time.Millisecond
}

// VAlign returns the parsed vertical alignment.
func (c InteractionConfig) VAlign() layout.VAlign {
	return layout.ParseVAlign(c.Align)
}

// Wraps reports whether long lines wrap. Unset means yes.
func (c InteractionConfig) Wraps() bool {
	return c.Wrap == nil || *c.Wrap
}

// Grid returns a layout grid configured from these settings.
func (c InteractionConfig) Grid() *layout.Grid {
	g := layout.NewGrid(c.TabWidth)
	g.Wrap = c.Wraps()
	g.MaxLines = c.MaxLines
	return g
}

// ViewerConfig holds settings of the terminal viewer.
type ViewerConfig struct {
	Theme           string `toml:"theme"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Interaction: InteractionConfig{
			LongPressMS: int(DefaultLongPress / time.Millisecond),
			TapSlop:     DefaultTapSlop,
			Align:       DefaultAlign,
			TabWidth:    DefaultTabWidth,
		},
		Viewer: ViewerConfig{
			Theme:           DefaultTheme,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Plugins: make(map[string]map[string]interface{}),
	}
}

// DefaultPath is $XDG_CONFIG_HOME/tidetap/config.toml, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file leaves cfg untouched.
// It returns keys present in the file that no field accepts.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: checking '%s': %w", ErrConfigFile, filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing '%s': %w", ErrConfigFile, filePath, err)
	}
	var undecoded []string
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Interaction.LongPressMS <= 0 {
		c.Interaction.LongPressMS = defaults.Interaction.LongPressMS
	}
	if c.Interaction.TapSlop < 0 {
		c.Interaction.TapSlop = defaults.Interaction.TapSlop
	}
	switch c.Interaction.Align {
	case "top", "center", "bottom":
	default:
		c.Interaction.Align = defaults.Interaction.Align
	}
	if c.Interaction.MaxLines < 0 {
		c.Interaction.MaxLines = 0
	}
	if c.Interaction.TabWidth <= 0 {
		c.Interaction.TabWidth = defaults.Interaction.TabWidth
	}

	if c.Viewer.Theme == "" {
		c.Viewer.Theme = defaults.Viewer.Theme
	}
	if c.Viewer.StatusBarHeight <= 0 {
		c.Viewer.StatusBarHeight = defaults.Viewer.StatusBarHeight
	}
}

// Load builds a configuration from defaults, the file at path (the default
// location when empty) and flag overrides, then validates it. A file that
// fails to parse is reported but defaults and flags still apply.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	var err error
	if path != "" {
		var undecoded []string
		undecoded, err = loadFromFile(path, cfg)
		if err != nil {
			cfg = NewDefaultConfig()
		} else if len(undecoded) > 0 {
			logger.Warnf("Config file '%s': unrecognized keys: %v", path, undecoded)
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
