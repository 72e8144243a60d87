package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/tidetap/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
	assert.Equal(t, DefaultLongPress, cfg.Interaction.LongPress())
	assert.Equal(t, layout.AlignCenter, cfg.Interaction.VAlign())
	assert.True(t, cfg.Interaction.Wraps())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["session"]

[interaction]
long_press_ms = 800
tap_slop = 2
align = "top"
wrap = false
max_lines = 3
tab_width = 8

[viewer]
theme = "light"
system_clipboard = false

[plugins.taplog]
enabled = true
interval = "10s"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"session"}, cfg.Logger.EnabledTags)
	assert.Equal(t, 800*time.Millisecond, cfg.Interaction.LongPress())
	assert.Equal(t, 2, cfg.Interaction.TapSlop)
	assert.Equal(t, layout.AlignTop, cfg.Interaction.VAlign())
	assert.False(t, cfg.Interaction.Wraps())
	assert.Equal(t, "light", cfg.Viewer.Theme)
	assert.False(t, cfg.Viewer.SystemClipboard)
	assert.Equal(t, StatusBarHeight, cfg.Viewer.StatusBarHeight, "unset keys keep defaults")

	enabled, ok := cfg.PluginValue("taplog", "enabled")
	require.True(t, ok)
	assert.Equal(t, true, enabled)
	_, ok = cfg.PluginValue("taplog", "path")
	assert.False(t, ok)
	_, ok = cfg.PluginValue("absent", "enabled")
	assert.False(t, ok)

	g := cfg.Interaction.Grid()
	assert.Equal(t, 8, g.TabWidth)
	assert.Equal(t, 3, g.MaxLines)
	assert.False(t, g.Wrap)
}

func TestValidateResetsInvalid(t *testing.T) {
	path := writeConfig(t, `
[interaction]
long_press_ms = -5
tap_slop = -1
align = "sideways"
max_lines = -2
tab_width = 0

[viewer]
theme = ""
status_bar_height = 0
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := NewDefaultConfig()
	assert.Equal(t, def.Interaction.LongPressMS, cfg.Interaction.LongPressMS)
	assert.Equal(t, def.Interaction.TapSlop, cfg.Interaction.TapSlop)
	assert.Equal(t, DefaultAlign, cfg.Interaction.Align)
	assert.Equal(t, 0, cfg.Interaction.MaxLines)
	assert.Equal(t, DefaultTabWidth, cfg.Interaction.TabWidth)
	assert.Equal(t, DefaultTheme, cfg.Viewer.Theme)
	assert.Equal(t, StatusBarHeight, cfg.Viewer.StatusBarHeight)
}

func TestLoadBadFile(t *testing.T) {
	path := writeConfig(t, "[interaction\nlong_press_ms = ")
	cfg, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigFile))
	assert.Equal(t, NewDefaultConfig(), cfg, "defaults still returned")
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
[interaction]
long_press_ms = 800
align = "top"
`)
	fs := flag.NewFlagSet("tidetap", flag.ContinueOnError)
	f := &Flags{}
	f.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"-longpress", "300", "-nowrap", "-log-tags", "session, hittest", "file.go"}))

	cfg, err := Load(path, f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Interaction.LongPressMS)
	assert.Equal(t, "top", cfg.Interaction.Align, "file value kept when flag unset")
	assert.False(t, cfg.Interaction.Wraps())
	assert.Equal(t, []string{"session", "hittest"}, cfg.Logger.EnabledTags)
	assert.Equal(t, []string{"file.go"}, fs.Args())
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Equal(t, []string{"a", "b"}, splitCommaList(" a, ,b "))
}
