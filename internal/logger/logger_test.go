package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{LogLevel: "warn"}, &buf)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "logger_test.go")
}

func TestTagFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{LogLevel: "debug", EnabledTags: []string{"session"}}, &buf)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	DebugTagf("session", "armed")
	DebugTagf("hittest", "resolved")
	Debugf("untagged")

	out := buf.String()
	assert.Contains(t, out, "armed")
	assert.NotContains(t, out, "resolved")
	assert.NotContains(t, out, "untagged")
}

func TestDisabledWins(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		LogLevel:         "debug",
		EnabledTags:      []string{"a"},
		DisabledTags:     []string{"A"},
		DisabledPackages: []string{"logger"},
	}, &buf)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	DebugTagf("a", "dropped by tag")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestUninitializedDiscards(t *testing.T) {
	Init(NewConfig(), nil)
	assert.NotPanics(t, func() { Errorf("nowhere") })
}
