package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name    string
	initErr error
	calls   *[]string
}

func (s *stub) Name() string { return s.name }

func (s *stub) Initialize(api ViewerAPI) error {
	*s.calls = append(*s.calls, "init "+s.name)
	return s.initErr
}

func (s *stub) Shutdown() error {
	*s.calls = append(*s.calls, "shutdown "+s.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var calls []string
	m := NewManager()
	require.NoError(t, m.Register(&stub{name: "b", calls: &calls}))
	require.NoError(t, m.Register(&stub{name: "a", calls: &calls, initErr: errors.New("boom")}))

	assert.Error(t, m.Register(&stub{name: "b", calls: &calls}))
	assert.Error(t, m.Register(&stub{name: "", calls: &calls}))

	failed := m.InitializePlugins(nil)
	assert.Equal(t, []string{"a"}, failed)
	m.ShutdownPlugins()

	assert.Equal(t, []string{"init b", "init a", "shutdown b", "shutdown a"}, calls)

	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
}
