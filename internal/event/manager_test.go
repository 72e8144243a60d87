package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeActionDispatched, func(e Event) bool {
		got = append(got, "first")
		return false
	})
	m.Subscribe(TypeActionDispatched, func(e Event) bool {
		got = append(got, "second:"+e.Data.(string))
		return false
	})
	m.Dispatch(TypeActionDispatched, "x")
	assert.Equal(t, []string{"first", "second:x"}, got)
}

func TestConsumedStopsPropagation(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return true })
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return false })
	m.Dispatch(TypeAppQuit, AppQuitData{})
	assert.Equal(t, 1, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	var nilManager *Manager
	assert.NotPanics(t, func() {
		NewManager().Dispatch(TypeAppReady, nil)
		nilManager.Dispatch(TypeAppReady, nil)
	})
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "ActionDispatched", TypeActionDispatched.String())
	assert.Equal(t, "Unknown", Type(999).String())
}
