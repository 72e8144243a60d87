// Package clipboard copies dispatched text to the system clipboard, keeping
// an in-process copy for terminals where no system clipboard is available.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/tidetap/internal/logger"
)

// Manager holds the last copied text.
type Manager struct {
	system   bool
	internal string

	writeAll func(string) error
	readAll  func() (string, error)
}

// NewManager returns a clipboard that also writes to the system clipboard
// when system is set and the platform supports it.
func NewManager(system bool) *Manager {
	if system && clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal clipboard")
		system = false
	}
	return &Manager{
		system:   system,
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// System reports whether the system clipboard is in use.
func (m *Manager) System() bool { return m.system }

// Copy stores text. The internal copy is always updated; an error means only
// the system clipboard write failed.
func (m *Manager) Copy(text string) error {
	m.internal = text
	logger.DebugTagf("clipboard", "Clipboard: copied %d bytes", len(text))
	if !m.system {
		return nil
	}
	if err := m.writeAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	return nil
}

// Paste returns the clipboard content, preferring the system clipboard and
// falling back to the internal copy if it cannot be read.
func (m *Manager) Paste() string {
	if m.system {
		text, err := m.readAll()
		if err == nil {
			return text
		}
		logger.Warnf("Clipboard: system read failed, using internal copy: %v", err)
	}
	return m.internal
}
