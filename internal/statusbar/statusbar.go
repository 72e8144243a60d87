// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the bar styles from th.
func ConfigFromTheme(th *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		MessageTimeout: timeout,
	}
}

// StatusBar is the bottom line of the viewer: the document title, what is
// under the pointer, and short-lived messages reporting dispatched actions.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	title  string
	detail string
	hint   string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig replaces styles and timeout, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetTitle sets the name of what is being viewed.
func (sb *StatusBar) SetTitle(title string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.title = title
}

// SetDetail shows what the pointer is over; empty clears it.
func (sb *StatusBar) SetDetail(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.detail = fmt.Sprintf(format, args...)
}

// SetHint sets the right-aligned key help.
func (sb *StatusBar) SetHint(hint string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.hint = hint
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the left part and style that Draw would use now. An expired
// temporary message is cleared.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		return sb.tempMessage, sb.config.StyleMessage
	}

	title := sb.title
	if title == "" {
		title = "[No Name]"
	}
	if sb.detail != "" {
		return fmt.Sprintf("%s -- %s", title, sb.detail), sb.config.StyleDefault
	}
	return title, sb.config.StyleDefault
}

// Draw renders the status bar on line y using visual widths. The hint is
// right-aligned and dropped when it would overlap the text.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 {
		return
	}
	text, style := sb.Text()
	sb.mu.RLock()
	hint := sb.hint
	barStyle := sb.config.StyleDefault
	sb.mu.RUnlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	used := drawClusters(screen, 0, y, width, text, style)

	if hint == "" {
		return
	}
	hintWidth := uniseg.StringWidth(hint)
	if start := width - hintWidth; start > used+1 {
		drawClusters(screen, start, y, width, hint, barStyle)
	}
}

// drawClusters draws s from x, stopping before limit, and returns the
// column after the last cluster drawn.
func drawClusters(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
