package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBar(clock *time.Time) *StatusBar {
	sb := New(ConfigFromTheme(&theme.Dark, 4*time.Second))
	sb.now = func() time.Time { return *clock }
	return sb
}

func TestTextAndMessageExpiry(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sb := newBar(&clock)

	text, st := sb.Text()
	assert.Equal(t, "[No Name]", text)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleStatusBar), st)

	sb.SetTitle("main.go")
	sb.SetDetail("tap %q", "fmt")
	text, _ = sb.Text()
	assert.Equal(t, `main.go -- tap "fmt"`, text)

	sb.SetTemporaryMessage("copied %s", "https://go.dev")
	text, st = sb.Text()
	assert.Equal(t, "copied https://go.dev", text)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleStatusBarMessage), st)

	clock = clock.Add(5 * time.Second)
	text, _ = sb.Text()
	assert.Equal(t, `main.go -- tap "fmt"`, text, "message expired")

	sb.SetDetail("")
	text, _ = sb.Text()
	assert.Equal(t, "main.go", text)
}

func TestDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	sim.SetSize(20, 2)

	clock := time.Now()
	sb := newBar(&clock)
	sb.SetTitle("日本.txt")
	sb.SetHint("q quit")
	sb.Draw(sim, 1, 20)
	sim.Show()

	cells, w, _ := sim.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		if r := cells[w+x].Runes; len(r) > 0 {
			line = append(line, r[0])
		}
	}
	// wide clusters may leave blank filler cells behind them
	compact := strings.ReplaceAll(string(line), " ", "")
	assert.True(t, strings.HasPrefix(compact, "日本.txt"), compact)
	assert.True(t, strings.HasSuffix(string(line), "q quit"), string(line))
}
