package style

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestMergeLastWriterWins(t *testing.T) {
	base := Attributes{KeyBold: true, KeyForeground: tcell.ColorRed}
	merged := base.Merge(Attributes{KeyForeground: tcell.ColorBlue, KeyUnderline: true})

	assert.Equal(t, tcell.ColorBlue, merged[KeyForeground])
	assert.Equal(t, true, merged[KeyBold])
	assert.Equal(t, true, merged[KeyUnderline])
	// receiver untouched
	assert.Equal(t, tcell.ColorRed, base[KeyForeground])
	assert.NotContains(t, base, KeyUnderline)
}

func TestCloneAndEqual(t *testing.T) {
	var empty Attributes
	assert.Nil(t, empty.Clone())
	assert.True(t, empty.Equal(Attributes{}))

	a := Attributes{KeyItalic: true}
	b := a.Clone()
	b[KeyItalic] = false
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(Attributes{KeyItalic: true}))
}

func TestKeysSorted(t *testing.T) {
	a := Attributes{KeyUnderline: true, KeyBold: true, KeyForeground: tcell.ColorGreen}
	assert.Equal(t, []string{KeyBold, KeyForeground, KeyUnderline}, a.Keys())
}

func TestTcellRoundTrip(t *testing.T) {
	s := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Underline(true)
	attrs := FromTcell(s)
	assert.Equal(t, tcell.ColorYellow, attrs[KeyForeground])
	assert.NotContains(t, attrs, KeyBackground)

	back := attrs.ToTcell(tcell.StyleDefault)
	fg, _, am := back.Decompose()
	assert.Equal(t, tcell.ColorYellow, fg)
	assert.NotZero(t, am&tcell.AttrBold)
	assert.NotZero(t, am&tcell.AttrUnderline)
}
