package document

import (
	"math/rand"
	"testing"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type image struct{ name string }

func rng(s, e int) types.Range { return types.Range{Start: s, End: e} }

// tapHereNow builds "Tap here now" with an action over "here".
func tapHereNow(t *testing.T) (*Document, *action.Action) {
	t.Helper()
	a := action.New(action.TapTrigger(), style.Attributes{style.KeyUnderline: true}, nil)
	doc, err := NewBuilder().
		Append("Tap ").
		AppendAction("here", style.Attributes{style.KeyForeground: tcell.ColorBlue}, a).
		Append(" now").
		Build()
	require.NoError(t, err)
	return doc, a
}

func TestActionAt(t *testing.T) {
	doc, a := tapHereNow(t)
	require.Equal(t, 12, doc.Len())

	for i := 0; i < doc.Len(); i++ {
		r, got, ok := doc.ActionAt(i)
		if i >= 4 && i < 8 {
			assert.True(t, ok, "index %d", i)
			assert.Same(t, a, got)
			assert.Equal(t, rng(4, 8), r)
		} else {
			assert.False(t, ok, "index %d", i)
		}
	}
	_, _, ok := doc.ActionAt(-1)
	assert.False(t, ok)
	_, _, ok = doc.ActionAt(100)
	assert.False(t, ok)
}

func TestActionAtManySpans(t *testing.T) {
	b := NewBuilder()
	var actions []*action.Action
	for i := 0; i < 50; i++ {
		a := action.New(action.TapTrigger(), nil, nil)
		actions = append(actions, a)
		b.Append("..").AppendAction("xyz", nil, a)
	}
	doc := b.MustBuild()
	for i, a := range actions {
		start := i*5 + 2
		r, got, ok := doc.ActionAt(start + 1)
		require.True(t, ok)
		assert.Same(t, a, got)
		assert.Equal(t, rng(start, start+3), r)
		_, _, ok = doc.ActionAt(start - 1)
		assert.False(t, ok)
	}
}

func TestSubstringAndAttachment(t *testing.T) {
	img := &image{name: "logo"}
	a := action.New(action.TapTrigger(), nil, nil)
	doc := NewBuilder().
		Append("see ").
		AppendAttachment(img, nil, a).
		Append(" ok").
		MustBuild()

	assert.Equal(t, 7, doc.Len())
	assert.Equal(t, "see", doc.Substring(rng(0, 3)))
	assert.Equal(t, " ok", doc.Substring(rng(5, 100)))
	assert.Equal(t, "", doc.Substring(rng(3, 3)))

	ref, ok := doc.AttachmentAt(rng(4, 5))
	require.True(t, ok)
	assert.Same(t, img, ref)
	_, ok = doc.AttachmentAt(rng(0, 3))
	assert.False(t, ok)
	assert.True(t, doc.IsAttachment(4))

	r, got, ok := doc.ActionAt(4)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, rng(4, 5), r)
}

func TestWithMergedAttributesIsPure(t *testing.T) {
	doc, a := tapHereNow(t)
	before := doc.Runs()

	hl := doc.WithMergedAttributes(rng(4, 8), a.Highlight)
	require.NotSame(t, doc, hl)

	assert.Equal(t, before, doc.Runs(), "receiver must not change")
	assert.Equal(t, true, hl.StyleAt(5)[style.KeyUnderline])
	assert.Equal(t, tcell.ColorBlue, hl.StyleAt(5)[style.KeyForeground], "existing keys survive")
	assert.NotContains(t, hl.StyleAt(3), style.KeyUnderline)
	assert.NotContains(t, hl.StyleAt(8), style.KeyUnderline)
	assert.False(t, doc.Equal(hl))

	// action index is shared, not changed
	_, got, ok := hl.ActionAt(6)
	assert.True(t, ok)
	assert.Same(t, a, got)
}

func TestWithMergedAttributesLastWriterWins(t *testing.T) {
	doc := NewBuilder().AppendStyled("abcdef", style.Attributes{style.KeyForeground: tcell.ColorRed}).MustBuild()
	out := doc.WithMergedAttributes(rng(2, 4), style.Attributes{style.KeyForeground: tcell.ColorGreen})

	runs := out.Runs()
	require.Len(t, runs, 3)
	assert.Equal(t, rng(0, 2), runs[0].Range)
	assert.Equal(t, tcell.ColorGreen, runs[1].Attrs[style.KeyForeground])
	assert.Equal(t, rng(4, 6), runs[2].Range)
}

func TestWithMergedAttributesNoop(t *testing.T) {
	doc, _ := tapHereNow(t)
	assert.Same(t, doc, doc.WithMergedAttributes(rng(4, 8), nil))
	assert.Same(t, doc, doc.WithMergedAttributes(rng(20, 30), style.Attributes{style.KeyBold: true}))
	assert.Same(t, doc, doc.WithMergedAttributes(rng(4, 8), style.Attributes{style.KeyAction: "x"}))
}

func TestAttributesAtIncludesAction(t *testing.T) {
	doc, a := tapHereNow(t)
	attrs := doc.AttributesAt(5)
	assert.Same(t, a, attrs[style.KeyAction])
	assert.NotContains(t, doc.AttributesAt(0), style.KeyAction)
	assert.NotContains(t, doc.StyleAt(5), style.KeyAction)
}

func TestBuildRejectsOverlap(t *testing.T) {
	a := action.New(action.TapTrigger(), nil, nil)
	b := action.New(action.LongPressTrigger(), nil, nil)
	_, err := NewBuilder().Append("overlap").SetAction(rng(0, 4), a).SetAction(rng(3, 6), b).Build()
	assert.ErrorIs(t, err, ErrOverlappingAction)

	_, err = NewBuilder().Append("short").SetAction(rng(2, 9), a).Build()
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	_, err = NewBuilder().Append("short").SetAttributes(rng(-1, 2), style.Attributes{style.KeyBold: true}).Build()
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestBuildJoinsSameActionSpans(t *testing.T) {
	a := action.New(action.TapTrigger(), nil, nil)
	doc := NewBuilder().
		AppendAction("bold", style.Attributes{style.KeyBold: true}, a).
		AppendAction("plain", nil, a).
		MustBuild()

	r, got, ok := doc.ActionAt(6)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, rng(0, 9), r)
	assert.Len(t, doc.Actions(), 1)
	assert.Len(t, doc.Runs(), 2)
}

func TestTriggers(t *testing.T) {
	doc := NewBuilder().
		AppendAction("a", nil, action.New(action.TapTrigger(), nil, nil)).
		AppendAction("b", nil, action.New(action.CustomTrigger("secondary"), nil, nil)).
		AppendAction("c", nil, action.New(action.TapTrigger(), nil, nil)).
		AppendAction("d", nil, action.New(action.CustomTrigger("secondary"), nil, nil)).
		MustBuild()
	assert.Equal(t, []action.Trigger{action.TapTrigger(), action.CustomTrigger("secondary")}, doc.Triggers())
}

func TestEqual(t *testing.T) {
	d1, _ := tapHereNow(t)
	d2, _ := tapHereNow(t)
	assert.True(t, d1.Equal(d1))
	assert.False(t, d1.Equal(d2), "different action instances")
	assert.True(t, FromString("abc").Equal(FromString("abc")))
	assert.False(t, FromString("abc").Equal(FromString("abd")))
	assert.False(t, d1.Equal(nil))
	assert.True(t, Empty().Equal(FromString("")))
}

func TestBuilderSetAttributesAppliesInOrder(t *testing.T) {
	doc := NewBuilder().
		AppendStyled("abcdefgh", style.Attributes{style.KeyForeground: tcell.ColorRed}).
		SetAttributes(rng(1, 6), style.Attributes{style.KeyForeground: tcell.ColorGreen, style.KeyBold: true}).
		SetAttributes(rng(3, 8), style.Attributes{style.KeyForeground: tcell.ColorBlue}).
		SetAttributes(rng(4, 5), style.Attributes{style.KeyAction: "ignored"}).
		MustBuild()

	runs := doc.Runs()
	require.Len(t, runs, 4)
	assert.Equal(t, []types.Range{rng(0, 1), rng(1, 3), rng(3, 6), rng(6, 8)},
		[]types.Range{runs[0].Range, runs[1].Range, runs[2].Range, runs[3].Range})
	assert.Equal(t, tcell.ColorGreen, runs[1].Attrs[style.KeyForeground])
	assert.Equal(t, style.Attributes{style.KeyForeground: tcell.ColorBlue, style.KeyBold: true}, runs[2].Attrs)
	assert.Equal(t, style.Attributes{style.KeyForeground: tcell.ColorBlue}, runs[3].Attrs)
}

func TestBuilderManyAttributeRanges(t *testing.T) {
	const size = 3000
	colors := []tcell.Color{tcell.ColorRed, tcell.ColorGreen, tcell.ColorBlue}
	r := rand.New(rand.NewSource(7))

	b := NewBuilder()
	want := make([]style.Attributes, 0, size)
	for b.Len() < size {
		attrs := style.Attributes{style.KeyForeground: colors[r.Intn(len(colors))]}
		n := 1 + r.Intn(5)
		for i := 0; i < n; i++ {
			want = append(want, attrs)
		}
		b.AppendStyled(string([]rune("xxxxx")[:n]), attrs)
	}
	keys := []string{style.KeyForeground, style.KeyBold, style.KeyUnderline}
	for i := 0; i < 5000; i++ {
		start := r.Intn(len(want))
		end := start + 1 + r.Intn(40)
		if end > len(want) {
			end = len(want)
		}
		var v any = true
		key := keys[r.Intn(len(keys))]
		if key == style.KeyForeground {
			v = colors[r.Intn(len(colors))]
		}
		attrs := style.Attributes{key: v}
		b.SetAttributes(rng(start, end), attrs)
		for j := start; j < end; j++ {
			want[j] = want[j].Merge(attrs)
		}
	}
	doc := b.MustBuild()

	for i, attrs := range want {
		require.True(t, attrs.Equal(doc.StyleAt(i)), "attributes at %d: want %v, got %v", i, attrs, doc.StyleAt(i))
	}
	runs := doc.Runs()
	for i := 1; i < len(runs); i++ {
		require.Equal(t, runs[i-1].Range.End, runs[i].Range.Start)
		require.False(t, runs[i-1].Attrs.Equal(runs[i].Attrs), "runs %d and %d not coalesced", i-1, i)
	}
}
