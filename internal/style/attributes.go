// Package style holds the attribute bags attached to runs of a styled document.
package style

import (
	"reflect"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Well-known attribute keys understood by the terminal renderer.
const (
	KeyForeground = "fg"        // tcell.Color
	KeyBackground = "bg"        // tcell.Color
	KeyBold       = "bold"      // bool
	KeyItalic     = "italic"    // bool
	KeyUnderline  = "underline" // bool
	KeyReverse    = "reverse"   // bool
	KeyDim        = "dim"       // bool

	// KeyAction is reserved: it is never stored in a run, the document
	// reports its action spans under this key from AttributesAt.
	KeyAction = "action"
)

// Attributes is a bag of style overrides keyed by attribute name.
// Values are treated as immutable; a nil map is an empty bag.
type Attributes map[string]any

// Clone returns a shallow copy. The copy of an empty bag is nil.
func (a Attributes) Clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge returns a new bag holding a overlaid with overrides, last writer wins
// per key. Neither input is modified.
func (a Attributes) Merge(overrides Attributes) Attributes {
	if len(overrides) == 0 {
		return a.Clone()
	}
	out := make(Attributes, len(a)+len(overrides))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Equal reports whether both bags hold the same keys with equal values.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToTcell applies the well-known keys on top of base. Unknown keys and values
// of the wrong type are ignored.
func (a Attributes) ToTcell(base tcell.Style) tcell.Style {
	s := base
	if c, ok := a[KeyForeground].(tcell.Color); ok {
		s = s.Foreground(c)
	}
	if c, ok := a[KeyBackground].(tcell.Color); ok {
		s = s.Background(c)
	}
	if b, ok := a[KeyBold].(bool); ok {
		s = s.Bold(b)
	}
	if b, ok := a[KeyItalic].(bool); ok {
		s = s.Italic(b)
	}
	if b, ok := a[KeyUnderline].(bool); ok {
		s = s.Underline(b)
	}
	if b, ok := a[KeyReverse].(bool); ok {
		s = s.Reverse(b)
	}
	if b, ok := a[KeyDim].(bool); ok {
		s = s.Dim(b)
	}
	return s
}

// FromTcell extracts the well-known keys from a tcell style. Colors equal to
// tcell.ColorDefault are left out so they do not override a run's own color.
func FromTcell(s tcell.Style) Attributes {
	fg, bg, attrs := s.Decompose()
	out := Attributes{}
	if fg != tcell.ColorDefault {
		out[KeyForeground] = fg
	}
	if bg != tcell.ColorDefault {
		out[KeyBackground] = bg
	}
	if attrs&tcell.AttrBold != 0 {
		out[KeyBold] = true
	}
	if attrs&tcell.AttrItalic != 0 {
		out[KeyItalic] = true
	}
	if attrs&tcell.AttrUnderline != 0 {
		out[KeyUnderline] = true
	}
	if attrs&tcell.AttrReverse != 0 {
		out[KeyReverse] = true
	}
	if attrs&tcell.AttrDim != 0 {
		out[KeyDim] = true
	}
	return out
}
