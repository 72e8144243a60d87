// Package document implements the styled document: a read-only run of text
// and attachments, a partition of attribute runs, and an ordered index of the
// ranges that carry an action.
package document

import (
	"reflect"
	"sort"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/types"
)

// AttachmentRune stands in for an attachment in the document text.
const AttachmentRune = '\uFFFC'

// ActionSpan is a maximal range of characters sharing one action.
type ActionSpan struct {
	Range  types.Range
	Action *action.Action
}

// Document is immutable once built. Highlighting produces a new document via
// WithMergedAttributes; the receiver is never changed, so a document can be
// kept as a restore point simply by holding on to it.
type Document struct {
	text        []rune
	runs        []Run
	actions     []ActionSpan // sorted by Range.Start, non-overlapping
	attachments map[int]any
}

// Empty returns a document with no characters.
func Empty() *Document {
	return &Document{}
}

// FromString returns an unstyled document holding s.
func FromString(s string) *Document {
	doc, _ := NewBuilder().Append(s).Build()
	return doc
}

// Len returns the number of characters, counting each attachment as one.
func (d *Document) Len() int {
	return len(d.text)
}

// Text returns the document text with attachments shown as AttachmentRune.
func (d *Document) Text() string {
	return string(d.text)
}

func (d *Document) String() string {
	return d.Text()
}

// clamp restricts r to the document bounds.
func (d *Document) clamp(r types.Range) types.Range {
	return r.Intersect(types.Range{Start: 0, End: len(d.text)})
}

// Substring returns the literal characters in r, clamped to the document.
func (d *Document) Substring(r types.Range) string {
	r = d.clamp(r)
	if r.IsEmpty() {
		return ""
	}
	return string(d.text[r.Start:r.End])
}

// AttachmentAt reports the attachment backing r. As with attributed strings,
// the attachment is looked up at the first character of the range.
func (d *Document) AttachmentAt(r types.Range) (any, bool) {
	r = d.clamp(r)
	if r.IsEmpty() {
		return nil, false
	}
	ref, ok := d.attachments[r.Start]
	return ref, ok
}

// IsAttachment reports whether index i holds an attachment.
func (d *Document) IsAttachment(i int) bool {
	_, ok := d.attachments[i]
	return ok
}

// ActionAt returns the action span containing index i, if any.
func (d *Document) ActionAt(i int) (types.Range, *action.Action, bool) {
	k := sort.Search(len(d.actions), func(k int) bool {
		return d.actions[k].Range.End > i
	})
	if k < len(d.actions) && d.actions[k].Range.Contains(i) {
		span := d.actions[k]
		return span.Range, span.Action, true
	}
	return types.Range{}, nil, false
}

// Actions returns a copy of all action spans.
func (d *Document) Actions() []ActionSpan {
	out := make([]ActionSpan, len(d.actions))
	copy(out, d.actions)
	return out
}

// Triggers returns the distinct triggers used by the document, in order of
// first appearance. Hosts use it to decide which recognizers to install.
func (d *Document) Triggers() []action.Trigger {
	var out []action.Trigger
	seen := make(map[action.Trigger]struct{})
	for _, span := range d.actions {
		if _, ok := seen[span.Action.Trigger]; ok {
			continue
		}
		seen[span.Action.Trigger] = struct{}{}
		out = append(out, span.Action.Trigger)
	}
	return out
}

// Runs returns a copy of the attribute runs.
func (d *Document) Runs() []Run {
	out := make([]Run, len(d.runs))
	copy(out, d.runs)
	return out
}

// runIndex finds the run containing i, or -1.
func (d *Document) runIndex(i int) int {
	k := sort.Search(len(d.runs), func(k int) bool {
		return d.runs[k].Range.End > i
	})
	if k < len(d.runs) && d.runs[k].Range.Contains(i) {
		return k
	}
	return -1
}

// StyleAt returns the style attributes at index i, without the action key.
func (d *Document) StyleAt(i int) style.Attributes {
	if k := d.runIndex(i); k >= 0 {
		return d.runs[k].Attrs
	}
	return nil
}

// AttributesAt returns all attributes at index i, including the reserved
// action key when an action covers i.
func (d *Document) AttributesAt(i int) style.Attributes {
	attrs := d.StyleAt(i).Clone()
	if _, a, ok := d.ActionAt(i); ok {
		if attrs == nil {
			attrs = style.Attributes{}
		}
		attrs[style.KeyAction] = a
	}
	return attrs
}

// WithMergedAttributes returns a document identical to d except that inside r
// the overrides are merged into the existing attributes, last writer wins. The
// reserved action key is ignored. d is left untouched.
func (d *Document) WithMergedAttributes(r types.Range, overrides style.Attributes) *Document {
	r = d.clamp(r)
	overrides = withoutReserved(overrides)
	if r.IsEmpty() || len(overrides) == 0 {
		return d
	}
	return &Document{
		text:        d.text,
		runs:        resolveRuns(d.runs, []override{{rng: r, attrs: overrides}}),
		actions:     d.actions,
		attachments: d.attachments,
	}
}

// Equal reports whether both documents hold the same characters, attachments,
// attributes and action instances.
func (d *Document) Equal(o *Document) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	if string(d.text) != string(o.text) {
		return false
	}
	if len(d.attachments) != len(o.attachments) {
		return false
	}
	for i, ref := range d.attachments {
		if other, ok := o.attachments[i]; !ok || !sameRef(other, ref) {
			return false
		}
	}
	if len(d.runs) != len(o.runs) {
		return false
	}
	for i := range d.runs {
		if d.runs[i].Range != o.runs[i].Range || !d.runs[i].Attrs.Equal(o.runs[i].Attrs) {
			return false
		}
	}
	if len(d.actions) != len(o.actions) {
		return false
	}
	for i := range d.actions {
		if d.actions[i] != o.actions[i] {
			return false
		}
	}
	return true
}

// sameRef compares attachment references by identity where the dynamic type
// allows it.
func sameRef(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta == nil {
		return true
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return reflect.DeepEqual(a, b)
}
