package document

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/types"
)

var (
	// ErrOverlappingAction is returned when two different actions claim the
	// same character.
	ErrOverlappingAction = errors.New("overlapping action ranges")
	// ErrRangeOutOfBounds is returned for ranges outside [0, Len).
	ErrRangeOutOfBounds = errors.New("range out of bounds")
)

// Builder assembles a Document. Methods chain; the first error sticks and is
// reported by Build.
type Builder struct {
	text        []rune
	runs        []Run
	overrides   []override
	actions     []ActionSpan
	attachments map[int]any
	err         error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{attachments: make(map[int]any)}
}

// Len returns the number of characters appended so far.
func (b *Builder) Len() int {
	return len(b.text)
}

// Append adds unstyled text.
func (b *Builder) Append(s string) *Builder {
	return b.AppendStyled(s, nil)
}

// AppendStyled adds text carrying attrs.
func (b *Builder) AppendStyled(s string, attrs style.Attributes) *Builder {
	b.appendRunes([]rune(s), attrs)
	return b
}

// AppendAction adds text carrying attrs and attaches a to it.
func (b *Builder) AppendAction(s string, attrs style.Attributes, a *action.Action) *Builder {
	start := len(b.text)
	b.appendRunes([]rune(s), attrs)
	return b.SetAction(types.Range{Start: start, End: len(b.text)}, a)
}

// AppendAttachment adds an attachment occupying one character slot. a may be
// nil for a plain attachment.
func (b *Builder) AppendAttachment(ref any, attrs style.Attributes, a *action.Action) *Builder {
	i := len(b.text)
	b.appendRunes([]rune{AttachmentRune}, attrs)
	b.attachments[i] = ref
	if a != nil {
		b.SetAction(types.Range{Start: i, End: i + 1}, a)
	}
	return b
}

// SetAction attaches a to r. Overlap with another action is detected by Build.
func (b *Builder) SetAction(r types.Range, a *action.Action) *Builder {
	if r.IsEmpty() || a == nil {
		return b
	}
	b.actions = append(b.actions, ActionSpan{Range: r, Action: a})
	return b
}

// SetAttributes merges attrs into the characters of r. Merges are applied in
// call order when the document is built.
func (b *Builder) SetAttributes(r types.Range, attrs style.Attributes) *Builder {
	if b.err != nil {
		return b
	}
	if !r.Within(len(b.text)) {
		b.err = fmt.Errorf("set attributes %v on %d characters: %w", r, len(b.text), ErrRangeOutOfBounds)
		return b
	}
	b.overrides = append(b.overrides, override{rng: r, attrs: withoutReserved(attrs).Clone()})
	return b
}

func (b *Builder) appendRunes(rs []rune, attrs style.Attributes) {
	if len(rs) == 0 {
		return
	}
	start := len(b.text)
	b.text = append(b.text, rs...)
	b.runs = append(b.runs, Run{
		Range: types.Range{Start: start, End: len(b.text)},
		Attrs: withoutReserved(attrs).Clone(),
	})
}

// Build validates the action ranges and returns the document. Ranges of the
// same action that touch are joined into one span.
func (b *Builder) Build() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	spans := make([]ActionSpan, len(b.actions))
	copy(spans, b.actions)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Range.Start < spans[j].Range.Start
	})

	var joined []ActionSpan
	for _, span := range spans {
		if !span.Range.Within(len(b.text)) {
			return nil, fmt.Errorf("action %v on %d characters: %w", span.Range, len(b.text), ErrRangeOutOfBounds)
		}
		if n := len(joined); n > 0 {
			prev := &joined[n-1]
			if prev.Range.Overlaps(span.Range) && prev.Action != span.Action {
				return nil, fmt.Errorf("actions at %v and %v: %w", prev.Range, span.Range, ErrOverlappingAction)
			}
			if prev.Action == span.Action && span.Range.Start <= prev.Range.End {
				prev.Range.End = max(prev.Range.End, span.Range.End)
				continue
			}
		}
		joined = append(joined, span)
	}

	attachments := make(map[int]any, len(b.attachments))
	for i, ref := range b.attachments {
		attachments[i] = ref
	}
	text := make([]rune, len(b.text))
	copy(text, b.text)

	return &Document{
		text:        text,
		runs:        resolveRuns(b.runs, b.overrides),
		actions:     joined,
		attachments: attachments,
	}, nil
}

// MustBuild is Build for documents assembled from static content; it panics
// on error.
func (b *Builder) MustBuild() *Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}
