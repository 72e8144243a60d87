// Package action defines the actions that can be attached to ranges of a
// styled document: what triggers them, how they highlight, and what they call.
package action

import (
	"fmt"

	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/types"
)

// TriggerKind identifies the interaction required to fire an action.
type TriggerKind int

const (
	TriggerTap TriggerKind = iota
	TriggerLongPress
	TriggerCustom
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerTap:
		return "tap"
	case TriggerLongPress:
		return "long-press"
	case TriggerCustom:
		return "custom"
	}
	return fmt.Sprintf("TriggerKind(%d)", int(k))
}

// Trigger is a comparable value. ID is only meaningful for TriggerCustom and
// names the custom gesture; two custom triggers with the same ID are the same
// trigger class.
type Trigger struct {
	Kind TriggerKind
	ID   string
}

// TapTrigger fires on a discrete tap.
func TapTrigger() Trigger { return Trigger{Kind: TriggerTap} }

// LongPressTrigger fires once a long press has been recognized and released.
func LongPressTrigger() Trigger { return Trigger{Kind: TriggerLongPress} }

// CustomTrigger fires when the custom gesture named id ends.
func CustomTrigger(id string) Trigger { return Trigger{Kind: TriggerCustom, ID: id} }

func (t Trigger) String() string {
	if t.Kind == TriggerCustom {
		return fmt.Sprintf("custom(%s)", t.ID)
	}
	return t.Kind.String()
}

// Matches reports whether the terminating gesture g satisfies the trigger.
func (t Trigger) Matches(g Gesture) bool {
	if g.Phase != PhaseEnded {
		return false
	}
	switch t.Kind {
	case TriggerTap:
		return g.Kind == GestureTap
	case TriggerLongPress:
		return g.Kind == GestureLongPress
	case TriggerCustom:
		return g.Kind == GestureCustom && g.ID == t.ID
	}
	return false
}

// Action is attached to a range of a document by pointer; every *Action is a
// distinct instance even when two of them carry identical fields.
type Action struct {
	Trigger   Trigger
	Highlight style.Attributes
	Callback  func(Result)
}

// New returns an action with the given trigger, highlight overrides and
// callback.
func New(trigger Trigger, highlight style.Attributes, callback func(Result)) *Action {
	return &Action{
		Trigger:   trigger,
		Highlight: highlight.Clone(),
		Callback:  callback,
	}
}

// ContentKind tags the variant held by Content.
type ContentKind int

const (
	ContentText ContentKind = iota
	ContentAttachment
)

// Content is either literal text or an attachment reference.
type Content struct {
	Kind       ContentKind
	Text       string
	Attachment any
}

// TextContent wraps a literal substring.
func TextContent(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// AttachmentContent wraps the original attachment reference.
func AttachmentContent(ref any) Content {
	return Content{Kind: ContentAttachment, Attachment: ref}
}

func (c Content) String() string {
	if c.Kind == ContentAttachment {
		return fmt.Sprintf("attachment(%v)", c.Attachment)
	}
	return fmt.Sprintf("text(%q)", c.Text)
}

// Result is handed to an action's callback when it fires.
type Result struct {
	Range   types.Range
	Content Content
}
