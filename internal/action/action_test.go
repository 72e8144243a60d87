package action

import (
	"testing"

	"github.com/bethropolis/tidetap/internal/style"
	"github.com/stretchr/testify/assert"
)

func TestTriggerMatches(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		gesture Gesture
		want    bool
	}{
		{"tap on tap", TapTrigger(), Tap(), true},
		{"tap on long press", TapTrigger(), LongPress(), false},
		{"long press on long press", LongPressTrigger(), LongPress(), true},
		{"long press on tap", LongPressTrigger(), Tap(), false},
		{"custom same id", CustomTrigger("secondary"), Custom("secondary"), true},
		{"custom other id", CustomTrigger("secondary"), Custom("middle"), false},
		{"custom on tap", CustomTrigger("secondary"), Tap(), false},
		{"tap not ended", TapTrigger(), Gesture{Kind: GestureTap, Phase: PhaseBegan}, false},
		{"long press cancelled", LongPressTrigger(), Gesture{Kind: GestureLongPress, Phase: PhaseCancelled}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trigger.Matches(tt.gesture))
		})
	}
}

func TestTriggerEqualityIsStructural(t *testing.T) {
	assert.Equal(t, CustomTrigger("x"), CustomTrigger("x"))
	assert.NotEqual(t, CustomTrigger("x"), CustomTrigger("y"))
	assert.NotEqual(t, TapTrigger(), LongPressTrigger())
}

func TestNewActionsAreDistinct(t *testing.T) {
	hl := style.Attributes{style.KeyUnderline: true}
	a := New(TapTrigger(), hl, nil)
	b := New(TapTrigger(), hl, nil)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Trigger, b.Trigger)

	// highlight is copied at construction
	hl[style.KeyBold] = true
	assert.NotContains(t, a.Highlight, style.KeyBold)
}

func TestContentString(t *testing.T) {
	assert.Equal(t, `text("here")`, TextContent("here").String())
	assert.Equal(t, "attachment(img)", AttachmentContent("img").String())
}
