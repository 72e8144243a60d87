package wordcount

import (
	"testing"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/plugin/plugintest"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *document.Document {
	a := action.New(action.TapTrigger(), nil, nil)
	return document.NewBuilder().
		Append("Tap ").
		AppendAction("here", style.Attributes{style.KeyBold: true}, a).
		Append(" now\nsee ").
		AppendAttachment("img", nil, nil).
		Append("\n").
		MustBuild()
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		doc  *document.Document
		want Stats
	}{
		{"nil", nil, Stats{}},
		{"empty", document.Empty(), Stats{}},
		{"single line", document.FromString("one two  three"), Stats{Lines: 1, Words: 3, Chars: 14}},
		{"attachment and action", sample(), Stats{Lines: 2, Words: 5, Chars: 19, Actions: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.doc))
		})
	}
}

func TestToolReportsCounts(t *testing.T) {
	api := plugintest.New(sample())
	p := New()
	require.NoError(t, p.Initialize(api))

	tool, ok := api.Tool("wc")
	require.True(t, ok)
	assert.Equal(t, action.TapTrigger(), tool.Trigger)

	tool.Run(action.Result{})
	assert.Equal(t, "Lines: 2, Words: 5, Chars: 19, Actions: 1", api.LastMessage())

	assert.Error(t, p.Initialize(api), "second registration of the same tool")
	assert.NoError(t, p.Shutdown())
}
