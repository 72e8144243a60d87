// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount is a simple plugin to count lines, words, characters and actions
// of the document being viewed.
type WordCount struct {
	api plugin.ViewerAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "WordCount"
}

// Initialize puts a "wc" entry on the toolbar.
func (p *WordCount) Initialize(api plugin.ViewerAPI) error {
	p.api = api

	if err := api.RegisterTool("wc", action.TapTrigger(), p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' tool: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(action.Result) {
	if p.api == nil {
		return
	}
	s := Count(p.api.Document())
	p.api.SetStatusMessage("Lines: %d, Words: %d, Chars: %d, Actions: %d", s.Lines, s.Words, s.Chars, s.Actions)
}

// Stats summarizes a document.
type Stats struct {
	Lines   int
	Words   int
	Chars   int // attachments count as one character
	Actions int
}

// Count computes Stats for doc. An empty document has zero lines.
func Count(doc *document.Document) Stats {
	if doc == nil || doc.Len() == 0 {
		return Stats{}
	}
	text := doc.Text()
	return Stats{
		Lines:   strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1,
		Words:   countWords(text),
		Chars:   doc.Len(),
		Actions: len(doc.Actions()),
	}
}

// countWords counts sequences of non-space characters. The attachment
// placeholder counts as a word of its own.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if r == document.AttachmentRune {
			count++
			inWord = false
			continue
		}
		if !unicode.IsSpace(r) {
			if !inWord {
				count++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return count
}
