package app

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/gesture"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/theme"
)

// demoURL is the link in the demo document.
const demoURL = "https://github.com/bethropolis/tidetap"

// demoAttachment is the attachment in the demo document.
var demoAttachment = Attachment{Name: "notes.txt", Size: 2048}

// demoDocument is shown when no file is given. It has one action per kind of
// trigger.
func demoDocument(th *theme.Theme, h handlers) *document.Document {
	text := th.Attributes(theme.StyleDefault)
	link := th.Attributes(theme.StyleLink)
	hl := th.Attributes(theme.StyleLinkHighlight)
	title := text.Merge(style.Attributes{style.KeyBold: true})

	b := document.NewBuilder()
	b.AppendStyled("tidetap\n\n", title)

	b.AppendStyled("Tap the link ", text)
	b.AppendAction(demoURL, link, action.New(action.TapTrigger(), hl, h.copyText))
	b.AppendStyled(" to copy it.\n", text)

	b.AppendStyled("Long-press ", text)
	b.AppendAction("this sentence", link, action.New(action.LongPressTrigger(), hl, h.summarize))
	b.AppendStyled(" to see the range it covers.\n", text)

	b.AppendStyled("Right-click the attachment ", text)
	b.AppendAttachment(demoAttachment, nil, action.New(action.CustomTrigger(gesture.Secondary), hl, h.inspect))
	b.AppendStyled(" to inspect it.\n", text)

	b.AppendAction("Middle-click here", link, action.New(action.CustomTrigger(gesture.Middle), hl, h.inspect))
	b.AppendStyled(" to see the text under the pointer.\n\n", text)

	b.AppendStyled("Each action fires only for its own gesture. Esc abandons a press.", text)

	doc, err := b.Build()
	if err != nil {
		logger.Errorf("App: building demo document: %v", err)
		return document.Empty()
	}
	return doc
}
