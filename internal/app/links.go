package app

import (
	"fmt"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/linkify"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/theme"
)

// pkgSite is where tapped import paths point.
const pkgSite = "https://pkg.go.dev/"

// handlers are the callbacks body actions dispatch to.
type handlers struct {
	copyText  func(action.Result) // copy the text to the clipboard
	copyPkg   func(action.Result) // copy the package page of an import path
	summarize func(action.Result) // describe the range
	inspect   func(action.Result) // show the content, attachment or text
}

func (a *App) callbacks() handlers {
	return handlers{
		copyText: func(res action.Result) {
			a.copy(res.Content.Text, res.Content.Text)
		},
		copyPkg: func(res action.Result) {
			a.copy(pkgSite+res.Content.Text, fmt.Sprintf("package %s", res.Content.Text))
		},
		summarize: func(res action.Result) {
			a.setStatus("%d characters at %v: %q", res.Range.Len(), res.Range, res.Content.Text)
		},
		inspect: func(res action.Result) {
			if res.Content.Kind == action.ContentAttachment {
				a.setStatus("Attachment: %v", res.Content.Attachment)
				return
			}
			a.setStatus("Text: %q", res.Content.Text)
		},
	}
}

// copy puts text on the clipboard and reports it as what.
func (a *App) copy(text, what string) {
	if err := a.clipboard.Copy(text); err != nil {
		logger.Warnf("App: %v", err)
		a.setStatus("Copied %s (system clipboard unavailable)", what)
		return
	}
	a.setStatus("Copied %s", what)
}

// linker gives file links their actions: URLs copy on tap, import paths copy
// their package page on long press.
func (a *App) linker(th *theme.Theme) linkify.Linker {
	hl := th.Attributes(theme.StyleLinkHighlight)
	h := a.callbacks()
	return func(l linkify.Link) *action.Action {
		switch l.Kind {
		case linkify.KindURL:
			return action.New(action.TapTrigger(), hl, h.copyText)
		case linkify.KindImport:
			return action.New(action.LongPressTrigger(), hl, h.copyPkg)
		}
		return nil
	}
}

// Attachment is the reference carried by attachments in the demo document.
type Attachment struct {
	Name string
	Size int
}

func (at Attachment) String() string {
	return fmt.Sprintf("%s (%d bytes)", at.Name, at.Size)
}
