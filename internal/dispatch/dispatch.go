// Package dispatch hands the content under a resolved range to an action's
// callback.
package dispatch

import (
	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/types"
)

// Content extracts what r holds in doc: the attachment reference when the
// range is backed by an attachment, the literal characters otherwise.
func Content(doc *document.Document, r types.Range) action.Content {
	if ref, ok := doc.AttachmentAt(r); ok {
		return action.AttachmentContent(ref)
	}
	return action.TextContent(doc.Substring(r))
}

// Dispatch builds the result for r and calls a's callback synchronously on
// the caller's goroutine. It returns the result that was delivered.
func Dispatch(doc *document.Document, r types.Range, a *action.Action) action.Result {
	res := action.Result{Range: r, Content: Content(doc, r)}
	if a == nil || a.Callback == nil {
		logger.DebugTagf("dispatch", "Dispatch: no callback for %v", r)
		return res
	}
	logger.DebugTagf("dispatch", "Dispatch: %v %v -> %v", a.Trigger, r, res.Content)
	a.Callback(res)
	return res
}
