package app

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/theme"
)

const renderDebounceDuration = 65 * time.Millisecond

// renderFunc produces a document for a theme. It must honour ctx.
type renderFunc func(ctx context.Context, th *theme.Theme) (*document.Document, error)

// renderResult is a finished render. seq orders requests; only the result of
// the latest request is worth showing.
type renderResult struct {
	seq uint64
	doc *document.Document
	err error
}

// renderManager runs debounced background renders. Requests arriving while
// the timer is pending are folded into one; a new render cancels the one
// still running.
type renderManager struct {
	render  renderFunc
	results chan renderResult

	mu           sync.Mutex // Protects everything below
	timer        *time.Timer
	pendingTheme *theme.Theme
	cancelFunc   context.CancelFunc
	seq          uint64
	closed       bool
	debounce     time.Duration
}

func newRenderManager(render renderFunc) *renderManager {
	return &renderManager{
		render:   render,
		results:  make(chan renderResult, 1),
		debounce: renderDebounceDuration,
	}
}

// Results delivers finished renders.
func (rm *renderManager) Results() <-chan renderResult {
	return rm.results
}

// Latest is the sequence number of the most recent render started.
func (rm *renderManager) Latest() uint64 {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.seq
}

// Request schedules a render with th, resetting the debounce timer.
func (rm *renderManager) Request(th *theme.Theme) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.closed {
		return
	}

	rm.pendingTheme = th
	if rm.timer != nil {
		rm.timer.Reset(rm.debounce)
		logger.DebugTagf("render", "RenderManager: Debounce timer reset.")
		return
	}
	rm.timer = time.AfterFunc(rm.debounce, rm.run)
}

func (rm *renderManager) run() {
	rm.mu.Lock()
	rm.timer = nil
	if rm.closed || rm.pendingTheme == nil {
		rm.mu.Unlock()
		return
	}
	if rm.cancelFunc != nil {
		rm.cancelFunc()
	}
	ctx, cancel := context.WithCancel(context.Background())
	rm.cancelFunc = cancel
	rm.seq++
	seq := rm.seq
	th := rm.pendingTheme
	rm.pendingTheme = nil
	rm.mu.Unlock()

	logger.DebugTagf("render", "RenderManager: starting render %d with theme %s", seq, th.Name)

	go func() {
		defer cancel()
		start := time.Now()
		doc, err := rm.render(ctx, th)
		if ctx.Err() != nil {
			logger.DebugTagf("render", "RenderManager: render %d cancelled", seq)
			return
		}
		logger.DebugTagf("render", "RenderManager: render %d finished in %v", seq, time.Since(start))

		res := renderResult{seq: seq, doc: doc, err: err}
		for {
			select {
			case rm.results <- res:
				return
			case <-ctx.Done():
				return
			default:
			}
			// Make room, keeping whichever result is newer.
			select {
			case old := <-rm.results:
				if old.seq > res.seq {
					res = old
				}
			default:
			}
		}
	}()
}

// Shutdown stops the timer and cancels a running render.
func (rm *renderManager) Shutdown() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.closed = true
	if rm.timer != nil {
		rm.timer.Stop()
		rm.timer = nil
	}
	if rm.cancelFunc != nil {
		logger.DebugTagf("render", "RenderManager: Shutting down, cancelling running render.")
		rm.cancelFunc()
		rm.cancelFunc = nil
	}
}
