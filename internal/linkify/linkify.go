// Package linkify turns source files and plain text into styled documents
// whose links (import paths, URLs) carry actions.
package linkify

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/bethropolis/tidetap/internal/types"
)

// Kind says what a link points at.
type Kind int

const (
	KindURL Kind = iota
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindImport:
		return "import"
	}
	return "unknown"
}

// Link is a detected link. Range covers the characters that become the
// action span.
type Link struct {
	Kind   Kind
	Target string
	Range  types.Range
}

// Linker makes the action for a link. Returning nil leaves the link styled
// but inert.
type Linker func(Link) *action.Action

// Renderer produces a document from raw file content.
type Renderer func(ctx context.Context, src []byte, th *theme.Theme, link Linker) (*document.Document, error)

var renderers = map[string]Renderer{
	".go": Go,
}

// File renders data with the renderer registered for path's extension,
// falling back to plain text with URL detection.
func File(ctx context.Context, path string, data []byte, th *theme.Theme, link Linker) (*document.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if r, ok := renderers[ext]; ok {
		logger.DebugTagf("linkify", "rendering %s as %s source", path, ext)
		return r(ctx, data, th, link)
	}
	return Text(ctx, data, th, link)
}

// Text styles src with the theme's Default style and links every URL in it.
func Text(_ context.Context, src []byte, th *theme.Theme, link Linker) (*document.Document, error) {
	text := []rune(string(src))
	b := document.NewBuilder().AppendStyled(string(src), th.Attributes(theme.StyleDefault))
	var links linkSet
	for _, r := range FindURLs(text) {
		links.add(Link{Kind: KindURL, Target: string(text[r.Start:r.End]), Range: r})
	}
	return links.apply(b, th, link)
}

// linkSet collects links in document order and drops any that overlap one
// already taken.
type linkSet struct {
	links []Link
}

func (s *linkSet) add(l Link) bool {
	if l.Range.IsEmpty() {
		return false
	}
	k := sort.Search(len(s.links), func(i int) bool {
		return s.links[i].Range.Start >= l.Range.Start
	})
	for _, i := range []int{k - 1, k} {
		if i < 0 || i >= len(s.links) {
			continue
		}
		if prev := s.links[i]; prev.Range.Overlaps(l.Range) {
			logger.DebugTagf("linkify", "dropping %v link %q overlapping %q", l.Kind, l.Target, prev.Target)
			return false
		}
	}
	s.links = slices.Insert(s.links, k, l)
	return true
}

func (s *linkSet) apply(b *document.Builder, th *theme.Theme, link Linker) (*document.Document, error) {
	linkStyle := th.Attributes(theme.StyleLink)
	for _, l := range s.links {
		b.SetAttributes(l.Range, linkStyle)
		if link == nil {
			continue
		}
		if a := link(l); a != nil {
			b.SetAction(l.Range, a)
		}
	}
	doc, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("linkify: %w", err)
	}
	logger.DebugTagf("linkify", "built document of %d characters with %d links", doc.Len(), len(s.links))
	return doc, nil
}

// styleFor maps a capture name to theme attributes.
func styleFor(th *theme.Theme, capture string) style.Attributes {
	return th.Attributes(strings.TrimPrefix(capture, "@"))
}
