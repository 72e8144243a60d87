package linkify

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/bethropolis/tidetap/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
)

//go:embed queries/go/highlights.scm
var goHighlightsQuery []byte

var (
	goQueryOnce sync.Once
	goQuery     *sitter.Query
	goQueryErr  error
)

func loadGoQuery() (*sitter.Query, error) {
	goQueryOnce.Do(func() {
		goQuery, goQueryErr = sitter.NewQuery(goHighlightsQuery, gosrc.GetLanguage())
	})
	return goQuery, goQueryErr
}

// capture is a query capture in character offsets.
type capture struct {
	name    string
	rng     types.Range
	pattern int
	order   int
}

// Go parses src as Go source, styles it by syntax and links import paths
// and the URLs found in comments and string literals.
func Go(ctx context.Context, src []byte, th *theme.Theme, link Linker) (*document.Document, error) {
	captures, err := goCaptures(ctx, src)
	if err != nil {
		return nil, err
	}

	text := []rune(string(src))
	b := document.NewBuilder().AppendStyled(string(src), th.Attributes(theme.StyleDefault))
	var links linkSet

	for _, c := range captures {
		switch c.name {
		case "link.import":
			path := string(text[c.rng.Start:c.rng.End])
			unquoted, err := strconv.Unquote(path)
			if err != nil {
				logger.Warnf("linkify: import path %s: %v", path, err)
				continue
			}
			inner := types.Range{Start: c.rng.Start + 1, End: c.rng.End - 1}
			links.add(Link{Kind: KindImport, Target: unquoted, Range: inner})
		case "comment", "string":
			b.SetAttributes(c.rng, styleFor(th, c.name))
			for _, r := range FindURLs(text[c.rng.Start:c.rng.End]) {
				r = types.Range{Start: r.Start + c.rng.Start, End: r.End + c.rng.Start}
				links.add(Link{Kind: KindURL, Target: string(text[r.Start:r.End]), Range: r})
			}
		default:
			b.SetAttributes(c.rng, styleFor(th, c.name))
		}
	}
	return links.apply(b, th, link)
}

// goCaptures runs the highlight query over src and returns the captures in
// character offsets, ordered by start position and then by pattern so that
// later patterns are applied last.
func goCaptures(ctx context.Context, src []byte) ([]capture, error) {
	query, err := loadGoQuery()
	if err != nil {
		return nil, fmt.Errorf("go highlight query: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(gosrc.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing go source: %w", err)
	}
	defer tree.Close()

	runeIndex := byteToRuneIndex(src)
	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var out []capture
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			start, end := int(c.Node.StartByte()), int(c.Node.EndByte())
			if end <= start || end > len(src) {
				continue
			}
			out = append(out, capture{
				name:    query.CaptureNameForId(c.Index),
				rng:     types.Range{Start: runeIndex[start], End: runeIndex[end]},
				pattern: int(match.PatternIndex),
				order:   len(out),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].rng.Start != out[j].rng.Start {
			return out[i].rng.Start < out[j].rng.Start
		}
		if out[i].pattern != out[j].pattern {
			return out[i].pattern < out[j].pattern
		}
		return out[i].order < out[j].order
	})
	logger.DebugTagf("linkify", "go: %d captures", len(out))
	return out, nil
}

// byteToRuneIndex maps every byte offset of src, plus len(src), to the index
// of the character containing it, decoding the same way []rune(string(src))
// does.
func byteToRuneIndex(src []byte) []int {
	index := make([]int, len(src)+1)
	r := 0
	for i := 0; i < len(src); {
		_, size := utf8.DecodeRune(src[i:])
		for k := 0; k < size; k++ {
			index[i+k] = r
		}
		i += size
		r++
	}
	index[len(src)] = r
	return index
}
