package linkify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidetap/internal/action"
	"github.com/bethropolis/tidetap/internal/document"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/bethropolis/tidetap/internal/theme"
	"github.com/bethropolis/tidetap/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = `package main

import (
	"fmt"
	str "strings"
)

// Docs live at https://go.dev/doc.
func main() {
	fmt.Println(str.ToUpper("see http://example.com/ü"), "ünïcode")
}
`

type collector struct {
	links []Link
}

func (c *collector) linker(l Link) *action.Action {
	c.links = append(c.links, l)
	return action.New(action.TapTrigger(), nil, nil)
}

func targets(links []Link) []string {
	var out []string
	for _, l := range links {
		out = append(out, l.Kind.String()+":"+l.Target)
	}
	return out
}

func indexOf(t *testing.T, doc *document.Document, sub string) int {
	t.Helper()
	i := strings.Index(doc.Text(), sub)
	require.GreaterOrEqual(t, i, 0, "%q not in document", sub)
	return len([]rune(doc.Text()[:i]))
}

func TestGoLinks(t *testing.T) {
	c := &collector{}
	doc, err := Go(context.Background(), []byte(goSource), &theme.Dark, c.linker)
	require.NoError(t, err)
	assert.Equal(t, goSource, doc.Text())

	assert.Equal(t, []string{
		"import:fmt",
		"import:strings",
		"url:https://go.dev/doc",
		"url:http://example.com/ü",
	}, targets(c.links))

	for _, l := range c.links {
		r, a, ok := doc.ActionAt(l.Range.Start)
		require.True(t, ok, l.Target)
		assert.Equal(t, l.Range, r)
		assert.NotNil(t, a)
		assert.Equal(t, l.Target, doc.Substring(r))
		assert.Equal(t, true, doc.StyleAt(l.Range.Start)[style.KeyUnderline], "link style applied")
	}

	// quotes around import paths are not part of the link
	i := indexOf(t, doc, `"fmt"`)
	_, _, ok := doc.ActionAt(i)
	assert.False(t, ok)
}

func TestGoExampleFile(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "example.go"))
	require.NoError(t, err)

	c := &collector{}
	doc, err := File(context.Background(), "example.go", src, &theme.Dark, c.linker)
	require.NoError(t, err)
	assert.Equal(t, string(src), doc.Text())
	assert.Equal(t, []string{
		"url:https://go.dev/ref/mod",
		"import:fmt",
		"import:net/http",
		"import:time",
		"url:https://www.githubstatus.com/",
		"url:https://www.githubstatus.com/api/v2/status.json",
	}, targets(c.links))
	assert.Len(t, doc.Actions(), 6)
}

func TestGoSyntaxStyles(t *testing.T) {
	doc, err := Go(context.Background(), []byte(goSource), &theme.Dark, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Actions(), "nil linker links nothing")

	kw := theme.Dark.Attributes("keyword")
	assert.Equal(t, kw[style.KeyForeground], doc.StyleAt(indexOf(t, doc, "func"))[style.KeyForeground])

	comment := theme.Dark.Attributes("comment")
	assert.Equal(t, comment[style.KeyForeground], doc.StyleAt(indexOf(t, doc, "// Docs"))[style.KeyForeground])

	fn := theme.Dark.Attributes("function.method")
	assert.Equal(t, fn[style.KeyForeground], doc.StyleAt(indexOf(t, doc, "Println"))[style.KeyForeground])
}

func TestGoInvalidSourceStillRenders(t *testing.T) {
	doc, err := Go(context.Background(), []byte("func ( {\n// https://pkg.go.dev\n"), &theme.Dark, (&collector{}).linker)
	require.NoError(t, err)
	assert.Equal(t, 1, len(doc.Actions()))
}

func TestText(t *testing.T) {
	c := &collector{}
	src := "Read (https://example.org/a_(b)) or ftp://files.example.net, not http://nodot."
	doc, err := Text(context.Background(), []byte(src), &theme.Light, c.linker)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"url:https://example.org/a_(b)",
		"url:ftp://files.example.net",
	}, targets(c.links))
	assert.Len(t, doc.Actions(), 2)
}

func TestFileDispatchesOnExtension(t *testing.T) {
	c := &collector{}
	_, err := File(context.Background(), "x/main.GO", []byte(goSource), &theme.Dark, c.linker)
	require.NoError(t, err)
	assert.Contains(t, targets(c.links), "import:fmt")

	c = &collector{}
	_, err = File(context.Background(), "notes.txt", []byte(goSource), &theme.Dark, c.linker)
	require.NoError(t, err)
	assert.NotContains(t, targets(c.links), "import:fmt", "plain text has no imports")
}

func TestFindURLs(t *testing.T) {
	text := []rune("ü https://a.io/x. http://localhost:8080/ok!")
	assert.Equal(t, []types.Range{{Start: 2, End: 16}, {Start: 18, End: 42}}, FindURLs(text))
	assert.Equal(t, "https://a.io/x", string(text[2:16]))
}

func TestLinkSetDropsOverlaps(t *testing.T) {
	var s linkSet
	assert.True(t, s.add(Link{Target: "a", Range: types.Range{Start: 0, End: 4}}))
	assert.False(t, s.add(Link{Target: "b", Range: types.Range{Start: 3, End: 6}}))
	assert.False(t, s.add(Link{Target: "c", Range: types.Range{Start: 6, End: 6}}))
	assert.True(t, s.add(Link{Target: "d", Range: types.Range{Start: 4, End: 6}}))
	assert.True(t, s.add(Link{Target: "e", Range: types.Range{Start: 10, End: 12}}))
	assert.False(t, s.add(Link{Target: "f", Range: types.Range{Start: 8, End: 11}}))
	assert.True(t, s.add(Link{Target: "g", Range: types.Range{Start: 7, End: 10}}))
	assert.Equal(t, []string{"a", "d", "g", "e"}, []string{s.links[0].Target, s.links[1].Target, s.links[2].Target, s.links[3].Target})
}

func TestByteToRuneIndex(t *testing.T) {
	idx := byteToRuneIndex([]byte("aü\xffb"))
	assert.Equal(t, []int{0, 1, 1, 2, 3, 4}, idx)
}

// generatedSource returns a Go file with n small documented functions.
func generatedSource(n int) []byte {
	var sb strings.Builder
	sb.WriteString("package big\n\nimport \"fmt\"\n\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "// fn%d is described at https://example.com/fn%d.\n", i, i)
		fmt.Fprintf(&sb, "func fn%d() string {\n\treturn fmt.Sprintf(\"%%d-%%s\", %d, \"x\")\n}\n\n", i, i)
	}
	return []byte(sb.String())
}

func TestGoLargeFile(t *testing.T) {
	src := generatedSource(800)
	require.Greater(t, strings.Count(string(src), "\n"), 4000)

	c := &collector{}
	start := time.Now()
	doc, err := Go(context.Background(), src, &theme.Dark, c.linker)
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Less(t, elapsed, 10*time.Second)
	assert.Equal(t, string(src), doc.Text())
	require.Len(t, c.links, 801)
	assert.Equal(t, "import:fmt", targets(c.links[:1])[0])
	assert.Equal(t, "url:https://example.com/fn799", targets(c.links[800:])[0])
	assert.Len(t, doc.Actions(), 801)

	kw := theme.Dark.Attributes("keyword")
	last := strings.LastIndex(doc.Text(), "func fn799")
	assert.Equal(t, kw[style.KeyForeground], doc.StyleAt(len([]rune(doc.Text()[:last])))[style.KeyForeground])
}

func BenchmarkGo(b *testing.B) {
	src := generatedSource(800)
	for i := 0; i < b.N; i++ {
		if _, err := Go(context.Background(), src, &theme.Dark, nil); err != nil {
			b.Fatal(err)
		}
	}
}
