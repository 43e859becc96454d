package render_test

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gocmark/pkg/parser"
	"github.com/yaklabco/gocmark/pkg/render"
)

var errWrite = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

// corpusJSON is the CommonMark 0.31.2 example set. The parser follows the
// 0.22 rules, so examples whose expected output changed after 0.22 are
// listed in corpusSkips.
//
//go:embed testdata/commonmark-0.31.2.json
var corpusJSON []byte

// corpusSkips maps example numbers to the rule change that separates the
// 0.22 output from the 0.31.2 expectation.
var corpusSkips = map[int]string{
	5:   "tabs: partial tab expansion inside list items",
	6:   "tabs: partial tab expansion after block quote marker",
	7:   "tabs: partial tab expansion after list marker",
	9:   "tabs: partial tab expansion in nested list indent",
	10:  "tabs: tab after ATX marker",
	11:  "tabs: thematic break separated by tabs",
	28:  "entities: numeric references limited to 7 digits",
	81:  "setext headings: multi-line heading content",
	82:  "setext headings: multi-line heading content",
	95:  "setext headings: multi-line heading content",
	138: "fenced code: backtick fence with backticks in info string",
	146: "fenced code: tilde fence info may contain tildes",
	148: "HTML blocks: revised start conditions",
	171: "HTML blocks: textarea starts a type 1 block",
	200: "reference definitions: empty pointy destination",
	201: "reference definitions: title must be separated by whitespace",
	215: "reference definitions: setext underline after definition",
	216: "reference definitions: setext underline after definition",
	238: "block quotes: lazy continuation of indented list marker",
	262: "lists: two blank lines no longer end a list",
	264: "lists: two blank lines no longer end a list",
	280: "list items: item may begin with at most one blank line",
	285: "list items: empty item cannot interrupt a paragraph",
	304: "lists: only 1 may start an ordered list interrupting a paragraph",
	306: "lists: two blank lines no longer end a list",
	307: "lists: two blank lines no longer end a list",
	312: "lists: marker indented four spaces continues the item",
	313: "lists: marker indented four spaces continues the item",
	331: "code spans: single leading and trailing space stripped",
	332: "code spans: single leading and trailing space stripped",
	333: "code spans: single leading and trailing space stripped",
	334: "code spans: single leading and trailing space stripped",
	335: "code spans: line endings become spaces without collapsing",
	336: "code spans: line endings become spaces without collapsing",
	337: "code spans: interior whitespace is not collapsed",
	354: "emphasis: Unicode symbols count as punctuation",
	367: "emphasis: closing delimiter before line ending",
	411: "emphasis: multiple of 3 rule",
	412: "emphasis: multiple of 3 rule",
	415: "emphasis: multiple of 3 rule",
	416: "emphasis: multiple of 3 rule",
	417: "emphasis: multiple of 3 rule",
	429: "emphasis: multiple of 3 rule",
	467: "emphasis: strong nests inside emphasis",
	468: "emphasis: strong nests inside emphasis",
	493: "links: escaped bracket in pointy destination",
	494: "links: unbalanced pointy destination",
	496: "links: nested balanced parentheses in destination",
	542: "links: no whitespace between link text and label",
	543: "links: no whitespace between link text and label",
	556: "links: no whitespace between link text and label",
	568: "links: failed inline link falls back to shortcut reference",
	587: "images: no whitespace between image text and label",
	598: "autolinks: any scheme is accepted",
	599: "autolinks: any scheme is accepted",
	601: "autolinks: any scheme is accepted",
	625: "raw HTML: revised comment syntax",
	626: "raw HTML: revised comment syntax",
	640: "hard line breaks: code span line ending handling",
}

type corpusExample struct {
	Example  int    `json:"example"`
	Section  string `json:"section"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    render.Format
		wantErr bool
	}{
		{"html", render.FormatHTML, false},
		{"xml", render.FormatXML, false},
		{"", render.FormatHTML, false},
		{"latex", "", true},
		{"HTML", "", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			t.Parallel()

			got, err := render.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, render.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestFormat_Extension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".html", render.FormatHTML.Extension())
	assert.Equal(t, ".xml", render.FormatXML.Extension())
	assert.False(t, render.Format("pdf").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	r, err := render.New(render.Options{})
	require.NoError(t, err)
	assert.IsType(t, &render.HTMLRenderer{}, r)

	r, err = render.New(render.Options{Format: render.FormatXML})
	require.NoError(t, err)
	assert.IsType(t, &render.XMLRenderer{}, r)

	_, err = render.New(render.Options{Format: "pdf"})
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestXMLRenderer_WriteError(t *testing.T) {
	t.Parallel()

	doc := parser.ParseString(context.Background(), "text", parser.Options{})
	err := render.NewXMLRenderer(render.Options{}).Render(failingWriter{}, doc)
	assert.ErrorIs(t, err, errWrite)
}

func TestHTMLRenderer_Corpus(t *testing.T) {
	t.Parallel()

	var examples []corpusExample
	require.NoError(t, json.Unmarshal(corpusJSON, &examples))
	require.Len(t, examples, 652)

	known := make(map[int]bool, len(examples))
	for _, ex := range examples {
		known[ex.Example] = true
	}
	for n := range corpusSkips {
		require.True(t, known[n], "skip entry %d is not in the corpus", n)
	}

	for _, ex := range examples {
		t.Run(fmt.Sprintf("%s/%d", ex.Section, ex.Example), func(t *testing.T) {
			t.Parallel()

			if reason, ok := corpusSkips[ex.Example]; ok {
				t.Skipf("example %d: %s", ex.Example, reason)
			}

			got := renderString(t, ex.Markdown, render.DefaultOptions())
			if diff := cmp.Diff(ex.HTML, got); diff != "" {
				t.Errorf("example %d mismatch (-want +got):\n%s\ninput: %q", ex.Example, diff, ex.Markdown)
			}
		})
	}
}

// TestHTMLRenderer_AgreesWithGoldmark compares output for constructs whose
// rendering has not changed between CommonMark revisions.
func TestHTMLRenderer_AgreesWithGoldmark(t *testing.T) {
	t.Parallel()

	oracle := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithXHTML(), gmhtml.WithUnsafe()))

	sources := []string{
		"Hello *world*",
		"# T\n\ntext",
		"a\n---",
		"- a\n- b",
		"- a\n\n- b",
		"- a\n  - b",
		"3. a\n4. b",
		"> a\n> b",
		"***",
		"a  \nb",
		"```go\nx := 1\n```",
		"    indented",
		"[a](/u \"t\")",
		"`code`",
		"**strong** and _emph_",
		"<http://example.com>",
	}

	for _, src := range sources {
		t.Run(fmt.Sprintf("%q", src), func(t *testing.T) {
			t.Parallel()

			var want bytes.Buffer
			require.NoError(t, oracle.Convert([]byte(src), &want))

			got := renderString(t, src, render.DefaultOptions())
			if diff := cmp.Diff(want.String(), got); diff != "" {
				t.Errorf("goldmark disagrees (-goldmark +gocmark):\n%s", diff)
			}
		})
	}
}
