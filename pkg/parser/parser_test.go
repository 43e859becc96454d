package parser_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"no terminator", "a", []string{"a"}},
		{"trailing newline", "a\n", []string{"a"}},
		{"blank line kept", "a\n\nb", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"cr then lf pair", "a\r\r\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slices.Collect(parser.SplitLines(tt.input)))
		})
	}
}

func TestLines_MatchesSplitLines(t *testing.T) {
	t.Parallel()

	input := "one\r\ntwo\rthree\n\nfour"

	var readErr error
	// One byte at a time exercises a CR split from its LF across reads.
	got := slices.Collect(parser.Lines(iotest.OneByteReader(strings.NewReader(input)), &readErr))

	require.NoError(t, readErr)
	assert.Equal(t, slices.Collect(parser.SplitLines(input)), got)
}

func TestParse_Reader(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse(context.Background(), strings.NewReader("# Hi\n\ntext\n"), parser.Options{})

	require.NoError(t, err)
	assert.Equal(t, `document(h1("Hi") paragraph("text"))`, dump(doc))
}

func TestParse_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := parser.Parse(context.Background(), iotest.ErrReader(boom), parser.Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, strings.NewReader("text"), parser.Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_ReuseStartsFreshDocument(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.Options{})
	ctx := context.Background()

	first := p.Parse(ctx, parser.SplitLines("[a]: /x\n\n[a]"))
	assert.Equal(t, `document(paragraph(link</x|>("a")))`, dump(first))
	assert.Equal(t, 1, p.References().Len())

	second := p.Parse(ctx, parser.SplitLines("[a]"))
	assert.Equal(t, `document(paragraph("[" "a" "]"))`, dump(second))
	assert.Equal(t, 0, p.References().Len())
	assert.NotSame(t, first, second)
}

func TestParser_References(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.Options{})
	p.Parse(context.Background(), parser.SplitLines("[Foo]: /f \"F\"\n[bar]: </b>\n"))

	refs := p.References()
	assert.Equal(t, []string{"bar", "foo"}, refs.Labels())

	ref, ok := refs.Lookup("FOO")
	require.True(t, ok)
	assert.Equal(t, parser.Reference{Destination: "/f", Title: "F"}, ref)

	_, ok = refs.Lookup("baz")
	assert.False(t, ok)
}

func TestParser_Timings(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.Options{})
	p.Parse(context.Background(), parser.SplitLines("a\nb\nc\n"))

	timings := p.Timings()
	assert.Equal(t, 3, timings.Lines)
	assert.GreaterOrEqual(t, int64(timings.Block), int64(0))
	assert.GreaterOrEqual(t, int64(timings.Inline), int64(0))
}

func TestReferenceMap_FirstDefinitionWins(t *testing.T) {
	t.Parallel()

	refs := parser.NewReferenceMap()

	assert.True(t, refs.Define("[A  b]", "/one", ""))
	assert.False(t, refs.Define("[a B]", "/two", "t"))
	assert.False(t, refs.Define("[ ]", "/three", ""))

	ref, ok := refs.Lookup("[a b]")
	require.True(t, ok)
	assert.Equal(t, "/one", ref.Destination)
	assert.Equal(t, 1, refs.Len())
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Heading\n\nParagraph with *emphasis* and **strong**.",
		"- a\n- b\n\n  c\n",
		"1. one\n2) two\n",
		"> quote\nlazy\n",
		"```go\ncode\n",
		"    indented\n\ttab\n",
		"<div>\n*x*\n\n</div>",
		"[a]: /u 'title'\n\n[a] ![b](c) <http://x.y>",
		"***a** b* _c_d_ `e``",
		"a  \nb\\\nc",
		"\"smart\" -- 'quotes'...",
		"\x00\r\n\t>\t-\t",
	}
	for _, seed := range seeds {
		f.Add(seed, false)
		f.Add(seed, true)
	}

	f.Fuzz(func(t *testing.T, source string, smart bool) {
		doc := parser.ParseString(context.Background(), source, parser.Options{Smart: smart})
		require.NotNil(t, doc)

		depth := 0
		for node, entering := range mdast.Events(doc) {
			if entering && node.IsContainer() {
				depth++
			} else if !entering {
				depth--
			}
			if node.Open {
				t.Fatalf("%s left open", node.Kind)
			}
			for child := node.FirstChild; child != nil; child = child.Next {
				if child.Parent != node {
					t.Fatalf("%s child %s has wrong parent", node.Kind, child.Kind)
				}
			}
		}
		if depth != 0 {
			t.Fatalf("unbalanced walk, depth %d", depth)
		}
	})
}
