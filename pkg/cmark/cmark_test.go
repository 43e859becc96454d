package cmark_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/cmark"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/render"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		opts   func(*cmark.Options)
		want   string
	}{
		{
			name:   "html",
			source: "# Hi\n\n*there*",
			want:   "<h1>Hi</h1>\n<p><em>there</em></p>\n",
		},
		{
			name:   "smart punctuation",
			source: "\"quoted\" -- done...",
			opts:   func(o *cmark.Options) { o.Smart = true },
			want:   "<p>“quoted” – done…</p>\n",
		},
		{
			name:   "safe",
			source: "<b>x</b>",
			opts:   func(o *cmark.Options) { o.Safe = true },
			want:   "<p><!-- raw HTML omitted -->x<!-- raw HTML omitted --></p>\n",
		},
		{
			name:   "xml",
			source: "x",
			opts:   func(o *cmark.Options) { o.Format = render.FormatXML },
			want: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
				"<!DOCTYPE CommonMark SYSTEM \"CommonMark.dtd\">\n" +
				"<document>\n  <paragraph>\n    <text>x</text>\n  </paragraph>\n</document>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := cmark.DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			got, err := cmark.Convert(context.Background(), tt.source, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := cmark.New(cmark.Options{Format: "rtf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestConverter_Timings(t *testing.T) {
	t.Parallel()

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	var out strings.Builder
	timings, err := c.Convert(context.Background(), strings.NewReader("a\nb\n\nc\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, 4, timings.Lines)
	assert.Equal(t, timings.Block+timings.Inline+timings.Render, timings.Total())
}

func TestConverter_Parse(t *testing.T) {
	t.Parallel()

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	doc, _, err := c.Parse(context.Background(), strings.NewReader("> quote"))
	require.NoError(t, err)
	require.NotNil(t, doc.FirstChild)
	assert.Equal(t, mdast.NodeBlockQuote, doc.FirstChild.Kind)

	var out strings.Builder
	require.NoError(t, c.Render(&out, doc))
	assert.Equal(t, "<blockquote>\n<p>quote</p>\n</blockquote>\n", out.String())
}

func TestConverter_ReadError(t *testing.T) {
	t.Parallel()

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.Convert(context.Background(), iotest.ErrReader(boom), &strings.Builder{})
	assert.ErrorIs(t, err, boom)
}

func TestConverter_Cancelled(t *testing.T) {
	t.Parallel()

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.ConvertString(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConverter_ConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	dst := filepath.Join(dir, "out", "doc.html")
	require.NoError(t, os.WriteFile(src, []byte("# Title\n"), 0o644))

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	result, err := c.ConvertFile(context.Background(), src, dst)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, 8, result.BytesIn)
	assert.Equal(t, len("<h1>Title</h1>\n"), result.BytesOut)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", string(got))

	again, err := c.ConvertFile(context.Background(), src, dst)
	require.NoError(t, err)
	assert.False(t, again.Written, "unchanged output should not be rewritten")
}

func TestConverter_PreviewFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	dst := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(src, []byte("text\n"), 0o644))

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	preview, err := c.PreviewFile(context.Background(), src, dst)
	require.NoError(t, err)
	assert.True(t, preview.Written)
	assert.NoFileExists(t, dst)

	require.NoError(t, os.WriteFile(dst, []byte("<p>text</p>\n"), 0o644))
	preview, err = c.PreviewFile(context.Background(), src, dst)
	require.NoError(t, err)
	assert.False(t, preview.Written)
}

func TestConverter_ConvertFileMissing(t *testing.T) {
	t.Parallel()

	c, err := cmark.New(cmark.DefaultOptions())
	require.NoError(t, err)

	_, err = c.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), "out.html")
	require.Error(t, err)
}
