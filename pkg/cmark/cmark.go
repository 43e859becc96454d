// Package cmark converts CommonMark documents to HTML or XML in one call.
// It pairs the parser with a renderer and reports how long each phase took.
package cmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yaklabco/gocmark/pkg/fsutil"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
	"github.com/yaklabco/gocmark/pkg/render"
)

// Options configures a Converter.
type Options struct {
	// Format selects HTML or XML output. Empty means HTML.
	Format render.Format

	// Smart enables typographic punctuation.
	Smart bool

	// Safe suppresses raw HTML and unsafe link schemes.
	Safe bool

	// Sourcepos annotates output with source positions.
	Sourcepos bool

	// Softbreak is the HTML emitted for soft line breaks.
	Softbreak string

	// DetectLanguage labels unlabeled fenced code blocks.
	DetectLanguage bool
}

// DefaultOptions returns options for plain HTML output.
func DefaultOptions() Options {
	return Options{
		Format:    render.FormatHTML,
		Softbreak: render.DefaultSoftbreak,
	}
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{Smart: o.Smart}
}

func (o Options) renderOptions() render.Options {
	return render.Options{
		Format:         o.Format,
		Safe:           o.Safe,
		Sourcepos:      o.Sourcepos,
		Softbreak:      o.Softbreak,
		DetectLanguage: o.DetectLanguage,
	}
}

// Timings breaks down where a conversion spent its time.
type Timings struct {
	// Lines is the number of input lines.
	Lines int

	Block  time.Duration
	Inline time.Duration
	Render time.Duration
}

// Total returns the sum of all phases.
func (t Timings) Total() time.Duration {
	return t.Block + t.Inline + t.Render
}

// FileResult describes one ConvertFile call.
type FileResult struct {
	Timings Timings

	// BytesIn and BytesOut are the source and rendered sizes.
	BytesIn  int
	BytesOut int

	// Written is false when the destination already held identical output.
	Written bool
}

// Converter parses and renders documents. It holds no per-document state
// and is safe for concurrent use.
type Converter struct {
	opts     Options
	renderer render.Renderer
}

// New creates a Converter. It fails only for an unknown format.
func New(opts Options) (*Converter, error) {
	r, err := render.New(opts.renderOptions())
	if err != nil {
		return nil, fmt.Errorf("create converter: %w", err)
	}
	return &Converter{opts: opts, renderer: r}, nil
}

// Options returns the options the converter was created with.
func (c *Converter) Options() Options {
	return c.opts
}

// Parse reads r into a document tree without rendering it.
func (c *Converter) Parse(ctx context.Context, r io.Reader) (*mdast.Node, Timings, error) {
	if err := ctx.Err(); err != nil {
		return nil, Timings{}, fmt.Errorf("parse cancelled: %w", err)
	}

	var readErr error
	p := parser.New(c.opts.parserOptions())
	doc := p.Parse(ctx, parser.Lines(r, &readErr))
	if readErr != nil {
		return nil, Timings{}, fmt.Errorf("read input: %w", readErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, Timings{}, fmt.Errorf("parse cancelled: %w", err)
	}

	pt := p.Timings()
	return doc, Timings{Lines: pt.Lines, Block: pt.Block, Inline: pt.Inline}, nil
}

// Render writes doc to w in the configured format.
func (c *Converter) Render(w io.Writer, doc *mdast.Node) error {
	return c.renderer.Render(w, doc)
}

// Convert reads Markdown from r and writes the rendered document to w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (Timings, error) {
	doc, timings, err := c.Parse(ctx, r)
	if err != nil {
		return timings, err
	}

	start := time.Now()
	if err := c.renderer.Render(w, doc); err != nil {
		return timings, fmt.Errorf("render: %w", err)
	}
	timings.Render = time.Since(start)

	return timings, nil
}

// ConvertString converts a Markdown string.
func (c *Converter) ConvertString(ctx context.Context, source string) (string, error) {
	var sb strings.Builder
	if _, err := c.Convert(ctx, strings.NewReader(source), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ConvertFile converts the file at src and writes the result to dst
// atomically, keeping dst untouched when its content would not change.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (FileResult, error) {
	result, out, err := c.renderFile(ctx, src)
	if err != nil {
		return result, err
	}

	result.Written, err = fsutil.WriteAtomicIfChanged(ctx, dst, out, 0)
	if err != nil {
		return result, fmt.Errorf("write %s: %w", dst, err)
	}

	return result, nil
}

// PreviewFile converts src like ConvertFile but writes nothing. Written
// reports whether ConvertFile would have written dst.
func (c *Converter) PreviewFile(ctx context.Context, src, dst string) (FileResult, error) {
	result, out, err := c.renderFile(ctx, src)
	if err != nil {
		return result, err
	}

	same, err := fsutil.HasContent(dst, out)
	if err != nil {
		return result, fmt.Errorf("compare %s: %w", dst, err)
	}
	result.Written = !same

	return result, nil
}

func (c *Converter) renderFile(ctx context.Context, src string) (FileResult, []byte, error) {
	content, _, err := fsutil.ReadFile(ctx, src)
	if err != nil {
		return FileResult{}, nil, err
	}

	var out bytes.Buffer
	timings, err := c.Convert(ctx, bytes.NewReader(content), &out)
	if err != nil {
		return FileResult{}, nil, fmt.Errorf("convert %s: %w", src, err)
	}

	return FileResult{
		Timings:  timings,
		BytesIn:  len(content),
		BytesOut: out.Len(),
	}, out.Bytes(), nil
}

// Convert is a shortcut for converting a string with the given options.
func Convert(ctx context.Context, source string, opts Options) (string, error) {
	c, err := New(opts)
	if err != nil {
		return "", err
	}
	return c.ConvertString(ctx, source)
}
