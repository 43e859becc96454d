// Package render turns mdast document trees into HTML or CommonMark XML.
package render

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

// bufWriterSize is the buffer size for rendered output (64 KiB).
const bufWriterSize = 64 * 1024

// Compile-time interface checks.
var (
	_ Renderer = (*HTMLRenderer)(nil)
	_ Renderer = (*XMLRenderer)(nil)
)

// Renderer writes a document tree in some output format.
type Renderer interface {
	// Render writes root and its descendants to w.
	Render(w io.Writer, root *mdast.Node) error
}

// New returns the renderer for opts.Format.
func New(opts Options) (Renderer, error) {
	format := opts.Format
	if format == "" {
		format = FormatHTML
	}

	switch format {
	case FormatHTML:
		return NewHTMLRenderer(opts), nil
	case FormatXML:
		return NewXMLRenderer(opts), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// ToString renders root with r and returns the output.
func ToString(r Renderer, root *mdast.Node) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// attr is one attribute of an output tag, kept in insertion order.
type attr struct {
	name  string
	value string
}

var reTag = regexp.MustCompile(`<[^>]*>`)

// output accumulates rendered text and tracks whether the last thing
// written was a newline. The first write error sticks and later writes are
// dropped.
type output struct {
	w   *bufio.Writer
	err error

	lastNewline bool

	// disableTags is non-zero while rendering image alt text, where markup
	// is stripped from everything written.
	disableTags int

	// indent is written after each newline emitted by cr.
	indent      string
	indentLevel int
}

func newOutput(w io.Writer) *output {
	return &output{
		w:           bufio.NewWriterSize(w, bufWriterSize),
		lastNewline: true,
	}
}

func (o *output) raw(s string) {
	if o.err != nil {
		return
	}
	_, o.err = o.w.WriteString(s)
}

// out writes s, stripping tags while disableTags is set.
func (o *output) out(s string) {
	if o.disableTags > 0 {
		o.raw(reTag.ReplaceAllLiteralString(s, ""))
	} else {
		o.raw(s)
	}
	o.lastNewline = s == "\n"
}

// cr starts a new line unless the output already ends with one.
func (o *output) cr() {
	if o.lastNewline {
		return
	}
	o.raw("\n")
	for range o.indentLevel {
		o.raw(o.indent)
	}
	o.lastNewline = true
}

// flush writes buffered output and returns the first error seen.
func (o *output) flush() error {
	if o.err == nil {
		o.err = o.w.Flush()
	}
	if o.err != nil {
		return fmt.Errorf("write output: %w", o.err)
	}
	return nil
}

// tag formats an opening, closing or self-closing tag. Attribute values
// must already be escaped.
func tag(name string, attrs []attr, selfClosing bool) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString(`="`)
		sb.WriteString(a.value)
		sb.WriteByte('"')
	}
	if selfClosing {
		sb.WriteString(" /")
	}
	sb.WriteByte('>')
	return sb.String()
}

// escape escapes s for text content.
func escape(s string) string {
	return textutil.EscapeXML(s, false)
}

// escapeAttr escapes s for an attribute value, leaving entities intact.
func escapeAttr(s string) string {
	return textutil.EscapeXML(s, true)
}
