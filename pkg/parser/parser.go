// Package parser implements the CommonMark block and inline parsers that
// turn Markdown text into an mdast document tree.
//
// Parsing runs in two phases. The block phase consumes input one line at a
// time and builds the container structure, leaving paragraphs and headers
// with raw text. The inline phase then walks the finished tree and replaces
// that raw text with inline children, resolving links against the reference
// definitions collected during the block phase.
package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// Options configures parsing behavior.
type Options struct {
	// Smart enables typographic punctuation: curly quotes, dashes and ellipses.
	Smart bool
}

// Timings records how long each parsing phase took.
type Timings struct {
	Lines  int
	Block  time.Duration
	Inline time.Duration
}

// Parser converts Markdown lines into a document tree.
// A Parser holds per-document state and must not be used concurrently.
type Parser struct {
	opts Options

	doc                  *mdast.Node
	tip                  *mdast.Node
	oldtip               *mdast.Node
	lastMatchedContainer *mdast.Node
	refmap               *ReferenceMap

	currentLine        string
	lineNumber         int
	offset             int
	column             int
	nextNonspace       int
	nextNonspaceColumn int
	indent             int
	indented           bool
	blank              bool
	allClosed          bool
	lastLineLength     int

	inline  *inlineParser
	timings Timings
}

// New creates a parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse consumes lines, which must not carry line terminators, and returns
// the finished document. Every input produces a document; there is no
// parse error. Calling Parse again starts a new document.
func (p *Parser) Parse(ctx context.Context, lines iter.Seq[string]) *mdast.Node {
	p.reset()

	start := time.Now()
	for line := range lines {
		if p.lineNumber%1024 == 0 && ctx.Err() != nil {
			break
		}
		p.incorporateLine(line)
	}
	for p.tip != nil {
		p.finalize(p.tip, p.lineNumber)
	}
	p.timings.Lines = p.lineNumber
	p.timings.Block = time.Since(start)

	start = time.Now()
	p.processInlines(p.doc)
	p.timings.Inline = time.Since(start)

	return p.doc
}

// References returns the link reference definitions collected by the last Parse.
func (p *Parser) References() *ReferenceMap {
	return p.refmap
}

// Timings returns phase durations for the last Parse.
func (p *Parser) Timings() Timings {
	return p.timings
}

func (p *Parser) reset() {
	p.doc = mdast.NewDocument()
	p.doc.Open = true
	p.tip = p.doc
	p.oldtip = p.doc
	p.lastMatchedContainer = p.doc
	p.refmap = NewReferenceMap()
	p.currentLine = ""
	p.lineNumber = 0
	p.offset = 0
	p.column = 0
	p.lastLineLength = 0
	p.allClosed = true
	p.inline = newInlineParser(p.opts, p.refmap)
	p.timings = Timings{}
}

// processInlines parses the raw content of every paragraph and header.
func (p *Parser) processInlines(root *mdast.Node) {
	for node, entering := range mdast.Events(root) {
		if !entering && (node.Kind == mdast.NodeParagraph || node.Kind == mdast.NodeHeader) {
			p.inline.parse(node)
		}
	}
}

// Parse reads Markdown from r and returns the document tree. The only
// errors come from reading r or from ctx being cancelled.
func Parse(ctx context.Context, r io.Reader, opts Options) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	var readErr error
	doc := New(opts).Parse(ctx, Lines(r, &readErr))
	if readErr != nil {
		return nil, fmt.Errorf("read input: %w", readErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return doc, nil
}

// ParseString parses a Markdown string.
func ParseString(ctx context.Context, source string, opts Options) *mdast.Node {
	return New(opts).Parse(ctx, SplitLines(source))
}

// SplitLines returns the lines of s, split on LF, CR or CRLF. A trailing
// line terminator does not produce an extra empty line.
func SplitLines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(s) > 0 {
			i := strings.IndexAny(s, "\r\n")
			if i < 0 {
				yield(s)
				return
			}
			next := i + 1
			if s[i] == '\r' && next < len(s) && s[next] == '\n' {
				next++
			}
			if !yield(s[:i]) {
				return
			}
			s = s[next:]
		}
	}
}

// Lines returns the lines read from r. Reading stops at the first error,
// which is stored in *errp.
func Lines(r io.Reader, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		scanner.Split(scanLines)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
		if errp != nil {
			*errp = scanner.Err()
		}
	}
}

// scanLines is bufio.ScanLines extended to accept bare CR terminators.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A CR at the end of the buffer may be the first half of CRLF.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
