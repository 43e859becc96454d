package parser

import (
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

const codeIndent = 4

// incorporateLine analyzes one line of input and updates the document.
func (p *Parser) incorporateLine(line string) {
	container := p.doc
	p.oldtip = p.tip
	p.offset = 0
	p.column = 0
	p.lineNumber++

	if strings.IndexByte(line, 0) >= 0 {
		line = strings.ReplaceAll(line, "\x00", "�")
	}
	p.currentLine = line

	// Descend through open containers; container ends at the last one that
	// matched this line.
	for {
		last := container.LastChild
		if last == nil || !last.Open {
			break
		}
		container = last

		p.findNextNonspace()
		result := p.continueBlock(container)
		if result == continueDone {
			p.lastLineLength = columnWidth(line)
			return
		}
		if result == continueFailed {
			container = container.Parent
			break
		}
	}

	p.allClosed = container == p.oldtip
	p.lastMatchedContainer = container

	// A second blank line ends every enclosing list.
	if p.blank && container.LastLineBlank {
		p.breakOutOfLists(container)
	}

	matchedLeaf := container.Kind != mdast.NodeParagraph && acceptsLines(container.Kind)

	// Unless the last matched container is a leaf that takes raw lines,
	// try to open new blocks inside it.
	for !matchedLeaf {
		p.findNextNonspace()

		if !p.indented && !maybeSpecial(line, p.nextNonspace) {
			p.advanceNextNonspace()
			break
		}

		result := startNone
		for _, start := range blockStarts {
			result = start(p, container)
			if result != startNone {
				container = p.tip
				break
			}
		}

		if result == startNone {
			p.advanceNextNonspace()
			break
		}
		if result == startLeaf {
			matchedLeaf = true
		}
	}

	// What remains at the offset is text for the appropriate container.
	if !p.allClosed && !p.blank && p.tip.Kind == mdast.NodeParagraph {
		// Lazy paragraph continuation.
		p.addLine()
	} else {
		p.closeUnmatchedBlocks()
		if p.blank && container.LastChild != nil {
			container.LastChild.LastLineBlank = true
		}

		kind := container.Kind

		// Block quote lines are never blank as they start with >. Blank lines
		// inside fenced code and an empty item's first line do not count for
		// list tightness.
		lastLineBlank := p.blank &&
			kind != mdast.NodeBlockQuote &&
			(kind != mdast.NodeCodeBlock || !container.Fenced) &&
			(kind != mdast.NodeItem || container.FirstChild != nil || container.Pos.StartLine != p.lineNumber)

		for cont := container; cont != nil; cont = cont.Parent {
			cont.LastLineBlank = lastLineBlank
		}

		switch {
		case acceptsLines(kind):
			p.addLine()
			if kind == mdast.NodeHTMLBlock && htmlBlockClosedBy(container.HTMLBlockType, line[p.offset:]) {
				p.lastLineLength = columnWidth(line)
				p.finalize(container, p.lineNumber)
			}
		case p.offset < len(line) && !p.blank:
			p.addChild(mdast.NodeParagraph, p.column)
			p.advanceNextNonspace()
			p.addLine()
		}
	}

	p.lastLineLength = columnWidth(line)
}

// finalize closes block, runs its kind-specific post-processing and makes
// its parent the tip.
func (p *Parser) finalize(block *mdast.Node, lineNumber int) {
	above := block.Parent
	block.Open = false
	block.Pos.EndLine = lineNumber
	block.Pos.EndColumn = p.lastLineLength

	p.finalizeBlock(block)

	p.tip = above
}

// closeUnmatchedBlocks finalizes every block between the old tip and the
// last container that matched the current line.
func (p *Parser) closeUnmatchedBlocks() {
	if p.allClosed {
		return
	}
	for p.oldtip != p.lastMatchedContainer && p.oldtip != nil {
		parent := p.oldtip.Parent
		p.finalize(p.oldtip, p.lineNumber-1)
		p.oldtip = parent
	}
	p.allClosed = true
}

// breakOutOfLists finalizes block and its ancestors up to and including
// the outermost list containing it.
func (p *Parser) breakOutOfLists(block *mdast.Node) {
	var lastList *mdast.Node
	for b := block; b != nil; b = b.Parent {
		if b.Kind == mdast.NodeList {
			lastList = b
		}
	}
	if lastList == nil {
		return
	}

	for block != lastList {
		p.finalize(block, p.lineNumber)
		block = block.Parent
	}
	p.finalize(lastList, p.lineNumber)
	p.tip = lastList.Parent
}

// addLine appends the rest of the current line to the tip.
func (p *Parser) addLine() {
	p.tip.AppendContent(p.currentLine[p.offset:], "\n")
}

// addChild adds a block of the given kind as a child of the tip, closing
// blocks that cannot contain it. column is the zero-based column where the
// block starts.
func (p *Parser) addChild(kind mdast.NodeKind, column int) *mdast.Node {
	for !canContain(p.tip.Kind, kind) {
		p.finalize(p.tip, p.lineNumber-1)
	}

	block := mdast.NewNode(kind, mdast.SourcePos{
		StartLine:   p.lineNumber,
		StartColumn: column + 1,
	})
	block.Open = true
	mdast.AppendChild(p.tip, block)
	p.tip = block
	return block
}

// advanceOffset moves the offset forward by count bytes, or by count
// columns when columns is set. Tabs advance to the next multiple of four.
func (p *Parser) advanceOffset(count int, columns bool) {
	line := p.currentLine
	for count > 0 && p.offset < len(line) {
		width := 1
		if line[p.offset] == '\t' {
			width = 4 - p.column%4
		}
		if columns {
			count -= width
		} else {
			count--
		}
		p.offset++
		p.column += width
	}
	// Counting past the end of the line still moves the column, so that
	// padding computed for an empty list item stays correct.
	if count > 0 && !columns {
		p.offset += count
		p.column += count
	}
	if p.offset > len(line) {
		p.offset = len(line)
	}
}

func (p *Parser) advanceNextNonspace() {
	p.offset = p.nextNonspace
	p.column = p.nextNonspaceColumn
}

// findNextNonspace locates the first non-space character at or after the
// offset and computes the indentation before it.
func (p *Parser) findNextNonspace() {
	line := p.currentLine
	i := p.offset
	cols := p.column

	for i < len(line) {
		c := line[i]
		if c == ' ' {
			i++
			cols++
		} else if c == '\t' {
			i++
			cols += 4 - cols%4
		} else {
			break
		}
	}

	p.blank = i >= len(line) || line[i] == '\n' || line[i] == '\r'
	p.nextNonspace = i
	p.nextNonspaceColumn = cols
	p.indent = cols - p.column
	p.indented = p.indent >= codeIndent
}

// peek returns the byte at pos, or 0 past the end of s.
func peek(s string, pos int) byte {
	if pos < len(s) {
		return s[pos]
	}
	return 0
}

// maybeSpecial reports whether the character at pos could start a block.
func maybeSpecial(line string, pos int) bool {
	if pos >= len(line) {
		return false
	}
	switch c := line[pos]; c {
	case '#', '`', '~', '*', '+', '_', '=', '<', '>', '-':
		return true
	default:
		return c >= '0' && c <= '9'
	}
}

// columnWidth returns the tab-expanded width of line.
func columnWidth(line string) int {
	if strings.IndexByte(line, '\t') < 0 {
		return len(line)
	}
	cols := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			cols += 4 - cols%4
		} else {
			cols++
		}
	}
	return cols
}

// isBlank reports whether s contains only spaces, tabs and line breaks.
func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}
