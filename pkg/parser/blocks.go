package parser

import (
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

// continueResult is the outcome of matching an open block against a line.
type continueResult uint8

const (
	// continueMatched means the block continues; keep descending.
	continueMatched continueResult = iota

	// continueFailed means the line does not belong to the block.
	continueFailed

	// continueDone means the block consumed the whole line.
	continueDone
)

// canContain reports whether a block of kind parent may hold a child block of kind child.
func canContain(parent, child mdast.NodeKind) bool {
	switch parent {
	case mdast.NodeDocument, mdast.NodeBlockQuote, mdast.NodeItem:
		return child != mdast.NodeItem
	case mdast.NodeList:
		return child == mdast.NodeItem
	default:
		return false
	}
}

// acceptsLines reports whether blocks of kind take raw text lines.
func acceptsLines(kind mdast.NodeKind) bool {
	switch kind {
	case mdast.NodeParagraph, mdast.NodeCodeBlock, mdast.NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// continueBlock checks whether the current line continues the open block
// container, consuming the block's line prefix when it does.
func (p *Parser) continueBlock(container *mdast.Node) continueResult {
	line := p.currentLine

	switch container.Kind {
	case mdast.NodeDocument, mdast.NodeList:
		return continueMatched

	case mdast.NodeBlockQuote:
		if p.indented || peek(line, p.nextNonspace) != '>' {
			return continueFailed
		}
		p.advanceNextNonspace()
		p.advanceOffset(1, false)
		if peek(line, p.offset) == ' ' {
			p.offset++
			p.column++
		}
		return continueMatched

	case mdast.NodeItem:
		data := container.List
		switch {
		case p.blank:
			p.advanceNextNonspace()
		case p.indent >= data.MarkerOffset+data.Padding:
			p.advanceOffset(data.MarkerOffset+data.Padding, true)
		default:
			return continueFailed
		}
		return continueMatched

	case mdast.NodeHeader, mdast.NodeHorizontalRule:
		// These never span more than one line.
		return continueFailed

	case mdast.NodeCodeBlock:
		if container.Fenced {
			if p.indent <= 3 && peek(line, p.nextNonspace) == container.FenceChar &&
				closingFenceLength(line[p.nextNonspace:], container.FenceChar) >= container.FenceLength {
				p.lastLineLength = columnWidth(line)
				p.finalize(container, p.lineNumber)
				return continueDone
			}
			// Skip optional spaces of the fence offset.
			for i := container.FenceOffset; i > 0 && peek(line, p.offset) == ' '; i-- {
				p.advanceOffset(1, false)
			}
			return continueMatched
		}
		switch {
		case p.indent >= codeIndent:
			p.advanceOffset(codeIndent, true)
		case p.blank:
			p.advanceNextNonspace()
		default:
			return continueFailed
		}
		return continueMatched

	case mdast.NodeHTMLBlock:
		if p.blank && (container.HTMLBlockType == 6 || container.HTMLBlockType == 7) {
			return continueFailed
		}
		return continueMatched

	case mdast.NodeParagraph:
		if p.blank {
			return continueFailed
		}
		return continueMatched

	default:
		return continueFailed
	}
}

// finalizeBlock runs the kind-specific post-processing of a closed block.
func (p *Parser) finalizeBlock(block *mdast.Node) {
	switch block.Kind {
	case mdast.NodeList:
		block.List.Tight = listIsTight(block)

	case mdast.NodeCodeBlock:
		content := block.Content()
		if block.Fenced {
			// The first line is the info string.
			firstLine, rest, _ := strings.Cut(content, "\n")
			block.Info = textutil.UnescapeString(trimControl(firstLine))
			block.Literal = rest
		} else {
			block.Literal = trimTrailingBlankLines(content, "\n")
		}
		block.ClearContent()

	case mdast.NodeHTMLBlock:
		block.Literal = trimTrailingBlankLines(block.Content(), "")
		block.ClearContent()

	case mdast.NodeParagraph:
		content := block.Content()
		hasReferenceDefs := false
		for strings.HasPrefix(content, "[") {
			pos := p.inline.parseReference(content)
			if pos == 0 {
				break
			}
			content = content[pos:]
			hasReferenceDefs = true
		}
		if hasReferenceDefs {
			block.SetContent(content)
			if isBlank(content) {
				mdast.Unlink(block)
			}
		}
	}
}

// listIsTight reports whether no item, and no block inside an item, is
// followed by a blank line before a later sibling.
func listIsTight(list *mdast.Node) bool {
	for item := list.FirstChild; item != nil; item = item.Next {
		if endsWithBlankLine(item) && item.Next != nil {
			return false
		}
		for sub := item.FirstChild; sub != nil; sub = sub.Next {
			if endsWithBlankLine(sub) && (item.Next != nil || sub.Next != nil) {
				return false
			}
		}
	}
	return true
}

// endsWithBlankLine reports whether block ends with a blank line,
// descending into the last children of lists and items.
func endsWithBlankLine(block *mdast.Node) bool {
	for block != nil {
		if block.LastLineBlank {
			return true
		}
		if block.Kind != mdast.NodeList && block.Kind != mdast.NodeItem {
			return false
		}
		block = block.LastChild
	}
	return false
}

// trimTrailingBlankLines replaces a trailing run of lines containing only
// spaces, starting at the last newline before them, with repl.
func trimTrailingBlankLines(s, repl string) string {
	end := len(s)
	cut := -1
	for i := end - 1; i >= 0; i-- {
		switch s[i] {
		case ' ':
			continue
		case '\n':
			cut = i
			continue
		}
		break
	}
	if cut < 0 {
		return s
	}
	return s[:cut] + repl
}

// trimControl strips leading and trailing spaces and control characters.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
