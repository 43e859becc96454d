package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// startResult is the outcome of a block start rule.
type startResult uint8

const (
	// startNone means the rule did not match.
	startNone startResult = iota

	// startContainer means a container block was opened; keep looking for more.
	startContainer

	// startLeaf means a leaf block was opened; no further starts apply.
	startLeaf
)

// blockStart tries to open a new block at the current position.
type blockStart func(p *Parser, container *mdast.Node) startResult

// blockStarts lists the start rules in precedence order. Earlier rules
// pre-empt later ones.
var blockStarts = []blockStart{
	startBlockQuote,
	startATXHeader,
	startFencedCode,
	startHTMLBlock,
	startSetextHeader,
	startHorizontalRule,
	startListItem,
	startIndentedCode,
}

var (
	reATXHeaderMarker  = regexp.MustCompile(`^#{1,6}(?: +|$)`)
	reSetextHeaderLine = regexp.MustCompile(`^(?:=+|-+) *$`)
	reHorizontalRule   = regexp.MustCompile(`^(?:(?:\* *){3,}|(?:_ *){3,}|(?:- *){3,}) *$`)
	reClosingHashes    = regexp.MustCompile(`^ *#+ *$`)
	reTrailingHashes   = regexp.MustCompile(` +#+ *$`)
)

func startBlockQuote(p *Parser, _ *mdast.Node) startResult {
	if p.indented || peek(p.currentLine, p.nextNonspace) != '>' {
		return startNone
	}

	p.advanceNextNonspace()
	p.advanceOffset(1, false)
	// Optional following space.
	if peek(p.currentLine, p.offset) == ' ' {
		p.advanceOffset(1, false)
	}
	p.closeUnmatchedBlocks()
	p.addChild(mdast.NodeBlockQuote, p.nextNonspaceColumn)
	return startContainer
}

func startATXHeader(p *Parser, _ *mdast.Node) startResult {
	if p.indented {
		return startNone
	}
	marker := reATXHeaderMarker.FindString(p.currentLine[p.nextNonspace:])
	if marker == "" {
		return startNone
	}

	p.advanceNextNonspace()
	p.advanceOffset(len(marker), false)
	p.closeUnmatchedBlocks()

	header := p.addChild(mdast.NodeHeader, p.nextNonspaceColumn)
	header.Level = strings.Count(marker, "#")

	// Remove the optional closing sequence of #s.
	text := p.currentLine[p.offset:]
	text = reClosingHashes.ReplaceAllLiteralString(text, "")
	text = reTrailingHashes.ReplaceAllLiteralString(text, "")
	header.SetContent(text)

	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startFencedCode(p *Parser, _ *mdast.Node) startResult {
	if p.indented {
		return startNone
	}
	fenceChar, fenceLength := openingFence(p.currentLine[p.nextNonspace:])
	if fenceLength == 0 {
		return startNone
	}

	p.closeUnmatchedBlocks()
	block := p.addChild(mdast.NodeCodeBlock, p.nextNonspaceColumn)
	block.Fenced = true
	block.FenceChar = fenceChar
	block.FenceLength = fenceLength
	block.FenceOffset = p.indent

	p.advanceNextNonspace()
	p.advanceOffset(fenceLength, false)
	return startLeaf
}

func startHTMLBlock(p *Parser, container *mdast.Node) startResult {
	if p.indented || peek(p.currentLine, p.nextNonspace) != '<' {
		return startNone
	}

	blockType := htmlBlockType(p.currentLine[p.nextNonspace:], container.Kind == mdast.NodeParagraph)
	if blockType == 0 {
		return startNone
	}

	p.closeUnmatchedBlocks()
	// The offset is not advanced: leading spaces belong to the HTML block.
	block := p.addChild(mdast.NodeHTMLBlock, p.column)
	block.HTMLBlockType = blockType
	return startLeaf
}

func startSetextHeader(p *Parser, container *mdast.Node) startResult {
	if p.indented || container.Kind != mdast.NodeParagraph {
		return startNone
	}
	content := container.Content()
	if strings.IndexByte(content, '\n') != len(content)-1 {
		return startNone
	}
	marker := reSetextHeaderLine.FindString(p.currentLine[p.nextNonspace:])
	if marker == "" {
		return startNone
	}

	p.closeUnmatchedBlocks()

	header := mdast.NewNode(mdast.NodeHeader, container.Pos)
	header.Open = true
	header.Level = 2
	if marker[0] == '=' {
		header.Level = 1
	}
	header.SetContent(content)

	mdast.ReplaceChild(container, header)
	p.tip = header

	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startHorizontalRule(p *Parser, _ *mdast.Node) startResult {
	if p.indented || !reHorizontalRule.MatchString(p.currentLine[p.nextNonspace:]) {
		return startNone
	}

	p.closeUnmatchedBlocks()
	p.addChild(mdast.NodeHorizontalRule, p.nextNonspaceColumn)
	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startListItem(p *Parser, _ *mdast.Node) startResult {
	data := parseListMarker(p.currentLine, p.nextNonspace, p.indent)
	if data == nil {
		return startNone
	}

	p.closeUnmatchedBlocks()
	if p.indented && p.tip.Kind != mdast.NodeList {
		return startNone
	}

	p.advanceNextNonspace()
	// Recalculate padding in columns, taking tabs into account.
	startColumn := p.column
	p.advanceOffset(data.Padding, false)
	data.Padding = p.column - startColumn

	if p.tip.Kind != mdast.NodeList || !p.tip.List.Matches(data) {
		list := p.addChild(mdast.NodeList, p.nextNonspaceColumn)
		listData := *data
		list.List = &listData
	}

	item := p.addChild(mdast.NodeItem, p.nextNonspaceColumn)
	item.List = data
	return startContainer
}

func startIndentedCode(p *Parser, _ *mdast.Node) startResult {
	if !p.indented || p.tip.Kind == mdast.NodeParagraph || p.blank {
		return startNone
	}

	p.advanceOffset(codeIndent, true)
	p.closeUnmatchedBlocks()
	p.addChild(mdast.NodeCodeBlock, p.column)
	return startLeaf
}

// openingFence returns the fence character and length when s starts with
// at least three backticks or tildes. A backtick fence may not be followed
// by another backtick on the same line, and a tilde fence by another tilde.
func openingFence(s string) (byte, int) {
	c := peek(s, 0)
	if c != '`' && c != '~' {
		return 0, 0
	}

	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 || strings.IndexByte(s[n:], c) >= 0 {
		return 0, 0
	}
	return c, n
}

// closingFenceLength returns the length of the run of c at the start of s
// when it is at least three long and followed only by spaces, or zero.
func closingFenceLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 || strings.TrimLeft(s[n:], " ") != "" {
		return 0
	}
	return n
}
