package parser

import (
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

const (
	leftSingleQuote  = "‘"
	rightSingleQuote = "’"
	leftDoubleQuote  = "“"
	rightDoubleQuote = "”"
)

// delimiter is an entry on the stack of emphasis, quote and bracket
// delimiters seen in the current block. The stack is a doubly linked list
// whose top is inlineParser.delimiters.
type delimiter struct {
	char     byte
	count    int
	node     *mdast.Node
	prev     *delimiter
	next     *delimiter
	canOpen  bool
	canClose bool
	active   bool
	index    int
}

// scanDelims measures the delimiter run at the current position and
// decides whether it can open or close emphasis. The position is left
// unchanged.
func (ip *inlineParser) scanDelims(c byte) (count int, canOpen, canClose bool) {
	start := ip.pos

	if c == '\'' || c == '"' {
		count = 1
	} else {
		for start+count < len(ip.subject) && ip.subject[start+count] == c {
			count++
		}
	}

	before := '\n'
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(ip.subject[:start])
	}
	after := '\n'
	if start+count < len(ip.subject) {
		after, _ = utf8.DecodeRuneInString(ip.subject[start+count:])
	}

	beforeSpace, beforePunct := textutil.IsSpaceRune(before), textutil.IsPunctRune(before)
	afterSpace, afterPunct := textutil.IsSpaceRune(after), textutil.IsPunctRune(after)

	leftFlanking := !afterSpace && !(afterPunct && !beforeSpace && !beforePunct)
	rightFlanking := !beforeSpace && !(beforePunct && !afterSpace && !afterPunct)

	switch c {
	case '_':
		canOpen = leftFlanking && (!rightFlanking || beforePunct)
		canClose = rightFlanking && (!leftFlanking || afterPunct)
	case '\'', '"':
		canOpen = leftFlanking && !rightFlanking
		canClose = rightFlanking
	default:
		canOpen = leftFlanking
		canClose = rightFlanking
	}
	return count, canOpen, canClose
}

// handleDelim emits the text of a delimiter run and pushes it on the stack.
func (ip *inlineParser) handleDelim(c byte, block *mdast.Node) bool {
	count, canOpen, canClose := ip.scanDelims(c)
	if count == 0 {
		return false
	}

	start := ip.pos
	ip.pos += count

	var contents string
	switch c {
	case '\'':
		contents = rightSingleQuote
	case '"':
		contents = leftDoubleQuote
	default:
		contents = ip.subject[start:ip.pos]
	}

	node := mdast.NewText(contents)
	mdast.AppendChild(block, node)

	ip.pushDelimiter(&delimiter{
		char:     c,
		count:    count,
		node:     node,
		canOpen:  canOpen,
		canClose: canClose,
		active:   true,
		index:    -1,
	})
	return true
}

// pushDelimiter puts d on top of the stack.
func (ip *inlineParser) pushDelimiter(d *delimiter) {
	d.prev = ip.delimiters
	if d.prev != nil {
		d.prev.next = d
	}
	ip.delimiters = d
}

// removeDelimiter unlinks d from the stack. The text node is kept.
func (ip *inlineParser) removeDelimiter(d *delimiter) {
	if d.prev != nil {
		d.prev.next = d.next
	}
	if d.next == nil {
		ip.delimiters = d.prev
	} else {
		d.next.prev = d.prev
	}
}

// removeDelimitersBetween drops every delimiter strictly between bottom and top.
func removeDelimitersBetween(bottom, top *delimiter) {
	if bottom.next != top {
		bottom.next = top
		top.prev = bottom
	}
}

// processEmphasis matches openers and closers above stackBottom, turning
// emphasis runs into Emph and Strong nodes and quotes into curly quotes.
// Every delimiter above stackBottom is removed afterwards.
func (ip *inlineParser) processEmphasis(stackBottom *delimiter) {
	openersBottom := map[byte]*delimiter{
		'_':  stackBottom,
		'*':  stackBottom,
		'\'': stackBottom,
		'"':  stackBottom,
	}

	// Find the first closer above stackBottom.
	closer := ip.delimiters
	for closer != nil && closer.prev != stackBottom {
		closer = closer.prev
	}

	for closer != nil {
		c := closer.char
		bottom, emphasisChar := openersBottom[c]
		if !closer.canClose || !emphasisChar {
			closer = closer.next
			continue
		}

		// Look back for the first matching opener.
		opener := closer.prev
		openerFound := false
		for opener != nil && opener != stackBottom && opener != bottom {
			if opener.char == c && opener.canOpen {
				openerFound = true
				break
			}
			opener = opener.prev
		}

		oldCloser := closer

		switch c {
		case '*', '_':
			if !openerFound {
				closer = closer.next
				break
			}
			closer = ip.matchEmphasis(opener, closer)

		case '\'':
			closer.node.Literal = rightSingleQuote
			if openerFound {
				opener.node.Literal = leftSingleQuote
			}
			closer = closer.next

		case '"':
			closer.node.Literal = rightDoubleQuote
			if openerFound {
				opener.node.Literal = leftDoubleQuote
			}
			closer = closer.next
		}

		if !openerFound {
			// Later closers of this kind need not look below this point.
			openersBottom[c] = oldCloser.prev
			if !oldCloser.canOpen {
				ip.removeDelimiter(oldCloser)
			}
		}
	}

	for ip.delimiters != nil && ip.delimiters != stackBottom {
		ip.removeDelimiter(ip.delimiters)
	}
}

// matchEmphasis wraps the nodes between opener and closer in an Emph or
// Strong node and returns the closer to examine next.
func (ip *inlineParser) matchEmphasis(opener, closer *delimiter) *delimiter {
	use := 1
	switch {
	case closer.count < 3 || opener.count < 3:
		use = min(closer.count, opener.count)
	case closer.count%2 == 0:
		use = 2
	}

	openerNode, closerNode := opener.node, closer.node
	opener.count -= use
	closer.count -= use
	openerNode.Literal = openerNode.Literal[:len(openerNode.Literal)-use]
	closerNode.Literal = closerNode.Literal[:len(closerNode.Literal)-use]

	kind := mdast.NodeEmph
	if use == 2 {
		kind = mdast.NodeStrong
	}
	emph := mdast.NewNode(kind, mdast.SourcePos{})

	for n := openerNode.Next; n != nil && n != closerNode; {
		next := n.Next
		mdast.AppendChild(emph, n)
		n = next
	}
	mdast.InsertAfter(openerNode, emph)

	removeDelimitersBetween(opener, closer)

	if opener.count == 0 {
		mdast.Unlink(openerNode)
		ip.removeDelimiter(opener)
	}

	if closer.count == 0 {
		mdast.Unlink(closerNode)
		next := closer.next
		ip.removeDelimiter(closer)
		return next
	}
	return closer
}
