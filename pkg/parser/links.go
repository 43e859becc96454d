package parser

import (
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

var (
	reLinkLabel      = regexp.MustCompile(`^\[(?:[^\\\[\]]|` + textutil.EscapedChar + `|\\)*\]`)
	reWhitespaceChar = regexp.MustCompile(`^[ \t\n\x0b\x0c\x0d]`)
)

// parseOpenBracket emits "[" and records it as a potential link opener.
func (ip *inlineParser) parseOpenBracket(block *mdast.Node) bool {
	start := ip.pos
	ip.pos++

	node := mdast.NewText("[")
	mdast.AppendChild(block, node)
	ip.pushDelimiter(&delimiter{
		char:    '[',
		count:   1,
		node:    node,
		canOpen: true,
		active:  true,
		index:   start,
	})
	return true
}

// parseBang emits "![" as a potential image opener, or a lone "!".
func (ip *inlineParser) parseBang(block *mdast.Node) bool {
	start := ip.pos
	ip.pos++

	if ip.peek() != '[' {
		mdast.AppendChild(block, mdast.NewText("!"))
		return true
	}

	ip.pos++
	node := mdast.NewText("![")
	mdast.AppendChild(block, node)
	ip.pushDelimiter(&delimiter{
		char:    '!',
		count:   1,
		node:    node,
		canOpen: true,
		active:  true,
		index:   start + 1,
	})
	return true
}

// parseCloseBracket tries to close a link or image opened by the nearest
// bracket delimiter. When no link can be formed, "]" is emitted as text.
func (ip *inlineParser) parseCloseBracket(block *mdast.Node) bool {
	ip.pos++
	start := ip.pos

	opener := ip.delimiters
	for opener != nil && opener.char != '[' && opener.char != '!' {
		opener = opener.prev
	}

	if opener == nil {
		mdast.AppendChild(block, mdast.NewText("]"))
		return true
	}

	if !opener.active {
		mdast.AppendChild(block, mdast.NewText("]"))
		ip.removeDelimiter(opener)
		return true
	}

	isImage := opener.char == '!'

	var dest, title string
	matched := false

	if ip.peek() == '(' {
		matched = ip.parseInlineLinkTail(&dest, &title)
	} else {
		saved := ip.pos
		ip.spnl()
		beforeLabel := ip.pos
		n := ip.parseLinkLabel()

		var label string
		if n == 0 || n == 2 {
			// Shortcut or collapsed reference: the link text is the label.
			label = ip.subject[opener.index:start]
		} else {
			label = ip.subject[beforeLabel : beforeLabel+n]
		}
		if n == 0 {
			ip.pos = saved
		}

		// No definition can have a label over the cap, so long link text
		// never reaches the case-folding lookup.
		if !labelTooLong(label) {
			if ref, ok := ip.refmap.Lookup(label); ok {
				dest, title = ref.Destination, ref.Title
				matched = true
			}
		}
	}

	if !matched {
		ip.removeDelimiter(opener)
		ip.pos = start
		mdast.AppendChild(block, mdast.NewText("]"))
		return true
	}

	kind := mdast.NodeLink
	if isImage {
		kind = mdast.NodeImage
	}
	node := mdast.NewNode(kind, mdast.SourcePos{})
	node.Destination = dest
	node.Title = title

	for n := opener.node.Next; n != nil; {
		next := n.Next
		mdast.AppendChild(node, n)
		n = next
	}
	mdast.AppendChild(block, node)

	ip.processEmphasis(opener.prev)
	mdast.Unlink(opener.node)

	// Links may not contain other links, so earlier openers are disabled.
	if !isImage {
		for d := ip.delimiters; d != nil; d = d.prev {
			if d.char == '[' {
				d.active = false
			}
		}
	}
	return true
}

// parseInlineLinkTail parses "(destination title)" following the closing
// bracket of an inline link. The position is left past ")" on success.
func (ip *inlineParser) parseInlineLinkTail(dest, title *string) bool {
	ip.pos++
	ip.spnl()

	d, ok := ip.parseLinkDestination()
	if !ok {
		return false
	}
	ip.spnl()

	// A title must be separated from the destination by whitespace.
	if reWhitespaceChar.MatchString(ip.subject[ip.pos-1:]) {
		if t, ok := ip.parseLinkTitle(); ok {
			*title = t
		}
	}
	ip.spnl()

	if ip.peek() != ')' {
		return false
	}
	ip.pos++
	*dest = d
	return true
}

// parseLinkDestination parses a destination in angle brackets or a bare
// one with balanced parentheses. A bare destination may be empty.
func (ip *inlineParser) parseLinkDestination() (string, bool) {
	if m, ok := ip.match(reLinkDestinationBraces); ok {
		return textutil.NormalizeURI(textutil.UnescapeString(m[1 : len(m)-1])), true
	}

	m, ok := ip.match(reLinkDestination)
	if !ok {
		return "", false
	}
	return textutil.NormalizeURI(textutil.UnescapeString(m)), true
}

// parseLinkTitle parses a title in double quotes, single quotes or parentheses.
func (ip *inlineParser) parseLinkTitle() (string, bool) {
	m, ok := ip.match(reLinkTitle)
	if !ok {
		return "", false
	}
	return textutil.UnescapeString(m[1 : len(m)-1]), true
}

// parseLinkLabel parses a bracketed link label and returns its length, or
// zero when there is none. The position only moves on success.
func (ip *inlineParser) parseLinkLabel() int {
	loc := reLinkLabel.FindStringIndex(ip.subject[ip.pos:])
	if loc == nil || labelTooLong(ip.subject[ip.pos:ip.pos+loc[1]]) {
		return 0
	}
	ip.pos += loc[1]
	return loc[1]
}

// labelTooLong reports whether label has more than maxLinkLabel characters.
// The byte length settles most cases without counting runes.
func labelTooLong(label string) bool {
	if len(label) <= maxLinkLabel {
		return false
	}
	if len(label) > maxLinkLabel*utf8.UTFMax {
		return true
	}
	return utf8.RuneCountInString(label) > maxLinkLabel
}

// parseReference parses a link reference definition at the start of s and
// stores it in the reference map. It returns the number of bytes consumed,
// or zero when s does not start with a definition.
func (ip *inlineParser) parseReference(s string) int {
	ip.subject = s
	ip.pos = 0

	n := ip.parseLinkLabel()
	if n == 0 {
		return 0
	}
	rawLabel := s[:n]

	if ip.peek() != ':' {
		return 0
	}
	ip.pos++

	ip.spnl()
	dest, ok := ip.parseLinkDestination()
	if !ok || dest == "" {
		return 0
	}

	beforeTitle := ip.pos
	ip.spnl()
	title, ok := ip.parseLinkTitle()
	if !ok {
		ip.pos = beforeTitle
	}

	// Nothing but spaces may follow on the line.
	if _, atLineEnd := ip.match(reSpaceAtEndOfLine); !atLineEnd {
		if title == "" {
			return 0
		}
		// The title may have been the start of the next line; retry without it.
		title = ""
		ip.pos = beforeTitle
		if _, atLineEnd = ip.match(reSpaceAtEndOfLine); !atLineEnd {
			return 0
		}
	}

	if textutil.NormalizeReference(rawLabel) == "" {
		return 0
	}
	ip.refmap.Define(rawLabel, dest, title)
	return ip.pos
}
