package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

const (
	regChar       = `[^\\()\x00-\x20]`
	inParensNoSp  = `\((?:` + regChar + `|` + textutil.EscapedChar + `|\\)*\)`
	autolinkEmail = `^<([a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*)>`
	autolinkSchemes = `coap|doi|javascript|aaa|aaas|about|acap|cap|cid|crid|data|dav|dict|dns|file|ftp|geo|go|` +
		`gopher|h323|http|https|iax|icap|im|imap|info|ipp|iris|iris.beep|iris.xpc|iris.xpcs|iris.lwz|ldap|` +
		`mailto|mid|msrp|msrps|mtqp|mupdate|news|nfs|ni|nih|nntp|opaquelocktoken|pop|pres|rtsp|service|` +
		`session|shttp|sieve|sip|sips|sms|snmp|soap.beep|soap.beeps|tag|tel|telnet|tftp|thismessage|tn3270|` +
		`tip|tv|urn|vemmi|ws|wss|xcon|xcon-userid|xmlrpc.beep|xmlrpc.beeps|xmpp|z39.50r|z39.50s|adiumxtra|` +
		`afp|afs|aim|apt|attachment|aw|beshare|bitcoin|bolo|callto|chrome|chrome-extension|` +
		`com-eventbrite-attendee|content|cvs|dlna-playsingle|dlna-playcontainer|dtn|dvb|ed2k|facetime|feed|` +
		`finger|fish|gg|git|gizmoproject|gtalk|hcp|icon|ipn|irc|irc6|ircs|itms|jar|jms|keyparc|lastfm|ldaps|` +
		`magnet|maps|market|message|mms|ms-help|msnim|mumble|mvn|notes|oid|palm|paparazzi|platform|proxy|` +
		`psyc|query|res|resource|rmi|rsync|rtmp|secondlife|sftp|sgn|skype|smb|soldat|spotify|ssh|steam|svn|` +
		`teamspeak|things|udp|unreal|ut2004|ventrilo|view-source|webcal|wtai|wyciwyg|xfire|xri|ymsgr`
)

var (
	reLinkTitle = regexp.MustCompile(`^(?:"(?:` + textutil.EscapedChar + `|[^"\x00])*"` +
		`|'(?:` + textutil.EscapedChar + `|[^'\x00])*'` +
		`|\((?:` + textutil.EscapedChar + `|[^)\x00])*\))`)
	reLinkDestinationBraces = regexp.MustCompile(`^<(?:[^<>\n\\\x00]|` + textutil.EscapedChar + `|\\)*>`)
	reLinkDestination       = regexp.MustCompile(`^(?:` + regChar + `+|` + textutil.EscapedChar + `|\\|` + inParensNoSp + `)*`)
	reEmailAutolink         = regexp.MustCompile(autolinkEmail)
	reAutolink              = regexp.MustCompile(`(?i)^<(?:` + autolinkSchemes + `):[^<>\x00-\x20]*>`)
	reSpnl                  = regexp.MustCompile(`^ *(?:\n *)?`)
	reSpaceAtEndOfLine      = regexp.MustCompile(`^ *(?:\n|$)`)
	reMain                  = regexp.MustCompile("^[^\n`\\[\\]\\\\!<&*_'\"]+")
	reTicksHere             = regexp.MustCompile("^`+")
	reTicks                 = regexp.MustCompile("`+")
)

// maxLinkLabel bounds the length of a link label in characters, brackets included.
const maxLinkLabel = 1001

// inlineParser parses the raw content of one leaf block at a time.
type inlineParser struct {
	opts   Options
	refmap *ReferenceMap

	subject    string
	pos        int
	delimiters *delimiter
}

func newInlineParser(opts Options, refmap *ReferenceMap) *inlineParser {
	return &inlineParser{opts: opts, refmap: refmap}
}

// parse replaces the raw content of block with inline children.
func (ip *inlineParser) parse(block *mdast.Node) {
	ip.subject = trimControl(block.Content())
	ip.pos = 0
	ip.delimiters = nil

	for ip.parseInline(block) {
	}

	block.ClearContent()
	ip.processEmphasis(nil)
}

// match advances past re if it matches at the current position and
// returns the matched text.
func (ip *inlineParser) match(re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(ip.subject[ip.pos:])
	if loc == nil {
		return "", false
	}
	m := ip.subject[ip.pos+loc[0] : ip.pos+loc[1]]
	ip.pos += loc[1]
	return m, true
}

// peek returns the byte at the current position, or 0 at the end.
func (ip *inlineParser) peek() byte {
	return peek(ip.subject, ip.pos)
}

// spnl skips spaces and at most one newline.
func (ip *inlineParser) spnl() {
	ip.match(reSpnl)
}

// parseInline parses the next inline element and appends it to block.
// It returns false at the end of the subject.
func (ip *inlineParser) parseInline(block *mdast.Node) bool {
	if ip.pos >= len(ip.subject) {
		return false
	}

	c := ip.subject[ip.pos]
	var handled bool

	switch c {
	case '\n':
		handled = ip.parseNewline(block)
	case '\\':
		handled = ip.parseBackslash(block)
	case '`':
		handled = ip.parseBackticks(block)
	case '*', '_':
		handled = ip.handleDelim(c, block)
	case '\'', '"':
		handled = ip.opts.Smart && ip.handleDelim(c, block)
	case '[':
		handled = ip.parseOpenBracket(block)
	case '!':
		handled = ip.parseBang(block)
	case ']':
		handled = ip.parseCloseBracket(block)
	case '<':
		handled = ip.parseAutolink(block) || ip.parseHTMLTag(block)
	case '&':
		handled = ip.parseEntity(block)
	default:
		handled = ip.parseString(block)
	}

	if !handled {
		ip.pos++
		mdast.AppendChild(block, mdast.NewText(string(c)))
	}

	return true
}

// parseBackticks parses a code span, or a literal run of backticks when
// no closing run of the same length follows.
func (ip *inlineParser) parseBackticks(block *mdast.Node) bool {
	ticks, ok := ip.match(reTicksHere)
	if !ok {
		return false
	}

	afterOpenTicks := ip.pos
	for {
		matched, found := ip.match(reTicks)
		if !found {
			break
		}
		if matched == ticks {
			code := mdast.NewNode(mdast.NodeCode, mdast.SourcePos{})
			inner := ip.subject[afterOpenTicks : ip.pos-len(ticks)]
			code.Literal = textutil.ReSpaceRun.ReplaceAllLiteralString(trimControl(inner), " ")
			mdast.AppendChild(block, code)
			return true
		}
	}

	ip.pos = afterOpenTicks
	mdast.AppendChild(block, mdast.NewText(ticks))
	return true
}

// parseBackslash handles a backslash: a hard break before a newline, an
// escaped punctuation character, or a literal backslash.
func (ip *inlineParser) parseBackslash(block *mdast.Node) bool {
	ip.pos++

	switch next := ip.peek(); {
	case next == '\n':
		ip.pos++
		mdast.AppendChild(block, mdast.NewNode(mdast.NodeHardBreak, mdast.SourcePos{}))
	case ip.pos < len(ip.subject) && textutil.IsEscapable(next):
		mdast.AppendChild(block, mdast.NewText(string(next)))
		ip.pos++
	default:
		mdast.AppendChild(block, mdast.NewText(`\`))
	}

	return true
}

// parseAutolink parses an email or URI autolink in angle brackets.
func (ip *inlineParser) parseAutolink(block *mdast.Node) bool {
	var dest, prefix string

	if m, ok := ip.match(reEmailAutolink); ok {
		dest = m[1 : len(m)-1]
		prefix = "mailto:"
	} else if m, ok := ip.match(reAutolink); ok {
		dest = m[1 : len(m)-1]
	} else {
		return false
	}

	link := mdast.NewNode(mdast.NodeLink, mdast.SourcePos{})
	link.Destination = textutil.NormalizeURI(prefix + dest)
	mdast.AppendChild(link, mdast.NewText(dest))
	mdast.AppendChild(block, link)
	return true
}

// parseHTMLTag parses a raw inline HTML tag.
func (ip *inlineParser) parseHTMLTag(block *mdast.Node) bool {
	m, ok := ip.match(textutil.ReHTMLTag)
	if !ok {
		return false
	}

	node := mdast.NewNode(mdast.NodeHTML, mdast.SourcePos{})
	node.Literal = m
	mdast.AppendChild(block, node)
	return true
}

// parseEntity parses a character reference.
func (ip *inlineParser) parseEntity(block *mdast.Node) bool {
	m, ok := ip.match(textutil.ReEntityHere)
	if !ok {
		return false
	}

	mdast.AppendChild(block, mdast.NewText(textutil.DecodeEntity(m)))
	return true
}

// parseString parses a run of characters with no special meaning.
func (ip *inlineParser) parseString(block *mdast.Node) bool {
	m, ok := ip.match(reMain)
	if !ok {
		return false
	}

	if ip.opts.Smart {
		m = smartPunctuation(m)
	}
	mdast.AppendChild(block, mdast.NewText(m))
	return true
}

// parseNewline emits a hard break when the preceding text ends with two or
// more spaces and a soft break otherwise.
func (ip *inlineParser) parseNewline(block *mdast.Node) bool {
	ip.pos++

	kind := mdast.NodeSoftBreak
	if last := block.LastChild; last != nil && last.Kind == mdast.NodeText && strings.HasSuffix(last.Literal, " ") {
		if strings.HasSuffix(last.Literal, "  ") {
			kind = mdast.NodeHardBreak
		}
		last.Literal = strings.TrimRight(last.Literal, " ")
	}
	mdast.AppendChild(block, mdast.NewNode(kind, mdast.SourcePos{}))

	// Gobble leading spaces in the next line.
	for ip.peek() == ' ' {
		ip.pos++
	}
	return true
}
