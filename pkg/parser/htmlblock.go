package parser

import (
	"regexp"

	"github.com/yaklabco/gocmark/pkg/textutil"
)

const blockTagNames = `address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|` +
	`dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|` +
	`h1|head|header|hr|html|legend|li|link|main|menu|menuitem|meta|nav|noframes|ol|optgroup|` +
	`option|p|param|pre|section|source|title|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul`

// HTML block start conditions, indexed by block type. Index 0 is unused.
var reHTMLBlockOpen = [...]*regexp.Regexp{
	nil,
	regexp.MustCompile(`(?i)^<(?:script|pre|style)(?:` + textutil.Space + `|>|$)`),
	regexp.MustCompile(`^<!--`),
	regexp.MustCompile(`^<[?]`),
	regexp.MustCompile(`^<![A-Z]`),
	regexp.MustCompile(`^<!\[CDATA\[`),
	regexp.MustCompile(`(?i)^</?(?:` + blockTagNames + `)(?:` + textutil.Space + `|/?>|$)`),
	regexp.MustCompile(`(?i)^(?:` + textutil.OpenTag + `|` + textutil.CloseTag + `)` + textutil.Space + `*$`),
}

// HTML block end conditions for types 1 through 5. Types 6 and 7 end at a
// blank line.
var reHTMLBlockClose = [...]*regexp.Regexp{
	nil,
	regexp.MustCompile(`(?i)</(?:script|pre|style)>`),
	regexp.MustCompile(`-->`),
	regexp.MustCompile(`\?>`),
	regexp.MustCompile(`>`),
	regexp.MustCompile(`\]\]>`),
}

// htmlBlockType returns the start condition (1-7) matched by s, or zero.
// Type 7 cannot interrupt a paragraph.
func htmlBlockType(s string, inParagraph bool) int {
	for blockType := 1; blockType < len(reHTMLBlockOpen); blockType++ {
		if blockType == 7 && inParagraph {
			break
		}
		if reHTMLBlockOpen[blockType].MatchString(s) {
			return blockType
		}
	}
	return 0
}

// htmlBlockClosedBy reports whether s satisfies the end condition of an
// HTML block of the given type.
func htmlBlockClosedBy(blockType int, s string) bool {
	if blockType < 1 || blockType >= len(reHTMLBlockClose) {
		return false
	}
	return reHTMLBlockClose[blockType].MatchString(s)
}
