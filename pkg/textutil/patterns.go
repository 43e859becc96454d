// Package textutil holds the string transformations shared by the
// CommonMark parser and renderers: entity decoding, backslash unescaping,
// URI normalization, XML escaping and reference label normalization.
package textutil

import "regexp"

// Building blocks for the HTML and entity patterns.
const (
	// Space matches one CommonMark whitespace character.
	Space = `[ \t\n\f\r\x{00A0}\x{1680}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]`

	// Escapable matches one ASCII punctuation character that may be backslash-escaped.
	Escapable = "[!\"#$%&'()*+,./:;<=>?@\\[\\\\\\]^_`{|}~-]"

	// EscapedChar matches a backslash escape.
	EscapedChar = `\\` + Escapable

	// Entity matches a named, decimal or hexadecimal character reference.
	Entity = `&(?:#[xX][a-fA-F0-9]{1,8}|#[0-9]{1,8}|[a-zA-Z][a-zA-Z0-9]{1,31});`

	tagName       = `[A-Za-z][A-Za-z0-9-]*`
	attributeName = `[a-zA-Z_:][a-zA-Z0-9:._-]*`
	unquotedValue = "[^\"'=<>`\\x00-\\x20]+"
	singleQuoted  = `'[^']*'`
	doubleQuoted  = `"[^"]*"`
	attrValue     = `(?:` + unquotedValue + `|` + singleQuoted + `|` + doubleQuoted + `)`
	attrValueSpec = `(?:` + Space + `*=` + Space + `*` + attrValue + `)`
	attribute     = `(?:` + Space + `+` + attributeName + attrValueSpec + `?)`

	// OpenTag matches an HTML open tag.
	OpenTag = `<` + tagName + attribute + `*` + Space + `*/?>`

	// CloseTag matches an HTML closing tag.
	CloseTag = `</` + tagName + Space + `*>`

	htmlComment = `<!---->|<!--(?:-?[^>-])(?:-?[^-])*-->`
	processing  = `[<][?](?s:.*?)[?][>]`
	declaration = `<![A-Z]+` + Space + `+[^>]*>`
	cdata       = `<!\[CDATA\[(?s:.*?)\]\]>`

	// HTMLTag matches any raw inline HTML construct.
	HTMLTag = `(?:` + OpenTag + `|` + CloseTag + `|` + htmlComment + `|` +
		processing + `|` + declaration + `|` + cdata + `)`
)

// Compiled patterns. All are anchored at the start of input unless noted.
var (
	// ReEntityHere matches an entity at the start of input.
	ReEntityHere = regexp.MustCompile(`^` + Entity)

	// ReHTMLTag matches a raw HTML tag at the start of input.
	ReHTMLTag = regexp.MustCompile(`(?i)^` + HTMLTag)

	// ReSpaceRun matches runs of whitespace anywhere in the input.
	ReSpaceRun = regexp.MustCompile(Space + `+`)

	reEntityOrEscaped = regexp.MustCompile(EscapedChar + `|` + Entity)
	reEntity          = regexp.MustCompile(Entity)
)

// IsEscapable reports whether c may follow a backslash escape.
func IsEscapable(c byte) bool {
	switch c {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
		':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_', '`', '{', '|', '}', '~':
		return true
	default:
		return false
	}
}

// IsSpaceRune reports whether r is CommonMark whitespace, as matched by Space.
func IsSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r', 0x00A0, 0x1680, 0x202F, 0x205F, 0x3000:
		return true
	default:
		return r >= 0x2000 && r <= 0x200A
	}
}

// IsPunctRune reports whether r counts as punctuation for delimiter flanking.
func IsPunctRune(r rune) bool {
	if (r >= 0x2000 && r <= 0x206F) || (r >= 0x2E00 && r <= 0x2E7F) {
		return true
	}
	return r < 0x80 && IsEscapable(byte(r))
}
