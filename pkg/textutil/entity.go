package textutil

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DecodeEntity decodes a single character reference such as "&amp;",
// "&#35;" or "&#x22;". Unknown names are returned unchanged. Numeric
// references to code point zero or outside the Unicode range decode to
// U+FFFD.
func DecodeEntity(entity string) string {
	if len(entity) < 3 || entity[0] != '&' || entity[len(entity)-1] != ';' {
		return entity
	}

	body := entity[1 : len(entity)-1]
	if body[0] == '#' {
		return decodeNumeric(body[1:])
	}

	decoded := html.UnescapeString(entity)
	// The HTML tokenizer also accepts legacy names without a semicolon as a
	// prefix ("&notit;" decodes to "¬it;"). Only whole-name matches count.
	if decoded == entity || (strings.HasSuffix(decoded, ";") && body != "semi") {
		return entity
	}
	return decoded
}

func decodeNumeric(digits string) string {
	base := 10
	if digits != "" && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}

	code, err := strconv.ParseUint(digits, base, 32)
	if err != nil || code == 0 || code > utf8.MaxRune {
		return string(utf8.RuneError)
	}

	// Surrogates are invalid scalar values; string(rune) maps them to U+FFFD.
	return string(rune(code))
}

// DecodeHTML replaces every character reference in s with its decoded form.
func DecodeHTML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return reEntity.ReplaceAllStringFunc(s, DecodeEntity)
}

// UnescapeString resolves backslash escapes and character references in s.
func UnescapeString(s string) string {
	if !strings.ContainsAny(s, `\&`) {
		return s
	}
	return reEntityOrEscaped.ReplaceAllStringFunc(s, func(match string) string {
		if match[0] == '\\' {
			return match[1:]
		}
		return DecodeEntity(match)
	})
}
