package textutil

import "strings"

// EscapeXML escapes &, <, > and " for use in HTML or XML text and
// attribute values. With preserveEntities set, an ampersand that starts a
// well-formed character reference is left alone.
func EscapeXML(s string, preserveEntities bool) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if preserveEntities {
				if loc := ReEntityHere.FindStringIndex(s[i:]); loc != nil {
					out.WriteString(s[i : i+loc[1]])
					i += loc[1] - 1
					continue
				}
			}
			out.WriteString("&amp;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '"':
			out.WriteString("&quot;")
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}
