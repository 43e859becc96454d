package textutil

import (
	"strings"
	"unicode/utf8"
)

const (
	upperHex = "0123456789ABCDEF"

	// encodedReplacement is U+FFFD in percent-encoded UTF-8.
	encodedReplacement = "%EF%BF%BD"
)

// NormalizeURI percent-decodes uri and then re-encodes it, so that
// equivalent destinations render identically. Escapes of reserved
// characters and of '%' itself are left encoded. Malformed UTF-8, whether
// escaped or raw, becomes U+FFFD one byte at a time. The function is
// idempotent.
func NormalizeURI(uri string) string {
	return encodeURI(decodeURI(uri))
}

// reserved characters keep their escaped form when decoding.
func isReservedByte(c byte) bool {
	return strings.IndexByte(";/?:@&=+$,#%", c) >= 0
}

// isURISafe reports bytes that encodeURI passes through unchanged.
func isURISafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	default:
		return strings.IndexByte(";/?:@&=+$,-_.!~*'()#", c) >= 0
	}
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isPercentEscape(s string, i int) bool {
	return i+2 < len(s) && s[i] == '%' && isHex(s[i+1]) && isHex(s[i+2])
}

func decodeURI(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		if !isPercentEscape(s, i) {
			out.WriteByte(s[i])
			i++
			continue
		}

		// Collect a run of consecutive escapes, remembering where each came from.
		var raw []byte
		var starts []int
		for isPercentEscape(s, i) {
			raw = append(raw, unhex(s[i+1])<<4|unhex(s[i+2]))
			starts = append(starts, i)
			i += 3
		}

		for j := 0; j < len(raw); {
			c := raw[j]
			if c < utf8.RuneSelf {
				if isReservedByte(c) {
					out.WriteString(s[starts[j] : starts[j]+3])
				} else {
					out.WriteByte(c)
				}
				j++
				continue
			}

			r, size := utf8.DecodeRune(raw[j:])
			if r == utf8.RuneError && size <= 1 {
				out.WriteRune(utf8.RuneError)
				j++
				continue
			}
			out.WriteRune(r)
			j += size
		}
	}

	return out.String()
}

// encodeURI percent-encodes every unsafe byte of s. A byte that is not
// part of valid UTF-8 is encoded as U+FFFD, matching what decodeURI makes
// of its escaped form.
func encodeURI(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isPercentEscape(s, i):
			out.WriteString(s[i : i+3])
			i += 2
		case isURISafe(c):
			out.WriteByte(c)
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size <= 1 {
				out.WriteString(encodedReplacement)
				continue
			}
			for _, b := range []byte(s[i : i+size]) {
				writeEscaped(&out, b)
			}
			i += size - 1
		default:
			writeEscaped(&out, c)
		}
	}

	return out.String()
}

func writeEscaped(out *strings.Builder, c byte) {
	out.WriteByte('%')
	out.WriteByte(upperHex[c>>4])
	out.WriteByte(upperHex[c&0x0F])
}
