package parser

import (
	"regexp"
	"strings"
)

const (
	ellipsis = "…"
	enDash   = "–"
	emDash   = "—"
)

var (
	reEllipses = regexp.MustCompile(`\.\.\.`)
	reDash     = regexp.MustCompile(`--+`)
)

// smartPunctuation replaces "..." with an ellipsis and runs of hyphens with
// en and em dashes. Runs are split into em dashes where possible, then en
// dashes, favoring a homogeneous result.
func smartPunctuation(s string) string {
	if !strings.Contains(s, ".") && !strings.Contains(s, "-") {
		return s
	}
	s = reEllipses.ReplaceAllLiteralString(s, ellipsis)
	return reDash.ReplaceAllStringFunc(s, dashes)
}

func dashes(run string) string {
	n := len(run)

	var em, en int
	switch {
	case n%3 == 0:
		em = n / 3
	case n%2 == 0:
		en = n / 2
	case n%3 == 2:
		en = 1
		em = (n - 2) / 3
	default:
		en = 2
		em = (n - 4) / 3
	}
	return strings.Repeat(emDash, em) + strings.Repeat(enDash, en)
}
