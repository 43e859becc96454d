package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeReference turns a link label into the key used for reference
// lookups: outer brackets are stripped, surrounding whitespace trimmed,
// case folded, and internal whitespace runs collapsed to one space.
func NormalizeReference(label string) string {
	if len(label) > 1 && label[0] == '[' && label[len(label)-1] == ']' {
		label = label[1 : len(label)-1]
	}

	fields := strings.FieldsFunc(label, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})

	return cases.Fold().String(strings.Join(fields, " "))
}
