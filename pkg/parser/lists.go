package parser

import (
	"regexp"
	"strconv"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

var (
	reBulletListMarker  = regexp.MustCompile(`^[*+-]( +|$)`)
	reOrderedListMarker = regexp.MustCompile(`^(\d{1,9})([.)])( +|$)`)
)

// parseListMarker parses a list marker at offset and returns its data, or
// nil if there is none. Padding is measured in bytes and recomputed in
// columns by the caller.
func parseListMarker(line string, offset, indent int) *mdast.ListData {
	rest := line[offset:]
	data := &mdast.ListData{
		Tight:        true,
		MarkerOffset: indent,
	}

	var match string
	var spacesAfterMarker int

	if m := reBulletListMarker.FindStringSubmatch(rest); m != nil {
		match = m[0]
		spacesAfterMarker = len(m[1])
		data.Type = mdast.ListBullet
		data.BulletChar = m[0][0]
	} else if m := reOrderedListMarker.FindStringSubmatch(rest); m != nil {
		match = m[0]
		spacesAfterMarker = len(m[3])
		data.Type = mdast.ListOrdered
		data.Start, _ = strconv.Atoi(m[1])
		data.Delimiter = m[2][0]
	} else {
		return nil
	}

	blankItem := len(match) == len(rest)
	if spacesAfterMarker >= 5 || spacesAfterMarker < 1 || blankItem {
		data.Padding = len(match) - spacesAfterMarker + 1
	} else {
		data.Padding = len(match)
	}

	return data
}
