package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
)

// parse parses source with default options.
func parse(t *testing.T, source string) *mdast.Node {
	t.Helper()
	return parser.ParseString(context.Background(), source, parser.Options{})
}

// dump renders a compact one-line form of the tree under n, for example
// document(paragraph("a" emph("b"))).
func dump(n *mdast.Node) string {
	var sb strings.Builder
	writeDump(&sb, n)
	return sb.String()
}

func writeDump(sb *strings.Builder, n *mdast.Node) {
	switch n.Kind {
	case mdast.NodeText:
		fmt.Fprintf(sb, "%q", n.Literal)
		return
	case mdast.NodeSoftBreak:
		sb.WriteString("soft")
		return
	case mdast.NodeHardBreak:
		sb.WriteString("hard")
		return
	case mdast.NodeHorizontalRule:
		sb.WriteString("hr")
		return
	case mdast.NodeCode, mdast.NodeHTML, mdast.NodeHTMLBlock:
		fmt.Fprintf(sb, "%s:%q", n.Kind, n.Literal)
		return
	case mdast.NodeCodeBlock:
		fmt.Fprintf(sb, "code_block[%s]:%q", n.Info, n.Literal)
		return
	case mdast.NodeHeader:
		fmt.Fprintf(sb, "h%d", n.Level)
	case mdast.NodeLink, mdast.NodeImage:
		fmt.Fprintf(sb, "%s<%s|%s>", n.Kind, n.Destination, n.Title)
	case mdast.NodeList:
		sb.WriteString("list[" + n.List.Type.String())
		if n.List.Type == mdast.ListOrdered {
			fmt.Fprintf(sb, " %d %s", n.List.Start, n.List.DelimiterName())
		}
		if n.List.Tight {
			sb.WriteString(" tight")
		}
		sb.WriteString("]")
	default:
		sb.WriteString(n.Kind.String())
	}

	sb.WriteString("(")
	for child := n.FirstChild; child != nil; child = child.Next {
		if child != n.FirstChild {
			sb.WriteString(" ")
		}
		writeDump(sb, child)
	}
	sb.WriteString(")")
}
