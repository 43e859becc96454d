package pretty

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// Tree guide segments.
const (
	guideBranch = "├─ "
	guideLast   = "└─ "
	guidePipe   = "│  "
	guideSpace  = "   "

	maxLiteralRunes = 40
)

type nodeAttr struct {
	key   string
	value string
}

// FormatTree renders the tree rooted at root as an indented outline, one
// node per line: kind, source span in brackets, attributes, then a quoted
// literal for nodes that carry text.
func (s *Styles) FormatTree(root *mdast.Node) string {
	if root == nil {
		return ""
	}

	var b strings.Builder
	s.writeTreeNode(&b, root, "", "")
	return b.String()
}

func (s *Styles) writeTreeNode(b *strings.Builder, node *mdast.Node, lead, childLead string) {
	if lead != "" {
		b.WriteString(s.Guide.Render(lead))
	}
	b.WriteString(s.describeNode(node))
	b.WriteByte('\n')

	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Next == nil {
			s.writeTreeNode(b, child, childLead+guideLast, childLead+guideSpace)
		} else {
			s.writeTreeNode(b, child, childLead+guideBranch, childLead+guidePipe)
		}
	}
}

func (s *Styles) describeNode(node *mdast.Node) string {
	kindStyle := s.InlineKind
	if node.IsBlock() {
		kindStyle = s.BlockKind
	}

	parts := []string{kindStyle.Render(node.Kind.String())}
	if node.Pos.IsValid() {
		parts = append(parts, s.SourcePos.Render("["+node.Pos.String()+"]"))
	}
	for _, attr := range nodeAttrs(node) {
		parts = append(parts, s.AttrKey.Render(attr.key)+"="+s.AttrValue.Render(attr.value))
	}
	if literal, ok := nodeLiteral(node); ok {
		parts = append(parts, s.Literal.Render(quoteLiteral(literal)))
	}

	return strings.Join(parts, " ")
}

func nodeAttrs(node *mdast.Node) []nodeAttr {
	switch node.Kind {
	case mdast.NodeHeader:
		return []nodeAttr{{"level", strconv.Itoa(node.Level)}}

	case mdast.NodeList:
		if node.List == nil {
			return nil
		}
		attrs := []nodeAttr{{"type", node.List.Type.String()}}
		if node.List.Type == mdast.ListOrdered {
			attrs = append(attrs,
				nodeAttr{"start", strconv.Itoa(node.List.Start)},
				nodeAttr{"delimiter", node.List.DelimiterName()},
			)
		} else {
			attrs = append(attrs, nodeAttr{"bullet", strconv.Quote(string(node.List.BulletChar))})
		}
		return append(attrs, nodeAttr{"tight", strconv.FormatBool(node.List.Tight)})

	case mdast.NodeCodeBlock:
		if !node.Fenced {
			return nil
		}
		attrs := []nodeAttr{{"fence", strconv.Quote(strings.Repeat(string(node.FenceChar), node.FenceLength))}}
		if node.Info != "" {
			attrs = append(attrs, nodeAttr{"info", strconv.Quote(node.Info)})
		}
		return attrs

	case mdast.NodeHTMLBlock:
		return []nodeAttr{{"type", strconv.Itoa(node.HTMLBlockType)}}

	case mdast.NodeLink, mdast.NodeImage:
		attrs := []nodeAttr{{"destination", strconv.Quote(node.Destination)}}
		if node.Title != "" {
			attrs = append(attrs, nodeAttr{"title", strconv.Quote(node.Title)})
		}
		return attrs

	default:
		return nil
	}
}

func nodeLiteral(node *mdast.Node) (string, bool) {
	switch node.Kind {
	case mdast.NodeText, mdast.NodeCode, mdast.NodeHTML, mdast.NodeCodeBlock, mdast.NodeHTMLBlock:
		return node.Literal, true
	default:
		return "", false
	}
}

// quoteLiteral quotes s, shortening it to maxLiteralRunes runes.
func quoteLiteral(s string) string {
	if utf8.RuneCountInString(s) <= maxLiteralRunes {
		return strconv.Quote(s)
	}

	runes := []rune(s)
	return strconv.Quote(string(runes[:maxLiteralRunes])+"…")
}
