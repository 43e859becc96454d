// Package mdast defines the CommonMark document tree: nodes, structural
// operations and walkers.
package mdast

// NodeKind classifies the type of a document tree node.
type NodeKind uint16

// Node kinds for block-level and inline-level CommonMark elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeBlockQuote
	NodeList
	NodeItem
	NodeParagraph
	NodeHeader
	NodeCodeBlock
	NodeHTMLBlock
	NodeHorizontalRule

	// Inline-level nodes.
	NodeText
	NodeSoftBreak
	NodeHardBreak
	NodeEmph
	NodeStrong
	NodeHTML
	NodeLink
	NodeImage
	NodeCode
)

var kindNames = [...]string{
	NodeDocument:       "document",
	NodeBlockQuote:     "block_quote",
	NodeList:           "list",
	NodeItem:           "item",
	NodeParagraph:      "paragraph",
	NodeHeader:         "header",
	NodeCodeBlock:      "code_block",
	NodeHTMLBlock:      "html_block",
	NodeHorizontalRule: "horizontal_rule",
	NodeText:           "text",
	NodeSoftBreak:      "softbreak",
	NodeHardBreak:      "hardbreak",
	NodeEmph:           "emph",
	NodeStrong:         "strong",
	NodeHTML:           "html",
	NodeLink:           "link",
	NodeImage:          "image",
	NodeCode:           "code",
}

// String returns the snake_case name of the kind, as used by the XML format.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsBlock returns true for block-level kinds.
func (k NodeKind) IsBlock() bool {
	return k <= NodeHorizontalRule
}

// IsInline returns true for inline-level kinds.
func (k NodeKind) IsInline() bool {
	return k >= NodeText && k <= NodeCode
}

// IsContainer reports whether nodes of this kind may have children.
// A walker emits both an entering and an exiting event for containers,
// and only an entering event for everything else.
func (k NodeKind) IsContainer() bool {
	switch k {
	case NodeDocument, NodeBlockQuote, NodeList, NodeItem, NodeParagraph,
		NodeHeader, NodeEmph, NodeStrong, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Pos is the 1-based source span the node was parsed from.
	// Inline nodes carry the zero value.
	Pos SourcePos

	// Literal holds the text of Text, Code, HTML, HTMLBlock and CodeBlock nodes.
	Literal string

	// Level is the header level (1-6).
	Level int

	// List is set on List and Item nodes.
	List *ListData

	// Code block fields. Info is the unescaped info string of a fenced block.
	Fenced      bool
	FenceChar   byte
	FenceLength int
	FenceOffset int
	Info        string

	// HTMLBlockType is the HTML block start condition (1-7).
	HTMLBlockType int

	// Link and image fields.
	Destination string
	Title       string

	// Parse state. Open is true while the block can accept lines.
	Open          bool
	LastLineBlank bool

	// content accumulates raw lines while a block is open; it is consumed
	// by finalization or by the inline parser.
	content []byte
}

// Content returns the raw text accumulated while the block was open.
func (n *Node) Content() string {
	return string(n.content)
}

// AppendContent appends raw text to the block.
func (n *Node) AppendContent(parts ...string) {
	for _, part := range parts {
		n.content = append(n.content, part...)
	}
}

// SetContent replaces the raw text of the block.
func (n *Node) SetContent(s string) {
	n.content = append(n.content[:0], s...)
}

// ClearContent releases the raw text once it has been consumed.
func (n *Node) ClearContent() {
	n.content = nil
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind.IsBlock()
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind.IsInline()
}

// IsContainer returns true if this node's kind may hold children.
func (n *Node) IsContainer() bool {
	return n.Kind.IsContainer()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the concatenated literal text of all Text and Code
// descendants. Breaks contribute a single newline.
func (n *Node) Text() string {
	var buf []byte
	for node := range All(n) {
		switch node.Kind {
		case NodeText, NodeCode:
			buf = append(buf, node.Literal...)
		case NodeSoftBreak, NodeHardBreak:
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
