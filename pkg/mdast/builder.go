package mdast

// NewNode creates a new node of the specified kind spanning pos.
// The node has no parent, siblings or children.
func NewNode(kind NodeKind, pos SourcePos) *Node {
	return &Node{
		Kind: kind,
		Pos:  pos,
	}
}

// NewDocument creates a new document root node starting at line 1, column 1.
func NewDocument() *Node {
	return NewNode(NodeDocument, SourcePos{StartLine: 1, StartColumn: 1})
}

// NewText creates a detached Text node holding literal.
func NewText(literal string) *Node {
	node := NewNode(NodeText, SourcePos{})
	node.Literal = literal
	return node
}

// AppendChild appends a child node to a parent.
// The child is unlinked from its previous position first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	Unlink(child)

	child.Parent = parent
	child.Prev = parent.LastChild

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	Unlink(child)

	child.Parent = parent
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}

	parent.FirstChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil || sibling == newNode {
		return
	}

	Unlink(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// InsertAfter inserts newNode after sibling.
// sibling must have a parent.
func InsertAfter(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil || sibling == newNode {
		return
	}

	Unlink(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling
	newNode.Next = sibling.Next

	if sibling.Next != nil {
		sibling.Next.Prev = newNode
	} else {
		parent.LastChild = newNode
	}

	sibling.Next = newNode
}

// Unlink detaches node from its parent and siblings.
// The node keeps its own children and can be attached elsewhere.
func Unlink(node *Node) {
	if node == nil {
		return
	}

	if node.Prev != nil {
		node.Prev.Next = node.Next
	} else if node.Parent != nil {
		node.Parent.FirstChild = node.Next
	}

	if node.Next != nil {
		node.Next.Prev = node.Prev
	} else if node.Parent != nil {
		node.Parent.LastChild = node.Prev
	}

	node.Parent = nil
	node.Prev = nil
	node.Next = nil
}

// RemoveChild removes a child from parent. It is a no-op if child
// belongs to a different parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	Unlink(child)
}

// ReplaceChild puts newChild in oldChild's position and detaches oldChild.
func ReplaceChild(oldChild, newChild *Node) {
	if oldChild == nil || newChild == nil || oldChild.Parent == nil || oldChild == newChild {
		return
	}

	InsertAfter(oldChild, newChild)
	Unlink(oldChild)
}
