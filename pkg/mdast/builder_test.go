package mdast_test

import (
	"testing"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

func newNode(kind mdast.NodeKind) *mdast.Node {
	return mdast.NewNode(kind, mdast.SourcePos{})
}

func assertConsistent(t *testing.T, parent *mdast.Node) {
	t.Helper()

	var prev *mdast.Node
	for child := parent.FirstChild; child != nil; child = child.Next {
		if child.Parent != parent {
			t.Errorf("child %s has wrong parent", child.Kind)
		}
		if child.Prev != prev {
			t.Errorf("child %s has wrong prev link", child.Kind)
		}
		prev = child
	}
	if parent.LastChild != prev {
		t.Errorf("last child mismatch on %s", parent.Kind)
	}
}

func TestNewNode(t *testing.T) {
	t.Parallel()

	pos := mdast.SourcePos{StartLine: 2, StartColumn: 3}
	node := mdast.NewNode(mdast.NodeParagraph, pos)

	if node.Kind != mdast.NodeParagraph {
		t.Errorf("expected paragraph, got %s", node.Kind)
	}
	if node.Pos != pos {
		t.Errorf("expected pos %v, got %v", pos, node.Pos)
	}
	if node.Parent != nil || node.FirstChild != nil || node.LastChild != nil {
		t.Error("expected nil parent and children")
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()

	if doc.Kind != mdast.NodeDocument {
		t.Errorf("expected document, got %s", doc.Kind)
	}
	if doc.Pos.StartLine != 1 || doc.Pos.StartColumn != 1 {
		t.Errorf("expected document to start at 1:1, got %v", doc.Pos)
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	child1 := newNode(mdast.NodeParagraph)
	child2 := newNode(mdast.NodeHeader)

	mdast.AppendChild(parent, child1)

	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}

	mdast.AppendChild(parent, child2)

	if parent.FirstChild != child1 || parent.LastChild != child2 {
		t.Error("children not in expected order")
	}
	assertConsistent(t, parent)
}

func TestPrependChild(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	child1 := newNode(mdast.NodeParagraph)
	child2 := newNode(mdast.NodeHeader)

	mdast.PrependChild(parent, child1)
	mdast.PrependChild(parent, child2)

	if parent.FirstChild != child2 || parent.LastChild != child1 {
		t.Error("children not in expected order")
	}
	assertConsistent(t, parent)
}

func TestInsertBefore(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	first := newNode(mdast.NodeParagraph)
	last := newNode(mdast.NodeHorizontalRule)
	middle := newNode(mdast.NodeHeader)

	mdast.AppendChild(parent, first)
	mdast.AppendChild(parent, last)
	mdast.InsertBefore(last, middle)

	got := parent.Children()
	if len(got) != 3 || got[1] != middle {
		t.Fatalf("expected middle inserted second, got %d children", len(got))
	}
	assertConsistent(t, parent)

	head := newNode(mdast.NodeCodeBlock)
	mdast.InsertBefore(first, head)
	if parent.FirstChild != head {
		t.Error("expected head to become first child")
	}
	assertConsistent(t, parent)
}

func TestInsertAfter(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	first := newNode(mdast.NodeParagraph)
	second := newNode(mdast.NodeHeader)

	mdast.AppendChild(parent, first)
	mdast.InsertAfter(first, second)

	if parent.LastChild != second || first.Next != second {
		t.Error("expected second after first")
	}
	assertConsistent(t, parent)
}

func TestInsertAfter_DetachedSibling(t *testing.T) {
	t.Parallel()

	sibling := newNode(mdast.NodeText)
	node := newNode(mdast.NodeText)

	mdast.InsertAfter(sibling, node)

	if sibling.Next != nil || node.Prev != nil {
		t.Error("expected no links for a detached sibling")
	}
}

func TestUnlink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
	}{
		{"first", 0},
		{"middle", 1},
		{"last", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent := newNode(mdast.NodeParagraph)
			children := []*mdast.Node{
				mdast.NewText("a"),
				mdast.NewText("b"),
				mdast.NewText("c"),
			}
			for _, child := range children {
				mdast.AppendChild(parent, child)
			}

			removed := children[tt.index]
			mdast.Unlink(removed)

			if removed.Parent != nil || removed.Prev != nil || removed.Next != nil {
				t.Error("expected unlinked node to have no links")
			}
			if parent.ChildCount() != 2 {
				t.Errorf("expected 2 children, got %d", parent.ChildCount())
			}
			assertConsistent(t, parent)
		})
	}
}

func TestUnlink_KeepsChildren(t *testing.T) {
	t.Parallel()

	para := newNode(mdast.NodeParagraph)
	emph := newNode(mdast.NodeEmph)
	mdast.AppendChild(emph, mdast.NewText("x"))
	mdast.AppendChild(para, emph)

	mdast.Unlink(emph)

	if emph.ChildCount() != 1 {
		t.Errorf("expected unlinked node to keep its child, got %d", emph.ChildCount())
	}

	other := newNode(mdast.NodeHeader)
	mdast.AppendChild(other, emph)
	if other.FirstChild != emph || para.FirstChild != nil {
		t.Error("expected node to be reattachable")
	}
}

func TestRemoveChild_WrongParent(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	other := newNode(mdast.NodeDocument)
	child := newNode(mdast.NodeParagraph)
	mdast.AppendChild(parent, child)

	mdast.RemoveChild(other, child)

	if child.Parent != parent {
		t.Error("RemoveChild with wrong parent should be a no-op")
	}

	mdast.RemoveChild(parent, child)
	if parent.FirstChild != nil || child.Parent != nil {
		t.Error("expected child removed")
	}
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()

	parent := newNode(mdast.NodeDocument)
	first := newNode(mdast.NodeParagraph)
	old := newNode(mdast.NodeParagraph)
	last := newNode(mdast.NodeHorizontalRule)
	mdast.AppendChild(parent, first)
	mdast.AppendChild(parent, old)
	mdast.AppendChild(parent, last)

	replacement := newNode(mdast.NodeHeader)
	mdast.ReplaceChild(old, replacement)

	if first.Next != replacement || replacement.Next != last {
		t.Error("replacement not spliced into position")
	}
	if old.Parent != nil {
		t.Error("old child should be detached")
	}
	assertConsistent(t, parent)
}

func TestAppendChild_MovesFromPreviousParent(t *testing.T) {
	t.Parallel()

	parent1 := newNode(mdast.NodeDocument)
	parent2 := newNode(mdast.NodeDocument)
	child := newNode(mdast.NodeParagraph)

	mdast.AppendChild(parent1, child)
	mdast.AppendChild(parent2, child)

	if parent1.FirstChild != nil {
		t.Error("child should be removed from parent1")
	}
	if parent2.FirstChild != child || child.Parent != parent2 {
		t.Error("child should be in parent2")
	}
}
