package mdast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

func buildTestTree() *mdast.Node {
	// Document
	//   Header
	//     Text
	//   Paragraph
	//     Text
	//     Emph
	//       Text
	//   HorizontalRule
	doc := mdast.NewDocument()

	header := newNode(mdast.NodeHeader)
	mdast.AppendChild(header, mdast.NewText("title"))
	mdast.AppendChild(doc, header)

	para := newNode(mdast.NodeParagraph)
	mdast.AppendChild(para, mdast.NewText("plain"))

	emph := newNode(mdast.NodeEmph)
	mdast.AppendChild(emph, mdast.NewText("stressed"))
	mdast.AppendChild(para, emph)

	mdast.AppendChild(doc, para)
	mdast.AppendChild(doc, newNode(mdast.NodeHorizontalRule))

	return doc
}

type step struct {
	kind     mdast.NodeKind
	entering bool
}

func TestWalker_Events(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var got []step
	for node, entering := range mdast.Events(doc) {
		got = append(got, step{node.Kind, entering})
	}

	expected := []step{
		{mdast.NodeDocument, true},
		{mdast.NodeHeader, true},
		{mdast.NodeText, true},
		{mdast.NodeHeader, false},
		{mdast.NodeParagraph, true},
		{mdast.NodeText, true},
		{mdast.NodeEmph, true},
		{mdast.NodeText, true},
		{mdast.NodeEmph, false},
		{mdast.NodeParagraph, false},
		{mdast.NodeHorizontalRule, true},
		{mdast.NodeDocument, false},
	}

	if len(got) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestWalker_EmptyContainer(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()

	var got []step
	for node, entering := range mdast.Events(doc) {
		got = append(got, step{node.Kind, entering})
	}

	if len(got) != 2 || !got[0].entering || got[1].entering {
		t.Errorf("expected enter and exit for empty document, got %v", got)
	}
}

func TestWalker_Subtree(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	para := doc.FirstChild.Next

	count := 0
	for node := range mdast.All(para) {
		if node == doc.LastChild {
			t.Fatal("walk escaped the subtree root")
		}
		count++
	}

	if count != 4 {
		t.Errorf("expected 4 nodes in paragraph subtree, got %d", count)
	}
}

func TestWalker_ResumeAt(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	walker := mdast.NewWalker(doc)

	var visited []mdast.NodeKind
	for {
		event, ok := walker.Next()
		if !ok {
			break
		}
		if !event.Entering {
			continue
		}
		visited = append(visited, event.Node.Kind)

		// Skip the paragraph's content and continue after it.
		if event.Node.Kind == mdast.NodeParagraph {
			walker.ResumeAt(event.Node, false)
		}
	}

	expected := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeader,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeHorizontalRule,
	}
	if len(visited) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("node %d: expected %s, got %s", i, expected[i], visited[i])
		}
	}
}

func TestWalker_SpliceDuringWalk(t *testing.T) {
	t.Parallel()

	para := newNode(mdast.NodeParagraph)
	first := mdast.NewText("a")
	second := mdast.NewText("b")
	mdast.AppendChild(para, first)
	mdast.AppendChild(para, second)

	walker := mdast.NewWalker(para)
	var texts []string
	for {
		event, ok := walker.Next()
		if !ok {
			break
		}
		if event.Node == first {
			strong := newNode(mdast.NodeStrong)
			mdast.InsertAfter(first, strong)
			mdast.AppendChild(strong, first)
			walker.ResumeAt(strong, false)
			continue
		}
		if event.Node.Kind == mdast.NodeText {
			texts = append(texts, event.Node.Literal)
		}
	}

	if len(texts) != 1 || texts[0] != "b" {
		t.Errorf("expected walk to continue at b, got %v", texts)
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	stop := errors.New("stop")

	count := 0
	err := mdast.Walk(doc, func(*mdast.Node) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 visits, got %d", count)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(*mdast.Node) error {
		called = true
		return nil
	})

	if err != nil || called {
		t.Error("expected no visits for nil root")
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var order []string
	err := mdast.WalkWithContext(doc,
		func(n *mdast.Node) error {
			order = append(order, "enter:"+n.Kind.String())
			return nil
		},
		func(n *mdast.Node) error {
			if n.Kind == mdast.NodeEmph {
				order = append(order, "leave:"+n.Kind.String())
			}
			return nil
		},
	)
	if err != nil {
		t.Fatalf("WalkWithContext returned error: %v", err)
	}

	if order[len(order)-2] != "leave:emph" {
		t.Errorf("expected emph leave before rule enter, got %v", order)
	}
}

func TestWalkBlocksAndInlines(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	blocks, inlines := 0, 0
	_ = mdast.WalkBlocks(doc, func(*mdast.Node) error { blocks++; return nil })
	_ = mdast.WalkInlines(doc, func(*mdast.Node) error { inlines++; return nil })

	if blocks != 4 {
		t.Errorf("expected 4 blocks, got %d", blocks)
	}
	if inlines != 4 {
		t.Errorf("expected 4 inlines, got %d", inlines)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	texts := mdast.FindByKind(doc, mdast.NodeText)
	if len(texts) != 3 {
		t.Errorf("expected 3 text nodes, got %d", len(texts))
	}

	first := mdast.FindFirst(doc, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeText && n.Parent.Kind == mdast.NodeEmph
	})
	if first == nil || first.Literal != "stressed" {
		t.Errorf("expected emphasized text, got %v", first)
	}

	if mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeImage }) != nil {
		t.Error("expected no image")
	}
}
