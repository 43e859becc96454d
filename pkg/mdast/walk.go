package mdast

import "iter"

// Event is one step of a depth-first walk.
type Event struct {
	Node     *Node
	Entering bool
}

// Walker produces enter/exit events over a subtree in document order.
// Container nodes produce an entering and an exiting event with their
// descendants in between; other nodes produce a single entering event.
//
// The walker stays valid when the caller splices nodes around the current
// node, provided it calls ResumeAt with the position to continue from.
type Walker struct {
	root     *Node
	current  *Node
	entering bool
}

// NewWalker returns a walker positioned before root.
func NewWalker(root *Node) *Walker {
	return &Walker{root: root, current: root, entering: true}
}

// Next returns the next event. The second result is false once the walk
// has finished.
func (w *Walker) Next() (Event, bool) {
	cur := w.current
	entering := w.entering
	if cur == nil {
		return Event{}, false
	}

	container := cur.IsContainer()

	switch {
	case entering && container:
		if cur.FirstChild != nil {
			w.current = cur.FirstChild
			w.entering = true
		} else {
			w.entering = false
		}
	case cur == w.root:
		w.current = nil
	case cur.Next == nil:
		w.current = cur.Parent
		w.entering = false
	default:
		w.current = cur.Next
		w.entering = true
	}

	return Event{Node: cur, Entering: entering}, true
}

// ResumeAt repositions the walker so that the next event is (node, entering).
func (w *Walker) ResumeAt(node *Node, entering bool) {
	w.current = node
	w.entering = entering
}

// Events returns the walk over root as an iterator of (node, entering) pairs.
// Each call starts a fresh walk.
func Events(root *Node) iter.Seq2[*Node, bool] {
	return func(yield func(*Node, bool) bool) {
		if root == nil {
			return
		}
		walker := NewWalker(root)
		for {
			event, ok := walker.Next()
			if !ok || !yield(event.Node, event.Entering) {
				return
			}
		}
	}
}

// All returns every node under root, root included, in pre-order.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node, entering := range Events(root) {
			if entering && !yield(node) {
				return
			}
		}
	}
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	for node := range All(root) {
		if err := walkFunc(node); err != nil {
			return err
		}
	}
	return nil
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Leave is called for every node, containers and leaves alike, after its
// children. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// WalkBlocks walks only block-level nodes.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if n.IsBlock() {
			return fn(n)
		}
		return nil
	})
}

// WalkInlines walks only inline-level nodes.
func WalkInlines(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if n.IsInline() {
			return fn(n)
		}
		return nil
	})
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	for node := range All(root) {
		if predicate(node) {
			result = append(result, node)
		}
	}
	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for node := range All(root) {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
