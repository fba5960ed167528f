package dom

import (
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
)

// Node is a concrete Element whose bounds are written by the layout pass.
type Node struct {
	ID string

	doc    *Document
	parent *Node
	bounds geometry.Rect
	hidden bool
}

// NewNode creates a node attached to the document under parent (nil for a root).
func (d *Document) NewNode(id string, parent *Node) *Node {
	n := &Node{ID: id, doc: d, parent: parent}
	d.nodes = append(d.nodes, n)
	return n
}

// Bounds returns the last laid-out rectangle.
func (n *Node) Bounds() geometry.Rect {
	return n.bounds
}

// SetBounds records a layout measurement.
func (n *Node) SetBounds(r geometry.Rect) {
	n.bounds = r
}

// SetHidden excludes the node from hit testing.
func (n *Node) SetHidden(hidden bool) {
	n.hidden = hidden
}

// Visible reports whether the node and all its ancestors are shown.
func (n *Node) Visible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.hidden {
			return false
		}
	}
	return true
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Contains reports whether target is n or a descendant of n.
func (n *Node) Contains(target Element) bool {
	other, ok := target.(*Node)
	if !ok || other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Focus makes n the document's focused element.
func (n *Node) Focus() {
	if n.doc != nil {
		n.doc.SetFocus(n)
	}
}

var _ Element = (*Node)(nil)
