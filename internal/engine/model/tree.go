package model

import (
	"fmt"

	"github.com/Faultbox/gizmo/pkg/math"
)

// Tree is an arena of nodes addressed by NodeID. Nodes are never removed,
// so ids stay valid for the life of the tree.
type Tree struct {
	nodes []Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends a node under parent (NoNode for a root) and returns its id.
func (t *Tree) Add(name string, parent NodeID, transform math.Mat4) (NodeID, error) {
	if parent != NoNode && !t.Valid(parent) {
		return NoNode, fmt.Errorf("add %q: %w: %d", name, ErrInvalidParent, parent)
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Name:      name,
		Transform: transform,
		FrameDown: FrameOf(transform),
		Color:     math.Vec3{X: 0.7, Y: 0.7, Z: 0.7},
		Parent:    parent,
	})
	if parent != NoNode {
		p := &t.nodes[parent]
		p.Children = append(p.Children, id)
	}
	return id, nil
}

// Valid reports whether id addresses a node.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node for id, or nil. The pointer is invalidated by Add.
func (t *Tree) Node(id NodeID) *Node {
	if !t.Valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns the ids of nodes without a parent, in insertion order.
func (t *Tree) Roots() []NodeID {
	var roots []NodeID
	for i := range t.nodes {
		if t.nodes[i].Parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// Find returns the first node with the given name.
func (t *Tree) Find(name string) (NodeID, bool) {
	for i := range t.nodes {
		if t.nodes[i].Name == name {
			return NodeID(i), true
		}
	}
	return NoNode, false
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	if !t.Valid(id) {
		return
	}
	if !fn(id, &t.nodes[id]) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, fn)
	}
}

// WalkAll visits every root and its descendants.
func (t *Tree) WalkAll(fn func(id NodeID, n *Node) bool) {
	for _, r := range t.Roots() {
		t.Walk(r, fn)
	}
}

// CaptureFrames snapshots FrameDown from Transform for id and every
// descendant.
func (t *Tree) CaptureFrames(id NodeID) {
	t.Walk(id, func(_ NodeID, n *Node) bool {
		n.FrameDown = FrameOf(n.Transform)
		return true
	})
}
