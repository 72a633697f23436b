// Package model holds the editable scene: a tree of nodes, each with a
// world transform, an optional mesh and the frame captured at the start of
// an interaction gesture.
package model

import (
	"errors"

	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

var (
	ErrInvalidNode   = errors.New("invalid node")
	ErrInvalidParent = errors.New("invalid parent node")
)

// Vertex represents a mesh vertex with position and normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds triangle data ready for GPU upload, in the node's local space.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   picking.AABB
}

// NodeID addresses a node in a Tree.
type NodeID int

// NoNode is the parent of root nodes and the result of failed lookups.
const NoNode NodeID = -1

// Frame is a decomposed reference frame: rotation, position and uniform
// scale. Nodes snapshot one at mouse-down so a whole drag is computed
// from a fixed base.
type Frame struct {
	Orientation math.Quat
	Origin      math.Vec3
	Scale       float32
}

// FrameOf decomposes an affine rotate+uniform-scale+translate matrix.
func FrameOf(m math.Mat4) Frame {
	return Frame{
		Orientation: math.QuatFromMat4(m),
		Origin:      m.Origin(),
		Scale:       m.ScaleFactor(),
	}
}

// Matrix rebuilds the transform the frame was taken from.
func (f Frame) Matrix() math.Mat4 {
	m := math.TranslateV(f.Origin)
	f.Orientation.SetMatrix(&m, f.Scale)
	return m
}

// Node is one element of the tree. Transform is in world space; children
// are not implicitly relative to their parent, propagation is explicit.
type Node struct {
	Name      string
	Transform math.Mat4
	FrameDown Frame
	Mesh      *Mesh
	Color     math.Vec3
	Parent    NodeID
	Children  []NodeID
}
