// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/pkg/math"
)

// BBoxEdgeCount is the number of edges of a box wireframe.
const BBoxEdgeCount = 12

// bboxEdges indexes the corners of a box, corner i having bit 0 set for
// max X, bit 1 for max Y and bit 2 for max Z.
var bboxEdges = [BBoxEdgeCount][2]int{
	// Bottom face (4 edges)
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face (4 edges)
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges (4 edges)
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BBoxEdges returns the wireframe edges of b after transforming it by m.
func BBoxEdges(b picking.AABB, m math.Mat4) [BBoxEdgeCount][2]math.Vec3 {
	var corners [8]math.Vec3
	for i := range corners {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners[i] = m.TransformPoint(c)
	}

	var edges [BBoxEdgeCount][2]math.Vec3
	for i, e := range bboxEdges {
		edges[i] = [2]math.Vec3{corners[e[0]], corners[e[1]]}
	}
	return edges
}

// BBoxStrokes projects the wireframe of b, transformed by m, into screen
// strokes. Edges with an end behind the eye are dropped.
func BBoxStrokes(b picking.AABB, m math.Mat4, view picking.View, color math.Vec3) []widget.Stroke {
	if b.Empty() {
		return nil
	}
	fullview := view.Fullview()
	strokes := make([]widget.Stroke, 0, BBoxEdgeCount)
	for _, e := range BBoxEdges(b, m) {
		c0, c1 := fullview.MulVec4(e[0].Vec4(1)), fullview.MulVec4(e[1].Vec4(1))
		if c0.W <= 0 || c1.W <= 0 {
			continue
		}
		n0, _ := c0.PerspectiveDivide()
		n1, _ := c1.PerspectiveDivide()
		p0 := picking.NDCToPixel(n0.XY(), view.Viewport)
		p1 := picking.NDCToPixel(n1.XY(), view.Viewport)
		strokes = append(strokes, widget.Stroke{Points: []math.Vec2{p0, p1}, Color: color, Width: 1})
	}
	return strokes
}
