package model

import (
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// boxFaces lists each face of a unit cube as its outward normal and the
// two in-plane axes spanning it.
var boxFaces = [6][3]math.Vec3{
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

// NewBox builds a flat-shaded box spanning corners lo and hi.
func NewBox(lo, hi math.Vec3) *Mesh {
	bounds := picking.NewAABB(lo, hi)
	center := bounds.Min.Add(bounds.Max).Scale(0.5)
	half := bounds.Max.Sub(bounds.Min).Scale(0.5)

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(mesh.Vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			local := n.Add(u.Scale(c[0])).Add(v.Scale(c[1]))
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: center.Add(local.Mul(half)),
				Normal:   n,
			})
		}
		// counter-clockwise seen from outside
		if u.Cross(v).Dot(n) > 0 {
			mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
		} else {
			mesh.Indices = append(mesh.Indices, base, base+2, base+1, base, base+3, base+2)
		}
	}
	mesh.Bounds = ComputeBounds(mesh.Vertices)
	return mesh
}

// ComputeBounds returns the bounding box of the vertex positions.
func ComputeBounds(vertices []Vertex) picking.AABB {
	if len(vertices) == 0 {
		return picking.AABB{}
	}
	b := picking.AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		updateBounds(&b, v.Position)
	}
	return b
}

func updateBounds(b *picking.AABB, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
