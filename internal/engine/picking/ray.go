// Package picking provides screen projection, ray casting and hit testing.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gizmo/pkg/math"
)

// parallelEps is the smallest |cos| between a line and a plane normal that
// still yields a usable intersection.
const parallelEps = 1e-6

// tangentEps separates a tangent line from a secant.
const tangentEps = 1.1920929e-7

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray mapped by m. The direction is renormalized, so
// distances along the result are in the target space.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction).Normalize(),
	}
}

// Plane is the set of points p with Normal·p + D = 0. The normal need not
// be unit length.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// PlaneThrough returns the plane with the given normal passing through p.
func PlaneThrough(normal, p math.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(p)}
}

// Distance returns the signed distance of p scaled by |Normal|.
func (pl Plane) Distance(p math.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// IntersectLine intersects the infinite line through p1 and p2 with the
// plane. ok is false if the line is (nearly) parallel to the plane.
func (pl Plane) IntersectLine(p1, p2 math.Vec3) (math.Vec3, bool) {
	axis := p2.Sub(p1)
	pdDot := axis.Dot(pl.Normal)
	if math32.Abs(pdDot) <= parallelEps*axis.Length()*pl.Normal.Length() {
		return math.Vec3{}, false
	}
	a := -pl.Distance(p1) / pdDot
	return p1.Add(axis.Scale(a)), true
}

// IntersectPlane intersects the ray with pl. Hits behind the origin are
// rejected.
func (r Ray) IntersectPlane(pl Plane) (t float32, ok bool) {
	pdDot := r.Direction.Dot(pl.Normal)
	if math32.Abs(pdDot) <= parallelEps*pl.Normal.Length() {
		return 0, false // Ray parallel to plane
	}
	t = -pl.Distance(r.Origin) / pdDot
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, handling swapped bounds.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y), Z: math32.Min(a.Z, b.Z)},
		Max: math.Vec3{X: math32.Max(a.X, b.X), Y: math32.Max(a.Y, b.Y), Z: math32.Max(a.Z, b.Z)},
	}
}

// Empty reports whether the box has no volume.
func (b AABB) Empty() bool {
	return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y || b.Min.Z >= b.Max.Z
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for i := 0; i < 3; i++ {
		o, d := r.Origin.Component(i), r.Direction.Component(i)
		lo, hi := box.Min.Component(i), box.Max.Component(i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// LineSphere intersects the line through ln1 and ln2 with a sphere. n is
// the number of intersections (0, 1 or 2); p1 is the one nearer ln1.
func LineSphere(ln1, ln2, center math.Vec3, radius float32) (n int, p1, p2 math.Vec3) {
	v, ok := ln2.Sub(ln1).TryNormalize()
	if !ok {
		return 0, math.Vec3{}, math.Vec3{}
	}
	q := ln1.Sub(center)
	vDot := v.Dot(q)
	sq := vDot*vDot - q.Dot(q) + radius*radius
	if sq < 0 {
		return 0, math.Vec3{}, math.Vec3{}
	}
	root := math32.Sqrt(sq)
	p1 = ln1.Add(v.Scale(-vDot - root))
	p2 = ln1.Add(v.Scale(-vDot + root))
	if root < tangentEps {
		return 1, p1, p2
	}
	return 2, p1, p2
}

// RaySphere returns the least positive distance along the ray (base, unit
// v) to the sphere, or -1 if the ray misses.
func RaySphere(base, v, center math.Vec3, radius float32) float32 {
	q := base.Sub(center)
	vDot := v.Dot(q)
	sq := vDot*vDot - q.Dot(q) + radius*radius
	if sq < 0 {
		return -1
	}
	root := math32.Sqrt(sq)
	if a := -vDot - root; a > 0 {
		return a
	}
	return -vDot + root
}

// ProjectToLine returns the point on line p1p2 nearest to p. A degenerate
// line yields p1.
func ProjectToLine(p, p1, p2 math.Vec3) math.Vec3 {
	delta := p2.Sub(p1)
	dd := delta.Dot(delta)
	if dd < math32.SmallestNonzeroFloat32 {
		return p1
	}
	alpha := delta.Dot(p.Sub(p1)) / dd
	return p1.Add(delta.Scale(alpha))
}

// FrontFacing reports whether vector v anchored at base points toward the
// eye of modelview.
func FrontFacing(base, v math.Vec3, modelview math.Mat4) bool {
	b := modelview.TransformPoint(base)
	return modelview.TransformDirection(v).Dot(b) < 0
}
