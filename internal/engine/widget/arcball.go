// Package widget implements mouse-driven 3D manipulators: a plane-constrained
// point mover, a quaternion arcball, and framers combining the two to edit
// a reference frame or a hierarchy of nodes.
//
// Mouse coordinates are pixels with the origin at the lower left (OpenGL
// convention). Widgets never own the matrices or points they edit; they hold
// a borrowed handle for the length of a gesture: Down, any number of Drag
// calls, Up.
package widget

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// DefaultProximity is the pixel radius for hit tests against points.
const DefaultProximity float32 = 12

const (
	// ballClamp keeps BallV inside the silhouette, where the sphere height
	// has an infinite derivative.
	ballClamp = 0.97
	// minAxisLenSq is the squared length of cross(v2, v1) below which a
	// drag step is treated as no motion.
	minAxisLenSq = 1e-6
	// noConstraint marks an arcball without a locked axis.
	noConstraint = -1
)

// Use selects what an Arcball rotates, which fixes the order in which a
// drag rotation composes with the orientation at mouse-down.
type Use int

const (
	// UseCamera rotates a camera's view rotation: qq = qstart * qrot, the
	// drag applied in the previous frame's local space.
	UseCamera Use = iota
	// UseBody rotates an object: qq = qrot * qstart, the drag applied in
	// world space.
	UseBody
)

// String returns the mode name.
func (u Use) String() string {
	switch u {
	case UseCamera:
		return "camera"
	case UseBody:
		return "body"
	default:
		return "unknown"
	}
}

// Arcball is a quaternion virtual trackball. It maps mouse motion over a
// screen-space circle to a rotation and writes the rotation, with the
// uniform scale captured at mouse-down, into the upper 3x3 block of a
// borrowed matrix.
type Arcball struct {
	use       Use
	m         *math.Mat4
	center    math.Vec2
	radius    float32
	scale     float32
	proximity float32

	qstart math.Quat
	qq     math.Quat

	mouseDown math.Vec2
	mouseMove math.Vec2
	dragging  bool

	constrainIndex int
	constrainAxis  math.Vec3
}

// NewArcball returns an unbound camera arcball.
func NewArcball() *Arcball {
	return &Arcball{
		use:            UseCamera,
		scale:          1,
		proximity:      DefaultProximity,
		qstart:         math.QuatIdentity(),
		qq:             math.QuatIdentity(),
		constrainIndex: noConstraint,
	}
}

// SetBody binds the arcball to an object matrix; Drag updates *m.
// The screen center is left unchanged.
func (a *Arcball) SetBody(m *math.Mat4, radius float32) {
	a.use = UseBody
	a.m = m
	if m != nil {
		a.scale = m.ScaleFactor()
	}
	a.radius = radius
}

// SetBodyDetached sets up a body arcball that tracks m's scale but never
// writes to it. Rotations are read from the value Drag returns.
func (a *Arcball) SetBodyDetached(m math.Mat4, radius float32) {
	a.use = UseBody
	a.m = nil
	a.scale = m.ScaleFactor()
	a.radius = radius
}

// SetCamera binds the arcball to a camera rotation matrix.
func (a *Arcball) SetCamera(m *math.Mat4, center math.Vec2, radius float32) {
	a.use = UseCamera
	a.m = m
	if m != nil {
		a.scale = m.ScaleFactor()
	}
	a.radius = radius
	a.center = center
}

// SetCenter moves the screen-space circle.
func (a *Arcball) SetCenter(center math.Vec2) {
	a.center = center
}

// SetCenterRadius moves and resizes the screen-space circle.
func (a *Arcball) SetCenterRadius(center math.Vec2, radius float32) {
	a.center = center
	a.radius = radius
}

// SetProximity sets the pixel radius used by MouseOver.
func (a *Arcball) SetProximity(p float32) {
	a.proximity = p
}

// Unbind drops the borrowed matrix. The arcball keeps its circle.
func (a *Arcball) Unbind() {
	a.m = nil
}

// MouseOver reports whether (x, y) is near the circle's center.
func (a *Arcball) MouseOver(x, y int) bool {
	return picking.MouseOver(float32(x), float32(y), a.center, a.proximity)
}

// Hit reports whether (x, y) lies inside the circle.
func (a *Arcball) Hit(x, y int) bool {
	d := math.Vec2{X: float32(x), Y: float32(y)}.Sub(a.center)
	return d.LengthSq() < a.radius*a.radius
}

// BallV maps a pixel to a unit vector on the sphere of pixel radius
// centered on the circle. Offsets are clamped to 97% of the radius.
func (a *Arcball) BallV(mouse math.Vec2) math.Vec3 {
	dif := mouse.Sub(a.center)
	if l := dif.Length(); l > ballClamp*a.radius {
		dif = dif.Scale(ballClamp * a.radius / l)
	}
	sq := a.radius*a.radius - dif.LengthSq()
	return math.Vec3{X: dif.X, Y: dif.Y, Z: math32.Sqrt(math32.Max(sq, 0))}.Normalize()
}

// ConstrainToAxis projects the unit sphere point loose onto the great
// circle perpendicular to axis, preferring the hemisphere facing the
// viewer (Shoemake).
func ConstrainToAxis(loose, axis math.Vec3) math.Vec3 {
	d := axis.Dot(loose)
	if p, ok := loose.Sub(axis.Scale(d)).TryNormalize(); ok {
		if p.Z > 0 {
			return p
		}
		return p.Negate()
	}
	if p, ok := (math.Vec3{X: -axis.Y, Y: axis.X}).TryNormalize(); ok {
		return p
	}
	return math.Vec3{X: 1}
}

// SetNearestAxis picks the axis whose perpendicular plane best contains
// the ball vector at (x, y). Candidates are the columns of downMat for a
// body arcball and the world axes for a camera arcball.
func (a *Arcball) SetNearestAxis(x, y int, downMat *math.Mat4) {
	a.constrainIndex = noConstraint
	basis := math.Identity()
	if a.use == UseBody && downMat != nil {
		basis = *downMat
	}
	p := a.BallV(math.Vec2{X: float32(x), Y: float32(y)})
	dotMax := float32(-1)
	for i := 0; i < 3; i++ {
		axis := basis.Col(i).Vec3().Normalize()
		onPlane := ConstrainToAxis(p, axis)
		if d := math32.Abs(onPlane.Dot(p)); d > dotMax {
			dotMax = d
			a.constrainIndex = i
			a.constrainAxis = axis
		}
	}
}

// Down starts a gesture at (x, y). qstart and the scale are taken from
// override if non-nil, else from the bound matrix. With constrain set the
// rotation is locked to the nearest axis.
func (a *Arcball) Down(x, y int, constrain bool, override *math.Mat4) {
	a.constrainIndex = noConstraint
	a.mouseDown = math.Vec2{X: float32(x), Y: float32(y)}
	a.mouseMove = a.mouseDown
	mat := override
	if mat == nil {
		mat = a.m
	}
	if mat == nil {
		return
	}
	a.qstart = math.QuatFromMat4(*mat)
	a.scale = mat.ScaleFactor()
	if constrain {
		a.SetNearestAxis(x, y, mat)
	}
}

// Drag rotates by the arc from the mouse-down point to (x, y) and returns
// that incremental rotation; identity if the motion is negligible, in
// which case the previous orientation is kept.
func (a *Arcball) Drag(x, y int) math.Quat {
	a.dragging = true
	a.mouseMove = math.Vec2{X: float32(x), Y: float32(y)}
	v1, v2 := a.BallV(a.mouseDown), a.BallV(a.mouseMove)
	if a.constrainIndex != noConstraint {
		v1 = ConstrainToAxis(v1, a.constrainAxis)
		v2 = ConstrainToAxis(v2, a.constrainAxis)
	}
	qrot := math.QuatIdentity()
	axis := v2.Cross(v1)
	if axis.LengthSq() <= minAxisLenSq {
		return qrot
	}
	qrot = math.QuatFromAxisAngle(axis, math32.Acos(clamp(v1.Dot(v2), -1, 1)))
	if a.use == UseCamera {
		a.qq = a.qstart.Mul(qrot)
	} else {
		a.qq = qrot.Mul(a.qstart)
	}
	if a.m != nil {
		a.qq.SetMatrix(a.m, a.scale)
	}
	return qrot
}

// Up ends the gesture. The bound matrix and qq are left as they are.
func (a *Arcball) Up() {
	a.mouseDown = math.Vec2{}
	a.mouseMove = math.Vec2{}
	a.constrainIndex = noConstraint
	a.dragging = false
}

// Wheel scales the bound matrix's rotation block by 1.01 per forward tick
// and 0.99 per backward tick.
func (a *Arcball) Wheel(spin float32) {
	if a.m == nil || spin == 0 {
		return
	}
	if spin > 0 {
		a.scale *= 1.01
	} else {
		a.scale *= 0.99
	}
	if s := a.m.ScaleFactor(); s > 0 {
		a.m.Scale3x3(a.scale / s)
	}
}

// Matrix returns the bound matrix, or nil.
func (a *Arcball) Matrix() *math.Mat4 { return a.m }

// Q returns the orientation after the latest drag.
func (a *Arcball) Q() math.Quat { return a.qq }

// Center returns the circle center in pixels.
func (a *Arcball) Center() math.Vec2 { return a.center }

// Radius returns the circle radius in pixels.
func (a *Arcball) Radius() float32 { return a.radius }

// Scale returns the uniform scale applied on drag.
func (a *Arcball) Scale() float32 { return a.scale }

// Use returns the rotation mode.
func (a *Arcball) Use() Use { return a.use }

// Dragging reports whether Drag has been called since Down.
func (a *Arcball) Dragging() bool { return a.dragging }

// Constraint returns the locked axis index (0, 1, 2) and the axis, or
// false if rotation is free.
func (a *Arcball) Constraint() (int, math.Vec3, bool) {
	if a.constrainIndex == noConstraint {
		return noConstraint, math.Vec3{}, false
	}
	return a.constrainIndex, a.constrainAxis, true
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
