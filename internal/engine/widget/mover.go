package widget

import (
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// Anchor is a borrowed handle to a position owned by the caller.
type Anchor interface {
	Position() math.Vec3
	SetPosition(p math.Vec3)
}

// PointAnchor edits a free-standing point.
type PointAnchor struct {
	P *math.Vec3
}

// Position returns the point.
func (a PointAnchor) Position() math.Vec3 { return *a.P }

// SetPosition overwrites the point.
func (a PointAnchor) SetPosition(p math.Vec3) { *a.P = p }

// OriginAnchor edits the translation column of a matrix.
type OriginAnchor struct {
	M *math.Mat4
}

// Position returns the matrix origin.
func (a OriginAnchor) Position() math.Vec3 { return a.M.Origin() }

// SetPosition overwrites the matrix origin.
func (a OriginAnchor) SetPosition(p math.Vec3) { a.M.SetOrigin(p) }

// Mover drags a point across the plane through it that faces the camera.
// The plane and the camera position are fixed at Down; every Drag returns
// the displacement from the mouse-down position.
type Mover struct {
	anchor         Anchor
	pMousedown     math.Vec3
	cameraPosition math.Vec3
	plane          picking.Plane
	mouseOffset    math.Vec2
}

// Down binds the mover to a and starts a drag at pixel (x, y).
func (m *Mover) Down(a Anchor, x, y int, view picking.View) {
	if a == nil {
		m.Unset()
		return
	}
	p := a.Position()
	if eye, ok := view.CameraPosition(); ok {
		m.cameraPosition = eye
	}
	s, _ := view.ScreenPoint(p)
	m.mouseOffset = math.Vec2{X: s.X - float32(x), Y: s.Y - float32(y)}
	m.anchor = a
	m.pMousedown = p
	// the plane normal is the modelview z row, the view axis in world space
	m.plane = picking.PlaneThrough(view.Modelview.Row(2).Vec3(), p)
}

// DownPoint starts a drag of *p.
func (m *Mover) DownPoint(p *math.Vec3, x, y int, view picking.View) {
	m.Down(PointAnchor{P: p}, x, y, view)
}

// DownTransform starts a drag of the origin of *t.
func (m *Mover) DownTransform(t *math.Mat4, x, y int, view picking.View) {
	m.Down(OriginAnchor{M: t}, x, y, view)
}

// Drag moves the anchor to where the line under pixel (x, y), shifted by
// the mouse-down offset, meets the drag plane, and returns the displacement
// since Down. A line parallel to the plane leaves the anchor where it was.
func (m *Mover) Drag(x, y int, view picking.View) math.Vec3 {
	if m.anchor == nil {
		return math.Vec3{}
	}
	sx, sy := float32(x)+m.mouseOffset.X, float32(y)+m.mouseOffset.Y
	p1, p2, ok := view.ScreenLine(sx, sy)
	if ok {
		if p, hit := m.plane.IntersectLine(p1, p2); hit {
			m.anchor.SetPosition(p)
		}
	}
	return m.anchor.Position().Sub(m.pMousedown)
}

// Wheel moves the anchor toward (spin > 0) or away from the camera position
// recorded at Down, by 0.02 per unit of spin.
func (m *Mover) Wheel(spin float32) {
	if m.anchor == nil {
		return
	}
	p := m.anchor.Position()
	dir := m.cameraPosition.Sub(p).Normalize()
	m.anchor.SetPosition(p.Add(dir.Scale(0.02 * spin)))
}

// Hit reports whether pixel (x, y) is within proximity of the anchor.
func (m *Mover) Hit(x, y int, view picking.View, proximity float32) bool {
	if m.anchor == nil {
		return false
	}
	return picking.MouseOverPoint(float32(x), float32(y), m.anchor.Position(), view.Fullview(), view.Viewport, proximity)
}

// IsSet reports whether the mover is bound.
func (m *Mover) IsSet() bool {
	return m.anchor != nil
}

// Holds reports whether the mover is bound to a.
func (m *Mover) Holds(a Anchor) bool {
	return m.anchor != nil && m.anchor == a
}

// Unset drops the anchor; later calls are no-ops until the next Down.
func (m *Mover) Unset() {
	m.anchor = nil
}

// MouseDownPosition returns the anchor position at Down.
func (m *Mover) MouseDownPosition() math.Vec3 {
	return m.pMousedown
}

// Plane returns the drag plane fixed at Down.
func (m *Mover) Plane() picking.Plane {
	return m.plane
}
