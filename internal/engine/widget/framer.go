package widget

import (
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// Framer edits a reference frame: dragging near its origin moves it,
// dragging elsewhere in the circle rotates it about the origin.
type Framer struct {
	mover       Mover
	arcball     *Arcball
	base        math.Vec3
	moverPicked bool
}

// NewFramer returns an unbound framer.
func NewFramer() *Framer {
	return &Framer{arcball: NewArcball()}
}

// Set binds the framer to *m with a circle of the given pixel radius,
// centered on the projection of m's origin.
func (f *Framer) Set(m *math.Mat4, radius float32, fullview math.Mat4, vp picking.Viewport) {
	var s math.Vec2
	if m != nil {
		f.base = m.Origin()
		s, _ = picking.ScreenPoint(f.base, fullview, vp)
	}
	f.arcball.SetBody(m, radius)
	f.arcball.SetCenter(s)
	f.moverPicked = false
}

// Hit reports whether (x, y) lies inside the circle.
func (f *Framer) Hit(x, y int) bool {
	return f.arcball.Hit(x, y)
}

// Down starts a gesture. Near the origin the mover takes it; otherwise the
// arcball, locked to the nearest axis if control is held.
func (f *Framer) Down(x, y int, view picking.View, control bool) {
	f.moverPicked = f.arcball.MouseOver(x, y)
	if f.moverPicked {
		f.mover.DownPoint(&f.base, x, y, view)
		return
	}
	f.arcball.Down(x, y, control, nil)
}

// Drag continues the gesture.
func (f *Framer) Drag(x, y int, view picking.View) {
	if !f.moverPicked {
		f.arcball.Drag(x, y)
		return
	}
	f.mover.Drag(x, y, view)
	if m := f.arcball.Matrix(); m != nil {
		m.SetOrigin(f.base)
	}
	s, _ := view.ScreenPoint(f.base)
	f.arcball.SetCenter(s)
}

// Up ends the gesture.
func (f *Framer) Up() {
	f.arcball.Up()
	f.mover.Unset()
}

// Wheel scales the frame.
func (f *Framer) Wheel(spin float32) {
	f.arcball.Wheel(spin)
}

// Matrix returns the bound matrix, or nil.
func (f *Framer) Matrix() *math.Mat4 { return f.arcball.Matrix() }

// Base returns the frame origin.
func (f *Framer) Base() math.Vec3 { return f.base }

// MoverPicked reports whether the current gesture translates.
func (f *Framer) MoverPicked() bool { return f.moverPicked }

// Arcball returns the rotation widget.
func (f *Framer) Arcball() *Arcball { return f.arcball }

// Strokes returns the arcball outline and a disk at the origin.
func (f *Framer) Strokes(view picking.View, showConstrainAxes bool) []Stroke {
	if f.arcball.Matrix() == nil {
		return nil
	}
	s, _ := view.ScreenPoint(f.base)
	return append(f.arcball.Strokes(showConstrainAxes, nil), disk(s, 9, Pink))
}
