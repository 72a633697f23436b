package widget

import (
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// JoystickMode is the part of a Joystick held by the current gesture.
type JoystickMode int

const (
	JoystickNone JoystickMode = iota
	JoystickBase
	JoystickTip
)

// String returns the mode name.
func (m JoystickMode) String() string {
	switch m {
	case JoystickBase:
		return "base"
	case JoystickTip:
		return "tip"
	default:
		return "none"
	}
}

// joystickHitSq is the squared pixel distance for grabbing the base or tip.
const joystickHitSq = 100

// Joystick edits a vector rooted at a base point. Dragging the base moves
// it across the plane facing the camera; dragging the tip swings the
// vector about the base, keeping its length and the side of the base it
// faces.
type Joystick struct {
	base    Anchor
	vec     Anchor
	mode    JoystickMode
	fwdFace bool
	plane   picking.Plane
}

// SetBase binds the base point.
func (j *Joystick) SetBase(a Anchor) { j.base = a }

// SetVector binds the vector.
func (j *Joystick) SetVector(a Anchor) { j.vec = a }

// Mode returns the part held by the current gesture.
func (j *Joystick) Mode() JoystickMode { return j.mode }

// Hit reports which part, if any, lies under pixel (x, y). The base wins
// when both are in range.
func (j *Joystick) Hit(x, y int, view picking.View) JoystickMode {
	if j.base == nil || j.vec == nil {
		return JoystickNone
	}
	fv := view.Fullview()
	b := j.base.Position()
	fx, fy := float32(x), float32(y)
	if picking.ScreenDistSq(fx, fy, b, fv, view.Viewport) < joystickHitSq {
		return JoystickBase
	}
	if picking.ScreenDistSq(fx, fy, b.Add(j.vec.Position()), fv, view.Viewport) < joystickHitSq {
		return JoystickTip
	}
	return JoystickNone
}

// Down binds base and vec and starts a gesture on whichever is under
// (x, y). The mode is JoystickNone if neither is.
func (j *Joystick) Down(x, y int, base, vec Anchor, view picking.View) JoystickMode {
	j.base, j.vec = base, vec
	j.mode = j.Hit(x, y, view)
	if j.mode == JoystickNone {
		return j.mode
	}
	b := j.base.Position()
	j.fwdFace = picking.FrontFacing(b, j.vec.Position(), view.Modelview)
	if j.mode == JoystickBase {
		j.plane = picking.PlaneThrough(view.Modelview.Row(2).Vec3(), b)
	}
	return j.mode
}

// Drag continues the gesture.
func (j *Joystick) Drag(x, y int, view picking.View) {
	if j.mode == JoystickNone {
		return
	}
	p1, p2, ok := view.ScreenLine(float32(x), float32(y))
	if !ok {
		return
	}
	b := j.base.Position()
	if j.mode == JoystickBase {
		if p, hit := j.plane.IntersectLine(p1, p2); hit {
			j.base.SetPosition(p)
		}
		return
	}

	length := j.vec.Position().Length()
	var v math.Vec3
	n, h1, h2 := picking.LineSphere(p1, p2, b, length)
	if n == 0 {
		v = picking.ProjectToLine(b, p1, p2).Sub(b)
	} else {
		v = h2.Sub(b)
		if picking.FrontFacing(b, v, view.Modelview) != j.fwdFace {
			v = h1.Sub(b)
		}
	}
	if u, ok := v.TryNormalize(); ok {
		j.vec.SetPosition(u.Scale(length))
	}
}

// Up ends the gesture.
func (j *Joystick) Up() {
	j.mode = JoystickNone
}

// Strokes returns the vector as a line with disks at its base and tip.
func (j *Joystick) Strokes(view picking.View) []Stroke {
	if j.base == nil || j.vec == nil {
		return nil
	}
	b := j.base.Position()
	sb, _ := view.ScreenPoint(b)
	st, _ := view.ScreenPoint(b.Add(j.vec.Position()))
	baseColor, tipColor := Pink, Pink
	switch j.mode {
	case JoystickBase:
		baseColor = Yellow
	case JoystickTip:
		tipColor = Yellow
	}
	return []Stroke{
		{Points: []math.Vec2{sb, st}, Color: Pink, Width: strokeWidth},
		disk(sb, 9, baseColor),
		disk(st, 7, tipColor),
	}
}
