// Package camera provides an arcball-driven perspective camera.
//
// Without modifiers a mouse drag rotates the view with an arcball and the
// wheel dollies along the view axis. With shift held a drag pans in the
// screen plane. With control held rotation is locked to a major axis.
package camera

import (
	"time"

	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/pkg/math"
)

const (
	// wheelDolly is the translation along z per wheel tick.
	wheelDolly = 0.1
	// arcballInset is subtracted from half the smaller viewport side to
	// size the arcball circle.
	arcballInset = 50

	maxDuration = time.Duration(1<<63 - 1)
)

// Params holds the projection and mouse settings of a camera.
type Params struct {
	FOV            float32 // vertical field of view, degrees
	Near, Far      float32
	InvertVertical bool    // mouse y grows upward, as in GL pixels
	TranSpeed      float32 // world units per pixel of shift-drag
}

// DefaultParams returns the usual projection: 30 degrees, near .001,
// far 500.
func DefaultParams() Params {
	return Params{
		FOV:            30,
		Near:           0.001,
		Far:            500,
		InvertVertical: true,
		TranSpeed:      0.005,
	}
}

// ArcballCamera is a viewer camera whose rotation is driven by an arcball
// and whose translation is driven directly by the mouse.
//
// The modelview is T(tran) * Rotate(), where Rotate turns the scene about
// a movable center.
type ArcballCamera struct {
	rot          math.Mat4
	tran         math.Vec3
	tranOld      math.Vec3
	rotateCenter math.Vec3
	rotateOffset math.Vec3

	fov, near, far float32
	aspect         float32
	invertVertical bool
	tranSpeed      float32

	shift     bool
	mouseDown math.Vec2
	arcball   *widget.Arcball
	vp        picking.Viewport

	lastArcballEvent time.Time
	now              func() time.Time

	modelview, persp, fullview math.Mat4
}

// New returns a camera with rotation rot and translation tran over vp.
func New(vp picking.Viewport, rot math.Mat4, tran math.Vec3, p Params) *ArcballCamera {
	c := &ArcballCamera{arcball: widget.NewArcball(), now: time.Now}
	c.Set(vp, rot, tran, p)
	return c
}

// NewFromEuler returns a camera rotated by RotateX*RotateY*RotateZ of the
// given angles in degrees.
func NewFromEuler(vp picking.Viewport, degrees, tran math.Vec3, p Params) *ArcballCamera {
	return New(vp, math.EulerMatrix(degrees), tran, p)
}

// NewFromQuat returns a camera with rotation q.
func NewFromQuat(vp picking.Viewport, q math.Quat, tran math.Vec3, p Params) *ArcballCamera {
	return New(vp, q.ToMat4(), tran, p)
}

// Set replaces the whole camera state and rebinds the arcball.
func (c *ArcballCamera) Set(vp picking.Viewport, rot math.Mat4, tran math.Vec3, p Params) {
	c.rot = rot
	c.tran = tran
	c.tranOld = tran
	c.fov, c.near, c.far = p.FOV, p.Near, p.Far
	c.invertVertical = p.InvertVertical
	c.tranSpeed = p.TranSpeed
	c.SetViewport(vp)
}

// SetViewport changes the viewport, keeping the rest of the state.
func (c *ArcballCamera) SetViewport(vp picking.Viewport) {
	c.vp = vp
	c.aspect = vp.Aspect()
	c.persp = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.modelview = math.TranslateV(c.tran).Mul(c.rot)
	c.fullview = c.persp.Mul(c.modelview)
	c.arcball.SetCamera(&c.rot, vp.Center(), arcballRadius(vp.Width, vp.Height))
}

// Resize adapts the projection and arcball to a window of w x h pixels.
func (c *ArcballCamera) Resize(w, h int) {
	c.vp = picking.Viewport{Width: w, Height: h}
	c.aspect = c.vp.Aspect()
	c.persp = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.fullview = c.persp.Mul(c.modelview)
	c.arcball.SetCamera(&c.rot, c.vp.Center(), arcballRadius(w, h))
}

func arcballRadius(w, h int) float32 {
	return float32(min(w, h))/2 - arcballInset
}

// Rotate returns the rotation about the rotate center:
// T(center+offset) * rot * T(-center).
func (c *ArcballCamera) Rotate() math.Mat4 {
	back := math.TranslateV(c.rotateCenter.Add(c.rotateOffset))
	toCenter := math.TranslateV(c.rotateCenter.Negate())
	return back.Mul(c.rot).Mul(toCenter)
}

// SetRotateCenter moves the point the camera rotates about without moving
// the view: the offset absorbs the shift the new center would cause.
func (c *ArcballCamera) SetRotateCenter(r math.Vec3) {
	before := c.Rotate().TransformPoint(r)
	c.rotateCenter = r
	after := c.Rotate().TransformPoint(r)
	c.rotateOffset = c.rotateOffset.Add(before.Sub(after))
}

// RotateCenter returns the point the camera rotates about.
func (c *ArcballCamera) RotateCenter() math.Vec3 { return c.rotateCenter }

// MouseDown starts a gesture at pixel (x, y). shift selects panning,
// control locks rotation to an axis.
func (c *ArcballCamera) MouseDown(x, y int, shift, control bool) {
	c.shift = shift
	c.arcball.Down(x, y, control, nil)
	c.mouseDown = math.Vec2{X: float32(x), Y: float32(y)}
	c.tranOld = c.tran
	if !shift {
		c.lastArcballEvent = c.now()
	}
}

// MouseDrag continues the gesture.
func (c *ArcballCamera) MouseDrag(x, y int) {
	dif := math.Vec2{X: float32(x), Y: float32(y)}.Sub(c.mouseDown)
	if c.invertVertical {
		dif.Y = -dif.Y
	}
	if c.shift {
		c.tran = c.tranOld.Add(math.Vec3{X: dif.X, Y: -dif.Y}.Scale(c.tranSpeed))
	} else {
		c.arcball.Drag(x, y)
		c.lastArcballEvent = c.now()
	}
	c.update()
}

// MouseWheel dollies along z by 0.1 per unit of spin.
func (c *ArcballCamera) MouseWheel(spin float32) {
	c.tran.Z += wheelDolly * spin
	c.tranOld.Z = c.tran.Z
	c.update()
}

// MouseUp ends the gesture.
func (c *ArcballCamera) MouseUp() {
	c.tranOld = c.tran
	c.arcball.Up()
}

// Position returns the eye in world space, ignoring the rotate center.
func (c *ArcballCamera) Position() math.Vec3 {
	inv := c.rot.Transpose().Mul(math.TranslateV(c.tran.Negate()))
	return inv.Origin()
}

// MoveTo places the eye at world point p, keeping the rotation.
func (c *ArcballCamera) MoveTo(p math.Vec3) {
	c.tranOld = c.tran
	r := c.Rotate()
	c.tran = r.TransformPoint(p).Negate()
	c.modelview = math.TranslateV(c.tran).Mul(r)
	c.fullview = c.persp.Mul(c.modelview)
}

// Move displaces the eye by m in world space.
func (c *ArcballCamera) Move(m math.Vec3) {
	c.MoveTo(m.Add(c.Position()))
}

// SetModelview adopts an arbitrary rigid modelview: its translation becomes
// tran and its rotation block becomes rot.
func (c *ArcballCamera) SetModelview(mv math.Mat4) {
	c.tran = mv.Origin()
	c.tranOld = c.tran
	c.modelview = mv
	c.rot = mv
	c.rot.SetOrigin(math.Vec3{})
	c.fullview = c.persp.Mul(c.modelview)
}

// FOV returns the vertical field of view in degrees.
func (c *ArcballCamera) FOV() float32 { return c.fov }

// SetFOV changes the vertical field of view, in degrees.
func (c *ArcballCamera) SetFOV(fov float32) {
	c.fov = fov
	c.persp = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.fullview = c.persp.Mul(c.modelview)
}

// Clip returns the near and far clip distances.
func (c *ArcballCamera) Clip() (near, far float32) { return c.near, c.far }

// SetClip changes the near and far clip distances.
func (c *ArcballCamera) SetClip(near, far float32) {
	c.near, c.far = near, far
	c.persp = math.Perspective(math.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.fullview = c.persp.Mul(c.modelview)
}

// SetSpeed sets the pan speed in world units per pixel.
func (c *ArcballCamera) SetSpeed(s float32) { c.tranSpeed = s }

// Rot returns the arcball-controlled rotation.
func (c *ArcballCamera) Rot() math.Mat4 { return c.rot }

// Euler returns the rotation as x, y, z angles in radians.
func (c *ArcballCamera) Euler() math.Vec3 { return math.EulerFromMatrix(c.rot) }

// Tran returns the translation.
func (c *ArcballCamera) Tran() math.Vec3 { return c.tran }

// Modelview returns T(tran) * Rotate.
func (c *ArcballCamera) Modelview() math.Mat4 { return c.modelview }

// Persp returns the projection.
func (c *ArcballCamera) Persp() math.Mat4 { return c.persp }

// Fullview returns Persp * Modelview.
func (c *ArcballCamera) Fullview() math.Mat4 { return c.fullview }

// Viewport returns the viewport the camera projects to.
func (c *ArcballCamera) Viewport() picking.Viewport { return c.vp }

// View bundles the current matrices for picking and widgets.
func (c *ArcballCamera) View() picking.View {
	return picking.View{Modelview: c.modelview, Persp: c.persp, Viewport: c.vp}
}

// Arcball returns the rotation widget, for drawing.
func (c *ArcballCamera) Arcball() *widget.Arcball { return c.arcball }

// Shift reports whether the current gesture pans.
func (c *ArcballCamera) Shift() bool { return c.shift }

// TimeSinceArcballEvent returns the time since the last arcball down or
// drag. It is large before the first one.
func (c *ArcballCamera) TimeSinceArcballEvent() time.Duration {
	if c.lastArcballEvent.IsZero() {
		return maxDuration
	}
	return c.now().Sub(c.lastArcballEvent)
}

// SetClock replaces the time source. Tests use it for determinism.
func (c *ArcballCamera) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	c.now = now
}

func (c *ArcballCamera) update() {
	c.modelview = math.TranslateV(c.tran).Mul(c.Rotate())
	c.fullview = c.persp.Mul(c.modelview)
}

// Usage describes the mouse bindings.
func Usage() string {
	return `mouse-drag:	rotate x, y
  with shift:	translate x, y
  with control:	constrain to axis
mouse-wheel:	translate z
`
}
