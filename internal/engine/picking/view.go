package picking

import "github.com/Faultbox/gizmo/pkg/math"

// View bundles the camera matrices and viewport that every picking and
// dragging operation needs. It is a value; callers build one per frame or
// per gesture step from the current camera.
type View struct {
	Modelview math.Mat4
	Persp     math.Mat4
	Viewport  Viewport
}

// Fullview returns persp*modelview.
func (v View) Fullview() math.Mat4 {
	return v.Persp.Mul(v.Modelview)
}

// ScreenPoint returns the pixel location and NDC depth of world point p.
func (v View) ScreenPoint(p math.Vec3) (math.Vec2, float32) {
	return ScreenPoint(p, v.Fullview(), v.Viewport)
}

// ScreenLine returns two world points on the line that projects to pixel
// (x, y). See ScreenLine.
func (v View) ScreenLine(x, y float32) (p1, p2 math.Vec3, ok bool) {
	return ScreenLine(x, y, v.Fullview(), v.Viewport)
}

// ScreenRay returns the world ray from the near plane through pixel (x, y).
func (v View) ScreenRay(x, y float32) (Ray, bool) {
	p1, p2, ok := v.ScreenLine(x, y)
	if !ok {
		return Ray{}, false
	}
	dir, ok := p2.Sub(p1).TryNormalize()
	if !ok {
		return Ray{}, false
	}
	return Ray{Origin: p1, Direction: dir}, true
}

// CameraPosition returns the eye position in world space, the translation
// column of the inverse modelview.
func (v View) CameraPosition() (math.Vec3, bool) {
	inv, ok := v.Modelview.Inverse()
	if !ok {
		return math.Vec3{}, false
	}
	return inv.Origin(), true
}

// ScreenLine computes the world-space line, given by p1 (near plane) and
// p2 (far plane), that fullview maps to the line perpendicular to the
// screen at pixel (x, y). ok is false if fullview cannot be inverted.
func ScreenLine(x, y float32, fullview math.Mat4, vp Viewport) (p1, p2 math.Vec3, ok bool) {
	inv, ok := fullview.Inverse()
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	ndc := PixelToNDC(x, y, vp)
	p1, ok1 := inv.MulVec4(math.Vec4{X: ndc.X, Y: ndc.Y, Z: -1, W: 1}).PerspectiveDivide()
	p2, ok2 := inv.MulVec4(math.Vec4{X: ndc.X, Y: ndc.Y, Z: 1, W: 1}).PerspectiveDivide()
	if !ok1 || !ok2 {
		return math.Vec3{}, math.Vec3{}, false
	}
	return p1, p2, true
}
