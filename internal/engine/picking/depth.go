package picking

import "github.com/Faultbox/gizmo/pkg/math"

// DepthReader reads the depth buffer of the current render target.
// ReadDepth returns the window-space depth in [0, 1] at pixel (x, y), or
// false if no depth is available there (depth test disabled, pixel outside
// the target).
type DepthReader interface {
	ReadDepth(x, y int) (float32, bool)
}

// DepthXY returns the depth at pixel (x, y) mapped to the NDC range
// [-1, 1], the range ScreenPoint reports.
func DepthXY(r DepthReader, x, y int) (float32, bool) {
	if r == nil {
		return 0, false
	}
	d, ok := r.ReadDepth(x, y)
	if !ok {
		return 0, false
	}
	return 2*d - 1, true
}

// IsVisible reports whether world point p is not hidden by rendered
// geometry, comparing its NDC depth against the depth buffer at its pixel
// with the given fudge. Points off the viewport are not visible; points
// are visible wherever no depth can be read. The pixel location of p is
// returned in either case.
func IsVisible(p math.Vec3, fullview math.Mat4, vp Viewport, r DepthReader, fudge float32) (bool, math.Vec2) {
	s, z := ScreenPoint(p, fullview, vp)
	if !vp.Contains(s.X, s.Y) {
		return false, s
	}
	depth, ok := DepthXY(r, int(s.X), int(s.Y))
	if !ok {
		return true, s
	}
	return z < depth+fudge, s
}
