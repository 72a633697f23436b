package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gizmo/pkg/math"
)

// Viewport is a pixel rectangle with its origin at the lower left, as
// OpenGL defines it. Mouse coordinates from the window system must be
// flipped vertically before they are compared against it.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Aspect returns width/height, or 1 for an empty viewport.
func (vp Viewport) Aspect() float32 {
	if vp.Height == 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// Center returns the pixel at the middle of the viewport.
func (vp Viewport) Center() math.Vec2 {
	return math.Vec2{
		X: float32(vp.X) + float32(vp.Width)/2,
		Y: float32(vp.Y) + float32(vp.Height)/2,
	}
}

// Contains reports whether pixel (x, y) lies inside the viewport.
func (vp Viewport) Contains(x, y float32) bool {
	return x >= float32(vp.X) && x < float32(vp.X+vp.Width) &&
		y >= float32(vp.Y) && y < float32(vp.Y+vp.Height)
}

// PixelToNDC maps a pixel to normalized device coordinates in [-1, 1].
func PixelToNDC(x, y float32, vp Viewport) math.Vec2 {
	return math.Vec2{
		X: 2*(x-float32(vp.X))/float32(vp.Width) - 1,
		Y: 2*(y-float32(vp.Y))/float32(vp.Height) - 1,
	}
}

// NDCToPixel maps normalized device coordinates to a pixel.
func NDCToPixel(ndc math.Vec2, vp Viewport) math.Vec2 {
	return math.Vec2{
		X: float32(vp.X) + (ndc.X+1)/2*float32(vp.Width),
		Y: float32(vp.Y) + (ndc.Y+1)/2*float32(vp.Height),
	}
}

// ScreenMode returns the matrix mapping pixel space, (0,0)-(width,height)
// offset by the viewport origin, to NDC. Overlays drawn in pixels use it as
// their view transform.
func ScreenMode(vp Viewport) math.Mat4 {
	w, h := float32(vp.Width), float32(vp.Height)
	m := math.Scale(2/w, 2/h, 1)
	m.SetOrigin(math.Vec3{
		X: -1 - 2*float32(vp.X)/w,
		Y: -1 - 2*float32(vp.Y)/h,
	})
	return m
}

// ViewportMatrix returns the matrix mapping NDC to pixels, the inverse of
// ScreenMode.
func ViewportMatrix(vp Viewport) math.Mat4 {
	w, h := float32(vp.Width), float32(vp.Height)
	m := math.Scale(w/2, h/2, 1)
	m.SetOrigin(math.Vec3{
		X: float32(vp.X) + w/2,
		Y: float32(vp.Y) + h/2,
	})
	return m
}

// offscreen is returned for points that cannot be projected (w == 0); it
// never lies within any hit radius.
var offscreen = math.Vec2{X: math32.MaxFloat32, Y: math32.MaxFloat32}

// ScreenPoint transforms world point p by view (persp*modelview) and
// returns its pixel location and NDC depth.
func ScreenPoint(p math.Vec3, view math.Mat4, vp Viewport) (math.Vec2, float32) {
	ndc, ok := view.Project(p)
	if !ok {
		return offscreen, 1
	}
	return NDCToPixel(ndc.XY(), vp), ndc.Z
}

// ScreenDistSq returns the squared pixel distance between (x, y) and the
// projection of p.
func ScreenDistSq(x, y float32, p math.Vec3, view math.Mat4, vp Viewport) float32 {
	s, _ := ScreenPoint(p, view, vp)
	if s == offscreen {
		return math32.MaxFloat32
	}
	return s.Sub(math.Vec2{X: x, Y: y}).LengthSq()
}

// MouseOver reports whether (x, y) is strictly within proximity pixels of p.
func MouseOver(x, y float32, p math.Vec2, proximity float32) bool {
	return math.Vec2{X: x, Y: y}.Sub(p).Length() < proximity
}

// MouseOverPoint reports whether (x, y) is within proximity pixels of the
// projection of world point p.
func MouseOverPoint(x, y float32, p math.Vec3, view math.Mat4, vp Viewport, proximity float32) bool {
	return ScreenDistSq(x, y, p, view, vp) < proximity*proximity
}
