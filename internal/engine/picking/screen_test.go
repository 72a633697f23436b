package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/pkg/math"
)

const tol = 1e-3

var testVP = Viewport{X: 0, Y: 0, Width: 800, Height: 600}

func testView() View {
	return View{
		Modelview: math.Translate(0, 0, -10).Mul(math.RotateY(0.4)),
		Persp:     math.Perspective(math.DegToRad(30), testVP.Aspect(), 0.1, 100),
		Viewport:  testVP,
	}
}

func TestPixelNDCRoundTrip(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, Width: 400, Height: 200}
	tests := []struct {
		name string
		x, y float32
		ndc  math.Vec2
	}{
		{"lower left", 10, 20, math.Vec2{X: -1, Y: -1}},
		{"center", 210, 120, math.Vec2{}},
		{"upper right", 410, 220, math.Vec2{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ndc := PixelToNDC(tt.x, tt.y, vp)
			assert.InDelta(t, tt.ndc.X, ndc.X, tol)
			assert.InDelta(t, tt.ndc.Y, ndc.Y, tol)

			back := NDCToPixel(ndc, vp)
			assert.InDelta(t, tt.x, back.X, tol)
			assert.InDelta(t, tt.y, back.Y, tol)

			// matrix forms agree with the functions
			m := ScreenMode(vp).TransformPoint(math.Vec3{X: tt.x, Y: tt.y})
			assert.InDelta(t, tt.ndc.X, m.X, tol)
			assert.InDelta(t, tt.ndc.Y, m.Y, tol)
			p := ViewportMatrix(vp).TransformPoint(m)
			assert.InDelta(t, tt.x, p.X, tol)
			assert.InDelta(t, tt.y, p.Y, tol)
		})
	}
}

func TestScreenPointCenter(t *testing.T) {
	v := View{
		Modelview: math.Translate(0, 0, -10),
		Persp:     math.Perspective(math.DegToRad(30), testVP.Aspect(), 0.001, 500),
		Viewport:  testVP,
	}
	s, z := v.ScreenPoint(math.Vec3{})
	assert.InDelta(t, 400, s.X, tol)
	assert.InDelta(t, 300, s.Y, tol)
	assert.True(t, z > -1 && z < 1, "depth %v inside clip range", z)

	// +y in world is up on screen (GL convention)
	up, _ := v.ScreenPoint(math.Vec3{Y: 1})
	assert.Greater(t, up.Y, s.Y)
}

func TestScreenPointBehindEye(t *testing.T) {
	// w == 0 for a point in the eye plane
	v := View{Modelview: math.Identity(), Persp: math.Perspective(1, 1, 0.1, 10), Viewport: testVP}
	s, _ := v.ScreenPoint(math.Vec3{X: 1})
	assert.False(t, MouseOver(s.X, s.Y, math.Vec2{}, 1e6))
	assert.False(t, MouseOverPoint(0, 0, math.Vec3{X: 1}, v.Fullview(), testVP, 1e6))
}

func TestScreenLineProjectsToPixel(t *testing.T) {
	v := testView()
	full := v.Fullview()
	pixels := []math.Vec2{{X: 400, Y: 300}, {X: 12, Y: 580}, {X: 777, Y: 33.5}}
	for _, px := range pixels {
		p1, p2, ok := v.ScreenLine(px.X, px.Y)
		require.True(t, ok)

		s1, z1 := ScreenPoint(p1, full, testVP)
		s2, z2 := ScreenPoint(p2, full, testVP)
		assert.InDelta(t, px.X, s1.X, 0.05)
		assert.InDelta(t, px.Y, s1.Y, 0.05)
		assert.InDelta(t, px.X, s2.X, 0.5)
		assert.InDelta(t, px.Y, s2.Y, 0.5)
		assert.InDelta(t, -1, z1, tol)
		assert.InDelta(t, 1, z2, tol)
	}
}

func TestScreenRay(t *testing.T) {
	v := View{
		Modelview: math.Translate(0, 0, -10),
		Persp:     math.Perspective(math.DegToRad(30), testVP.Aspect(), 0.1, 100),
		Viewport:  testVP,
	}
	r, ok := v.ScreenRay(400, 300)
	require.True(t, ok)
	// straight down -z from the eye at (0,0,10)
	assert.InDelta(t, 0, r.Direction.X, tol)
	assert.InDelta(t, 0, r.Direction.Y, tol)
	assert.InDelta(t, -1, r.Direction.Z, tol)
	assert.InDelta(t, 9.9, r.Origin.Z, tol)

	eye, ok := v.CameraPosition()
	require.True(t, ok)
	assert.InDelta(t, 10, eye.Z, tol)
}

func TestScreenLineSingular(t *testing.T) {
	_, _, ok := ScreenLine(1, 1, math.Mat4{}, testVP)
	assert.False(t, ok)
	_, ok = View{Viewport: testVP}.ScreenRay(1, 1)
	assert.False(t, ok)
}

func TestMouseOver(t *testing.T) {
	p := math.Vec2{X: 100, Y: 100}
	assert.True(t, MouseOver(105, 105, p, 12))
	assert.False(t, MouseOver(112, 100, p, 12), "proximity is exclusive")
	assert.False(t, MouseOver(200, 100, p, 12))

	v := testView()
	s, _ := v.ScreenPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	assert.True(t, MouseOverPoint(s.X+3, s.Y-3, math.Vec3{X: 1, Y: 1, Z: 1}, v.Fullview(), testVP, 12))
	assert.InDelta(t, 18, ScreenDistSq(s.X+3, s.Y-3, math.Vec3{X: 1, Y: 1, Z: 1}, v.Fullview(), testVP), 0.05)
}

func TestViewportHelpers(t *testing.T) {
	vp := Viewport{X: 0, Y: 0, Width: 200, Height: 100}
	assert.Equal(t, float32(2), vp.Aspect())
	assert.Equal(t, math.Vec2{X: 100, Y: 50}, vp.Center())
	assert.True(t, vp.Contains(0, 0))
	assert.False(t, vp.Contains(200, 50))
	assert.Equal(t, float32(1), Viewport{}.Aspect())
}
