package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

var testVP = picking.Viewport{Width: 800, Height: 600}

// testView looks down -z at the origin from (0, 0, 10).
func testView() picking.View {
	return picking.View{
		Modelview: math.Translate(0, 0, -10),
		Persp:     math.Perspective(math.DegToRad(30), testVP.Aspect(), 0.1, 100),
		Viewport:  testVP,
	}
}

func pixel(t *testing.T, view picking.View, p math.Vec3) (int, int) {
	t.Helper()
	s, _ := view.ScreenPoint(p)
	return int(s.X + 0.5), int(s.Y + 0.5)
}

func TestMoverDragStaysOnPlane(t *testing.T) {
	view := testView()
	p := math.Vec3{}
	var m Mover

	m.DownPoint(&p, 400, 300, view)
	require.True(t, m.IsSet())
	assertVec3(t, math.Vec3{Z: 1}, m.Plane().Normal, tol)

	d := m.Drag(500, 350, view)
	assert.InDelta(t, 0, m.Plane().Distance(p), tol)
	assert.Greater(t, p.X, float32(0))
	assert.Greater(t, p.Y, float32(0))
	assertVec3(t, p, d, tol)

	s, _ := view.ScreenPoint(p)
	assert.InDelta(t, 500, s.X, 0.1)
	assert.InDelta(t, 350, s.Y, 0.1)
}

func TestMoverNoSnapOnGrab(t *testing.T) {
	view := testView()
	p := math.Vec3{X: 1, Y: -0.5}
	start := p
	x, y := pixel(t, view, p)
	var m Mover

	// grab a few pixels off the point; a drag at the same pixel must not move it
	m.DownPoint(&p, x+5, y-3, view)
	d := m.Drag(x+5, y-3, view)
	assertVec3(t, start, p, tol)
	assertVec3(t, math.Vec3{}, d, tol)
	assertVec3(t, start, m.MouseDownPosition(), 0)
}

func TestMoverRejectsParallelDrag(t *testing.T) {
	ortho := math.Ortho(-4, 4, -3, 3, -10, 10)
	// quarter turn about y: the drag plane normal is world x
	side := picking.View{
		Modelview: math.Mat4{
			0, 0, -1, 0,
			0, 1, 0, 0,
			1, 0, 0, 0,
			0, 0, 0, 1,
		},
		Persp:    ortho,
		Viewport: testVP,
	}
	front := picking.View{Modelview: math.Identity(), Persp: ortho, Viewport: testVP}

	p := math.Vec3{}
	var m Mover
	m.DownPoint(&p, 400, 300, side)
	moved := m.Drag(400, 400, side)
	require.Greater(t, p.Y, float32(0))
	before := p

	// rays of the front view run along z, inside the x plane
	d := m.Drag(100, 100, front)
	assert.Equal(t, before, p)
	assert.Equal(t, moved, d)
}

func TestMoverWheel(t *testing.T) {
	view := testView()
	p := math.Vec3{}
	var m Mover

	m.DownPoint(&p, 400, 300, view)
	m.Wheel(1)
	assertVec3(t, math.Vec3{Z: 0.02}, p, 1e-5)
	m.Wheel(-2)
	assertVec3(t, math.Vec3{Z: -0.02}, p, 1e-5)
}

func TestMoverTransformAnchor(t *testing.T) {
	view := testView()
	mat := math.Translate(0, 0, 0).Mul(math.RotateZ(0.7))
	rot := mat.Mat3x3()
	var m Mover

	m.DownTransform(&mat, 400, 300, view)
	m.Drag(450, 300, view)
	assert.Greater(t, mat.Origin().X, float32(0))
	assert.Equal(t, rot, mat.Mat3x3())
}

func TestMoverUnset(t *testing.T) {
	view := testView()
	p := math.Vec3{X: 1}
	var m Mover

	assert.False(t, m.IsSet())
	assert.Equal(t, math.Vec3{}, m.Drag(10, 10, view))
	m.Wheel(1)
	assert.False(t, m.Hit(400, 300, view, DefaultProximity))

	a := PointAnchor{P: &p}
	m.Down(a, 400, 300, view)
	assert.True(t, m.Holds(a))
	x, y := pixel(t, view, p)
	assert.True(t, m.Hit(x+3, y, view, DefaultProximity))
	assert.False(t, m.Hit(x+30, y, view, DefaultProximity))

	m.Unset()
	assert.False(t, m.Holds(a))
	m.Drag(0, 0, view)
	assertVec3(t, math.Vec3{X: 1}, p, 0)
}
