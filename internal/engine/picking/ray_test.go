package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/pkg/math"
)

func TestPlaneIntersectLine(t *testing.T) {
	pl := PlaneThrough(math.Vec3{Z: 2}, math.Vec3{X: 5, Y: 5, Z: 3})
	assert.InDelta(t, 0, pl.Distance(math.Vec3{X: -1, Y: 7, Z: 3}), tol)

	p, ok := pl.IntersectLine(math.Vec3{X: 1, Y: 2, Z: 10}, math.Vec3{X: 1, Y: 2, Z: 9})
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, p)

	// parallel line is rejected rather than producing Inf
	_, ok = pl.IntersectLine(math.Vec3{Z: 10}, math.Vec3{X: 1, Z: 10})
	assert.False(t, ok)

	// degenerate line
	_, ok = pl.IntersectLine(math.Vec3{Z: 10}, math.Vec3{Z: 10})
	assert.False(t, ok)
}

func TestRayIntersectPlane(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{Y: -1}}
	ground := PlaneThrough(math.Vec3{Y: 1}, math.Vec3{})

	d, ok := r.IntersectPlane(ground)
	require.True(t, ok)
	assert.InDelta(t, 10, d, tol)
	assert.Equal(t, math.Vec3{}, r.At(d))

	_, ok = Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{Y: 1}}.IntersectPlane(ground)
	assert.False(t, ok, "behind origin")
	_, ok = Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{X: 1}}.IntersectPlane(ground)
	assert.False(t, ok, "parallel")
}

func TestRayIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})
	assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: -1}, box.Min)
	assert.False(t, box.Empty())

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, tol)
			}
		})
	}
}

func TestRayTransform(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	got := r.Transform(math.Translate(0, 0, 5).Mul(math.Scale(2, 2, 2)))
	assert.Equal(t, math.Vec3{X: 2, Z: 5}, got.Origin)
	assert.InDelta(t, 1, got.Direction.Length(), tol)
}

func TestLineSphere(t *testing.T) {
	center := math.Vec3{X: 1}

	n, p1, p2 := LineSphere(math.Vec3{X: -10}, math.Vec3{X: 10}, center, 2)
	assert.Equal(t, 2, n)
	assert.InDelta(t, -1, p1.X, tol)
	assert.InDelta(t, 3, p2.X, tol)

	n, _, _ = LineSphere(math.Vec3{X: -10, Y: 5}, math.Vec3{X: 10, Y: 5}, center, 2)
	assert.Equal(t, 0, n)

	n, _, _ = LineSphere(math.Vec3{}, math.Vec3{}, center, 2)
	assert.Equal(t, 0, n)
}

func TestRaySphere(t *testing.T) {
	center := math.Vec3{Z: -5}
	assert.InDelta(t, 4, RaySphere(math.Vec3{}, math.Vec3{Z: -1}, center, 1), tol)
	// inside: exit distance
	assert.InDelta(t, 1, RaySphere(center, math.Vec3{Z: -1}, center, 1), tol)
	assert.Equal(t, float32(-1), RaySphere(math.Vec3{}, math.Vec3{X: 1}, center, 1))
}

func TestProjectToLine(t *testing.T) {
	got := ProjectToLine(math.Vec3{X: 3, Y: 4}, math.Vec3{}, math.Vec3{X: 10})
	assert.Equal(t, math.Vec3{X: 3}, got)

	p1 := math.Vec3{X: 1, Y: 1, Z: 1}
	assert.Equal(t, p1, ProjectToLine(math.Vec3{X: 9}, p1, p1))
}

func TestFrontFacing(t *testing.T) {
	mv := math.Translate(0, 0, -10)
	base := math.Vec3{}
	assert.True(t, FrontFacing(base, math.Vec3{Z: 1}, mv))
	assert.False(t, FrontFacing(base, math.Vec3{Z: -1}, mv))

	// turned around, the same vector faces away
	mv = math.Translate(0, 0, -10).Mul(math.RotateY(3.14159))
	assert.False(t, FrontFacing(base, math.Vec3{Z: 1}, mv))
}

type fakeDepth struct {
	depth float32
	ok    bool
	x, y  int
}

func (f *fakeDepth) ReadDepth(x, y int) (float32, bool) {
	f.x, f.y = x, y
	return f.depth, f.ok
}

func TestDepthXY(t *testing.T) {
	r := &fakeDepth{depth: 0.75, ok: true}
	d, ok := DepthXY(r, 3, 4)
	require.True(t, ok)
	assert.InDelta(t, 0.5, d, tol)
	assert.Equal(t, 3, r.x)
	assert.Equal(t, 4, r.y)

	_, ok = DepthXY(&fakeDepth{}, 0, 0)
	assert.False(t, ok)
	_, ok = DepthXY(nil, 0, 0)
	assert.False(t, ok)
}

func TestIsVisible(t *testing.T) {
	v := testView()
	full := v.Fullview()
	p := math.Vec3{}
	_, z := v.ScreenPoint(p)
	zWindow := (z + 1) / 2

	visible, s := IsVisible(p, full, testVP, &fakeDepth{depth: zWindow + 0.01, ok: true}, 0)
	assert.True(t, visible)
	assert.True(t, testVP.Contains(s.X, s.Y))

	visible, _ = IsVisible(p, full, testVP, &fakeDepth{depth: zWindow - 0.01, ok: true}, 0)
	assert.False(t, visible, "occluded")

	visible, _ = IsVisible(p, full, testVP, &fakeDepth{}, 0)
	assert.True(t, visible, "no depth available")

	visible, _ = IsVisible(math.Vec3{X: 1000}, full, testVP, nil, 0)
	assert.False(t, visible, "off screen")
}
