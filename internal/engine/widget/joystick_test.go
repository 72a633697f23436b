package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/pkg/math"
)

func TestJoystickModeString(t *testing.T) {
	assert.Equal(t, "none", JoystickNone.String())
	assert.Equal(t, "base", JoystickBase.String())
	assert.Equal(t, "tip", JoystickTip.String())
}

func TestJoystickDragBase(t *testing.T) {
	view := testView()
	base := math.Vec3{}
	vec := math.Vec3{Y: 0.6, Z: 0.8}
	var j Joystick

	mode := j.Down(400, 300, PointAnchor{P: &base}, PointAnchor{P: &vec}, view)
	require.Equal(t, JoystickBase, mode)
	j.Drag(450, 300, view)
	j.Up()

	assert.Greater(t, base.X, float32(0))
	assert.InDelta(t, 0, base.Z, tol)
	assertVec3(t, math.Vec3{Y: 0.6, Z: 0.8}, vec, 0)
	assert.Equal(t, JoystickNone, j.Mode())
}

func TestJoystickDragTipKeepsLengthAndFacing(t *testing.T) {
	view := testView()
	base := math.Vec3{}
	vec := math.Vec3{Y: 0.6, Z: 0.8}
	var j Joystick

	x, y := pixel(t, view, vec)
	mode := j.Down(x, y, PointAnchor{P: &base}, PointAnchor{P: &vec}, view)
	require.Equal(t, JoystickTip, mode)

	// the line under this pixel meets the sphere in front and behind;
	// the front hit keeps the vector facing the camera
	target := math.Vec3{X: 0.6, Z: 0.8}
	s, _ := view.ScreenPoint(target)
	j.Drag(int(s.X+0.5), int(s.Y+0.5), view)

	assert.InDelta(t, 1, vec.Length(), 1e-4)
	assertVec3(t, target, vec, 0.01)
	assertVec3(t, math.Vec3{}, base, 0)
}

func TestJoystickDragTipOffSphere(t *testing.T) {
	view := testView()
	base := math.Vec3{}
	vec := math.Vec3{Y: 0.6, Z: 0.8}
	var j Joystick

	x, y := pixel(t, view, vec)
	j.Down(x, y, PointAnchor{P: &base}, PointAnchor{P: &vec}, view)
	j.Drag(790, 300, view)

	assert.InDelta(t, 1, vec.Length(), 1e-4)
	assert.Greater(t, vec.X, float32(0.9))
}

func TestJoystickMiss(t *testing.T) {
	view := testView()
	base := math.Vec3{}
	vec := math.Vec3{Y: 0.6, Z: 0.8}
	var j Joystick

	assert.Nil(t, j.Strokes(view))
	mode := j.Down(100, 100, PointAnchor{P: &base}, PointAnchor{P: &vec}, view)
	assert.Equal(t, JoystickNone, mode)
	j.Drag(200, 200, view)
	assertVec3(t, math.Vec3{}, base, 0)
	assertVec3(t, math.Vec3{Y: 0.6, Z: 0.8}, vec, 0)
	assert.Len(t, j.Strokes(view), 3)
}
