package widget

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/pkg/math"
)

// chain builds root (origin) -> arm (2, 0, 0) -> hand (2, 1, 0).
func chain(t *testing.T) (*model.Tree, model.NodeID, model.NodeID, model.NodeID) {
	t.Helper()
	tree := model.NewTree()
	root, err := tree.Add("root", model.NoNode, math.Identity())
	require.NoError(t, err)
	arm, err := tree.Add("arm", root, math.Translate(2, 0, 0))
	require.NoError(t, err)
	hand, err := tree.Add("hand", arm, math.Translate(2, 1, 0))
	require.NoError(t, err)
	return tree, root, arm, hand
}

func TestMeshFramerSetInvalid(t *testing.T) {
	view := testView()
	tree, _, _, _ := chain(t)
	f := NewMeshFramer()

	err := f.Set(tree, 42, 100, view.Fullview(), view.Viewport)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidNode))
	assert.False(t, f.IsSet())
	assert.Equal(t, model.NoNode, f.Selected())

	// unset framer ignores gestures
	f.Down(400, 300, view, false)
	f.Drag(410, 300, view)
	f.Wheel(1)
	f.Up()
	assert.Nil(t, f.Strokes(view, false))
}

func TestMeshFramerTranslatesSubtree(t *testing.T) {
	view := testView()
	tree, root, arm, hand := chain(t)
	f := NewMeshFramer()
	require.NoError(t, f.Set(tree, root, 100, view.Fullview(), view.Viewport))
	assert.Equal(t, root, f.Selected())

	f.Down(400, 300, view, false)
	require.True(t, f.MoverPicked())
	f.Drag(450, 300, view)
	f.Up()

	d := tree.Node(root).Transform.Origin()
	assert.Greater(t, d.X, float32(0))
	assert.InDelta(t, 0, d.Z, tol)
	assertVec3(t, math.Vec3{X: 2}.Add(d), tree.Node(arm).Transform.Origin(), tol)
	assertVec3(t, math.Vec3{X: 2, Y: 1}.Add(d), tree.Node(hand).Transform.Origin(), tol)
	assert.InDelta(t, 450, f.Arcball().Center().X, 0.1)
}

func TestMeshFramerRotateTransform(t *testing.T) {
	tree, root, arm, hand := chain(t)
	f := NewMeshFramer()
	require.NoError(t, f.Set(tree, root, 100, math.Identity(), testVP))

	f.SetFrameDown(root)
	qrot := math.QuatFromAxisAngle(math.Vec3{Z: 1}, math32.Pi/2)
	f.RotateTransform(root, qrot, nil)

	// the root turns in place, descendants revolve about its origin
	assertVec3(t, math.Vec3{}, tree.Node(root).Transform.Origin(), tol)
	assertVec3(t, math.Vec3{Y: 2}, tree.Node(arm).Transform.Origin(), tol)
	assertVec3(t, math.Vec3{X: -1, Y: 2}, tree.Node(hand).Transform.Origin(), tol)

	rz := math.RotateZ(math32.Pi / 2).Mat3x3()
	for _, id := range []model.NodeID{root, arm, hand} {
		got := tree.Node(id).Transform.Mat3x3()
		for i := range rz {
			assert.InDelta(t, rz[i], got[i], tol, "node %d element %d", id, i)
		}
	}

	// a second step is computed from the same mouse-down frames
	f.RotateTransform(root, qrot, nil)
	assertVec3(t, math.Vec3{Y: 2}, tree.Node(arm).Transform.Origin(), tol)
}

func TestMeshFramerRotateGesture(t *testing.T) {
	view := testView()
	tree, root, arm, _ := chain(t)
	f := NewMeshFramer()
	require.NoError(t, f.Set(tree, root, 100, view.Fullview(), view.Viewport))

	f.Down(400, 360, view, false)
	require.False(t, f.MoverPicked())
	f.Drag(460, 300, view)
	f.Up()

	assertVec3(t, math.Vec3{}, tree.Node(root).Transform.Origin(), tol)
	assert.InDelta(t, 2, tree.Node(arm).Transform.Origin().Length(), tol)
	assert.NotEqual(t, math.Identity().Mat3x3(), tree.Node(root).Transform.Mat3x3())
}

func TestMeshFramerWheelScalesSelectedOnly(t *testing.T) {
	view := testView()
	tree, root, arm, _ := chain(t)
	f := NewMeshFramer()
	require.NoError(t, f.Set(tree, root, 100, view.Fullview(), view.Viewport))

	f.Wheel(1)
	assert.InDelta(t, 1.01, tree.Node(root).Transform.ScaleFactor(), 1e-5)
	assert.InDelta(t, 1, tree.Node(arm).Transform.ScaleFactor(), 1e-5)
	f.Wheel(-1)
	assert.InDelta(t, 1.01*0.99, tree.Node(root).Transform.ScaleFactor(), 1e-5)

	assert.Len(t, f.Strokes(view, false), 2)
	f.Clear()
	assert.False(t, f.IsSet())
}
