package widget

import (
	"fmt"

	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

// frameOriginAnchor addresses a node's mouse-down origin by id, so a
// gesture never holds a pointer into the tree's storage.
type frameOriginAnchor struct {
	tree *model.Tree
	id   model.NodeID
}

func (a frameOriginAnchor) Position() math.Vec3 {
	return a.tree.Node(a.id).FrameDown.Origin
}

func (a frameOriginAnchor) SetPosition(p math.Vec3) {
	a.tree.Node(a.id).FrameDown.Origin = p
}

// MeshFramer is a Framer for a node of a model.Tree. Moving or rotating the
// node carries its whole subtree along; scaling affects the node alone.
type MeshFramer struct {
	tree        *model.Tree
	node        model.NodeID
	mover       Mover
	arcball     *Arcball
	moverPicked bool
}

// NewMeshFramer returns a framer with no node selected.
func NewMeshFramer() *MeshFramer {
	return &MeshFramer{node: model.NoNode, arcball: NewArcball()}
}

// Set selects node id of tree, captures its frame, and centers a circle of
// the given pixel radius on its origin.
func (f *MeshFramer) Set(tree *model.Tree, id model.NodeID, radius float32, fullview math.Mat4, vp picking.Viewport) error {
	n := tree.Node(id)
	if n == nil {
		return fmt.Errorf("mesh framer: %w: %d", model.ErrInvalidNode, id)
	}
	f.tree = tree
	f.node = id
	n.FrameDown = model.FrameOf(n.Transform)
	f.arcball.SetBodyDetached(n.Transform, radius)
	s, _ := picking.ScreenPoint(n.FrameDown.Origin, fullview, vp)
	f.arcball.SetCenter(s)
	f.moverPicked = false
	return nil
}

// Clear deselects the node.
func (f *MeshFramer) Clear() {
	f.tree = nil
	f.node = model.NoNode
	f.mover.Unset()
	f.moverPicked = false
}

// IsSet reports whether a node is selected.
func (f *MeshFramer) IsSet() bool {
	return f.tree != nil && f.tree.Valid(f.node)
}

// Selected returns the selected node, or model.NoNode.
func (f *MeshFramer) Selected() model.NodeID {
	if !f.IsSet() {
		return model.NoNode
	}
	return f.node
}

// Arcball returns the rotation widget.
func (f *MeshFramer) Arcball() *Arcball { return f.arcball }

// MoverPicked reports whether the current gesture translates.
func (f *MeshFramer) MoverPicked() bool { return f.moverPicked }

// Track recenters the circle on the selected node after the view changed.
func (f *MeshFramer) Track(view picking.View) {
	if !f.IsSet() {
		return
	}
	s, _ := view.ScreenPoint(f.tree.Node(f.node).Transform.Origin())
	f.arcball.SetCenter(s)
}

// Hit reports whether (x, y) lies inside the circle.
func (f *MeshFramer) Hit(x, y int) bool {
	return f.IsSet() && f.arcball.Hit(x, y)
}

// SetFrameDown captures the frame of id and all its descendants.
func (f *MeshFramer) SetFrameDown(id model.NodeID) {
	if f.tree != nil {
		f.tree.CaptureFrames(id)
	}
}

// Down starts a gesture: translate when near the node origin, otherwise
// rotate, locked to the nearest node axis if control is held.
func (f *MeshFramer) Down(x, y int, view picking.View, control bool) {
	if !f.IsSet() {
		return
	}
	f.moverPicked = f.arcball.MouseOver(x, y)
	f.SetFrameDown(f.node)
	if f.moverPicked {
		f.mover.Down(frameOriginAnchor{tree: f.tree, id: f.node}, x, y, view)
		return
	}
	n := f.tree.Node(f.node)
	f.arcball.Down(x, y, control, &n.Transform)
}

// Drag continues the gesture.
func (f *MeshFramer) Drag(x, y int, view picking.View) {
	if !f.IsSet() {
		return
	}
	if !f.moverPicked {
		qrot := f.arcball.Drag(x, y)
		f.RotateTransform(f.node, qrot, nil)
		return
	}
	pDif := f.mover.Drag(x, y, view)
	n := f.tree.Node(f.node)
	n.Transform.SetOrigin(n.FrameDown.Origin)
	for _, c := range n.Children {
		f.TranslateTransform(c, pDif)
	}
	s, _ := view.ScreenPoint(n.FrameDown.Origin)
	f.arcball.SetCenter(s)
}

// Up ends the gesture.
func (f *MeshFramer) Up() {
	f.arcball.Up()
	f.mover.Unset()
}

// RotateTransform sets the orientation of id to its mouse-down orientation
// followed by qrot. With a pivot, the node origin also revolves about it.
// Descendants revolve about pivot, or about id's mouse-down origin when
// pivot is nil.
func (f *MeshFramer) RotateTransform(id model.NodeID, qrot math.Quat, pivot *math.Vec3) {
	n := f.tree.Node(id)
	if n == nil {
		return
	}
	qq := n.FrameDown.Orientation.Mul(qrot)
	qq.SetMatrix(&n.Transform, n.FrameDown.Scale)
	if pivot != nil {
		x := math.TranslateV(*pivot).Mul(qrot.ToMat4()).Mul(math.TranslateV(pivot.Negate()))
		n.Transform.SetOrigin(x.TransformPoint(n.FrameDown.Origin))
	}
	next := pivot
	if next == nil {
		origin := n.FrameDown.Origin
		next = &origin
	}
	for _, c := range n.Children {
		f.RotateTransform(c, qrot, next)
	}
}

// TranslateTransform moves id and its descendants to their mouse-down
// origins plus d.
func (f *MeshFramer) TranslateTransform(id model.NodeID, d math.Vec3) {
	f.tree.Walk(id, func(_ model.NodeID, n *model.Node) bool {
		n.Transform.SetOrigin(n.FrameDown.Origin.Add(d))
		return true
	})
}

// Wheel scales the selected node by 1.01 per forward tick and 0.99 per
// backward tick. Children keep their scale.
func (f *MeshFramer) Wheel(spin float32) {
	if !f.IsSet() || spin == 0 {
		return
	}
	n := f.tree.Node(f.node)
	if spin > 0 {
		n.FrameDown.Scale *= 1.01
	} else {
		n.FrameDown.Scale *= 0.99
	}
	if s := n.Transform.ScaleFactor(); s > 0 {
		n.Transform.Scale3x3(n.FrameDown.Scale / s)
	}
}

// Strokes returns the arcball outline over the selected node and a disk
// at its origin.
func (f *MeshFramer) Strokes(view picking.View, showConstrainAxes bool) []Stroke {
	if !f.IsSet() {
		return nil
	}
	n := f.tree.Node(f.node)
	s, _ := view.ScreenPoint(n.FrameDown.Origin)
	return append(f.arcball.Strokes(showConstrainAxes, &n.Transform), disk(s, 9, Pink))
}
