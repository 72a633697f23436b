package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/camera"
	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/pkg/math"
)

// depthFudge is the NDC slack allowed when checking a pick against the
// depth buffer.
const depthFudge = 0.01

// Target is the receiver of the current mouse gesture.
type Target int

const (
	TargetNone Target = iota
	TargetCamera
	TargetFramer
	TargetJoystick
)

func (t Target) String() string {
	switch t {
	case TargetCamera:
		return "camera"
	case TargetFramer:
		return "framer"
	case TargetJoystick:
		return "joystick"
	default:
		return "none"
	}
}

// Controller routes mouse events to the camera or to the manipulator of
// the selected node. A press on a joystick handle drags that handle. A
// press inside the manipulator circle edits the node, a press on another
// node selects it, and anything else moves the camera.
type Controller struct {
	cam      *camera.ArcballCamera
	tree     *model.Tree
	framer   *widget.MeshFramer
	joystick *widget.Joystick
	joyBase  widget.Anchor
	joyVec   widget.Anchor
	depth    picking.DepthReader
	radius   float32
	height   int
	target   Target
	log      *zap.Logger
}

// NewController returns a controller for cam over tree. radius is the
// manipulator circle size in pixels.
func NewController(cam *camera.ArcballCamera, tree *model.Tree, radius float32) *Controller {
	return &Controller{
		cam:    cam,
		tree:   tree,
		framer: widget.NewMeshFramer(),
		radius: radius,
		height: cam.Viewport().Height,
		log:    logger.Named("input"),
	}
}

// SetDepthReader enables occlusion tests when picking nodes.
func (c *Controller) SetDepthReader(r picking.DepthReader) { c.depth = r }

// SetProximity sets the pixel radius for grabbing the node origin.
func (c *Controller) SetProximity(p float32) { c.framer.Arcball().SetProximity(p) }

// SetJoystick shows a joystick for the vector vec rooted at base.
func (c *Controller) SetJoystick(base, vec widget.Anchor) {
	c.joyBase, c.joyVec = base, vec
	c.joystick = &widget.Joystick{}
	c.joystick.SetBase(base)
	c.joystick.SetVector(vec)
}

// Joystick returns the joystick, or nil if none was set.
func (c *Controller) Joystick() *widget.Joystick { return c.joystick }

// Framer returns the node manipulator.
func (c *Controller) Framer() *widget.MeshFramer { return c.framer }

// Target returns the receiver of the current gesture.
func (c *Controller) Target() Target { return c.target }

// Select puts the manipulator on node id.
func (c *Controller) Select(id model.NodeID) error {
	view := c.cam.View()
	if err := c.framer.Set(c.tree, id, c.radius, view.Fullview(), view.Viewport); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	c.log.Debug("selected node", zap.Int("id", int(id)), zap.String("name", c.tree.Node(id).Name))
	return nil
}

// Handle applies one event.
func (c *Controller) Handle(e Event) {
	x, y := e.MouseX, c.height-e.MouseY
	switch e.Type {
	case EventWindowResize:
		c.cam.Resize(e.Width, e.Height)
		c.height = e.Height
		c.framer.Track(c.cam.View())

	case EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			c.down(x, y, e.Mods)
		}

	case EventMouseMove:
		if c.target != TargetNone {
			c.drag(x, y)
		}

	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			c.up()
		}

	case EventMouseWheel:
		if c.framer.Hit(x, y) {
			c.framer.Wheel(e.WheelY)
		} else {
			c.cam.MouseWheel(e.WheelY)
			c.framer.Track(c.cam.View())
		}

	case EventKeyDown:
		if e.Key == sdl.SCANCODE_ESCAPE && c.target == TargetNone {
			c.framer.Clear()
		}
	}
}

func (c *Controller) down(x, y int, mods Modifiers) {
	view := c.cam.View()
	if c.joystick != nil && c.joystick.Down(x, y, c.joyBase, c.joyVec, view) != widget.JoystickNone {
		c.target = TargetJoystick
		c.log.Debug("joystick down", zap.Stringer("mode", c.joystick.Mode()))
		return
	}
	if !c.framer.Hit(x, y) && !mods.Shift {
		if id, ok := c.Pick(x, y); ok && id != c.framer.Selected() {
			if err := c.Select(id); err != nil {
				c.log.Warn("pick failed", zap.Error(err))
			}
		}
	}
	if c.framer.Hit(x, y) {
		c.target = TargetFramer
		c.framer.Down(x, y, view, mods.Control)
		c.log.Debug("framer down", logger.Vec2("mouse", math.Vec2{X: float32(x), Y: float32(y)}),
			zap.Bool("move", c.framer.MoverPicked()))
		return
	}
	c.target = TargetCamera
	c.cam.MouseDown(x, y, mods.Shift, mods.Control)
	c.log.Debug("camera down", logger.Vec2("mouse", math.Vec2{X: float32(x), Y: float32(y)}),
		zap.Bool("pan", mods.Shift))
}

func (c *Controller) drag(x, y int) {
	switch c.target {
	case TargetFramer:
		c.framer.Drag(x, y, c.cam.View())
	case TargetJoystick:
		c.joystick.Drag(x, y, c.cam.View())
	case TargetCamera:
		c.cam.MouseDrag(x, y)
		c.framer.Track(c.cam.View())
	}
}

func (c *Controller) up() {
	switch c.target {
	case TargetFramer:
		c.framer.Up()
	case TargetJoystick:
		c.joystick.Up()
	case TargetCamera:
		c.cam.MouseUp()
	}
	c.log.Debug("gesture end", zap.Stringer("target", c.target))
	c.target = TargetNone
}

// Pick returns the nearest visible node whose mesh bounds lie under GL
// pixel (x, y).
func (c *Controller) Pick(x, y int) (model.NodeID, bool) {
	view := c.cam.View()
	ray, ok := view.ScreenRay(float32(x), float32(y))
	if !ok {
		return model.NoNode, false
	}
	fullview := view.Fullview()
	best, bestDist := model.NoNode, float32(-1)
	c.tree.WalkAll(func(id model.NodeID, n *model.Node) bool {
		if n.Mesh == nil || n.Mesh.Bounds.Empty() {
			return true
		}
		inv, ok := n.Transform.Inverse()
		if !ok {
			return true
		}
		local := ray.Transform(inv)
		t, hit := local.IntersectAABB(n.Mesh.Bounds)
		if !hit {
			return true
		}
		p := n.Transform.TransformPoint(local.At(t))
		if c.depth != nil {
			if visible, _ := picking.IsVisible(p, fullview, view.Viewport, c.depth, depthFudge); !visible {
				return true
			}
		}
		if d := p.Distance(ray.Origin); bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
		return true
	})
	return best, best != model.NoNode
}
