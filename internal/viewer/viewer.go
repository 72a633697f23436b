// Package viewer implements the interactive main loop: it feeds input to
// the camera and node manipulator and draws the tree with their outlines.
package viewer

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/config"
	"github.com/Faultbox/gizmo/internal/engine/camera"
	"github.com/Faultbox/gizmo/internal/engine/debug"
	"github.com/Faultbox/gizmo/internal/engine/input"
	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/renderer"
	"github.com/Faultbox/gizmo/internal/engine/window"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/pkg/math"
)

const title = "Gizmo"

// boundsColor is the wireframe color of the selected node's bounds.
var boundsColor = math.Vec3{X: 0.3, Y: 1, Z: 0.4}

// lightHandleLength is the world length of the light joystick.
const lightHandleLength = 1.5

// Viewer is the main viewer instance.
type Viewer struct {
	cfg        *config.Config
	running    bool
	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	camera     *camera.ArcballCamera
	tree       *model.Tree
	controller *input.Controller
	screenshot *debug.ScreenshotCapture
	lightBase  math.Vec3
	lightVec   math.Vec3
	log        *zap.Logger
}

// New creates the window and GL state and sets up the camera over tree.
// A saved camera state is restored when cfg names one.
func New(cfg *config.Config, tree *model.Tree) (*Viewer, error) {
	v := &Viewer{
		cfg:  cfg,
		tree: tree,
		log:  logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("nodes", tree.Len()),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// the GL context must exist before the renderer
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.camera = NewCamera(cfg.Camera, picking.Viewport{Width: w, Height: h})
	v.controller = input.NewController(v.camera, tree, cfg.Widgets.ArcballRadius)
	v.controller.SetProximity(cfg.Widgets.Proximity)
	v.controller.SetDepthReader(v.renderer.DepthReader())
	v.lightBase = math.Vec3{X: -3, Y: 2}
	v.lightVec = v.renderer.LightDir().Scale(lightHandleLength)
	v.controller.SetJoystick(widget.PointAnchor{P: &v.lightBase}, widget.PointAnchor{P: &v.lightVec})
	v.input = input.New()
	v.screenshot = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "gizmo")

	v.log.Info("mouse bindings", zap.String("usage", camera.Usage()))
	return v, nil
}

// NewCamera builds the camera described by cfg and restores its saved
// state, if any. A missing state file is not an error.
func NewCamera(cfg config.CameraConfig, vp picking.Viewport) *camera.ArcballCamera {
	p := camera.Params{
		FOV:            cfg.FOV,
		Near:           cfg.Near,
		Far:            cfg.Far,
		InvertVertical: cfg.InvertVertical,
		TranSpeed:      cfg.TranSpeed,
	}
	rot := math.Vec3{X: cfg.Rotation[0], Y: cfg.Rotation[1], Z: cfg.Rotation[2]}
	tran := math.Vec3{X: cfg.Translation[0], Y: cfg.Translation[1], Z: cfg.Translation[2]}
	cam := camera.NewFromEuler(vp, rot, tran, p)

	if cfg.StateFile == "" {
		return cam
	}
	if err := cam.Read(cfg.StateFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring camera state", zap.Error(err))
		}
	}
	return cam
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handle(event)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)
		e.Width, e.Height = w, h
	case input.EventKeyDown:
		// q quits; escape only clears the selection
		switch e.Key {
		case sdl.SCANCODE_Q:
			v.running = false
			return
		case sdl.SCANCODE_F12:
			v.takeScreenshot()
			return
		}
	}

	before := v.controller.Framer().Selected()
	v.controller.Handle(e)
	if after := v.controller.Framer().Selected(); after != before {
		v.updateTitle(after)
	}
	if v.controller.Target() == input.TargetJoystick {
		v.renderer.SetLightDir(v.lightVec)
	}
}

func (v *Viewer) updateTitle(selected model.NodeID) {
	if n := v.tree.Node(selected); n != nil {
		v.window.SetTitle(title + " - " + n.Name)
		return
	}
	v.window.SetTitle(title)
}

func (v *Viewer) takeScreenshot() {
	path, err := v.renderer.Screenshot(v.screenshot)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("saved screenshot", zap.String("path", path))
}

// Strokes returns the outlines to draw over the scene: the node
// manipulator, the light joystick, and the camera arcball while it is
// being dragged. With Debug.ShowBounds the selected node's mesh bounds are
// outlined too.
func (v *Viewer) Strokes() []widget.Stroke {
	show := v.cfg.Widgets.ShowConstrainAxes
	view := v.camera.View()
	var strokes []widget.Stroke
	if n := v.tree.Node(v.controller.Framer().Selected()); n != nil && n.Mesh != nil && v.cfg.Debug.ShowBounds {
		strokes = debug.BBoxStrokes(n.Mesh.Bounds, n.Transform, view, boundsColor)
	}
	strokes = append(strokes, v.controller.Framer().Strokes(view, show)...)
	strokes = append(strokes, v.controller.Joystick().Strokes(view)...)
	if v.controller.Target() == input.TargetCamera && !v.camera.Shift() {
		strokes = append(strokes, v.camera.Arcball().Strokes(show, nil)...)
	}
	return strokes
}

func (v *Viewer) render() {
	v.renderer.Frame(v.tree, v.camera.View(), v.controller.Framer().Selected(), v.Strokes())
}

// Close saves the camera state and releases resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.camera != nil && v.cfg.Camera.StateFile != "" {
		if err := v.camera.Save(v.cfg.Camera.StateFile); err != nil {
			v.log.Warn("failed to save camera state", zap.Error(err))
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
