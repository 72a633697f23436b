// Package renderer owns the OpenGL state of the viewer: the scene pass into
// the offscreen target and the overlay pass on the window.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/debug"
	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/scene"
	"github.com/Faultbox/gizmo/internal/engine/ui2d"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/pkg/math"
)

// Config holds renderer configuration. Sizes are drawable pixels.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	scene   *scene.Scene
	overlay *ui2d.Renderer
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.DepthFunc(gl.LESS)

	var err error
	r.scene, err = scene.New(scene.Config{Width: int32(cfg.Width), Height: int32(cfg.Height)})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	r.overlay, err = ui2d.New(cfg.Width, cfg.Height)
	if err != nil {
		r.scene.Destroy()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	return r, nil
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.overlay != nil {
		r.overlay.Close()
	}
	if r.scene != nil {
		r.scene.Destroy()
	}
}

// Resize updates the render targets for a new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.scene.Resize(int32(width), int32(height))
	r.overlay.Resize(width, height)
}

// LightDir returns the unit direction towards the scene light.
func (r *Renderer) LightDir() math.Vec3 { return r.scene.LightDir }

// SetLightDir aims the scene light. Zero vectors are ignored.
func (r *Renderer) SetLightDir(d math.Vec3) {
	if u, ok := d.TryNormalize(); ok {
		r.scene.LightDir = u
	}
}

// DepthReader returns the depth of the last rendered scene, for picking.
func (r *Renderer) DepthReader() picking.DepthReader {
	return r.scene
}

// Frame draws the tree, presents it, then draws strokes on top.
func (r *Renderer) Frame(tree *model.Tree, view picking.View, selected model.NodeID, strokes []widget.Stroke) {
	r.scene.Render(tree, view, selected)
	r.scene.Present()

	r.overlay.Begin()
	r.overlay.DrawStrokes(strokes)
	r.overlay.End()
}

// Screenshot saves the last rendered scene, without overlay, as a PNG.
func (r *Renderer) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	pixels, w, h := r.scene.ReadPixels()
	path, err := sc.CaptureFromPixels(pixels, w, h)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}
