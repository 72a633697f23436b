// Package ui2d draws the screen-space overlay: widget outlines and simple
// rectangles, batched into one solid-color draw per frame.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gizmo/internal/engine/shader"
	"github.com/Faultbox/gizmo/internal/engine/widget"
	"github.com/Faultbox/gizmo/pkg/math"
)

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Renderer handles overlay rendering with OpenGL. Coordinates are GL
// pixels: origin at the lower left, y up.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solid *shader.Program

	solidVAO uint32
	solidVBO uint32

	solidVertices []float32
}

// New creates a new overlay renderer.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
	}

	var err error
	r.solid, err = shader.NewProgram(solidVertexShader, solidFragmentShader, "uProjection")
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}

	r.createSolidBuffers()
	return r, nil
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// Begin starts a new overlay frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
}

// DrawStrokes queues widget outlines. Each stroke is drawn twice, a dark
// wider pass beneath so it reads on any background.
func (r *Renderer) DrawStrokes(strokes []widget.Stroke) {
	for _, s := range strokes {
		c := FromVec3(s.Color)
		r.solidVertices = appendPolyline(r.solidVertices, s.Points, s.Width+2, c.Darken(0.7).WithAlpha(0.6))
		r.solidVertices = appendPolyline(r.solidVertices, s.Points, s.Width, c)
	}
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.solidVertices = appendRect(r.solidVertices, x, y, width, height, color)
}

// End renders everything queued since Begin.
func (r *Renderer) End() {
	if len(r.solidVertices) == 0 {
		return
	}

	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	r.solid.Use()
	r.solid.SetMat4("uProjection", math.Ortho(0, float32(r.screenWidth), 0, float32(r.screenHeight), -1, 1))

	gl.BindVertexArray(r.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.solidVertices)*4, unsafe.Pointer(&r.solidVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.solidVertices)/floatsPerVertex))

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &r.solidVAO)
	}
	if r.solidVBO != 0 {
		gl.DeleteBuffers(1, &r.solidVBO)
	}
	if r.solid != nil {
		r.solid.Delete()
	}
}

func (r *Renderer) createSolidBuffers() {
	gl.GenVertexArrays(1, &r.solidVAO)
	gl.BindVertexArray(r.solidVAO)

	gl.GenBuffers(1, &r.solidVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)

	stride := int32(floatsPerVertex * 4)

	// Position attribute (location = 0): 3 floats
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1): 4 floats
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
