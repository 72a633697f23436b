// Package scene renders the node tree into an offscreen framebuffer and
// presents it. The framebuffer's depth stays readable for picking.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/engine/framebuffer"
	"github.com/Faultbox/gizmo/internal/engine/lighting"
	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/internal/engine/shader"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
}

// gpuMesh is a mesh uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Scene draws model.Tree nodes as flat-shaded meshes.
type Scene struct {
	framebuffer *framebuffer.Framebuffer
	program     *shader.Program
	meshes      map[*model.Mesh]*gpuMesh
	log         *zap.Logger

	LightDir       math.Vec3
	AmbientColor   math.Vec3
	Background     math.Vec3
	HighlightColor math.Vec3
}

// New creates a new scene with the given configuration.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		meshes:         make(map[*model.Mesh]*gpuMesh),
		log:            logger.Named("scene"),
		LightDir:       lighting.SunDirection(30, 50),
		AmbientColor:   math.Vec3{X: 0.25, Y: 0.25, Z: 0.25},
		Background:     math.Vec3{X: 0.12, Y: 0.12, Z: 0.15},
		HighlightColor: math.Vec3{X: 1, Y: 0.85, Z: 0.4},
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.program, err = shader.NewProgram(meshVertexShader, meshFragmentShader,
		"uMVP", "uModel", "uColor", "uLightDir", "uAmbient")
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	return s, nil
}

// Resize resizes the offscreen target.
func (s *Scene) Resize(width, height int32) {
	s.framebuffer.Resize(width, height)
}

// ReadDepth reads the depth of the last rendered frame at GL pixel (x, y).
func (s *Scene) ReadDepth(x, y int) (float32, bool) {
	return s.framebuffer.ReadDepth(x, y)
}

var _ picking.DepthReader = (*Scene)(nil)

// Render draws every node with a mesh into the offscreen target. The
// selected node is tinted with HighlightColor.
func (s *Scene) Render(tree *model.Tree, view picking.View, selected model.NodeID) {
	s.framebuffer.Bind()
	s.framebuffer.Clear(s.Background.X, s.Background.Y, s.Background.Z, 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	s.program.Use()
	s.program.SetVec3("uLightDir", s.LightDir)
	s.program.SetVec3("uAmbient", s.AmbientColor)

	fullview := view.Fullview()
	tree.WalkAll(func(id model.NodeID, n *model.Node) bool {
		if n.Mesh == nil || len(n.Mesh.Indices) == 0 {
			return true
		}
		m := s.upload(n.Mesh)
		color := n.Color
		if id == selected {
			color = color.Mul(s.HighlightColor)
		}
		s.program.SetMat4("uMVP", fullview.Mul(n.Transform))
		s.program.SetMat4("uModel", n.Transform)
		s.program.SetVec3("uColor", color)

		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
		return true
	})

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

// ReadPixels returns the last rendered frame as RGBA rows, bottom row first.
func (s *Scene) ReadPixels() (pixels []byte, width, height int) {
	w, h := s.framebuffer.Size()
	return s.framebuffer.ReadPixels(), int(w), int(h)
}

// Present copies the rendered frame to the window.
func (s *Scene) Present() {
	s.framebuffer.BlitToScreen()
}

// upload returns the GPU copy of mesh, creating it on first use.
func (s *Scene) upload(mesh *model.Mesh) *gpuMesh {
	if m, ok := s.meshes[mesh]; ok {
		return m
	}

	m := &gpuMesh{indexCount: int32(len(mesh.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	s.meshes[mesh] = m
	s.log.Debug("uploaded mesh", zap.Int("vertices", len(mesh.Vertices)), zap.Int("indices", len(mesh.Indices)))
	return m
}

// Destroy releases all OpenGL resources.
func (s *Scene) Destroy() {
	for mesh, m := range s.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		delete(s.meshes, mesh)
	}
	if s.program != nil {
		s.program.Delete()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
