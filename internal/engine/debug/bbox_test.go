package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

func unitBox() picking.AABB {
	return picking.NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
}

func TestBBoxEdges(t *testing.T) {
	edges := BBoxEdges(unitBox(), math.Translate(5, 0, 0))

	for i, e := range edges {
		// every edge is axis aligned with length 2
		assert.InDelta(t, 2, e[0].Distance(e[1]), 1e-5, "edge %d", i)
		for _, p := range e {
			assert.InDelta(t, 5, p.X, 1+1e-5)
			assert.InDelta(t, 1, abs(p.Y), 1e-5)
			assert.InDelta(t, 1, abs(p.Z), 1e-5)
		}
	}
}

func TestBBoxStrokes(t *testing.T) {
	view := picking.View{
		Modelview: math.Translate(0, 0, -10),
		Persp:     math.Perspective(math.DegToRad(30), 4.0/3.0, 0.1, 100),
		Viewport:  picking.Viewport{Width: 800, Height: 600},
	}
	color := math.Vec3{Y: 1}

	strokes := BBoxStrokes(unitBox(), math.Identity(), view, color)
	require.Len(t, strokes, BBoxEdgeCount)
	for _, s := range strokes {
		require.Len(t, s.Points, 2)
		assert.Equal(t, color, s.Color)
		for _, p := range s.Points {
			assert.True(t, view.Viewport.Contains(p.X, p.Y), "point %v off screen", p)
		}
	}

	// a box around the eye has every edge crossing behind it
	behind := BBoxStrokes(unitBox(), math.Translate(0, 0, 10), view, color)
	assert.Less(t, len(behind), BBoxEdgeCount)

	assert.Nil(t, BBoxStrokes(picking.AABB{Min: math.Vec3{X: 1}, Max: math.Vec3{}}, math.Identity(), view, color))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
