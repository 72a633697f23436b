package ui2d

import "github.com/Faultbox/gizmo/pkg/math"

// floatsPerVertex is the solid vertex layout: x, y, z, r, g, b, a.
const floatsPerVertex = 7

// minSegment is the shortest segment that gets a quad, in pixels.
const minSegment = 1e-4

// appendSegment adds a quad of the given width centered on segment a-b,
// as two triangles.
func appendSegment(dst []float32, a, b math.Vec2, width float32, c Color) []float32 {
	d := b.Sub(a)
	l := d.Length()
	if l < minSegment {
		return dst
	}
	// half-width normal
	n := math.Vec2{X: -d.Y, Y: d.X}.Scale(width / (2 * l))

	p0, p1 := a.Add(n), a.Sub(n)
	p2, p3 := b.Sub(n), b.Add(n)
	for _, p := range [6]math.Vec2{p0, p1, p2, p0, p2, p3} {
		dst = append(dst, p.X, p.Y, 0, c.R, c.G, c.B, c.A)
	}
	return dst
}

// appendPolyline adds one quad per segment of pts. Joints are left open;
// at widget line widths the gaps are not visible.
func appendPolyline(dst []float32, pts []math.Vec2, width float32, c Color) []float32 {
	for i := 1; i < len(pts); i++ {
		dst = appendSegment(dst, pts[i-1], pts[i], width, c)
	}
	return dst
}

// appendRect adds a filled axis-aligned rectangle.
func appendRect(dst []float32, x, y, w, h float32, c Color) []float32 {
	return append(dst,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}
