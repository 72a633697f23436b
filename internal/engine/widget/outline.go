package widget

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gizmo/pkg/math"
)

// Widget colors.
var (
	Pink   = math.Vec3{X: 1, Y: 0.2, Z: 0.8}
	Yellow = math.Vec3{X: 1, Y: 1, Z: 0}
)

// strokeWidth is the line width of widget outlines, in pixels.
const strokeWidth = 2

// Stroke is a screen-space polyline, in pixels, for the overlay renderer.
type Stroke struct {
	Points []math.Vec2
	Color  math.Vec3
	Width  float32
}

// circle returns a closed polyline of n segments.
func circle(center math.Vec2, radius float32, n int, color math.Vec3) Stroke {
	pts := make([]math.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		ang := 2 * math32.Pi * float32(i) / float32(n)
		pts = append(pts, math.Vec2{
			X: center.X + radius*math32.Cos(ang),
			Y: center.Y + radius*math32.Sin(ang),
		})
	}
	return Stroke{Points: pts, Color: color, Width: strokeWidth}
}

// Strokes returns the outline of the arcball: the outer circle, the arc
// being dragged, and the candidate or locked constraint axes. override
// replaces the bound matrix for body axes. Nothing is drawn for an arcball
// with no matrix.
func (a *Arcball) Strokes(showConstrainAxes bool, override *math.Mat4) []Stroke {
	mm := override
	if mm == nil {
		mm = a.m
	}
	if mm == nil {
		return nil
	}

	var strokes []Stroke
	v1, v2 := a.BallV(a.mouseDown), a.BallV(a.mouseMove)
	showConstrain := showConstrainAxes || a.constrainIndex != noConstraint

	switch {
	case !showConstrain && a.mouseDown.Distance(a.mouseMove) > 2:
		arc := Stroke{Color: Pink, Width: strokeWidth}
		for i := 0; i < 24; i++ {
			q := v1.Lerp(v2, float32(i)/23)
			v := q.Normalize().Scale(a.radius)
			arc.Points = append(arc.Points, a.center.Add(v.XY()))
		}
		strokes = append(strokes, arc)
	case showConstrain && a.use == UseCamera:
		c, r := a.center, a.radius
		if a.constrainIndex == 0 || !a.dragging {
			strokes = append(strokes, Stroke{
				Points: []math.Vec2{{X: c.X, Y: c.Y - r}, {X: c.X, Y: c.Y + r}},
				Color:  Yellow, Width: strokeWidth,
			})
		}
		if a.constrainIndex == 1 || !a.dragging {
			strokes = append(strokes, Stroke{
				Points: []math.Vec2{{X: c.X - r, Y: c.Y}, {X: c.X + r, Y: c.Y}},
				Color:  Yellow, Width: strokeWidth,
			})
		}
	case showConstrain && a.use == UseBody:
		for i := 0; i < 3; i++ {
			if a.dragging && a.constrainIndex != i {
				continue
			}
			strokes = append(strokes, a.axisArc(mm.Col(i).Vec3().Normalize(), i == a.constrainIndex))
		}
	}

	outer := circle(a.center, a.radius, 35, Pink)
	if a.use == UseCamera && showConstrain && a.constrainIndex == 2 {
		outer.Color = Yellow
	}
	return append(strokes, outer)
}

// axisArc draws the projected front half of the great circle perpendicular
// to axis.
func (a *Arcball) axisArc(axis math.Vec3, locked bool) Stroke {
	u, ok := math.Vec3{X: axis.Y, Y: -axis.X}.TryNormalize()
	if !ok {
		u = math.Vec3{Y: 1}
	}
	w := u.Cross(axis)
	color := Pink
	if locked {
		color = Yellow
	}
	s := Stroke{Color: color, Width: strokeWidth}
	for k := 0; k <= 18; k++ {
		ang := math32.Pi * float32(k) / 18
		v := u.Scale(math32.Cos(ang)).Add(w.Scale(math32.Sin(ang)))
		s.Points = append(s.Points, a.center.Add(v.XY().Scale(a.radius)))
	}
	return s
}

// disk returns a small filled-looking ring marking a pivot.
func disk(center math.Vec2, diameter float32, color math.Vec3) Stroke {
	s := circle(center, diameter/2, 12, color)
	s.Width = diameter / 2
	return s
}
