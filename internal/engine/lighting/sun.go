// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gizmo/pkg/math"
)

// SunDirection converts longitude/latitude angles, in degrees, to a unit
// vector pointing towards the sun. Longitude turns about Y, starting at +Z;
// latitude is the elevation above the XZ plane.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := math.DegToRad(longitude)
	lat := math.DegToRad(latitude)

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
