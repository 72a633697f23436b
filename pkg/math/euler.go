package math

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// EulerFromMatrix returns the x, y, z rotation angles (radians) of the upper
// 3x3 block of r, such that RotateZ(z)*RotateY(y)*RotateX(x) rebuilds it.
// Near gimbal lock z is fixed at zero.
func EulerFromMatrix(r Mat4) Vec3 {
	sy := math32.Sqrt(r.At(0, 0)*r.At(0, 0) + r.At(1, 0)*r.At(1, 0))
	if sy < 1e-6 {
		return Vec3{
			X: math32.Atan2(-r.At(1, 2), r.At(1, 1)),
			Y: math32.Atan2(-r.At(2, 0), sy),
			Z: 0,
		}
	}
	return Vec3{
		X: math32.Atan2(r.At(2, 1), r.At(2, 2)),
		Y: math32.Atan2(-r.At(2, 0), sy),
		Z: math32.Atan2(r.At(1, 0), r.At(0, 0)),
	}
}

// EulerMatrix returns RotateX(x)*RotateY(y)*RotateZ(z) for angles in degrees.
func EulerMatrix(degrees Vec3) Mat4 {
	return RotateX(DegToRad(degrees.X)).
		Mul(RotateY(DegToRad(degrees.Y))).
		Mul(RotateZ(DegToRad(degrees.Z)))
}
