package math

import (
	"math"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix in row-major order, applied to column vectors.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// The translation of an affine transform lives in column 3 (m3, m7, m11).
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix mapping the view
// frustum to [-1, 1] clip space. fovY is in radians, aspect is width/height,
// near and far are positive distances along -z.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	t := math32.Tan(fovY / 2)
	fnDif := far - near
	var m Mat4
	m[0] = 1 / (aspect * t)
	m[5] = 1 / t
	m[10] = -(far + near) / fnDif
	m[11] = -2 * far * near / fnDif
	m[14] = -1
	return m
}

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view frustum boundaries.
// near and far define the depth range.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	m := Identity()
	m[0] = 2 / (right - left)
	m[3] = -(right + left) / (right - left)
	m[5] = 2 / (top - bottom)
	m[7] = -(top + bottom) / (top - bottom)
	m[10] = -2 / (far - near)
	m[11] = -(far + near) / (far - near)
	return m
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	return LookTowards(eye, center.Sub(eye), up)
}

// LookTowards returns a view matrix at eye looking along dir.
func LookTowards(eye, dir, up Vec3) Mat4 {
	f := dir.Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[3] = x
	m[7] = y
	m[11] = z
	return m
}

// TranslateV returns a translation matrix for v.
func TranslateV(v Vec3) Mat4 {
	return Translate(v.X, v.Y, v.Z)
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[5] = c
	m[6] = -s
	m[9] = s
	m[10] = c
	return m
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[0] = c
	m[2] = s
	m[8] = -s
	m[10] = c
	return m
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[0] = c
	m[1] = -s
	m[4] = s
	m[5] = c
	return m
}

// RotateAxis creates a rotation matrix around an arbitrary axis.
// The axis is normalized here; angle is in radians.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	a := axis.Normalize()
	c, s := math32.Cos(angle), math32.Sin(angle)
	t := 1 - c
	return Mat4{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[r*4+c]
}

// Set sets the element at row r, column c.
func (m *Mat4) Set(r, c int, v float32) {
	m[r*4+c] = v
}

// Row returns row r.
func (m Mat4) Row(r int) Vec4 {
	return Vec4{m[r*4], m[r*4+1], m[r*4+2], m[r*4+3]}
}

// Col returns column c.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[c], m[4+c], m[8+c], m[12+c]}
}

// Mul multiplies this matrix by another (m * other); other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r*4+c] = m[r*4]*other[c] +
				m[r*4+1]*other[4+c] +
				m[r*4+2]*other[8+c] +
				m[r*4+3]*other[12+c]
		}
	}
	return result
}

// MulVec4 applies the matrix to v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// TransformPoint transforms a point (w=1) and drops w without dividing.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec4(p.Vec4(1)).Vec3()
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return m.MulVec4(d.Vec4(0)).Vec3()
}

// Project transforms p (w=1) and performs the perspective divide.
func (m Mat4) Project(p Vec3) (Vec3, bool) {
	return m.MulVec4(p.Vec4(1)).PerspectiveDivide()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[c*4+r] = m[r*4+c]
		}
	}
	return result
}

// Mat3x3 returns the upper-left 3x3 portion of the matrix.
func (m Mat4) Mat3x3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// FromMat3x3 creates a Mat4 from a 3x3 rotation matrix.
func FromMat3x3(m3 Mat3) Mat4 {
	m := Identity()
	m.SetMat3x3(m3)
	return m
}

// SetMat3x3 overwrites the upper-left 3x3 block, leaving translation intact.
func (m *Mat4) SetMat3x3(m3 Mat3) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*4+c] = m3[r*3+c]
		}
	}
}

// Origin returns the translation column.
func (m Mat4) Origin() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// SetOrigin overwrites the translation column.
func (m *Mat4) SetOrigin(p Vec3) {
	m[3] = p.X
	m[7] = p.Y
	m[11] = p.Z
}

// ScaleFactor returns the length of the first basis column, which is the
// uniform scale of a rotate+scale block.
func (m Mat4) ScaleFactor() float32 {
	return Vec3{m[0], m[4], m[8]}.Length()
}

// Scale3x3 multiplies the upper-left 3x3 block by s.
func (m *Mat4) Scale3x3(s float32) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*4+c] *= s
		}
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
// The data is row-major, so upload with transpose set.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// singularDet is the smallest determinant magnitude Inverse accepts.
const singularDet = 1e-24

// Inverse returns the inverse of the matrix using cofactor expansion.
// ok is false if the matrix is singular or not finite; the returned matrix
// is then the zero matrix.
func (m Mat4) Inverse() (Mat4, bool) {
	var a [16]float64
	for i, v := range m {
		a[i] = float64(v)
	}

	// Calculate cofactors
	c00 := a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	c01 := -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	c02 := a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	c03 := -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]

	c10 := -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	c11 := a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	c12 := -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	c13 := a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]

	c20 := a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	c21 := -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	c22 := a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	c23 := -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]

	c30 := -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	c31 := a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	c32 := -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	c33 := a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*c00 + a[4]*c01 + a[8]*c02 + a[12]*c03
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) < singularDet {
		return Mat4{}, false
	}

	invDet := 1 / det
	cof := [16]float64{
		c00, c01, c02, c03,
		c10, c11, c12, c13,
		c20, c21, c22, c23,
		c30, c31, c32, c33,
	}
	var result Mat4
	for i, c := range cof {
		result[i] = float32(c * invDet)
	}
	return result, true
}
