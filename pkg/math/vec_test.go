package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
	if got := v.LengthSq(); got != 25 {
		t.Errorf("Vec2.LengthSq() = %v, want 25", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero Vec2.Normalize() = %v, want zero", z)
	}
}

func TestVec2Cross(t *testing.T) {
	assert.Equal(t, float32(1), Vec2{1, 0}.Cross(Vec2{0, 1}))
	assert.Equal(t, float32(-1), Vec2{0, 1}.Cross(Vec2{1, 0}))
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
	if got := y.Cross(x); got != want.Negate() {
		t.Errorf("Vec3.Cross() reversed = %v, want %v", got, want.Negate())
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), Vec3{5, 7, 9}},
		{"sub", b.Sub(a), Vec3{3, 3, 3}},
		{"scale", a.Scale(2), Vec3{2, 4, 6}},
		{"mul", a.Mul(b), Vec3{4, 10, 18}},
		{"negate", a.Negate(), Vec3{-1, -2, -3}},
		{"lerp", a.Lerp(b, 0.5), Vec3{2.5, 3.5, 4.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Equal(t, float32(32), a.Dot(b))
}

func TestVec3Normalize(t *testing.T) {
	n, ok := Vec3{0, 3, 4}.TryNormalize()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, n.Y, tol)
	assert.InDelta(t, 0.8, n.Z, tol)

	// zero length never yields NaN
	z, ok := Vec3{}.TryNormalize()
	assert.False(t, ok)
	assert.Equal(t, Vec3{}, z)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec4PerspectiveDivide(t *testing.T) {
	p, ok := Vec4{2, 4, 6, 2}.PerspectiveDivide()
	assert.True(t, ok)
	assert.Equal(t, Vec3{1, 2, 3}, p)

	_, ok = Vec4{1, 1, 1, 0}.PerspectiveDivide()
	assert.False(t, ok)
}
