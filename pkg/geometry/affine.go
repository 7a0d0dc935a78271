package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform in row-major order, stored as
// [a b c; d e f] with an implicit bottom row of [0 0 1]. It maps a
// point (x, y) to (a*x + b*y + c, d*x + e*y + f).
//
// The representation is [f64.Aff3]; convert with Affine(m) where needed.
type Affine f64.Aff3

// AffineIdentity returns the identity transform.
func AffineIdentity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// Translation returns a transform that translates by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{1, 0, dx, 0, 1, dy}
}

// Scaling returns a transform that scales by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Rotation returns a transform that rotates by radians about the origin.
func Rotation(radians float64) Affine {
	sin, cos := math.Sincos(radians)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// IsIdentity reports whether t is (approximately) the identity transform.
func (t Affine) IsIdentity() bool {
	id := AffineIdentity()
	for i := range t {
		if !floatEqual(t[i], id[i]) {
			return false
		}
	}
	return true
}

// Concat returns the transform equivalent to applying other first,
// then t. This is the matrix product t x other.
func (t Affine) Concat(other Affine) Affine {
	return Affine{
		t[0]*other[0] + t[1]*other[3],
		t[0]*other[1] + t[1]*other[4],
		t[0]*other[2] + t[1]*other[5] + t[2],
		t[3]*other[0] + t[4]*other[3],
		t[3]*other[1] + t[4]*other[4],
		t[3]*other[2] + t[4]*other[5] + t[5],
	}
}

// Apply transforms the point p.
func (t Affine) Apply(p Offset) Offset {
	return Offset{
		X: t[0]*p.X + t[1]*p.Y + t[2],
		Y: t[3]*p.X + t[4]*p.Y + t[5],
	}
}

// Determinant returns the determinant of the linear part of t.
func (t Affine) Determinant() float64 {
	return t[0]*t[4] - t[1]*t[3]
}

// Invert returns the inverse transform. The second result is false when
// t is singular, in which case the identity is returned.
func (t Affine) Invert() (Affine, bool) {
	det := t.Determinant()
	if math.Abs(det) < epsilon {
		return AffineIdentity(), false
	}
	inv := 1 / det
	return Affine{
		t[4] * inv,
		-t[1] * inv,
		(t[1]*t[5] - t[4]*t[2]) * inv,
		-t[3] * inv,
		t[0] * inv,
		(t[3]*t[2] - t[0]*t[5]) * inv,
	}, true
}

// Translation returns the translation component of t.
func (t Affine) Translation() Offset {
	return Offset{X: t[2], Y: t[5]}
}
