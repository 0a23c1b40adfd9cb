// Package pose provides 4x4 rigid-transform math for head poses.
//
// Matrices use the column-vector convention: a point is transformed as
// p' = M * p, so composed transforms apply right-to-left. Head poses are
// built as T * Rz(yaw) * Ry(pitch) * Rx(roll); adapters depend on this
// order.
package pose

import "math"

// Matrix4 is a 4x4 rigid transform in row-major order. The upper-left 3x3
// block is the rotation, the last column holds the translation in meters,
// and the bottom row is [0 0 0 1].
type Matrix4 [4][4]float64

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m * other.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Translation returns a pure translation by (x, y, z) meters.
func Translation(x, y, z float64) Matrix4 {
	out := Identity()
	out[0][3] = x
	out[1][3] = y
	out[2][3] = z
	return out
}

// RotX returns a rotation of angle radians about the X axis (roll).
func RotX(angle float64) Matrix4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Matrix4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotY returns a rotation of angle radians about the Y axis (pitch).
func RotY(angle float64) Matrix4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Matrix4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotZ returns a rotation of angle radians about the Z axis (yaw).
func RotZ(angle float64) Matrix4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Matrix4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Head builds a head pose from a translation in meters and intrinsic
// roll/pitch/yaw angles in radians, composed as T * Rz * Ry * Rx.
func Head(x, y, z, roll, pitch, yaw float64) Matrix4 {
	return Translation(x, y, z).Mul(RotZ(yaw)).Mul(RotY(pitch)).Mul(RotX(roll))
}

// TranslationPart returns the translation column (x, y, z) in meters.
func (m Matrix4) TranslationPart() (x, y, z float64) {
	return m[0][3], m[1][3], m[2][3]
}

// ApproxEqual reports whether all entries of m and other differ by at most
// eps.
func (m Matrix4) ApproxEqual(other Matrix4, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
