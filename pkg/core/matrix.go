package core

import "math"

// Mat4 is a 4x4 affine transformation matrix in row-major order
type Mat4 struct {
	M [16]float64
}

// IdentityMat4 returns the identity transform
func IdentityMat4() Mat4 {
	return Mat4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// TranslateMat4 returns a translation transform
func TranslateMat4(t Vec3) Mat4 {
	m := IdentityMat4()
	m.M[3] = t.X
	m.M[7] = t.Y
	m.M[11] = t.Z
	return m
}

// ScaleMat4 returns a non-uniform scale transform
func ScaleMat4(s Vec3) Mat4 {
	m := IdentityMat4()
	m.M[0] = s.X
	m.M[5] = s.Y
	m.M[10] = s.Z
	return m
}

// RotateYMat4 returns a rotation about the Y axis by the given angle in radians
func RotateYMat4(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m := IdentityMat4()
	m.M[0] = c
	m.M[2] = s
	m.M[8] = -s
	m.M[10] = c
	return m
}

// Mul returns the matrix product a*b
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.M[row*4+k] * b.M[k*4+col]
			}
			out.M[row*4+col] = sum
		}
	}
	return out
}

// MulPoint transforms a point, including translation
func (a Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: a.M[0]*p.X + a.M[1]*p.Y + a.M[2]*p.Z + a.M[3],
		Y: a.M[4]*p.X + a.M[5]*p.Y + a.M[6]*p.Z + a.M[7],
		Z: a.M[8]*p.X + a.M[9]*p.Y + a.M[10]*p.Z + a.M[11],
	}
}

// MulVector transforms a direction, ignoring translation
func (a Mat4) MulVector(v Vec3) Vec3 {
	return Vec3{
		X: a.M[0]*v.X + a.M[1]*v.Y + a.M[2]*v.Z,
		Y: a.M[4]*v.X + a.M[5]*v.Y + a.M[6]*v.Z,
		Z: a.M[8]*v.X + a.M[9]*v.Y + a.M[10]*v.Z,
	}
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 block,
// the correct transform for surface normals under affine maps
func (a Mat4) NormalMatrix() Mat4 {
	// Inverse of the 3x3 via the adjugate
	m00, m01, m02 := a.M[0], a.M[1], a.M[2]
	m10, m11, m12 := a.M[4], a.M[5], a.M[6]
	m20, m21, m22 := a.M[8], a.M[9], a.M[10]

	c00 := m11*m22 - m12*m21
	c01 := m12*m20 - m10*m22
	c02 := m10*m21 - m11*m20

	det := m00*c00 + m01*c01 + m02*c02
	if det == 0 {
		return IdentityMat4()
	}
	invDet := 1.0 / det

	// Transpose of the inverse = adjugate rows laid out as columns
	out := IdentityMat4()
	out.M[0] = c00 * invDet
	out.M[1] = c01 * invDet
	out.M[2] = c02 * invDet
	out.M[4] = (m02*m21 - m01*m22) * invDet
	out.M[5] = (m00*m22 - m02*m20) * invDet
	out.M[6] = (m01*m20 - m00*m21) * invDet
	out.M[8] = (m01*m12 - m02*m11) * invDet
	out.M[9] = (m02*m10 - m00*m12) * invDet
	out.M[10] = (m00*m11 - m01*m10) * invDet
	return out
}
