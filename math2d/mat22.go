// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

// Mat22 is a 2x2 matrix stored by column, matching the Box2D convention:
//
//	| Ex.X  Ey.X |
//	| Ex.Y  Ey.Y |
type Mat22 struct {
	Ex, Ey Vec2
}

// NewMat22Cols builds a matrix from its two column vectors.
func NewMat22Cols(c1, c2 Vec2) *Mat22 { return &Mat22{c1, c2} }

// SetAngle sets m to the rotation matrix for the given angle (radians).
func (m *Mat22) SetAngle(angle Real) *Mat22 {
	s, c := sinCos(angle)
	m.Ex = Vec2{c, s}
	m.Ey = Vec2{-s, c}
	return m
}

// SetIdentity sets m to the identity matrix.
func (m *Mat22) SetIdentity() *Mat22 {
	m.Ex, m.Ey = Vec2{1, 0}, Vec2{0, 1}
	return m
}

// SetZero zeros every element of m.
func (m *Mat22) SetZero() *Mat22 {
	m.Ex, m.Ey = Vec2{}, Vec2{}
	return m
}

// MulMV returns m*v.
func MulMV(m Mat22, v Vec2) Vec2 {
	return Vec2{m.Ex.X*v.X + m.Ey.X*v.Y, m.Ex.Y*v.X + m.Ey.Y*v.Y}
}

// MulTMV returns transpose(m)*v.
func MulTMV(m Mat22, v Vec2) Vec2 {
	return Vec2{v.Dot(m.Ex), v.Dot(m.Ey)}
}

// Mul returns m*n.
func (m Mat22) Mul(n Mat22) Mat22 {
	return Mat22{
		Ex: MulMV(m, n.Ex),
		Ey: MulMV(m, n.Ey),
	}
}

// MulT returns transpose(m)*n.
func (m Mat22) MulT(n Mat22) Mat22 {
	c1 := Vec2{m.Ex.Dot(n.Ex), m.Ey.Dot(n.Ex)}
	c2 := Vec2{m.Ex.Dot(n.Ey), m.Ey.Dot(n.Ey)}
	return Mat22{c1, c2}
}

// Invert returns the inverse of m. A singular matrix (determinant exactly
// zero) returns the zero matrix, mirroring Box2D's b2Mat22::GetInverse.
func (m Mat22) Invert() Mat22 {
	a, b, c, d := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := a*d - b*c
	if det != 0 {
		det = 1 / det
	}
	return Mat22{
		Ex: Vec2{det * d, -det * c},
		Ey: Vec2{-det * b, det * a},
	}
}

// Solve solves m*x = b for x using Cramer's rule, as used by the block
// solver to invert the 2x2 normal-impulse system.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11, a12, a21, a22 := m.Ex.X, m.Ey.X, m.Ex.Y, m.Ey.Y
	det := a11*a22 - a12*a21
	if det != 0 {
		det = 1 / det
	}
	return Vec2{
		det * (a22*b.X - a12*b.Y),
		det * (a11*b.Y - a21*b.X),
	}
}
