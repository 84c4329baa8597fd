// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

// Vec3 is a 3 element vector, used only alongside Mat33.
type Vec3 struct {
	X, Y, Z Real
}

// Mat33 is a 3x3 matrix stored by column. Nothing in the 2D pipeline needs
// one on its hot path (the 2D solver only ever needs Mat22); it exists here
// as an extension point for a future joint or a combined 3-DOF (x,y,angle)
// mass matrix in a stacked solver.
type Mat33 struct {
	Ex, Ey, Ez Vec3
}

// SetZero zeros every element of m.
func (m *Mat33) SetZero() *Mat33 {
	m.Ex, m.Ey, m.Ez = Vec3{}, Vec3{}, Vec3{}
	return m
}

func v3Dot(a, b Vec3) Real { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func v3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Solve33 solves m*x = b for the full 3x3 system.
func (m Mat33) Solve33(b Vec3) Vec3 {
	det := v3Dot(m.Ex, v3Cross(m.Ey, m.Ez))
	if det != 0 {
		det = 1 / det
	}
	return Vec3{
		det * v3Dot(b, v3Cross(m.Ey, m.Ez)),
		det * v3Dot(m.Ex, v3Cross(b, m.Ez)),
		det * v3Dot(m.Ex, v3Cross(m.Ey, b)),
	}
}
