// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

// Transform is a rigid transform: a rotation followed by a translation.
// Named and shaped after the earlier 3D engine's math/lin.T{Loc,Rot}, with Loc/Rot
// renamed P/Q to match the rest of this domain's vocabulary (body position
// P, orientation Q).
type Transform struct {
	P Vec2
	Q Rot
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	t := &Transform{}
	t.SetIdentity()
	return t
}

// SetIdentity sets t to the identity transform.
func (t *Transform) SetIdentity() *Transform {
	t.P.SetZero()
	t.Q.SetIdentity()
	return t
}

// Set positions t at p with orientation angle (radians).
func (t *Transform) Set(p Vec2, angle Real) *Transform {
	t.P = p
	t.Q.Set(angle)
	return t
}

// MulTV applies transform t to local point/vector v, returning the world
// point.
func MulTV(t Transform, v Vec2) Vec2 {
	x := (t.Q.C*v.X - t.Q.S*v.Y) + t.P.X
	y := (t.Q.S*v.X + t.Q.C*v.Y) + t.P.Y
	return Vec2{x, y}
}

// MulTTV applies the inverse of transform t to world point v, returning
// the local point.
func MulTTV(t Transform, v Vec2) Vec2 {
	px, py := v.X-t.P.X, v.Y-t.P.Y
	x := t.Q.C*px + t.Q.S*py
	y := -t.Q.S*px + t.Q.C*py
	return Vec2{x, y}
}

// MulTransforms composes two transforms: applying the result to a point
// is the same as applying B then A.
func MulTransforms(a, b Transform) Transform {
	return Transform{
		Q: MulRot(a.Q, b.Q),
		P: MulTV(a, b.P),
	}
}

// MulTTransforms returns the transform that maps A's frame to B's frame:
// transpose(A) composed with B.
func MulTTransforms(a, b Transform) Transform {
	return Transform{
		Q: MulTRot(a.Q, b.Q),
		P: MulTRV(a.Q, *NewVec2S(b.P.X-a.P.X, b.P.Y-a.P.Y)),
	}
}
