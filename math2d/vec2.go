// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// Vec2 is a 2 element vector used as both a point and a direction.
type Vec2 struct {
	X Real
	Y Real
}

// NewVec2 returns a new zero vector.
func NewVec2() *Vec2 { return &Vec2{} }

// NewVec2S returns a new vector with the given values.
func NewVec2S(x, y Real) *Vec2 { return &Vec2{x, y} }

// Set (=) sets v to have the same values as a. The updated v is returned.
func (v *Vec2) Set(a Vec2) *Vec2 {
	v.X, v.Y = a.X, a.Y
	return v
}

// SetS (=) sets v's elements directly. The updated v is returned.
func (v *Vec2) SetS(x, y Real) *Vec2 {
	v.X, v.Y = x, y
	return v
}

// SetZero zeros v. The updated v is returned.
func (v *Vec2) SetZero() *Vec2 {
	v.X, v.Y = 0, 0
	return v
}

// Eq (==) returns true if v and a have identical components.
func (v Vec2) Eq(a Vec2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) returns true if v and a are close enough to be equal.
func (v Vec2) Aeq(a Vec2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// IsValid reports whether both components are finite numbers.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Add (=a+b) sets v to a+b and returns v.
func (v *Vec2) Add(a, b Vec2) *Vec2 {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (=a-b) sets v to a-b and returns v.
func (v *Vec2) Sub(a, b Vec2) *Vec2 {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Neg (=-a) sets v to -a and returns v.
func (v *Vec2) Neg(a Vec2) *Vec2 {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Scale (=a*s) sets v to a scaled by s and returns v.
func (v *Vec2) Scale(a Vec2, s Real) *Vec2 {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// AddScaled (=a+b*s) sets v to a + b*s and returns v. Common in
// integration code (position += velocity*dt).
func (v *Vec2) AddScaled(a, b Vec2, s Real) *Vec2 {
	v.X, v.Y = a.X+b.X*s, a.Y+b.Y*s
	return v
}

// Mult (=a*b, componentwise) sets v to the componentwise product.
func (v *Vec2) Mult(a, b Vec2) *Vec2 {
	v.X, v.Y = a.X*b.X, a.Y*b.Y
	return v
}

// Min (=min(a,b), componentwise) sets v to the componentwise minimum.
func (v *Vec2) Min(a, b Vec2) *Vec2 {
	v.X, v.Y = math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return v
}

// Max (=max(a,b), componentwise) sets v to the componentwise maximum.
func (v *Vec2) Max(a, b Vec2) *Vec2 {
	v.X, v.Y = math.Max(a.X, b.X), math.Max(a.Y, b.Y)
	return v
}

// Abs (=|a|, componentwise) sets v to the componentwise absolute value.
func (v *Vec2) Abs(a Vec2) *Vec2 {
	v.X, v.Y = math.Abs(a.X), math.Abs(a.Y)
	return v
}

// Lerp (=a + (b-a)*t) sets v to the interpolation between a and b.
func (v *Vec2) Lerp(a, b Vec2, t Real) *Vec2 {
	v.X, v.Y = Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)
	return v
}

// Dot returns the dot product a·v.
func (v Vec2) Dot(a Vec2) Real { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D scalar cross product v×a (= v.X*a.Y - v.Y*a.X).
// This is the z-component of the 3D cross product of the two vectors
// lifted into the xy-plane.
func (v Vec2) Cross(a Vec2) Real { return v.X*a.Y - v.Y*a.X }

// CrossVS returns the vector v×s, a 90° clockwise rotation of v scaled
// by s. Used to turn an angular velocity into a linear one: w×r.
func CrossVS(v Vec2, s Real) Vec2 { return Vec2{s * v.Y, -s * v.X} }

// CrossSV returns the vector s×v, a 90° counter-clockwise rotation of v
// scaled by s.
func CrossSV(s Real, v Vec2) Vec2 { return Vec2{-s * v.Y, s * v.X} }

// LeftPerp returns the vector rotated 90° counter-clockwise (-y, x).
func (v Vec2) LeftPerp() Vec2 { return Vec2{-v.Y, v.X} }

// RightPerp returns the vector rotated 90° clockwise (y, -x).
func (v Vec2) RightPerp() Vec2 { return Vec2{v.Y, -v.X} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() Real { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v (cheaper than Len for comparisons).
func (v Vec2) LenSqr() Real { return v.Dot(v) }

// Dist returns the distance between v and a.
func (v Vec2) Dist(a Vec2) Real { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between v and a.
func (v Vec2) DistSqr(a Vec2) Real {
	dx, dy := v.X-a.X, v.Y-a.Y
	return dx*dx + dy*dy
}

// Unit (=normalize(a)) sets v to a normalized to unit length and returns
// v along with the original length. A zero-length input yields a
// zero-length output rather than dividing by zero.
func (v *Vec2) Unit(a Vec2) (*Vec2, Real) {
	length := a.Len()
	if length < Epsilon {
		v.X, v.Y = 0, 0
		return v, 0
	}
	inv := 1 / length
	v.X, v.Y = a.X*inv, a.Y*inv
	return v, length
}

// Skew returns the left perpendicular, matching the Box2D naming for
// the operation used when building tangent directions from normals.
func Skew(v Vec2) Vec2 { return Vec2{-v.Y, v.X} }
