// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// Rot is a 2D rotation stored as a sin/cos pair rather than a bare angle,
// the way the 3D engine stored orientation as a quaternion rather than
// Euler angles: composing and applying rotations this way avoids repeated
// trig calls and keeps the representation well-conditioned.
type Rot struct {
	S, C Real // sin(angle), cos(angle)
}

func sinCos(angle Real) (s, c Real) { return math.Sin(angle), math.Cos(angle) }

// NewRot returns the rotation for the given angle in radians.
func NewRot(angle Real) *Rot {
	r := &Rot{}
	r.Set(angle)
	return r
}

// Set (=) sets r to the rotation for the given angle. The updated r is
// returned.
func (r *Rot) Set(angle Real) *Rot {
	r.S, r.C = sinCos(angle)
	return r
}

// SetIdentity sets r to the zero-angle rotation.
func (r *Rot) SetIdentity() *Rot {
	r.S, r.C = 0, 1
	return r
}

// Angle returns the angle in radians represented by r.
func (r Rot) Angle() Real { return math.Atan2(r.S, r.C) }

// XAxis returns the rotated local x axis.
func (r Rot) XAxis() Vec2 { return Vec2{r.C, r.S} }

// YAxis returns the rotated local y axis.
func (r Rot) YAxis() Vec2 { return Vec2{-r.S, r.C} }

// MulRot returns the rotation q followed by r (r then applied to q's frame).
func MulRot(q, r Rot) Rot {
	return Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

// MulTRot returns the relative rotation that takes q to r: transpose(q)*r.
func MulTRot(q, r Rot) Rot {
	return Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

// MulRV rotates v by r.
func MulRV(r Rot, v Vec2) Vec2 {
	return Vec2{r.C*v.X - r.S*v.Y, r.S*v.X + r.C*v.Y}
}

// MulTRV rotates v by the inverse of r.
func MulTRV(r Rot, v Vec2) Vec2 {
	return Vec2{r.C*v.X + r.S*v.Y, -r.S*v.X + r.C*v.Y}
}
