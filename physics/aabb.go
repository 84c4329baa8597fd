// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galvanized/rigid2d/math2d"
)

// AABB is an axis-aligned bounding box. It generalizes the earlier 3D engine's
// physics/shape.go Abox (Sx,Sy,Sz/Lx,Ly,Lz) to 2D and to the fuller set of
// operations needed: Combine, Contains, Overlap, Perimeter.
type AABB struct {
	Lower, Upper math2d.Vec2
}

// IsValid reports whether the box is well-formed: lower <= upper on both
// axes and every component finite.
func (a AABB) IsValid() bool {
	if a.Upper.X < a.Lower.X || a.Upper.Y < a.Lower.Y {
		return false
	}
	return a.Lower.IsValid() && a.Upper.IsValid()
}

// Center returns the box's center point.
func (a AABB) Center() math2d.Vec2 {
	return math2d.Vec2{X: 0.5 * (a.Lower.X + a.Upper.X), Y: 0.5 * (a.Lower.Y + a.Upper.Y)}
}

// Extents returns the box's half-widths along each axis.
func (a AABB) Extents() math2d.Vec2 {
	return math2d.Vec2{X: 0.5 * (a.Upper.X - a.Lower.X), Y: 0.5 * (a.Upper.Y - a.Lower.Y)}
}

// Perimeter returns twice the sum of the box's side lengths — "perimeter"
// in Box2D's vocabulary, used as the surface-area-heuristic cost proxy
// for the dynamic tree (a 2D stand-in for 3D surface area).
func (a AABB) Perimeter() Real {
	wx := a.Upper.X - a.Lower.X
	wy := a.Upper.Y - a.Lower.Y
	return 2 * (wx + wy)
}

// Combine returns the smallest AABB containing both a and b.
func Combine(a, b AABB) AABB {
	return AABB{
		Lower: math2d.Vec2{X: math.Min(a.Lower.X, b.Lower.X), Y: math.Min(a.Lower.Y, b.Lower.Y)},
		Upper: math2d.Vec2{X: math.Max(a.Upper.X, b.Upper.X), Y: math.Max(a.Upper.Y, b.Upper.Y)},
	}
}

// Combine sets a to the union of a and b and returns a, mirroring the
// mutate-and-return convention used in math2d.
func (a *AABB) Combine(b AABB) *AABB {
	*a = Combine(*a, b)
	return a
}

// CombineTwo returns the union of a and b without mutating either.
func CombineTwo(a, b AABB) AABB { return Combine(a, b) }

// Contains reports whether a fully contains b.
func (a AABB) Contains(b AABB) bool {
	return a.Lower.X <= b.Lower.X && a.Lower.Y <= b.Lower.Y &&
		b.Upper.X <= a.Upper.X && b.Upper.Y <= a.Upper.Y
}

// Overlap reports whether a and b intersect (touching along an edge only
// is not considered overlap, matching the earlier 3D engine's Abox.Overlaps).
func Overlap(a, b AABB) bool {
	d1x := b.Lower.X - a.Upper.X
	d1y := b.Lower.Y - a.Upper.Y
	d2x := a.Lower.X - b.Upper.X
	d2y := a.Lower.Y - b.Upper.Y
	if d1x > 0 || d1y > 0 {
		return false
	}
	if d2x > 0 || d2y > 0 {
		return false
	}
	return true
}

// Fatten returns a grown by r on every side.
func (a AABB) Fatten(r Real) AABB {
	return AABB{
		Lower: math2d.Vec2{X: a.Lower.X - r, Y: a.Lower.Y - r},
		Upper: math2d.Vec2{X: a.Upper.X + r, Y: a.Upper.Y + r},
	}
}
