// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galvanized/rigid2d/math2d"
)

// CircleShape is a disc of the given radius centered at Center in local
// space. Generalizes the earlier 3D engine's physics/shape.go sphere struct to 2D.
type CircleShape struct {
	Center math2d.Vec2
	Radius Real
}

// NewCircleShape creates a circle shape. A non-positive radius is a
// programmer-contract violation.
func NewCircleShape(center math2d.Vec2, radius Real) *CircleShape {
	if radius <= 0 {
		panicInvariant("NewCircleShape", "radius must be positive, got %v", radius)
	}
	return &CircleShape{Center: center, Radius: radius}
}

func (s *CircleShape) Type() ShapeType   { return CircleShapeType }
func (s *CircleShape) GetChildCount() int { return 1 }

func (s *CircleShape) TestPoint(xf math2d.Transform, p math2d.Vec2) bool {
	center := math2d.MulTV(xf, s.Center)
	d := math2d.NewVec2().Sub(p, center)
	return d.LenSqr() <= s.Radius*s.Radius
}

func (s *CircleShape) RayCast(input *RayCastInput, xf math2d.Transform, childIndex int) (RayCastOutput, bool) {
	position := math2d.MulTV(xf, s.Center)
	sv := math2d.NewVec2().Sub(input.P1, position)
	b := sv.LenSqr() - s.Radius*s.Radius

	d := math2d.NewVec2().Sub(input.P2, input.P1)
	rr := d.LenSqr()
	c := sv.Dot(*d)
	sigma := c*c - rr*b
	if sigma < 0 || rr < math2d.Epsilon {
		return RayCastOutput{}, false
	}

	t := -(c + math.Sqrt(sigma))
	if t >= 0 && t <= input.MaxFraction*rr {
		t /= rr
		var normal math2d.Vec2
		normal.Add(*sv, *math2d.NewVec2().Scale(*d, t))
		normal.Unit(normal)
		return RayCastOutput{Normal: normal, Fraction: t}, true
	}
	return RayCastOutput{}, false
}

func (s *CircleShape) ComputeAABB(xf math2d.Transform, childIndex int) AABB {
	p := math2d.MulTV(xf, s.Center)
	return AABB{
		Lower: math2d.Vec2{X: p.X - s.Radius, Y: p.Y - s.Radius},
		Upper: math2d.Vec2{X: p.X + s.Radius, Y: p.Y + s.Radius},
	}
}

func (s *CircleShape) ComputeMass(density Real) MassData {
	mass := density * math2d.Pi * s.Radius * s.Radius
	// I about the shape's local origin = 0.5*m*r^2 + m*(center offset)^2;
	// Body.resetMassData sums these and parallel-axis shifts the total to
	// the body's combined center of mass.
	i := mass * (0.5*s.Radius*s.Radius + s.Center.Dot(s.Center))
	return MassData{Mass: mass, Center: s.Center, I: i}
}

func (s *CircleShape) Proxy(childIndex int) DistanceProxy {
	return DistanceProxy{Vertices: []math2d.Vec2{s.Center}, Radius: s.Radius}
}
