// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// EdgeShape is a line segment from V1 to V2 with optional "ghost"
// vertices V0/V3 on either side, used by collide_edge.go to suppress
// false normal flips at shared vertices between chained segments — the
// classic Box2D "internal edges" trick (no earlier-engine
// analogue: grounded on xphysics's b2EdgeShape).
type EdgeShape struct {
	V0, V1, V2, V3   math2d.Vec2
	HasV0, HasV3     bool
	Radius           Real
}

// NewEdgeShape builds a two-sided line segment with no ghost vertices.
func NewEdgeShape(v1, v2 math2d.Vec2) *EdgeShape {
	return &EdgeShape{V1: v1, V2: v2, Radius: PolygonRadius}
}

// SetOneSided attaches ghost vertices so the segment only generates a
// manifold facing from v0->v1->v2->v3, suppressing spurious contacts when
// this edge is one piece of a continuous chain.
func (s *EdgeShape) SetOneSided(v0, v1, v2, v3 math2d.Vec2) *EdgeShape {
	s.V0, s.V1, s.V2, s.V3 = v0, v1, v2, v3
	s.HasV0, s.HasV3 = true, true
	return s
}

func (s *EdgeShape) Type() ShapeType   { return EdgeShapeType }
func (s *EdgeShape) GetChildCount() int { return 1 }

func (s *EdgeShape) TestPoint(xf math2d.Transform, p math2d.Vec2) bool {
	// A segment has zero area; point containment is always false, matching
	// Box2D's b2EdgeShape::TestPoint.
	return false
}

func (s *EdgeShape) RayCast(input *RayCastInput, xf math2d.Transform, childIndex int) (RayCastOutput, bool) {
	p1 := math2d.MulTTV(xf, input.P1)
	p2 := math2d.MulTTV(xf, input.P2)
	d := math2d.NewVec2().Sub(p2, p1)

	v1, v2 := s.V1, s.V2
	e := math2d.NewVec2().Sub(v2, v1)
	normal, _ := math2d.NewVec2().Unit(e.RightPerp())

	denom := d.Dot(*normal)
	if denom == 0 {
		return RayCastOutput{}, false
	}

	t := math2d.NewVec2().Sub(v1, p1).Dot(*normal) / denom
	if t < 0 || t > input.MaxFraction {
		return RayCastOutput{}, false
	}

	var point math2d.Vec2
	point.AddScaled(p1, *d, t)

	// Parameterize the hit point along the segment to confirm it lies
	// between v1 and v2.
	e2 := e.Dot(*e)
	if e2 == 0 {
		return RayCastOutput{}, false
	}
	s2 := math2d.NewVec2().Sub(point, v1).Dot(*e) / e2
	if s2 < 0 || s2 > 1 {
		return RayCastOutput{}, false
	}

	out := *normal
	if denom > 0 {
		out = *math2d.NewVec2().Neg(out)
	}
	world := math2d.MulRV(xf.Q, out)
	return RayCastOutput{Normal: world, Fraction: t}, true
}

func (s *EdgeShape) ComputeAABB(xf math2d.Transform, childIndex int) AABB {
	v1 := math2d.MulTV(xf, s.V1)
	v2 := math2d.MulTV(xf, s.V2)
	lower := *math2d.NewVec2().Min(v1, v2)
	upper := *math2d.NewVec2().Max(v1, v2)
	r := math2d.Vec2{X: s.Radius, Y: s.Radius}
	return AABB{Lower: *math2d.NewVec2().Sub(lower, r), Upper: *math2d.NewVec2().Add(upper, r)}
}

// ComputeMass reports zero mass: an edge has no area and is intended for
// static/kinematic boundary geometry only.
func (s *EdgeShape) ComputeMass(density Real) MassData {
	mid := math2d.Vec2{X: 0.5 * (s.V1.X + s.V2.X), Y: 0.5 * (s.V1.Y + s.V2.Y)}
	return MassData{Mass: 0, Center: mid, I: 0}
}

func (s *EdgeShape) Proxy(childIndex int) DistanceProxy {
	return DistanceProxy{Vertices: []math2d.Vec2{s.V1, s.V2}, Radius: s.Radius}
}
