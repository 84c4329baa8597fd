// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"sort"

	"github.com/galvanized/rigid2d/math2d"
)

// PolygonShape is a convex polygon with a small skin radius,
// stored as vertices plus precomputed outward edge normals. Centroid is
// cached because mass computation and manifold generation both need it
// repeatedly. Generalizes the earlier 3D engine's box-only 3D collider (no polygon
// type existed there) — grounded instead on xphysics's b2PolygonShape.
type PolygonShape struct {
	Centroid math2d.Vec2
	Vertices []math2d.Vec2
	Normals  []math2d.Vec2
	Radius   Real
}

// NewPolygonShape builds a convex hull from an arbitrary point cloud using
// Andrew's monotone chain (grounded in xphysics's
// b2ComputeHull: compute the convex hull, discarding interior
// points"). Panics if fewer than 3 points survive hulling or more than
// MaxPolygonVertices are supplied.
func NewPolygonShape(points []math2d.Vec2) *PolygonShape {
	if len(points) < 3 {
		panicInvariant("NewPolygonShape", "need at least 3 points, got %d", len(points))
	}
	if len(points) > MaxPolygonVertices {
		panicInvariant("NewPolygonShape", "got %d points, max is %d", len(points), MaxPolygonVertices)
	}

	hull := computeHull(points)
	if len(hull) < 3 {
		panicInvariant("NewPolygonShape", "point cloud is degenerate, hull has %d vertices", len(hull))
	}

	s := &PolygonShape{Vertices: hull, Radius: PolygonRadius}
	s.Normals = make([]math2d.Vec2, len(hull))
	n := len(hull)
	for i := 0; i < n; i++ {
		edge := math2d.NewVec2().Sub(hull[(i+1)%n], hull[i])
		normal, _ := math2d.NewVec2().Unit(edge.RightPerp())
		s.Normals[i] = *normal
	}
	s.Centroid = computeCentroid(hull)
	return s
}

// NewBoxShape builds an axis-aligned box polygon centered at the origin
// with the given half-widths, the common case the earlier 3D engine's NewBox
// constructor (physics/physics.go) covers for its 3D cube.
func NewBoxShape(hx, hy Real) *PolygonShape {
	return NewBoxShapeXform(hx, hy, math2d.Vec2{}, 0)
}

// NewBoxShapeXform builds a box polygon centered at center and rotated by
// angle radians.
func NewBoxShapeXform(hx, hy Real, center math2d.Vec2, angle Real) *PolygonShape {
	xf := math2d.NewTransform().Set(center, angle)
	corners := []math2d.Vec2{
		{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy},
	}
	for i := range corners {
		corners[i] = math2d.MulTV(*xf, corners[i])
	}
	return NewPolygonShape(corners)
}

func computeCentroid(vs []math2d.Vec2) math2d.Vec2 {
	c := math2d.Vec2{}
	area := Real(0)
	origin := vs[0]
	const inv3 = Real(1) / Real(3)
	for i := 1; i+1 < len(vs); i++ {
		e1 := math2d.NewVec2().Sub(vs[i], origin)
		e2 := math2d.NewVec2().Sub(vs[i+1], origin)
		a := 0.5 * e1.Cross(*e2)
		area += a
		c.X += a * inv3 * (e1.X + e2.X)
		c.Y += a * inv3 * (e1.Y + e2.Y)
	}
	if area > math2d.Epsilon {
		c.X /= area
		c.Y /= area
	}
	c.X += origin.X
	c.Y += origin.Y
	return c
}

// computeHull sorts points lexicographically then builds lower and upper
// chains (the standard monotone-chain hull), matching the shape this
// §4.2 describes without mandating a specific algorithm.
func computeHull(points []math2d.Vec2) []math2d.Vec2 {
	pts := make([]math2d.Vec2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b math2d.Vec2) Real {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]math2d.Vec2, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]math2d.Vec2, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

func dedupe(pts []math2d.Vec2) []math2d.Vec2 {
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || !p.Aeq(pts[i-1]) {
			out = append(out, p)
		}
	}
	return out
}

func (s *PolygonShape) Type() ShapeType   { return PolygonShapeType }
func (s *PolygonShape) GetChildCount() int { return 1 }

func (s *PolygonShape) TestPoint(xf math2d.Transform, p math2d.Vec2) bool {
	local := math2d.MulTTV(xf, p)
	for i, n := range s.Normals {
		d := math2d.NewVec2().Sub(local, s.Vertices[i])
		if n.Dot(*d) > 0 {
			return false
		}
	}
	return true
}

func (s *PolygonShape) RayCast(input *RayCastInput, xf math2d.Transform, childIndex int) (RayCastOutput, bool) {
	p1 := math2d.MulTTV(xf, input.P1)
	p2 := math2d.MulTTV(xf, input.P2)
	d := math2d.NewVec2().Sub(p2, p1)

	lower, upper := Real(0), input.MaxFraction
	index := -1

	for i, n := range s.Normals {
		num := n.Dot(*math2d.NewVec2().Sub(s.Vertices[i], p1))
		den := n.Dot(*d)
		if den == 0 {
			if num < 0 {
				return RayCastOutput{}, false
			}
			continue
		}
		t := num / den
		if den < 0 && t > lower {
			lower = t
			index = i
		} else if den > 0 && t < upper {
			upper = t
		}
		if upper < lower {
			return RayCastOutput{}, false
		}
	}

	if index >= 0 {
		normal := math2d.MulRV(xf.Q, s.Normals[index])
		return RayCastOutput{Normal: normal, Fraction: lower}, true
	}
	return RayCastOutput{}, false
}

func (s *PolygonShape) ComputeAABB(xf math2d.Transform, childIndex int) AABB {
	lower := math2d.MulTV(xf, s.Vertices[0])
	upper := lower
	for i := 1; i < len(s.Vertices); i++ {
		v := math2d.MulTV(xf, s.Vertices[i])
		lower.Min(lower, v)
		upper.Max(upper, v)
	}
	r := math2d.Vec2{X: s.Radius, Y: s.Radius}
	return AABB{Lower: *math2d.NewVec2().Sub(lower, r), Upper: *math2d.NewVec2().Add(upper, r)}
}

func (s *PolygonShape) ComputeMass(density Real) MassData {
	// Decomposition into triangles fanned from vertex[0], matching the
	// standard Box2D derivation (xphysics's b2PolygonShape::compute_mass).
	origin := s.Vertices[0]
	const inv3 = Real(1) / Real(3)
	var area, i Real
	center := math2d.Vec2{}
	n := len(s.Vertices)

	for k := 0; k < n; k++ {
		e1 := math2d.NewVec2().Sub(s.Vertices[k], origin)
		e2v := s.Vertices[(k+1)%n]
		e2 := math2d.NewVec2().Sub(e2v, origin)

		d := e1.Cross(*e2)
		triangleArea := 0.5 * d
		area += triangleArea

		center.X += triangleArea * inv3 * (e1.X + e2.X)
		center.Y += triangleArea * inv3 * (e1.Y + e2.Y)

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y
		i += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	mass := density * area
	if area > math2d.Epsilon {
		center.X /= area
		center.Y /= area
	}

	inertia := density*i - mass*center.Dot(center)

	worldCenter := math2d.Vec2{X: center.X + origin.X, Y: center.Y + origin.Y}
	inertia += mass * worldCenter.Dot(worldCenter)

	return MassData{Mass: mass, Center: worldCenter, I: inertia}
}

func (s *PolygonShape) Proxy(childIndex int) DistanceProxy {
	return DistanceProxy{Vertices: s.Vertices, Radius: s.Radius}
}
