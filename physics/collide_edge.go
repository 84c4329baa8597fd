// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// CollideEdgeAndCircle produces the manifold between a line segment and a
// circle by treating the edge as a degenerate two-vertex polygon: clamp
// the circle center onto the segment, then reuse the same point/face
// separation logic collide_circle.go uses for a real polygon face. No
// analogue in the earlier 3D engine (it has no 2D-edge concept); grounded on
// xphysics/src/collision/collide_edge.rs.
func CollideEdgeAndCircle(a *EdgeShape, xfA math2d.Transform, b *CircleShape, xfB math2d.Transform) Manifold {
	var m Manifold

	q := math2d.MulTTV(xfA, math2d.MulTV(xfB, b.Center))

	e := math2d.NewVec2().Sub(a.V2, a.V1)
	u := e.Dot(*math2d.NewVec2().Sub(a.V2, q))
	v := e.Dot(*math2d.NewVec2().Sub(q, a.V1))

	radius := a.Radius + b.Radius

	var point, normal math2d.Vec2
	switch {
	case v <= 0:
		point = a.V1
		d := math2d.NewVec2().Sub(q, a.V1)
		if d.LenSqr() > radius*radius {
			return m
		}
		if a.HasV0 {
			e1 := math2d.NewVec2().Sub(a.V1, a.V0)
			u1 := e1.Dot(*math2d.NewVec2().Sub(a.V1, q))
			if u1 > 0 {
				return m
			}
		}
		normal.Unit(*d)

	case u <= 0:
		point = a.V2
		d := math2d.NewVec2().Sub(q, a.V2)
		if d.LenSqr() > radius*radius {
			return m
		}
		if a.HasV3 {
			e2 := math2d.NewVec2().Sub(a.V3, a.V2)
			v2 := e2.Dot(*math2d.NewVec2().Sub(q, a.V2))
			if v2 > 0 {
				return m
			}
		}
		normal.Unit(*d)

	default:
		eLenSqr := e.LenSqr()
		point = math2d.Vec2{
			X: (1/eLenSqr)*(u*a.V1.X+v*a.V2.X),
			Y: (1/eLenSqr)*(u*a.V1.Y+v*a.V2.Y),
		}
		d := math2d.NewVec2().Sub(q, point)
		if d.LenSqr() > radius*radius {
			return m
		}
		n := e.LeftPerp()
		if n.Dot(*math2d.NewVec2().Sub(q, a.V1)) < 0 {
			n = e.RightPerp()
		}
		normal.Unit(n)
	}

	m.Type = FaceAManifold
	m.LocalNormal = normal
	m.LocalPoint = point
	m.PointCount = 1
	m.Points[0] = ManifoldPoint{Point: b.Center}
	return m
}

// edgeAsPolygon adapts an EdgeShape (with its ghost vertices, when
// present) into the two-vertex, two-normal shape CollidePolygons'
// incident-edge search expects, implementing the same "treat a segment as
// a degenerate polygon" trick the edge/circle routine above uses. Ghost
// vertex presence does not change the two core normals, only whether
// collide_edge's one-sided convexity checks (not reproduced here — see
// CollideEdgeAndPolygon) suppress a contact at the shared vertex.
func edgeAsPolygon(e *EdgeShape) *PolygonShape {
	tangent, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(e.V2, e.V1))
	normal1 := tangent.RightPerp()
	normal2 := *math2d.NewVec2().Neg(normal1)
	return &PolygonShape{
		Vertices: []math2d.Vec2{e.V1, e.V2},
		Normals:  []math2d.Vec2{normal1, normal2},
		Radius:   e.Radius,
	}
}

// CollideEdgeAndPolygon produces the manifold between a one-sided edge
// (with optional ghost vertices) and a convex polygon. The convex-polygon
// SAT/clip machinery in collide_polygon.go is reused directly by treating
// the edge as a 2-vertex polygon; the only edge-specific behavior is
// suppressing a contact whose normal points into the concave side of a
// ghost vertex, which is exactly the "internal edges" case the ghost
// vertices exist to detect (no analogue in the earlier engine).
func CollideEdgeAndPolygon(a *EdgeShape, xfA math2d.Transform, b *PolygonShape, xfB math2d.Transform) Manifold {
	edgePoly := edgeAsPolygon(a)
	m := CollidePolygons(edgePoly, xfA, b, xfB)

	if m.PointCount == 0 || !a.HasV0 && !a.HasV3 {
		return m
	}

	// Reject manifolds whose reference normal matches the edge's own face
	// (index 0: V1->V2) but would have been shadowed by a convex neighbor,
	// i.e. the polygon is approaching from the concave side of a joint
	// between two chained edges.
	if m.Type != FaceAManifold {
		return m
	}

	worldNormal := math2d.MulRV(xfA.Q, m.LocalNormal)
	if a.HasV0 {
		e1, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(a.V1, a.V0))
		convex := e1.RightPerp()
		convexWorld := math2d.MulRV(xfA.Q, convex)
		if worldNormal.Dot(convexWorld) < -math2d.Epsilon {
			return Manifold{}
		}
	}
	if a.HasV3 {
		e2, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(a.V3, a.V2))
		convex := e2.RightPerp()
		convexWorld := math2d.MulRV(xfA.Q, convex)
		if worldNormal.Dot(convexWorld) < -math2d.Epsilon {
			return Manifold{}
		}
	}

	return m
}
