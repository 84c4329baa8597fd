// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// findMaxSeparation finds the edge on polyA whose outward normal gives the
// largest separation from polyB (the SAT "best axis" search), expressed in
// polyA's local frame. Reimplements the earlier 3D engine's cgo/Bullet-delegated
// box/box test (physics/collision.go collideBoxBox) as pure-Go SAT per
// the canonical Box2D algorithm for Open
// Question (b). It needs no neighbor index; the incident-edge wraparound
// (`(index+1)%n`) lives in findIncidentEdge.
// xf must map polyA's local frame into polyB's local frame, so the
// resulting separation is computed entirely in polyB's local coordinates.
func findMaxSeparation(polyA, polyB *PolygonShape, xf math2d.Transform) (bestIndex int, bestSeparation Real) {
	bestSeparation = Real(-math2d.MaxFloat)
	for i, n := range polyA.Normals {
		normalInB := math2d.MulRV(xf.Q, n)
		support := polyB.GetSupport(*math2d.NewVec2().Neg(normalInB))
		vertexInB := math2d.MulTV(xf, polyA.Vertices[i])
		s := normalInB.Dot(*math2d.NewVec2().Sub(polyB.Vertices[support], vertexInB))
		if s > bestSeparation {
			bestSeparation = s
			bestIndex = i
		}
	}
	return
}

// GetSupport returns the index of the vertex on the polygon farthest along
// d (largest dot product; the SAT "deepest point" query passes the negated
// axis), a thin wrapper kept
// distinct from DistanceProxy.GetSupport so SAT code reads in terms of
// polygon vertices without constructing a proxy each call.
func (s *PolygonShape) GetSupport(d math2d.Vec2) int {
	best := 0
	bestValue := s.Vertices[0].Dot(d)
	for i := 1; i < len(s.Vertices); i++ {
		v := s.Vertices[i].Dot(d)
		if v > bestValue {
			bestValue = v
			best = i
		}
	}
	return best
}

func findIncidentEdge(poly1 *PolygonShape, xf1 math2d.Transform, edge1 int, poly2 *PolygonShape, xf2 math2d.Transform) [2]clipVertex {
	normal1 := math2d.MulTRV(xf2.Q, math2d.MulRV(xf1.Q, poly1.Normals[edge1]))

	index := 0
	minDot := Real(math2d.MaxFloat)
	for i, n := range poly2.Normals {
		d := normal1.Dot(n)
		if d < minDot {
			minDot = d
			index = i
		}
	}

	n2 := len(poly2.Vertices)
	i1 := index
	i2 := (index + 1) % n2

	var out [2]clipVertex
	out[0] = clipVertex{
		v:  math2d.MulTV(xf2, poly2.Vertices[i1]),
		id: ContactID{IndexA: uint8(edge1), IndexB: uint8(i1), TypeA: 0, TypeB: 1},
	}
	out[1] = clipVertex{
		v:  math2d.MulTV(xf2, poly2.Vertices[i2]),
		id: ContactID{IndexA: uint8(edge1), IndexB: uint8(i2), TypeA: 0, TypeB: 1},
	}
	return out
}

// CollidePolygons produces the (0-2 point) clipped manifold between two
// convex polygons: find the axis of least penetration on each polygon,
// pick the incident edge on the other polygon, then clip it against the
// reference face's side planes (the classic SAT + Sutherland-Hodgman
// combination, grounded on xphysics/src/collision/collide_polygon.rs and
// the earlier 3D engine's clipping.go primitives generalized to 2D).
func CollidePolygons(a *PolygonShape, xfA math2d.Transform, b *PolygonShape, xfB math2d.Transform) Manifold {
	var m Manifold
	totalRadius := a.Radius + b.Radius

	xfAtoB := math2d.MulTTransforms(xfB, xfA)
	edgeA, separationA := findMaxSeparation(a, b, xfAtoB)
	if separationA > totalRadius {
		return m
	}

	xfBtoA := math2d.MulTTransforms(xfA, xfB)
	edgeB, separationB := findMaxSeparation(b, a, xfBtoA)
	if separationB > totalRadius {
		return m
	}

	var poly1, poly2 *PolygonShape
	var xf1, xf2 math2d.Transform
	var edge1 int
	flip := false

	const tol = 0.1 * LinearSlop
	if separationB > separationA+tol {
		poly1, poly2 = b, a
		xf1, xf2 = xfB, xfA
		edge1 = edgeB
		flip = true
	} else {
		poly1, poly2 = a, b
		xf1, xf2 = xfA, xfB
		edge1 = edgeA
		flip = false
	}

	incident := findIncidentEdge(poly1, xf1, edge1, poly2, xf2)

	n1 := len(poly1.Vertices)
	i11 := edge1
	i12 := (edge1 + 1) % n1
	v11 := poly1.Vertices[i11]
	v12 := poly1.Vertices[i12]

	localTangent, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(v12, v11))
	localNormal := localTangent.RightPerp()
	planePoint := math2d.Vec2{X: 0.5 * (v11.X + v12.X), Y: 0.5 * (v11.Y + v12.Y)}

	tangent := math2d.MulRV(xf1.Q, *localTangent)
	normal := tangent.RightPerp()

	v11w := math2d.MulTV(xf1, v11)
	v12w := math2d.MulTV(xf1, v12)

	frontOffset := normal.Dot(v11w)
	sideOffset1 := -tangent.Dot(v11w) + totalRadius
	sideOffset2 := tangent.Dot(v12w) + totalRadius

	var clipPoints1, clipPoints2 [2]clipVertex
	negTangent := *math2d.NewVec2().Neg(tangent)
	np1 := clipSegmentToLine(&clipPoints1, incident, negTangent, sideOffset1, uint8(i11))
	if np1 < 2 {
		return m
	}

	np2 := clipSegmentToLine(&clipPoints2, [2]clipVertex{clipPoints1[0], clipPoints1[1]}, tangent, sideOffset2, uint8(i12))
	if np2 < 2 {
		return m
	}

	m.LocalNormal = localNormal
	m.LocalPoint = planePoint
	if flip {
		m.Type = FaceBManifold
	} else {
		m.Type = FaceAManifold
	}

	pointCount := 0
	for i := 0; i < 2; i++ {
		separation := normal.Dot(clipPoints2[i].v) - frontOffset
		if separation <= totalRadius {
			local := math2d.MulTTV(xf2, clipPoints2[i].v)
			var id ContactID
			if flip {
				id = ContactID{IndexA: clipPoints2[i].id.IndexB, IndexB: clipPoints2[i].id.IndexA}
			} else {
				id = clipPoints2[i].id
			}
			m.Points[pointCount] = ManifoldPoint{Point: local, ID: id}
			pointCount++
		}
	}
	m.PointCount = pointCount

	return m
}
