// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// CollideCircles produces the (at most one point) manifold between two
// circles, generalizing the earlier 3D engine's collideSphereSphere
// (physics/collision.go) from 3D spheres to 2D circles.
func CollideCircles(a *CircleShape, xfA math2d.Transform, b *CircleShape, xfB math2d.Transform) Manifold {
	var m Manifold

	pA := math2d.MulTV(xfA, a.Center)
	pB := math2d.MulTV(xfB, b.Center)
	d := math2d.NewVec2().Sub(pB, pA)
	distSqr := d.LenSqr()
	radius := a.Radius + b.Radius

	if distSqr > radius*radius {
		return m
	}

	m.Type = CirclesManifold
	m.LocalPoint = a.Center
	m.LocalNormal = math2d.Vec2{}
	m.PointCount = 1
	m.Points[0] = ManifoldPoint{Point: b.Center}
	return m
}

// CollidePolygonAndCircle produces the manifold between a polygon and a
// circle, generalizing collideSphereBox (physics/collision.go) from an
// axis-aligned box-vs-sphere special case to an arbitrary convex polygon.
func CollidePolygonAndCircle(a *PolygonShape, xfA math2d.Transform, b *CircleShape, xfB math2d.Transform) Manifold {
	var m Manifold

	c := math2d.MulTTV(xfA, math2d.MulTV(xfB, b.Center))

	normalIndex := 0
	separation := Real(-math2d.MaxFloat)
	radius := a.Radius + b.Radius

	for i, v := range a.Vertices {
		s := a.Normals[i].Dot(*math2d.NewVec2().Sub(c, v))
		if s > radius {
			return m
		}
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	n := len(a.Vertices)
	v1 := a.Vertices[normalIndex]
	v2 := a.Vertices[(normalIndex+1)%n]

	if separation < math2d.Epsilon {
		m.Type = FaceAManifold
		m.LocalNormal = a.Normals[normalIndex]
		m.LocalPoint = math2d.Vec2{X: 0.5 * (v1.X + v2.X), Y: 0.5 * (v1.Y + v2.Y)}
		m.PointCount = 1
		m.Points[0] = ManifoldPoint{Point: b.Center}
		return m
	}

	u1 := math2d.NewVec2().Sub(c, v1).Dot(*math2d.NewVec2().Sub(v2, v1))
	u2 := math2d.NewVec2().Sub(c, v2).Dot(*math2d.NewVec2().Sub(v1, v2))

	var localNormal, localPoint math2d.Vec2
	switch {
	case u1 <= 0:
		if c.DistSqr(v1) > radius*radius {
			return m
		}
		localNormal.Unit(*math2d.NewVec2().Sub(c, v1))
		localPoint = v1
	case u2 <= 0:
		if c.DistSqr(v2) > radius*radius {
			return m
		}
		localNormal.Unit(*math2d.NewVec2().Sub(c, v2))
		localPoint = v2
	default:
		faceCenter := math2d.Vec2{X: 0.5 * (v1.X + v2.X), Y: 0.5 * (v1.Y + v2.Y)}
		s := a.Normals[normalIndex].Dot(*math2d.NewVec2().Sub(c, faceCenter))
		if s > radius {
			return m
		}
		localNormal = a.Normals[normalIndex]
		localPoint = faceCenter
	}

	m.Type = FaceAManifold
	m.LocalNormal = localNormal
	m.LocalPoint = localPoint
	m.PointCount = 1
	m.Points[0] = ManifoldPoint{Point: b.Center}
	return m
}
