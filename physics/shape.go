// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// ShapeType enumerates the collision primitives physics understands,
// matching the shape-kind variant list. Ordering is the dispatch table index
// used by collide.go ("a small table of function references
// ... never virtual dispatch per contact").
type ShapeType int

const (
	CircleShapeType ShapeType = iota
	EdgeShapeType
	PolygonShapeType
	ChainShapeType
	shapeTypeCount
)

func (t ShapeType) String() string {
	switch t {
	case CircleShapeType:
		return "circle"
	case EdgeShapeType:
		return "edge"
	case PolygonShapeType:
		return "polygon"
	case ChainShapeType:
		return "chain"
	default:
		return "unknown"
	}
}

// MassData describes the mass properties a shape contributes to its
// owning body: mass, the center of mass in the shape's local frame, and
// the rotational inertia about the shape's local origin.
type MassData struct {
	Mass   Real
	Center math2d.Vec2
	I      Real // rotational inertia about the local origin
}

// DistanceProxy is a borrowed vertex list + radius, the common input GJK
// (distance.go) and the narrow-phase routines need regardless of the
// underlying shape kind. It lives only during a call and is read-only.
type DistanceProxy struct {
	Vertices []math2d.Vec2
	Radius   Real
}

// GetSupport returns the index of the proxy vertex farthest along
// direction d, mirroring the earlier 3D engine's GJK support-point search
// (physics/gjk.go) generalized from a 3D hull to a 2D polygon.
func (p *DistanceProxy) GetSupport(d math2d.Vec2) int {
	best := 0
	bestValue := p.Vertices[0].Dot(d)
	for i := 1; i < len(p.Vertices); i++ {
		v := p.Vertices[i].Dot(d)
		if v > bestValue {
			bestValue = v
			best = i
		}
	}
	return best
}

// GetSupportVertex returns the support vertex along d.
func (p *DistanceProxy) GetSupportVertex(d math2d.Vec2) math2d.Vec2 {
	return p.Vertices[p.GetSupport(d)]
}

// Shape is a physics collision primitive in local space, centered however
// its own geometry dictates. Combine a shape with a Transform to place it
// in world space. Shapes do not allocate during queries; callers provide
// the output structures (mirroring the earlier 3D engine's Shape.Aabb(t, ab, margin)
// out-parameter style), and shapes are immutable once attached to a
// fixture.
type Shape interface {
	Type() ShapeType

	// GetChildCount returns the number of independently-collidable
	// children a shape exposes (1 for circle/polygon, edge-count for a
	// chain).
	GetChildCount() int

	// TestPoint reports whether the world point p lies inside the
	// shape's child at childIndex when transformed by xf.
	TestPoint(xf math2d.Transform, p math2d.Vec2) bool

	// RayCast casts the given ray (already in world space) against the
	// shape's child at childIndex transformed by xf.
	RayCast(input *RayCastInput, xf math2d.Transform, childIndex int) (RayCastOutput, bool)

	// ComputeAABB computes the AABB for the shape's child at childIndex
	// under transform xf.
	ComputeAABB(xf math2d.Transform, childIndex int) AABB

	// ComputeMass computes the mass data for the whole shape given a
	// material density.
	ComputeMass(density Real) MassData

	// Proxy returns the distance proxy for the shape's child at
	// childIndex, used by GJK/TOI.
	Proxy(childIndex int) DistanceProxy
}
