// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// ChainShape is a sequence of connected segments, each exposed as an
// independently-collidable child. Every
// interior child is built as a one-sided EdgeShape carrying its
// neighboring vertices as ghosts so narrow-phase collide_edge.go can
// suppress false normal flips at shared vertices.
type ChainShape struct {
	Vertices []math2d.Vec2
	Loop     bool
	Radius   Real
}

// NewChainShape builds an open chain through the given vertices in order.
func NewChainShape(vertices []math2d.Vec2) *ChainShape {
	if len(vertices) < 2 {
		panicInvariant("NewChainShape", "need at least 2 vertices, got %d", len(vertices))
	}
	return &ChainShape{Vertices: vertices, Radius: PolygonRadius}
}

// NewLoopShape builds a closed chain (the last vertex connects back to the
// first), the common "ground terrain" case.
func NewLoopShape(vertices []math2d.Vec2) *ChainShape {
	c := NewChainShape(vertices)
	c.Loop = true
	return c
}

func (s *ChainShape) Type() ShapeType { return ChainShapeType }

func (s *ChainShape) GetChildCount() int {
	if s.Loop {
		return len(s.Vertices)
	}
	return len(s.Vertices) - 1
}

// childEdge materializes child i as a ghost-vertex EdgeShape, mirroring
// xphysics's b2ChainShape::GetChildEdge.
func (s *ChainShape) childEdge(i int) *EdgeShape {
	n := len(s.Vertices)
	edge := &EdgeShape{Radius: s.Radius}

	if s.Loop {
		edge.V0 = s.Vertices[(i+n-1)%n]
		edge.V1 = s.Vertices[i%n]
		edge.V2 = s.Vertices[(i+1)%n]
		edge.V3 = s.Vertices[(i+2)%n]
		edge.HasV0, edge.HasV3 = true, true
		return edge
	}

	edge.V1 = s.Vertices[i]
	edge.V2 = s.Vertices[i+1]
	if i > 0 {
		edge.V0 = s.Vertices[i-1]
		edge.HasV0 = true
	}
	if i+2 < n {
		edge.V3 = s.Vertices[i+2]
		edge.HasV3 = true
	}
	return edge
}

func (s *ChainShape) TestPoint(xf math2d.Transform, p math2d.Vec2) bool {
	// A chain has zero area everywhere, matching EdgeShape.TestPoint.
	return false
}

func (s *ChainShape) RayCast(input *RayCastInput, xf math2d.Transform, childIndex int) (RayCastOutput, bool) {
	return s.childEdge(childIndex).RayCast(input, xf, 0)
}

func (s *ChainShape) ComputeAABB(xf math2d.Transform, childIndex int) AABB {
	return s.childEdge(childIndex).ComputeAABB(xf, 0)
}

// ComputeMass reports zero mass: chains describe static boundary geometry
// only (a moving chain body has no physical basis).
func (s *ChainShape) ComputeMass(density Real) MassData {
	return MassData{}
}

func (s *ChainShape) Proxy(childIndex int) DistanceProxy {
	return s.childEdge(childIndex).Proxy(0)
}
