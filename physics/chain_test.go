// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func TestNewChainShapeRejectsTooFewVertices(t *testing.T) {
	require.Panics(t, func() {
		physics.NewChainShape([]math2d.Vec2{{X: 0, Y: 0}})
	})
}

func TestOpenChainChildCount(t *testing.T) {
	chain := physics.NewChainShape([]math2d.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
	})
	require.Equal(t, 3, chain.GetChildCount())
}

func TestLoopChainChildCountIncludesClosingEdge(t *testing.T) {
	loop := physics.NewLoopShape([]math2d.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	require.Equal(t, 4, loop.GetChildCount())
}

func TestChainComputeMassIsZero(t *testing.T) {
	chain := physics.NewChainShape([]math2d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}})
	md := chain.ComputeMass(1)
	require.Equal(t, physics.Real(0), md.Mass)
}

func TestChainChildAABBMatchesSegment(t *testing.T) {
	chain := physics.NewChainShape([]math2d.Vec2{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}})
	xf := *math2d.NewTransform()

	aabb0 := chain.ComputeAABB(xf, 0)
	require.InDelta(t, 0-chain.Radius, aabb0.Lower.X, 1e-6)
	require.InDelta(t, 3+chain.Radius, aabb0.Upper.X, 1e-6)

	aabb1 := chain.ComputeAABB(xf, 1)
	require.InDelta(t, 3-chain.Radius, aabb1.Lower.X, 1e-6)
	require.InDelta(t, 3+chain.Radius, aabb1.Upper.X, 1e-6)
}
