// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func TestEdgeTestPointAlwaysFalse(t *testing.T) {
	e := physics.NewEdgeShape(math2d.Vec2{X: 0, Y: 0}, math2d.Vec2{X: 10, Y: 0})
	xf := *math2d.NewTransform()
	require.False(t, e.TestPoint(xf, math2d.Vec2{X: 5, Y: 0}))
}

func TestEdgeComputeMassIsZero(t *testing.T) {
	e := physics.NewEdgeShape(math2d.Vec2{X: 0, Y: 0}, math2d.Vec2{X: 4, Y: 0})
	md := e.ComputeMass(1)
	require.Equal(t, physics.Real(0), md.Mass)
}

func TestEdgeRayCastPerpendicularHit(t *testing.T) {
	e := physics.NewEdgeShape(math2d.Vec2{X: -5, Y: 5}, math2d.Vec2{X: 5, Y: 5})
	xf := *math2d.NewTransform()

	input := &physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 0, Y: 10}, MaxFraction: 1}
	out, hit := e.RayCast(input, xf, 0)
	require.True(t, hit)
	require.InDelta(t, 0.5, out.Fraction, 1e-9)
}

func TestEdgeRayCastMissesOutsideSegment(t *testing.T) {
	e := physics.NewEdgeShape(math2d.Vec2{X: -5, Y: 5}, math2d.Vec2{X: -1, Y: 5})
	xf := *math2d.NewTransform()

	input := &physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 0, Y: 10}, MaxFraction: 1}
	_, hit := e.RayCast(input, xf, 0)
	require.False(t, hit)
}

func TestEdgeComputeAABBIncludesRadius(t *testing.T) {
	e := physics.NewEdgeShape(math2d.Vec2{X: 0, Y: 0}, math2d.Vec2{X: 4, Y: 0})
	xf := *math2d.NewTransform()

	aabb := e.ComputeAABB(xf, 0)
	require.InDelta(t, -e.Radius, aabb.Lower.X, 1e-9)
	require.InDelta(t, 4+e.Radius, aabb.Upper.X, 1e-9)
}
