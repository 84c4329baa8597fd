// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func TestNewCircleShapeRejectsNonPositiveRadius(t *testing.T) {
	require.Panics(t, func() {
		physics.NewCircleShape(math2d.Vec2{}, 0)
	})
	require.Panics(t, func() {
		physics.NewCircleShape(math2d.Vec2{}, -1)
	})
}

func TestCircleTestPoint(t *testing.T) {
	c := physics.NewCircleShape(math2d.Vec2{X: 1, Y: 1}, 2)
	xf := *math2d.NewTransform()

	require.True(t, c.TestPoint(xf, math2d.Vec2{X: 1, Y: 1}))
	require.True(t, c.TestPoint(xf, math2d.Vec2{X: 2.9, Y: 1}))
	require.False(t, c.TestPoint(xf, math2d.Vec2{X: 5, Y: 5}))
}

func TestCircleComputeAABB(t *testing.T) {
	c := physics.NewCircleShape(math2d.Vec2{X: 2, Y: 3}, 1)
	xf := *math2d.NewTransform()

	aabb := c.ComputeAABB(xf, 0)
	require.Equal(t, math2d.Vec2{X: 1, Y: 2}, aabb.Lower)
	require.Equal(t, math2d.Vec2{X: 3, Y: 4}, aabb.Upper)
}

func TestCircleComputeMass(t *testing.T) {
	c := physics.NewCircleShape(math2d.Vec2{}, 2)
	md := c.ComputeMass(1)

	require.InDelta(t, math2d.Pi*4, md.Mass, 1e-9)
	require.Greater(t, md.I, 0.0)
}

func TestCircleRayCastHitsThroughCenter(t *testing.T) {
	c := physics.NewCircleShape(math2d.Vec2{X: 5, Y: 0}, 1)
	xf := *math2d.NewTransform()

	input := &physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 10, Y: 0}, MaxFraction: 1}
	out, hit := c.RayCast(input, xf, 0)
	require.True(t, hit)
	require.InDelta(t, 0.4, out.Fraction, 1e-6)
	require.InDelta(t, -1, out.Normal.X, 1e-6)
}

func TestCircleRayCastMisses(t *testing.T) {
	c := physics.NewCircleShape(math2d.Vec2{X: 5, Y: 10}, 1)
	xf := *math2d.NewTransform()

	input := &physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 10, Y: 0}, MaxFraction: 1}
	_, hit := c.RayCast(input, xf, 0)
	require.False(t, hit)
}
