// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func TestDistanceBetweenSeparatedCircles(t *testing.T) {
	a := physics.NewCircleShape(math2d.Vec2{}, 1)
	b := physics.NewCircleShape(math2d.Vec2{}, 1)

	input := physics.DistanceInput{
		ProxyA:     a.Proxy(0),
		ProxyB:     b.Proxy(0),
		TransformA: *math2d.NewTransform(),
		TransformB: *math2d.NewTransform().Set(math2d.Vec2{X: 10, Y: 0}, 0),
	}

	cache := &physics.SimplexCache{}
	out := physics.Distance(cache, input)

	require.InDelta(t, 10, out.Distance, 1e-6)
}

func TestDistanceUseRadiiShrinksResult(t *testing.T) {
	a := physics.NewCircleShape(math2d.Vec2{}, 1)
	b := physics.NewCircleShape(math2d.Vec2{}, 2)

	input := physics.DistanceInput{
		ProxyA:     a.Proxy(0),
		ProxyB:     b.Proxy(0),
		TransformA: *math2d.NewTransform(),
		TransformB: *math2d.NewTransform().Set(math2d.Vec2{X: 10, Y: 0}, 0),
		UseRadii:   true,
	}

	cache := &physics.SimplexCache{}
	out := physics.Distance(cache, input)

	require.InDelta(t, 7, out.Distance, 1e-6)
}

func TestDistanceOverlappingBoxesIsZero(t *testing.T) {
	a := physics.NewBoxShape(1, 1)
	b := physics.NewBoxShape(1, 1)

	input := physics.DistanceInput{
		ProxyA:     a.Proxy(0),
		ProxyB:     b.Proxy(0),
		TransformA: *math2d.NewTransform(),
		TransformB: *math2d.NewTransform(),
	}

	cache := &physics.SimplexCache{}
	out := physics.Distance(cache, input)

	require.InDelta(t, 0, out.Distance, 1e-6)
}

func TestDistanceCacheWarmStartMatchesFreshQuery(t *testing.T) {
	a := physics.NewCircleShape(math2d.Vec2{}, 1)
	b := physics.NewCircleShape(math2d.Vec2{}, 1)

	xfA := *math2d.NewTransform()
	xfB := *math2d.NewTransform().Set(math2d.Vec2{X: 5, Y: 0}, 0)

	input := physics.DistanceInput{ProxyA: a.Proxy(0), ProxyB: b.Proxy(0), TransformA: xfA, TransformB: xfB}

	fresh := physics.Distance(&physics.SimplexCache{}, input)

	warm := &physics.SimplexCache{}
	physics.Distance(warm, input)
	warmed := physics.Distance(warm, input)

	require.InDelta(t, fresh.Distance, warmed.Distance, 1e-6)
}
