// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestTransformIdentityIsNoop(t *testing.T) {
	id := math2d.NewTransform()
	v := math2d.Vec2{X: 3, Y: 4}

	require.Equal(t, v, math2d.MulTV(*id, v))
}

func TestMulTVThenMulTTVIsIdentity(t *testing.T) {
	xf := math2d.NewTransform().Set(math2d.Vec2{X: 5, Y: -2}, 0.8)
	local := math2d.Vec2{X: 2, Y: 3}

	world := math2d.MulTV(*xf, local)
	back := math2d.MulTTV(*xf, world)

	require.InDelta(t, local.X, back.X, 1e-9)
	require.InDelta(t, local.Y, back.Y, 1e-9)
}

func TestMulTransformsComposesApplication(t *testing.T) {
	a := math2d.NewTransform().Set(math2d.Vec2{X: 1, Y: 0}, math2d.HalfPi)
	b := math2d.NewTransform().Set(math2d.Vec2{X: 0, Y: 1}, 0.2)
	local := math2d.Vec2{X: 1, Y: 1}

	composed := math2d.MulTransforms(*a, *b)
	direct := math2d.MulTV(*a, math2d.MulTV(*b, local))
	viaComposed := math2d.MulTV(composed, local)

	require.InDelta(t, direct.X, viaComposed.X, 1e-9)
	require.InDelta(t, direct.Y, viaComposed.Y, 1e-9)
}

func TestMulTTransformsIsInverseOfMulTransforms(t *testing.T) {
	a := math2d.NewTransform().Set(math2d.Vec2{X: 2, Y: 1}, 0.3)
	b := math2d.NewTransform().Set(math2d.Vec2{X: -1, Y: 4}, 1.1)

	rel := math2d.MulTTransforms(*a, *b)
	recomposed := math2d.MulTransforms(*a, rel)

	require.InDelta(t, b.P.X, recomposed.P.X, 1e-9)
	require.InDelta(t, b.P.Y, recomposed.P.Y, 1e-9)
	require.InDelta(t, b.Q.Angle(), recomposed.Q.Angle(), 1e-9)
}
