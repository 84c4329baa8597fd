// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestVec2AddSub(t *testing.T) {
	a := math2d.Vec2{X: 1, Y: 2}
	b := math2d.Vec2{X: 3, Y: -1}

	sum := math2d.NewVec2().Add(a, b)
	require.Equal(t, math2d.Vec2{X: 4, Y: 1}, *sum)

	diff := math2d.NewVec2().Sub(a, b)
	require.Equal(t, math2d.Vec2{X: -2, Y: 3}, *diff)
}

func TestVec2MutateAndReturnAliasesReceiver(t *testing.T) {
	v := math2d.NewVec2()
	got := v.SetS(5, 6)
	require.Same(t, v, got, "Set-style methods must return their own receiver")
	require.Equal(t, math2d.Real(5), v.X)
	require.Equal(t, math2d.Real(6), v.Y)
}

func TestVec2DotCross(t *testing.T) {
	a := math2d.Vec2{X: 1, Y: 0}
	b := math2d.Vec2{X: 0, Y: 1}

	require.InDelta(t, 0, a.Dot(b), math2d.Epsilon)
	require.InDelta(t, 1, a.Cross(b), math2d.Epsilon)
	require.InDelta(t, -1, b.Cross(a), math2d.Epsilon)
}

func TestVec2PerpsAreOpposite(t *testing.T) {
	v := math2d.Vec2{X: 3, Y: 4}
	left := v.LeftPerp()
	right := v.RightPerp()

	require.InDelta(t, 0, left.Dot(v), 1e-9, "perpendicular must be orthogonal to v")
	require.Equal(t, math2d.Vec2{X: -left.X, Y: -left.Y}, right)
}

func TestVec2UnitNormalizesLength(t *testing.T) {
	unit, length := math2d.NewVec2().Unit(math2d.Vec2{X: 3, Y: 4})
	require.InDelta(t, 5, length, math2d.Epsilon)
	require.InDelta(t, 1, unit.Len(), 1e-9)
}

func TestVec2UnitOfZeroVectorIsZero(t *testing.T) {
	unit, length := math2d.NewVec2().Unit(math2d.Vec2{})
	require.Equal(t, math2d.Real(0), length)
	require.Equal(t, math2d.Vec2{}, *unit)
}

func TestVec2IsValid(t *testing.T) {
	require.True(t, (math2d.Vec2{X: 1, Y: 2}).IsValid())
	require.False(t, (math2d.Vec2{X: math.NaN(), Y: 0}).IsValid())
	require.False(t, (math2d.Vec2{X: math.Inf(1), Y: 0}).IsValid())
}

func TestCrossSVAndCrossVSAreAntisymmetric(t *testing.T) {
	v := math2d.Vec2{X: 2, Y: 5}
	s := math2d.Real(3)

	a := math2d.CrossSV(s, v)
	b := math2d.CrossVS(v, s)
	require.Equal(t, a, math2d.Vec2{X: -b.X, Y: -b.Y})
}

func TestVec2Lerp(t *testing.T) {
	a := math2d.Vec2{X: 0, Y: 0}
	b := math2d.Vec2{X: 10, Y: 20}

	mid := math2d.NewVec2().Lerp(a, b, 0.5)
	require.Equal(t, math2d.Vec2{X: 5, Y: 10}, *mid)
}
