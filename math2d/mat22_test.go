// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestMat22IdentityMulIsNoop(t *testing.T) {
	id := math2d.NewMat22Cols(math2d.Vec2{X: 1, Y: 0}, math2d.Vec2{X: 0, Y: 1})
	v := math2d.Vec2{X: 3, Y: -7}

	require.Equal(t, v, math2d.MulMV(*id, v))
}

func TestMat22InvertRoundTrips(t *testing.T) {
	m := math2d.Mat22{Ex: math2d.Vec2{X: 2, Y: 0}, Ey: math2d.Vec2{X: 1, Y: 4}}
	inv := m.Invert()

	v := math2d.Vec2{X: 5, Y: -3}
	roundTrip := math2d.MulMV(inv, math2d.MulMV(m, v))
	require.InDelta(t, v.X, roundTrip.X, 1e-9)
	require.InDelta(t, v.Y, roundTrip.Y, 1e-9)
}

func TestMat22InvertSingularReturnsZero(t *testing.T) {
	singular := math2d.Mat22{Ex: math2d.Vec2{X: 1, Y: 2}, Ey: math2d.Vec2{X: 2, Y: 4}}
	require.Equal(t, math2d.Mat22{}, singular.Invert())
}

func TestMat22SolveMatchesInvert(t *testing.T) {
	m := math2d.Mat22{Ex: math2d.Vec2{X: 3, Y: 1}, Ey: math2d.Vec2{X: 1, Y: 2}}
	b := math2d.Vec2{X: 9, Y: 8}

	x := m.Solve(b)
	viaInvert := math2d.MulMV(m.Invert(), b)

	require.InDelta(t, viaInvert.X, x.X, 1e-9)
	require.InDelta(t, viaInvert.Y, x.Y, 1e-9)
}

func TestMat22SetAngleMatchesRot(t *testing.T) {
	angle := math2d.Real(0.7)
	m := math2d.NewMat22Cols(math2d.Vec2{}, math2d.Vec2{}).SetAngle(angle)
	r := math2d.NewRot(angle)

	require.InDelta(t, r.C, m.Ex.X, 1e-9)
	require.InDelta(t, r.S, m.Ex.Y, 1e-9)
}
