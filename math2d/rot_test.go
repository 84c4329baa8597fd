// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestRotAngleRoundTrips(t *testing.T) {
	for _, angle := range []math2d.Real{0, 0.3, math2d.HalfPi, -1.2, math2d.Pi - 0.01} {
		r := math2d.NewRot(angle)
		require.InDelta(t, angle, r.Angle(), 1e-9)
	}
}

func TestMulRVThenMulTRVIsIdentity(t *testing.T) {
	r := math2d.NewRot(0.9)
	v := math2d.Vec2{X: 4, Y: -2}

	rotated := math2d.MulRV(*r, v)
	back := math2d.MulTRV(*r, rotated)

	require.InDelta(t, v.X, back.X, 1e-9)
	require.InDelta(t, v.Y, back.Y, 1e-9)
}

func TestMulRotComposesAngles(t *testing.T) {
	a := math2d.NewRot(0.4)
	b := math2d.NewRot(0.6)

	composed := math2d.MulRot(*a, *b)
	require.InDelta(t, 1.0, composed.Angle(), 1e-9)
}

func TestAxesAreOrthonormal(t *testing.T) {
	r := math2d.NewRot(1.1)
	x, y := r.XAxis(), r.YAxis()

	require.InDelta(t, 0, x.Dot(y), 1e-9)
	require.InDelta(t, 1, x.Len(), 1e-9)
	require.InDelta(t, 1, y.Len(), 1e-9)
}
