// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func newTestSweep() math2d.Sweep {
	return math2d.Sweep{
		C0: math2d.Vec2{X: 0, Y: 0}, C: math2d.Vec2{X: 10, Y: 0},
		A0: 0, A: math2d.HalfPi,
	}
}

func TestSweepGetTransformInterpolatesEndpoints(t *testing.T) {
	s := newTestSweep()
	var xf math2d.Transform

	s.GetTransform(&xf, 0)
	require.InDelta(t, s.C0.X, xf.P.X, 1e-9)
	require.InDelta(t, s.A0, xf.Q.Angle(), 1e-9)

	s.GetTransform(&xf, 1)
	require.InDelta(t, s.C.X, xf.P.X, 1e-9)
	require.InDelta(t, s.A, xf.Q.Angle(), 1e-9)
}

func TestSweepGetTransformMidpoint(t *testing.T) {
	s := newTestSweep()
	var xf math2d.Transform
	s.GetTransform(&xf, 0.5)

	require.InDelta(t, 5, xf.P.X, 1e-9)
	require.InDelta(t, math2d.HalfPi/2, xf.Q.Angle(), 1e-9)
}

func TestSweepAdvanceMovesStartingPoint(t *testing.T) {
	s := newTestSweep()
	s.Advance(0.5)

	require.InDelta(t, 0.5, s.Alpha0, 1e-9)
	require.InDelta(t, 5, s.C0.X, 1e-9)
	require.InDelta(t, math2d.HalfPi/2, s.A0, 1e-9)
	// the end of the sweep is untouched by Advance.
	require.InDelta(t, 10, s.C.X, 1e-9)
}

func TestSweepAdvanceIsNoopWhenAlphaNotPastAlpha0(t *testing.T) {
	s := newTestSweep()
	s.Alpha0 = 0.4
	before := s.C0

	s.Advance(0.4)
	require.Equal(t, before, s.C0)

	s.Advance(0.1)
	require.Equal(t, before, s.C0)
}

func TestSweepNormalizeKeepsAngleDeltaAndFoldsA0(t *testing.T) {
	s := math2d.Sweep{A0: math2d.TwoPi + 0.1, A: math2d.TwoPi + 0.4}
	s.Normalize()

	require.InDelta(t, 0.1, s.A0, 1e-9)
	require.InDelta(t, 0.4, s.A, 1e-9)
}
