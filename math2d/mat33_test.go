// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestMat33SolveIdentity(t *testing.T) {
	m := math2d.Mat33{
		Ex: math2d.Vec3{X: 1, Y: 0, Z: 0},
		Ey: math2d.Vec3{X: 0, Y: 1, Z: 0},
		Ez: math2d.Vec3{X: 0, Y: 0, Z: 1},
	}
	b := math2d.Vec3{X: 2, Y: 3, Z: 4}

	x := m.Solve33(b)
	require.Equal(t, b, x)
}

func TestMat33SolveDiagonal(t *testing.T) {
	m := math2d.Mat33{
		Ex: math2d.Vec3{X: 2, Y: 0, Z: 0},
		Ey: math2d.Vec3{X: 0, Y: 4, Z: 0},
		Ez: math2d.Vec3{X: 0, Y: 0, Z: 5},
	}
	b := math2d.Vec3{X: 4, Y: 8, Z: 10}

	x := m.Solve33(b)
	require.InDelta(t, 2, x.X, 1e-9)
	require.InDelta(t, 2, x.Y, 1e-9)
	require.InDelta(t, 2, x.Z, 1e-9)
}

func TestMat33SolveSingularReturnsZero(t *testing.T) {
	m := math2d.Mat33{
		Ex: math2d.Vec3{X: 1, Y: 1, Z: 1},
		Ey: math2d.Vec3{X: 1, Y: 1, Z: 1},
		Ez: math2d.Vec3{X: 0, Y: 0, Z: 1},
	}
	x := m.Solve33(math2d.Vec3{X: 1, Y: 2, Z: 3})
	require.Equal(t, math2d.Vec3{}, x)
}

func TestMat33SetZero(t *testing.T) {
	m := math2d.Mat33{
		Ex: math2d.Vec3{X: 1, Y: 2, Z: 3},
		Ey: math2d.Vec3{X: 4, Y: 5, Z: 6},
		Ez: math2d.Vec3{X: 7, Y: 8, Z: 9},
	}
	m.SetZero()
	require.Equal(t, math2d.Mat33{}, m)
}
