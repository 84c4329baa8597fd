// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
)

func TestClamp(t *testing.T) {
	require.Equal(t, math2d.Real(0), math2d.Clamp(-5, 0, 10))
	require.Equal(t, math2d.Real(10), math2d.Clamp(15, 0, 10))
	require.Equal(t, math2d.Real(4), math2d.Clamp(4, 0, 10))
}

func TestAeq(t *testing.T) {
	require.True(t, math2d.Aeq(1.0, 1.0+math2d.Epsilon/2))
	require.False(t, math2d.Aeq(1.0, 1.1))
}

func TestLerpEndpoints(t *testing.T) {
	require.Equal(t, math2d.Real(2), math2d.Lerp(2, 8, 0))
	require.Equal(t, math2d.Real(8), math2d.Lerp(2, 8, 1))
	require.Equal(t, math2d.Real(5), math2d.Lerp(2, 8, 0.5))
}

func TestSq(t *testing.T) {
	require.Equal(t, math2d.Real(9), math2d.Sq(3))
	require.Equal(t, math2d.Real(9), math2d.Sq(-3))
}
