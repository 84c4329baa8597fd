// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func TestBroadPhaseUpdatePairsFindsOverlap(t *testing.T) {
	bp := physics.NewBroadPhase()
	bp.CreateProxy(box(0, 0, 1, 1), "a")
	bp.CreateProxy(box(0.5, 0.5, 1.5, 1.5), "b")

	var pairs [][2]any
	bp.UpdatePairs(func(a, b any) {
		pairs = append(pairs, [2]any{a, b})
	})

	require.Len(t, pairs, 1)
}

func TestBroadPhaseUpdatePairsSkipsNonOverlapping(t *testing.T) {
	bp := physics.NewBroadPhase()
	bp.CreateProxy(box(0, 0, 1, 1), "a")
	bp.CreateProxy(box(100, 100, 101, 101), "b")

	var pairs [][2]any
	bp.UpdatePairs(func(a, b any) {
		pairs = append(pairs, [2]any{a, b})
	})

	require.Empty(t, pairs)
}

func TestBroadPhaseUpdatePairsDedupesAcrossBothSides(t *testing.T) {
	bp := physics.NewBroadPhase()
	idA := bp.CreateProxy(box(0, 0, 1, 1), "a")
	idB := bp.CreateProxy(box(0.2, 0.2, 1.2, 1.2), "b")
	_ = idA
	_ = idB

	count := 0
	bp.UpdatePairs(func(a, b any) { count++ })
	require.Equal(t, 1, count)

	count = 0
	bp.UpdatePairs(func(a, b any) { count++ })
	require.Equal(t, 0, count, "move buffer should be empty on a second call with no further moves")
}

func TestBroadPhaseDestroyProxyRemovesFromMoveBuffer(t *testing.T) {
	bp := physics.NewBroadPhase()
	idA := bp.CreateProxy(box(0, 0, 1, 1), "a")
	bp.CreateProxy(box(0.5, 0.5, 1.5, 1.5), "b")
	bp.DestroyProxy(idA)

	var pairs [][2]any
	bp.UpdatePairs(func(a, b any) {
		pairs = append(pairs, [2]any{a, b})
	})
	require.Empty(t, pairs)
}

func TestBroadPhaseTestOverlapMatchesFatAABBs(t *testing.T) {
	bp := physics.NewBroadPhase()
	idA := bp.CreateProxy(box(0, 0, 1, 1), "a")
	idB := bp.CreateProxy(box(100, 100, 101, 101), "b")

	require.False(t, bp.TestOverlap(idA, idB))
}

func TestBroadPhaseMoveProxyReenqueuesForNextUpdate(t *testing.T) {
	bp := physics.NewBroadPhase()
	idA := bp.CreateProxy(box(0, 0, 1, 1), "a")
	bp.CreateProxy(box(10, 10, 11, 11), "b")
	bp.UpdatePairs(func(a, b any) {})

	bp.MoveProxy(idA, box(9.5, 9.5, 10.5, 10.5), math2d.Vec2{X: 1, Y: 1})

	count := 0
	bp.UpdatePairs(func(a, b any) { count++ })
	require.Equal(t, 1, count)
}
