// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func box(lx, ly, ux, uy physics.Real) physics.AABB {
	return physics.AABB{Lower: math2d.Vec2{X: lx, Y: ly}, Upper: math2d.Vec2{X: ux, Y: uy}}
}

func TestDynamicTreeCreateProxyFattensAABB(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(0, 0, 1, 1), "payload")

	fat := tree.GetFatAABB(id)
	require.Less(t, fat.Lower.X, physics.Real(0))
	require.Greater(t, fat.Upper.X, physics.Real(1))
	require.Equal(t, "payload", tree.GetUserData(id))
}

func TestDynamicTreeDestroyProxyAllowsReuse(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(0, 0, 1, 1), 1)
	tree.DestroyProxy(id)

	id2 := tree.CreateProxy(box(5, 5, 6, 6), 2)
	require.Equal(t, id, id2)
}

func TestDynamicTreeMoveProxySkipsWhenContained(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(0, 0, 1, 1), nil)

	moved := tree.MoveProxy(id, box(0.01, 0.01, 0.9, 0.9), math2d.Vec2{})
	require.False(t, moved)
}

func TestDynamicTreeMoveProxyReinsertsWhenOutOfBounds(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(0, 0, 1, 1), nil)

	moved := tree.MoveProxy(id, box(50, 50, 51, 51), math2d.Vec2{X: 1, Y: 1})
	require.True(t, moved)

	fat := tree.GetFatAABB(id)
	require.True(t, fat.Lower.X <= 50)
	require.True(t, fat.Upper.X >= 51)
}

func TestDynamicTreeQueryFindsOverlappingLeaves(t *testing.T) {
	tree := physics.NewDynamicTree()
	idA := tree.CreateProxy(box(0, 0, 1, 1), "a")
	idB := tree.CreateProxy(box(10, 10, 11, 11), "b")

	var hits []int
	tree.Query(box(-1, -1, 2, 2), func(id int) bool {
		hits = append(hits, id)
		return true
	})

	require.Contains(t, hits, idA)
	require.NotContains(t, hits, idB)
}

func TestDynamicTreeQueryCanTerminateEarly(t *testing.T) {
	tree := physics.NewDynamicTree()
	tree.CreateProxy(box(0, 0, 1, 1), "a")
	tree.CreateProxy(box(0.5, 0.5, 1.5, 1.5), "b")

	calls := 0
	tree.Query(box(-10, -10, 10, 10), func(id int) bool {
		calls++
		return false
	})
	require.Equal(t, 1, calls)
}

func TestDynamicTreeRayCastHitsLeafAlongSegment(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(4, -1, 6, 1), "target")

	input := physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 10, Y: 0}, MaxFraction: 1}

	hit := false
	tree.RayCast(input, func(nodeID int, in physics.RayCastInput) physics.Real {
		if nodeID == id {
			hit = true
		}
		return -1
	})
	require.True(t, hit)
}

func TestDynamicTreeRayCastTerminatesOnZeroReturn(t *testing.T) {
	tree := physics.NewDynamicTree()
	tree.CreateProxy(box(4, -1, 6, 1), "a")
	tree.CreateProxy(box(7, -1, 9, 1), "b")

	input := physics.RayCastInput{P1: math2d.Vec2{X: 0, Y: 0}, P2: math2d.Vec2{X: 10, Y: 0}, MaxFraction: 1}

	visited := 0
	tree.RayCast(input, func(nodeID int, in physics.RayCastInput) physics.Real {
		visited++
		return 0
	})
	require.Equal(t, 1, visited)
}

func TestDynamicTreeHeightGrowsWithManyProxies(t *testing.T) {
	tree := physics.NewDynamicTree()
	require.Equal(t, 0, tree.Height())

	for i := 0; i < 32; i++ {
		x := physics.Real(i) * 2
		tree.CreateProxy(box(x, 0, x+1, 1), i)
	}
	require.Greater(t, tree.Height(), 1)
}

func TestDynamicTreeShiftOriginTranslatesAllNodes(t *testing.T) {
	tree := physics.NewDynamicTree()
	id := tree.CreateProxy(box(10, 10, 11, 11), nil)

	before := tree.GetFatAABB(id)
	tree.ShiftOrigin(math2d.Vec2{X: 5, Y: 5})
	after := tree.GetFatAABB(id)

	require.InDelta(t, before.Lower.X-5, after.Lower.X, 1e-9)
	require.InDelta(t, before.Lower.Y-5, after.Lower.Y, 1e-9)
}
