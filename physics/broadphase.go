// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"sort"

	"github.com/galvanized/rigid2d/math2d"
)

// pair is a candidate overlapping proxy pair discovered this step, keyed
// by tree node id order (proxyIDA < proxyIDB) so duplicate discovery from
// either side of the query dedupes cleanly.
type pair struct {
	proxyIDA int
	proxyIDB int
}

// BroadPhase wraps a DynamicTree with Box2D's "moved proxy" buffering
// scheme: CreateProxy/MoveProxy enqueue the touched proxy, and
// UpdatePairs does one O(k log n) query per moved proxy instead of a full
// O(n^2) sweep every step. Restructures the earlier 3D engine's flat
// broad_get_collision_pairs (physics/broad.go) around a dynamic tree
// instead of its bounding-sphere distance loop.
type BroadPhase struct {
	tree        *DynamicTree
	moveBuffer  []int
	moveSet     map[int]bool
	pairBuffer  []pair
	queryProxyID int
}

// NewBroadPhase returns an empty broad phase.
func NewBroadPhase() *BroadPhase {
	return &BroadPhase{tree: NewDynamicTree(), moveSet: make(map[int]bool)}
}

// CreateProxy inserts aabb/userData into the tree and marks the new proxy
// moved so the next UpdatePairs considers it.
func (bp *BroadPhase) CreateProxy(aabb AABB, userData any) int {
	id := bp.tree.CreateProxy(aabb, userData)
	bp.bufferMove(id)
	return id
}

// DestroyProxy removes a proxy and drops any pending move for it.
func (bp *BroadPhase) DestroyProxy(id int) {
	bp.unbufferMove(id)
	bp.tree.DestroyProxy(id)
}

// MoveProxy updates a proxy's AABB and buffers it if the tree actually
// changed the stored fat box.
func (bp *BroadPhase) MoveProxy(id int, aabb AABB, displacement math2d.Vec2) {
	if bp.tree.MoveProxy(id, aabb, displacement) {
		bp.bufferMove(id)
	}
}

func (bp *BroadPhase) bufferMove(id int) {
	if bp.moveSet[id] {
		return
	}
	bp.moveSet[id] = true
	bp.moveBuffer = append(bp.moveBuffer, id)
}

func (bp *BroadPhase) unbufferMove(id int) {
	if !bp.moveSet[id] {
		return
	}
	delete(bp.moveSet, id)
	for i, m := range bp.moveBuffer {
		if m == id {
			bp.moveBuffer = append(bp.moveBuffer[:i], bp.moveBuffer[i+1:]...)
			break
		}
	}
}

func (bp *BroadPhase) GetFatAABB(id int) AABB     { return bp.tree.GetFatAABB(id) }
func (bp *BroadPhase) GetUserData(id int) any     { return bp.tree.GetUserData(id) }
func (bp *BroadPhase) TestOverlap(a, b int) bool {
	return Overlap(bp.tree.GetFatAABB(a), bp.tree.GetFatAABB(b))
}

// UpdatePairs runs one tree query per buffered moved proxy, collects
// candidate pairs deduplicated and sorted into a deterministic order
// (broad-phase pair discovery must not depend on map iteration order), then reports each to addPair and clears
// the move buffer.
func (bp *BroadPhase) UpdatePairs(addPair func(userDataA, userDataB any)) {
	bp.pairBuffer = bp.pairBuffer[:0]

	for _, id := range bp.moveBuffer {
		bp.queryProxyID = id
		fatAABB := bp.tree.GetFatAABB(id)
		bp.tree.Query(fatAABB, bp.queryCallback)
	}

	for _, id := range bp.moveBuffer {
		delete(bp.moveSet, id)
	}
	bp.moveBuffer = bp.moveBuffer[:0]

	sort.Slice(bp.pairBuffer, func(i, j int) bool {
		if bp.pairBuffer[i].proxyIDA != bp.pairBuffer[j].proxyIDA {
			return bp.pairBuffer[i].proxyIDA < bp.pairBuffer[j].proxyIDA
		}
		return bp.pairBuffer[i].proxyIDB < bp.pairBuffer[j].proxyIDB
	})

	i := 0
	for i < len(bp.pairBuffer) {
		p := bp.pairBuffer[i]
		addPair(bp.tree.GetUserData(p.proxyIDA), bp.tree.GetUserData(p.proxyIDB))
		i++
		for i < len(bp.pairBuffer) && bp.pairBuffer[i] == p {
			i++
		}
	}
}

func (bp *BroadPhase) queryCallback(leafID int) bool {
	if leafID == bp.queryProxyID {
		return true
	}

	a, b := leafID, bp.queryProxyID
	if a > b {
		a, b = b, a
	}
	bp.pairBuffer = append(bp.pairBuffer, pair{proxyIDA: a, proxyIDB: b})
	return true
}
