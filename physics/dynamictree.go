// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

const nullNode = -1

// treeNode is one entry in the dynamic tree's node pool. Leaves carry a
// proxy's fattened AABB and payload; internal nodes carry the union of
// their children's boxes. Child/parent links are pool indices rather than
// pointers using the "Option<usize>-as-sentinel" convention, with
// nullNode standing in for "no link".
type treeNode struct {
	aabb        AABB
	parent      int // also used as "next free node" while on the free list
	child1      int
	child2      int
	height      int // -1 marks a free node, 0 a leaf
	userData    any
}

func (n *treeNode) isLeaf() bool { return n.child1 == nullNode }

// DynamicTree is a balanced binary tree of AABBs supporting O(log n)
// insert/remove/move and stack-based overlap/ray queries, grounded on
// xphysics/src/collision/dynamic_tree.rs (the earlier engine has no BVH at all —
// its broad phase is an O(n^2) distance sweep, see DESIGN.md). Node
// storage is a growable slice pool with a singly-linked free list through
// the parent field, matching the Rust source's Vec<TreeNode> + free_list
// design translated into Go idiom.
type DynamicTree struct {
	nodes    []treeNode
	root     int
	freeList int
}

// NewDynamicTree returns an empty tree with no allocated nodes.
func NewDynamicTree() *DynamicTree {
	return &DynamicTree{root: nullNode, freeList: nullNode}
}

func (t *DynamicTree) allocateNode() int {
	if t.freeList == nullNode {
		n := len(t.nodes)
		t.nodes = append(t.nodes, treeNode{parent: nullNode, child1: nullNode, child2: nullNode, height: -1})
		t.freeList = n
	}

	id := t.freeList
	t.freeList = t.nodes[id].parent
	t.nodes[id] = treeNode{parent: nullNode, child1: nullNode, child2: nullNode, height: 0}
	return id
}

func (t *DynamicTree) freeNode(id int) {
	t.nodes[id] = treeNode{parent: t.freeList, height: -1}
	t.freeList = id
}

// CreateProxy inserts a new leaf for the given tight AABB and user payload,
// fattening it by AABBExtension before insertion so small moves don't
// require a tree update. Returns the leaf's node id.
func (t *DynamicTree) CreateProxy(aabb AABB, userData any) int {
	id := t.allocateNode()
	t.nodes[id].aabb = aabb.Fatten(AABBExtension)
	t.nodes[id].userData = userData
	t.nodes[id].height = 0
	t.insertLeaf(id)
	return id
}

// DestroyProxy removes a leaf from the tree and returns its node to the
// free list.
func (t *DynamicTree) DestroyProxy(id int) {
	t.removeLeaf(id)
	t.freeNode(id)
}

// MoveProxy updates a leaf's AABB, re-inserting it into the tree only if
// the new tight box is not already contained by the leaf's fattened box.
// displacement predicts the next step's motion and extrudes the fattened
// box further in that direction so fast-moving bodies need fewer
// reinsertions — fixing a classic double-displacement bug: each
// axis's lower bound is extruded only by that axis's *negative* component
// of the displacement, and the upper bound only by the *positive*
// component, rather than applying the same signed shift to both bounds.
func (t *DynamicTree) MoveProxy(id int, aabb AABB, displacement math2d.Vec2) bool {
	if t.nodes[id].aabb.Contains(aabb) {
		return false
	}

	t.removeLeaf(id)

	fat := aabb.Fatten(AABBExtension)

	if displacement.X < 0 {
		fat.Lower.X += AABBMultiplier * displacement.X
	} else {
		fat.Upper.X += AABBMultiplier * displacement.X
	}

	if displacement.Y < 0 {
		fat.Lower.Y += AABBMultiplier * displacement.Y
	} else {
		fat.Upper.Y += AABBMultiplier * displacement.Y
	}

	t.nodes[id].aabb = fat
	t.insertLeaf(id)
	return true
}

// GetFatAABB returns the stored (fattened) AABB for a proxy, the box the
// broad phase actually tests overlap against.
func (t *DynamicTree) GetFatAABB(id int) AABB { return t.nodes[id].aabb }

// GetUserData returns the payload a proxy was created or last updated
// with.
func (t *DynamicTree) GetUserData(id int) any { return t.nodes[id].userData }

func (t *DynamicTree) insertLeaf(leaf int) {
	if t.root == nullNode {
		t.root = leaf
		t.nodes[leaf].parent = nullNode
		return
	}

	leafAABB := t.nodes[leaf].aabb
	index := t.root

	for !t.nodes[index].isLeaf() {
		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2

		area := t.nodes[index].aabb.Perimeter()
		combined := CombineTwo(t.nodes[index].aabb, leafAABB)
		combinedArea := combined.Perimeter()

		cost := 2 * combinedArea
		inheritCost := 2 * (combinedArea - area)

		cost1 := t.childCost(child1, leafAABB, inheritCost)
		cost2 := t.childCost(child2, leafAABB, inheritCost)

		if cost < cost1 && cost < cost2 {
			break
		}

		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].parent
	newParent := t.allocateNode()
	t.nodes[newParent].parent = oldParent
	t.nodes[newParent].aabb = CombineTwo(leafAABB, t.nodes[sibling].aabb)
	t.nodes[newParent].height = t.nodes[sibling].height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].child1 == sibling {
			t.nodes[oldParent].child1 = newParent
		} else {
			t.nodes[oldParent].child2 = newParent
		}
		t.nodes[newParent].child1 = sibling
		t.nodes[newParent].child2 = leaf
		t.nodes[sibling].parent = newParent
		t.nodes[leaf].parent = newParent
	} else {
		t.nodes[newParent].child1 = sibling
		t.nodes[newParent].child2 = leaf
		t.nodes[sibling].parent = newParent
		t.nodes[leaf].parent = newParent
		t.root = newParent
	}

	t.fixUpwards(t.nodes[leaf].parent)
}

func (t *DynamicTree) childCost(child int, leafAABB AABB, inheritCost Real) Real {
	if t.nodes[child].isLeaf() {
		combined := CombineTwo(leafAABB, t.nodes[child].aabb)
		return combined.Perimeter() + inheritCost
	}
	combined := CombineTwo(leafAABB, t.nodes[child].aabb)
	oldArea := t.nodes[child].aabb.Perimeter()
	newArea := combined.Perimeter()
	return (newArea - oldArea) + inheritCost
}

func (t *DynamicTree) removeLeaf(leaf int) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].parent
	grandParent := t.nodes[parent].parent
	var sibling int
	if t.nodes[parent].child1 == leaf {
		sibling = t.nodes[parent].child2
	} else {
		sibling = t.nodes[parent].child1
	}

	if grandParent != nullNode {
		if t.nodes[grandParent].child1 == parent {
			t.nodes[grandParent].child1 = sibling
		} else {
			t.nodes[grandParent].child2 = sibling
		}
		t.nodes[sibling].parent = grandParent
		t.freeNode(parent)
		t.fixUpwards(grandParent)
	} else {
		t.root = sibling
		t.nodes[sibling].parent = nullNode
		t.freeNode(parent)
	}
}

// fixUpwards walks from index to the root, recomputing AABBs/heights and
// rebalancing via rotation at each level — the AVL-style fix-up the
// original Rust source runs after every structural change.
func (t *DynamicTree) fixUpwards(index int) {
	for index != nullNode {
		index = t.balance(index)

		child1 := t.nodes[index].child1
		child2 := t.nodes[index].child2

		t.nodes[index].height = 1 + maxInt(t.nodes[child1].height, t.nodes[child2].height)
		t.nodes[index].aabb = CombineTwo(t.nodes[child1].aabb, t.nodes[child2].aabb)

		index = t.nodes[index].parent
	}
}

// balance rotates the subtree rooted at iA if it has grown more than one
// level unbalanced, returning the new subtree root.
func (t *DynamicTree) balance(iA int) int {
	a := &t.nodes[iA]
	if a.isLeaf() || a.height < 2 {
		return iA
	}

	iB := a.child1
	iC := a.child2
	b := &t.nodes[iB]
	c := &t.nodes[iC]

	balance := c.height - b.height

	if balance > 1 {
		return t.rotateLeft(iA, iB, iC)
	}
	if balance < -1 {
		return t.rotateRight(iA, iB, iC)
	}
	return iA
}

func (t *DynamicTree) rotateLeft(iA, iB, iC int) int {
	c := &t.nodes[iC]
	iF := c.child1
	iG := c.child2

	c.child1 = iA
	c.parent = t.nodes[iA].parent
	t.nodes[iA].parent = iC

	if c.parent != nullNode {
		if t.nodes[c.parent].child1 == iA {
			t.nodes[c.parent].child1 = iC
		} else {
			t.nodes[c.parent].child2 = iC
		}
	} else {
		t.root = iC
	}

	if t.nodes[iF].height > t.nodes[iG].height {
		c.child2 = iF
		t.nodes[iA].child2 = iG
		t.nodes[iG].parent = iA
		t.nodes[iA].aabb = CombineTwo(t.nodes[iB].aabb, t.nodes[iG].aabb)
		c.aabb = CombineTwo(t.nodes[iA].aabb, t.nodes[iF].aabb)
		t.nodes[iA].height = 1 + maxInt(t.nodes[iB].height, t.nodes[iG].height)
		c.height = 1 + maxInt(t.nodes[iA].height, t.nodes[iF].height)
	} else {
		c.child2 = iG
		t.nodes[iA].child2 = iF
		t.nodes[iF].parent = iA
		t.nodes[iA].aabb = CombineTwo(t.nodes[iB].aabb, t.nodes[iF].aabb)
		c.aabb = CombineTwo(t.nodes[iA].aabb, t.nodes[iG].aabb)
		t.nodes[iA].height = 1 + maxInt(t.nodes[iB].height, t.nodes[iF].height)
		c.height = 1 + maxInt(t.nodes[iA].height, t.nodes[iG].height)
	}

	return iC
}

func (t *DynamicTree) rotateRight(iA, iB, iC int) int {
	b := &t.nodes[iB]
	iD := b.child1
	iE := b.child2

	b.child1 = iA
	b.parent = t.nodes[iA].parent
	t.nodes[iA].parent = iB

	if b.parent != nullNode {
		if t.nodes[b.parent].child1 == iA {
			t.nodes[b.parent].child1 = iB
		} else {
			t.nodes[b.parent].child2 = iB
		}
	} else {
		t.root = iB
	}

	if t.nodes[iD].height > t.nodes[iE].height {
		b.child2 = iD
		t.nodes[iA].child1 = iE
		t.nodes[iE].parent = iA
		t.nodes[iA].aabb = CombineTwo(t.nodes[iC].aabb, t.nodes[iE].aabb)
		b.aabb = CombineTwo(t.nodes[iA].aabb, t.nodes[iD].aabb)
		t.nodes[iA].height = 1 + maxInt(t.nodes[iC].height, t.nodes[iE].height)
		b.height = 1 + maxInt(t.nodes[iA].height, t.nodes[iD].height)
	} else {
		b.child2 = iE
		t.nodes[iA].child1 = iD
		t.nodes[iD].parent = iA
		t.nodes[iA].aabb = CombineTwo(t.nodes[iC].aabb, t.nodes[iD].aabb)
		b.aabb = CombineTwo(t.nodes[iA].aabb, t.nodes[iE].aabb)
		t.nodes[iA].height = 1 + maxInt(t.nodes[iC].height, t.nodes[iD].height)
		b.height = 1 + maxInt(t.nodes[iA].height, t.nodes[iE].height)
	}

	return iB
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Height returns the tree's overall height, 0 for an empty or single-leaf
// tree. Exposed for tests and balance diagnostics.
func (t *DynamicTree) Height() int {
	if t.root == nullNode {
		return 0
	}
	return t.nodes[t.root].height
}

// Query visits every leaf whose fat AABB overlaps aabb, stopping early if
// callback returns false. Uses an explicit stack rather than recursion to
// match the iterative traversal xphysics's dynamic_tree.rs uses to avoid
// unbounded stack growth on pathological trees.
func (t *DynamicTree) Query(aabb AABB, callback func(nodeID int) bool) {
	if t.root == nullNode {
		return
	}
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]
		if !Overlap(n.aabb, aabb) {
			continue
		}
		if n.isLeaf() {
			if !callback(id) {
				return
			}
		} else {
			stack = append(stack, n.child1, n.child2)
		}
	}
}

// RayCast visits every leaf whose fat AABB the segment p1-p2 might enter,
// shrinking the search segment as callback returns smaller fractions
// (mirrors Shape.RayCast's MaxFraction narrowing contract). The segment
// AABB test uses the standard slab/separating-axis pruning from the
// original dynamic tree ray cast rather than testing every leaf directly.
func (t *DynamicTree) RayCast(input RayCastInput, callback func(nodeID int, input RayCastInput) Real) {
	if t.root == nullNode {
		return
	}

	p1, p2 := input.P1, input.P2
	d, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(p2, p1))
	absD := math2d.NewVec2().Abs(*d)

	maxFraction := input.MaxFraction
	r := *math2d.NewVec2().Scale(*math2d.NewVec2().Sub(p2, p1), maxFraction)
	segmentAABB := AABB{
		Lower: *math2d.NewVec2().Min(p1, *math2d.NewVec2().Add(p1, r)),
		Upper: *math2d.NewVec2().Max(p1, *math2d.NewVec2().Add(p1, r)),
	}

	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]
		if !Overlap(n.aabb, segmentAABB) {
			continue
		}

		center := n.aabb.Center()
		extents := n.aabb.Extents()
		sep := math2d.NewVec2().Sub(center, p1)
		// separating-axis rejection along the segment's normal
		if abs(d.Y*sep.X-d.X*sep.Y)-(absD.Y*extents.X+absD.X*extents.Y) > 0 {
			continue
		}

		if n.isLeaf() {
			subInput := RayCastInput{P1: p1, P2: p2, MaxFraction: maxFraction}
			value := callback(id, subInput)
			if value == 0 {
				return
			}
			if value > 0 {
				maxFraction = value
				r = *math2d.NewVec2().Scale(*math2d.NewVec2().Sub(p2, p1), maxFraction)
				segmentAABB.Lower = *math2d.NewVec2().Min(p1, *math2d.NewVec2().Add(p1, r))
				segmentAABB.Upper = *math2d.NewVec2().Max(p1, *math2d.NewVec2().Add(p1, r))
			}
		} else {
			stack = append(stack, n.child1, n.child2)
		}
	}
}

func abs(v Real) Real {
	if v < 0 {
		return -v
	}
	return v
}

// ShiftOrigin translates every node's AABB by -newOrigin, used when a
// caller recenters the simulation's floating-point frame of reference to
// fight precision loss far from the world origin (an edge case for
// long-running simulations far from origin).
func (t *DynamicTree) ShiftOrigin(newOrigin math2d.Vec2) {
	for i := range t.nodes {
		if t.nodes[i].height < 0 {
			continue
		}
		t.nodes[i].aabb.Lower.X -= newOrigin.X
		t.nodes[i].aabb.Lower.Y -= newOrigin.Y
		t.nodes[i].aabb.Upper.X -= newOrigin.X
		t.nodes[i].aabb.Upper.Y -= newOrigin.Y
	}
}
