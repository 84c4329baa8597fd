// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// contactFlags track a Contact's touching/enabled/island/filter-dirty
// state, mirroring the bitfield the earlier engine keeps on contactPair
// (physics/contact.go) for the same bookkeeping.
type contactFlags uint8

const (
	contactTouching contactFlags = 1 << iota
	contactEnabled
	contactIsland
	contactFilter
)

// Contact is one persistent fixture-pair collision record, held by pointer
// in the ContactManager's contact map and linked into both bodies'
// contact-edge lists so island.go can walk a body's neighbors in
// O(degree). Fixtures, bodies and edges are referenced by plain Go
// pointers; the doubly-linked list through ContactEdge matches the earlier
// 3D engine's own contactPair linkage in physics/contact.go.
type Contact struct {
	fixtureA, fixtureB *Fixture
	indexA, indexB     int
	evaluate           evaluateFn
	flip               bool

	manifold    Manifold
	oldManifold Manifold

	friction    Real
	restitution Real

	flags contactFlags

	nodeA, nodeB ContactEdge

	toi      Real
	toiCount int
	hasTOI   bool
}

// ContactEdge links a body to one of its contacts and the other body on
// the other end, forming the adjacency lists island.go's DFS walks.
type ContactEdge struct {
	Other   *Body
	Contact *Contact
	Prev    *ContactEdge
	Next    *ContactEdge
}

func newContact(fA *Fixture, indexA int, fB *Fixture, indexB int) *Contact {
	fn, flip := lookupEvaluate(fA.Shape.Type(), fB.Shape.Type())
	// Store the fixtures in the order the registry entry expects, so the
	// solver's body A is the one the manifold's local frame belongs to.
	if flip {
		fA, fB = fB, fA
		indexA, indexB = indexB, indexA
		flip = false
	}
	c := &Contact{
		fixtureA: fA, indexA: indexA,
		fixtureB: fB, indexB: indexB,
		evaluate: fn,
		flip:     flip,
		flags:    contactEnabled,
	}
	c.friction = mixFriction(fA.Friction, fB.Friction)
	c.restitution = mixRestitution(fA.Restitution, fB.Restitution)

	c.nodeA = ContactEdge{Other: fB.body, Contact: c}
	c.nodeB = ContactEdge{Other: fA.body, Contact: c}
	return c
}

func mixFriction(a, b Real) Real {
	return sqrtReal(a * b)
}

func mixRestitution(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}

func sqrtReal(v Real) Real {
	if v <= 0 {
		return 0
	}
	lo, hi := Real(0), v
	if v < 1 {
		hi = 1
	}
	for i := 0; i < 40; i++ {
		mid := 0.5 * (lo + hi)
		if mid*mid > v {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0.5 * (lo + hi)
}

// IsTouching reports whether the most recent Update call produced a
// non-empty manifold.
func (c *Contact) IsTouching() bool { return c.flags&contactTouching != 0 }

// IsEnabled reports whether a contact listener has disabled this contact
// for the current step.
func (c *Contact) IsEnabled() bool { return c.flags&contactEnabled != 0 }

// SetEnabled allows a BeginContact/PreSolve listener to veto a contact for
// the remainder of the step.
func (c *Contact) SetEnabled(flag bool) {
	if flag {
		c.flags |= contactEnabled
	} else {
		c.flags &^= contactEnabled
	}
}

// IsSensor reports whether either participating fixture is a sensor,
// which suppresses solving but not overlap/touch notification.
func (c *Contact) IsSensor() bool {
	return c.fixtureA.IsSensor || c.fixtureB.IsSensor
}

func (c *Contact) FixtureA() *Fixture { return c.fixtureA }
func (c *Contact) FixtureB() *Fixture { return c.fixtureB }
func (c *Contact) GetManifold() *Manifold { return &c.manifold }

// Update runs the narrow phase, replacing c.manifold while preserving
// c.oldManifold for point-state comparison, and fires the supplied
// begin/end callbacks on a touching-state transition. It re-enables the
// contact first, so a listener's SetEnabled(false) lasts one step, and
// carries each new point's warm-start impulses over from the old point
// with the same ContactID.
func (c *Contact) Update(onBegin, onEnd func(*Contact)) {
	c.oldManifold = c.manifold
	c.flags |= contactEnabled

	wasTouching := c.IsTouching()

	xfA := c.fixtureA.body.GetTransform()
	xfB := c.fixtureB.body.GetTransform()

	if c.IsSensor() {
		var shapeA, shapeB Shape
		var ia, ib int
		if c.flip {
			shapeA, ia = c.fixtureB.Shape, c.indexB
			shapeB, ib = c.fixtureA.Shape, c.indexA
		} else {
			shapeA, ia = c.fixtureA.Shape, c.indexA
			shapeB, ib = c.fixtureB.Shape, c.indexB
		}
		touching := testShapeOverlap(shapeA, xfA, ia, shapeB, xfB, ib)
		c.manifold = Manifold{}
		if touching {
			c.flags |= contactTouching
		} else {
			c.flags &^= contactTouching
		}
	} else {
		if c.flip {
			c.manifold = c.evaluate(c.fixtureB, c.indexB, xfB, c.fixtureA, c.indexA, xfA)
		} else {
			c.manifold = c.evaluate(c.fixtureA, c.indexA, xfA, c.fixtureB, c.indexB, xfB)
		}
		for i := 0; i < c.manifold.PointCount; i++ {
			mp := &c.manifold.Points[i]
			mp.NormalImpulse, mp.TangentImpulse = 0, 0
			for j := 0; j < c.oldManifold.PointCount; j++ {
				if c.oldManifold.Points[j].ID == mp.ID {
					mp.NormalImpulse = c.oldManifold.Points[j].NormalImpulse
					mp.TangentImpulse = c.oldManifold.Points[j].TangentImpulse
					break
				}
			}
		}
		if c.manifold.PointCount > 0 {
			c.flags |= contactTouching
		} else {
			c.flags &^= contactTouching
		}
	}

	if c.IsTouching() && !wasTouching && onBegin != nil {
		onBegin(c)
	}
	if !c.IsTouching() && wasTouching && onEnd != nil {
		onEnd(c)
	}
}

// testShapeOverlap runs GJK with UseRadii to answer a plain boolean
// overlap query, the form sensor fixtures need: sensors detect
// overlap but never produce a manifold for the solver.
func testShapeOverlap(shapeA Shape, xfA math2d.Transform, indexA int, shapeB Shape, xfB math2d.Transform, indexB int) bool {
	proxyA := shapeA.Proxy(indexA)
	proxyB := shapeB.Proxy(indexB)
	cache := &SimplexCache{}
	out := Distance(cache, DistanceInput{ProxyA: proxyA, TransformA: xfA, ProxyB: proxyB, TransformB: xfB, UseRadii: true})
	return out.Distance < 10*LinearSlop
}
