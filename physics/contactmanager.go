// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "sort"

// ContactManager owns every live Contact, wiring the broad phase's pair
// discovery into contact creation/destruction and driving narrow-phase
// updates each step. Combines the earlier 3D engine's broad.go pairing step and
// solver.go driver loop (DESIGN.md) into the single coordinator spec
// §4.5 describes.
type ContactManager struct {
	world    *World
	contacts map[contactKey]*Contact
	filter   ContactFilter
	listener ContactListener
}

type contactKey struct {
	fixtureA, fixtureB *Fixture
	indexA, indexB     int
}

func newContactManager(w *World) *ContactManager {
	return &ContactManager{world: w, contacts: make(map[contactKey]*Contact)}
}

// findNewContacts asks the broad phase for every pair whose fat AABBs
// overlap and have moved since the last call, creating a Contact for any
// pair not already tracked.
func (cm *ContactManager) findNewContacts() {
	cm.world.broadPhase.UpdatePairs(func(dataA, dataB any) {
		pa := dataA.(*fixtureProxy)
		pb := dataB.(*fixtureProxy)
		cm.addPair(pa, pb)
	})
}

func (cm *ContactManager) addPair(pa, pb *fixtureProxy) {
	fA, fB := pa.fixture, pb.fixture
	if fA.body == fB.body {
		return
	}
	if !ShouldCollide(fA.Filter, fB.Filter) {
		return
	}
	if cm.filter != nil && !cm.filter.ShouldCollide(fA, fB) {
		return
	}

	key := contactKey{fA, fB, pa.childIndex, pb.childIndex}
	altKey := contactKey{fB, fA, pb.childIndex, pa.childIndex}
	if _, ok := cm.contacts[key]; ok {
		return
	}
	if _, ok := cm.contacts[altKey]; ok {
		return
	}

	// normalize ordering by fixture shape type so the stored key never
	// depends on broad-phase discovery order; newContact then stores the
	// fixtures in the order the dispatch table's entry expects.
	if fA.Shape.Type() > fB.Shape.Type() {
		fA, fB = fB, fA
		pa, pb = pb, pa
	}

	c := newContact(fA, pa.childIndex, fB, pb.childIndex)
	cm.contacts[contactKey{fA, fB, pa.childIndex, pb.childIndex}] = c

	c.fixtureA.body.pushContactEdge(&c.nodeA)
	c.fixtureB.body.pushContactEdge(&c.nodeB)

	cm.world.log.Debug("contact created", "bodyA", fA.body.id, "bodyB", fB.body.id, "total", len(cm.contacts))
}

// destroy removes a contact from the manager and unlinks it from both
// bodies' edge lists.
func (cm *ContactManager) destroy(c *Contact) {
	if c.IsTouching() && cm.listener != nil && !c.IsSensor() {
		cm.listener.EndContact(c)
	}

	c.fixtureA.body.removeContactEdge(&c.nodeA)
	c.fixtureB.body.removeContactEdge(&c.nodeB)

	for k, v := range cm.contacts {
		if v == c {
			delete(cm.contacts, k)
			break
		}
	}

	cm.world.log.Debug("contact destroyed", "bodyA", c.fixtureA.body.id, "bodyB", c.fixtureB.body.id, "total", len(cm.contacts))
}

func (cm *ContactManager) destroyContactsFor(f *Fixture) {
	var toRemove []*Contact
	for _, c := range cm.contacts {
		if c.fixtureA == f || c.fixtureB == f {
			toRemove = append(toRemove, c)
		}
	}
	for _, c := range toRemove {
		cm.destroy(c)
	}
}

// collide runs the narrow phase on every tracked contact: drops contacts
// whose broad-phase AABBs no longer overlap or that filtering now
// excludes, otherwise updates the manifold and fires listener
// begin/end/presolve callbacks. Contacts are visited in orderedContacts'
// fixture-id order rather than map order so listener callback order is
// reproducible.
func (cm *ContactManager) collide() {
	var toDestroy []*Contact

	for _, c := range cm.orderedContacts() {
		fA, fB := c.fixtureA, c.fixtureB

		if cm.filter != nil && !c.IsSensor() && !cm.filter.ShouldCollide(fA, fB) {
			toDestroy = append(toDestroy, c)
			continue
		}

		overlap := false
		for _, pxA := range fA.proxies {
			if pxA.childIndex != c.indexA {
				continue
			}
			for _, pxB := range fB.proxies {
				if pxB.childIndex != c.indexB {
					continue
				}
				overlap = cm.world.broadPhase.TestOverlap(pxA.proxyID, pxB.proxyID)
			}
		}
		if !overlap {
			toDestroy = append(toDestroy, c)
			continue
		}

		bA, bB := fA.body, fB.body
		if bA.typ != DynamicBody && bB.typ != DynamicBody {
			continue
		}
		if !bA.awake && !bB.awake {
			continue
		}

		c.Update(func(cc *Contact) {
			if cm.listener != nil {
				cm.listener.BeginContact(cc)
			}
		}, func(cc *Contact) {
			if cm.listener != nil {
				cm.listener.EndContact(cc)
			}
		})

		if c.IsTouching() && !c.IsSensor() && cm.listener != nil {
			cm.listener.PreSolve(c, &c.oldManifold)
		}
	}

	for _, c := range toDestroy {
		cm.destroy(c)
	}
}

// orderedContacts returns every tracked contact in a fixed order (by
// fixture id pairs) so iteration never depends on Go's randomized map
// order, keeping iteration deterministic.
func (cm *ContactManager) orderedContacts() []*Contact {
	out := make([]*Contact, 0, len(cm.contacts))
	for _, c := range cm.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.fixtureA.id != b.fixtureA.id {
			return a.fixtureA.id < b.fixtureA.id
		}
		if a.fixtureB.id != b.fixtureB.id {
			return a.fixtureB.id < b.fixtureB.id
		}
		if a.indexA != b.indexA {
			return a.indexA < b.indexA
		}
		return a.indexB < b.indexB
	})
	return out
}
