// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// ContactListener receives collision events as a World steps, mirroring
// the earlier 3D engine's own observer pattern for simulation events but specialized
// to the four contact lifecycle points below. Embed
// BaseContactListener to implement only the callbacks a caller cares
// about.
type ContactListener interface {
	// BeginContact fires the step a contact's manifold first gains points.
	BeginContact(contact *Contact)

	// EndContact fires the step a contact's manifold loses its last point,
	// or when the contact is destroyed while still touching.
	EndContact(contact *Contact)

	// PreSolve fires every step a contact remains touching, before the
	// velocity solver runs, with the previous step's manifold so a caller
	// can compare point persistence via GetPointStates. Calling
	// Contact.SetEnabled(false) here excludes the contact from this step's
	// solve without destroying it.
	PreSolve(contact *Contact, oldManifold *Manifold)

	// PostSolve fires after the velocity solver runs, reporting the normal
	// impulses actually applied (useful for damage/sound-effect thresholds).
	PostSolve(contact *Contact, impulses []Real)
}

// BaseContactListener supplies no-op implementations of every
// ContactListener method so a caller can embed it and override only the
// callbacks it needs, the same partial-interface convenience the earlier engine
// offers for its own multi-method callback interfaces.
type BaseContactListener struct{}

func (BaseContactListener) BeginContact(*Contact)                {}
func (BaseContactListener) EndContact(*Contact)                  {}
func (BaseContactListener) PreSolve(*Contact, *Manifold)         {}
func (BaseContactListener) PostSolve(*Contact, []Real)           {}

// ContactFilter decides whether two fixtures should ever generate a
// contact, layered in front of the category/mask Filter check (
// "a world-level hook can veto what the bitmask already allows, never the
// reverse").
type ContactFilter interface {
	ShouldCollide(fixtureA, fixtureB *Fixture) bool
}

// DestructionListener is notified when a fixture is implicitly
// destroyed as a side effect of destroying a body, so a caller holding
// external references (render proxies, gameplay handles) can clean them up
// (grounded in xphysics's b2DestructionListener).
type DestructionListener interface {
	SayGoodbyeFixture(fixture *Fixture)
}
