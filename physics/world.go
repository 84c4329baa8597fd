// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"log/slog"

	"github.com/galvanized/rigid2d/math2d"
)

// World owns every body, fixture, and contact in a simulation and drives
// the fixed-step pipeline: broad-phase update, narrow
// phase, island solve, continuous (TOI) sub-stepping, then sleep
// bookkeeping. Generalizes the earlier 3D engine's physics.go top-level Simulate
// orchestration (apply gravity, call the solver, clear forces) into the
// full lock/collide/solve/TOI/clear pipeline, the same way Box2D's b2World
// expands on a single-pass 3D physics loop.
type World struct {
	bodies []*Body

	nextBodyID    int
	nextFixtureID int

	broadPhase     *BroadPhase
	contactManager *ContactManager

	gravity math2d.Vec2

	velocityIterations int
	positionIterations int

	warmStarting      bool
	continuousPhysics bool
	allowSleep        bool

	locked bool

	destructionListener DestructionListener
	debugDraw           DebugDraw

	log *slog.Logger

	Profile Profile
}

// NewWorld returns a ready-to-step World, applying any supplied Attr
// options over configDefaults (a Config/Attr surface grounded on
// the earlier 3D engine's config.go functional-options pattern).
func NewWorld(attrs ...Attr) *World {
	cfg := configDefaults
	for _, attr := range attrs {
		attr(&cfg)
	}

	w := &World{
		broadPhase:         NewBroadPhase(),
		gravity:            cfg.gravity,
		velocityIterations: cfg.velocityIterations,
		positionIterations: cfg.positionIterations,
		warmStarting:       cfg.warmStarting,
		continuousPhysics:  cfg.continuousPhysics,
		allowSleep:         cfg.allowSleep,
		log:                slog.Default().With("component", "physics"),
	}
	w.contactManager = newContactManager(w)
	w.contactManager.filter = cfg.filter
	w.contactManager.listener = cfg.listener
	return w
}

// IsLocked reports whether the world is mid-Step, during which bodies,
// fixtures, and most mutating calls are forbidden (mutating a
// locked world panics via an InvariantViolation rather than silently
// corrupting in-flight solver state).
func (w *World) IsLocked() bool { return w.locked }

// SetGravity changes the uniform acceleration applied to dynamic bodies.
func (w *World) SetGravity(g math2d.Vec2) { w.gravity = g }

// GetGravity returns the world's current gravity vector.
func (w *World) GetGravity() math2d.Vec2 { return w.gravity }

// SetDestructionListener installs the listener notified when a body's
// destruction implicitly destroys its fixtures.
func (w *World) SetDestructionListener(l DestructionListener) { w.destructionListener = l }

// SetContactFilter installs (or replaces) the world-level ContactFilter.
func (w *World) SetContactFilter(f ContactFilter) { w.contactManager.filter = f }

// SetContactListener installs (or replaces) the ContactListener.
func (w *World) SetContactListener(l ContactListener) { w.contactManager.listener = l }

// GetBodyList returns every body currently in the world, in creation
// order (host applications commonly need to enumerate bodies for
// rendering or save/load).
func (w *World) GetBodyList() []*Body { return w.bodies }

func (w *World) allocFixtureID() int {
	id := w.nextFixtureID
	w.nextFixtureID++
	return id
}

// touchedFixture buffers the new fixture's proxies for pairing on the next
// Step — a no-op placeholder hook today since createProxies already
// buffers moves through BroadPhase.CreateProxy, kept as a named extension
// point for a future asleep-body wake-on-attach policy.
func (w *World) touchedFixture(f *Fixture) {}

func (w *World) destroyContactsFor(f *Fixture) {
	w.contactManager.destroyContactsFor(f)
}

// CreateBody adds a new body to the world. Panics via InvariantViolation
// if called while the world is locked.
func (w *World) CreateBody(def BodyDef) *Body {
	if w.locked {
		panicInvariant("CreateBody", "world is locked")
	}
	id := w.nextBodyID
	w.nextBodyID++
	b := newBody(id, def, w)
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes a body, its fixtures, and every contact referencing
// it. Panics via InvariantViolation if called while the world is locked.
func (w *World) DestroyBody(b *Body) {
	if w.locked {
		panicInvariant("DestroyBody", "world is locked")
	}

	for _, f := range b.fixtures {
		if w.destructionListener != nil {
			w.destructionListener.SayGoodbyeFixture(f)
		}
		w.contactManager.destroyContactsFor(f)
		f.destroyProxies(w.broadPhase)
	}
	b.fixtures = nil

	for i, bb := range w.bodies {
		if bb == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Step advances the simulation by dt seconds using velocityIterations/
// positionIterations solver passes, running the full pipeline a frame
// names: broad phase pair discovery, narrow-phase collide, island solve,
// continuous-physics TOI sub-stepping, then clearing per-step forces.
// Step panics via InvariantViolation if called re-entrantly (from inside a
// listener callback it triggered).
func (w *World) Step(dt Real) {
	if w.locked {
		panicInvariant("Step", "world is already stepping (re-entrant Step call)")
	}
	w.locked = true
	defer func() { w.locked = false }()

	stepTimer := startTimer()

	bpTimer := startTimer()
	w.contactManager.findNewContacts()
	w.Profile.Broadphase = bpTimer.elapsed()

	collideTimer := startTimer()
	w.contactManager.collide()
	w.Profile.Collide = collideTimer.elapsed()

	if dt > 0 {
		solveTimer := startTimer()
		w.solve(dt)
		w.Profile.Solve = solveTimer.elapsed()

		if w.continuousPhysics {
			toiTimer := startTimer()
			w.solveTOI(dt)
			w.Profile.SolveTOI = toiTimer.elapsed()
		}
	}

	w.Profile.Step = stepTimer.elapsed()
}

// solve partitions awake bodies into islands and runs each island's
// contact solver independently.
func (w *World) solve(dt Real) {
	islands := w.buildIslands()
	for _, isl := range islands {
		isl.solve(w, dt)
	}
}

// solveTOI finds the earliest time of impact among contacts involving a
// bullet body or a fast-moving body crossing thin geometry, advances every
// body in that contact's island to the impact time, and re-solves the
// position constraint there — generalizing the conservative-advancement
// conservative-advancement scheme to cover every live contact each step, not
// just ones already flagged touching, capped at MaxSubSteps per Step call
// to bound worst-case cost.
func (w *World) solveTOI(dt Real) {
	subStep := 0
	for ; subStep < MaxSubSteps; subStep++ {
		minContact, minAlpha := w.findMinTOI(dt)
		if minContact == nil || minAlpha >= 1 {
			return
		}

		minContact.toi = minAlpha
		minContact.hasTOI = true

		bA, bB := minContact.fixtureA.body, minContact.fixtureB.body
		backupA, backupB := bA.sweep, bB.sweep

		bA.sweep.Advance(minAlpha)
		bB.sweep.Advance(minAlpha)
		bA.sweep.GetTransform(&bA.xf, 1)
		bB.sweep.GetTransform(&bB.xf, 1)

		minContact.Update(nil, nil)
		if !minContact.IsTouching() {
			minContact.hasTOI = false
			bA.sweep, bB.sweep = backupA, backupB
			bA.synchronizeTransform()
			bB.synchronizeTransform()
			continue
		}

		w.solveTOIIsland(minContact, dt*(1-minAlpha))
		minContact.toiCount++

		w.contactManager.findNewContacts()
	}

	if subStep == MaxSubSteps {
		w.log.Warn("continuous physics sub-step budget exhausted", "maxSubSteps", MaxSubSteps)
	}
}

// findMinTOI scans every contact eligible for continuous treatment
// (bullets, or any pair where a fast-moving dynamic body could tunnel
// through its partner within this step) and returns the one with the
// earliest impact fraction.
func (w *World) findMinTOI(dt Real) (minContact *Contact, minAlpha Real) {
	minAlpha = Real(1)

	for _, c := range w.contactManager.orderedContacts() {
		if !c.IsEnabled() || c.IsSensor() {
			continue
		}
		if c.toiCount >= MaxSubSteps {
			continue
		}
		bA, bB := c.fixtureA.body, c.fixtureB.body
		if bA.typ != DynamicBody && bB.typ != DynamicBody {
			continue
		}
		if !bA.awake && !bB.awake {
			continue
		}
		// A non-bullet dynamic body still needs continuous treatment
		// against anything that isn't itself a plain non-bullet dynamic
		// body (a static wall, a kinematic platform, or another bullet);
		// only skip when neither side of the pair can tunnel.
		collideA := bA.bullet || bA.typ != DynamicBody
		collideB := bB.bullet || bB.typ != DynamicBody
		if !collideA && !collideB {
			continue
		}

		proxyA := c.fixtureA.Shape.Proxy(c.indexA)
		proxyB := c.fixtureB.Shape.Proxy(c.indexB)
		out := TimeOfImpact(ToIInput{ProxyA: proxyA, ProxyB: proxyB, SweepA: bA.sweep, SweepB: bB.sweep, TMax: 1})
		if out.State == toiHit && out.T < minAlpha {
			minAlpha = out.T
			minContact = c
		}
	}
	return
}

// solveTOIIsland grows a bounded island from minContact's two bodies by one
// hop over their touching, enabled, non-sensor contacts, pulling in
// whatever neighbors those bodies are already resting against, then
// corrects penetration with the TOI Baumgarte factor and
// TOIPositionIterations passes — letting only the two impacting bodies
// move, with every pulled-in neighbor acting as a fixed anchor — and
// finally runs a warm-start-disabled velocity pass so the impact produces
// an immediate, physically consistent response instead of waiting for the
// body's discrete island to solve it next step. Matches xphysics's
// Island::solve_toi two-phase (position-then-velocity) structure.
func (w *World) solveTOIIsland(c *Contact, remaining Real) {
	bA, bB := c.fixtureA.body, c.fixtureB.body

	bodies := []*Body{bA, bB}
	contacts := []*Contact{c}
	bodyIndex := map[*Body]int{bA: 0, bB: 1}
	toiIndexA, toiIndexB := 0, 1
	c.flags |= contactIsland

	grow := func(seed *Body) {
		if seed.typ != DynamicBody {
			return
		}
		for e := seed.contactList; e != nil; e = e.Next {
			if len(contacts) >= MaxTOIIslandContacts {
				return
			}
			oc := e.Contact
			if oc.flags&contactIsland != 0 {
				continue
			}
			if !oc.IsTouching() || !oc.IsEnabled() || oc.IsSensor() {
				continue
			}
			oc.flags |= contactIsland
			other := e.Other
			if _, ok := bodyIndex[other]; !ok {
				bodyIndex[other] = len(bodies)
				bodies = append(bodies, other)
			}
			contacts = append(contacts, oc)
		}
	}
	grow(bA)
	grow(bB)

	for _, oc := range contacts {
		oc.flags &^= contactIsland
	}

	solverBodies := make([]*solverBody, len(bodies))
	for i, b := range bodies {
		solverBodies[i] = &solverBody{
			c: b.sweep.C, a: b.sweep.A,
			linearVelocity: b.linearVelocity, angularVelocity: b.angularVelocity,
			invMass: b.invMass, invI: b.invI,
		}
	}

	solver := newContactSolver(contacts, solverBodies, bodyIndex, remaining, false)
	for i := 0; i < TOIPositionIterations; i++ {
		if solver.SolveTOIPositionConstraints(toiIndexA, toiIndexB, ToiBaumgarte) {
			break
		}
	}

	bodies[toiIndexA].sweep.C0 = solverBodies[toiIndexA].c
	bodies[toiIndexA].sweep.A0 = solverBodies[toiIndexA].a
	bodies[toiIndexB].sweep.C0 = solverBodies[toiIndexB].c
	bodies[toiIndexB].sweep.A0 = solverBodies[toiIndexB].a

	solver.InitializeVelocityConstraints()
	for i := 0; i < w.velocityIterations; i++ {
		solver.SolveVelocityConstraints()
	}
	solver.StoreImpulses()

	for i, b := range bodies {
		sb := solverBodies[i]
		clampBodyMotion(sb, remaining)

		b.sweep.C.X = sb.c.X + remaining*sb.linearVelocity.X
		b.sweep.C.Y = sb.c.Y + remaining*sb.linearVelocity.Y
		b.sweep.A = sb.a + remaining*sb.angularVelocity
		b.linearVelocity = sb.linearVelocity
		b.angularVelocity = sb.angularVelocity
		b.synchronizeTransform()
		b.synchronizeFixtures(w.broadPhase)
	}
}

// RayCast visits every fixture whose shape the segment p1-p2 intersects,
// in broad-phase discovery order, narrowing the searched segment as
// callback shrinks the returned fraction.
func (w *World) RayCast(p1, p2 math2d.Vec2, callback RayCastCallback) {
	input := RayCastInput{P1: p1, P2: p2, MaxFraction: 1}
	w.broadPhase.tree.RayCast(input, func(nodeID int, subInput RayCastInput) Real {
		proxy := w.broadPhase.GetUserData(nodeID).(*fixtureProxy)
		f := proxy.fixture
		output, hit := f.RayCast(&subInput, proxy.childIndex)
		if !hit {
			return subInput.MaxFraction
		}
		point := math2d.Vec2{
			X: (1-output.Fraction)*subInput.P1.X + output.Fraction*subInput.P2.X,
			Y: (1-output.Fraction)*subInput.P1.Y + output.Fraction*subInput.P2.Y,
		}
		return callback(f, point, output.Normal, output.Fraction)
	})
}

// QueryAABB visits every fixture whose fattened broad-phase AABB overlaps
// aabb, stopping early if callback returns false (cheap
// broad-phase-only region queries for gameplay systems like "what's near
// the player").
func (w *World) QueryAABB(aabb AABB, callback func(f *Fixture) bool) {
	w.broadPhase.tree.Query(aabb, func(nodeID int) bool {
		proxy := w.broadPhase.GetUserData(nodeID).(*fixtureProxy)
		return callback(proxy.fixture)
	})
}

// ShiftOrigin makes newOrigin the world's new origin so a long-running
// simulation far from the coordinate origin doesn't lose floating point
// precision: every body's transform and sweep centers and the broad
// phase's stored AABBs are translated by -newOrigin.
func (w *World) ShiftOrigin(newOrigin math2d.Vec2) {
	for _, b := range w.bodies {
		b.xf.P.X -= newOrigin.X
		b.xf.P.Y -= newOrigin.Y
		b.sweep.C0.X -= newOrigin.X
		b.sweep.C0.Y -= newOrigin.Y
		b.sweep.C.X -= newOrigin.X
		b.sweep.C.Y -= newOrigin.Y
	}
	w.broadPhase.tree.ShiftOrigin(newOrigin)
}
