// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// island is one connected component of awake, touching bodies solved
// together in a single pass. Partitioning the simulation into islands lets
// a step skip work for sleeping clusters entirely and lets sleep decisions
// be made per-cluster rather than globally. Grounded on the
// earlier engine's single-pass solver.go loop, which had no island concept
// because physics/body.go bodies were solved in one global pass every
// step; islands are this engine's generalization of the "solve in
// per-step islands, not globally".
type island struct {
	bodies    []*Body
	contacts  []*Contact
	allowSleep bool
}

// buildIslands partitions every awake dynamic body reachable from a
// touching, enabled, non-sensor contact into islands via depth-first
// search: DFS over the
// contact-edge graph, not union-find, because the graph is rebuilt fresh
// every step and DFS needs no separate path-compacted structure to
// maintain across steps. Static bodies terminate the walk (they never
// propagate a contact to the rest of a cluster) but are included in the
// island they're touched from so the solver can read their fixed mass
// data without a nil check.
func (w *World) buildIslands() []*island {
	for _, b := range w.bodies {
		b.visited = false
	}

	var islands []*island
	stack := make([]*Body, 0, len(w.bodies))

	for _, seed := range w.bodies {
		if seed.visited || seed.typ == StaticBody || !seed.awake {
			continue
		}

		isl := &island{allowSleep: true}
		stack = stack[:0]
		stack = append(stack, seed)
		seed.visited = true
		var staticsTouched []*Body

		for len(stack) > 0 {
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			isl.bodies = append(isl.bodies, b)

			if !b.allowSleep && b.typ != StaticBody {
				isl.allowSleep = false
			}

			if b.typ == StaticBody {
				continue
			}

			for e := b.contactList; e != nil; e = e.Next {
				c := e.Contact
				if c.flags&contactIsland != 0 {
					continue
				}
				if !c.IsTouching() || !c.IsEnabled() || c.IsSensor() {
					continue
				}
				c.flags |= contactIsland
				isl.contacts = append(isl.contacts, c)

				other := e.Other
				if other.visited {
					continue
				}
				other.visited = true
				if other.typ == StaticBody {
					staticsTouched = append(staticsTouched, other)
				}
				stack = append(stack, other)
			}
		}

		// Static bodies never propagate the walk, so they can't merge two
		// islands the way a dynamic body would, but they are shared ground
		// between unrelated clusters: clear their visited flag once this
		// island is done so a later island seeded from a different cluster
		// can pull the same static body in again.
		for _, b := range staticsTouched {
			b.visited = false
		}

		islands = append(islands, isl)
	}

	for _, isl := range islands {
		for _, c := range isl.contacts {
			c.flags &^= contactIsland
		}
	}

	return islands
}

// solve integrates forces into velocities, runs the contact solver's
// velocity and position iterations, writes the resulting pose back to
// every body, and applies the island's sleep-time bookkeeping — the
// per-island counterpart to the earlier 3D engine's single global solver.go pass.
func (isl *island) solve(w *World, dt Real) {
	bodies := make([]*solverBody, len(isl.bodies))
	bodyIndex := make(map[*Body]int, len(isl.bodies))

	for i, b := range isl.bodies {
		bodyIndex[b] = i
		sb := &solverBody{
			c: b.sweep.C, a: b.sweep.A,
			linearVelocity: b.linearVelocity, angularVelocity: b.angularVelocity,
			invMass: b.invMass, invI: b.invI,
		}
		if b.typ == DynamicBody {
			sb.linearVelocity.X += dt * b.invMass * (b.gravityScale*w.gravity.X*b.mass + b.force.X)
			sb.linearVelocity.Y += dt * b.invMass * (b.gravityScale*w.gravity.Y*b.mass + b.force.Y)
			sb.angularVelocity += dt * b.invI * b.torque

			sb.linearVelocity.X *= 1 / (1 + dt*b.linearDamping)
			sb.linearVelocity.Y *= 1 / (1 + dt*b.linearDamping)
			sb.angularVelocity *= 1 / (1 + dt*b.angularDamping)
		}
		bodies[i] = sb
	}

	solver := newContactSolver(isl.contacts, bodies, bodyIndex, dt, w.warmStarting)
	solver.InitializeVelocityConstraints()
	solver.WarmStart()

	for i := 0; i < w.velocityIterations; i++ {
		solver.SolveVelocityConstraints()
	}
	solver.StoreImpulses()

	if w.contactManager.listener != nil {
		for _, c := range isl.contacts {
			if c.IsSensor() {
				continue
			}
			impulses := make([]Real, c.manifold.PointCount)
			for i := 0; i < c.manifold.PointCount; i++ {
				impulses[i] = c.manifold.Points[i].NormalImpulse
			}
			w.contactManager.listener.PostSolve(c, impulses)
		}
	}

	for i, b := range isl.bodies {
		sb := bodies[i]
		clampBodyMotion(sb, dt)

		b.sweep.C.X = sb.c.X + dt*sb.linearVelocity.X
		b.sweep.C.Y = sb.c.Y + dt*sb.linearVelocity.Y
		b.sweep.A = sb.a + dt*sb.angularVelocity
		sb.c = b.sweep.C
		sb.a = b.sweep.A
	}

	for i := 0; i < w.positionIterations; i++ {
		if solver.SolvePositionConstraints(Baumgarte) {
			break
		}
	}

	for i, b := range isl.bodies {
		sb := bodies[i]
		b.sweep.C = sb.c
		b.sweep.A = sb.a
		b.linearVelocity = sb.linearVelocity
		b.angularVelocity = sb.angularVelocity
		b.sweep.C0 = b.sweep.C
		b.sweep.A0 = b.sweep.A
		b.synchronizeTransform()
		b.force = math2d.Vec2{}
		b.torque = 0
	}

	isl.updateSleep(w, dt)

	for _, b := range isl.bodies {
		b.synchronizeFixtures(w.broadPhase)
	}
}

// clampBodyMotion caps per-step translation/rotation to MaxTranslation and
// MaxRotation so a solver instability (e.g. from a degenerate constraint)
// can't teleport a body through thin geometry in one step, the same
// per-step velocity clamp Box2D applies before integrating position.
func clampBodyMotion(sb *solverBody, dt Real) {
	translation := math2d.Vec2{X: dt * sb.linearVelocity.X, Y: dt * sb.linearVelocity.Y}
	if translation.Dot(translation) > MaxTranslation*MaxTranslation {
		ratio := MaxTranslation / translation.Len()
		sb.linearVelocity.X *= ratio
		sb.linearVelocity.Y *= ratio
	}

	rotation := dt * sb.angularVelocity
	if rotation*rotation > MaxRotation*MaxRotation {
		ratio := MaxRotation / absReal(rotation)
		sb.angularVelocity *= ratio
	}
}

func absReal(v Real) Real {
	if v < 0 {
		return -v
	}
	return v
}

// updateSleep advances each dynamic body's sleep timer and puts the whole
// island to sleep together once every body in it has been under the
// velocity thresholds for TimeToSleep seconds, matching the
// "islands sleep together, never a single body within one".
func (isl *island) updateSleep(w *World, dt Real) {
	minSleepTime := math2d.MaxFloat

	if !isl.allowSleep {
		minSleepTime = 0
	} else {
		for _, b := range isl.bodies {
			if b.typ != DynamicBody {
				continue
			}
			linSq := b.linearVelocity.Dot(b.linearVelocity)
			angSq := b.angularVelocity * b.angularVelocity
			if !b.allowSleep || linSq > LinearSleepTolerance*LinearSleepTolerance || angSq > AngularSleepTolerance*AngularSleepTolerance {
				b.sleepTime = 0
			} else {
				b.sleepTime += dt
			}
			if b.sleepTime < minSleepTime {
				minSleepTime = b.sleepTime
			}
		}
	}

	if minSleepTime >= TimeToSleep {
		for _, b := range isl.bodies {
			b.SetAwake(false)
		}
	}
}
