// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// velocityConstraintPoint is the per-point working data a contact
// velocity constraint needs across solver iterations: the anchor arms,
// effective masses, and warm-started impulses. Adapted from the earlier 3D engine's
// solver.go constraint row layout (Bullet-derived PGS) to Box2D's 2-point
// block-solvable formulation.
type velocityConstraintPoint struct {
	rA, rB              math2d.Vec2
	normalImpulse       Real
	tangentImpulse      Real
	normalMass          Real
	tangentMass          Real
	velocityBias        Real
}

type contactVelocityConstraint struct {
	contact      *Contact
	points       [MaxManifoldPoints]velocityConstraintPoint
	pointCount   int
	normal       math2d.Vec2
	normalMass   math2d.Mat22
	K            math2d.Mat22
	friction     Real
	restitution  Real

	indexA, indexB             int
	invMassA, invMassB         Real
	invIA, invIB               Real
}

type positionConstraint struct {
	localPoints  [MaxManifoldPoints]math2d.Vec2
	localNormal  math2d.Vec2
	localPoint   math2d.Vec2
	indexA, indexB int
	invMassA, invMassB Real
	localCenterA, localCenterB math2d.Vec2
	invIA, invIB Real
	radiusA, radiusB Real
	pointCount int
	manifoldType ManifoldType
}

// solverBody mirrors the position/velocity state the solver mutates
// in place during a step without touching Body fields until the step
// finishes writing back, matching Box2D's b2SolverData indirection.
type solverBody struct {
	c               math2d.Vec2
	a               Real
	linearVelocity  math2d.Vec2
	angularVelocity Real
	invMass         Real
	invI            Real
}

// ContactSolver builds velocity/position constraints for one island's
// contacts and runs the sequential-impulse iterations:
// warm start, N velocity iterations with an optional 2x2 block
// solve, integrate, then M position-correction iterations using Baumgarte
// stabilization. Grounded on the earlier 3D engine's solver.go PGS loop
// (setupConstraints/solveIterations/finish), restructured around Box2D's
// block solver since the earlier 3D engine's Bullet-derived approach solved each
// point independently.
type ContactSolver struct {
	velocityConstraints []contactVelocityConstraint
	positionConstraints []positionConstraint
	bodies              []*solverBody
	contacts            []*Contact
	dt                  Real
	warmStarting        bool
}

func newContactSolver(contacts []*Contact, bodies []*solverBody, bodyIndex map[*Body]int, dt Real, warmStarting bool) *ContactSolver {
	cs := &ContactSolver{contacts: contacts, bodies: bodies, dt: dt, warmStarting: warmStarting}
	cs.velocityConstraints = make([]contactVelocityConstraint, len(contacts))
	cs.positionConstraints = make([]positionConstraint, len(contacts))

	for i, c := range contacts {
		bA, bB := c.fixtureA.body, c.fixtureB.body
		iA, iB := bodyIndex[bA], bodyIndex[bB]

		vc := &cs.velocityConstraints[i]
		vc.contact = c
		vc.indexA, vc.indexB = iA, iB
		vc.invMassA, vc.invMassB = bA.invMass, bB.invMass
		vc.invIA, vc.invIB = bA.invI, bB.invI
		vc.friction = c.friction
		vc.restitution = c.restitution
		vc.pointCount = c.manifold.PointCount

		pc := &cs.positionConstraints[i]
		pc.indexA, pc.indexB = iA, iB
		pc.invMassA, pc.invMassB = bA.invMass, bB.invMass
		pc.invIA, pc.invIB = bA.invI, bB.invI
		pc.localCenterA, pc.localCenterB = bA.sweep.LocalCenter, bB.sweep.LocalCenter
		pc.pointCount = c.manifold.PointCount
		pc.localNormal = c.manifold.LocalNormal
		pc.localPoint = c.manifold.LocalPoint
		pc.manifoldType = c.manifold.Type
		pc.radiusA = shapeRadius(c.fixtureA.Shape)
		pc.radiusB = shapeRadius(c.fixtureB.Shape)
		for j := 0; j < c.manifold.PointCount; j++ {
			pc.localPoints[j] = c.manifold.Points[j].Point
			if warmStarting {
				vc.points[j].normalImpulse = c.manifold.Points[j].NormalImpulse
				vc.points[j].tangentImpulse = c.manifold.Points[j].TangentImpulse
			}
		}
	}
	return cs
}

func shapeRadius(s Shape) Real {
	switch t := s.(type) {
	case *CircleShape:
		return t.Radius
	case *PolygonShape:
		return t.Radius
	case *EdgeShape:
		return t.Radius
	case *ChainShape:
		return t.Radius
	}
	return 0
}

// InitializeVelocityConstraints computes world manifolds and per-point
// anchors/masses, then applies warm-start impulses from the previous
// step, the first of the three solver phases.
func (cs *ContactSolver) InitializeVelocityConstraints() {
	for i := range cs.velocityConstraints {
		vc := &cs.velocityConstraints[i]
		pc := &cs.positionConstraints[i]
		c := cs.contacts[i]

		bA := cs.bodies[vc.indexA]
		bB := cs.bodies[vc.indexB]

		xfA := math2d.Transform{}
		xfB := math2d.Transform{}
		xfA.Q.Set(bA.a)
		xfB.Q.Set(bB.a)
		xfA.P = *math2d.NewVec2().Sub(bA.c, math2d.MulRV(xfA.Q, pc.localCenterA))
		xfB.P = *math2d.NewVec2().Sub(bB.c, math2d.MulRV(xfB.Q, pc.localCenterB))

		m := c.manifold
		wm := ComputeWorldManifold(&m, xfA, pc.radiusA, xfB, pc.radiusB)
		vc.normal = wm.Normal

		for j := 0; j < vc.pointCount; j++ {
			p := &vc.points[j]
			p.rA = *math2d.NewVec2().Sub(wm.Points[j], bA.c)
			p.rB = *math2d.NewVec2().Sub(wm.Points[j], bB.c)

			rnA := p.rA.Cross(vc.normal)
			rnB := p.rB.Cross(vc.normal)
			kNormal := vc.invMassA + vc.invMassB + vc.invIA*rnA*rnA + vc.invIB*rnB*rnB
			if kNormal > 0 {
				p.normalMass = 1 / kNormal
			}

			tangent := vc.normal.RightPerp()
			rtA := p.rA.Cross(tangent)
			rtB := p.rB.Cross(tangent)
			kTangent := vc.invMassA + vc.invMassB + vc.invIA*rtA*rtA + vc.invIB*rtB*rtB
			if kTangent > 0 {
				p.tangentMass = 1 / kTangent
			}

			dv := relativeVelocity(bA, bB, p.rA, p.rB)
			vn := dv.Dot(vc.normal)
			p.velocityBias = 0
			if vn < -VelocityThreshold {
				p.velocityBias = -vc.restitution * vn
			}
		}

		if vc.pointCount == 2 {
			cs.computeBlockSolverK(vc)
		}

		for j := 0; j < vc.pointCount; j++ {
			p := &vc.points[j]
			impulse := math2d.Vec2{X: vc.normal.X*p.normalImpulse + tangentOf(vc.normal).X*p.tangentImpulse,
				Y: vc.normal.Y*p.normalImpulse + tangentOf(vc.normal).Y*p.tangentImpulse}
			applyImpulse(bA, -vc.invMassA, -vc.invIA, p.rA, impulse)
			applyImpulse(bB, vc.invMassB, vc.invIB, p.rB, impulse)
		}
	}
}

func tangentOf(normal math2d.Vec2) math2d.Vec2 { return normal.RightPerp() }

func relativeVelocity(bA, bB *solverBody, rA, rB math2d.Vec2) math2d.Vec2 {
	vA := math2d.Vec2{X: bA.linearVelocity.X + math2d.CrossSV(bA.angularVelocity, rA).X,
		Y: bA.linearVelocity.Y + math2d.CrossSV(bA.angularVelocity, rA).Y}
	vB := math2d.Vec2{X: bB.linearVelocity.X + math2d.CrossSV(bB.angularVelocity, rB).X,
		Y: bB.linearVelocity.Y + math2d.CrossSV(bB.angularVelocity, rB).Y}
	return *math2d.NewVec2().Sub(vB, vA)
}

func applyImpulse(b *solverBody, signMass, signI Real, r, impulse math2d.Vec2) {
	b.linearVelocity.X += signMass * impulse.X
	b.linearVelocity.Y += signMass * impulse.Y
	b.angularVelocity += signI * r.Cross(impulse)
}

func (cs *ContactSolver) computeBlockSolverK(vc *contactVelocityConstraint) {
	p1, p2 := &vc.points[0], &vc.points[1]
	rn1A, rn1B := p1.rA.Cross(vc.normal), p1.rB.Cross(vc.normal)
	rn2A, rn2B := p2.rA.Cross(vc.normal), p2.rB.Cross(vc.normal)

	k11 := vc.invMassA + vc.invMassB + vc.invIA*rn1A*rn1A + vc.invIB*rn1B*rn1B
	k22 := vc.invMassA + vc.invMassB + vc.invIA*rn2A*rn2A + vc.invIB*rn2B*rn2B
	k12 := vc.invMassA + vc.invMassB + vc.invIA*rn1A*rn2A + vc.invIB*rn1B*rn2B

	const maxConditionNumber = 1000.0
	if k11*k11 < maxConditionNumber*(k11*k22-k12*k12) {
		vc.K = math2d.Mat22{Ex: math2d.Vec2{X: k11, Y: k12}, Ey: math2d.Vec2{X: k12, Y: k22}}
		vc.normalMass = vc.K.Invert()
	} else {
		vc.pointCount = 1
	}
}

// WarmStart re-applies last step's accumulated impulses before the
// velocity iterations begin. The actual re-application happens inline in
// InitializeVelocityConstraints above, gated on the warmStarting flag
// passed to newContactSolver — when it's false the constructor never
// copies the manifold's stored impulses in, so the impulse applied there
// is zero and this is a no-op. Kept as a named phase to mirror the
// earlier 3D engine's three-phase naming in solver.go.
func (cs *ContactSolver) WarmStart() {}

// SolveVelocityConstraints runs one sequential-impulse pass over every
// contact's tangent then normal constraints, using the 2-point block
// solve when available.
func (cs *ContactSolver) SolveVelocityConstraints() {
	for i := range cs.velocityConstraints {
		vc := &cs.velocityConstraints[i]
		bA := cs.bodies[vc.indexA]
		bB := cs.bodies[vc.indexB]
		tangent := vc.normal.RightPerp()

		for j := 0; j < vc.pointCount; j++ {
			p := &vc.points[j]
			dv := relativeVelocity(bA, bB, p.rA, p.rB)
			vt := dv.Dot(tangent)
			lambda := p.tangentMass * -vt

			maxFriction := vc.friction * p.normalImpulse
			newImpulse := clampReal(p.tangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - p.tangentImpulse
			p.tangentImpulse = newImpulse

			impulse := math2d.Vec2{X: tangent.X * lambda, Y: tangent.Y * lambda}
			applyImpulse(bA, -vc.invMassA, -vc.invIA, p.rA, impulse)
			applyImpulse(bB, vc.invMassB, vc.invIB, p.rB, impulse)
		}

		if vc.pointCount == 1 || vc.K == (math2d.Mat22{}) {
			for j := 0; j < vc.pointCount; j++ {
				p := &vc.points[j]
				dv := relativeVelocity(bA, bB, p.rA, p.rB)
				vn := dv.Dot(vc.normal)
				lambda := -p.normalMass * (vn - p.velocityBias)
				newImpulse := maxReal(p.normalImpulse+lambda, 0)
				lambda = newImpulse - p.normalImpulse
				p.normalImpulse = newImpulse

				impulse := math2d.Vec2{X: vc.normal.X * lambda, Y: vc.normal.Y * lambda}
				applyImpulse(bA, -vc.invMassA, -vc.invIA, p.rA, impulse)
				applyImpulse(bB, vc.invMassB, vc.invIB, p.rB, impulse)
			}
		} else {
			cs.solveBlock(vc, bA, bB)
		}
	}
}

// solveBlock runs the 2x2 block LCP-lite solve Box2D uses to avoid
// oscillation between two simultaneously active contact points, falling
// back to clamped single-point solves when the block solution isn't in
// the feasible (both impulses non-negative) region.
func (cs *ContactSolver) solveBlock(vc *contactVelocityConstraint, bA, bB *solverBody) {
	p1, p2 := &vc.points[0], &vc.points[1]

	a := math2d.Vec2{X: p1.normalImpulse, Y: p2.normalImpulse}

	dv1 := relativeVelocity(bA, bB, p1.rA, p1.rB)
	dv2 := relativeVelocity(bA, bB, p2.rA, p2.rB)

	b := math2d.Vec2{
		X: dv1.Dot(vc.normal) - p1.velocityBias,
		Y: dv2.Dot(vc.normal) - p2.velocityBias,
	}
	b.X -= vc.K.Ex.X*a.X + vc.K.Ey.X*a.Y
	b.Y -= vc.K.Ex.Y*a.X + vc.K.Ey.Y*a.Y

	x := math2d.MulMV(vc.normalMass, *math2d.NewVec2().Neg(b))

	if x.X >= 0 && x.Y >= 0 {
		cs.applyBlockDelta(vc, bA, bB, x.X-a.X, x.Y-a.Y)
		p1.normalImpulse, p2.normalImpulse = x.X, x.Y
		return
	}

	// Try point 1 active, point 2 inactive.
	x1 := -p1.normalMass * b.X
	if x1 >= 0 {
		vn2 := vc.K.Ey.Y*x1 + b.Y
		if vn2 >= 0 {
			cs.applyBlockDelta(vc, bA, bB, x1-a.X, -a.Y)
			p1.normalImpulse, p2.normalImpulse = x1, 0
			return
		}
	}

	// Try point 2 active, point 1 inactive.
	x2 := -p2.normalMass * b.Y
	if x2 >= 0 {
		vn1 := vc.K.Ex.X*x2 + b.X
		if vn1 >= 0 {
			cs.applyBlockDelta(vc, bA, bB, -a.X, x2-a.Y)
			p1.normalImpulse, p2.normalImpulse = 0, x2
			return
		}
	}

	// Both clamped to zero.
	cs.applyBlockDelta(vc, bA, bB, -a.X, -a.Y)
	p1.normalImpulse, p2.normalImpulse = 0, 0
}

func (cs *ContactSolver) applyBlockDelta(vc *contactVelocityConstraint, bA, bB *solverBody, d1, d2 Real) {
	p1, p2 := &vc.points[0], &vc.points[1]
	impulse1 := math2d.Vec2{X: vc.normal.X * d1, Y: vc.normal.Y * d1}
	impulse2 := math2d.Vec2{X: vc.normal.X * d2, Y: vc.normal.Y * d2}
	total := math2d.Vec2{X: impulse1.X + impulse2.X, Y: impulse1.Y + impulse2.Y}

	bA.linearVelocity.X -= vc.invMassA * total.X
	bA.linearVelocity.Y -= vc.invMassA * total.Y
	bA.angularVelocity -= vc.invIA * (p1.rA.Cross(impulse1) + p2.rA.Cross(impulse2))

	bB.linearVelocity.X += vc.invMassB * total.X
	bB.linearVelocity.Y += vc.invMassB * total.Y
	bB.angularVelocity += vc.invIB * (p1.rB.Cross(impulse1) + p2.rB.Cross(impulse2))
}

// StoreImpulses writes the final accumulated impulses back into each
// contact's manifold so the next step's warm start can pick them up.
func (cs *ContactSolver) StoreImpulses() {
	for i := range cs.velocityConstraints {
		vc := &cs.velocityConstraints[i]
		m := &cs.contacts[i].manifold
		for j := 0; j < vc.pointCount; j++ {
			m.Points[j].NormalImpulse = vc.points[j].normalImpulse
			m.Points[j].TangentImpulse = vc.points[j].tangentImpulse
		}
	}
}

// SolvePositionConstraints runs Baumgarte-stabilized position correction
// using the same clipped-manifold geometry as the narrow phase (not the
// cached world manifold, which is now stale after velocity integration),
// returning whether every contact's separation is at least -3*LinearSlop.
func (cs *ContactSolver) SolvePositionConstraints(baumgarte Real) bool {
	minSeparation := Real(0)

	for i := range cs.positionConstraints {
		pc := &cs.positionConstraints[i]
		bA := cs.bodies[pc.indexA]
		bB := cs.bodies[pc.indexB]

		for j := 0; j < pc.pointCount; j++ {
			xfA, xfB := solverTransform(bA, pc.localCenterA), solverTransform(bB, pc.localCenterB)
			point, normal, separation := positionSeparation(pc, j, xfA, xfB)

			rA := *math2d.NewVec2().Sub(point, bA.c)
			rB := *math2d.NewVec2().Sub(point, bB.c)

			if separation < minSeparation {
				minSeparation = separation
			}

			C := clampReal(baumgarte*(separation+LinearSlop), -MaxLinearCorrection, 0)

			rnA := rA.Cross(normal)
			rnB := rB.Cross(normal)
			k := pc.invMassA + pc.invMassB + pc.invIA*rnA*rnA + pc.invIB*rnB*rnB

			impulse := Real(0)
			if k > 0 {
				impulse = -C / k
			}

			p := math2d.Vec2{X: normal.X * impulse, Y: normal.Y * impulse}

			bA.c.X -= pc.invMassA * p.X
			bA.c.Y -= pc.invMassA * p.Y
			bA.a -= pc.invIA * rA.Cross(p)

			bB.c.X += pc.invMassB * p.X
			bB.c.Y += pc.invMassB * p.Y
			bB.a += pc.invIB * rB.Cross(p)
		}
	}

	return minSeparation >= -3*LinearSlop
}

// SolveTOIPositionConstraints is SolvePositionConstraints specialized for a
// TOI island: only the bodies at toiIndexA/toiIndexB are allowed to move.
// Every other body the island pulled in as a neighbor acts as a fixed
// anchor (zero effective inverse mass/inertia) so the impact pair's
// correction can't overlap it, without that neighbor itself being dragged
// by a correction that isn't really about its own contact.
func (cs *ContactSolver) SolveTOIPositionConstraints(toiIndexA, toiIndexB int, baumgarte Real) bool {
	minSeparation := Real(0)

	for i := range cs.positionConstraints {
		pc := &cs.positionConstraints[i]
		bA := cs.bodies[pc.indexA]
		bB := cs.bodies[pc.indexB]

		invMassA, invIA := Real(0), Real(0)
		if pc.indexA == toiIndexA || pc.indexA == toiIndexB {
			invMassA, invIA = pc.invMassA, pc.invIA
		}
		invMassB, invIB := Real(0), Real(0)
		if pc.indexB == toiIndexA || pc.indexB == toiIndexB {
			invMassB, invIB = pc.invMassB, pc.invIB
		}

		for j := 0; j < pc.pointCount; j++ {
			xfA, xfB := solverTransform(bA, pc.localCenterA), solverTransform(bB, pc.localCenterB)
			point, normal, separation := positionSeparation(pc, j, xfA, xfB)

			rA := *math2d.NewVec2().Sub(point, bA.c)
			rB := *math2d.NewVec2().Sub(point, bB.c)

			if separation < minSeparation {
				minSeparation = separation
			}

			C := clampReal(baumgarte*(separation+LinearSlop), -MaxLinearCorrection, 0)

			rnA := rA.Cross(normal)
			rnB := rB.Cross(normal)
			k := invMassA + invMassB + invIA*rnA*rnA + invIB*rnB*rnB

			impulse := Real(0)
			if k > 0 {
				impulse = -C / k
			}

			p := math2d.Vec2{X: normal.X * impulse, Y: normal.Y * impulse}

			bA.c.X -= invMassA * p.X
			bA.c.Y -= invMassA * p.Y
			bA.a -= invIA * rA.Cross(p)

			bB.c.X += invMassB * p.X
			bB.c.Y += invMassB * p.Y
			bB.a += invIB * rB.Cross(p)
		}
	}

	return minSeparation >= -1.5*LinearSlop
}

func solverTransform(b *solverBody, localCenter math2d.Vec2) math2d.Transform {
	var xf math2d.Transform
	xf.Q.Set(b.a)
	xf.P = *math2d.NewVec2().Sub(b.c, math2d.MulRV(xf.Q, localCenter))
	return xf
}

// positionSeparation recomputes the witness point/normal/separation for
// manifold point j directly from the constraint's local geometry, the
// same derivation ComputeWorldManifold uses but specialized to return a
// scalar separation instead of a full WorldManifold.
func positionSeparation(pc *positionConstraint, j int, xfA, xfB math2d.Transform) (point, normal math2d.Vec2, separation Real) {
	switch pc.manifoldType {
	case CirclesManifold:
		pointA := math2d.MulTV(xfA, pc.localPoint)
		pointB := math2d.MulTV(xfB, pc.localPoints[0])
		normal.Unit(*math2d.NewVec2().Sub(pointB, pointA))
		point = math2d.Vec2{X: 0.5 * (pointA.X + pointB.X), Y: 0.5 * (pointA.Y + pointB.Y)}
		separation = pointB.Dist(pointA) - pc.radiusA - pc.radiusB
		return

	case FaceAManifold:
		normal = math2d.MulRV(xfA.Q, pc.localNormal)
		planePoint := math2d.MulTV(xfA, pc.localPoint)
		clip := math2d.MulTV(xfB, pc.localPoints[j])
		separation = normal.Dot(*math2d.NewVec2().Sub(clip, planePoint)) - pc.radiusA - pc.radiusB
		point = clip
		return

	default: // FaceBManifold
		normal = math2d.MulRV(xfB.Q, pc.localNormal)
		planePoint := math2d.MulTV(xfB, pc.localPoint)
		clip := math2d.MulTV(xfA, pc.localPoints[j])
		separation = normal.Dot(*math2d.NewVec2().Sub(clip, planePoint)) - pc.radiusA - pc.radiusB
		point = clip
		normal = *math2d.NewVec2().Neg(normal)
		return
	}
}

func clampReal(v, lo, hi Real) Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
