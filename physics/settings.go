// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics is a real-time simulation of 2D rigid-body physics.
// Physics applies simulated forces to bodies with attached collision
// shapes, advances them through fixed time steps, resolves contacts
// between them, and reports collision events.
//
// Package physics is styled after the original engine's 3D physics
// package but follows a Box2D-style simulation pipeline: a dynamic
// bounding-volume hierarchy for broad phase, per-shape-pair narrow phase
// routines producing contact manifolds, and a sequential-impulse
// constraint solver with a continuous (time-of-impact) sub-step for
// fast-moving bodies.
package physics

import "github.com/galvanized/rigid2d/math2d"

// Real is the scalar type used throughout the simulation.
type Real = math2d.Real

// Tunable constants. These are compile-time defaults; none of them is
// overridable through Config/Attr (see config.go for the per-world
// options).
const (
	MaxManifoldPoints = 2
	MaxPolygonVertices = 8
	MaxSubSteps        = 8

	// MaxTOIIslandContacts bounds how far a TOI island grows past its seed
	// contact's two bodies when pulling in touching neighbors.
	MaxTOIIslandContacts = 32

	// TOIPositionIterations is fixed rather than config-driven: a TOI
	// resolve is a narrow correction, not a full discrete step, and wants
	// more passes than the default island solve to fully separate the
	// impacting pair before the next step's discrete solve takes over.
	TOIPositionIterations = 20

	AABBExtension  Real = 0.1
	AABBMultiplier Real = 2.0

	LinearSlop   Real = 0.005
	PolygonRadius Real = 2 * LinearSlop

	VelocityThreshold Real = 1.0

	MaxLinearCorrection Real = 0.2
	MaxTranslation      Real = 2.0
	MaxRotation         Real = math2d.HalfPi

	Baumgarte    Real = 0.2
	ToiBaumgarte Real = 0.75

	TimeToSleep            Real = 0.5
	LinearSleepTolerance   Real = 0.01
	AngularSleepTolerance  Real = 2.0 * math2d.Pi / 180.0
)
