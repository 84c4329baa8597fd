// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "time"

// Profile records how long each phase of the most recent Step took,
// exposed so a caller can surface per-phase timings the way the earlier 3D engine's
// own engine publishes frame timing breakdowns for its render/update loop.
// All fields are wall-clock durations for a single Step call. Step writes
// Step, Collide, Solve, SolveTOI and Broadphase; SolveInit, SolveVelocity
// and SolvePosition are never written and stay zero.
type Profile struct {
	Step        time.Duration
	Collide     time.Duration
	Solve       time.Duration
	SolveTOI    time.Duration
	Broadphase  time.Duration
	SolveInit   time.Duration
	SolveVelocity time.Duration
	SolvePosition time.Duration
}

// timer is a tiny stopwatch helper used throughout world.go's Step to
// accumulate Profile fields without importing a third-party timing
// library for something this small.
type timer struct {
	start time.Time
}

func startTimer() timer { return timer{start: time.Now()} }

func (t timer) elapsed() time.Duration { return time.Since(t.start) }
