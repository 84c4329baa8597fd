// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// RayCastInput describes a ray segment from P1 to P2 and the fraction of
// that segment still worth searching (MaxFraction starts at 1 and may be
// shrunk by a visitor as closer hits are found).
type RayCastInput struct {
	P1, P2      math2d.Vec2
	MaxFraction Real
}

// RayCastOutput is the result of a single shape/ray intersection.
type RayCastOutput struct {
	Normal   math2d.Vec2
	Fraction Real
}

// RayCastCallback is invoked once per fixture the world ray cast visits,
// in the order the broad phase discovers them ("rayCast(input) →
// iterator of fixtures with mutable max-fraction"). Returning 0 terminates
// the cast immediately; returning a negative value ignores this fixture
// and continues the search unmodified; returning a fraction in (0,1]
// clips the segment still being searched to that fraction.
type RayCastCallback func(fixture *Fixture, point, normal math2d.Vec2, fraction Real) Real

// RayCastClosest is a convenience wrapper over the callback-based
// World.RayCast that returns only the single closest hit, the pattern
// every xphysics testbed test hand-rolls around the raw callback API.
func (w *World) RayCastClosest(p1, p2 math2d.Vec2) (fixture *Fixture, point, normal math2d.Vec2, hit bool) {
	bestFraction := Real(1)
	w.RayCast(p1, p2, func(f *Fixture, pt, n math2d.Vec2, fraction Real) Real {
		if fraction < bestFraction {
			bestFraction = fraction
			fixture, point, normal, hit = f, pt, n, true
		}
		return fraction
	})
	return
}

// RayCastAny is a convenience wrapper that stops at the first hit the
// broad phase happens to visit, without regard to distance — useful for
// cheap "is anything in the way" line-of-sight checks.
func (w *World) RayCastAny(p1, p2 math2d.Vec2) (fixture *Fixture, point, normal math2d.Vec2, hit bool) {
	w.RayCast(p1, p2, func(f *Fixture, pt, n math2d.Vec2, fraction Real) Real {
		fixture, point, normal, hit = f, pt, n, true
		return 0
	})
	return
}
