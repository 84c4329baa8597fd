// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// Sweep describes the linear and angular motion of a body's center of
// mass over the span of one time step, enabling conservative-advancement
// time-of-impact queries to interpolate a body's pose at any
// fraction alpha in [0,1]. The prior 3D engine has no equivalent:
// orientation there was resolved in one shot per step, with no continuous
// collision detection.
type Sweep struct {
	LocalCenter Vec2 // local-space center of mass
	C0, C       Vec2 // center of mass, start and end of step
	A0, A       Real // angle, start and end of step
	Alpha0      Real // fraction of the step already consumed by a prior TOI advance
}

// GetTransform computes the interpolated world transform at fraction beta
// in [0,1] between (c0,a0) and (c,a), writing it into xf.
func (s *Sweep) GetTransform(xf *Transform, beta Real) *Transform {
	xf.P.X = (1-beta)*s.C0.X + beta*s.C.X
	xf.P.Y = (1-beta)*s.C0.Y + beta*s.C.Y
	angle := (1-beta)*s.A0 + beta*s.A
	xf.Q.Set(angle)

	// xf currently places the origin at the center of mass; shift back to
	// the body origin using the local center offset (xf.p = c - R*localCenter).
	rc := MulRV(xf.Q, s.LocalCenter)
	xf.P.X -= rc.X
	xf.P.Y -= rc.Y
	return xf
}

// Advance moves the starting point of the sweep to the given fraction
// alpha (in [Alpha0, 1]) of the current sweep, used when a body has
// already been advanced partway through a step by a previous TOI event.
func (s *Sweep) Advance(alpha Real) {
	if s.Alpha0 >= alpha {
		return
	}
	beta := (alpha - s.Alpha0) / (1 - s.Alpha0)
	s.C0.X += beta * (s.C.X - s.C0.X)
	s.C0.Y += beta * (s.C.Y - s.C0.Y)
	s.A0 += beta * (s.A - s.A0)
	s.Alpha0 = alpha
}

// Normalize folds a0 and a together into a representative range so that
// repeated TOI sub-stepping does not let the angle grow without bound
// across many steps, which would eventually lose precision.
func (s *Sweep) Normalize() {
	twoPi := TwoPi
	d := twoPi * math.Floor(s.A0/twoPi)
	s.A0 -= d
	s.A -= d
}
