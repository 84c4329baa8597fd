// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// config.go reduces the NewWorld API footprint using functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//      https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html

import "github.com/galvanized/rigid2d/math2d"

// Config contains configuration attributes that can be set before a World
// starts stepping.
type Config struct {
	gravity math2d.Vec2

	velocityIterations int
	positionIterations int

	warmStarting      bool
	continuousPhysics bool
	allowSleep        bool

	filter   ContactFilter
	listener ContactListener
}

// configDefaults provides reasonable defaults so a World simulates
// sensibly even if no configuration attributes are set.
var configDefaults = Config{
	gravity:            math2d.Vec2{X: 0, Y: -10},
	velocityIterations: 8,
	positionIterations: 3,
	warmStarting:       true,
	continuousPhysics:  true,
	allowSleep:         true,
}

// Attr defines optional world attributes that can be used to configure a
// World.
//
//	w := physics.NewWorld(
//	   physics.Gravity(0, -9.8),
//	   physics.Iterations(10, 4),
//	   physics.Listener(myListener),
//	)
type Attr func(*Config)

// Gravity sets the uniform linear acceleration applied to every dynamic
// body each step.
func Gravity(x, y Real) Attr {
	return func(c *Config) { c.gravity = math2d.Vec2{X: x, Y: y} }
}

// Iterations sets the velocity and position solver iteration counts. More
// iterations converge constraints more accurately at higher per-step cost.
func Iterations(velocity, position int) Attr {
	return func(c *Config) {
		if velocity > 0 {
			c.velocityIterations = velocity
		}
		if position > 0 {
			c.positionIterations = position
		}
	}
}

// WarmStarting toggles carrying accumulated impulses from one step's
// solve into the next step's initial guess. Disabling it is mostly useful
// for isolating solver bugs; production simulations want it on.
func WarmStarting(enabled bool) Attr {
	return func(c *Config) { c.warmStarting = enabled }
}

// ContinuousPhysics toggles the time-of-impact sub-step pass that prevents
// fast-moving or bullet-flagged bodies from tunneling through thin static
// geometry.
func ContinuousPhysics(enabled bool) Attr {
	return func(c *Config) { c.continuousPhysics = enabled }
}

// AllowSleep toggles whether islands are ever allowed to go to sleep.
// Disabling this is primarily a debugging aid.
func AllowSleep(enabled bool) Attr {
	return func(c *Config) { c.allowSleep = enabled }
}

// FilterAttr installs a world-level ContactFilter consulted alongside each
// fixture pair's category/mask bits. Named with the Attr suffix
// to avoid colliding with the Filter category/mask struct type.
func FilterAttr(f ContactFilter) Attr {
	return func(c *Config) { c.filter = f }
}

// Listener installs the ContactListener notified of begin/end/presolve/
// postsolve events for every contact the world tracks.
func Listener(l ContactListener) Attr {
	return func(c *Config) { c.listener = l }
}
