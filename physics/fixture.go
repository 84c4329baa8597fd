// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// FixtureDef describes a fixture before it is attached to a body,
// mirroring the earlier 3D engine's pattern of a *Def struct consumed by a single
// constructor call (e.g. NewBody(BodyDef) in physics/physics.go).
type FixtureDef struct {
	Shape       Shape
	Density     Real
	Friction    Real
	Restitution Real
	IsSensor    bool
	Filter      Filter
	UserData    any
}

// DefaultFixtureDef returns a FixtureDef with the earlier 3D engine's typical
// material defaults (friction 0.2, no restitution) and an unrestricted
// filter.
func DefaultFixtureDef(shape Shape) FixtureDef {
	return FixtureDef{Shape: shape, Density: 1, Friction: 0.2, Filter: DefaultFilter()}
}

// fixtureProxy is one broad-phase entry for one child of a fixture's
// shape (a chain fixture with N edges gets N proxies, every other shape
// gets exactly one).
type fixtureProxy struct {
	aabb        AABB
	fixture     *Fixture
	childIndex  int
	proxyID     int
}

// Fixture binds a Shape to material properties and a collision filter and
// attaches it to exactly one Body. The earlier 3D engine fused shape and
// body directly (physics/body.go embeds shape fields on body); splitting
// them mirrors Box2D's model where a body can carry several fixtures with
// independent materials.
type Fixture struct {
	id          int
	body        *Body
	Shape       Shape
	Density     Real
	Friction    Real
	Restitution Real
	IsSensor    bool
	Filter      Filter
	UserData    any

	proxies []fixtureProxy
}

// Body returns the fixture's owning body.
func (f *Fixture) Body() *Body { return f.body }

// TestPoint reports whether world point p lies inside any child of this
// fixture's shape, evaluated at the body's current transform.
func (f *Fixture) TestPoint(p math2d.Vec2) bool {
	return f.Shape.TestPoint(f.body.GetTransform(), p)
}

// RayCast casts against the given child of this fixture's shape, placed by
// the body's current transform.
func (f *Fixture) RayCast(input *RayCastInput, childIndex int) (RayCastOutput, bool) {
	return f.Shape.RayCast(input, f.body.GetTransform(), childIndex)
}

// GetAABB returns the broad-phase fat AABB currently stored for the given
// child (valid only after the fixture has been attached to a world).
func (f *Fixture) GetAABB(childIndex int) AABB {
	return f.proxies[childIndex].aabb
}

func (f *Fixture) createProxies(bp *BroadPhase, xf math2d.Transform) {
	n := f.Shape.GetChildCount()
	f.proxies = make([]fixtureProxy, n)
	for i := 0; i < n; i++ {
		aabb := f.Shape.ComputeAABB(xf, i)
		id := bp.CreateProxy(aabb, &f.proxies[i])
		f.proxies[i] = fixtureProxy{aabb: aabb, fixture: f, childIndex: i, proxyID: id}
	}
}

func (f *Fixture) destroyProxies(bp *BroadPhase) {
	for i := range f.proxies {
		bp.DestroyProxy(f.proxies[i].proxyID)
	}
	f.proxies = nil
}

func (f *Fixture) synchronize(bp *BroadPhase, xf1, xf2 math2d.Transform) {
	for i := range f.proxies {
		p := &f.proxies[i]
		aabb1 := f.Shape.ComputeAABB(xf1, p.childIndex)
		aabb2 := f.Shape.ComputeAABB(xf2, p.childIndex)
		p.aabb = Combine(aabb1, aabb2)
		displacement := *math2d.NewVec2().Sub(xf2.P, xf1.P)
		bp.MoveProxy(p.proxyID, p.aabb, displacement)
	}
}
