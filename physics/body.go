// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// BodyType classifies how a body participates in simulation, matching
// the earlier 3D engine's body-kind distinction
// (physics/body.go keyed static bodies by infinite mass rather than an
// explicit enum; this promotes that distinction to a first-class type).
type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

// BodyDef describes a body before creation, the earlier 3D engine's *Def-then-
// constructor idiom (physics/physics.go's NewBody(BodyDef)).
type BodyDef struct {
	Type           BodyType
	Position       math2d.Vec2
	Angle          Real
	LinearVelocity math2d.Vec2
	AngularVelocity Real
	LinearDamping  Real
	AngularDamping Real
	GravityScale   Real
	FixedRotation  bool
	Bullet         bool
	AllowSleep     bool
	Awake          bool
	UserData       any
}

// DefaultBodyDef returns a static body definition (Type's zero value,
// StaticBody) at the origin with no
// damping, gravity scale 1, and sleep allowed.
func DefaultBodyDef() BodyDef {
	return BodyDef{GravityScale: 1, AllowSleep: true, Awake: true}
}

// Body is one rigid body: a transform/velocity pair plus the fixtures
// that give it shape and mass. Generalizes the earlier 3D engine's body struct
// (physics/body.go), which fused a single shape directly onto the body
// and stored orientation as a quaternion, to a fixture list and a
// sweep-tracked angle.
type Body struct {
	id   int
	typ  BodyType
	xf   math2d.Transform
	sweep math2d.Sweep

	linearVelocity  math2d.Vec2
	angularVelocity Real

	force  math2d.Vec2
	torque Real

	linearDamping  Real
	angularDamping Real
	gravityScale   Real

	mass     Real
	invMass  Real
	i        Real
	invI     Real

	fixedRotation bool
	bullet        bool
	allowSleep    bool
	awake         bool
	sleepTime     Real

	fixtures []*Fixture
	world    *World

	contactList *ContactEdge

	islandIndex int
	visited     bool

	UserData any
}

// pushContactEdge prepends e to the body's contact-edge list.
func (b *Body) pushContactEdge(e *ContactEdge) {
	e.Next = b.contactList
	if b.contactList != nil {
		b.contactList.Prev = e
	}
	e.Prev = nil
	b.contactList = e
}

// removeContactEdge unlinks e from the body's contact-edge list.
func (b *Body) removeContactEdge(e *ContactEdge) {
	if e.Prev != nil {
		e.Prev.Next = e.Next
	}
	if e.Next != nil {
		e.Next.Prev = e.Prev
	}
	if b.contactList == e {
		b.contactList = e.Next
	}
	e.Prev, e.Next = nil, nil
}

// ContactEdges walks the body's contact-edge list into a slice. Exposed
// for iterating a body's contacts.
func (b *Body) ContactEdges() []*ContactEdge {
	var out []*ContactEdge
	for e := b.contactList; e != nil; e = e.Next {
		out = append(out, e)
	}
	return out
}

func newBody(id int, def BodyDef, w *World) *Body {
	b := &Body{
		id:             id,
		typ:            def.Type,
		xf:             *math2d.NewTransform().Set(def.Position, def.Angle),
		linearVelocity: def.LinearVelocity,
		angularVelocity: def.AngularVelocity,
		linearDamping:  def.LinearDamping,
		angularDamping: def.AngularDamping,
		gravityScale:   def.GravityScale,
		fixedRotation:  def.FixedRotation,
		bullet:         def.Bullet,
		allowSleep:     def.AllowSleep,
		awake:          def.Awake || def.Type == StaticBody,
		world:          w,
		UserData:       def.UserData,
	}
	b.sweep.LocalCenter = math2d.Vec2{}
	b.sweep.C = b.xf.P
	b.sweep.C0 = b.xf.P
	b.sweep.A = def.Angle
	b.sweep.A0 = def.Angle
	if b.typ == DynamicBody {
		b.mass = 1
		b.invMass = 1
	}
	return b
}

func (b *Body) ID() int             { return b.id }
func (b *Body) Type() BodyType      { return b.typ }
func (b *Body) GetTransform() math2d.Transform { return b.xf }
func (b *Body) GetPosition() math2d.Vec2       { return b.xf.P }
func (b *Body) GetAngle() Real                 { return b.sweep.A }
func (b *Body) GetWorldCenter() math2d.Vec2    { return b.sweep.C }
func (b *Body) GetLinearVelocity() math2d.Vec2 { return b.linearVelocity }
func (b *Body) GetAngularVelocity() Real       { return b.angularVelocity }
func (b *Body) GetMass() Real                  { return b.mass }
func (b *Body) GetInertia() Real               { return b.i }
func (b *Body) IsAwake() bool                  { return b.awake }
func (b *Body) IsBullet() bool                 { return b.bullet }
func (b *Body) GetFixtureList() []*Fixture     { return b.fixtures }

func (b *Body) SetLinearVelocity(v math2d.Vec2) {
	if b.typ == StaticBody {
		return
	}
	if v.Dot(v) > 0 {
		b.SetAwake(true)
	}
	b.linearVelocity = v
}

func (b *Body) SetAngularVelocity(w Real) {
	if b.typ == StaticBody {
		return
	}
	if w*w > 0 {
		b.SetAwake(true)
	}
	b.angularVelocity = w
}

// SetTransform teleports the body to the given position/angle
// immediately, bypassing integration — a supplemented convenience (spec
// §C) for scene setup and resets, grounded in xphysics's b2Body::SetTransform.
func (b *Body) SetTransform(position math2d.Vec2, angle Real) {
	b.xf.Set(position, angle)
	b.sweep.C = math2d.MulTV(b.xf, b.sweep.LocalCenter)
	b.sweep.A = angle
	b.sweep.C0 = b.sweep.C
	b.sweep.A0 = angle

	if b.world != nil {
		for _, f := range b.fixtures {
			f.synchronize(b.world.broadPhase, b.xf, b.xf)
		}
	}
}

// SetAwake toggles the sleep flag, resetting the sleep-accumulation timer
// and zeroing velocities when put to sleep.
func (b *Body) SetAwake(flag bool) {
	if b.typ == StaticBody {
		return
	}
	if flag {
		b.sleepTime = 0
		b.awake = true
	} else {
		b.sleepTime = 0
		b.awake = false
		b.linearVelocity = math2d.Vec2{}
		b.angularVelocity = 0
		b.force = math2d.Vec2{}
		b.torque = 0
	}
}

func (b *Body) ApplyForce(force, point math2d.Vec2, wake bool) {
	if b.typ != DynamicBody {
		return
	}
	if wake && !b.awake {
		b.SetAwake(true)
	}
	if !b.awake {
		return
	}
	b.force.X += force.X
	b.force.Y += force.Y
	r := math2d.NewVec2().Sub(point, b.sweep.C)
	b.torque += r.Cross(force)
}

func (b *Body) ApplyForceToCenter(force math2d.Vec2, wake bool) {
	if b.typ != DynamicBody {
		return
	}
	if wake && !b.awake {
		b.SetAwake(true)
	}
	if !b.awake {
		return
	}
	b.force.X += force.X
	b.force.Y += force.Y
}

func (b *Body) ApplyTorque(torque Real, wake bool) {
	if b.typ != DynamicBody {
		return
	}
	if wake && !b.awake {
		b.SetAwake(true)
	}
	if !b.awake {
		return
	}
	b.torque += torque
}

func (b *Body) ApplyLinearImpulse(impulse, point math2d.Vec2, wake bool) {
	if b.typ != DynamicBody {
		return
	}
	if wake && !b.awake {
		b.SetAwake(true)
	}
	if !b.awake {
		return
	}
	b.linearVelocity.X += b.invMass * impulse.X
	b.linearVelocity.Y += b.invMass * impulse.Y
	r := math2d.NewVec2().Sub(point, b.sweep.C)
	b.angularVelocity += b.invI * r.Cross(impulse)
}

func (b *Body) ApplyAngularImpulse(impulse Real, wake bool) {
	if b.typ != DynamicBody {
		return
	}
	if wake && !b.awake {
		b.SetAwake(true)
	}
	if !b.awake {
		return
	}
	b.angularVelocity += b.invI * impulse
}

// CreateFixture attaches a new fixture built from def, recomputes the
// body's combined mass data, and — if the body is already in a live world
// — registers broad-phase proxies immediately.
func (b *Body) CreateFixture(def FixtureDef) *Fixture {
	if b.world != nil && b.world.IsLocked() {
		panicInvariant("CreateFixture", "world is locked")
	}
	f := &Fixture{
		body:        b,
		Shape:       def.Shape,
		Density:     def.Density,
		Friction:    def.Friction,
		Restitution: def.Restitution,
		IsSensor:    def.IsSensor,
		Filter:      def.Filter,
		UserData:    def.UserData,
	}
	if b.world != nil {
		f.id = b.world.allocFixtureID()
	}
	b.fixtures = append(b.fixtures, f)
	b.resetMassData()
	if b.world != nil {
		f.createProxies(b.world.broadPhase, b.xf)
		b.world.touchedFixture(f)
	}
	return f
}

// DestroyFixture detaches a fixture, removing its broad-phase proxies and
// any contacts it participates in, then recomputes mass data.
func (b *Body) DestroyFixture(f *Fixture) {
	if b.world != nil && b.world.IsLocked() {
		panicInvariant("DestroyFixture", "world is locked")
	}
	for i, bf := range b.fixtures {
		if bf == f {
			b.fixtures = append(b.fixtures[:i], b.fixtures[i+1:]...)
			break
		}
	}
	if b.world != nil {
		b.world.destroyContactsFor(f)
		f.destroyProxies(b.world.broadPhase)
	}
	b.resetMassData()
}

// resetMassData sums mass/center/inertia across every non-sensor fixture,
// shifts inertia to the combined center of mass via the parallel axis
// theorem, and updates the body's sweep local center — the same
// responsibility the earlier 3D engine's body carried for its single shape
// (physics/body.go), generalized to a fixture list.
func (b *Body) resetMassData() {
	b.mass = 0
	b.invMass = 0
	b.i = 0
	b.invI = 0
	localCenter := math2d.Vec2{}

	if b.typ != DynamicBody {
		b.sweep.C0 = b.xf.P
		b.sweep.C = b.xf.P
		b.sweep.A0 = b.sweep.A
		return
	}

	for _, f := range b.fixtures {
		if f.Density == 0 || f.IsSensor {
			continue
		}
		md := f.Shape.ComputeMass(f.Density)
		b.mass += md.Mass
		localCenter.X += md.Mass * md.Center.X
		localCenter.Y += md.Mass * md.Center.Y
		b.i += md.I
	}

	if b.mass > 0 {
		b.invMass = 1 / b.mass
		localCenter.X *= b.invMass
		localCenter.Y *= b.invMass
	} else {
		b.mass = 1
		b.invMass = 1
	}

	if b.i > 0 && !b.fixedRotation {
		b.i -= b.mass * localCenter.Dot(localCenter)
		b.invI = 1 / b.i
	} else {
		b.i = 0
		b.invI = 0
	}

	oldCenter := b.sweep.C
	b.sweep.LocalCenter = localCenter
	b.sweep.C = math2d.MulTV(b.xf, localCenter)
	b.sweep.C0 = b.sweep.C
	dc := math2d.NewVec2().Sub(b.sweep.C, oldCenter)
	b.linearVelocity.X += math2d.CrossSV(b.angularVelocity, *dc).X
	b.linearVelocity.Y += math2d.CrossSV(b.angularVelocity, *dc).Y
}

// synchronizeTransform rebuilds xf from the sweep's current center/angle,
// called after integration updates sweep.C/A directly.
func (b *Body) synchronizeTransform() {
	b.sweep.GetTransform(&b.xf, 1)
}

// synchronizeFixtures pushes the swept [sweep.c0,c] motion into every
// fixture's broad-phase proxy, called once per step after solving.
func (b *Body) synchronizeFixtures(bp *BroadPhase) {
	var xf1 math2d.Transform
	b.sweep.GetTransform(&xf1, 0)
	for _, f := range b.fixtures {
		f.synchronize(bp, xf1, b.xf)
	}
}
