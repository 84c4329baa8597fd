// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

func newGroundAndBall(w *physics.World, ballY physics.Real) (*physics.Body, *physics.Body) {
	ground := w.CreateBody(physics.BodyDef{Type: physics.StaticBody})
	ground.CreateFixture(physics.DefaultFixtureDef(physics.NewBoxShape(50, 1)))

	ball := w.CreateBody(physics.BodyDef{
		Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: ballY},
		GravityScale: 1, Awake: true, AllowSleep: true,
	})
	ball.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 0.5)))
	return ground, ball
}

func TestFallingBallSettlesOnGround(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, -10))
	_, ball := newGroundAndBall(w, 5)

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
	}

	require.InDelta(t, 1.5, ball.GetPosition().Y, 0.05)
}

func TestFallingBallSleepsAfterSettling(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, -10))
	_, ball := newGroundAndBall(w, 1.55)

	slept := false
	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
		if !ball.IsAwake() {
			slept = true
			break
		}
	}

	require.True(t, slept, "ball never went to sleep after settling on the ground")
}

func TestIndependentIslandsSleepIndependently(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, -10))
	_, near := newGroundAndBall(w, 1.55)

	far := w.CreateBody(physics.BodyDef{
		Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: 50},
		GravityScale: 1, Awake: true, AllowSleep: true,
	})
	far.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 0.5)))

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
	}

	require.False(t, near.IsAwake(), "settled island should have slept")
	require.True(t, far.IsAwake(), "still-falling island should not have slept")
}

func TestRestitutionBallBouncesBackUp(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, -10))
	ground := w.CreateBody(physics.BodyDef{Type: physics.StaticBody})
	groundDef := physics.DefaultFixtureDef(physics.NewBoxShape(50, 1))
	groundDef.Restitution = 1
	ground.CreateFixture(groundDef)

	ball := w.CreateBody(physics.BodyDef{
		Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: 5},
		GravityScale: 1, Awake: true, AllowSleep: false,
	})
	ballDef := physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 0.5))
	ballDef.Restitution = 1
	ball.CreateFixture(ballDef)

	maxYAfterBounce := physics.Real(0)
	hitGround := false
	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
		if ball.GetPosition().Y < 1.6 {
			hitGround = true
		}
		if hitGround && ball.GetLinearVelocity().Y > 0 && ball.GetPosition().Y > maxYAfterBounce {
			maxYAfterBounce = ball.GetPosition().Y
		}
	}

	require.True(t, hitGround)
	require.Greater(t, maxYAfterBounce, physics.Real(1.6))
}

func TestRayCastVisitsEveryFixtureAlongSegment(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	a := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 5, Y: 0}})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 10, Y: 0}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	var hits []*physics.Fixture
	w.RayCast(math2d.Vec2{X: -10, Y: 0}, math2d.Vec2{X: 20, Y: 0}, func(f *physics.Fixture, point, normal math2d.Vec2, fraction physics.Real) physics.Real {
		hits = append(hits, f)
		return 1
	})

	require.Len(t, hits, 2)
}

func TestRayCastCallbackCanClipToNearestHit(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	a := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 5, Y: 0}})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 10, Y: 0}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	hitCount := 0
	w.RayCast(math2d.Vec2{X: -10, Y: 0}, math2d.Vec2{X: 20, Y: 0}, func(f *physics.Fixture, point, normal math2d.Vec2, fraction physics.Real) physics.Real {
		hitCount++
		return fraction
	})

	// The tree reports the far circle first (fraction 19/30); clipping to it
	// still leaves the near circle (fraction 14/30) inside the segment, so
	// both are reported and the last clip is to the nearest hit.
	require.Equal(t, 2, hitCount)
}

func TestQueryAABBFindsOverlappingFixtures(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	a := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 0, Y: 0}})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 100, Y: 100}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	var found []*physics.Fixture
	w.QueryAABB(physics.AABB{Lower: math2d.Vec2{X: -5, Y: -5}, Upper: math2d.Vec2{X: 5, Y: 5}}, func(f *physics.Fixture) bool {
		found = append(found, f)
		return true
	})

	require.Len(t, found, 1)
}

func TestDestroyBodyRemovesItsContacts(t *testing.T) {
	listener := &recordingListener{}
	w := physics.NewWorld(physics.Gravity(0, 0), physics.Listener(listener))

	a := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Awake: true, AllowSleep: true})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 0.5, Y: 0}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	w.Step(1.0 / 60)
	require.Equal(t, 1, listener.began)

	w.DestroyBody(a)
	require.Equal(t, 1, listener.ended)
}

func TestCreateBodyPanicsWhenWorldIsLocked(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	listener := &lockProbeListener{w: w}
	w.SetContactListener(listener)

	a := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Awake: true, AllowSleep: true})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 0.5, Y: 0}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	require.Panics(t, func() { w.Step(1.0 / 60) })
}

// lockProbeListener calls back into the world from inside BeginContact,
// which fires while w.locked is still true, to confirm mutation during a
// callback panics instead of corrupting the in-progress step.
type lockProbeListener struct {
	physics.BaseContactListener
	w *physics.World
}

func (l *lockProbeListener) BeginContact(c *physics.Contact) {
	l.w.CreateBody(physics.BodyDef{Type: physics.StaticBody})
}

func TestStepPanicsOnReentry(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	w.SetContactListener(&reentrantListener{w: w})

	a := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Awake: true, AllowSleep: true})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	b := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 0.5, Y: 0}})
	b.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	require.Panics(t, func() { w.Step(1.0 / 60) })
}

type reentrantListener struct {
	physics.BaseContactListener
	w *physics.World
}

func (l *reentrantListener) BeginContact(c *physics.Contact) {
	l.w.Step(1.0 / 60)
}

func TestShiftOriginTranslatesBodyPositions(t *testing.T) {
	w := physics.NewWorld(physics.Gravity(0, 0))
	a := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 10, Y: 10}})
	a.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	w.ShiftOrigin(math2d.Vec2{X: 10, Y: 10})

	require.InDelta(t, 0, a.GetPosition().X, 1e-9)
	require.InDelta(t, 0, a.GetPosition().Y, 1e-9)
}
