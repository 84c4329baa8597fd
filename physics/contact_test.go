// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

type recordingListener struct {
	physics.BaseContactListener
	began, ended int
}

func (l *recordingListener) BeginContact(c *physics.Contact) { l.began++ }
func (l *recordingListener) EndContact(c *physics.Contact)   { l.ended++ }

func TestContactFiresBeginContactOnOverlap(t *testing.T) {
	listener := &recordingListener{}
	w := physics.NewWorld(physics.Gravity(0, 0), physics.Listener(listener))

	bodyA := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: 0}, Awake: true, AllowSleep: true})
	bodyA.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	bodyB := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 1.5, Y: 0}})
	bodyB.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	w.Step(1.0 / 60)

	require.Equal(t, 1, listener.began)
}

func TestContactFiresEndContactOnSeparation(t *testing.T) {
	listener := &recordingListener{}
	w := physics.NewWorld(physics.Gravity(0, 0), physics.Listener(listener))

	bodyA := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: 0}, Awake: true, AllowSleep: true})
	bodyA.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	bodyB := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: math2d.Vec2{X: 1.5, Y: 0}})
	bodyB.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 1)))

	w.Step(1.0 / 60)
	require.Equal(t, 1, listener.began)

	bodyA.SetTransform(math2d.Vec2{X: 100, Y: 100}, 0)
	w.Step(1.0 / 60)

	require.Equal(t, 1, listener.ended)
}

func TestSensorFixtureNeverSolvesButDoesTouch(t *testing.T) {
	listener := &recordingListener{}
	w := physics.NewWorld(physics.Gravity(0, -10), physics.Listener(listener))

	groundDef := physics.DefaultFixtureDef(physics.NewBoxShape(50, 1))
	groundDef.IsSensor = true
	ground := w.CreateBody(physics.BodyDef{Type: physics.StaticBody})
	ground.CreateFixture(groundDef)

	ball := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: math2d.Vec2{X: 0, Y: 0.5}, Awake: true, AllowSleep: true})
	ball.CreateFixture(physics.DefaultFixtureDef(physics.NewCircleShape(math2d.Vec2{}, 0.5)))

	w.Step(1.0 / 60)

	require.Equal(t, 1, listener.began)
}
