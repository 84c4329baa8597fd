// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galvanized/rigid2d/config"
)

const groundAndBallYAML = `
gravity: [0, -10]
velocityIterations: 6
positionIterations: 2
allowSleep: true
continuousPhysics: true
bodies:
  - name: ground
    type: static
    position: [0, 0]
    fixtures:
      - shape: box
        halfWidth: 50
        halfHeight: 1
  - name: ball
    type: dynamic
    position: [0, 5]
    fixtures:
      - shape: circle
        radius: 0.5
        density: 1
        friction: 0.3
        restitution: 0.2
`

func TestLoadParsesWorldAndBodySettings(t *testing.T) {
	s, err := config.Load([]byte(groundAndBallYAML))
	require.NoError(t, err)

	require.Equal(t, config.Real(-10), s.Gravity[1])
	require.Len(t, s.Bodies, 2)
	require.Equal(t, "ground", s.Bodies[0].Name)
	require.Equal(t, "box", s.Bodies[0].Fixtures[0].Shape)
}

func TestLoadRejectsUnsupportedBodyType(t *testing.T) {
	_, err := config.Load([]byte(`
bodies:
  - name: b
    type: bouncy
`))
	require.Error(t, err)
}

func TestLoadRejectsUnsupportedFixtureShape(t *testing.T) {
	_, err := config.Load([]byte(`
bodies:
  - name: b
    type: static
    fixtures:
      - shape: sphere
`))
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := config.Load([]byte("gravity: [0, -10"))
	require.Error(t, err)
}

func TestBuildCreatesWorldAndNameIndexedBodies(t *testing.T) {
	s, err := config.Load([]byte(groundAndBallYAML))
	require.NoError(t, err)

	world, byName, err := config.Build(s)
	require.NoError(t, err)
	require.NotNil(t, world)

	ground, ok := byName["ground"]
	require.True(t, ok)
	require.Equal(t, 0, int(ground.GetPosition().X))

	ball, ok := byName["ball"]
	require.True(t, ok)
	require.InDelta(t, 5, ball.GetPosition().Y, 1e-9)

	require.Len(t, world.GetBodyList(), 2)
}

func TestBuildOmitsUnnamedBodiesFromIndex(t *testing.T) {
	s, err := config.Load([]byte(`
gravity: [0, 0]
bodies:
  - type: static
    fixtures:
      - shape: circle
        radius: 1
`))
	require.NoError(t, err)

	world, byName, err := config.Build(s)
	require.NoError(t, err)
	require.Empty(t, byName)
	require.Len(t, world.GetBodyList(), 1)
}

func TestBuildEdgeFixtureRequiresExactlyTwoVertices(t *testing.T) {
	s, err := config.Load([]byte(`
bodies:
  - name: b
    type: static
    fixtures:
      - shape: edge
        vertices: [[0, 0], [1, 0], [2, 0]]
`))
	require.NoError(t, err)

	_, _, err = config.Build(s)
	require.Error(t, err)
}

func TestBuildLoopChainFixtureClosesTheShape(t *testing.T) {
	s, err := config.Load([]byte(`
bodies:
  - name: b
    type: static
    fixtures:
      - shape: chain
        loop: true
        vertices: [[0, 0], [1, 0], [1, 1], [0, 1]]
`))
	require.NoError(t, err)

	world, byName, err := config.Build(s)
	require.NoError(t, err)

	b := byName["b"]
	require.Len(t, b.GetFixtureList(), 1)
	require.Len(t, world.GetBodyList(), 1)
}
