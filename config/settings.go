// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config loads data-driven physics scenario descriptions: a
// world's tuning plus the bodies and fixtures to populate it with, read
// from YAML the way the earlier engine's load package reads shader and model
// descriptions (load/shd.go) rather than hand-writing scene setup in Go.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/galvanized/rigid2d/math2d"
	"github.com/galvanized/rigid2d/physics"
)

var bodyTypes = map[string]physics.BodyType{
	"static":    physics.StaticBody,
	"kinematic": physics.KinematicBody,
	"dynamic":   physics.DynamicBody,
}

var shapeKinds = map[string]bool{
	"circle":  true,
	"box":     true,
	"polygon": true,
	"edge":    true,
	"chain":   true,
}

// WorldSettings is the data-driven description of a world: its tuning
// knobs plus the bodies and fixtures to create in it. Load parses YAML into
// this struct, then Build turns it into a live *physics.World.
type WorldSettings struct {
	Gravity            [2]Real `yaml:"gravity"`
	VelocityIterations int     `yaml:"velocityIterations"`
	PositionIterations int     `yaml:"positionIterations"`
	AllowSleep         bool    `yaml:"allowSleep"`
	ContinuousPhysics  bool    `yaml:"continuousPhysics"`

	Bodies []BodySettings `yaml:"bodies"`
}

// Real matches physics.Real so scenario files and the simulation agree on
// precision without config importing math2d's internal alias directly.
type Real = physics.Real

// BodySettings describes one body and the fixtures attached to it.
type BodySettings struct {
	Name     string           `yaml:"name"`
	Type     string           `yaml:"type"` // static, kinematic, dynamic
	Position [2]Real          `yaml:"position"`
	Angle    Real             `yaml:"angle"`
	Bullet   bool             `yaml:"bullet"`
	Fixtures []FixtureSettings `yaml:"fixtures"`
}

// FixtureSettings describes one fixture's shape and material.
type FixtureSettings struct {
	Shape       string    `yaml:"shape"` // circle, box, polygon, edge, chain
	Radius      Real      `yaml:"radius"`
	HalfWidth   Real      `yaml:"halfWidth"`
	HalfHeight  Real      `yaml:"halfHeight"`
	Vertices    [][2]Real `yaml:"vertices"`
	Loop        bool      `yaml:"loop"`
	Density     Real      `yaml:"density"`
	Friction    Real      `yaml:"friction"`
	Restitution Real      `yaml:"restitution"`
	IsSensor    bool      `yaml:"isSensor"`
}

// Load parses a YAML scenario description.
func Load(data []byte) (*WorldSettings, error) {
	var s WorldSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: yaml %w", err)
	}
	for _, b := range s.Bodies {
		if _, ok := bodyTypes[b.Type]; !ok {
			return nil, fmt.Errorf("config: body %q has unsupported type %q", b.Name, b.Type)
		}
		for _, f := range b.Fixtures {
			if !shapeKinds[f.Shape] {
				return nil, fmt.Errorf("config: body %q has unsupported fixture shape %q", b.Name, f.Shape)
			}
		}
	}
	return &s, nil
}

// Build constructs a live World plus a name-keyed body index from the
// settings. Bodies without a Name are still created but omitted from the
// returned index.
func Build(s *WorldSettings) (*physics.World, map[string]*physics.Body, error) {
	attrs := []physics.Attr{
		physics.Gravity(s.Gravity[0], s.Gravity[1]),
	}
	if s.VelocityIterations > 0 || s.PositionIterations > 0 {
		attrs = append(attrs, physics.Iterations(s.VelocityIterations, s.PositionIterations))
	}
	attrs = append(attrs, physics.AllowSleep(s.AllowSleep), physics.ContinuousPhysics(s.ContinuousPhysics))

	world := physics.NewWorld(attrs...)
	byName := make(map[string]*physics.Body)

	for _, bs := range s.Bodies {
		def := physics.DefaultBodyDef()
		def.Type = bodyTypes[bs.Type]
		def.Position = math2d.Vec2{X: bs.Position[0], Y: bs.Position[1]}
		def.Angle = bs.Angle
		def.Bullet = bs.Bullet

		body := world.CreateBody(def)
		if bs.Name != "" {
			byName[bs.Name] = body
		}

		for _, fs := range bs.Fixtures {
			shape, err := buildShape(fs)
			if err != nil {
				return nil, nil, fmt.Errorf("config: body %q: %w", bs.Name, err)
			}
			fd := physics.DefaultFixtureDef(shape)
			if fs.Density > 0 {
				fd.Density = fs.Density
			}
			fd.Friction = fs.Friction
			fd.Restitution = fs.Restitution
			fd.IsSensor = fs.IsSensor
			body.CreateFixture(fd)
		}
	}

	return world, byName, nil
}

func buildShape(fs FixtureSettings) (physics.Shape, error) {
	switch fs.Shape {
	case "circle":
		return physics.NewCircleShape(math2d.Vec2{}, fs.Radius), nil
	case "box":
		return physics.NewBoxShape(fs.HalfWidth, fs.HalfHeight), nil
	case "polygon":
		return physics.NewPolygonShape(toVecs(fs.Vertices)), nil
	case "edge":
		vs := toVecs(fs.Vertices)
		if len(vs) != 2 {
			return nil, fmt.Errorf("edge fixture needs exactly 2 vertices, got %d", len(vs))
		}
		return physics.NewEdgeShape(vs[0], vs[1]), nil
	case "chain":
		vs := toVecs(fs.Vertices)
		if fs.Loop {
			return physics.NewLoopShape(vs), nil
		}
		return physics.NewChainShape(vs), nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", fs.Shape)
	}
}

func toVecs(pts [][2]Real) []math2d.Vec2 {
	out := make([]math2d.Vec2, len(pts))
	for i, p := range pts {
		out[i] = math2d.Vec2{X: p[0], Y: p[1]}
	}
	return out
}
