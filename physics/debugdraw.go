// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// DrawFlags selects which categories of debug geometry DrawDebugData emits,
// combined with bitwise OR and passed to World.SetDebugDrawFlags.
type DrawFlags uint32

const (
	DrawShapes DrawFlags = 1 << iota
	DrawAABBs
	DrawCenterOfMass
)

// Color is a draw-call tint, a plain RGBA tuple rather than anything tied to
// a particular graphics backend (drawDebugData is a pure callback
// fan-out; binding colors to GPU uniforms is the caller's job, the same
// division that engine draws between physics/render.Draw's SetFloats and
// whatever shader consumes them).
type Color struct {
	R, G, B, A Real
}

// DebugDraw is the caller-supplied sink World.DrawDebugData renders into.
// The engine never owns a rendering backend (rendering itself is
// debug-draw sink ... external collaborators" is explicitly out of scope);
// this interface is the seam an embedding application implements, the same
// boundary that engine draws around its own render package (render.Draw is
// populated by vu and consumed by an external GPU backend, never touched
// from inside the scene graph that builds it).
type DebugDraw interface {
	DrawPolygon(vertices []math2d.Vec2, color Color)
	DrawSolidPolygon(vertices []math2d.Vec2, color Color)
	DrawCircle(center math2d.Vec2, radius Real, color Color)
	DrawSolidCircle(center math2d.Vec2, radius Real, axis math2d.Vec2, color Color)
	DrawSegment(p1, p2 math2d.Vec2, color Color)
	DrawTransform(xf math2d.Transform)
	DrawPoint(p math2d.Vec2, size Real, color Color)

	Flags() DrawFlags
	SetFlags(flags DrawFlags)
}

var (
	colorStaticShape   = Color{R: 0.5, G: 0.9, B: 0.5, A: 1}
	colorSleepingShape = Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
	colorAwakeShape    = Color{R: 0.9, G: 0.7, B: 0.7, A: 1}
	colorAABB          = Color{R: 0.9, G: 0.9, B: 0.3, A: 1}
	colorCenterOfMass  = Color{R: 1, G: 0, B: 0, A: 1}
)

// SetDebugDraw wires (or clears, with nil) the sink DrawDebugData renders
// into for every subsequent call.
func (w *World) SetDebugDraw(d DebugDraw) { w.debugDraw = d }

// SetDebugDrawFlags updates which categories of geometry DrawDebugData
// emits on the currently wired sink; a no-op if none is set.
func (w *World) SetDebugDrawFlags(flags DrawFlags) {
	if w.debugDraw != nil {
		w.debugDraw.SetFlags(flags)
	}
}

// DrawDebugData walks every body and fixture in the world, feeding the
// wired DebugDraw sink one shape/AABB/center-of-mass draw call at a time,
// out of scope. A nil sink makes this a no-op so applications that never
// call SetDebugDraw pay nothing.
func (w *World) DrawDebugData() {
	if w.debugDraw == nil {
		return
	}
	flags := w.debugDraw.Flags()

	for _, b := range w.bodies {
		xf := b.GetTransform()

		if flags&DrawShapes != 0 {
			color := colorForBody(b)
			for _, f := range b.fixtures {
				drawShape(w.debugDraw, f.Shape, xf, color)
			}
		}

		if flags&DrawAABBs != 0 {
			for _, f := range b.fixtures {
				for i := 0; i < f.Shape.GetChildCount(); i++ {
					aabb := f.Shape.ComputeAABB(xf, i)
					verts := []math2d.Vec2{
						{X: aabb.Lower.X, Y: aabb.Lower.Y},
						{X: aabb.Upper.X, Y: aabb.Lower.Y},
						{X: aabb.Upper.X, Y: aabb.Upper.Y},
						{X: aabb.Lower.X, Y: aabb.Upper.Y},
					}
					w.debugDraw.DrawPolygon(verts, colorAABB)
				}
			}
		}

		if flags&DrawCenterOfMass != 0 && b.typ != StaticBody {
			w.debugDraw.DrawPoint(b.GetWorldCenter(), 4, colorCenterOfMass)
		}
	}
}

func colorForBody(b *Body) Color {
	switch {
	case b.typ == StaticBody:
		return colorStaticShape
	case !b.awake:
		return colorSleepingShape
	default:
		return colorAwakeShape
	}
}

// drawShape renders every child of shape through sink, dispatching on
// concrete shape type the way collide.go's registry dispatches on
// ShapeType, since DebugDraw has no notion of a child's kind beyond its
// vertex/radius data.
func drawShape(sink DebugDraw, shape Shape, xf math2d.Transform, color Color) {
	switch s := shape.(type) {
	case *CircleShape:
		center := math2d.MulTV(xf, s.Center)
		axis := math2d.MulRV(xf.Q, math2d.Vec2{X: 1, Y: 0})
		sink.DrawSolidCircle(center, s.Radius, axis, color)

	case *PolygonShape:
		verts := make([]math2d.Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			verts[i] = math2d.MulTV(xf, v)
		}
		sink.DrawSolidPolygon(verts, color)

	case *EdgeShape:
		sink.DrawSegment(math2d.MulTV(xf, s.V1), math2d.MulTV(xf, s.V2), color)

	case *ChainShape:
		for i := 0; i < s.GetChildCount(); i++ {
			edge := s.childEdge(i)
			sink.DrawSegment(math2d.MulTV(xf, edge.V1), math2d.MulTV(xf, edge.V2), color)
		}

	default:
		// Unknown shape kinds draw nothing rather than panic; debug
		// rendering should never be why a step fails.
	}
}
