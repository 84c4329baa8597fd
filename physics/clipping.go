// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// clipVertex is one endpoint of a segment being clipped, carrying the
// feature id that survives the clip so the manifold can be matched frame
// to frame. Reduces the earlier 3D engine's general Sutherland-Hodgman polygon
// clipper (physics/clipping.go, cPlane/plane_edge_intersection) to the
// two-point segment-against-halfplane clip the 2D polygon/polygon and
// edge/polygon routines need.
type clipVertex struct {
	v  math2d.Vec2
	id ContactID
}

// clipSegmentToLine clips the two-vertex segment vIn against the halfplane
// normal·x <= offset, writing surviving vertices (interpolating a new one
// at the plane crossing when exactly one endpoint is clipped) into vOut.
// Mirrors xphysics's b2ClipSegmentToLine.
func clipSegmentToLine(vOut *[2]clipVertex, vIn [2]clipVertex, normal math2d.Vec2, offset Real, vertexIndexA uint8) int {
	count := 0

	dist0 := normal.Dot(vIn[0].v) - offset
	dist1 := normal.Dot(vIn[1].v) - offset

	if dist0 <= 0 {
		vOut[count] = vIn[0]
		count++
	}
	if dist1 <= 0 {
		vOut[count] = vIn[1]
		count++
	}

	if dist0*dist1 < 0 {
		interp := dist0 / (dist0 - dist1)
		v := math2d.Vec2{
			X: vIn[0].v.X + interp*(vIn[1].v.X-vIn[0].v.X),
			Y: vIn[0].v.Y + interp*(vIn[1].v.Y-vIn[0].v.Y),
		}
		vOut[count] = clipVertex{v: v, id: ContactID{IndexA: vertexIndexA, TypeA: 1}}
		count++
	}

	return count
}
