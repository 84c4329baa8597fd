// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// ManifoldType distinguishes the three shapes a 2D contact manifold can
// take: a single circle point, a face with a circle tucked against it, or
// two clipped polygon faces.
type ManifoldType int

const (
	CirclesManifold ManifoldType = iota
	FaceAManifold
	FaceBManifold
)

// ContactID identifies which features (vertex or edge indices on each
// shape) produced a manifold point, so Contact.Update can match points
// across steps and carry warm-start impulses forward — the 2D analogue of
// the earlier 3D engine's bullet-style persistent-manifold feature matching in
// physics/contact.go (closestPoint/largestArea), reduced from a 4-point
// bullet cache to Box2D's 2-point feature-id scheme.
type ContactID struct {
	IndexA, IndexB     uint8
	TypeA, TypeB       uint8
}

// ManifoldPoint is one contact point in the manifold's own local frame
// (not yet placed in world space — see WorldManifold), plus the
// accumulated normal/tangent impulses carried from the previous step for
// warm starting.
type ManifoldPoint struct {
	Point               math2d.Vec2
	NormalImpulse       Real
	TangentImpulse      Real
	ID                  ContactID
}

// Manifold is the narrow phase's output: up to MaxManifoldPoints contact
// points sharing one separation axis, tagged with the local point/normal
// the axis was computed from and which shape that local frame belongs to.
type Manifold struct {
	Type        ManifoldType
	LocalNormal math2d.Vec2
	LocalPoint  math2d.Vec2
	Points      [MaxManifoldPoints]ManifoldPoint
	PointCount  int
}

// WorldManifold is a Manifold's points/normal resolved into world space
// for a specific pair of transforms and radii, the form the contact
// solver actually consumes.
type WorldManifold struct {
	Normal math2d.Vec2
	Points [MaxManifoldPoints]math2d.Vec2
}

// ComputeWorldManifold resolves m into world space given the two shapes'
// transforms and radii, matching xphysics's b2WorldManifold::Initialize.
func ComputeWorldManifold(m *Manifold, xfA math2d.Transform, radiusA Real, xfB math2d.Transform, radiusB Real) WorldManifold {
	var wm WorldManifold
	if m.PointCount == 0 {
		return wm
	}

	switch m.Type {
	case CirclesManifold:
		wm.Normal = math2d.Vec2{X: 1, Y: 0}
		pointA := math2d.MulTV(xfA, m.LocalPoint)
		pointB := math2d.MulTV(xfB, m.Points[0].Point)
		if pointA.DistSqr(pointB) > math2d.Epsilon*math2d.Epsilon {
			wm.Normal.Unit(*math2d.NewVec2().Sub(pointB, pointA))
		}
		cA := math2d.Vec2{X: pointA.X + radiusA*wm.Normal.X, Y: pointA.Y + radiusA*wm.Normal.Y}
		cB := math2d.Vec2{X: pointB.X - radiusB*wm.Normal.X, Y: pointB.Y - radiusB*wm.Normal.Y}
		wm.Points[0] = math2d.Vec2{X: 0.5 * (cA.X + cB.X), Y: 0.5 * (cA.Y + cB.Y)}

	case FaceAManifold:
		wm.Normal = math2d.MulRV(xfA.Q, m.LocalNormal)
		planePoint := math2d.MulTV(xfA, m.LocalPoint)
		for i := 0; i < m.PointCount; i++ {
			clip := math2d.MulTV(xfB, m.Points[i].Point)
			rawSep := wm.Normal.Dot(*math2d.NewVec2().Sub(clip, planePoint))
			cA := math2d.Vec2{X: clip.X + (radiusA-rawSep)*wm.Normal.X, Y: clip.Y + (radiusA-rawSep)*wm.Normal.Y}
			cB := math2d.Vec2{X: clip.X - radiusB*wm.Normal.X, Y: clip.Y - radiusB*wm.Normal.Y}
			wm.Points[i] = math2d.Vec2{X: 0.5 * (cA.X + cB.X), Y: 0.5 * (cA.Y + cB.Y)}
		}

	case FaceBManifold:
		wm.Normal = math2d.MulRV(xfB.Q, m.LocalNormal)
		planePoint := math2d.MulTV(xfB, m.LocalPoint)
		for i := 0; i < m.PointCount; i++ {
			clip := math2d.MulTV(xfA, m.Points[i].Point)
			rawSep := wm.Normal.Dot(*math2d.NewVec2().Sub(clip, planePoint))
			cB := math2d.Vec2{X: clip.X + (radiusB-rawSep)*wm.Normal.X, Y: clip.Y + (radiusB-rawSep)*wm.Normal.Y}
			cA := math2d.Vec2{X: clip.X - radiusA*wm.Normal.X, Y: clip.Y - radiusA*wm.Normal.Y}
			wm.Points[i] = math2d.Vec2{X: 0.5 * (cA.X + cB.X), Y: 0.5 * (cA.Y + cB.Y)}
		}
		// Face-B manifolds are reported in A's frame by convention, so
		// flip the normal to point from A to B like the other two cases.
		wm.Normal = *math2d.NewVec2().Neg(wm.Normal)
	}

	return wm
}

// GetPointStates classifies manifold points across steps into
// persisted/added/removed sets by comparing ContactIDs, used by contact
// listeners that want begin/end-of-contact-point notifications.
type PointState int

const (
	NullState PointState = iota
	AddState
	PersistState
	RemoveState
)

func GetPointStates(old, cur *Manifold) (state1, state2 [MaxManifoldPoints]PointState) {
	for i := 0; i < old.PointCount; i++ {
		id := old.Points[i].ID
		state1[i] = RemoveState
		for j := 0; j < cur.PointCount; j++ {
			if cur.Points[j].ID == id {
				state1[i] = PersistState
				break
			}
		}
	}

	for i := 0; i < cur.PointCount; i++ {
		id := cur.Points[i].ID
		state2[i] = AddState
		for j := 0; j < old.PointCount; j++ {
			if old.Points[j].ID == id {
				state2[i] = PersistState
				break
			}
		}
	}

	return
}
