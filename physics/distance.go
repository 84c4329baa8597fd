// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	"github.com/galvanized/rigid2d/math2d"
)

// SimplexCache carries Voronoi-region state between successive distance
// queries on the same fixture pair, letting the solver warm-start GJK
// instead of rebuilding a simplex from scratch every step. Grounded on the
// earlier engine's persistent-simplex idiom in physics/gjk.go (there keyed on
// support indices to detect when a cached face is still valid), reduced
// from a 3D tetrahedron to a 2D triangle.
type SimplexCache struct {
	Count    int
	IndexA   [3]int
	IndexB   [3]int
	Metric   Real
}

// DistanceInput bundles the two proxies, their world transforms, and
// UseRadii, which subtracts both proxies' radii from the distance and
// moves the output points onto the rounded surfaces.
type DistanceInput struct {
	ProxyA, ProxyB   DistanceProxy
	TransformA, TransformB math2d.Transform
	UseRadii         bool
}

// DistanceOutput is the closest-point result: the points on each shape,
// the distance between them, and how many GJK iterations it took.
type DistanceOutput struct {
	PointA, PointB math2d.Vec2
	Distance       Real
	Iterations     int
}

type simplexVertex struct {
	wA, wB, w math2d.Vec2
	a         Real
	indexA    int
	indexB    int
}

type simplex struct {
	v     [3]simplexVertex
	count int
}

func (s *simplex) readCache(cache *SimplexCache, proxyA DistanceProxy, xfA math2d.Transform, proxyB DistanceProxy, xfB math2d.Transform) {
	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		v := &s.v[i]
		v.indexA = cache.IndexA[i]
		v.indexB = cache.IndexB[i]
		wALocal := proxyA.Vertices[v.indexA]
		wBLocal := proxyB.Vertices[v.indexB]
		v.wA = math2d.MulTV(xfA, wALocal)
		v.wB = math2d.MulTV(xfB, wBLocal)
		v.w = *math2d.NewVec2().Sub(v.wB, v.wA)
		v.a = -1
	}

	if s.count == 0 {
		v := &s.v[0]
		v.indexA, v.indexB = 0, 0
		wALocal := proxyA.Vertices[0]
		wBLocal := proxyB.Vertices[0]
		v.wA = math2d.MulTV(xfA, wALocal)
		v.wB = math2d.MulTV(xfB, wBLocal)
		v.w = *math2d.NewVec2().Sub(v.wB, v.wA)
		v.a = 1
		s.count = 1
	}
}

func (s *simplex) writeCache(cache *SimplexCache) {
	cache.Count = s.count
	for i := 0; i < s.count; i++ {
		cache.IndexA[i] = s.v[i].indexA
		cache.IndexB[i] = s.v[i].indexB
	}
}

func (s *simplex) searchDirection() math2d.Vec2 {
	switch s.count {
	case 1:
		return *math2d.NewVec2().Neg(s.v[0].w)
	case 2:
		e := math2d.NewVec2().Sub(s.v[1].w, s.v[0].w)
		sgn := e.Cross(*math2d.NewVec2().Neg(s.v[0].w))
		if sgn > 0 {
			return e.LeftPerp()
		}
		return e.RightPerp()
	default:
		return math2d.Vec2{}
	}
}

func (s *simplex) closestPoint() math2d.Vec2 {
	switch s.count {
	case 1:
		return s.v[0].w
	case 2:
		return math2d.Vec2{
			X: s.v[0].a*s.v[0].w.X + s.v[1].a*s.v[1].w.X,
			Y: s.v[0].a*s.v[0].w.Y + s.v[1].a*s.v[1].w.Y,
		}
	default:
		return math2d.Vec2{}
	}
}

func (s *simplex) witnessPoints() (pA, pB math2d.Vec2) {
	switch s.count {
	case 1:
		return s.v[0].wA, s.v[0].wB
	case 2:
		pA = math2d.Vec2{X: s.v[0].a*s.v[0].wA.X + s.v[1].a*s.v[1].wA.X, Y: s.v[0].a*s.v[0].wA.Y + s.v[1].a*s.v[1].wA.Y}
		pB = math2d.Vec2{X: s.v[0].a*s.v[0].wB.X + s.v[1].a*s.v[1].wB.X, Y: s.v[0].a*s.v[0].wB.Y + s.v[1].a*s.v[1].wB.Y}
		return
	case 3:
		pA = math2d.Vec2{
			X: s.v[0].a*s.v[0].wA.X + s.v[1].a*s.v[1].wA.X + s.v[2].a*s.v[2].wA.X,
			Y: s.v[0].a*s.v[0].wA.Y + s.v[1].a*s.v[1].wA.Y + s.v[2].a*s.v[2].wA.Y,
		}
		pB = pA
		return
	default:
		return
	}
}

// solve2 computes barycentric weights for the closest point on segment
// v0-v1 to the origin, dropping vertices that fall outside the Voronoi
// region (classic GJK simplex reduction).
func (s *simplex) solve2() {
	w1, w2 := s.v[0].w, s.v[1].w
	e12 := math2d.NewVec2().Sub(w2, w1)

	d12_2 := -w1.Dot(*e12)
	if d12_2 <= 0 {
		s.v[0].a = 1
		s.count = 1
		return
	}

	d12_1 := w2.Dot(*e12)
	if d12_1 <= 0 {
		s.v[0] = s.v[1]
		s.v[0].a = 1
		s.count = 1
		return
	}

	inv := 1 / (d12_1 + d12_2)
	s.v[0].a = d12_1 * inv
	s.v[1].a = d12_2 * inv
	s.count = 2
}

// solve3 reduces a 3-vertex simplex, using the standard sign-of-subarea
// tests against the origin.
func (s *simplex) solve3() {
	w1, w2, w3 := s.v[0].w, s.v[1].w, s.v[2].w

	e12 := math2d.NewVec2().Sub(w2, w1)
	w1e12 := w1.Dot(*e12)
	w2e12 := w2.Dot(*e12)
	d12_1 := w2e12
	d12_2 := -w1e12

	e13 := math2d.NewVec2().Sub(w3, w1)
	w1e13 := w1.Dot(*e13)
	w3e13 := w3.Dot(*e13)
	d13_1 := w3e13
	d13_2 := -w1e13

	e23 := math2d.NewVec2().Sub(w3, w2)
	w2e23 := w2.Dot(*e23)
	w3e23 := w3.Dot(*e23)
	d23_1 := w3e23
	d23_2 := -w2e23

	n123 := e12.Cross(*e13)
	d123_1 := n123 * w2.Cross(w3)
	d123_2 := n123 * w3.Cross(w1)
	d123_3 := n123 * w1.Cross(w2)

	if d12_2 <= 0 && d13_2 <= 0 {
		s.v[0].a = 1
		s.count = 1
		return
	}

	if d12_1 > 0 && d12_2 > 0 && d123_3 <= 0 {
		inv := 1 / (d12_1 + d12_2)
		s.v[0].a = d12_1 * inv
		s.v[1].a = d12_2 * inv
		s.count = 2
		return
	}

	if d13_1 > 0 && d13_2 > 0 && d123_2 <= 0 {
		inv := 1 / (d13_1 + d13_2)
		s.v[0].a = d13_1 * inv
		s.v[1] = s.v[2]
		s.v[1].a = d13_2 * inv
		s.count = 2
		return
	}

	if d12_2 <= 0 && d23_2 <= 0 {
		s.v[0] = s.v[1]
		s.v[0].a = 1
		s.count = 1
		return
	}

	if d13_1 <= 0 && d23_1 <= 0 {
		s.v[0] = s.v[2]
		s.v[0].a = 1
		s.count = 1
		return
	}

	if d23_1 > 0 && d23_2 > 0 && d123_1 <= 0 {
		inv := 1 / (d23_1 + d23_2)
		w2a := d23_1 * inv
		w3a := d23_2 * inv
		s.v[0] = s.v[1]
		s.v[1] = s.v[2]
		s.v[0].a = w2a
		s.v[1].a = w3a
		s.count = 2
		return
	}

	inv := 1 / (d123_1 + d123_2 + d123_3)
	s.v[0].a = d123_1 * inv
	s.v[1].a = d123_2 * inv
	s.v[2].a = d123_3 * inv
	s.count = 3
}

func (s *simplex) solve() {
	switch s.count {
	case 2:
		s.solve2()
	case 3:
		s.solve3()
	}
}

// Distance runs GJK to compute the closest points between two convex
// proxies, warm-starting from cache and writing the refreshed simplex
// indices back into it on return. Grounded on physics/gjk.go's iteration
// structure (support -> simplex reduction -> termination-on-duplicate
// support loop), resolved against xphysics/src/collision/distance.rs for
// the cache read/write contract.
func Distance(cache *SimplexCache, input DistanceInput) DistanceOutput {
	proxyA, proxyB := input.ProxyA, input.ProxyB
	xfA, xfB := input.TransformA, input.TransformB

	s := &simplex{}
	s.readCache(cache, proxyA, xfA, proxyB, xfB)

	var indexA, indexB [3]int
	saveCount := 0

	const maxIters = 20
	iter := 0
	for ; iter < maxIters; iter++ {
		saveCount = s.count
		for i := 0; i < saveCount; i++ {
			indexA[i] = s.v[i].indexA
			indexB[i] = s.v[i].indexB
		}

		switch s.count {
		case 1:
		case 2:
			s.solve2()
		case 3:
			s.solve3()
		}

		if s.count == 3 {
			break
		}

		d := s.searchDirection()
		if d.LenSqr() < math2d.Epsilon*math2d.Epsilon {
			break
		}

		v := &s.v[s.count]
		negD := *math2d.NewVec2().Neg(d)
		v.indexA = proxyA.GetSupport(math2d.MulTRV(xfA.Q, negD))
		v.wA = math2d.MulTV(xfA, proxyA.Vertices[v.indexA])
		v.indexB = proxyB.GetSupport(math2d.MulTRV(xfB.Q, d))
		v.wB = math2d.MulTV(xfB, proxyB.Vertices[v.indexB])
		v.w = *math2d.NewVec2().Sub(v.wB, v.wA)

		duplicate := false
		for i := 0; i < saveCount; i++ {
			if v.indexA == indexA[i] && v.indexB == indexB[i] {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}
		s.count++
	}

	pA, pB := s.witnessPoints()
	dist := pA.Dist(pB)

	s.writeCache(cache)

	if input.UseRadii {
		if dist < math2d.Epsilon {
			mid := math2d.Vec2{X: 0.5 * (pA.X + pB.X), Y: 0.5 * (pA.Y + pB.Y)}
			pA, pB = mid, mid
		} else {
			rA, rB := proxyA.Radius, proxyB.Radius
			dir, _ := math2d.NewVec2().Unit(*math2d.NewVec2().Sub(pB, pA))
			pA.X += rA * dir.X
			pA.Y += rA * dir.Y
			pB.X -= rB * dir.X
			pB.Y -= rB * dir.Y
			dist = math.Max(0, dist-rA-rB)
		}
	}

	return DistanceOutput{PointA: pA, PointB: pB, Distance: dist, Iterations: iter}
}
