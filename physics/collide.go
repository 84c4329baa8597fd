// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvanized/rigid2d/math2d"

// evaluateFn is the uniform signature every narrow-phase routine is
// adapted to so a Contact can store one function value instead of
// branching on shape-type pairs every step: a small table of function
// references, never virtual dispatch per contact. The child indices
// select which segment of a chain fixture participates; every non-chain
// shape ignores its own index.
type evaluateFn func(fixtureA *Fixture, indexA int, xfA math2d.Transform, fixtureB *Fixture, indexB int, xfB math2d.Transform) Manifold

// contactRegistry is the fixed 4x4 dispatch table keyed by
// [ShapeType][ShapeType], directly grounding the earlier 3D engine's
// collider.algorithms [][]collide table (physics/collision.go) in the 2D
// shape set. A nil entry means the pair is registered only in the other
// order: lookupEvaluate then reports a flip and newContact swaps the
// fixtures to match the entry. Pairs with no entry in either order
// (edge/edge, edge/chain, chain/chain) make lookupEvaluate panic.
var contactRegistry [shapeTypeCount][shapeTypeCount]evaluateFn

func init() {
	contactRegistry[CircleShapeType][CircleShapeType] = evaluateCircleCircle
	contactRegistry[PolygonShapeType][CircleShapeType] = evaluatePolygonCircle
	contactRegistry[PolygonShapeType][PolygonShapeType] = evaluatePolygonPolygon
	contactRegistry[EdgeShapeType][CircleShapeType] = evaluateEdgeCircle
	contactRegistry[EdgeShapeType][PolygonShapeType] = evaluateEdgePolygon
	contactRegistry[ChainShapeType][CircleShapeType] = evaluateChainCircle
	contactRegistry[ChainShapeType][PolygonShapeType] = evaluateChainPolygon
}

func evaluateCircleCircle(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	return CollideCircles(fA.Shape.(*CircleShape), xfA, fB.Shape.(*CircleShape), xfB)
}

func evaluatePolygonCircle(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	return CollidePolygonAndCircle(fA.Shape.(*PolygonShape), xfA, fB.Shape.(*CircleShape), xfB)
}

func evaluatePolygonPolygon(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	return CollidePolygons(fA.Shape.(*PolygonShape), xfA, fB.Shape.(*PolygonShape), xfB)
}

func evaluateEdgeCircle(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	return CollideEdgeAndCircle(fA.Shape.(*EdgeShape), xfA, fB.Shape.(*CircleShape), xfB)
}

func evaluateEdgePolygon(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	return CollideEdgeAndPolygon(fA.Shape.(*EdgeShape), xfA, fB.Shape.(*PolygonShape), xfB)
}

func evaluateChainCircle(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	chain := fA.Shape.(*ChainShape)
	edge := chain.childEdge(indexA)
	return CollideEdgeAndCircle(edge, xfA, fB.Shape.(*CircleShape), xfB)
}

func evaluateChainPolygon(fA *Fixture, indexA int, xfA math2d.Transform, fB *Fixture, indexB int, xfB math2d.Transform) Manifold {
	chain := fA.Shape.(*ChainShape)
	edge := chain.childEdge(indexA)
	return CollideEdgeAndPolygon(edge, xfA, fB.Shape.(*PolygonShape), xfB)
}

// lookupEvaluate returns the evaluate function for an ordered shape-type
// pair plus whether the pair must be flipped (fixture B's shape comes
// first in the registry) to use it, so contact.go can normalize storage
// order once at contact-creation time rather than branching every step.
func lookupEvaluate(typeA, typeB ShapeType) (fn evaluateFn, flip bool) {
	if contactRegistry[typeA][typeB] != nil {
		return contactRegistry[typeA][typeB], false
	}
	if contactRegistry[typeB][typeA] != nil {
		return contactRegistry[typeB][typeA], true
	}
	panicInvariant("lookupEvaluate", "no narrow-phase routine registered for %s/%s", typeA, typeB)
	return nil, false
}
