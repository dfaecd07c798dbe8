package physics2d

import (
	"log"
	"math"
)

// shapePairKey identifies an unordered pair of shape kinds, used to rate
// limit the "unsupported shape pair" warning to once per kind combination
// (spec §7) rather than once per frame.
type shapePairKey struct {
	a, b ShapeKind
}

func makeShapePairKey(a, b ShapeKind) shapePairKey {
	if a > b {
		a, b = b, a
	}
	return shapePairKey{a, b}
}

var warnedShapePairs = make(map[shapePairKey]bool)

// detectCollision is the narrow-phase dispatcher: it picks a detector by
// the unordered pair of shape kinds and canonicalizes the returned
// manifold's normal to point from A toward B, regardless of which internal
// detector orientation the dispatch happened to use (spec §4.4, §9).
func detectCollision(bodyA, bodyB *Body) *Manifold {
	return detectCollisionInto(new(Manifold), bodyA, bodyB)
}

// detectCollisionInto is detectCollision but filling a caller-supplied
// Manifold (typically drawn from World's manifoldPool) instead of
// allocating a fresh one, so a full frame of collision checks reuses a
// bounded set of Manifold objects (spec §9's sync.Pool-backed allocation
// note; grounded on the teacher's Space.pooledArbiters/ContactBuffer).
func detectCollisionInto(m *Manifold, bodyA, bodyB *Body) *Manifold {
	shapeA, shapeB := bodyA.Shape(), bodyB.Shape()
	kindA, kindB := shapeA.Kind(), shapeB.Kind()

	var contacts []Contact

	switch {
	case kindA == ShapeCircle && kindB == ShapeCircle:
		contacts = detectCircleCircle(shapeA.(*Circle), shapeB.(*Circle))
	case kindA == ShapeRectangle && kindB == ShapeRectangle:
		contacts = detectRectangleRectangle(shapeA.(*Rectangle), shapeB.(*Rectangle))
	case kindA == ShapeCircle && kindB == ShapeRectangle:
		// detectCircleRectangle's normal points rect -> circle; since here
		// the circle is the A role and the rectangle is B, flip it so it
		// points A -> B.
		contacts = detectCircleRectangle(shapeA.(*Circle), shapeB.(*Rectangle))
		for i := range contacts {
			contacts[i].Normal = contacts[i].Normal.Neg()
		}
	case kindA == ShapeRectangle && kindB == ShapeCircle:
		// detectCircleRectangle's normal already points rect(A) -> circle(B).
		contacts = detectCircleRectangle(shapeB.(*Circle), shapeA.(*Rectangle))
	default:
		key := makeShapePairKey(kindA, kindB)
		if !warnedShapePairs[key] {
			warnedShapePairs[key] = true
			log.Printf("physics2d: no narrow-phase detector for shape pair (%v, %v); treating as no contact", kindA, kindB)
		}
		return nil
	}

	if len(contacts) == 0 {
		return nil
	}

	restitution, friction := combineMaterials(bodyA, bodyB)
	m.BodyA = bodyA
	m.BodyB = bodyB
	m.Contacts = contacts
	m.Restitution = restitution
	m.Friction = friction
	return m
}

// detectCircleCircle implements spec §4.4's circle-circle test. The normal
// it returns already points from A (circle a) toward B (circle b).
func detectCircleCircle(a, b *Circle) []Contact {
	pa, pb := a.Center(), b.Center()
	delta := pb.Sub(pa)
	distSq := delta.LengthSq()
	rSum := a.Radius + b.Radius

	if distSq >= rSum*rSum {
		return nil
	}

	dist := math.Sqrt(distSq)
	if dist < Epsilon {
		return []Contact{{
			Point:       pa,
			Normal:      Vector2D{1, 0},
			Penetration: rSum,
		}}
	}

	normal := delta.Scale(1 / dist)
	penetration := rSum - dist
	point := pa.Add(normal.Scale(a.Radius))

	return []Contact{{Point: point, Normal: normal, Penetration: penetration}}
}

// detectCircleRectangle implements spec §4.4's circle-rectangle test. The
// normal it returns points rectangle -> circle; dispatch callers in the A
// role must negate it (see detectCollision).
func detectCircleRectangle(circle *Circle, rect *Rectangle) []Contact {
	box := rect.AABB()
	pc := circle.Center()

	q := Vector2D{
		X: math.Max(box.Min.X, math.Min(pc.X, box.Max.X)),
		Y: math.Max(box.Min.Y, math.Min(pc.Y, box.Max.Y)),
	}

	o := pc.Sub(q)
	distSq := o.LengthSq()
	r := circle.Radius

	if distSq > r*r+Epsilon {
		return nil
	}

	dist := math.Sqrt(distSq)
	if dist < Epsilon {
		// Center inside the rectangle: push out through the nearest edge.
		left := pc.X - box.Min.X
		right := box.Max.X - pc.X
		bottom := pc.Y - box.Min.Y
		top := box.Max.Y - pc.Y

		minDist := left
		normal := Vector2D{-1, 0}
		if right < minDist {
			minDist, normal = right, Vector2D{1, 0}
		}
		if bottom < minDist {
			minDist, normal = bottom, Vector2D{0, -1}
		}
		if top < minDist {
			minDist, normal = top, Vector2D{0, 1}
		}

		return []Contact{{
			Point:       pc,
			Normal:      normal,
			Penetration: r + minDist,
		}}
	}

	normal := o.Scale(1 / dist)
	penetration := r - dist
	point := pc.Sub(normal.Scale(r))

	return []Contact{{Point: point, Normal: normal, Penetration: penetration}}
}

// detectRectangleRectangle implements spec §4.4's SAT rectangle-rectangle
// test. The normal points from a toward b.
func detectRectangleRectangle(a, b *Rectangle) []Contact {
	boxA, boxB := a.AABB(), b.AABB()

	overlapX := math.Min(boxA.Max.X, boxB.Max.X) - math.Max(boxA.Min.X, boxB.Min.X)
	overlapY := math.Min(boxA.Max.Y, boxB.Max.Y) - math.Max(boxA.Min.Y, boxB.Min.Y)

	if overlapX <= Epsilon || overlapY <= Epsilon {
		return nil
	}

	var normal Vector2D
	var penetration float64

	if overlapX < overlapY {
		penetration = overlapX
		if a.Center().X < b.Center().X {
			normal = Vector2D{1, 0}
		} else {
			normal = Vector2D{-1, 0}
		}
	} else {
		penetration = overlapY
		if a.Center().Y < b.Center().Y {
			normal = Vector2D{0, 1}
		} else {
			normal = Vector2D{0, -1}
		}
	}

	overlapMin := Vector2D{
		X: math.Max(boxA.Min.X, boxB.Min.X),
		Y: math.Max(boxA.Min.Y, boxB.Min.Y),
	}
	overlapMax := Vector2D{
		X: math.Min(boxA.Max.X, boxB.Max.X),
		Y: math.Min(boxA.Max.Y, boxB.Max.Y),
	}
	point := overlapMin.Lerp(overlapMax, 0.5)

	return []Contact{{Point: point, Normal: normal, Penetration: penetration}}
}
