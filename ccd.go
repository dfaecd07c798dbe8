package physics2d

import "math"

// needsSweptTest reports whether body is moving fast enough this sub-step
// to risk tunneling through a thin static: its displacement must exceed
// half the shortest side of its own AABB (spec §4.5).
func needsSweptTest(body *Body, dt float64) bool {
	return body.Velocity().Length()*dt > 0.5*body.GetAABB().MinDimension()
}

// toiResult is a time-of-impact hit: toi is the fraction of dt (in (0,1])
// at which the two bodies first touch, and normal points from A toward B
// at that instant.
type toiResult struct {
	Hit    bool
	TOI    float64
	Normal Vector2D
}

// sweptTest computes the time of impact for a candidate pair over dt,
// dispatching on shape kind the same way the narrow-phase does. The
// result, when Hit, promises that advancing both bodies by TOI*dt puts
// them at (near) exact surface contact (spec §4.5).
func sweptTest(bodyA, bodyB *Body, dt float64) toiResult {
	kindA, kindB := bodyA.Shape().Kind(), bodyB.Shape().Kind()

	switch {
	case kindA == ShapeCircle && kindB == ShapeCircle:
		return sweptCircleCircle(bodyA, bodyB, dt)
	case kindA == ShapeRectangle && kindB == ShapeRectangle:
		return sweptRectangleRectangle(bodyA, bodyB, dt)
	case kindA == ShapeCircle && kindB == ShapeRectangle:
		return sweptCircleRectangle(bodyA, bodyB, dt)
	case kindA == ShapeRectangle && kindB == ShapeCircle:
		result := sweptCircleRectangle(bodyB, bodyA, dt)
		result.Normal = result.Normal.Neg()
		return result
	default:
		return toiResult{}
	}
}

// sweptCircleCircle solves spec §4.5's quadratic: with C the initial
// center difference (B-A) and D the relative displacement over dt, we
// need the smallest s in [0,1] such that |C + D*s|² = rSum².
func sweptCircleCircle(bodyA, bodyB *Body, dt float64) toiResult {
	circleA := bodyA.Shape().(*Circle)
	circleB := bodyB.Shape().(*Circle)

	c := circleB.Center().Sub(circleA.Center())
	d := bodyB.Velocity().Sub(bodyA.Velocity()).Scale(dt)
	rSum := circleA.Radius + circleB.Radius

	a := d.LengthSq()
	if a < EpsilonSq {
		return toiResult{}
	}
	b := 2 * c.Dot(d)
	cc := c.LengthSq() - rSum*rSum

	disc := b*b - 4*a*cc
	if disc < 0 {
		return toiResult{}
	}

	sqrtDisc := math.Sqrt(disc)
	s1 := (-b - sqrtDisc) / (2 * a)
	s2 := (-b + sqrtDisc) / (2 * a)
	if s1 > s2 {
		s1, s2 = s2, s1
	}

	s := s1
	if s < 0 {
		s = s2
	}
	if s < 0 || s > 1 {
		return toiResult{}
	}

	posDiff := c.Add(d.Scale(s))
	normal := posDiff.Normalize()
	if normal.IsZero() {
		normal = Vector2D{1, 0}
	}

	return toiResult{Hit: true, TOI: s, Normal: normal}
}

// sweptCircleRectangle reduces to a raycast of the circle's center against
// the rectangle's AABB expanded by the circle's radius (Minkowski sum),
// using the relative velocity so a moving rectangle is correctly accounted
// for (spec §4.5). The returned normal points circleBody -> rectBody.
func sweptCircleRectangle(circleBody, rectBody *Body, dt float64) toiResult {
	circle := circleBody.Shape().(*Circle)
	rect := rectBody.Shape().(*Rectangle)

	box := rect.AABB().Expand(circle.Radius)
	relVel := circleBody.Velocity().Sub(rectBody.Velocity())
	from := circle.Center()
	to := from.Add(relVel.Scale(dt))

	result := box.segmentQueryBox(from, to)
	if !result.Hit || result.T <= 0 || result.T > 1 {
		return toiResult{}
	}
	return toiResult{Hit: true, TOI: result.T, Normal: result.Normal.Neg()}
}

// sweptRectangleRectangle reduces to a raycast of B's center against A's
// AABB expanded by B's half-extents (Minkowski sum), using relative
// velocity (spec §4.5). The returned normal points A -> B.
func sweptRectangleRectangle(bodyA, bodyB *Body, dt float64) toiResult {
	rectA := bodyA.Shape().(*Rectangle)
	rectB := bodyB.Shape().(*Rectangle)

	box := rectA.AABB().ExpandByExtents(rectB.Width*0.5, rectB.Height*0.5)
	relVel := bodyB.Velocity().Sub(bodyA.Velocity())
	from := rectB.Center()
	to := from.Add(relVel.Scale(dt))

	result := box.segmentQueryBox(from, to)
	if !result.Hit || result.T <= 0 || result.T > 1 {
		return toiResult{}
	}
	return toiResult{Hit: true, TOI: result.T, Normal: result.Normal}
}
