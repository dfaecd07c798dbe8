package physics2d

import "math"

// These are the boolean, manifold-free overlap tests used for region
// queries (World.QueryOverlapsWithShape/Body) where only a yes/no answer
// is needed and computing a full contact manifold would be wasted work.
// The narrow-phase detectors in narrowphase.go perform the equivalent but
// heavier computation when a manifold is required.

func overlapCircleCircle(a, b *Circle) bool {
	rSum := a.Radius + b.Radius
	return a.center.DistanceSq(b.center) < rSum*rSum
}

func overlapCircleRectangle(c *Circle, r *Rectangle) bool {
	box := r.AABB()
	clamped := Vector2D{
		X: math.Max(box.Min.X, math.Min(c.center.X, box.Max.X)),
		Y: math.Max(box.Min.Y, math.Min(c.center.Y, box.Max.Y)),
	}
	distSq := c.center.DistanceSq(clamped)
	return distSq <= c.Radius*c.Radius+EpsilonSq
}

func overlapRectangleRectangle(a, b *Rectangle) bool {
	boxA, boxB := a.AABB(), b.AABB()
	overlapX := math.Min(boxA.Max.X, boxB.Max.X) - math.Max(boxA.Min.X, boxB.Min.X)
	overlapY := math.Min(boxA.Max.Y, boxB.Max.Y) - math.Max(boxA.Min.Y, boxB.Min.Y)
	return overlapX > Epsilon && overlapY > Epsilon
}
