package physics2d

import "math"

// ResolverConfig tunes the iterative constraint solver (spec §4.6). The
// zero value is not usable; use DefaultResolverConfig.
type ResolverConfig struct {
	// VelocityIterations is how many times the velocity phase runs per
	// fixed step over the whole manifold set.
	VelocityIterations int
	// PositionIterations is how many times the Baumgarte position-correction
	// phase runs per fixed step.
	PositionIterations int
	// PositionSlop is the penetration depth, in world units, below which no
	// position correction is applied — avoids jitter from resolving
	// vanishingly small overlaps.
	PositionSlop float64
	// PositionCorrectionPercent is the fraction of remaining penetration
	// (beyond PositionSlop) corrected per position-phase iteration.
	PositionCorrectionPercent float64
	// RestingVelocityThreshold is the relative normal speed below which
	// restitution is forced to zero, so resting contacts don't re-energize
	// themselves each step (spec §4.6 step 4).
	RestingVelocityThreshold float64
}

// DefaultResolverConfig matches spec §9's resolution of the position
// iteration count open question and spec §4.6's suggested constants.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		VelocityIterations:        6,
		PositionIterations:        4,
		PositionSlop:              0.01,
		PositionCorrectionPercent: 0.8,
		RestingVelocityThreshold:  0.5,
	}
}

// resolveManifolds runs the velocity phase followed by the position phase
// over every manifold, config.VelocityIterations and config.PositionIterations
// times respectively. Grounded on the teacher's arbiter.go PreStep/ApplyImpulse
// split, simplified here since this engine carries no rotation: each contact
// needs only a normal and tangent impulse, not the angular cross terms
// arbiter.go accumulates.
func resolveManifolds(manifolds []*Manifold, config ResolverConfig) {
	for i := 0; i < config.VelocityIterations; i++ {
		for _, m := range manifolds {
			resolveVelocity(m, config)
		}
	}
	for i := 0; i < config.PositionIterations; i++ {
		for _, m := range manifolds {
			resolvePosition(m, config)
		}
	}
}

// resolveVelocity applies the normal impulse (with restitution) and the
// Coulomb-clamped friction impulse for every contact in m (spec §4.6 steps
// 1-6). Bodies that are both static are skipped; per spec, such a pair
// never reaches the resolver anyway (canResolveCollision), but the guard
// keeps this function correct standalone.
func resolveVelocity(m *Manifold, config ResolverConfig) {
	a, b := m.BodyA, m.BodyB
	if a.IsStatic() && b.IsStatic() {
		return
	}

	invMassSum := a.InverseMass() + b.InverseMass()
	if invMassSum < Epsilon {
		return
	}

	for _, c := range m.Contacts {
		normal := c.Normal
		relVel := b.Velocity().Sub(a.Velocity())
		velAlongNormal := relVel.Dot(normal)

		// Separating or stationary along the normal: nothing to resolve.
		if velAlongNormal >= 0 {
			continue
		}

		restitution := m.Restitution
		if math.Abs(velAlongNormal) < config.RestingVelocityThreshold {
			restitution = 0
		}
		// A body intentionally walking into a static body suppresses bounce
		// on that contact (spec §4.6 step 3): its movement direction
		// opposing the normal cancels restitution for this contact only.
		// Scoped to exactly-one-static pairs, since a dynamic-vs-dynamic
		// contact with a nonzero movement vector is ordinary motion, not
		// wall-walking.
		if a.IsStatic() != b.IsStatic() {
			if a.MovementVector().Dot(normal) > 0 || b.MovementVector().Dot(normal.Neg()) > 0 {
				restitution = 0
			}
		}

		impulseMag := -(1 + restitution) * velAlongNormal / invMassSum
		impulse := normal.Scale(impulseMag)

		a.ApplyImpulse(impulse.Neg())
		b.ApplyImpulse(impulse)

		// Coulomb friction: clamp the tangential impulse to friction times
		// the normal impulse magnitude.
		relVel = b.Velocity().Sub(a.Velocity())
		tangent := relVel.Sub(normal.Scale(relVel.Dot(normal)))
		tangent = tangent.Normalize()
		if tangent.IsZero() {
			continue
		}

		velAlongTangent := relVel.Dot(tangent)
		frictionMag := -velAlongTangent / invMassSum
		maxFriction := m.Friction * impulseMag
		if frictionMag > maxFriction {
			frictionMag = maxFriction
		} else if frictionMag < -maxFriction {
			frictionMag = -maxFriction
		}

		frictionImpulse := tangent.Scale(frictionMag)
		a.ApplyImpulse(frictionImpulse.Neg())
		b.ApplyImpulse(frictionImpulse)
	}
}

// resolvePosition performs one Baumgarte-style positional correction pass
// over m's contacts: penetration beyond PositionSlop is pushed out by
// PositionCorrectionPercent, split between the two bodies in proportion to
// their inverse mass (spec §4.6 step 7). It re-detects the pair rather than
// trusting m.Contacts, since m was built once at the top of the step and
// every earlier position iteration (this one included, across other
// manifolds sharing a body) may have already moved a or b — a stacked chain
// only converges if each iteration sees how much penetration is actually
// left, not how much there was when the step started.
func resolvePosition(m *Manifold, config ResolverConfig) {
	a, b := m.BodyA, m.BodyB
	invMassSum := a.InverseMass() + b.InverseMass()
	if invMassSum < Epsilon {
		return
	}

	fresh := detectCollision(a, b)
	if fresh == nil {
		return
	}

	for _, c := range fresh.Contacts {
		correction := c.Penetration - config.PositionSlop
		if correction <= 0 {
			continue
		}
		correction *= config.PositionCorrectionPercent

		moveA := c.Normal.Scale(-correction * a.InverseMass() / invMassSum)
		moveB := c.Normal.Scale(correction * b.InverseMass() / invMassSum)

		if !a.IsStatic() {
			a.SetPosition(a.Position().Add(moveA))
		}
		if !b.IsStatic() {
			b.SetPosition(b.Position().Add(moveB))
		}
	}
}
