package physics2d

import "math"

// BodyID is a process-wide monotonically increasing identifier assigned at
// construction. Ids are never reused, even across Worlds or after a body
// is removed.
type BodyID uint64

var nextBodyID BodyID

// Layer is a bitset identifying which broad-phase layer(s) a body occupies.
type Layer uint32

// Body binds a Shape to physics: mass, velocity, material, and the
// layer/mask bits that govern who collides with whom. Position is not a
// separate field — it is the shape's center, read and written through it,
// so a body and its shape can never drift out of sync (spec invariant).
type Body struct {
	id    BodyID
	shape Shape

	velocity         Vector2D
	acceleration     Vector2D
	forceAccumulator Vector2D
	// movementVector is the body's intentional movement direction for this
	// frame (e.g. player input), zero or unit-length. The resolver uses it
	// to suppress bounce against a wall the body is intentionally walking
	// into (spec §4.6 step 3).
	movementVector Vector2D

	mass        float64
	inverseMass float64

	Material Material
	IsSensor bool

	Layer          Layer
	ResolutionMask Layer
	EventMask      Layer

	events EventEmitter

	UserData any
}

// NewBody constructs a dynamic body with the given finite, positive mass.
// Use NewStaticBody for an immovable body; constructing a dynamic body
// with mass=+Inf is an invariant violation and returns ErrInfiniteMass.
func NewBody(shape Shape, mass float64) (*Body, error) {
	if math.IsInf(mass, 1) {
		return nil, ErrInfiniteMass
	}
	if mass <= 0 || math.IsNaN(mass) {
		return nil, ErrInvalidMass
	}
	return newBody(shape, mass), nil
}

// NewStaticBody constructs an immovable body: inverseMass is always 0,
// velocity and acceleration are always zero, and integration is a no-op.
func NewStaticBody(shape Shape) *Body {
	return newBody(shape, math.Inf(1))
}

func newBody(shape Shape, mass float64) *Body {
	nextBodyID++
	b := &Body{
		id:             nextBodyID,
		shape:          shape,
		mass:           mass,
		Material:       DefaultMaterial,
		Layer:          1,
		ResolutionMask: ^Layer(0),
		EventMask:      ^Layer(0),
		events:         newEventEmitter(),
	}
	if math.IsInf(mass, 1) {
		b.inverseMass = 0
	} else {
		b.inverseMass = 1 / mass
	}
	return b
}

func (b *Body) ID() BodyID { return b.id }

func (b *Body) Shape() Shape { return b.shape }

// Position returns the shape's center. Position and Shape().Center() are
// always the same value.
func (b *Body) Position() Vector2D { return b.shape.Center() }

// SetPosition moves the body (and its shape, the same storage) to p
// directly, bypassing integration. Calling it on a static body is a no-op.
func (b *Body) SetPosition(p Vector2D) {
	if b.IsStatic() {
		return
	}
	b.shape.SetCenter(p)
}

func (b *Body) Velocity() Vector2D { return b.velocity }

// SetVelocity sets the body's velocity directly. A no-op on static bodies,
// which always have zero velocity (spec invariant).
func (b *Body) SetVelocity(v Vector2D) {
	if b.IsStatic() {
		return
	}
	b.velocity = v
}

func (b *Body) Mass() float64        { return b.mass }
func (b *Body) InverseMass() float64 { return b.inverseMass }

// SetMass sets the body's mass. A no-op if the body is static — per spec,
// setting finite mass on a static body has no effect; the only way to
// become dynamic again is to construct a new Body.
func (b *Body) SetMass(mass float64) error {
	if b.IsStatic() {
		return nil
	}
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 1) {
		return ErrInvalidMass
	}
	b.mass = mass
	b.inverseMass = 1 / mass
	return nil
}

// IsStatic reports whether this body has infinite mass.
func (b *Body) IsStatic() bool {
	return math.IsInf(b.mass, 1)
}

// SetStatic converts this body to a static body in place: mass becomes
// +Inf, inverseMass becomes 0, and velocity/acceleration are zeroed.
func (b *Body) SetStatic() {
	b.mass = math.Inf(1)
	b.inverseMass = 0
	b.velocity = Zero
	b.acceleration = Zero
	b.forceAccumulator = Zero
}

// CollisionMask is the bitwise OR of EventMask and ResolutionMask, used by
// the broad-phase's bilateral canDetectCollision filter (spec §4.7).
func (b *Body) CollisionMask() Layer {
	return b.EventMask | b.ResolutionMask
}

// ApplyForce accumulates a force to be applied over the next integration.
// No-op on static bodies.
func (b *Body) ApplyForce(force Vector2D) {
	if b.IsStatic() {
		return
	}
	b.forceAccumulator.AddIn(force)
}

// ApplyImpulse applies an instantaneous velocity change of impulse *
// inverseMass. No-op on static bodies.
func (b *Body) ApplyImpulse(impulse Vector2D) {
	if b.IsStatic() {
		return
	}
	b.velocity.AddIn(impulse.Scale(b.inverseMass))
}

// ApplyMovement sets the body's intentional movement direction for this
// frame (normalized internally; Zero if direction is Zero). The resolver
// reads this to avoid bouncing a body off a wall it is deliberately
// walking into. No-op on static bodies.
func (b *Body) ApplyMovement(direction Vector2D) {
	if b.IsStatic() {
		return
	}
	b.movementVector = direction.Normalize()
}

func (b *Body) MovementVector() Vector2D { return b.movementVector }

// GetAABB returns the current world-space AABB of the body's shape.
func (b *Body) GetAABB() AABB {
	return b.shape.AABB()
}

// GetKineticEnergy returns 0.5 * mass * |velocity|². Static bodies always
// report zero (computed directly rather than via the ill-defined
// 0.5*Inf*0, which would be NaN in IEEE 754).
func (b *Body) GetKineticEnergy() float64 {
	if b.IsStatic() {
		return 0
	}
	return 0.5 * b.mass * b.velocity.LengthSq()
}

// On registers a handler for one of this body's collision event types.
func (b *Body) On(eventType CollisionEventType, handler EventHandler) {
	b.events.On(eventType, handler)
}

// Off removes all handlers registered for eventType on this body.
func (b *Body) Off(eventType CollisionEventType) {
	b.events.Off(eventType)
}

// RemoveAllListeners clears every handler registered on this body.
func (b *Body) RemoveAllListeners() {
	b.events.RemoveAllListeners()
}

// integrate advances the body's velocity and position by dt, applying
// gravity (really a mass-weighted velocity damping coefficient — see
// WorldConfig.Damping's doc comment) and the accumulated force. Static bodies
// are untouched.
func (b *Body) integrate(dt, damping float64) {
	if b.IsStatic() {
		return
	}

	b.acceleration = b.forceAccumulator.Scale(b.inverseMass)
	b.velocity.AddIn(b.acceleration.Scale(dt))

	dragFactor := 1 - damping*b.Material.Friction*b.mass*dt
	if dragFactor < 0 {
		dragFactor = 0
	}
	b.velocity.ScaleIn(dragFactor)

	if b.velocity.LengthSq() < EpsilonSq {
		b.velocity = Zero
	}

	newPos := b.Position().Add(b.velocity.Scale(dt))
	b.shape.SetCenter(newPos)
}

// clearFrameState zeroes the force accumulator and movement vector at the
// end of a fixed step, per spec §4.8 step 9.
func (b *Body) clearFrameState() {
	b.forceAccumulator = Zero
	b.movementVector = Zero
}
