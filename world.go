package physics2d

import (
	"sort"
	"sync"
)

// WorldConfig configures a World at construction. Use DefaultWorldConfig
// and override only the fields that matter to the caller.
type WorldConfig struct {
	// FixedTimestep is the duration, in seconds, of one simulation sub-step.
	// Step subdivides whatever dt it is given into FixedTimestep-sized
	// slices via an accumulator (spec §4.1).
	FixedTimestep float64
	// MaxSubSteps bounds how many fixed steps a single Step call will run,
	// guarding against the spiral of death when dt is abnormally large
	// (e.g. after a debugger pause).
	MaxSubSteps int
	// CellSize is the broad-phase spatial hash's cell size (spec §4.3).
	CellSize float64
	// Damping is a mass- and friction-weighted velocity drag coefficient
	// applied every sub-step, named after the teacher's Space.Damping
	// field. It is not gravitational acceleration — see Body.integrate.
	Damping float64
	Resolver ResolverConfig
}

// DefaultWorldConfig returns a WorldConfig with the defaults spec §9 settles
// on: 120Hz fixed step, spiral-of-death guard at 8 sub-steps, and the
// resolver's default tuning.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		FixedTimestep: 1.0 / 120.0,
		MaxSubSteps:   8,
		CellSize:      64,
		Damping:       0,
		Resolver:      DefaultResolverConfig(),
	}
}

func (c WorldConfig) validate() error {
	if c.FixedTimestep <= 0 {
		return &ConfigError{Field: "FixedTimestep", Reason: "must be positive"}
	}
	if c.MaxSubSteps <= 0 {
		return &ConfigError{Field: "MaxSubSteps", Reason: "must be positive"}
	}
	if c.CellSize <= 0 {
		return &ConfigError{Field: "CellSize", Reason: "must be positive"}
	}
	if c.Resolver.VelocityIterations <= 0 {
		return &ConfigError{Field: "Resolver.VelocityIterations", Reason: "must be positive"}
	}
	if c.Resolver.PositionIterations <= 0 {
		return &ConfigError{Field: "Resolver.PositionIterations", Reason: "must be positive"}
	}
	return nil
}

// World owns a set of Bodies, advances them on a fixed sub-step
// accumulator, and reports collisions through a start/active/end event
// lifecycle (package doc).
type World struct {
	config WorldConfig

	bodies map[BodyID]*Body
	hash   *SpatialHash

	accumulator float64

	// activePairs is the set of pairKeys that produced a manifold on the
	// previous fixedStep, used to diff against the current step's set and
	// derive start/active/end transitions (spec §4.7).
	activePairs map[pairKey]*Manifold

	events EventEmitter

	manifoldPool sync.Pool

	pendingAdds    []*Body
	pendingRemoves []BodyID
	stepping       bool
}

// NewWorld constructs a World from config, rejecting an invalid config.
func NewWorld(config WorldConfig) (*World, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &World{
		config:      config,
		bodies:      make(map[BodyID]*Body),
		hash:        NewSpatialHash(config.CellSize),
		activePairs: make(map[pairKey]*Manifold),
		events:      newEventEmitter(),
		manifoldPool: sync.Pool{
			New: func() any { return new(Manifold) },
		},
	}, nil
}

// AddBody registers body with the World. If called while a Step is in
// progress (e.g. from a collision handler), the add is deferred until the
// current fixed sub-step finishes (spec §4.10).
func (w *World) AddBody(body *Body) {
	if w.stepping {
		w.pendingAdds = append(w.pendingAdds, body)
		return
	}
	w.addBodyNow(body)
}

func (w *World) addBodyNow(body *Body) {
	w.bodies[body.ID()] = body
	w.hash.Insert(body)
}

// RemoveBody unregisters the body with id, if present. Deferred the same
// way as AddBody when called mid-step.
func (w *World) RemoveBody(id BodyID) {
	if w.stepping {
		w.pendingRemoves = append(w.pendingRemoves, id)
		return
	}
	w.removeBodyNow(id)
}

func (w *World) removeBodyNow(id BodyID) {
	body, ok := w.bodies[id]
	if !ok {
		return
	}
	w.hash.Remove(body)
	delete(w.bodies, id)
}

func (w *World) drainDeferred() {
	for _, body := range w.pendingAdds {
		w.addBodyNow(body)
	}
	w.pendingAdds = nil
	for _, id := range w.pendingRemoves {
		w.removeBodyNow(id)
	}
	w.pendingRemoves = nil
}

func (w *World) GetBody(id BodyID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// GetBodies returns every body currently registered, ordered by id so
// callers get deterministic iteration.
func (w *World) GetBodies() []*Body {
	result := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// ClearBodies removes every body from the World immediately.
func (w *World) ClearBodies() {
	w.bodies = make(map[BodyID]*Body)
	w.hash = NewSpatialHash(w.config.CellSize)
	w.activePairs = make(map[pairKey]*Manifold)
}

// Step advances the simulation by dt seconds, running as many fixed
// sub-steps as the accumulator demands (spec §4.1). If dt is large enough
// to require more than config.MaxSubSteps sub-steps, the excess is
// dropped rather than run, so a long pause doesn't spiral into an
// ever-growing backlog of work.
func (w *World) Step(dt float64) {
	w.accumulator += dt

	steps := 0
	for w.accumulator >= w.config.FixedTimestep && steps < w.config.MaxSubSteps {
		w.fixedStep(w.config.FixedTimestep)
		w.accumulator -= w.config.FixedTimestep
		steps++
	}
	if steps == w.config.MaxSubSteps {
		w.accumulator = 0
	}
}

// fixedStep runs one full sub-step in the order spec §4.8 mandates: a CCD
// pass that only partially advances bodies at risk of tunneling, broad +
// narrow phase detection against those (mostly still pre-step) positions,
// event dispatch, constraint resolution, and only then does every body
// finish integrating the portion of dt it hasn't consumed yet — so the
// solver always sees and corrects the positions bodies were actually at
// when they collided, not positions already advanced past the collision.
// Grounded on the teacher's Space.Step, adapted from its sleeping/
// constraint-graph machinery (not carried — no sleeping, no joints in this
// engine) to this engine's CCD and event-lifecycle passes.
func (w *World) fixedStep(dt float64) {
	w.stepping = true

	remaining := make(map[BodyID]float64, len(w.bodies))
	for id := range w.bodies {
		remaining[id] = dt
	}

	w.ccdAdvance(dt, remaining)

	for _, body := range w.bodies {
		w.hash.Update(body)
	}

	pairs := w.hash.GetPairs()
	currentManifolds := make(map[pairKey]*Manifold, len(pairs))

	for _, pair := range pairs {
		manifold := detectCollisionInto(w.manifoldPool.Get().(*Manifold), pair.A, pair.B)
		if manifold == nil {
			continue
		}
		currentManifolds[makePairKey(pair.A.ID(), pair.B.ID())] = manifold
	}

	w.dispatchEvents(currentManifolds)

	var resolvable []*Manifold
	for _, manifold := range currentManifolds {
		if canResolveCollision(manifold.BodyA, manifold.BodyB) {
			resolvable = append(resolvable, manifold)
		}
	}
	resolveManifolds(resolvable, w.config.Resolver)

	// Finish integration: every body advances by whatever of dt it has not
	// already consumed, now that its velocity reflects the solver's response
	// (spec §4.8). A body CCD left untouched still holds its full dt here and
	// gets damping applied for the first time; a body CCD already
	// partially advanced gets the remainder with damping disabled, since
	// damping was already applied during that earlier partial move.
	for id, body := range w.bodies {
		if body.IsStatic() {
			continue
		}
		r := remaining[id]
		if r <= 0 {
			continue
		}
		damping := w.config.Damping
		if r < dt {
			damping = 0
		}
		body.integrate(r, damping)
	}

	for _, body := range w.bodies {
		body.clearFrameState()
	}
	for _, body := range w.bodies {
		w.hash.Update(body)
	}

	// w.activePairs held last step's manifolds purely so this step could
	// diff against their keys and read BodyA/BodyB for CollisionEnd events;
	// now that the diff is done, return them to the pool.
	for _, manifold := range w.activePairs {
		w.manifoldPool.Put(manifold)
	}
	w.activePairs = currentManifolds
	w.stepping = false
	w.drainDeferred()
}

// ccdAdvance partially advances only those bodies moving fast enough to
// risk tunneling (needsSweptTest): it finds the earliest time of impact
// against their broad-phase neighbors and integrates just that far, leaving
// the rest of dt in remaining for fixedStep's post-resolve finishing pass.
// Every other body is left untouched at its pre-step position, so
// narrow-phase detection runs against the positions bodies actually
// collided at, not positions already advanced past the collision
// (spec §4.5, §4.8).
func (w *World) ccdAdvance(dt float64, remaining map[BodyID]float64) {
	for _, body := range w.bodies {
		if body.IsStatic() || !needsSweptTest(body, dt) {
			continue
		}

		allowedDt := dt
		neighbors := w.hash.QueryRegion(body.GetAABB().Expand(body.Velocity().Length() * dt))
		for _, other := range neighbors {
			if other.ID() == body.ID() || !canDetectCollision(body, other) {
				continue
			}
			result := sweptTest(body, other, dt)
			if result.Hit && result.TOI*dt < allowedDt {
				allowedDt = result.TOI * dt
			}
		}

		body.integrate(allowedDt, w.config.Damping)
		remaining[body.ID()] = dt - allowedDt
	}
}

// dispatchEvents diffs currentManifolds against w.activePairs to derive the
// start/active/end transition for every pair, then emits world-wide
// handlers before per-body handlers for each (spec §4.7, §9).
func (w *World) dispatchEvents(currentManifolds map[pairKey]*Manifold) {
	for key, manifold := range currentManifolds {
		if !canEmitEventWith(manifold.BodyA, manifold.BodyB) {
			continue
		}
		eventType := CollisionActive
		if _, wasActive := w.activePairs[key]; !wasActive {
			eventType = CollisionStart
		}
		w.emit(eventType, manifold.BodyA, manifold.BodyB, manifold)
	}

	for key, manifold := range w.activePairs {
		if _, stillActive := currentManifolds[key]; stillActive {
			continue
		}
		if !canEmitEventWith(manifold.BodyA, manifold.BodyB) {
			continue
		}
		w.emit(CollisionEnd, manifold.BodyA, manifold.BodyB, nil)
	}
}

func (w *World) emit(eventType CollisionEventType, a, b *Body, manifold *Manifold) {
	isSensor := a.IsSensor || b.IsSensor
	event := CollisionEvent{BodyA: a, BodyB: b, IsSensor: isSensor, Manifold: manifold}
	w.events.emit(eventType, event)
	a.events.emit(eventType, event)
	b.events.emit(eventType, event)
}

// On registers a world-wide handler for eventType.
func (w *World) On(eventType CollisionEventType, handler EventHandler) {
	w.events.On(eventType, handler)
}

func (w *World) Off(eventType CollisionEventType) {
	w.events.Off(eventType)
}

func (w *World) RemoveAllListeners() {
	w.events.RemoveAllListeners()
}

// QueryPoint returns every body whose shape contains point.
func (w *World) QueryPoint(point Vector2D) []*Body {
	var result []*Body
	candidates := w.hash.QueryRegion(AABB{Min: point, Max: point})
	for _, b := range candidates {
		if b.Shape().Contains(point) {
			result = append(result, b)
		}
	}
	return result
}

// QueryRegion returns every body whose AABB overlaps region.
func (w *World) QueryRegion(region AABB) []*Body {
	var result []*Body
	for _, b := range w.hash.QueryRegion(region) {
		if b.GetAABB().Overlaps(region) {
			result = append(result, b)
		}
	}
	return result
}

// QueryOverlapsWithShape returns every body whose shape overlaps shape.
func (w *World) QueryOverlapsWithShape(shape Shape) []*Body {
	var result []*Body
	for _, b := range w.hash.QueryRegion(shape.AABB()) {
		if b.Shape().Overlaps(shape) {
			result = append(result, b)
		}
	}
	return result
}

// QueryOverlapsWithBody returns every body (other than body itself) whose
// shape overlaps body's shape.
func (w *World) QueryOverlapsWithBody(body *Body) []*Body {
	var result []*Body
	for _, other := range w.QueryOverlapsWithShape(body.Shape()) {
		if other.ID() != body.ID() {
			result = append(result, other)
		}
	}
	return result
}
