package physics2d

// CollisionEventType identifies where a pair sits in the per-pair collision
// lifecycle: a pair transitions absent -> start -> active* -> end -> absent.
type CollisionEventType int

const (
	CollisionStart CollisionEventType = iota
	CollisionActive
	CollisionEnd
)

func (t CollisionEventType) String() string {
	switch t {
	case CollisionStart:
		return "collision-start"
	case CollisionActive:
		return "collision-active"
	case CollisionEnd:
		return "collision-end"
	default:
		return "unknown"
	}
}

// CollisionEvent is the payload delivered to both world-wide and per-body
// handlers. Manifold is nil on CollisionEnd events: by the time a pair is
// known to have ended, the contact that described it has dissolved.
type CollisionEvent struct {
	BodyA, BodyB *Body
	IsSensor     bool
	Manifold     *Manifold
}

// EventHandler receives a CollisionEvent. Bodies it adds to or removes from
// the World that dispatched it are queued and applied when the current
// fixed sub-step finishes (see World.AddBody).
type EventHandler func(event CollisionEvent)

// EventEmitter is a minimal typed pub/sub keyed by CollisionEventType,
// shared by World (world-wide listeners) and Body (per-body listeners).
// It is not safe for concurrent use — the engine runs step() synchronously
// on a single goroutine, so no locking is needed here, unlike a
// general-purpose event bus.
type EventEmitter struct {
	handlers map[CollisionEventType][]EventHandler
}

func newEventEmitter() EventEmitter {
	return EventEmitter{handlers: make(map[CollisionEventType][]EventHandler)}
}

// On registers handler for eventType.
func (e *EventEmitter) On(eventType CollisionEventType, handler EventHandler) {
	e.handlers[eventType] = append(e.handlers[eventType], handler)
}

// Off removes all handlers registered for eventType.
func (e *EventEmitter) Off(eventType CollisionEventType) {
	delete(e.handlers, eventType)
}

// RemoveAllListeners clears every handler for every event type.
func (e *EventEmitter) RemoveAllListeners() {
	e.handlers = make(map[CollisionEventType][]EventHandler)
}

// HasListeners reports whether any handler is registered for eventType,
// letting callers skip building an event payload when nobody is listening.
func (e *EventEmitter) HasListeners(eventType CollisionEventType) bool {
	return len(e.handlers[eventType]) > 0
}

func (e *EventEmitter) emit(eventType CollisionEventType, event CollisionEvent) {
	for _, handler := range e.handlers[eventType] {
		handler(event)
	}
}

// canDetectCollision is the bilateral broad-phase filter (spec §4.7): both
// bodies must be willing to notice the other, via either their event mask
// or their resolution mask. Static-static pairs never detect, since
// neither the event nor resolution outcome of such a pair is ever useful.
func canDetectCollision(a, b *Body) bool {
	if a.IsStatic() && b.IsStatic() {
		return false
	}
	return a.CollisionMask()&b.Layer != 0 && b.CollisionMask()&a.Layer != 0
}

// canResolveCollision is the bilateral filter gating which manifolds reach
// the solver: neither body may be a sensor, and both resolution masks must
// admit the other's layer.
func canResolveCollision(a, b *Body) bool {
	if a.IsSensor || b.IsSensor {
		return false
	}
	return a.ResolutionMask&b.Layer != 0 && b.ResolutionMask&a.Layer != 0
}

// canEmitEventWith is the unilateral event filter: sensors always qualify
// (spec §4.7, §9 — an event mask on a sensor has no effect); otherwise
// either body's event mask admitting the other's layer is enough.
func canEmitEventWith(a, b *Body) bool {
	if a.IsSensor || b.IsSensor {
		return true
	}
	return a.EventMask&b.Layer != 0 || b.EventMask&a.Layer != 0
}
