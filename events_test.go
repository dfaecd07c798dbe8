package physics2d

import "testing"

func TestEventEmitterOnEmitOff(t *testing.T) {
	emitter := newEventEmitter()
	var got []CollisionEventType
	emitter.On(CollisionStart, func(e CollisionEvent) {
		got = append(got, CollisionStart)
	})

	emitter.emit(CollisionStart, CollisionEvent{})
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}

	emitter.Off(CollisionStart)
	emitter.emit(CollisionStart, CollisionEvent{})
	if len(got) != 1 {
		t.Fatalf("got %d events after Off, want still 1", len(got))
	}
}

func TestEventEmitterHasListeners(t *testing.T) {
	emitter := newEventEmitter()
	if emitter.HasListeners(CollisionActive) {
		t.Fatalf("expected no listeners initially")
	}
	emitter.On(CollisionActive, func(e CollisionEvent) {})
	if !emitter.HasListeners(CollisionActive) {
		t.Fatalf("expected a listener after On")
	}
}

func TestCanDetectCollisionExcludesStaticStatic(t *testing.T) {
	a := NewStaticBody(NewCircle(Zero, 1))
	b := NewStaticBody(NewCircle(Zero, 1))
	if canDetectCollision(a, b) {
		t.Fatalf("static-static pair should never be detected")
	}
}

func TestCanDetectCollisionHonorsLayerMask(t *testing.T) {
	a, _ := NewBody(NewCircle(Zero, 1), 1)
	b, _ := NewBody(NewCircle(Zero, 1), 1)
	a.Layer, b.Layer = 0b001, 0b010
	a.EventMask, a.ResolutionMask = 0b010, 0
	b.EventMask, b.ResolutionMask = 0b001, 0

	if !canDetectCollision(a, b) {
		t.Fatalf("expected detection: masks admit each other's layer")
	}

	a.EventMask, a.ResolutionMask = 0, 0
	if canDetectCollision(a, b) {
		t.Fatalf("expected no detection once A's masks exclude B's layer")
	}
}

func TestCanResolveCollisionExcludesSensors(t *testing.T) {
	a, _ := NewBody(NewCircle(Zero, 1), 1)
	b, _ := NewBody(NewCircle(Zero, 1), 1)
	a.IsSensor = true
	if canResolveCollision(a, b) {
		t.Fatalf("sensor pairs must never resolve")
	}
}

func TestCanEmitEventWithSensorAlwaysTrue(t *testing.T) {
	a, _ := NewBody(NewCircle(Zero, 1), 1)
	b, _ := NewBody(NewCircle(Zero, 1), 1)
	a.IsSensor = true
	a.EventMask = 0
	b.EventMask = 0

	if !canEmitEventWith(a, b) {
		t.Fatalf("sensor pair must always be allowed to emit, regardless of event mask")
	}
}
