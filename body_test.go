package physics2d

import (
	"errors"
	"math"
	"testing"
)

func TestNewBodyRejectsInfiniteMass(t *testing.T) {
	shape := NewCircle(Zero, 5)
	_, err := NewBody(shape, math.Inf(1))
	if !errors.Is(err, ErrInfiniteMass) {
		t.Fatalf("err = %v, want ErrInfiniteMass", err)
	}
}

func TestNewBodyRejectsNonPositiveMass(t *testing.T) {
	shape := NewCircle(Zero, 5)
	if _, err := NewBody(shape, 0); !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("err = %v, want ErrInvalidMass", err)
	}
	if _, err := NewBody(shape, -1); !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("err = %v, want ErrInvalidMass", err)
	}
}

func TestBodyPositionIsShapeCenter(t *testing.T) {
	shape := NewCircle(Vector2D{X: 1, Y: 2}, 5)
	body, err := NewBody(shape, 1)
	if err != nil {
		t.Fatal(err)
	}
	body.SetPosition(Vector2D{X: 9, Y: 9})
	if body.Position() != shape.Center() {
		t.Fatalf("body.Position() = %v, shape.Center() = %v, want equal", body.Position(), shape.Center())
	}
}

func TestStaticBodyImmovable(t *testing.T) {
	shape := NewCircle(Vector2D{X: 0, Y: 0}, 5)
	body := NewStaticBody(shape)

	body.SetVelocity(Vector2D{X: 100, Y: 0})
	body.ApplyForce(Vector2D{X: 1000, Y: 0})
	body.ApplyImpulse(Vector2D{X: 1000, Y: 0})
	body.integrate(1, 0)

	if body.Velocity() != Zero {
		t.Fatalf("static body velocity = %v, want Zero", body.Velocity())
	}
	if body.Position() != (Vector2D{X: 0, Y: 0}) {
		t.Fatalf("static body position = %v, want unchanged", body.Position())
	}
}

func TestStaticBodySetPositionNoOp(t *testing.T) {
	shape := NewCircle(Vector2D{X: 0, Y: 0}, 5)
	body := NewStaticBody(shape)
	body.SetPosition(Vector2D{X: 50, Y: 50})
	if body.Position() != (Vector2D{X: 0, Y: 0}) {
		t.Fatalf("SetPosition on static body moved it to %v", body.Position())
	}
}

func TestBodyKineticEnergy(t *testing.T) {
	body, err := NewBody(NewCircle(Zero, 1), 2)
	if err != nil {
		t.Fatal(err)
	}
	body.SetVelocity(Vector2D{X: 3, Y: 4})
	got := body.GetKineticEnergy()
	want := 0.5 * 2 * 25.0
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("GetKineticEnergy = %v, want %v", got, want)
	}
}

func TestStaticBodyKineticEnergyIsZero(t *testing.T) {
	body := NewStaticBody(NewCircle(Zero, 1))
	if got := body.GetKineticEnergy(); got != 0 {
		t.Fatalf("static kinetic energy = %v, want 0", got)
	}
}

func TestBodyCollisionMaskIsUnionOfEventAndResolutionMask(t *testing.T) {
	body := NewStaticBody(NewCircle(Zero, 1))
	body.EventMask = 0b01
	body.ResolutionMask = 0b10
	if got := body.CollisionMask(); got != 0b11 {
		t.Fatalf("CollisionMask = %b, want 0b11", got)
	}
}
