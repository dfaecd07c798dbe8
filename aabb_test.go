package physics2d

import "testing"

func TestAABBOverlaps(t *testing.T) {
	a := AABBFromCenterSize(Vector2D{X: 0, Y: 0}, 10, 10)
	b := AABBFromCenterSize(Vector2D{X: 5, Y: 0}, 10, 10)
	c := AABBFromCenterSize(Vector2D{X: 100, Y: 0}, 10, 10)

	if !a.Overlaps(b) {
		t.Fatalf("expected a to overlap b")
	}
	if a.Overlaps(c) {
		t.Fatalf("expected a not to overlap c")
	}
}

func TestAABBContains(t *testing.T) {
	a := AABBFromCenterSize(Vector2D{X: 0, Y: 0}, 10, 10)
	if !a.Contains(Vector2D{X: 5, Y: 5}) {
		t.Fatalf("expected boundary point contained")
	}
	if a.Contains(Vector2D{X: 6, Y: 0}) {
		t.Fatalf("expected point outside box not contained")
	}
}

func TestAABBMerge(t *testing.T) {
	a := NewAABB(Vector2D{X: 0, Y: 0}, Vector2D{X: 1, Y: 1})
	b := NewAABB(Vector2D{X: 5, Y: 5}, Vector2D{X: 6, Y: 6})
	m := a.Merge(b)
	if !vecAlmostEqual(m.Min, Vector2D{X: 0, Y: 0}, 1e-9) || !vecAlmostEqual(m.Max, Vector2D{X: 6, Y: 6}, 1e-9) {
		t.Fatalf("Merge = %v, want min(0,0) max(6,6)", m)
	}
}

func TestAABBSegmentQueryHit(t *testing.T) {
	box := AABBFromCenterSize(Vector2D{X: 100, Y: 0}, 20, 200)
	result := box.SegmentQuery(Vector2D{X: 0, Y: 0}, Vector2D{X: 200, Y: 0}, 0)
	if !result.Hit {
		t.Fatalf("expected a hit")
	}
	if !almostEqual(result.Normal.X, -1, 1e-9) {
		t.Fatalf("Normal = %v, want (-1,0)", result.Normal)
	}
}

func TestAABBSegmentQueryMiss(t *testing.T) {
	box := AABBFromCenterSize(Vector2D{X: 100, Y: 100}, 20, 20)
	result := box.SegmentQuery(Vector2D{X: 0, Y: 0}, Vector2D{X: 200, Y: 0}, 0)
	if result.Hit {
		t.Fatalf("expected a miss, got %v", result)
	}
}

func TestAABBSegmentQueryWithRadius(t *testing.T) {
	box := AABBFromCenterSize(Vector2D{X: 100, Y: 0}, 20, 20)
	withoutRadius := box.SegmentQuery(Vector2D{X: 0, Y: 15}, Vector2D{X: 200, Y: 15}, 0)
	withRadius := box.SegmentQuery(Vector2D{X: 0, Y: 15}, Vector2D{X: 200, Y: 15}, 10)
	if withoutRadius.Hit {
		t.Fatalf("expected miss without radius expansion")
	}
	if !withRadius.Hit {
		t.Fatalf("expected hit once expanded by radius")
	}
}
