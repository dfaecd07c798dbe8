package physics2d

import "testing"

func TestSpatialHashGetPairsDeduplicates(t *testing.T) {
	hash := NewSpatialHash(10)
	a, _ := NewBody(NewCircle(Vector2D{X: 0, Y: 0}, 4), 1)
	b, _ := NewBody(NewCircle(Vector2D{X: 3, Y: 3}, 4), 1)
	hash.Insert(a)
	hash.Insert(b)

	pairs := hash.GetPairs()
	count := 0
	for _, p := range pairs {
		if (p.A.ID() == a.ID() && p.B.ID() == b.ID()) || (p.A.ID() == b.ID() && p.B.ID() == a.ID()) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("pair (a,b) returned %d times, want exactly 1", count)
	}
}

func TestSpatialHashGetPairsExcludesStaticStatic(t *testing.T) {
	hash := NewSpatialHash(10)
	a := NewStaticBody(NewCircle(Vector2D{X: 0, Y: 0}, 4))
	b := NewStaticBody(NewCircle(Vector2D{X: 1, Y: 1}, 4))
	hash.Insert(a)
	hash.Insert(b)

	if pairs := hash.GetPairs(); len(pairs) != 0 {
		t.Fatalf("static-static pairs = %d, want 0", len(pairs))
	}
}

func TestSpatialHashRemovePrunesEmptyCells(t *testing.T) {
	hash := NewSpatialHash(10)
	a, _ := NewBody(NewCircle(Vector2D{X: 0, Y: 0}, 4), 1)
	hash.Insert(a)
	hash.Remove(a)

	if len(hash.grid) != 0 {
		t.Fatalf("grid has %d cells after removing the only body, want 0", len(hash.grid))
	}
	if len(hash.reverse) != 0 {
		t.Fatalf("reverse index has %d entries after removal, want 0", len(hash.reverse))
	}
}

func TestSpatialHashUpdateTracksMovement(t *testing.T) {
	hash := NewSpatialHash(10)
	a, _ := NewBody(NewCircle(Vector2D{X: 0, Y: 0}, 1), 1)
	hash.Insert(a)

	a.SetPosition(Vector2D{X: 1000, Y: 1000})
	hash.Update(a)

	region := hash.QueryRegion(AABBFromCenterSize(Vector2D{X: 0, Y: 0}, 10, 10))
	for _, b := range region {
		if b.ID() == a.ID() {
			t.Fatalf("body still found at stale cell after Update")
		}
	}
}

func TestSpatialHashQueryRegionFindsOverlapping(t *testing.T) {
	hash := NewSpatialHash(10)
	a, _ := NewBody(NewCircle(Vector2D{X: 0, Y: 0}, 1), 1)
	hash.Insert(a)

	region := hash.QueryRegion(AABBFromCenterSize(Vector2D{X: 0, Y: 0}, 5, 5))
	found := false
	for _, b := range region {
		if b.ID() == a.ID() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a to be found by QueryRegion")
	}
}
