package physics2d

import "math"

// AABB is an axis-aligned bounding box with Min.X <= Max.X and
// Min.Y <= Max.Y.
type AABB struct {
	Min, Max Vector2D
}

func NewAABB(min, max Vector2D) AABB {
	return AABB{Min: min, Max: max}
}

// AABBFromCenterSize builds an AABB from a center point and full width/height.
func AABBFromCenterSize(center Vector2D, width, height float64) AABB {
	hw, hh := width*0.5, height*0.5
	return AABB{
		Min: Vector2D{center.X - hw, center.Y - hh},
		Max: Vector2D{center.X + hw, center.Y + hh},
	}
}

// Overlaps reports whether the two boxes intersect, strictly.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Contains reports whether point lies within a, inclusive of the boundary.
func (a AABB) Contains(point Vector2D) bool {
	return point.X >= a.Min.X && point.X <= a.Max.X &&
		point.Y >= a.Min.Y && point.Y <= a.Max.Y
}

// Merge returns the smallest AABB containing both a and b.
func (a AABB) Merge(b AABB) AABB {
	return AABB{
		Min: Vector2D{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y)},
		Max: Vector2D{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y)},
	}
}

func (a AABB) Center() Vector2D {
	return a.Min.Lerp(a.Max, 0.5)
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

// MinDimension returns the shorter of width and height, used by the CCD
// tunneling heuristic in needsSweptTest.
func (a AABB) MinDimension() float64 {
	return math.Min(a.Width(), a.Height())
}

func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: Vector2D{a.Min.X - margin, a.Min.Y - margin},
		Max: Vector2D{a.Max.X + margin, a.Max.Y + margin},
	}
}

// ExpandByExtents grows a by (hw, hh) in each direction independently —
// the Minkowski sum of a with a box of half-width hw, half-height hh,
// used by the CCD rectangle sweeps in ccd.go.
func (a AABB) ExpandByExtents(hw, hh float64) AABB {
	return AABB{
		Min: Vector2D{a.Min.X - hw, a.Min.Y - hh},
		Max: Vector2D{a.Max.X + hw, a.Max.Y + hh},
	}
}

// SegmentQueryResult is the outcome of a slab-method raycast against an
// AABB: the entry fraction t along the segment (in [0,1]) and the surface
// normal at that entry point. Hit is false if the segment never enters the
// box within its own length.
type SegmentQueryResult struct {
	Hit    bool
	T      float64
	Normal Vector2D
}

// SegmentQuery performs a slab-method raycast of the segment a->b against
// the AABB, expanded by radius in every direction (so a swept circle can
// reuse this against a Minkowski-expanded rectangle). It guards rays
// parallel to an axis that lie outside that axis's slab.
func (a AABB) SegmentQuery(from, to Vector2D, radius float64) SegmentQueryResult {
	return a.Expand(radius).segmentQueryBox(from, to)
}

// segmentQueryBox is the raw slab-method raycast against an AABB that the
// caller has already expanded (by a radius, or by another shape's
// half-extents via ExpandByExtents — the Minkowski sum CCD needs for
// rectangle sweeps).
func (box AABB) segmentQueryBox(from, to Vector2D) SegmentQueryResult {
	delta := to.Sub(from)

	tMin, tMax := 0.0, 1.0
	normal := Zero

	axisEntry := func(d, lo, hi, p float64, axisNormal Vector2D) (float64, float64, Vector2D, bool) {
		if math.Abs(d) < Epsilon {
			if p < lo || p > hi {
				return 0, 0, Zero, false
			}
			return -math.MaxFloat64, math.MaxFloat64, Zero, true
		}
		invD := 1 / d
		t1 := (lo - p) * invD
		t2 := (hi - p) * invD
		n := axisNormal
		if t1 > t2 {
			t1, t2 = t2, t1
			n = n.Neg()
		}
		return t1, t2, n, true
	}

	entryX, exitX, normalX, okX := axisEntry(delta.X, box.Min.X, box.Max.X, from.X, Vector2D{-1, 0})
	if !okX {
		return SegmentQueryResult{}
	}
	entryY, exitY, normalY, okY := axisEntry(delta.Y, box.Min.Y, box.Max.Y, from.Y, Vector2D{0, -1})
	if !okY {
		return SegmentQueryResult{}
	}

	if entryX > tMin {
		tMin = entryX
		normal = normalX
	}
	if entryY > tMin {
		tMin = entryY
		normal = normalY
	}
	if exitX < tMax {
		tMax = exitX
	}
	if exitY < tMax {
		tMax = exitY
	}

	if tMin > tMax || tMax < 0 || tMin > 1 {
		return SegmentQueryResult{}
	}

	return SegmentQueryResult{Hit: true, T: math.Max(tMin, 0), Normal: normal}
}
