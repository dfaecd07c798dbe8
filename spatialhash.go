package physics2d

import "math"

// cellKey identifies one cell of the uniform grid. Using a plain struct as
// the map key (rather than hashing it into a single integer) needs no
// key-building step and is the stable, collision-free "hash" spec §4.3
// asks for.
type cellKey struct {
	X, Y int
}

// SpatialHash is a uniform-grid broad-phase. Each body is registered in
// every cell its AABB overlaps; a reverse index (id -> cells) makes
// removal O(cells-for-that-body) instead of a full grid scan, and empty
// cells are pruned on removal to bound memory, per spec §4.3.
type SpatialHash struct {
	cellSize float64
	grid     map[cellKey][]*Body
	reverse  map[BodyID][]cellKey
}

func NewSpatialHash(cellSize float64) *SpatialHash {
	return &SpatialHash{
		cellSize: cellSize,
		grid:     make(map[cellKey][]*Body),
		reverse:  make(map[BodyID][]cellKey),
	}
}

func (h *SpatialHash) cellFor(p Vector2D) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / h.cellSize)),
		Y: int(math.Floor(p.Y / h.cellSize)),
	}
}

func (h *SpatialHash) cellsFor(box AABB) []cellKey {
	minCell := h.cellFor(box.Min)
	maxCell := h.cellFor(box.Max)

	cells := make([]cellKey, 0, (maxCell.X-minCell.X+1)*(maxCell.Y-minCell.Y+1))
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cells = append(cells, cellKey{x, y})
		}
	}
	return cells
}

// Insert registers body in every cell its AABB overlaps.
func (h *SpatialHash) Insert(body *Body) {
	cells := h.cellsFor(body.GetAABB())
	for _, c := range cells {
		h.grid[c] = append(h.grid[c], body)
	}
	h.reverse[body.ID()] = cells
}

// Remove evicts body from the grid, pruning any cell left empty.
func (h *SpatialHash) Remove(body *Body) {
	cells, ok := h.reverse[body.ID()]
	if !ok {
		return
	}
	for _, c := range cells {
		bucket := h.grid[c]
		for i, b := range bucket {
			if b.ID() == body.ID() {
				bucket = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(bucket) == 0 {
			delete(h.grid, c)
		} else {
			h.grid[c] = bucket
		}
	}
	delete(h.reverse, body.ID())
}

// Update is equivalent to Remove followed by Insert, but is a named
// operation per spec §4.3 so callers don't need to reimplement it.
func (h *SpatialHash) Update(body *Body) {
	h.Remove(body)
	h.Insert(body)
}

// QueryRegion returns every body whose cells overlap aabb. The result is a
// superset of bodies actually overlapping aabb — callers must filter
// further if they need exactness (spec §4.3).
func (h *SpatialHash) QueryRegion(aabb AABB) []*Body {
	seen := make(map[BodyID]bool)
	var result []*Body
	for _, c := range h.cellsFor(aabb) {
		for _, b := range h.grid[c] {
			if !seen[b.ID()] {
				seen[b.ID()] = true
				result = append(result, b)
			}
		}
	}
	return result
}

// Pair is an unordered candidate collision pair produced by GetPairs.
type Pair struct {
	A, B *Body
}

// GetPairs returns the unique unordered pairs of bodies that share at
// least one cell and for which canDetectCollision holds. Pairs are
// deduplicated by Cantor-paired id, so no pair is ever returned twice in
// one call regardless of how many cells the two bodies share.
func (h *SpatialHash) GetPairs() []Pair {
	seen := make(map[pairKey]bool)
	var pairs []Pair

	for _, bucket := range h.grid {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				key := makePairKey(a.ID(), b.ID())
				if seen[key] {
					continue
				}
				seen[key] = true
				if canDetectCollision(a, b) {
					pairs = append(pairs, Pair{A: a, B: b})
				}
			}
		}
	}
	return pairs
}
