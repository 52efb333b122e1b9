package physics

import "math"

// Resolver moves a body through a set of static walls one axis at a time.
// A step along an axis that would leave the body overlapping a wall is undone,
// so the body slides along walls instead of sticking to them.
type Resolver struct {
	walls []Rect
	index *QuadTree[int]
	reach Vector2D // largest wall half extents, used to widen index queries
}

// NewResolver indexes walls for movement resolution
func NewResolver(walls []Rect) *Resolver {
	r := &Resolver{walls: append([]Rect(nil), walls...)}
	if len(walls) == 0 {
		return r
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, w := range walls {
		minX = math.Min(minX, w.Center.X)
		minY = math.Min(minY, w.Center.Y)
		maxX = math.Max(maxX, w.Center.X)
		maxY = math.Max(maxY, w.Center.Y)
		r.reach.X = math.Max(r.reach.X, w.Width/2)
		r.reach.Y = math.Max(r.reach.Y, w.Height/2)
	}

	// Pad so points on the max edges are still inside the exclusive boundary.
	bounds := NewRectFromBounds(minX, minY, maxX, maxY).Grow(1, 1)
	r.index = NewQuadTree[int](bounds, 8)
	for i, w := range walls {
		r.index.Insert(w.Center, i)
	}
	return r
}

// Walls returns the walls the resolver was built with
func (r *Resolver) Walls() []Rect {
	return r.walls
}

// Blocked reports whether body overlaps any wall
func (r *Resolver) Blocked(body Rect) bool {
	if r.index == nil {
		return false
	}
	for _, i := range r.index.Query(body.Grow(r.reach.X, r.reach.Y)) {
		if r.walls[i].Overlaps(body) {
			return true
		}
	}
	return false
}

// Move applies velocity to body, X first and then Y, and returns the new body
// and whether any step was blocked.
func (r *Resolver) Move(body Rect, velocity Vector2D) (Rect, bool) {
	hit := false

	if velocity.X != 0 {
		next := body.Translate(Vector2D{X: velocity.X})
		if r.Blocked(next) {
			hit = true
		} else {
			body = next
		}
	}

	if velocity.Y != 0 {
		next := body.Translate(Vector2D{Y: velocity.Y})
		if r.Blocked(next) {
			hit = true
		} else {
			body = next
		}
	}

	return body, hit
}

// BoundaryWalls returns four walls of the given thickness enclosing area
func BoundaryWalls(area Rect, thickness float64) []Rect {
	lo, hi := area.Min(), area.Max()
	return []Rect{
		NewRectFromBounds(lo.X-thickness, hi.Y, hi.X+thickness, hi.Y+thickness),
		NewRectFromBounds(lo.X-thickness, lo.Y-thickness, hi.X+thickness, lo.Y),
		NewRectFromBounds(lo.X-thickness, lo.Y, lo.X, hi.Y),
		NewRectFromBounds(hi.X, lo.Y, hi.X+thickness, hi.Y),
	}
}
