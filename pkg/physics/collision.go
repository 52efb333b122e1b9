// pkg/physics/collision.go
package physics

import "math"

// Rect is an axis-aligned box described by its center and size
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewRectFromBounds builds a Rect from its minimum and maximum corners
func NewRectFromBounds(minX, minY, maxX, maxY float64) Rect {
	return Rect{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Min returns the lower-left corner
func (r Rect) Min() Vector2D {
	return Vector2D{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max returns the upper-right corner
func (r Rect) Max() Vector2D {
	return Vector2D{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// Contains reports whether point lies inside the rect. The upper edges are exclusive.
func (r Rect) Contains(point Vector2D) bool {
	lo, hi := r.Min(), r.Max()
	return point.X >= lo.X && point.X < hi.X &&
		point.Y >= lo.Y && point.Y < hi.Y
}

// Overlaps reports whether two rects share interior area. Touching edges do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return math.Abs(r.Center.X-other.Center.X) < (r.Width+other.Width)/2 &&
		math.Abs(r.Center.Y-other.Center.Y) < (r.Height+other.Height)/2
}

// Intersects reports whether two rects overlap or touch
func (r Rect) Intersects(other Rect) bool {
	return math.Abs(r.Center.X-other.Center.X) <= (r.Width+other.Width)/2 &&
		math.Abs(r.Center.Y-other.Center.Y) <= (r.Height+other.Height)/2
}

// Translate returns the rect moved by offset
func (r Rect) Translate(offset Vector2D) Rect {
	r.Center = r.Center.Add(offset)
	return r
}

// Grow returns the rect enlarged by dx on the left and right and dy on the top and bottom
func (r Rect) Grow(dx, dy float64) Rect {
	r.Width += 2 * dx
	r.Height += 2 * dy
	return r
}

// quadTreeMaxDepth stops subdivision when many items share one point.
const quadTreeMaxDepth = 8

// QuadTree partitions points in a rect for range queries
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Items     []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]

	depth int
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	return newQuadTree[T](boundary, capacity, 0)
}

func newQuadTree[T any](boundary Rect, capacity, depth int) *QuadTree[T] {
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Items:    make([]T, 0, capacity),
		depth:    depth,
	}
}

// Insert stores item at point. It returns false if point is outside the tree.
func (qt *QuadTree[T]) Insert(point Vector2D, item T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if (len(qt.Points) < qt.Capacity && !qt.Divided) || qt.depth >= quadTreeMaxDepth {
		qt.Points = append(qt.Points, point)
		qt.Items = append(qt.Items, item)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, item) ||
		qt.NorthEast.Insert(point, item) ||
		qt.SouthWest.Insert(point, item) ||
		qt.SouthEast.Insert(point, item)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree[T]) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2
	next := qt.depth + 1

	qt.NorthWest = newQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity, next)
	qt.NorthEast = newQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity, next)
	qt.SouthWest = newQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity, next)
	qt.SouthEast = newQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity, next)
	qt.Divided = true
}

// Query returns every item whose point lies inside area
func (qt *QuadTree[T]) Query(area Rect) []T {
	return qt.query(area, nil)
}

func (qt *QuadTree[T]) query(area Rect, found []T) []T {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Items[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	return qt.SouthEast.query(area, found)
}
