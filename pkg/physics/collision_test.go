// pkg/physics/collision_test.go
package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Contains(t *testing.T) {
	rect := Rect{Center: Vector2D{X: 10, Y: 10}, Width: 20, Height: 20}

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{"point_inside_center", Vector2D{X: 10, Y: 10}, true},
		{"point_on_min_edge", Vector2D{X: 0, Y: 10}, true},
		{"point_on_max_edge", Vector2D{X: 20, Y: 10}, false}, // upper edge is exclusive
		{"point_outside", Vector2D{X: 25, Y: 25}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rect.Contains(tt.point))
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := NewRectFromBounds(0, 0, 10, 10)

	tests := []struct {
		name       string
		other      Rect
		overlaps   bool
		intersects bool
	}{
		{"overlapping", NewRectFromBounds(5, 5, 15, 15), true, true},
		{"touching_edge", NewRectFromBounds(10, 0, 20, 10), false, true},
		{"separate", NewRectFromBounds(11, 11, 20, 20), false, false},
		{"contained", NewRectFromBounds(2, 2, 4, 4), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, a.Overlaps(tt.other), "Overlaps")
			assert.Equal(t, tt.intersects, a.Intersects(tt.other), "Intersects")
		})
	}
}

func TestNewRectFromBounds(t *testing.T) {
	r := NewRectFromBounds(-5, 0, 5, 20)
	assert.Equal(t, Rect{Center: Vector2D{X: 0, Y: 10}, Width: 10, Height: 20}, r)
	assert.Equal(t, Vector2D{X: -5, Y: 0}, r.Min())
	assert.Equal(t, Vector2D{X: 5, Y: 20}, r.Max())
}

func TestRect_Grow(t *testing.T) {
	r := NewRectFromBounds(0, 0, 10, 4).Grow(2, 1)
	assert.Equal(t, Vector2D{X: -2, Y: -1}, r.Min())
	assert.Equal(t, Vector2D{X: 12, Y: 5}, r.Max())
}

func TestQuadTree_InsertAndQuery(t *testing.T) {
	qt := NewQuadTree[string](Rect{Width: 100, Height: 100}, 2)

	points := map[string]Vector2D{
		"a": {X: -40, Y: -40},
		"b": {X: -10, Y: 10},
		"c": {X: 10, Y: 10},
		"d": {X: 40, Y: 40},
		"e": {X: 12, Y: 14},
	}
	for name, p := range points {
		require.True(t, qt.Insert(p, name), "Insert(%v)", p)
	}

	assert.True(t, qt.Divided, "tree subdivides past capacity")
	assert.False(t, qt.Insert(Vector2D{X: 60, Y: 0}, "outside"), "points outside the boundary are rejected")

	got := qt.Query(NewRectFromBounds(0, 0, 20, 20))
	assert.ElementsMatch(t, []string{"c", "e"}, got)
}

func TestQuadTree_DuplicatePointsTerminate(t *testing.T) {
	qt := NewQuadTree[int](Rect{Width: 10, Height: 10}, 1)
	for i := 0; i < 50; i++ {
		require.True(t, qt.Insert(Vector2D{X: 1, Y: 1}, i), "Insert(%d)", i)
	}
	assert.Len(t, qt.Query(Rect{Width: 10, Height: 10}), 50)
}
