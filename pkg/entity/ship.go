// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/starship"
)

// Ship places a starship controller in the world with a collision box.
// The box center and the controller position are kept equal.
type Ship struct {
	BaseEntity
	Craft    *starship.Starship
	Collided bool
}

// NewShip creates a ship centered on position with a width by height hitbox
func NewShip(id ID, position physics.Vector2D, width, height float64, params starship.Params) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:     id,
			Box:    physics.Rect{Center: position, Width: width, Height: height},
			Active: true,
		},
		Craft: starship.New(position, params),
	}
}

// Update advances the controller one tick and moves the hitbox through the
// resolver. It reports whether a wall blocked any part of the move.
func (s *Ship) Update(resolver *physics.Resolver) bool {
	s.Craft.AdvanceTick()

	box, hit := resolver.Move(s.Box, s.Craft.Velocity)
	s.Box = box
	s.Craft.Position = box.Center
	s.Collided = hit
	return hit
}

// Heading returns the ship's heading in degrees
func (s *Ship) Heading() float64 {
	return s.Craft.Heading
}

// Render draws the ship
func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}
