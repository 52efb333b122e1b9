// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-starship/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// IDGenerator hands out increasing entity IDs, starting at 1
type IDGenerator struct {
	last atomic.Uint64
}

// Next returns a fresh ID
func (g *IDGenerator) Next() ID {
	return ID(g.last.Add(1))
}

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetBounds() physics.Rect
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID     ID
	Box    physics.Rect
	Active bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the center of the entity's box
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Box.Center
}

// GetBounds returns the entity's collision box
func (e *BaseEntity) GetBounds() physics.Rect {
	return e.Box
}

// Render does nothing; concrete entities pick the renderer call
func (e *BaseEntity) Render(r Renderer) {}
