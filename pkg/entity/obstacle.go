// pkg/entity/obstacle.go
package entity

import (
	"strings"

	"github.com/opd-ai/go-starship/pkg/physics"
)

// ObstacleKind distinguishes how an obstacle is drawn
type ObstacleKind int

const (
	Wall ObstacleKind = iota
	Asteroid
)

// String returns the lowercase name of the kind
func (k ObstacleKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Asteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// ObstacleKindFromString parses a kind name, defaulting to Wall
func ObstacleKindFromString(s string) ObstacleKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asteroid":
		return Asteroid
	default:
		return Wall
	}
}

// Obstacle is a static box the ship cannot pass through
type Obstacle struct {
	BaseEntity
	Kind ObstacleKind
}

// NewObstacle creates an obstacle
func NewObstacle(id ID, kind ObstacleKind, box physics.Rect) *Obstacle {
	return &Obstacle{
		BaseEntity: BaseEntity{ID: id, Box: box, Active: true},
		Kind:       kind,
	}
}

// Render draws the obstacle
func (o *Obstacle) Render(r Renderer) {
	r.RenderObstacle(o)
}
