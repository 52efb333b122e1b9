package entity

import (
	"iter"

	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
)

// Status is the per-frame HUD readout
type Status struct {
	Tick     uint64
	FPS      float64
	Heading  float64
	Speed    float64
	Position physics.Vector2D
	Collided bool
}

// Renderer handles rendering game entities. A frame is one Clear, any
// number of Render calls and one Present.
type Renderer interface {
	Clear()
	RenderStars(stars []starfield.Star)
	RenderObstacle(obstacle *Obstacle)
	RenderShip(ship *Ship)
	RenderRays(rays iter.Seq[sensor.Ray])
	RenderHUD(status Status)
	Present()
}
