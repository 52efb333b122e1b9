// pkg/render/renderer.go
package render

import (
	"context"
	"iter"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
)

// NullRenderer is an entity.Renderer that draws nothing and logs each call
// at debug level. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderStars implements entity.Renderer.
func (d *NullRenderer) RenderStars(stars []starfield.Star) {
	d.logger.Debug(context.Background(), "RenderStars called", "stars", len(stars))
}

// RenderObstacle implements entity.Renderer.
func (d *NullRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	ctx := context.Background()
	if obstacle == nil {
		d.logger.Debug(ctx, "RenderObstacle called with nil obstacle")
		return
	}
	d.logger.Debug(ctx, "RenderObstacle called",
		"obstacle_id", obstacle.ID,
		"kind", obstacle.Kind.String(),
	)
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	ctx := context.Background()
	if ship == nil {
		d.logger.Debug(ctx, "RenderShip called with nil ship")
		return
	}
	pos := ship.GetPosition()
	d.logger.Debug(ctx, "RenderShip called",
		"ship_id", ship.ID,
		"x", pos.X,
		"y", pos.Y,
		"heading", ship.Heading(),
	)
}

// RenderRays implements entity.Renderer.
func (d *NullRenderer) RenderRays(rays iter.Seq[sensor.Ray]) {
	n := 0
	for range rays {
		n++
	}
	d.logger.Debug(context.Background(), "RenderRays called", "rays", n)
}

// RenderHUD implements entity.Renderer.
func (d *NullRenderer) RenderHUD(status entity.Status) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"tick", status.Tick,
		"fps", status.FPS,
		"speed", status.Speed,
	)
}

var _ entity.Renderer = (*NullRenderer)(nil)
