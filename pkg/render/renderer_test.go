// pkg/render/renderer_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
	"github.com/opd-ai/go-starship/pkg/starship"
)

func newObservedRenderer() (*NullRenderer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewNullRenderer(logging.NewFromCore(core)), logs
}

func TestNullRenderer_FrameLogsExpectedMessages(t *testing.T) {
	renderer, logs := newObservedRenderer()

	ship := entity.NewShip(7, physics.Vector2D{X: 100, Y: 200}, 10, 10, starship.DefaultParams())
	obstacle := entity.NewObstacle(3, entity.Asteroid, physics.Rect{Width: 5, Height: 5})
	sweep := sensor.New(sensor.DefaultParams())
	sweep.Tick()

	renderer.Clear()
	renderer.RenderStars(make([]starfield.Star, 4))
	renderer.RenderObstacle(obstacle)
	renderer.RenderShip(ship)
	renderer.RenderRays(sweep.Rays(ship.GetPosition()))
	renderer.RenderHUD(entity.Status{Tick: 9})
	renderer.Present()

	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"Clear called",
		"RenderStars called",
		"RenderObstacle called",
		"RenderShip called",
		"RenderRays called",
		"RenderHUD called",
		"Present called",
	}, messages)

	fields := logs.FilterMessage("RenderShip called").All()[0].ContextMap()
	assert.Equal(t, entity.ID(7), fields["ship_id"])
	assert.Equal(t, 100.0, fields["x"])

	rays := logs.FilterMessage("RenderRays called").All()[0].ContextMap()
	assert.Equal(t, int64(2), rays["rays"])

	obs := logs.FilterMessage("RenderObstacle called").All()[0].ContextMap()
	assert.Equal(t, "asteroid", obs["kind"])

	assert.Equal(t, uint64(1), renderer.Frames())
}

func TestNullRenderer_NilEntities(t *testing.T) {
	renderer, logs := newObservedRenderer()

	renderer.RenderShip(nil)
	renderer.RenderObstacle(nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "RenderShip called with nil ship", logs.All()[0].Message)
	assert.Equal(t, "RenderObstacle called with nil obstacle", logs.All()[1].Message)
}

func TestNullRenderer_DefaultLoggerIsSilent(t *testing.T) {
	renderer := NewNullRenderer(nil)
	renderer.Clear()
	renderer.Present()
	assert.Equal(t, uint64(1), renderer.Frames())
}
