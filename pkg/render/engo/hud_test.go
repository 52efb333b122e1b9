package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

func TestFormatStatus(t *testing.T) {
	got := FormatStatus(entity.Status{
		Tick:     42,
		FPS:      59.94,
		Heading:  -30,
		Speed:    1.5,
		Position: physics.Vector2D{X: 12.4, Y: -7.6},
	})

	for _, want := range []string{"FPS  59.9", "HDG   -30.0", "SPD   1.50", "POS 12,-8", "TICK 42"} {
		assert.Contains(t, got, want)
	}
}

func TestHUDSystem_UpdateBeforeSetup(t *testing.T) {
	hud := NewHUDSystem()
	hud.SetStatus(entity.Status{Collided: true})

	// no entities yet, Update must not touch them
	assert.NotPanics(t, func() { hud.Update(0.016) })
	assert.True(t, hud.Status().Collided)
}
