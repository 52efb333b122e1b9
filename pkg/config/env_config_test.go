// pkg/config/env_config_test.go
package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("STARSHIP_RENDERER", "null")
		t.Setenv("STARSHIP_WINDOW_WIDTH", "800")
		t.Setenv("STARSHIP_FULLSCREEN", "true")
		t.Setenv("STARSHIP_MAX_SPEED", "9.5")
		t.Setenv("STARSHIP_STARFIELD_SEED", "nebula")
		t.Setenv("STARSHIP_AUDIO_ENABLED", "false")
		t.Setenv("STARSHIP_KEY_RELEASE", "250ms")
		t.Setenv("STARSHIP_CAMERA_SMOOTHING", "true")

		config, err := LoadConfigFromEnv()
		require.NoError(t, err)

		assert.Equal(t, RendererNull, config.Renderer)
		assert.Equal(t, 800, config.Window.Width)
		assert.True(t, config.Window.Fullscreen)
		assert.Equal(t, 9.5, config.Ship.MaxSpeed)
		assert.Equal(t, "nebula", config.Starfield.Seed)
		assert.False(t, config.Audio.Enabled)
		assert.Equal(t, 250*time.Millisecond, config.KeyRelease())
		assert.True(t, config.Camera.Smoothing)
	})

	t.Run("InvalidOverrideFailsValidation", func(t *testing.T) {
		t.Setenv("STARSHIP_MAX_SPEED", "-1")

		_, err := LoadConfigFromEnv()
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "expected ValidationError, got %T: %v", err, err)
		assert.Equal(t, "Ship.MaxSpeed", verr.Field)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*GameConfig)
		errorField string
	}{
		{"valid", func(*GameConfig) {}, ""},
		{"unknown renderer", func(c *GameConfig) { c.Renderer = "opengl" }, "Renderer"},
		{"zero width", func(c *GameConfig) { c.Window.Width = 0 }, "Window.Width"},
		{"huge height", func(c *GameConfig) { c.Window.Height = 20000 }, "Window.Height"},
		{"bad background", func(c *GameConfig) { c.Window.Background = "black" }, "Window.Background"},
		{"negative turn", func(c *GameConfig) { c.Ship.TurnStep = -1 }, "Ship.TurnStep"},
		{"negative thrust", func(c *GameConfig) { c.Ship.ThrustStep = -1 }, "Ship.ThrustStep"},
		{"zero max speed", func(c *GameConfig) { c.Ship.MaxSpeed = 0 }, "Ship.MaxSpeed"},
		{"negative friction", func(c *GameConfig) { c.Ship.Friction = -0.1 }, "Ship.Friction"},
		{"empty hitbox", func(c *GameConfig) { c.Ship.Height = 0 }, "Ship.Width"},
		{"zero range", func(c *GameConfig) { c.Sensor.Range = 0 }, "Sensor.Range"},
		{"full circle step", func(c *GameConfig) { c.Sensor.Step = 360 }, "Sensor.Step"},
		{"no history", func(c *GameConfig) { c.Sensor.History = 0 }, "Sensor.History"},
		{"history deeper than the trail", func(c *GameConfig) { c.Sensor.History = 6 }, "Sensor.History"},
		{"shorter history", func(c *GameConfig) { c.Sensor.History = 2 }, ""},
		{"zero min zoom", func(c *GameConfig) { c.Camera.MinZoom = 0 }, "Camera.MinZoom"},
		{"inverted zoom limits", func(c *GameConfig) { c.Camera.MaxZoom = 0.1 }, "Camera.MinZoom"},
		{"stalled camera", func(c *GameConfig) { c.Camera.FollowSpeed = 0 }, "Camera.FollowSpeed"},
		{"bad sensor color", func(c *GameConfig) { c.Sensor.Color = "#12" }, "Sensor.Color"},
		{"no star layers", func(c *GameConfig) { c.Starfield.Layers = 0 }, "Starfield"},
		{"tiny world", func(c *GameConfig) { c.World.Width = 10 }, "World.Width"},
		{"no walls", func(c *GameConfig) { c.World.WallThickness = 0 }, "World.WallThickness"},
		{"flat obstacle", func(c *GameConfig) { c.World.Obstacles[1].Height = 0 }, "World.Obstacles[1]"},
		{"silent ping", func(c *GameConfig) { c.Audio.Frequency = 0 }, "Audio.Frequency"},
		{"disabled audio skips checks", func(c *GameConfig) { c.Audio.Enabled = false; c.Audio.Frequency = 0 }, ""},
		{"zero tick rate", func(c *GameConfig) { c.Terminal.TickRate = 0 }, "Terminal.TickRate"},
		{"zero key release", func(c *GameConfig) { c.Terminal.KeyReleaseMs = 0 }, "Terminal.KeyReleaseMs"},
		{"zero scale", func(c *GameConfig) { c.Terminal.Scale = 0 }, "Terminal.Scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := Validate(config)
			if tt.errorField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.errorField, verr.Field)
			assert.Contains(t, verr.Error(), tt.errorField)
		})
	}
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("TEST_STRING", "test_value")
	assert.Equal(t, "test_value", getEnvOrDefault("TEST_STRING", "default"))
	assert.Equal(t, "default", getEnvOrDefault("STARSHIP_TEST_NONEXISTENT", "default"))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsIntOrDefault("TEST_INT", 10))
	t.Setenv("TEST_INT", "invalid")
	assert.Equal(t, 10, getEnvAsIntOrDefault("TEST_INT", 10))

	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBoolOrDefault("TEST_BOOL", false))
	t.Setenv("TEST_BOOL", "invalid")
	assert.False(t, getEnvAsBoolOrDefault("TEST_BOOL", false))

	t.Setenv("TEST_FLOAT", "3.14")
	assert.Equal(t, 3.14, getEnvAsFloatOrDefault("TEST_FLOAT", 1.0))
	t.Setenv("TEST_FLOAT", "invalid")
	assert.Equal(t, 1.0, getEnvAsFloatOrDefault("TEST_FLOAT", 1.0))

	t.Setenv("TEST_DURATION", "5s")
	assert.Equal(t, 5*time.Second, getEnvAsDurationOrDefault("TEST_DURATION", time.Second))
	t.Setenv("TEST_DURATION", "invalid")
	assert.Equal(t, time.Second, getEnvAsDurationOrDefault("TEST_DURATION", time.Second))
}
