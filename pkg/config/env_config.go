// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/opd-ai/go-starship/pkg/sensor"
)

// EnvPrefix prefixes every environment variable the game reads
const EnvPrefix = "STARSHIP_"

// ValidationError describes the first invalid configuration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %s: %s", e.Field, e.Message)
}

// LoadConfigFromEnv returns the default configuration with environment
// overrides applied and validated
func LoadConfigFromEnv() (*GameConfig, error) {
	config := DefaultConfig()
	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnvironmentOverrides overwrites fields of config from STARSHIP_*
// variables, then validates the result
func ApplyEnvironmentOverrides(config *GameConfig) error {
	config.Title = getEnvOrDefault(EnvPrefix+"TITLE", config.Title)
	config.Renderer = getEnvOrDefault(EnvPrefix+"RENDERER", config.Renderer)

	config.Window.Width = getEnvAsIntOrDefault(EnvPrefix+"WINDOW_WIDTH", config.Window.Width)
	config.Window.Height = getEnvAsIntOrDefault(EnvPrefix+"WINDOW_HEIGHT", config.Window.Height)
	config.Window.Fullscreen = getEnvAsBoolOrDefault(EnvPrefix+"FULLSCREEN", config.Window.Fullscreen)
	config.Window.VSync = getEnvAsBoolOrDefault(EnvPrefix+"VSYNC", config.Window.VSync)

	config.Ship.TurnStep = getEnvAsFloatOrDefault(EnvPrefix+"TURN_STEP", config.Ship.TurnStep)
	config.Ship.ThrustStep = getEnvAsFloatOrDefault(EnvPrefix+"THRUST_STEP", config.Ship.ThrustStep)
	config.Ship.MaxSpeed = getEnvAsFloatOrDefault(EnvPrefix+"MAX_SPEED", config.Ship.MaxSpeed)
	config.Ship.Friction = getEnvAsFloatOrDefault(EnvPrefix+"FRICTION", config.Ship.Friction)

	config.Sensor.Range = getEnvAsFloatOrDefault(EnvPrefix+"SENSOR_RANGE", config.Sensor.Range)
	config.Sensor.Color = getEnvOrDefault(EnvPrefix+"SENSOR_COLOR", config.Sensor.Color)

	config.Camera.Smoothing = getEnvAsBoolOrDefault(EnvPrefix+"CAMERA_SMOOTHING", config.Camera.Smoothing)
	config.Camera.FollowSpeed = getEnvAsFloatOrDefault(EnvPrefix+"CAMERA_FOLLOW_SPEED", config.Camera.FollowSpeed)

	config.Starfield.Seed = getEnvOrDefault(EnvPrefix+"STARFIELD_SEED", config.Starfield.Seed)
	config.Starfield.Layers = getEnvAsIntOrDefault(EnvPrefix+"STARFIELD_LAYERS", config.Starfield.Layers)

	config.Audio.Enabled = getEnvAsBoolOrDefault(EnvPrefix+"AUDIO_ENABLED", config.Audio.Enabled)

	config.Terminal.KeyReleaseMs = int(getEnvAsDurationOrDefault(EnvPrefix+"KEY_RELEASE",
		config.KeyRelease()) / time.Millisecond)

	return Validate(config)
}

// Validate checks config and returns a *ValidationError for the first bad field
func Validate(config *GameConfig) error {
	switch config.Renderer {
	case RendererEngo, RendererTerminal, RendererNull:
	default:
		return &ValidationError{Field: "Renderer", Message: fmt.Sprintf("unknown renderer %q", config.Renderer)}
	}

	if config.Window.Width < 1 || config.Window.Width > 16384 {
		return &ValidationError{Field: "Window.Width", Message: "must be between 1 and 16384"}
	}
	if config.Window.Height < 1 || config.Window.Height > 16384 {
		return &ValidationError{Field: "Window.Height", Message: "must be between 1 and 16384"}
	}
	if _, err := ParseColor(config.Window.Background); err != nil {
		return &ValidationError{Field: "Window.Background", Message: err.Error()}
	}

	if config.Ship.TurnStep < 0 {
		return &ValidationError{Field: "Ship.TurnStep", Message: "must not be negative"}
	}
	if config.Ship.ThrustStep < 0 {
		return &ValidationError{Field: "Ship.ThrustStep", Message: "must not be negative"}
	}
	if config.Ship.MaxSpeed <= 0 {
		return &ValidationError{Field: "Ship.MaxSpeed", Message: "must be positive"}
	}
	if config.Ship.Friction < 0 {
		return &ValidationError{Field: "Ship.Friction", Message: "must not be negative"}
	}
	if config.Ship.Width <= 0 || config.Ship.Height <= 0 {
		return &ValidationError{Field: "Ship.Width", Message: "hitbox must have a positive size"}
	}

	if config.Sensor.Range <= 0 {
		return &ValidationError{Field: "Sensor.Range", Message: "must be positive"}
	}
	if config.Sensor.Step <= 0 || config.Sensor.Step >= 360 {
		return &ValidationError{Field: "Sensor.Step", Message: "must be in (0, 360)"}
	}
	if config.Sensor.History < 1 || config.Sensor.History > sensor.MaxHistory {
		return &ValidationError{
			Field:   "Sensor.History",
			Message: fmt.Sprintf("must be between 1 and %d", sensor.MaxHistory),
		}
	}
	if _, err := ParseColor(config.Sensor.Color); err != nil {
		return &ValidationError{Field: "Sensor.Color", Message: err.Error()}
	}

	if err := config.Starfield.Validate(); err != nil {
		return &ValidationError{Field: "Starfield", Message: err.Error()}
	}

	if config.Camera.MinZoom <= 0 || config.Camera.MaxZoom < config.Camera.MinZoom {
		return &ValidationError{Field: "Camera.MinZoom", Message: "zoom limits must satisfy 0 < min <= max"}
	}
	if config.Camera.FollowSpeed <= 0 {
		return &ValidationError{Field: "Camera.FollowSpeed", Message: "must be positive"}
	}

	if config.World.Width <= config.Ship.Width || config.World.Height <= config.Ship.Height {
		return &ValidationError{Field: "World.Width", Message: "world must be larger than the ship"}
	}
	if config.World.WallThickness <= 0 {
		return &ValidationError{Field: "World.WallThickness", Message: "must be positive"}
	}
	for i, o := range config.World.Obstacles {
		if o.Width <= 0 || o.Height <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("World.Obstacles[%d]", i),
				Message: "must have a positive size",
			}
		}
	}

	if config.Audio.Enabled {
		if config.Audio.Frequency <= 0 {
			return &ValidationError{Field: "Audio.Frequency", Message: "must be positive"}
		}
		if config.Audio.DurationMs <= 0 {
			return &ValidationError{Field: "Audio.DurationMs", Message: "must be positive"}
		}
		if config.Audio.SampleRate < 8000 {
			return &ValidationError{Field: "Audio.SampleRate", Message: "must be at least 8000"}
		}
	}

	if config.Terminal.TickRate < 1 || config.Terminal.TickRate > 240 {
		return &ValidationError{Field: "Terminal.TickRate", Message: "must be between 1 and 240"}
	}
	if config.Terminal.KeyReleaseMs <= 0 {
		return &ValidationError{Field: "Terminal.KeyReleaseMs", Message: "must be positive"}
	}
	if config.Terminal.Scale <= 0 {
		return &ValidationError{Field: "Terminal.Scale", Message: "must be positive"}
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns environment variable as float64 or default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns environment variable as bool or default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns environment variable as time.Duration or default
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
