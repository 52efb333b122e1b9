// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
	"github.com/opd-ai/go-starship/pkg/starship"
)

// Renderer names accepted by GameConfig.Renderer
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererNull     = "null"
)

// GameConfig contains configuration for a game session
type GameConfig struct {
	Title     string           `json:"title" yaml:"title"`
	Renderer  string           `json:"renderer" yaml:"renderer"`
	Window    WindowConfig     `json:"window" yaml:"window"`
	Ship      ShipConfig       `json:"ship" yaml:"ship"`
	Sensor    SensorConfig     `json:"sensor" yaml:"sensor"`
	Starfield starfield.Config `json:"starfield" yaml:"starfield"`
	Camera    CameraConfig     `json:"camera" yaml:"camera"`
	World     WorldConfig      `json:"world" yaml:"world"`
	Audio     AudioConfig      `json:"audio" yaml:"audio"`
	Terminal  TerminalConfig   `json:"terminal" yaml:"terminal"`
}

// WindowConfig contains the graphical window settings
type WindowConfig struct {
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	VSync      bool   `json:"vsync" yaml:"vsync"`
	Background string `json:"background" yaml:"background"`
}

// ShipConfig contains starship tuning and placement
type ShipConfig struct {
	TurnStep   float64 `json:"turnStep" yaml:"turnStep"`
	ThrustStep float64 `json:"thrustStep" yaml:"thrustStep"`
	MaxSpeed   float64 `json:"maxSpeed" yaml:"maxSpeed"`
	Friction   float64 `json:"friction" yaml:"friction"`
	StartX     float64 `json:"startX" yaml:"startX"`
	StartY     float64 `json:"startY" yaml:"startY"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
}

// SensorConfig contains sensor sweep settings
type SensorConfig struct {
	Range   float64 `json:"range" yaml:"range"`
	Step    float64 `json:"step" yaml:"step"`
	History int     `json:"history" yaml:"history"`
	Color   string  `json:"color" yaml:"color"`
}

// CameraConfig controls how the engo camera follows the ship. Zoom is the
// camera distance, so a larger zoom shows more of the world.
type CameraConfig struct {
	Smoothing   bool    `json:"smoothing" yaml:"smoothing"`
	FollowSpeed float64 `json:"followSpeed" yaml:"followSpeed"` // fraction of the gap closed per second
	MinZoom     float64 `json:"minZoom" yaml:"minZoom"`
	MaxZoom     float64 `json:"maxZoom" yaml:"maxZoom"`
}

// WorldConfig describes the playfield bounds and static obstacles
type WorldConfig struct {
	Width         float64          `json:"width" yaml:"width"`
	Height        float64          `json:"height" yaml:"height"`
	WallThickness float64          `json:"wallThickness" yaml:"wallThickness"`
	Obstacles     []ObstacleConfig `json:"obstacles" yaml:"obstacles"`
}

// ObstacleConfig places one obstacle by its center
type ObstacleConfig struct {
	Kind   string  `json:"kind" yaml:"kind"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// AudioConfig controls the sensor ping
type AudioConfig struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	Frequency  float64 `json:"frequency" yaml:"frequency"`
	DurationMs int     `json:"durationMs" yaml:"durationMs"`
	Volume     float64 `json:"volume" yaml:"volume"`
	SampleRate int     `json:"sampleRate" yaml:"sampleRate"`
}

// TerminalConfig controls the terminal frontend
type TerminalConfig struct {
	TickRate     int     `json:"tickRate" yaml:"tickRate"`
	KeyReleaseMs int     `json:"keyReleaseMs" yaml:"keyReleaseMs"`
	Scale        float64 `json:"scale" yaml:"scale"` // world units per column
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	defaults := config.World.Obstacles
	// Obstacles in the file replace the defaults rather than merging by index
	config.World.Obstacles = nil

	var present obstaclesKey
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
		if err == nil {
			err = yaml.Unmarshal(data, &present)
		}
	} else {
		err = json.Unmarshal(data, config)
		if err == nil {
			err = json.Unmarshal(data, &present)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if present.World.Obstacles == nil {
		config.World.Obstacles = defaults
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// obstaclesKey detects whether a file sets world.obstacles at all
type obstaclesKey struct {
	World struct {
		Obstacles *[]ObstacleConfig `json:"obstacles" yaml:"obstacles"`
	} `json:"world" yaml:"world"`
}

// SaveConfig saves a configuration to a file, as YAML when the extension is
// .yaml or .yml and JSON otherwise
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	ship := starship.DefaultParams()
	sweep := sensor.DefaultParams()

	return &GameConfig{
		Title:    "Arcade",
		Renderer: RendererEngo,
		Window: WindowConfig{
			Width:      1000,
			Height:     650,
			VSync:      true,
			Background: "#000000",
		},
		Ship: ShipConfig{
			TurnStep:   ship.TurnStep,
			ThrustStep: ship.ThrustStep,
			MaxSpeed:   ship.MaxSpeed,
			Friction:   ship.Friction,
			Width:      40,
			Height:     40,
		},
		Sensor: SensorConfig{
			Range:   sweep.Range,
			Step:    sweep.Step,
			History: sweep.Capacity,
			Color:   FormatColor(sweep.BaseColor),
		},
		Starfield: starfield.DefaultConfig(),
		Camera: CameraConfig{
			FollowSpeed: 2,
			MinZoom:     0.25,
			MaxZoom:     3,
		},
		World: WorldConfig{
			Width:         4000,
			Height:        4000,
			WallThickness: 50,
			Obstacles: []ObstacleConfig{
				{Kind: "asteroid", X: 400, Y: 300, Width: 120, Height: 90},
				{Kind: "asteroid", X: -600, Y: -250, Width: 80, Height: 160},
				{Kind: "wall", X: 0, Y: -700, Width: 900, Height: 40},
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Frequency:  880,
			DurationMs: 120,
			Volume:     0.3,
			SampleRate: 44100,
		},
		Terminal: TerminalConfig{
			TickRate:     60,
			KeyReleaseMs: 150,
			Scale:        10,
		},
	}
}

// ShipParams returns the starship tuning
func (c *GameConfig) ShipParams() starship.Params {
	return starship.Params{
		TurnStep:   c.Ship.TurnStep,
		ThrustStep: c.Ship.ThrustStep,
		MaxSpeed:   c.Ship.MaxSpeed,
		Friction:   c.Ship.Friction,
	}
}

// ShipStart returns the ship's initial position
func (c *GameConfig) ShipStart() physics.Vector2D {
	return physics.Vector2D{X: c.Ship.StartX, Y: c.Ship.StartY}
}

// SensorParams returns the sweep settings. The color must already be valid.
func (c *GameConfig) SensorParams() sensor.Params {
	base, err := ParseColor(c.Sensor.Color)
	if err != nil {
		base = sensor.DefaultParams().BaseColor
	}
	return sensor.Params{
		Range:     c.Sensor.Range,
		Step:      c.Sensor.Step,
		Capacity:  c.Sensor.History,
		BaseColor: base,
	}
}

// BackgroundColor returns the window clear color, black when unparsable
func (c *GameConfig) BackgroundColor() color.RGBA {
	bg, err := ParseColor(c.Window.Background)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return bg
}

// WorldBounds returns the playable area centered on the origin
func (c *GameConfig) WorldBounds() physics.Rect {
	return physics.Rect{Width: c.World.Width, Height: c.World.Height}
}

// Obstacles returns the configured obstacles as entities
func (c *GameConfig) Obstacles(ids *entity.IDGenerator) []*entity.Obstacle {
	obstacles := make([]*entity.Obstacle, 0, len(c.World.Obstacles))
	for _, o := range c.World.Obstacles {
		box := physics.Rect{
			Center: physics.Vector2D{X: o.X, Y: o.Y},
			Width:  o.Width,
			Height: o.Height,
		}
		obstacles = append(obstacles, entity.NewObstacle(ids.Next(), entity.ObstacleKindFromString(o.Kind), box))
	}
	return obstacles
}

// PingDuration returns the length of the sensor ping
func (c *GameConfig) PingDuration() time.Duration {
	return time.Duration(c.Audio.DurationMs) * time.Millisecond
}

// KeyRelease returns how long the terminal frontend holds a key without a repeat
func (c *GameConfig) KeyRelease() time.Duration {
	return time.Duration(c.Terminal.KeyReleaseMs) * time.Millisecond
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.RGBA{A: 0xff}

	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// FormatColor renders c as "#RRGGBB", adding the alpha byte when not opaque
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
