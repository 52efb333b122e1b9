// Package starship implements the player ship's motion model: held keys
// accumulate turn rate and thrust, and each tick integrates heading, speed
// and velocity with fixed per-tick constants.
package starship

import (
	"math"

	"github.com/opd-ai/go-starship/pkg/physics"
)

// Direction is a logical movement input
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

var directionNames = [...]string{"forward", "backward", "left", "right"}

func (d Direction) String() string {
	if d < Forward || d > Right {
		return "unknown"
	}
	return directionNames[d]
}

// ForwardOffset is the angle in degrees between the stored heading and the
// direction of travel. A heading of 0 therefore moves the ship along +Y.
const ForwardOffset = 90.0

// Params tunes the motion model. All values are per tick.
type Params struct {
	TurnStep   float64 // degrees added to turn rate per held turn key
	ThrustStep float64 // thrust added per held forward/backward key
	MaxSpeed   float64
	Friction   float64 // speed lost per tick while no thrust is applied
}

// DefaultParams returns the tuning used by the shipped game
func DefaultParams() Params {
	return Params{
		TurnStep:   3,
		ThrustStep: 0.5,
		MaxSpeed:   15,
		Friction:   0.1,
	}
}

// Starship holds the motion state of the player's ship. Position is owned by
// whatever applies Velocity (the movement resolver); the ship only derives
// Velocity from its heading and speed.
type Starship struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64 // degrees, unbounded
	TurnRate float64 // degrees per tick
	Thrust   float64
	Speed    float64

	params Params
	held   [4]int // net presses per direction
}

// New creates a ship at rest at position
func New(position physics.Vector2D, params Params) *Starship {
	return &Starship{
		Position: position,
		params:   params,
	}
}

// Params returns the ship's tuning
func (s *Starship) Params() Params {
	return s.params
}

// KeyDown registers a press of d. Unknown directions are ignored.
func (s *Starship) KeyDown(d Direction) {
	if !s.track(d, 1) {
		return
	}
	s.recompute()
}

// KeyUp registers a release of d, exactly undoing the matching KeyDown.
// Speed is left to decay on its own.
func (s *Starship) KeyUp(d Direction) {
	if !s.track(d, -1) {
		return
	}
	s.recompute()
}

func (s *Starship) track(d Direction, delta int) bool {
	if d < Forward || d > Right {
		return false
	}
	s.held[d] += delta
	return true
}

// recompute derives turn rate and thrust from the net presses so that any
// sequence of presses followed by the matching releases returns both to
// exactly zero.
func (s *Starship) recompute() {
	s.TurnRate = float64(s.held[Left]-s.held[Right]) * s.params.TurnStep
	s.Thrust = float64(s.held[Forward]-s.held[Backward]) * s.params.ThrustStep
}

// AdvanceTick integrates one simulation step
func (s *Starship) AdvanceTick() {
	s.Heading += s.TurnRate

	s.Speed += s.Thrust
	if s.Thrust == 0 {
		s.Speed = decay(s.Speed, s.params.Friction)
	}
	s.Speed = clamp(s.Speed, -s.params.MaxSpeed, s.params.MaxSpeed)

	s.Velocity = s.Facing().Scale(s.Speed)
}

// Facing returns the unit vector the ship travels along at positive speed
func (s *Starship) Facing() physics.Vector2D {
	return physics.FromDegrees(s.Heading+ForwardOffset, 1)
}

// decay moves speed toward zero by step without crossing it
func decay(speed, step float64) float64 {
	if math.Abs(speed) <= step {
		return 0
	}
	if speed > 0 {
		return speed - step
	}
	return speed + step
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
