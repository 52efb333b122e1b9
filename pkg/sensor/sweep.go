// Package sensor models the ship's rotating radar sweep: a short history of
// sweep angles from which fading rays are derived on demand.
package sensor

import (
	"image/color"
	"iter"

	"github.com/opd-ai/go-starship/pkg/physics"
)

const (
	// FullCircle is the angle at which the sweep restarts from zero
	FullCircle = 360.0
	// MaxHistory is the deepest trail a sweep keeps
	MaxHistory = 5
)

// Params configures a sweep
type Params struct {
	Range     float64 // ray length in world units
	Step      float64 // degrees advanced per tick
	Capacity  int     // angles kept in the history, 1..MaxHistory
	BaseColor color.RGBA
}

// DefaultParams returns the sweep used by the shipped game
func DefaultParams() Params {
	return Params{
		Range:     300,
		Step:      1,
		Capacity:  MaxHistory,
		BaseColor: color.RGBA{R: 0, G: 255, B: 0, A: 255},
	}
}

// Ray is one rendered sweep line. Index 0 is the oldest surviving angle.
type Ray struct {
	Index int
	Angle float64 // degrees
	Start physics.Vector2D
	End   physics.Vector2D
	Color color.RGBA
}

// Sweep keeps a bounded FIFO of sweep angles
type Sweep struct {
	params Params
	angles []float64
}

// New creates a sweep seeded with a single angle of 0. Capacity is clamped to
// 1..MaxHistory.
func New(params Params) *Sweep {
	params.Capacity = max(1, min(MaxHistory, params.Capacity))
	s := &Sweep{
		params: params,
		angles: make([]float64, 0, params.Capacity+1),
	}
	s.angles = append(s.angles, 0)
	return s
}

// Params returns the sweep configuration
func (s *Sweep) Params() Params {
	return s.params
}

// Tick appends the next sweep angle and evicts the oldest once the history is
// over capacity. It reports whether the sweep wrapped back to 0.
func (s *Sweep) Tick() bool {
	next, wrapped := 0.0, false
	if n := len(s.angles); n > 0 {
		next = s.angles[n-1] + s.params.Step
		if next >= FullCircle {
			next, wrapped = 0, true
		}
	}

	s.angles = append(s.angles, next)
	if len(s.angles) > s.params.Capacity {
		// Shift in place so the backing array is reused every tick.
		copy(s.angles, s.angles[1:])
		s.angles = s.angles[:len(s.angles)-1]
	}
	return wrapped
}

// Angles returns a copy of the history, oldest first
func (s *Sweep) Angles() []float64 {
	return append([]float64(nil), s.angles...)
}

// Len returns the number of stored angles
func (s *Sweep) Len() int {
	return len(s.angles)
}

// Current returns the newest angle, or 0 for an empty history
func (s *Sweep) Current() float64 {
	if len(s.angles) == 0 {
		return 0
	}
	return s.angles[len(s.angles)-1]
}

// reset clears the history. Rays yields nothing until the next Tick.
func (s *Sweep) reset() {
	s.angles = s.angles[:0]
}

// Rays yields one ray per stored angle, cast from origin. The sequence is
// computed from the current history every time it is ranged over.
func (s *Sweep) Rays(origin physics.Vector2D) iter.Seq[Ray] {
	return func(yield func(Ray) bool) {
		for i, angle := range s.angles {
			ray := Ray{
				Index: i,
				Angle: angle,
				Start: origin,
				End:   origin.Add(physics.FromDegrees(angle, s.params.Range)),
				Color: s.shade(i),
			}
			if !yield(ray) {
				return
			}
		}
	}
}

// shade scales the base color by index/capacity, truncating each channel.
// Alpha is kept so faded rays stay opaque against the background.
func (s *Sweep) shade(index int) color.RGBA {
	c := s.params.BaseColor
	scale := func(v uint8) uint8 {
		return uint8(float64(v) * float64(index) / float64(s.params.Capacity))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
