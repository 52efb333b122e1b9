// Package audio plays the sensor ping. Sounds are synthesized; no sample
// files are shipped.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// PingConfig describes the tone played on each sensor revolution
type PingConfig struct {
	Frequency  float64
	Duration   time.Duration
	Volume     float64
	SampleRate int
}

// DefaultPingConfig returns a short A5 blip
func DefaultPingConfig() PingConfig {
	return PingConfig{
		Frequency:  880,
		Duration:   120 * time.Millisecond,
		Volume:     0.3,
		SampleRate: 44100,
	}
}

// sine generates a fixed number of sine samples
type sine struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSine returns a streamer producing duration worth of a sine wave
func NewSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{freq: freq, duration: rate.N(duration), rate: rate}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// fade applies a linear attack and release to a stream
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewFade shapes s so it ramps up over attack and down over release
func NewFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, i > 0
		}

		vol := 1.0
		if f.attack > 0 && f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if remaining := f.total - f.position; f.release > 0 && remaining < f.release {
			vol = math.Min(vol, float64(remaining)/float64(f.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewPing builds the sensor ping streamer
func NewPing(cfg PingConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	edge := cfg.Duration / 10

	tone := NewSine(cfg.Frequency, cfg.Duration, rate)
	return newVolume(NewFade(tone, cfg.Duration, edge, edge*4, rate), cfg.Volume)
}
