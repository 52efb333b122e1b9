package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
)

// SoundManager owns the speaker and mixes sound effects into it. Every
// Play method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ping        PingConfig
	logger      *logging.Logger
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(ping PingConfig, logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		ping:   ping,
		logger: logger,
	}
}

// Initialize opens the speaker. Failure leaves the manager silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.ping.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "initializing speaker", "sample_rate", sm.ping.SampleRate)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayPing queues one sensor ping and reports whether it was queued
func (sm *SoundManager) PlayPing() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(NewPing(sm.ping))
	speaker.Unlock()
	return true
}

// Listen plays a ping for every completed sweep revolution published on bus
func (sm *SoundManager) Listen(bus *event.Bus) *event.Subscription {
	return bus.Subscribe(event.SweepCompleted, func(e event.Event) {
		if !sm.PlayPing() {
			return
		}
		if sweep, ok := e.(*event.SweepEvent); ok {
			sm.logger.Debug(context.Background(), "Sensor ping", "revolution", sweep.Revolution)
		}
	})
}
