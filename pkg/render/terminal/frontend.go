package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/starship"
)

// Game is the part of the engine the frontend drives
type Game interface {
	KeyDown(d starship.Direction)
	KeyUp(d starship.Direction)
	Update(dt float64)
	Render(r entity.Renderer)
	SetViewport(width, height float64)
	Camera() physics.Vector2D
}

// Frontend runs the game loop on a tcell screen. All game calls happen on
// the goroutine running Run.
type Frontend struct {
	screen   tcell.Screen
	renderer *Renderer
	latch    *KeyLatch
	interval time.Duration
	logger   *logging.Logger
	last     time.Time
}

// NewFrontend creates a frontend for an initialized screen
func NewFrontend(screen tcell.Screen, cfg *config.GameConfig, logger *logging.Logger) *Frontend {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Frontend{
		screen:   screen,
		renderer: NewRenderer(screen, cfg.Terminal.Scale, cfg.BackgroundColor()),
		latch:    NewKeyLatch(cfg.KeyRelease()),
		interval: time.Second / time.Duration(cfg.Terminal.TickRate),
		logger:   logger,
	}
}

// Renderer returns the frontend's renderer
func (f *Frontend) Renderer() *Renderer {
	return f.renderer
}

// Run ticks and draws game until the player quits or ctx is done. It
// returns nil on quit and ctx.Err() on cancellation.
func (f *Frontend) Run(ctx context.Context, game Game) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.last = time.Now()
	f.logger.Info(ctx, "Terminal frontend started", "interval", f.interval.String())

	for {
		select {
		case <-ctx.Done():
			f.releaseAll(game)
			return ctx.Err()

		case ev := <-events:
			if !f.handleEvent(game, ev, time.Now()) {
				f.releaseAll(game)
				f.logger.Info(ctx, "Terminal frontend stopped by player")
				return nil
			}

		case now := <-ticker.C:
			f.step(game, now)
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running
func (f *Frontend) handleEvent(game Game, ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if IsQuit(ev) {
			return false
		}
		if d, ok := DirectionForKey(ev); ok && f.latch.Press(d, now) {
			game.KeyDown(d)
		}

	case *tcell.EventResize:
		f.screen.Sync()
		f.renderer.Resize()
	}
	return true
}

// step releases idle keys, advances one tick and draws the frame
func (f *Frontend) step(game Game, now time.Time) {
	for _, d := range f.latch.Expire(now) {
		game.KeyUp(d)
	}

	dt := now.Sub(f.last).Seconds()
	f.last = now
	game.Update(dt)

	game.SetViewport(f.renderer.Viewport())
	f.renderer.SetCenter(game.Camera())
	game.Render(f.renderer)
}

func (f *Frontend) releaseAll(game Game) {
	for _, d := range f.latch.ReleaseAll() {
		game.KeyUp(d)
	}
}
