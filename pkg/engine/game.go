// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
	"github.com/opd-ai/go-starship/pkg/starship"
)

type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// ErrShipStartBlocked is returned when the configured start position overlaps a wall
var ErrShipStartBlocked = errors.New("ship start position overlaps a wall")

// Game owns the ship, its sensor sweep and the static world around them.
// Frontends call KeyDown/KeyUp between ticks, Update once per frame and
// Render after each Update.
type Game struct {
	Config      *config.GameConfig
	Ship        *entity.Ship
	Sweep       *sensor.Sweep
	Obstacles   []*entity.Obstacle
	Stars       *starfield.Field
	EventBus    *event.Bus
	EntityLock  sync.RWMutex
	Running     bool
	Status      GameStatus
	CurrentTick uint64
	Revolutions uint64
	FPS         float64
	StartTime   time.Time
	EndTime     time.Time

	resolver *physics.Resolver
	view     physics.Vector2D // viewport width and height in world units
	ids      entity.IDGenerator
	logger   *logging.Logger
	ctx      context.Context
}

// Option customizes a Game
type Option func(*Game)

// WithLogger sets the game's logger
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus makes the game publish on an existing bus
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// WithStarfield uses a pre-generated starfield instead of generating one
func WithStarfield(field *starfield.Field) Option {
	return func(g *Game) { g.Stars = field }
}

// NewGame creates a new game with the specified configuration
func NewGame(ctx context.Context, cfg *config.GameConfig, opts ...Option) (*Game, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	game := &Game{
		Config: cfg,
		Sweep:  sensor.New(cfg.SensorParams()),
		view: physics.Vector2D{
			X: float64(cfg.Window.Width),
			Y: float64(cfg.Window.Height),
		},
	}
	for _, opt := range opts {
		opt(game)
	}
	if game.logger == nil {
		game.logger = logging.NewNopLogger()
	}
	if game.EventBus == nil {
		game.EventBus = event.NewEventBus()
	}
	game.ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

	game.initObstacles()
	if err := game.initShip(); err != nil {
		return nil, err
	}
	if err := game.initStarfield(ctx); err != nil {
		return nil, err
	}

	game.logger.Info(game.ctx, "Game created",
		"obstacles", len(game.Obstacles),
		"stars", game.Stars.Len(),
	)
	return game, nil
}

// initObstacles builds the boundary walls plus the configured obstacles and
// indexes all of them for movement resolution.
func (g *Game) initObstacles() {
	bounds := g.Config.WorldBounds()
	for _, wall := range physics.BoundaryWalls(bounds, g.Config.World.WallThickness) {
		g.Obstacles = append(g.Obstacles, entity.NewObstacle(g.ids.Next(), entity.Wall, wall))
	}
	g.Obstacles = append(g.Obstacles, g.Config.Obstacles(&g.ids)...)

	walls := make([]physics.Rect, len(g.Obstacles))
	for i, o := range g.Obstacles {
		walls[i] = o.GetBounds()
	}
	g.resolver = physics.NewResolver(walls)
}

// initShip places the ship at its configured start.
func (g *Game) initShip() error {
	ship := entity.NewShip(g.ids.Next(), g.Config.ShipStart(),
		g.Config.Ship.Width, g.Config.Ship.Height, g.Config.ShipParams())
	if g.resolver.Blocked(ship.GetBounds()) {
		return fmt.Errorf("%w: %v", ErrShipStartBlocked, ship.GetPosition())
	}
	g.Ship = ship
	return nil
}

// initStarfield generates the background unless one was supplied.
func (g *Game) initStarfield(ctx context.Context) error {
	if g.Stars != nil {
		return nil
	}
	field, err := starfield.Generate(ctx, g.Config.Starfield)
	if err != nil {
		return err
	}
	g.Stars = field
	return nil
}

// Context returns the game's logging context, carrying its session ID
func (g *Game) Context() context.Context {
	return g.ctx
}

// Start begins the game update loop
func (g *Game) Start() {
	g.EntityLock.Lock()
	g.Running = true
	g.Status = GameStatusActive
	g.StartTime = time.Now()
	g.EntityLock.Unlock()

	g.logger.Info(g.ctx, "Game started", "correlation_id", logging.GetCorrelationID(g.ctx))
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Stop halts the game update loop. Stopping twice has no effect.
func (g *Game) Stop() {
	g.EntityLock.Lock()
	if g.Status == GameStatusEnded {
		g.EntityLock.Unlock()
		return
	}
	g.Running = false
	g.Status = GameStatusEnded
	g.EndTime = time.Now()
	tick, revolutions := g.CurrentTick, g.Revolutions
	g.EntityLock.Unlock()

	g.logger.Info(g.ctx, "Game ended", "ticks", tick, "revolutions", revolutions)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// KeyDown forwards a direction press to the ship
func (g *Game) KeyDown(d starship.Direction) {
	g.EntityLock.Lock()
	g.Ship.Craft.KeyDown(d)
	tick := g.CurrentTick
	g.EntityLock.Unlock()

	g.EventBus.Publish(event.NewInputEvent(event.DirectionPressed, g, d, tick))
}

// KeyUp forwards a direction release to the ship
func (g *Game) KeyUp(d starship.Direction) {
	g.EntityLock.Lock()
	g.Ship.Craft.KeyUp(d)
	tick := g.CurrentTick
	g.EntityLock.Unlock()

	g.EventBus.Publish(event.NewInputEvent(event.DirectionReleased, g, d, tick))
}

// Update advances the game state by one tick. dt is the frame time in
// seconds and only feeds the displayed frame rate; motion is per tick.
// Update does nothing while the game is not running.
func (g *Game) Update(dt float64) {
	g.EntityLock.Lock()
	if !g.Running {
		g.EntityLock.Unlock()
		return
	}

	g.FPS = FrameRate(dt)

	wasColliding := g.Ship.Collided
	var pending []event.Event
	if g.Ship.Update(g.resolver) && !wasColliding {
		pending = append(pending, event.NewCollisionEvent(g,
			g.Ship.GetPosition(), g.Ship.Craft.Speed, g.CurrentTick))
	}

	if g.Sweep.Tick() {
		g.Revolutions++
		pending = append(pending, event.NewSweepEvent(g, g.Revolutions, g.CurrentTick))
	}

	g.CurrentTick++
	g.EntityLock.Unlock()

	// Publish outside the lock so handlers may call back into the game
	for _, e := range pending {
		g.EventBus.Publish(e)
	}
}

// FrameRate converts a frame time in seconds to frames per second. A zero
// or negative frame time yields 0.
func FrameRate(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}

// SetViewport sets the visible area size in world units, used to pick the
// stars to draw
func (g *Game) SetViewport(width, height float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.view = physics.Vector2D{X: width, Y: height}
}

// Camera returns the point the view is centered on
func (g *Game) Camera() physics.Vector2D {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.Ship.GetPosition()
}

// Render draws one frame: background stars, obstacles, the ship, the sensor
// rays and the HUD, in that order.
func (g *Game) Render(r entity.Renderer) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	camera := g.Ship.GetPosition()
	view := physics.Rect{Center: camera, Width: g.view.X, Height: g.view.Y}

	r.Clear()
	r.RenderStars(g.Stars.VisibleAll(camera, view))
	for _, o := range g.Obstacles {
		if o.Active && o.GetBounds().Intersects(view) {
			o.Render(r)
		}
	}
	g.Ship.Render(r)
	r.RenderRays(g.Sweep.Rays(camera))
	r.RenderHUD(g.status())
	r.Present()
}

// GetStatus returns the HUD readout for the current tick
func (g *Game) GetStatus() entity.Status {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.status()
}

func (g *Game) status() entity.Status {
	return entity.Status{
		Tick:     g.CurrentTick,
		FPS:      g.FPS,
		Heading:  g.Ship.Heading(),
		Speed:    g.Ship.Craft.Speed,
		Position: g.Ship.GetPosition(),
		Collided: g.Ship.Collided,
	}
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	craft := g.Ship.Craft
	return &GameState{
		Tick:        g.CurrentTick,
		Revolutions: g.Revolutions,
		Ship: ShipState{
			ID:       g.Ship.GetID(),
			Position: g.Ship.GetPosition(),
			Velocity: craft.Velocity,
			Heading:  craft.Heading,
			TurnRate: craft.TurnRate,
			Thrust:   craft.Thrust,
			Speed:    craft.Speed,
			Collided: g.Ship.Collided,
		},
		SweepAngles: g.Sweep.Angles(),
	}
}

// GameState represents a snapshot of the game state
type GameState struct {
	Tick        uint64
	Revolutions uint64
	Ship        ShipState
	SweepAngles []float64
}

// ShipState represents a snapshot of a ship's state
type ShipState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64
	TurnRate float64
	Thrust   float64
	Speed    float64
	Collided bool
}
