// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Game is the part of the engine the scene drives
type Game interface {
	Controls
	Start()
	Stop()
	Update(dt float64)
	Render(r entity.Renderer)
	SetViewport(width, height float64)
	Camera() physics.Vector2D
	Context() context.Context
}

// FrameSystem ticks the game once per engo frame and draws the result
type FrameSystem struct {
	game     Game
	renderer entity.Renderer
	camera   *CameraSystem
}

// NewFrameSystem creates a frame system
func NewFrameSystem(game Game, renderer entity.Renderer, camera *CameraSystem) *FrameSystem {
	return &FrameSystem{game: game, renderer: renderer, camera: camera}
}

// Remove satisfies the ecs.System interface
func (fs *FrameSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the game and renders it
func (fs *FrameSystem) Update(dt float32) {
	fs.game.Update(float64(dt))
	fs.game.SetViewport(fs.camera.Viewport(engo.GameWidth(), engo.GameHeight()))
	fs.game.Render(fs.renderer)
}

// GameScene represents the main game scene in Engo
type GameScene struct {
	game     Game
	eventBus *event.Bus
	logger   *logging.Logger
	cfg      *config.GameConfig

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	subscriptions []*event.Subscription
}

// NewGameScene creates a new game scene. A nil cfg uses the defaults.
func NewGameScene(game Game, eventBus *event.Bus, cfg *config.GameConfig, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &GameScene{
		game:     game,
		eventBus: eventBus,
		logger:   logger,
		cfg:      cfg,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := LoadHUDFont(); err != nil {
		scene.logger.Error(scene.game.Context(), "Failed to load HUD font", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	ctx := scene.game.Context()

	scene.camera = newSceneCamera(scene.game, scene.cfg.Camera)
	applyEngoCameraLimits(scene.camera, scene.cfg.WorldBounds(), scene.cfg.World.WallThickness)

	common.SetBackground(scene.cfg.BackgroundColor())
	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(ctx, "Failed to load assets, drawing shapes", err)
	}

	scene.hud = NewHUDSystem()
	if err := scene.hud.Setup(renderSystem); err != nil {
		scene.logger.Error(ctx, "HUD disabled", err)
	}

	scene.renderer = NewEngoRenderer(renderSink{system: renderSystem}, assets, scene.hud)
	scene.input = NewInputSystem(scene.game)
	SetupInputBindings()

	// Input before the frame so presses apply to this tick; camera and
	// HUD after it so they show the state just drawn.
	world.AddSystem(scene.input)
	world.AddSystem(NewFrameSystem(scene.game, scene.renderer, scene.camera))
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.subscribeToEvents()
	scene.game.Start()
}

// subscribeToEvents sets up event handlers
func (scene *GameScene) subscribeToEvents() {
	if scene.eventBus == nil {
		return
	}
	ctx := scene.game.Context()
	scene.subscriptions = append(scene.subscriptions,
		scene.eventBus.Subscribe(event.ShipCollided, func(e event.Event) {
			if c, ok := e.(*event.CollisionEvent); ok {
				scene.logger.Debug(ctx, "Ship contact", "x", c.Position.X, "y", c.Position.Y, "speed", c.Speed)
			}
		}),
		scene.eventBus.Subscribe(event.SweepCompleted, func(e event.Event) {
			if s, ok := e.(*event.SweepEvent); ok {
				scene.logger.Debug(ctx, "Sweep completed", "revolution", s.Revolution)
			}
		}),
	)
}

// Exit is called when engo shuts down
func (scene *GameScene) Exit() {
	if scene.input != nil {
		scene.input.ReleaseAll()
	}
	for _, sub := range scene.subscriptions {
		sub.Cancel()
	}
	scene.subscriptions = nil
	if scene.renderer != nil {
		scene.renderer.Release()
	}
	scene.game.Stop()
}

// Run opens the window described by cfg and blocks until it closes
func Run(cfg *config.GameConfig, scene *GameScene) {
	engo.Run(engo.RunOptions{
		Title:      cfg.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, scene)
}
