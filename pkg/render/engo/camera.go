// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Target is anything the camera can follow
type Target interface {
	Camera() physics.Vector2D
}

// CameraSystem keeps engo's camera on the ship. Zoom is the camera
// distance: 1 shows the world at one pixel per unit, 2 shows twice the
// area.
type CameraSystem struct {
	source Target

	target    physics.Vector2D
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float32
	smoothing   bool

	currentPos physics.Vector2D
}

// NewCameraSystem creates a camera following source with the default zoom
// limits and no smoothing
func NewCameraSystem(source Target) *CameraSystem {
	return &CameraSystem{
		source:      source,
		zoom:        1.0,
		minZoom:     0.25,
		maxZoom:     3.0,
		followSpeed: 2.0,
	}
}

// newSceneCamera creates the camera a scene uses, tuned by cfg
func newSceneCamera(source Target, cfg config.CameraConfig) *CameraSystem {
	cs := NewCameraSystem(source)
	cs.SetZoomLimits(float32(cfg.MinZoom), float32(cfg.MaxZoom))
	cs.EnableSmoothing(cfg.Smoothing)
	cs.SetFollowSpeed(float32(cfg.FollowSpeed))
	return cs
}

// cameraBounds returns the area engo's camera may move in: the world plus
// its boundary walls, in screen coordinates
func cameraBounds(world physics.Rect, wallThickness float64) engo.AABB {
	area := world.Grow(wallThickness, wallThickness)
	lo, hi := toScreen(area.Min()), toScreen(area.Max())
	return engo.AABB{
		Min: engo.Point{X: lo.X, Y: hi.Y},
		Max: engo.Point{X: hi.X, Y: lo.Y},
	}
}

// applyEngoCameraLimits makes engo's own camera clamps match cs and world.
// It must run before the render system adds engo's camera.
func applyEngoCameraLimits(cs *CameraSystem, world physics.Rect, wallThickness float64) {
	common.CameraBounds = cameraBounds(world, wallThickness)
	common.MinZoom = cs.minZoom
	common.MaxZoom = cs.maxZoom
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update moves the camera to the ship and applies zoom input
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.source != nil {
		cs.SetTarget(cs.source.Camera())
	}
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}

	cs.applyCameraTransform()
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1 - scrollY*0.1))
	}
	if engo.Input.Button(buttonResetZoom).JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := min(float64(cs.followSpeed)*float64(dt), 1)
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(step))
}

// applyCameraTransform points engo's camera at the current position
func (cs *CameraSystem) applyCameraTransform() {
	p := toScreen(cs.currentPos)
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: p.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: p.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: cs.zoom})
}

// SetTarget sets the target position for the camera to follow
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first {
		cs.currentPos = target
	}
}

// SetZoom sets the camera distance within the zoom limits
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	return max(cs.minZoom, min(cs.maxZoom, zoom))
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(lo, hi float32) {
	cs.minZoom = lo
	cs.maxZoom = hi
	cs.zoom = cs.clampZoom(cs.zoom)
}

// EnableSmoothing enables or disables easing toward the target
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// SetFollowSpeed sets the fraction of the remaining distance covered per
// second while smoothing
func (cs *CameraSystem) SetFollowSpeed(speed float32) {
	cs.followSpeed = speed
}

// Viewport returns the world area visible on a screen of the given size
func (cs *CameraSystem) Viewport(screenWidth, screenHeight float32) (float64, float64) {
	return float64(screenWidth * cs.zoom), float64(screenHeight * cs.zoom)
}
