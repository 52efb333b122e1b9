// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"iter"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
)

// Draw layers, back to front
const (
	starLayer float32 = iota
	obstacleLayer
	rayLayer
	shipLayer
	hudLayer
)

var (
	wallColor      = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	asteroidColor  = color.RGBA{R: 139, G: 115, B: 85, A: 255}
	shipColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	collisionColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}
)

// spriteSink receives the sprites a renderer creates
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent, zIndex float32)
	Remove(basic ecs.BasicEntity)
}

// renderSink places sprites on a layer of an engo render system
type renderSink struct {
	system *common.RenderSystem
}

func (s renderSink) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent, zIndex float32) {
	render.SetZIndex(zIndex)
	s.system.Add(basic, render, space)
}

func (s renderSink) Remove(basic ecs.BasicEntity) {
	s.system.Remove(basic)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// spritePool recycles sprites between frames so the render system only
// sees additions when a frame draws more of something than any before it
type spritePool struct {
	layer   float32
	sprites []*sprite
	used    int
}

func (p *spritePool) reset() {
	p.used = 0
}

func (p *spritePool) next(sink spriteSink) *sprite {
	if p.used == len(p.sprites) {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent.Scale = engo.Point{X: 1, Y: 1}
		sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent, p.layer)
		p.sprites = append(p.sprites, s)
	}
	s := p.sprites[p.used]
	p.used++
	s.RenderComponent.Hidden = false
	return s
}

// hideUnused hides sprites left over from busier frames
func (p *spritePool) hideUnused() {
	for _, s := range p.sprites[p.used:] {
		s.RenderComponent.Hidden = true
	}
}

func (p *spritePool) visible() int {
	return p.used
}

func (p *spritePool) release(sink spriteSink) {
	for _, s := range p.sprites {
		sink.Remove(s.BasicEntity)
	}
	p.sprites = nil
	p.used = 0
}

// EngoRenderer implements entity.Renderer using the Engo game engine
type EngoRenderer struct {
	sink   spriteSink
	assets *AssetManager
	hud    *HUDSystem

	stars     spritePool
	obstacles spritePool
	rays      spritePool
	ships     spritePool

	frames uint64
}

// NewEngoRenderer creates a renderer drawing into sink. hud may be nil.
func NewEngoRenderer(sink spriteSink, assets *AssetManager, hud *HUDSystem) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		sink:      sink,
		assets:    assets,
		hud:       hud,
		stars:     spritePool{layer: starLayer},
		obstacles: spritePool{layer: obstacleLayer},
		rays:      spritePool{layer: rayLayer},
		ships:     spritePool{layer: shipLayer},
	}
}

// Frames returns how many frames have been presented
func (r *EngoRenderer) Frames() uint64 {
	return r.frames
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, p := range r.pools() {
		p.reset()
	}
}

// RenderStars implements entity.Renderer
func (r *EngoRenderer) RenderStars(stars []starfield.Star) {
	for _, star := range stars {
		s := r.stars.next(r.sink)
		size := float32(1 + 2*star.Brightness)
		s.Drawable = drawableOr(r.assets.StarSprite(), common.Rectangle{})
		s.Scale = textureScale(s.Drawable, size)
		v := uint8(math.Round(255 * clamp01(star.Brightness)))
		s.Color = color.RGBA{R: v, G: v, B: v, A: 255}
		s.Width, s.Height = size, size
		s.Rotation = 0
		s.Position = centeredPosition(toScreen(star.Position), size, size, 0)
	}
}

// RenderObstacle implements entity.Renderer
func (r *EngoRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	if obstacle == nil {
		return
	}
	box := obstacle.GetBounds()
	s := r.obstacles.next(r.sink)
	s.Drawable = common.Rectangle{}
	s.Scale = engo.Point{X: 1, Y: 1}
	s.Color = asteroidColor
	if obstacle.Kind == entity.Wall {
		s.Color = wallColor
	}
	s.Width, s.Height = float32(box.Width), float32(box.Height)
	s.Rotation = 0
	s.Position = centeredPosition(toScreen(box.Center), s.Width, s.Height, 0)
}

// RenderShip implements entity.Renderer
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	if ship == nil {
		return
	}
	box := ship.GetBounds()
	s := r.ships.next(r.sink)
	w, h := float32(box.Width), float32(box.Height)
	s.Drawable = drawableOr(r.assets.ShipSprite(), common.Triangle{})
	s.Scale = textureScale(s.Drawable, w)
	s.Color = shipColor
	if ship.Collided {
		s.Color = collisionColor
	}
	s.Width, s.Height = w, h
	s.Rotation = float32(-ship.Heading())
	s.Position = centeredPosition(toScreen(ship.GetPosition()), w, h, s.Rotation)
}

// RenderRays implements entity.Renderer. Each ray is a one pixel tall
// rectangle rotated about its start point.
func (r *EngoRenderer) RenderRays(rays iter.Seq[sensor.Ray]) {
	for ray := range rays {
		s := r.rays.next(r.sink)
		s.Drawable = common.Rectangle{}
		s.Scale = engo.Point{X: 1, Y: 1}
		s.Color = ray.Color
		s.Width = float32(ray.End.Distance(ray.Start))
		s.Height = 1
		s.Rotation = float32(-ray.Angle)
		s.Position = toScreen(ray.Start)
	}
}

// RenderHUD implements entity.Renderer
func (r *EngoRenderer) RenderHUD(status entity.Status) {
	if r.hud != nil {
		r.hud.SetStatus(status)
	}
}

// Present implements entity.Renderer. Engo draws the sprites itself at the
// end of the frame; Present only hides what this frame did not use.
func (r *EngoRenderer) Present() {
	for _, p := range r.pools() {
		p.hideUnused()
	}
	r.frames++
}

// Release removes every sprite from the render system
func (r *EngoRenderer) Release() {
	for _, p := range r.pools() {
		p.release(r.sink)
	}
}

func (r *EngoRenderer) pools() []*spritePool {
	return []*spritePool{&r.stars, &r.obstacles, &r.rays, &r.ships}
}

// toScreen converts world coordinates (y up) to engo coordinates (y down)
func toScreen(p physics.Vector2D) engo.Point {
	return engo.Point{X: float32(p.X), Y: float32(-p.Y)}
}

// centeredPosition returns the top-left corner that places the center of
// a w by h box rotated clockwise by rotation degrees about that corner at
// center
func centeredPosition(center engo.Point, w, h, rotation float32) engo.Point {
	sin, cos := math.Sincos(float64(rotation) * math.Pi / 180)
	dx := float64(w)/2*cos - float64(h)/2*sin
	dy := float64(w)/2*sin + float64(h)/2*cos
	return engo.Point{X: center.X - float32(dx), Y: center.Y - float32(dy)}
}

// textureScale returns the scale that draws d size pixels wide. Shapes are
// sized by their space component and always use a scale of one.
func textureScale(d common.Drawable, size float32) engo.Point {
	if d == nil || d.Width() == 0 {
		return engo.Point{X: 1, Y: 1}
	}
	k := size / d.Width()
	return engo.Point{X: k, Y: k}
}

func drawableOr(d, fallback common.Drawable) common.Drawable {
	if d == nil {
		return fallback
	}
	return d
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
