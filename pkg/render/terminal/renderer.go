// Package terminal is a tcell frontend. Frames are drawn into a cell buffer
// and flushed to the screen on Present.
package terminal

import (
	"fmt"
	"image/color"
	"iter"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
)

// rowAspect is how many columns of world space one row covers; terminal
// cells are about twice as tall as they are wide.
const rowAspect = 2.0

type cell struct {
	r     rune
	style tcell.Style
}

// Renderer draws the game onto a tcell screen
type Renderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]cell
	scale     float64 // world units per column
	centerPos physics.Vector2D
	blank     tcell.Style
}

// NewRenderer creates a renderer for screen. scale is world units per column.
func NewRenderer(screen tcell.Screen, scale float64, background color.RGBA) *Renderer {
	r := &Renderer{
		screen: screen,
		scale:  scale,
		blank:  tcell.StyleDefault.Background(rgb(background)),
	}
	r.Resize()
	return r
}

// Resize matches the buffer to the current screen size
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height && r.buffer != nil {
		return
	}
	r.width, r.height = w, h
	r.buffer = make([][]cell, h)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, w)
	}
}

// Size returns the buffer size in cells
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Viewport returns the visible area in world units
func (r *Renderer) Viewport() (float64, float64) {
	return float64(r.width) * r.scale, float64(r.height) * r.scale * rowAspect
}

// SetCenter sets the center position of the view
func (r *Renderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates. World Y
// points up, screen rows grow downward.
func (r *Renderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := math.Floor(-(pos.Y-r.centerPos.Y)/(r.scale*rowAspect) + float64(r.height)/2)
	return int(screenX), int(screenY)
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

// Cell returns the rune drawn at x, y in the current frame
func (r *Renderer) Cell(x, y int) rune {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.buffer[y][x].r
}

// Clear implements entity.Renderer
func (r *Renderer) Clear() {
	r.Resize()
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: r.blank}
		}
	}
}

// RenderStars implements entity.Renderer
func (r *Renderer) RenderStars(stars []starfield.Star) {
	for _, s := range stars {
		x, y := r.worldToScreen(s.Position)
		level := uint8(80 + 175*s.Brightness*s.Parallax)
		style := r.blank.Foreground(tcell.NewRGBColor(int32(level), int32(level), int32(level)))

		glyph := '.'
		switch {
		case s.Brightness > 0.8:
			glyph = '*'
		case s.Brightness > 0.5:
			glyph = '+'
		}
		r.set(x, y, glyph, style)
	}
}

// RenderObstacle implements entity.Renderer
func (r *Renderer) RenderObstacle(obstacle *entity.Obstacle) {
	glyph, fg := '█', tcell.NewRGBColor(150, 150, 160)
	if obstacle.Kind == entity.Asteroid {
		glyph, fg = '▒', tcell.NewRGBColor(160, 110, 60)
	}
	style := r.blank.Foreground(fg)

	box := obstacle.GetBounds()
	lo, hi := box.Min(), box.Max()
	x0, y1 := r.worldToScreen(lo)
	x1, y0 := r.worldToScreen(hi)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.width-1), min(y1, r.height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, glyph, style)
		}
	}
}

var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// shipGlyph picks the arrow closest to the direction of travel
func shipGlyph(heading float64) rune {
	travel := heading + 90
	octant := int(math.Round(travel/45)) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// RenderShip implements entity.Renderer
func (r *Renderer) RenderShip(ship *entity.Ship) {
	x, y := r.worldToScreen(ship.GetPosition())
	fg := tcell.ColorWhite
	if ship.Collided {
		fg = tcell.ColorRed
	}
	r.set(x, y, shipGlyph(ship.Heading()), r.blank.Foreground(fg).Bold(true))
}

// RenderRays implements entity.Renderer. Rays arrive oldest first, so the
// brightest ray is drawn last.
func (r *Renderer) RenderRays(rays iter.Seq[sensor.Ray]) {
	for ray := range rays {
		style := r.blank.Foreground(rgb(ray.Color))
		x0, y0 := r.worldToScreen(ray.Start)
		x1, y1 := r.worldToScreen(ray.End)
		for x, y := range line(x0, y0, x1, y1) {
			if x == x0 && y == y0 {
				continue
			}
			r.set(x, y, '·', style)
		}
	}
}

// RenderHUD implements entity.Renderer
func (r *Renderer) RenderHUD(status entity.Status) {
	text := fmt.Sprintf("FPS %5.1f  HDG %7.1f  SPD %6.2f  POS %.0f,%.0f  TICK %d",
		status.FPS, status.Heading, status.Speed, status.Position.X, status.Position.Y, status.Tick)
	if status.Collided {
		text += "  CONTACT"
	}
	r.text(0, 0, text, r.blank.Foreground(tcell.ColorYellow))
	r.text(0, r.height-1, "arrows/WASD fly  q quit", r.blank.Foreground(tcell.ColorGray))
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
}

// Present implements entity.Renderer
func (r *Renderer) Present() {
	for y, row := range r.buffer {
		for x, c := range row {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

// line yields the cells of a Bresenham line from (x0, y0) to (x1, y1)
func line(x0, y0, x1, y1 int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		dx, dy := abs(x1-x0), -abs(y1-y0)
		sx, sy := 1, 1
		if x0 > x1 {
			sx = -1
		}
		if y0 > y1 {
			sy = -1
		}
		err := dx + dy
		for {
			if !yield(x0, y0) {
				return
			}
			if x0 == x1 && y0 == y1 {
				return
			}
			e2 := 2 * err
			if e2 >= dy {
				err += dy
				x0 += sx
			}
			if e2 <= dx {
				err += dx
				y0 += sy
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ entity.Renderer = (*Renderer)(nil)
