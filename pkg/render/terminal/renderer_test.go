package terminal

import (
	"image/color"
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sensor"
	"github.com/opd-ai/go-starship/pkg/starfield"
	"github.com/opd-ai/go-starship/pkg/starship"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestRenderer(t *testing.T) *Renderer {
	r := NewRenderer(newTestScreen(t), 10, color.RGBA{A: 0xff})
	r.Clear()
	return r
}

func TestNewRenderer_MatchesScreen(t *testing.T) {
	r := newTestRenderer(t)

	w, h := r.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	vw, vh := r.Viewport()
	assert.Equal(t, 800.0, vw)
	assert.Equal(t, 480.0, vh)
}

func TestWorldToScreen(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name   string
		center physics.Vector2D
		pos    physics.Vector2D
		x, y   int
	}{
		{"origin at center", physics.Vector2D{}, physics.Vector2D{}, 40, 12},
		{"east", physics.Vector2D{}, physics.Vector2D{X: 100}, 50, 12},
		{"north is up", physics.Vector2D{}, physics.Vector2D{Y: 40}, 40, 10},
		{"south is down", physics.Vector2D{}, physics.Vector2D{Y: -40}, 40, 14},
		{"follows center", physics.Vector2D{X: 100, Y: 40}, physics.Vector2D{X: 100, Y: 40}, 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.SetCenter(tt.center)
			x, y := r.worldToScreen(tt.pos)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '↑'},
		{-90, '→'},
		{90, '←'},
		{180, '↓'},
		{45, '↖'},
		{-450, '→'},
		{722, '↑'},
	}

	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(shipGlyph(tt.heading)), "heading %v", tt.heading)
	}
}

func TestRenderShip_AtCenter(t *testing.T) {
	r := newTestRenderer(t)
	ship := entity.NewShip(1, physics.Vector2D{}, 10, 10, starship.DefaultParams())

	r.RenderShip(ship)
	assert.Equal(t, '↑', r.Cell(40, 12))
}

func TestRenderRays_DrawsLineFromShip(t *testing.T) {
	r := newTestRenderer(t)
	sweep := sensor.New(sensor.DefaultParams()) // one ray at 0 degrees, range 300

	r.RenderRays(sweep.Rays(physics.Vector2D{}))

	assert.Equal(t, rune(0), r.Cell(-1, -1))
	assert.Equal(t, ' ', r.Cell(40, 12), "origin cell is left for the ship")
	for x := 41; x <= 70; x++ {
		assert.Equal(t, '·', r.Cell(x, 12), "column %d", x)
	}
	assert.Equal(t, ' ', r.Cell(71, 12))
}

func TestRenderObstacle_FillsBox(t *testing.T) {
	r := newTestRenderer(t)
	box := physics.Rect{Center: physics.Vector2D{X: 100}, Width: 40, Height: 40}

	r.RenderObstacle(entity.NewObstacle(1, entity.Asteroid, box))

	for y := 11; y <= 13; y++ {
		for x := 48; x <= 52; x++ {
			assert.Equal(t, '▒', r.Cell(x, y), "cell %d,%d", x, y)
		}
	}
	assert.Equal(t, ' ', r.Cell(47, 12))
	assert.Equal(t, ' ', r.Cell(53, 12))

	r.RenderObstacle(entity.NewObstacle(2, entity.Wall, physics.Rect{Width: 5000, Height: 10}))
	assert.Equal(t, '█', r.Cell(0, 12), "oversized obstacles are clipped")
	assert.Equal(t, '█', r.Cell(79, 12))
}

func TestRenderStars_GlyphByBrightness(t *testing.T) {
	r := newTestRenderer(t)

	r.RenderStars([]starfield.Star{
		{Position: physics.Vector2D{X: -100}, Brightness: 0.3, Parallax: 1},
		{Position: physics.Vector2D{X: 0, Y: 100}, Brightness: 0.6, Parallax: 1},
		{Position: physics.Vector2D{X: 100}, Brightness: 0.9, Parallax: 0.5},
		{Position: physics.Vector2D{X: 99999}, Brightness: 1, Parallax: 1},
	})

	assert.Equal(t, '.', r.Cell(30, 12))
	assert.Equal(t, '+', r.Cell(40, 7))
	assert.Equal(t, '*', r.Cell(50, 12))
}

func TestRenderHUD(t *testing.T) {
	r := newTestRenderer(t)

	r.RenderHUD(entity.Status{FPS: 60, Heading: 12, Speed: 1.5, Tick: 3, Collided: true})

	var top []rune
	for x := 0; x < 80; x++ {
		top = append(top, r.Cell(x, 0))
	}
	assert.Equal(t, "FPS  60.0", string(top[:9]))
	assert.Contains(t, string(top), "CONTACT")
	assert.Equal(t, 'a', r.Cell(0, 23))
}

func TestClearAndPresent(t *testing.T) {
	r := newTestRenderer(t)
	r.RenderShip(entity.NewShip(1, physics.Vector2D{}, 10, 10, starship.DefaultParams()))
	r.Present()

	r.Clear()
	assert.Equal(t, ' ', r.Cell(40, 12))
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"point", 2, 2, 2, 2, [][2]int{{2, 2}}},
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical up", 1, 3, 1, 1, [][2]int{{1, 3}, {1, 2}, {1, 1}}},
		{"diagonal", 0, 0, -2, 2, [][2]int{{0, 0}, {-1, 1}, {-2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			for x, y := range line(tt.x0, tt.y0, tt.x1, tt.y1) {
				got = append(got, [2]int{x, y})
			}
			assert.True(t, slices.Equal(tt.want, got), "got %v, want %v", got, tt.want)
		})
	}
}
