// Package starfield generates the procedural parallax background the ship
// flies over. Stars are sampled from OpenSimplex noise on a square tile that
// repeats across the world, one tile per depth layer.
package starfield

import (
	"context"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/ojrac/opensimplex-go"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-starship/pkg/physics"
)

// Config controls starfield generation
type Config struct {
	Seed      string  `json:"seed" yaml:"seed"`
	Layers    int     `json:"layers" yaml:"layers"`
	TileSize  float64 `json:"tileSize" yaml:"tileSize"`
	Spacing   float64 `json:"spacing" yaml:"spacing"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// DefaultConfig returns a three-layer field with a sparse star density
func DefaultConfig() Config {
	return Config{
		Seed:      "starship",
		Layers:    3,
		TileSize:  1024,
		Spacing:   16,
		Frequency: 0.05,
		Threshold: 0.36,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Layers < 1:
		return fmt.Errorf("starfield layers must be at least 1, got %d", c.Layers)
	case c.TileSize <= 0:
		return fmt.Errorf("starfield tile size must be positive, got %g", c.TileSize)
	case c.Spacing <= 0 || c.Spacing > c.TileSize:
		return fmt.Errorf("starfield spacing must be in (0, %g], got %g", c.TileSize, c.Spacing)
	case c.Frequency <= 0:
		return fmt.Errorf("starfield frequency must be positive, got %g", c.Frequency)
	case c.Threshold < -1 || c.Threshold >= 1:
		return fmt.Errorf("starfield threshold must be in [-1, 1), got %g", c.Threshold)
	}
	return nil
}

// Star is a single background point. Position is relative to the tile origin.
type Star struct {
	Position   physics.Vector2D
	Brightness float64
	Layer      int
	Parallax   float64
}

// Field holds the generated layers, farthest first
type Field struct {
	cfg    Config
	layers [][]Star
}

// Generate builds every layer concurrently. The result depends only on cfg.
func Generate(ctx context.Context, cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := int64(xxhash.Sum64String(cfg.Seed))
	layers := make([][]Star, cfg.Layers)

	g, ctx := errgroup.WithContext(ctx)
	for i := range layers {
		g.Go(func() error {
			stars, err := generateLayer(ctx, cfg, base, i)
			if err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
			layers[i] = stars
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generating starfield: %w", err)
	}

	return &Field{cfg: cfg, layers: layers}, nil
}

func generateLayer(ctx context.Context, cfg Config, base int64, layer int) ([]Star, error) {
	noise := opensimplex.New(base + int64(layer)*7919)
	parallax := Parallax(layer, cfg.Layers)
	cells := int(cfg.TileSize / cfg.Spacing)

	var stars []Star
	for y := 0; y < cells; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < cells; x++ {
			fx, fy := float64(x)*cfg.Frequency, float64(y)*cfg.Frequency
			v := noise.Eval2(fx, fy)
			if v <= cfg.Threshold {
				continue
			}

			// Jitter inside the cell so stars do not line up on the grid
			jx := noise.Eval2(fx+101.3, fy) * cfg.Spacing / 2
			jy := noise.Eval2(fx, fy+101.3) * cfg.Spacing / 2
			pos := physics.Vector2D{
				X: wrap(float64(x)*cfg.Spacing+jx, cfg.TileSize),
				Y: wrap(float64(y)*cfg.Spacing+jy, cfg.TileSize),
			}

			stars = append(stars, Star{
				Position:   pos,
				Brightness: math.Min(1, (v-cfg.Threshold)/(1-cfg.Threshold)+0.25),
				Layer:      layer,
				Parallax:   parallax,
			})
		}
	}
	return stars, nil
}

// Parallax returns the fraction of world motion a layer follows. The
// nearest layer is fixed to the world (1), farther layers lag behind.
func Parallax(layer, layers int) float64 {
	return float64(layer+1) / float64(layers)
}

// Config returns the configuration the field was generated from
func (f *Field) Config() Config {
	return f.cfg
}

// Layers returns the number of layers
func (f *Field) Layers() int {
	return len(f.layers)
}

// Layer returns the stars of one layer in tile coordinates
func (f *Field) Layer(layer int) []Star {
	if layer < 0 || layer >= len(f.layers) {
		return nil
	}
	return f.layers[layer]
}

// Len returns the number of stars across all layers
func (f *Field) Len() int {
	n := 0
	for _, l := range f.layers {
		n += len(l)
	}
	return n
}

// Visible returns the stars of layer that fall inside view, in world
// coordinates. The tile repeats in both directions and is shifted by the
// camera so that a layer with parallax p scrolls at p times the camera speed.
func (f *Field) Visible(camera physics.Vector2D, view physics.Rect, layer int) []Star {
	stars := f.Layer(layer)
	if len(stars) == 0 {
		return nil
	}

	tile := f.cfg.TileSize
	min, max := view.Min(), view.Max()
	var out []Star
	for _, s := range stars {
		shift := camera.Scale(1 - s.Parallax)
		bx := s.Position.X + shift.X
		by := s.Position.Y + shift.Y

		startX := min.X + wrap(bx-min.X, tile)
		startY := min.Y + wrap(by-min.Y, tile)
		for x := startX; x < max.X; x += tile {
			for y := startY; y < max.Y; y += tile {
				v := s
				v.Position = physics.Vector2D{X: x, Y: y}
				out = append(out, v)
			}
		}
	}
	return out
}

// VisibleAll returns the visible stars of every layer, farthest first
func (f *Field) VisibleAll(camera physics.Vector2D, view physics.Rect) []Star {
	var out []Star
	for i := range f.layers {
		out = append(out, f.Visible(camera, view, i)...)
	}
	return out
}

func wrap(v, size float64) float64 {
	m := math.Mod(v, size)
	if m < 0 {
		m += size
	}
	return m
}
