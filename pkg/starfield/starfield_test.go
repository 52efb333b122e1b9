package starfield

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-starship/pkg/physics"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.TileSize = 256
	cfg.Spacing = 8
	cfg.Threshold = 0.1
	return cfg
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := smallConfig()

	a, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	require.Equal(t, cfg.Layers, a.Layers())
	require.NotZero(t, a.Len(), "expected some stars above the threshold")
	for i := 0; i < a.Layers(); i++ {
		assert.Equal(t, a.Layer(i), b.Layer(i), "layer %d differs between runs", i)
	}
}

func TestGenerate_SeedChangesField(t *testing.T) {
	cfg := smallConfig()
	a, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Seed = "another"
	b, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.Layer(0), b.Layer(0))
}

func TestGenerate_StarsInsideTile(t *testing.T) {
	cfg := smallConfig()
	f, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	for i := 0; i < f.Layers(); i++ {
		for _, s := range f.Layer(i) {
			assert.GreaterOrEqual(t, s.Position.X, 0.0)
			assert.Less(t, s.Position.X, cfg.TileSize)
			assert.GreaterOrEqual(t, s.Position.Y, 0.0)
			assert.Less(t, s.Position.Y, cfg.TileSize)
			assert.Greater(t, s.Brightness, 0.0)
			assert.LessOrEqual(t, s.Brightness, 1.0)
			assert.Equal(t, i, s.Layer)
			assert.Equal(t, Parallax(i, cfg.Layers), s.Parallax)
		}
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no layers", func(c *Config) { c.Layers = 0 }},
		{"zero tile", func(c *Config) { c.TileSize = 0 }},
		{"spacing larger than tile", func(c *Config) { c.Spacing = c.TileSize * 2 }},
		{"zero frequency", func(c *Config) { c.Frequency = 0 }},
		{"threshold too high", func(c *Config) { c.Threshold = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			_, err := Generate(context.Background(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallax(t *testing.T) {
	assert.InDelta(t, 1.0/3, Parallax(0, 3), 1e-9)
	assert.InDelta(t, 1.0, Parallax(2, 3), 1e-9)
}

func TestVisible_WithinView(t *testing.T) {
	f, err := Generate(context.Background(), smallConfig())
	require.NoError(t, err)

	// View larger than the tile so stars repeat
	view := physics.NewRectFromBounds(-300, -300, 300, 300)
	stars := f.Visible(physics.Vector2D{X: 40, Y: -70}, view, 1)
	require.NotEmpty(t, stars)
	assert.Greater(t, len(stars), len(f.Layer(1)))

	for _, s := range stars {
		assert.True(t, view.Contains(s.Position), "star %v outside view", s.Position)
	}
}

func TestVisible_NearLayerFixedToWorld(t *testing.T) {
	cfg := smallConfig()
	f, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	near := cfg.Layers - 1
	view := physics.NewRectFromBounds(0, 0, cfg.TileSize, cfg.TileSize)

	a := f.Visible(physics.Vector2D{}, view, near)
	b := f.Visible(physics.Vector2D{X: 500, Y: 500}, view, near)
	assert.Equal(t, a, b)
}

func TestVisible_UnknownLayer(t *testing.T) {
	f, err := Generate(context.Background(), smallConfig())
	require.NoError(t, err)

	view := physics.NewRectFromBounds(0, 0, 100, 100)
	assert.Nil(t, f.Visible(physics.Vector2D{}, view, -1))
	assert.Nil(t, f.Visible(physics.Vector2D{}, view, 99))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 5.0, wrap(15, 10))
	assert.Equal(t, 5.0, wrap(-5, 10))
	assert.Equal(t, 0.0, wrap(10, 10))
}
