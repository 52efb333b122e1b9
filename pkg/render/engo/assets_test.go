package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssetManager(t *testing.T) {
	am := NewAssetManager()

	require.NotNil(t, am)
	assert.Nil(t, am.ShipSprite(), "no textures before LoadAssets")
	assert.Nil(t, am.StarSprite(), "no textures before LoadAssets")
}

func TestShipImage(t *testing.T) {
	img := shipImage(shipSpriteSize)

	require.Equal(t, shipSpriteSize, img.Bounds().Dx())
	require.Equal(t, shipSpriteSize, img.Bounds().Dy())

	mid := shipSpriteSize / 2
	assert.NotZero(t, img.NRGBAAt(mid, 1).A, "nose at the top center")
	assert.Zero(t, img.NRGBAAt(0, 0).A, "top left corner")
	assert.Zero(t, img.NRGBAAt(shipSpriteSize-1, 0).A, "top right corner")
	assert.Zero(t, img.NRGBAAt(mid, shipSpriteSize-1).A, "tail notch")

	// the hull is mirror symmetric
	for y := 0; y < shipSpriteSize; y++ {
		for x := 0; x < mid; x++ {
			require.Equal(t, img.NRGBAAt(x, y), img.NRGBAAt(shipSpriteSize-1-x, y), "row %d column %d", y, x)
		}
	}
}

func TestStarImage(t *testing.T) {
	img := starImage(starSpriteSize)
	c := starSpriteSize / 2

	center := img.NRGBAAt(c, c).A
	assert.GreaterOrEqual(t, center, uint8(200), "bright center")
	assert.Less(t, img.NRGBAAt(c, 0).A, center, "alpha falls off toward the edge")
	assert.Zero(t, img.NRGBAAt(0, 0).A, "transparent corners")
}
