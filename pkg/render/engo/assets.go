// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"
)

const (
	shipSpriteSize = 24
	starSpriteSize = 5
)

// AssetManager builds the game's procedural textures. Textures need a live
// GL context, so LoadAssets must run from Scene.Setup.
type AssetManager struct {
	shipSprite common.Drawable
	starSprite common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// LoadAssets creates all textures
func (am *AssetManager) LoadAssets() error {
	am.shipSprite = convertToEngoTexture(shipImage(shipSpriteSize))
	am.starSprite = convertToEngoTexture(starImage(starSpriteSize))
	return nil
}

// shipImage draws an isosceles triangle pointing at the top edge with a
// notched tail
func shipImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		// width grows from the nose down to the tail
		span := half * float64(y+1) / float64(size)
		notch := 0.0
		if y > size*3/4 {
			notch = span * float64(y-size*3/4) / float64(size/4)
		}
		for x := 0; x < size; x++ {
			d := math.Abs(float64(x) + 0.5 - half)
			if d <= span && d >= notch/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}

// starImage draws a soft round dot with alpha falling off from the center
func starImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			if d >= 1 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(255 * (1 - d*d))})
		}
	}
	return img
}

// convertToEngoTexture converts an image to an Engo-compatible texture.
func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// ShipSprite returns the ship texture, nil before LoadAssets
func (am *AssetManager) ShipSprite() common.Drawable {
	return am.shipSprite
}

// StarSprite returns the star texture, nil before LoadAssets
func (am *AssetManager) StarSprite() common.Drawable {
	return am.starSprite
}
