// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-starship/pkg/entity"
)

const (
	hudFontURL  = "go.ttf"
	hudFontSize = 16
	hudMargin   = 10

	helpText    = "arrows/WASD fly  scroll zoom  R reset zoom  Esc quit"
	contactText = "CONTACT"
)

// LoadHUDFont registers the embedded Go Regular font with engo's file
// loader. Call it from Scene.Preload.
func LoadHUDFont() error {
	return engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF))
}

// HUDSystem draws the status line, the contact warning and the key help
// in screen space
type HUDSystem struct {
	status  *sprite
	contact *sprite
	help    *sprite

	font    *common.Font
	alert   *common.Font
	current entity.Status
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

// Setup creates the fonts and text entities. It needs the font loaded by
// LoadHUDFont and a live GL context.
func (hud *HUDSystem) Setup(system *common.RenderSystem) error {
	hud.font = &common.Font{URL: hudFontURL, FG: color.White, Size: hudFontSize}
	if err := hud.font.CreatePreloaded(); err != nil {
		return fmt.Errorf("create HUD font: %w", err)
	}
	hud.alert = &common.Font{URL: hudFontURL, FG: collisionColor, Size: hudFontSize}
	if err := hud.alert.CreatePreloaded(); err != nil {
		return fmt.Errorf("create HUD alert font: %w", err)
	}

	hud.status = hud.newText(system, hud.font, FormatStatus(hud.current), hudMargin)
	hud.contact = hud.newText(system, hud.alert, contactText, hudMargin+hudFontSize+6)
	hud.contact.Hidden = true
	hud.help = hud.newText(system, hud.font, helpText, engo.GameHeight()-hudFontSize-hudMargin)
	return nil
}

func (hud *HUDSystem) newText(system *common.RenderSystem, font *common.Font, text string, y float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = common.Text{Font: font, Text: text}
	s.Scale = engo.Point{X: 1, Y: 1}
	s.Position = engo.Point{X: hudMargin, Y: y}
	s.SetShader(common.HUDShader)
	s.SetZIndex(hudLayer)
	system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// SetStatus records the readout shown on the next Update
func (hud *HUDSystem) SetStatus(status entity.Status) {
	hud.current = status
}

// Status returns the last recorded readout
func (hud *HUDSystem) Status() entity.Status {
	return hud.current
}

// Update refreshes the text entities. It does nothing before Setup.
func (hud *HUDSystem) Update(dt float32) {
	if hud.status == nil {
		return
	}
	hud.status.Drawable = common.Text{Font: hud.font, Text: FormatStatus(hud.current)}
	hud.contact.Hidden = !hud.current.Collided
	hud.help.Position.Y = engo.GameHeight() - hudFontSize - hudMargin
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// FormatStatus renders the status line
func FormatStatus(s entity.Status) string {
	return fmt.Sprintf("FPS %5.1f   HDG %7.1f   SPD %6.2f   POS %.0f,%.0f   TICK %d",
		s.FPS, s.Heading, s.Speed, s.Position.X, s.Position.Y, s.Tick)
}
