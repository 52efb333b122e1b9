// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starship/pkg/starship"
)

// Button names registered with engo.Input
const (
	buttonForward   = "forward"
	buttonBackward  = "backward"
	buttonLeft      = "left"
	buttonRight     = "right"
	buttonQuit      = "quit"
	buttonResetZoom = "resetZoom"
)

type binding struct {
	button    string
	direction starship.Direction
	keys      []engo.Key
}

var movementBindings = []binding{
	{buttonForward, starship.Forward, []engo.Key{engo.KeyW, engo.KeyArrowUp}},
	{buttonBackward, starship.Backward, []engo.Key{engo.KeyS, engo.KeyArrowDown}},
	{buttonLeft, starship.Left, []engo.Key{engo.KeyA, engo.KeyArrowLeft}},
	{buttonRight, starship.Right, []engo.Key{engo.KeyD, engo.KeyArrowRight}},
}

// SetupInputBindings registers every button the game reads
func SetupInputBindings() {
	for _, b := range movementBindings {
		engo.Input.RegisterButton(b.button, b.keys...)
	}
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyR)
}

// ButtonDirection returns the ship direction a movement button drives
func ButtonDirection(button string) (starship.Direction, bool) {
	for _, b := range movementBindings {
		if b.button == button {
			return b.direction, true
		}
	}
	return 0, false
}

// Controls is the part of the game the input system drives
type Controls interface {
	KeyDown(d starship.Direction)
	KeyUp(d starship.Direction)
}

// InputSystem turns button edges into KeyDown/KeyUp calls. Each button may
// be bound to several keys, so it tracks what it has pressed to keep the
// calls paired.
type InputSystem struct {
	controls Controls
	held     map[starship.Direction]bool
	quit     func()
}

// NewInputSystem creates an input system driving controls
func NewInputSystem(controls Controls) *InputSystem {
	return &InputSystem{
		controls: controls,
		held:     make(map[starship.Direction]bool),
		quit:     engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update polls the registered buttons
func (is *InputSystem) Update(dt float32) {
	for _, b := range movementBindings {
		btn := engo.Input.Button(b.button)
		switch {
		case btn.JustPressed():
			is.Press(b.direction)
		case btn.JustReleased():
			is.Release(b.direction)
		}
	}
	if engo.Input.Button(buttonQuit).JustPressed() {
		is.ReleaseAll()
		is.quit()
	}
}

// Press sends KeyDown for d unless it is already held
func (is *InputSystem) Press(d starship.Direction) {
	if is.held[d] {
		return
	}
	is.held[d] = true
	is.controls.KeyDown(d)
}

// Release sends KeyUp for d if it is held
func (is *InputSystem) Release(d starship.Direction) {
	if !is.held[d] {
		return
	}
	delete(is.held, d)
	is.controls.KeyUp(d)
}

// ReleaseAll releases every held direction in direction order
func (is *InputSystem) ReleaseAll() {
	for _, b := range movementBindings {
		is.Release(b.direction)
	}
}

// Held reports whether d is currently pressed
func (is *InputSystem) Held(d starship.Direction) bool {
	return is.held[d]
}
