package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starship/pkg/starship"
)

// DirectionForKey maps arrow keys and WASD to a ship direction
func DirectionForKey(ev *tcell.EventKey) (starship.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return starship.Forward, true
	case tcell.KeyDown:
		return starship.Backward, true
	case tcell.KeyLeft:
		return starship.Left, true
	case tcell.KeyRight:
		return starship.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return starship.Forward, true
		case 's', 'S':
			return starship.Backward, true
		case 'a', 'A':
			return starship.Left, true
		case 'd', 'D':
			return starship.Right, true
		}
	}
	return 0, false
}

// IsQuit reports whether ev asks to leave the game
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// KeyLatch turns key repeat events into press and release pairs. Terminals
// report only presses and auto-repeats, so a direction is held until no
// repeat arrives for the release window.
type KeyLatch struct {
	release time.Duration
	held    map[starship.Direction]time.Time
}

// NewKeyLatch creates a latch releasing keys after the given idle window
func NewKeyLatch(release time.Duration) *KeyLatch {
	return &KeyLatch{
		release: release,
		held:    make(map[starship.Direction]time.Time),
	}
}

// Press records a press or repeat of d at now. It reports true only for the
// first press, when the caller should send a key down.
func (l *KeyLatch) Press(d starship.Direction, now time.Time) bool {
	_, down := l.held[d]
	l.held[d] = now
	return !down
}

var directions = [...]starship.Direction{starship.Forward, starship.Backward, starship.Left, starship.Right}

// Expire releases every direction idle for longer than the window and
// returns them in direction order
func (l *KeyLatch) Expire(now time.Time) []starship.Direction {
	return l.releaseIf(func(last time.Time) bool { return now.Sub(last) > l.release })
}

// ReleaseAll releases every held direction
func (l *KeyLatch) ReleaseAll() []starship.Direction {
	return l.releaseIf(func(time.Time) bool { return true })
}

func (l *KeyLatch) releaseIf(done func(last time.Time) bool) []starship.Direction {
	var released []starship.Direction
	for _, d := range directions {
		if last, down := l.held[d]; down && done(last) {
			delete(l.held, d)
			released = append(released, d)
		}
	}
	return released
}

// Held reports whether d is latched down
func (l *KeyLatch) Held(d starship.Direction) bool {
	_, down := l.held[d]
	return down
}
