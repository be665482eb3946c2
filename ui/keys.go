package ui

import (
	"github.com/gdamore/tcell/v2"

	"irship/engine"
)

// KeyLatch turns key events into navigation switch and button presses. It
// implements engine.Input. An event is held until the next poll and a newer
// key replaces an older one, the way the hardware switch reports only its
// latest state.
type KeyLatch struct {
	dir    engine.Direction
	button bool
}

// HandleKey latches ev and reports whether it was one of ours.
func (k *KeyLatch) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		k.dir = engine.DirNorth
	case tcell.KeyDown:
		k.dir = engine.DirSouth
	case tcell.KeyLeft:
		k.dir = engine.DirWest
	case tcell.KeyRight:
		k.dir = engine.DirEast
	case tcell.KeyEnter:
		k.dir = engine.DirPushed
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			k.dir = engine.DirNorth
		case 'j':
			k.dir = engine.DirSouth
		case 'h':
			k.dir = engine.DirWest
		case 'l':
			k.dir = engine.DirEast
		case ' ':
			k.button = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (k *KeyLatch) Direction() engine.Direction {
	d := k.dir
	k.dir = engine.DirNone
	return d
}

func (k *KeyLatch) ButtonPushed() bool {
	b := k.button
	k.button = false
	return b
}
