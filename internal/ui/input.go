package ui

import (
	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyState abstracts the keyboard so the mapping can be tested without a window.
type keyState interface {
	pressed(k ebiten.Key) bool
	justPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) pressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// keyBinding lists the keys for one movement direction set.
type keyBinding struct {
	up, down, left, right []ebiten.Key
}

var (
	playerKeys = keyBinding{
		up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
	}
	stalkerKeys = keyBinding{
		up:    []ebiten.Key{ebiten.KeyI},
		down:  []ebiten.Key{ebiten.KeyK},
		left:  []ebiten.Key{ebiten.KeyJ},
		right: []ebiten.Key{ebiten.KeyL},
	}
)

func anyPressed(ks keyState, keys []ebiten.Key) bool {
	for _, k := range keys {
		if ks.pressed(k) {
			return true
		}
	}
	return false
}

func (b keyBinding) dir(ks keyState) game.Dir {
	return game.Dir{
		Up:    anyPressed(ks, b.up),
		Down:  anyPressed(ks, b.down),
		Left:  anyPressed(ks, b.left),
		Right: anyPressed(ks, b.right),
	}
}

// readInput maps the keyboard and the aim point (world units) to a session
// input. copyReport is true on the frame C was pressed.
func readInput(ks keyState, aimX, aimY float64) (in game.Input, copyReport bool) {
	in = game.Input{
		P1:   playerKeys.dir(ks),
		P2:   stalkerKeys.dir(ks),
		AimX: aimX,
		AimY: aimY,
	}
	if ks.justPressed(ebiten.KeyE) {
		in.Actions |= game.ActRedirect
	}
	if ks.justPressed(ebiten.KeyU) {
		in.Actions |= game.ActStalkerTeleport
	}
	if ks.justPressed(ebiten.KeyR) {
		in.Actions |= game.ActRestart
	}
	switch {
	case ks.justPressed(ebiten.Key1):
		in.Actions |= game.ActSelectMode
		in.Mode = game.ModeSingle
	case ks.justPressed(ebiten.Key2):
		in.Actions |= game.ActSelectMode
		in.Mode = game.ModeCoop
	}
	return in, ks.justPressed(ebiten.KeyC)
}
