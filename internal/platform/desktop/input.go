package desktop

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/termfolio/internal/core"
)

// Keys maps keyboard keys to actions.
var Keys = map[ebiten.Key]core.Action{
	ebiten.KeyArrowUp:    core.ActionUp,
	ebiten.KeyW:          core.ActionUp,
	ebiten.KeyArrowDown:  core.ActionDown,
	ebiten.KeyS:          core.ActionDown,
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyA:          core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyD:          core.ActionRight,
	ebiten.KeySpace:      core.ActionToggle,
	ebiten.KeyEscape:     core.ActionBack,
	ebiten.KeyQ:          core.ActionQuit,
}

// input forwards ebiten input to a latch. It remembers the one touch it
// follows so a second finger does not restart the gesture, and the last
// cursor position so a resting mouse does not take the paddle from the keys.
type input struct {
	latch    *core.Latch
	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool

	cursor     image.Point
	cursorSeen bool
}

// poll applies this update's key edges, touches and mouse position. It
// returns the navigation action pressed, if any, and whether any game input
// edge arrived.
func (in *input) poll(vp Viewport) (nav core.Action, edge bool) {
	for k, a := range Keys {
		switch {
		case inpututil.IsKeyJustPressed(k):
			if a == core.ActionBack || a == core.ActionQuit {
				nav = a
				continue
			}
			in.latch.Press(a)
			edge = true
		case inpututil.IsKeyJustReleased(k):
			in.latch.Release(a)
		}
	}

	if in.pollTouch(vp) {
		edge = true
	}

	if !in.touching {
		x, y := ebiten.CursorPosition()
		in.trackCursor(vp, x, y)
	}
	return nav, edge
}

// trackCursor points the latch at the mouse only when it moved since the last
// update. Leaving the board drops the pointer.
func (in *input) trackCursor(vp Viewport, x, y int) {
	moved := in.cursorSeen && (x != in.cursor.X || y != in.cursor.Y)
	in.cursor, in.cursorSeen = image.Pt(x, y), true

	nx, ny, ok := vp.Normalize(x, y)
	switch {
	case !ok:
		in.latch.ClearPointer()
	case moved:
		in.latch.Point(nx, ny)
	}
}

// pollTouch turns the first finger into a gesture: down starts it, movement
// swipes, lift ends it. A tap without a swipe toggles the game.
func (in *input) pollTouch(vp Viewport) bool {
	if in.touching && inpututil.IsTouchJustReleased(in.touch) {
		in.touching = false
		in.latch.TouchEnd()
		return false
	}

	if !in.touching {
		in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
		if len(in.touchIDs) == 0 {
			return false
		}
		id := in.touchIDs[0]
		nx, ny, ok := vp.Normalize(ebiten.TouchPosition(id))
		if !ok {
			// Taps outside the board start and pause the game.
			in.latch.Tap(core.ActionToggle)
			return true
		}
		in.touch, in.touching = id, true
		in.latch.TouchStart(nx, ny)
		return true
	}

	if nx, ny, ok := vp.Normalize(ebiten.TouchPosition(in.touch)); ok {
		in.latch.TouchMove(nx, ny)
	}
	return false
}
