// Package desktop runs a game in an ebiten window. Frames are painted with
// vector fills and ebitenutil debug text; keyboard edges and touches feed the
// driver's input latch.
package desktop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/render"
	"github.com/vovakirdan/termfolio/internal/theme"
)

const (
	// glyphW and glyphH are the debug font's cell size in pixels.
	glyphW = 6
	glyphH = 16

	hudHeight = glyphH + 4
	margin    = 8
)

// Viewport maps logical frame units onto window pixels.
type Viewport struct {
	OX, OY float64 // pixel offset of the logical origin
	Scale  float64 // pixels per logical unit
	W, H   float64 // size of the play area in pixels
}

// Fit computes the largest aspect-preserving viewport for a fw x fh logical
// space in a w x h window, leaving room for the HUD line when hud is set.
func Fit(fw, fh float64, w, h int, hud bool) Viewport {
	avail := float64(h) - 2*margin
	if hud {
		avail -= hudHeight
	}
	aw := float64(w) - 2*margin
	if fw <= 0 || fh <= 0 || aw <= 0 || avail <= 0 {
		return Viewport{}
	}
	s := math.Min(aw/fw, avail/fh)
	vp := Viewport{Scale: s, W: fw * s, H: fh * s}
	vp.OX = margin + (aw-vp.W)/2
	vp.OY = margin + (avail-vp.H)/2
	return vp
}

// Normalize maps a window pixel to [0,1] frame coordinates. ok is false
// outside the play area.
func (vp Viewport) Normalize(x, y int) (nx, ny float64, ok bool) {
	if vp.W <= 0 || vp.H <= 0 {
		return 0, 0, false
	}
	nx = (float64(x) - vp.OX) / vp.W
	ny = (float64(y) - vp.OY) / vp.H
	if nx < 0 || nx > 1 || ny < 0 || ny > 1 {
		return 0, 0, false
	}
	return nx, ny, true
}

// Paint draws f onto dst with colors from p.
func Paint(dst *ebiten.Image, f *render.Frame, p theme.Palette) {
	b := dst.Bounds()
	dst.Fill(p.RGBA(core.ColorBackground))

	vp := Fit(f.W, f.H, b.Dx(), b.Dy(), f.HUD != "")
	if vp.Scale == 0 {
		return
	}
	vector.StrokeRect(dst, float32(vp.OX-1), float32(vp.OY-1), float32(vp.W+2), float32(vp.H+2), 1, p.RGBA(core.ColorMuted), false)

	for _, c := range f.Cmds {
		switch c.Kind {
		case render.KindRect:
			vector.DrawFilledRect(dst,
				float32(vp.OX+c.X*vp.Scale), float32(vp.OY+c.Y*vp.Scale),
				float32(c.W*vp.Scale), float32(c.H*vp.Scale),
				p.RGBA(c.Color), false)
		case render.KindCircle:
			vector.DrawFilledCircle(dst,
				float32(vp.OX+c.X*vp.Scale), float32(vp.OY+c.Y*vp.Scale),
				float32(c.R*vp.Scale), p.RGBA(c.Color), true)
		case render.KindText:
			ebitenutil.DebugPrintAt(dst, c.Text, int(vp.OX+c.X*vp.Scale), int(vp.OY+c.Y*vp.Scale))
		}
	}

	for _, o := range f.Overlays() {
		paintOverlay(dst, vp, o, p)
	}
	if f.HUD != "" {
		ebitenutil.DebugPrintAt(dst, f.HUD, int(vp.OX), int(vp.OY+vp.H)+4)
	}
}

// paintOverlay draws a framed box centered on the play area.
func paintOverlay(dst *ebiten.Image, vp Viewport, o render.Cmd, p theme.Palette) {
	textW := max(len([]rune(o.Text)), len([]rune(o.Hint))) * glyphW
	w := float64(textW + 4*glyphW)
	h := float64(3 * glyphH)
	x := vp.OX + (vp.W-w)/2
	y := vp.OY + (vp.H-h)/2

	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), p.RGBA(core.ColorSurface), false)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, p.RGBA(o.Color), false)

	ebitenutil.DebugPrintAt(dst, o.Text, int(x+(w-float64(len([]rune(o.Text))*glyphW))/2), int(y)+4)
	ebitenutil.DebugPrintAt(dst, o.Hint, int(x+(w-float64(len([]rune(o.Hint))*glyphW))/2), int(y)+4+glyphH)
}
