package render

import (
	"math"

	"github.com/vovakirdan/termfolio/internal/core"
)

// CellAspect is how many times taller a terminal cell is than it is wide.
const CellAspect = 2.0

// Viewport maps logical frame units onto terminal cells.
type Viewport struct {
	OX, OY int     // cell offset of the logical origin
	SX, SY float64 // cells per logical unit
	Cols   int     // width of the play area in cells
	Rows   int     // height of the play area in cells
}

// Fit computes the largest aspect-preserving viewport for a w x h logical
// space inside a cols x rows cell area, centered.
func Fit(w, h float64, cols, rows int) Viewport {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return Viewport{}
	}
	s := math.Min(float64(cols)/w, CellAspect*float64(rows)/h)
	vp := Viewport{SX: s, SY: s / CellAspect}
	vp.Cols = core.Clamp(int(math.Round(w*vp.SX)), 1, cols)
	vp.Rows = core.Clamp(int(math.Round(h*vp.SY)), 1, rows)
	vp.OX = (cols - vp.Cols) / 2
	vp.OY = (rows - vp.Rows) / 2
	return vp
}

// span converts a logical interval [a, a+n) on one axis into a half-open cell
// range. Non-empty intervals always cover at least one cell.
func span(a, n, scale float64, offset int) (int, int) {
	lo := int(math.Round(a * scale))
	hi := int(math.Round((a + n) * scale))
	if hi <= lo && n > 0 {
		hi = lo + 1
	}
	return offset + lo, offset + hi
}

// playArea is the viewport Rasterize uses for f on a cols x rows screen.
func playArea(f *Frame, cols, rows int) Viewport {
	if f.HUD != "" {
		rows--
	}
	// One-cell border on every side.
	vp := Fit(f.W, f.H, cols-2, rows-2)
	vp.OX++
	vp.OY++
	return vp
}

// Locate maps a screen cell back to normalized [0,1] frame coordinates.
// ok is false when the cell lies outside the play area.
func Locate(f *Frame, cols, rows, x, y int) (nx, ny float64, ok bool) {
	vp := playArea(f, cols, rows)
	if vp.Cols == 0 || vp.Rows == 0 {
		return 0, 0, false
	}
	nx = (float64(x-vp.OX) + 0.5) / float64(vp.Cols)
	ny = (float64(y-vp.OY) + 0.5) / float64(vp.Rows)
	if nx < 0 || nx > 1 || ny < 0 || ny > 1 {
		return 0, 0, false
	}
	return nx, ny, true
}

// Rasterize paints the frame into dst. The play area is outlined with a box
// and the HUD line, if any, takes the last row.
func Rasterize(f *Frame, dst *core.Screen) {
	dst.Clear()

	vp := playArea(f, dst.Width(), dst.Height())
	if vp.Cols == 0 {
		return
	}

	dst.DrawBox(core.NewRect(vp.OX-1, vp.OY-1, vp.Cols+2, vp.Rows+2), core.ColorMuted)
	clip := core.NewRect(vp.OX, vp.OY, vp.Cols, vp.Rows)

	for _, c := range f.Cmds {
		switch c.Kind {
		case KindRect:
			x0, x1 := span(c.X, c.W, vp.SX, vp.OX)
			y0, y1 := span(c.Y, c.H, vp.SY, vp.OY)
			fillClipped(dst, clip, x0, y0, x1, y1, '█', c.Color)
		case KindCircle:
			rasterCircle(dst, clip, vp, c)
		case KindText:
			x := vp.OX + int(math.Round(c.X*vp.SX))
			y := vp.OY + int(math.Round(c.Y*vp.SY))
			dst.DrawText(x, y, c.Text, c.Color)
		}
	}

	// Overlays go last so they sit above the scene.
	for _, c := range f.Overlays() {
		drawOverlay(dst, clip, c)
	}

	if f.HUD != "" {
		dst.DrawText(vp.OX-1, dst.Height()-1, f.HUD, core.ColorText)
	}
}

func fillClipped(dst *core.Screen, clip core.Rect, x0, y0, x1, y1 int, r rune, c core.Color) {
	for y := core.Max(y0, clip.Y); y < core.Min(y1, clip.Bottom()); y++ {
		for x := core.Max(x0, clip.X); x < core.Min(x1, clip.Right()); x++ {
			dst.SetCell(x, y, r, c)
		}
	}
}

func rasterCircle(dst *core.Screen, clip core.Rect, vp Viewport, c Cmd) {
	x0, x1 := span(c.X-c.R, 2*c.R, vp.SX, vp.OX)
	y0, y1 := span(c.Y-c.R, 2*c.R, vp.SY, vp.OY)

	filled := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			// Cell center back in logical units.
			lx := (float64(x-vp.OX)+0.5)/vp.SX - c.X
			ly := (float64(y-vp.OY)+0.5)/vp.SY - c.Y
			if lx*lx+ly*ly <= c.R*c.R {
				fillClipped(dst, clip, x, y, x+1, y+1, '█', c.Color)
				filled++
			}
		}
	}

	// Circles smaller than a cell collapse to a single dot.
	if filled == 0 {
		x := vp.OX + int(c.X*vp.SX)
		y := vp.OY + int(c.Y*vp.SY)
		fillClipped(dst, clip, x, y, x+1, y+1, '●', c.Color)
	}
}

func drawOverlay(dst *core.Screen, clip core.Rect, c Cmd) {
	w := core.Max(len([]rune(c.Text)), len([]rune(c.Hint))) + 4
	w = core.Min(w, clip.W)
	h := 4
	if c.Hint == "" {
		h = 3
	}
	cx, cy := clip.Center()
	box := core.NewRect(cx-w/2, cy-h/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c.Color)
	dst.DrawText(box.X+(w-len([]rune(c.Text)))/2, box.Y+1, c.Text, c.Color)
	if c.Hint != "" {
		dst.DrawText(box.X+(w-len([]rune(c.Hint)))/2, box.Y+2, c.Hint, core.ColorMuted)
	}
}
