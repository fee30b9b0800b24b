package breakout

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
)

// Collision tags.
const (
	tagBall   = "ball"
	tagPaddle = "paddle"
	tagBrick  = "brick"
)

// spaceCell is the resolv broad-phase cell size in canvas pixels.
const spaceCell = 8

// rowColors paints the wall top to bottom, cycling when there are more rows.
var rowColors = []core.Color{
	core.ColorDanger,
	core.ColorWarning,
	core.ColorSuccess,
	core.ColorAccent,
	core.ColorAccentAlt,
}

// Brick is a single brick of the wall.
type Brick struct {
	X, Y, W, H float64
	Color      core.Color
	Alive      bool

	obj *resolv.Object
}

// wall owns the bricks and the collision space they live in.
type wall struct {
	space  *resolv.Space
	bricks []*Brick
	alive  int
}

// newWall lays out a fresh grid of bricks and registers them, together with
// the paddle and ball bodies, in a new collision space.
func newWall(cfg config.BreakoutConfig) *wall {
	w := &wall{
		space: resolv.NewSpace(int(cfg.Canvas.Width), int(cfg.Canvas.Height), spaceCell, spaceCell),
	}

	b := cfg.Bricks
	brickW := (cfg.Canvas.Width - 2*b.OffsetLeft - float64(b.Cols-1)*b.Padding) / float64(b.Cols)
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			brick := &Brick{
				X:     b.OffsetLeft + float64(col)*(brickW+b.Padding),
				Y:     b.OffsetTop + float64(row)*(b.Height+b.Padding),
				W:     brickW,
				H:     b.Height,
				Color: rowColors[row%len(rowColors)],
				Alive: true,
			}
			brick.obj = resolv.NewObject(brick.X, brick.Y, brick.W, brick.H, tagBrick)
			brick.obj.Data = brick
			w.space.Add(brick.obj)
			w.bricks = append(w.bricks, brick)
		}
	}
	w.alive = len(w.bricks)
	return w
}

// kill removes a brick from play. Dead bricks leave the space, so they never
// take part in a collision check again.
func (w *wall) kill(b *Brick) {
	if !b.Alive {
		return
	}
	b.Alive = false
	w.space.Remove(b.obj)
	w.alive--
}

// overlaps is the exact AABB test run after the resolv broad phase.
func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
