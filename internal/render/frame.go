// Package render turns game state into backend-neutral draw commands.
//
// Games append commands to a Frame in their own logical coordinate space
// (grid cells for Snake and Tetris, pixels for Pong and Breakout). Each command
// carries a theme token instead of a concrete color; the terminal and desktop
// backends resolve tokens through the active palette when they paint.
package render

import "github.com/vovakirdan/termfolio/internal/core"

// Kind identifies a draw command.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
	KindText
	KindOverlay
)

// Cmd is a single draw command in logical units.
type Cmd struct {
	Kind  Kind
	X, Y  float64 // top-left for rects and text, center for circles
	W, H  float64
	R     float64 // circle radius
	Text  string  // text body or overlay title
	Hint  string  // overlay hint line
	Color core.Color
}

// Frame is the list of commands for one rendered frame.
type Frame struct {
	W, H float64
	HUD  string
	Cmds []Cmd
}

// NewFrame creates an empty frame with the given logical size.
func NewFrame(w, h float64) *Frame {
	return &Frame{W: w, H: h}
}

// Reset clears all commands and resizes the logical space.
func (f *Frame) Reset(w, h float64) {
	f.W, f.H = w, h
	f.HUD = ""
	f.Cmds = f.Cmds[:0]
}

// Rect appends a filled rectangle.
func (f *Frame) Rect(x, y, w, h float64, c core.Color) {
	f.Cmds = append(f.Cmds, Cmd{Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c})
}

// Circle appends a filled circle centered at (cx, cy).
func (f *Frame) Circle(cx, cy, r float64, c core.Color) {
	f.Cmds = append(f.Cmds, Cmd{Kind: KindCircle, X: cx, Y: cy, R: r, Color: c})
}

// Text appends a text label whose top-left corner sits at (x, y).
func (f *Frame) Text(x, y float64, s string, c core.Color) {
	f.Cmds = append(f.Cmds, Cmd{Kind: KindText, X: x, Y: y, Text: s, Color: c})
}

// Overlay appends a centered message box drawn above everything else.
func (f *Frame) Overlay(title, hint string, c core.Color) {
	f.Cmds = append(f.Cmds, Cmd{Kind: KindOverlay, Text: title, Hint: hint, Color: c})
}

// Overlays returns the overlay commands in the frame.
func (f *Frame) Overlays() []Cmd {
	var out []Cmd
	for _, c := range f.Cmds {
		if c.Kind == KindOverlay {
			out = append(out, c)
		}
	}
	return out
}

// StatusOverlay appends the overlay matching the game's status flags.
// Playing games get no overlay.
func StatusOverlay(f *Frame, st core.GameState) {
	switch st.Status {
	case core.StatusReady:
		f.Overlay("Ready", "Press Space to start", core.ColorAccent)
	case core.StatusPaused:
		f.Overlay("Paused", "Press Space to resume", core.ColorWarning)
	case core.StatusGameOver:
		if st.Won {
			f.Overlay("You win!", "Press Space to play again", core.ColorSuccess)
		} else {
			f.Overlay("Game Over", "Press Space to play again", core.ColorDanger)
		}
	}
}
