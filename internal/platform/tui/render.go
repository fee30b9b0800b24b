package tui

import (
	"strings"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same token share one style to keep ANSI output small.
func RenderScreen(s *core.Screen, p theme.Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[core.Color]func(...string) string)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			render, ok := styles[run.Color]
			if !ok {
				render = p.Style(run.Color).Render
				styles[run.Color] = render
			}
			sb.WriteString(render(run.Text))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
