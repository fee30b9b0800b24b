package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/termfolio/internal/core"
)

func TestFitPreservesAspect(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		cols, rows int
		wantCols   int
		wantRows   int
	}{
		{"square grid on wide terminal", 20, 20, 78, 22, 44, 22},
		{"pong canvas", 600, 400, 78, 22, 66, 22},
		{"narrow terminal", 20, 20, 20, 22, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := Fit(tt.w, tt.h, tt.cols, tt.rows)
			if vp.Cols != tt.wantCols || vp.Rows != tt.wantRows {
				t.Errorf("Fit = %dx%d, expected %dx%d", vp.Cols, vp.Rows, tt.wantCols, tt.wantRows)
			}
			if vp.OX < 0 || vp.OY < 0 || vp.OX+vp.Cols > tt.cols || vp.OY+vp.Rows > tt.rows {
				t.Errorf("viewport %+v escapes %dx%d", vp, tt.cols, tt.rows)
			}
		})
	}
}

func TestFitDegenerate(t *testing.T) {
	if vp := Fit(0, 10, 80, 24); vp.Cols != 0 {
		t.Errorf("zero-width frame should give empty viewport, got %+v", vp)
	}
	if vp := Fit(10, 10, 0, 24); vp.Cols != 0 {
		t.Errorf("zero-width screen should give empty viewport, got %+v", vp)
	}
}

func TestRasterizeRectUsesToken(t *testing.T) {
	f := NewFrame(10, 10)
	f.Rect(0, 0, 1, 1, core.ColorPieceRed)

	s := core.NewScreen(22, 12)
	Rasterize(f, s)

	// Border at (0,0); first play cell right inside it.
	if got := s.GetCell(0, 0).Rune; got != '┌' {
		t.Errorf("border corner = %q, expected '┌'", got)
	}
	found := false
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune == '█' && c.Color == core.ColorPieceRed {
				found = true
			}
		}
	}
	if !found {
		t.Error("rect was not rasterized with its color token")
	}
}

func TestRasterizeTinyShapesStayVisible(t *testing.T) {
	f := NewFrame(600, 400)
	f.Rect(0, 160, 10, 80, core.ColorAccent) // paddle
	f.Circle(300, 200, 5, core.ColorText)    // ball

	s := core.NewScreen(80, 24)
	Rasterize(f, s)

	var paddle, ball bool
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Color == core.ColorAccent && c.Rune == '█' {
				paddle = true
			}
			if c.Color == core.ColorText && c.Rune == '●' {
				ball = true
			}
		}
	}
	if !paddle || !ball {
		t.Errorf("paddle visible = %v, ball visible = %v", paddle, ball)
	}
}

func TestStatusOverlay(t *testing.T) {
	tests := []struct {
		state core.GameState
		title string
	}{
		{core.GameState{Status: core.StatusReady}, "Ready"},
		{core.GameState{Status: core.StatusPaused}, "Paused"},
		{core.GameState{Status: core.StatusGameOver}, "Game Over"},
		{core.GameState{Status: core.StatusGameOver, Won: true}, "You win!"},
		{core.GameState{Status: core.StatusPlaying}, ""},
	}

	for _, tt := range tests {
		f := NewFrame(10, 10)
		StatusOverlay(f, tt.state)
		ov := f.Overlays()
		if tt.title == "" {
			if len(ov) != 0 {
				t.Errorf("%v: expected no overlay, got %+v", tt.state.Status, ov)
			}
			continue
		}
		if len(ov) != 1 || ov[0].Text != tt.title {
			t.Errorf("%v: overlays = %+v, expected %q", tt.state.Status, ov, tt.title)
		}
	}
}

func TestRasterizeOverlayAndHUD(t *testing.T) {
	f := NewFrame(20, 20)
	f.HUD = "Score: 30"
	StatusOverlay(f, core.GameState{Status: core.StatusReady})

	s := core.NewScreen(60, 24)
	Rasterize(f, s)

	if !strings.Contains(s.String(), "Press Space to start") {
		t.Errorf("overlay hint missing:\n%s", s.String())
	}
	if !strings.Contains(s.Row(23), "Score: 30") {
		t.Errorf("HUD row = %q", s.Row(23))
	}
}

func TestFrameReset(t *testing.T) {
	f := NewFrame(10, 10)
	f.Rect(1, 1, 1, 1, core.ColorText)
	f.HUD = "x"
	f.Reset(20, 5)

	if len(f.Cmds) != 0 || f.HUD != "" || f.W != 20 || f.H != 5 {
		t.Errorf("after Reset frame = %+v", f)
	}
}

func TestLocate(t *testing.T) {
	f := NewFrame(20, 20)

	// 80x24 screen: play area is 44x22 cells starting at (18, 1).
	nx, ny, ok := Locate(f, 80, 24, 18, 1)
	if !ok || nx <= 0 || nx > 0.05 || ny <= 0 || ny > 0.05 {
		t.Errorf("top-left cell = (%v, %v, %v), expected near the origin", nx, ny, ok)
	}
	nx, _, ok = Locate(f, 80, 24, 18+43, 11)
	if !ok || nx < 0.95 {
		t.Errorf("right edge nx = %v, ok = %v", nx, ok)
	}
	if _, _, ok := Locate(f, 80, 24, 0, 0); ok {
		t.Error("the border should be outside the play area")
	}
	if _, _, ok := Locate(NewFrame(0, 0), 80, 24, 10, 10); ok {
		t.Error("an empty frame has no play area")
	}
}
