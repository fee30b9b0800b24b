package desktop

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/loop"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// ScoreSaver persists finished game scores.
type ScoreSaver interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Options configures the window.
type Options struct {
	Width, Height int
	Store         ScoreSaver
	Listener      loop.Listener
	Palette       func() theme.Palette
	Logger        *log.Logger
}

// App is an ebiten.Game driving one registry game.
type App struct {
	driver *loop.Driver
	frame  *render.Frame
	input  *input
	opts   Options
	dt     time.Duration

	vp         Viewport
	scoreSaved bool
}

// NewApp wraps game in a driver configured by rc.
func NewApp(game registry.Game, rc core.RuntimeConfig, opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 960, 720
	}
	if opts.Palette == nil {
		def := theme.NewSet().MustGet(theme.DefaultName)
		opts.Palette = func() theme.Palette { return def }
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	var dopts []loop.Option
	if opts.Listener != nil {
		dopts = append(dopts, loop.WithListener(opts.Listener))
	}
	d := loop.NewDriver(game, nil, rc, dopts...)
	return &App{
		driver: d,
		frame:  render.NewFrame(0, 0),
		input:  &input{latch: d.Latch()},
		opts:   opts,
		dt:     time.Second / time.Duration(ebiten.TPS()),
	}
}

// Update polls input and advances the game by one ebiten tick. A game that
// is not playing only steps when a new input edge arrives.
func (a *App) Update() error {
	nav, edge := a.input.poll(a.vp)
	switch nav {
	case core.ActionBack, core.ActionQuit:
		a.stop()
		return ebiten.Termination
	}

	var st core.GameState
	if a.driver.State().Playing() {
		res, _ := a.driver.Advance(a.dt)
		st = res.State
	} else if edge {
		st = a.driver.Tick().State
	} else {
		return nil
	}
	a.afterStep(st)
	return nil
}

// afterStep saves the score once per finished game.
func (a *App) afterStep(st core.GameState) {
	if !st.GameOver() {
		a.scoreSaved = false
		return
	}
	if a.scoreSaved {
		return
	}
	a.scoreSaved = true
	if a.opts.Store == nil || st.Score <= 0 {
		return
	}
	id := a.driver.Game().ID()
	if _, err := a.opts.Store.SaveScore(id, st.Score); err != nil {
		a.opts.Logger.Warn("could not save score", "game", id, "err", err)
	}
}

func (a *App) stop() {
	if a.opts.Listener != nil {
		a.opts.Listener.Sync(core.StatusReady)
	}
}

// Draw paints the current frame.
func (a *App) Draw(screen *ebiten.Image) {
	a.driver.Draw(a.frame)
	b := screen.Bounds()
	a.vp = Fit(a.frame.W, a.frame.H, b.Dx(), b.Dy(), a.frame.HUD != "")
	Paint(screen, a.frame, a.opts.Palette())
}

// Layout uses the window size as the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// State returns the game state after the last tick.
func (a *App) State() core.GameState { return a.driver.State() }

// Run opens a window for game and blocks until it is closed.
func Run(game registry.Game, rc core.RuntimeConfig, opts Options) error {
	app := NewApp(game, rc, opts)
	ebiten.SetWindowSize(app.opts.Width, app.opts.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("termfolio - %s", game.Title()))
	ebiten.SetWindowResizable(true)

	app.opts.Logger.Info("window opened", "game", game.ID())
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
