package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/loop"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
	"github.com/vovakirdan/termfolio/internal/storage"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// ScoreSaver persists finished game scores. *storage.Store is one.
type ScoreSaver interface {
	SaveScore(gameID string, score int) (int64, error)
}

var _ ScoreSaver = (*storage.Store)(nil)

// GameOptions configures a GameModel.
type GameOptions struct {
	Store    ScoreSaver
	Listener loop.Listener // usually the sound reactor
	Palette  func() theme.Palette
	Logger   *log.Logger
	// Standalone makes Back quit the program instead of returning to the menu.
	Standalone bool
}

// GameModel runs one game on Bubble Tea ticks. Ticks are only scheduled
// while the game is playing; input re-arms them.
type GameModel struct {
	driver *loop.Driver
	config core.RuntimeConfig
	opts   GameOptions
	keys   GameKeyMap
	help   help.Model

	screen *core.Screen
	frame  *render.Frame

	ticking bool
	gen     int
	last    time.Time

	scoreSaved bool
	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game in a driver seeded from cfg. A zero seed picks
// one from the clock.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Palette == nil {
		def := theme.NewSet().MustGet(theme.DefaultName)
		opts.Palette = func() theme.Palette { return def }
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var dopts []loop.Option
	if opts.Listener != nil {
		dopts = append(dopts, loop.WithListener(opts.Listener))
	}

	return GameModel{
		driver: loop.NewDriver(game, nil, cfg, dopts...),
		config: cfg,
		opts:   opts,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		frame:  render.NewFrame(0, 0),
	}
}

// Init draws the first frame. Nothing ticks until the player starts.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, m.playRows())
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || !m.ticking {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals report no key-up, so every
// key is a tap that holds for one tick; auto-repeat keeps paddles moving.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.stop()
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case core.ActionNone:
		return m, nil

	default:
		m.driver.Latch().Tap(a)
		return m.wake()
	}
}

func (m *GameModel) handleMouse(msg tea.MouseMsg) {
	m.driver.Draw(m.frame)
	nx, ny, ok := render.Locate(m.frame, m.screen.Width(), m.screen.Height(), msg.X, msg.Y)
	if !ok {
		m.driver.Latch().ClearPointer()
		return
	}
	m.driver.Latch().Point(nx, ny)
}

// wake runs a tick right away when the loop is idle, so a toggle from
// Ready or Paused takes effect, and restarts ticking if the game is now
// playing.
func (m GameModel) wake() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	res := m.driver.Tick()
	m.afterStep(res.State)
	if !res.State.Playing() {
		return m, nil
	}
	m.ticking = true
	m.gen++
	m.last = time.Now()
	return m, tickCmd(m.driver.Interval(), m.gen)
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := now.Sub(m.last)
	m.last = now

	res, _ := m.driver.Advance(dt)
	m.afterStep(res.State)

	if !res.State.Playing() {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.driver.Interval(), m.gen)
}

// afterStep saves the score once per finished game.
func (m *GameModel) afterStep(st core.GameState) {
	if !st.GameOver() {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.opts.Store == nil || st.Score <= 0 {
		return
	}
	id := m.driver.Game().ID()
	if _, err := m.opts.Store.SaveScore(id, st.Score); err != nil {
		m.opts.Logger.Warn("could not save score", "game", id, "err", err)
		return
	}
	m.opts.Logger.Debug("score saved", "game", id, "score", st.Score)
}

// stop silences the game when leaving it.
func (m *GameModel) stop() {
	m.ticking = false
	m.gen++
	if m.opts.Listener != nil {
		m.opts.Listener.Sync(core.StatusReady)
	}
}

// playRows is the screen height left after the help line.
func (m GameModel) playRows() int {
	return max(m.config.ScreenH-1, 1)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.driver.Draw(m.frame)
	render.Rasterize(m.frame, m.screen)
	keys := m.keys
	if m.State().Paused() {
		keys.Toggle.SetHelp("space", "resume")
	}
	return RenderScreen(m.screen, m.opts.Palette()) + "\n" + m.help.View(keys)
}

// State returns the state after the last tick.
func (m GameModel) State() core.GameState { return m.driver.State() }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }
