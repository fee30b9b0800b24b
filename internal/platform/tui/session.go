package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/loop"
	"github.com/vovakirdan/termfolio/internal/prefs"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/sound"
	"github.com/vovakirdan/termfolio/internal/storage"
	"github.com/vovakirdan/termfolio/internal/terminal"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// Env is what a session needs from the process around it. Store, Prefs and
// Sound may be nil.
type Env struct {
	Site     config.SiteConfig
	Store    *storage.Store
	Themes   *theme.Set
	Prefs    *prefs.Store
	Sound    *sound.Reactor
	Preset   config.DifficultyPreset
	TickRate int
	Seed     int64
	Logger   *log.Logger
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Catalog loads the content the terminal shows. A missing or broken store
// yields an empty catalog.
func (e *Env) Catalog() storage.Catalog {
	if e.Store == nil {
		return storage.Catalog{}
	}
	b := storage.Buckets{BaseURL: e.Site.Storage.BucketBaseURL}
	c, err := e.Store.Catalog(b, e.Site.Storage.ResumeFile)
	if err != nil {
		e.logger().Warn("could not load content", "err", err)
		return storage.Catalog{}
	}
	return c
}

func prefsDefaults(e *Env) prefs.Prefs { return prefs.FromSite(e.Site) }

func (e *Env) listener() loop.Listener {
	if e.Sound == nil {
		return nil
	}
	return e.Sound
}

func (e *Env) scoreSaver() ScoreSaver {
	if e.Store == nil {
		return nil
	}
	return e.Store
}

func (e *Env) scoreReader() ScoreReader {
	if e.Store == nil {
		return nil
	}
	return e.Store
}

type screen int

const (
	screenTerminal screen = iota
	screenMenu
	screenGame
	screenScores
)

// SessionModel is the top-level flow: terminal <-> menu <-> game, plus the
// score table. The terminal controller is open exactly while the terminal
// screen is shown.
type SessionModel struct {
	env       *Env
	sessionID string
	config    core.RuntimeConfig
	selector  *theme.Selector
	ctrl      *terminal.Controller

	screen   screen
	term     TerminalModel
	menu     MenuModel
	game     *GameModel
	scores   ScoresModel
	quitting bool
}

// NewSessionModel creates a session. sessionID tags log lines.
func NewSessionModel(env *Env, sessionID string, width, height int) SessionModel {
	if env.Themes == nil {
		env.Themes = theme.NewSet()
	}
	p := prefsDefaults(env)
	if env.Prefs != nil {
		loaded, err := env.Prefs.Load(p)
		if err != nil {
			env.logger().Warn("could not load preferences", "err", err)
		}
		p = loaded
	}
	if env.Sound != nil {
		env.Sound.SetOptions(p.SoundOptions())
	}

	selector := theme.NewSelector(env.Themes, p.Theme)
	selector.OnChange(func(name string) {
		if env.Prefs == nil {
			return
		}
		p.Theme = name
		if err := env.Prefs.Save(p); err != nil {
			env.logger().Warn("could not save preferences", "err", err)
		}
	})

	m := SessionModel{
		env:       env,
		sessionID: sessionID,
		config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: env.TickRate,
			Seed:     env.Seed,
		},
		selector: selector,
		ctrl:     terminal.NewController(true, nil),
	}

	ctx := &terminal.Context{
		Themes:  selector,
		Content: env.Catalog(),
		Owner:   env.Site.Owner,
		Games:   registry.List(),
		Banner:  env.Site.Terminal.Banner,
	}
	interp := terminal.NewInterpreter(ctx, env.logger().With("session", sessionID))
	m.term = NewTerminalModel(interp, env.Site.Terminal.Prompt, m.palette, width, height)
	return m
}

func (m SessionModel) palette() theme.Palette { return m.selector.Palette() }

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.term.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		// The terminal keeps its scrollback sized even while hidden.
		if m.screen != screenTerminal {
			t, _ := m.term.Update(msg)
			m.term = t.(TerminalModel)
		}
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateTerminal(msg)
	}
}

func (m SessionModel) updateTerminal(msg tea.Msg) (tea.Model, tea.Cmd) {
	t, cmd := m.term.Update(msg)
	m.term = t.(TerminalModel)

	if m.term.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if id := m.term.TakePlay(); id != "" {
		return m.startGame(id, m.env.Preset)
	}
	return m, cmd
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	menu, cmd := m.menu.Update(msg)
	m.menu = menu.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.IsGoingBack():
		return m.openTerminal()
	case m.menu.WantsScoreboard():
		m.scores = NewScoresModel(m.env.scoreReader(), "", m.palette, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, nil
	case m.menu.Selected() != nil:
		sel := m.menu.Selected()
		return m.startGame(sel.GameID, sel.Preset)
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, cmd := m.game.Update(msg)
	gm := g.(GameModel)
	m.game = &gm

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	s, cmd := m.scores.Update(msg)
	m.scores = s.(ScoresModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.openMenu()
	}
	return m, cmd
}

func (m SessionModel) startGame(id string, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	logger := m.env.logger().With("session", m.sessionID)
	game, err := registry.Create(id, registry.Options{Preset: preset})
	if err != nil {
		logger.Warn("could not start game", "game", id, "err", err)
		m.term.print(terminal.Result{Kind: terminal.ResultError, Text: err.Error()})
		return m.openTerminal()
	}
	logger.Info("game started", "game", id, "preset", preset)

	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	gm := NewGameModel(game, cfg, GameOptions{
		Store:    m.env.scoreSaver(),
		Listener: m.env.listener(),
		Palette:  m.palette,
		Logger:   logger,
	})
	// Size the game before the first frame.
	g, _ := gm.Update(tea.WindowSizeMsg{Width: cfg.ScreenW, Height: cfg.ScreenH})
	gm = g.(GameModel)

	m.game = &gm
	m.screen = screenGame
	m.ctrl.Close()
	return m, gm.Init()
}

func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.env.Preset, m.palette, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenMenu
	m.ctrl.Close()
	return m, m.menu.Init()
}

func (m SessionModel) openTerminal() (tea.Model, tea.Cmd) {
	m.screen = screenTerminal
	m.ctrl.Open()
	return m, m.term.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.term.View()
	}
}

// Theme returns the active palette name.
func (m SessionModel) Theme() string { return m.selector.Theme() }
