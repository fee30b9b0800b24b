package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// RunSession runs the full terminal session in the local terminal.
func RunSession(env *Env, width, height int) error {
	model := NewSessionModel(env, "local-"+uuid.NewString()[:8], width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// RunGame runs a single game; Back quits instead of opening the menu.
func RunGame(env *Env, game registry.Game, width, height int) error {
	if env.Themes == nil {
		env.Themes = theme.NewSet()
	}
	selector := theme.NewSelector(env.Themes, env.Site.Theme.Default)
	if env.Prefs != nil {
		if p, err := env.Prefs.Load(prefsDefaults(env)); err == nil {
			selector = theme.NewSelector(env.Themes, p.Theme)
			if env.Sound != nil {
				env.Sound.SetOptions(p.SoundOptions())
			}
		}
	}

	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: env.TickRate, Seed: env.Seed}
	model := NewGameModel(game, cfg, GameOptions{
		Store:      env.scoreSaver(),
		Listener:   env.listener(),
		Palette:    selector.Palette,
		Logger:     env.logger(),
		Standalone: true,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// RunScores shows the score table, starting on gameID.
func RunScores(env *Env, gameID string, width, height int) error {
	if env.Themes == nil {
		env.Themes = theme.NewSet()
	}
	selector := theme.NewSelector(env.Themes, env.Site.Theme.Default)
	model := NewScoresModel(env.scoreReader(), gameID, selector.Palette, width, height)
	model.Standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
