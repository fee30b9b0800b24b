package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/platform/tui"
	"github.com/vovakirdan/termfolio/internal/registry"
)

var (
	flagGameConfig string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move (Up rotates in Tetris)
  Space        - Start / pause / restart
  Esc, Q       - Quit

Difficulty options:
  easy, normal, hard

Examples:
  termfolio play snake
  termfolio play tetris --difficulty hard
  termfolio play pong --game-config ./my-pong.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'termfolio list' to see available games", gameID)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID, registry.Options{ConfigPath: flagGameConfig, Preset: preset})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	a, err := openApp(app.Options{Sound: true})
	if err != nil {
		return err
	}
	defer a.Close()

	w, h := termSize()
	return tui.RunGame(tuiEnv(a, preset), game, w, h)
}
