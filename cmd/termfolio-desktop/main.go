// termfolio-desktop plays the termfolio arcade games in a window.
//
// Usage:
//
//	termfolio-desktop <game> [--difficulty hard] [--width 960 --height 720]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/platform/desktop"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/theme"

	// Import games to register them
	_ "github.com/vovakirdan/termfolio/internal/games/breakout"
	_ "github.com/vovakirdan/termfolio/internal/games/pong"
	_ "github.com/vovakirdan/termfolio/internal/games/snake"
	_ "github.com/vovakirdan/termfolio/internal/games/tetris"
)

var (
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagFPS        int
	flagLogLevel   string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termfolio-desktop <game>",
	Short: "Play a termfolio game in a window",
	Long: `Open a window running one game. Scores go to the same database as the
terminal, and sound follows the saved preferences.

Controls:
  Arrows/WASD  - Move (Up rotates in Tetris)
  Space        - Start / pause / restart
  Touch        - Swipe to steer, tap outside the board to pause
  Esc, Q       - Quit

Examples:
  termfolio-desktop snake
  termfolio-desktop breakout --difficulty easy`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to site config YAML")
	f.StringVar(&flagDBPath, "db", "", "Path to the score database (default from site config)")
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	f.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	f.IntVar(&flagWidth, "width", 960, "Window width")
	f.IntVar(&flagHeight, "height", 720, "Window height")
}

func run(_ *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	game, err := registry.Create(args[0], registry.Options{Preset: preset})
	if err != nil {
		return err
	}

	a, err := app.Open(app.Options{
		ConfigPath: flagConfig,
		DBPath:     flagDBPath,
		LogLevel:   flagLogLevel,
		Sound:      true,
	})
	if err != nil {
		return err
	}
	defer a.Close()
	a.Sound.SetOptions(a.Preferences().SoundOptions())

	palette := a.Palette()
	opts := desktop.Options{
		Width:    flagWidth,
		Height:   flagHeight,
		Listener: a.Sound,
		Palette:  func() theme.Palette { return palette },
		Logger:   a.Logger,
	}
	if a.Store != nil {
		opts.Store = a.Store
	}

	rc := core.RuntimeConfig{ScreenW: flagWidth, ScreenH: flagHeight, TickRate: flagFPS, Seed: flagSeed}
	return desktop.Run(game, rc, opts)
}
