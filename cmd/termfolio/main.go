// termfolio is a terminal portfolio with a built-in arcade.
//
// Usage:
//
//	termfolio                     - Open the interactive terminal
//	termfolio play <game>         - Play a game directly
//	termfolio list                - List available games
//	termfolio scores [game]       - Show high scores
//	termfolio serve               - Serve the terminal over SSH
//	termfolio seed <file>         - Import portfolio content from YAML
//	termfolio simulate <game>     - Run a game headless for a while
//	termfolio prefs [set k v]     - Show or change preferences
//
// Global flags:
//
//	--config <path>    - Site config YAML
//	--db <path>        - Content and score database
//	--seed <value>     - RNG seed for reproducible gameplay
//	--fps <rate>       - Tick rate (default: 60)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/platform/tui"

	// Import games to register them
	_ "github.com/vovakirdan/termfolio/internal/games/breakout"
	_ "github.com/vovakirdan/termfolio/internal/games/pong"
	_ "github.com/vovakirdan/termfolio/internal/games/snake"
	_ "github.com/vovakirdan/termfolio/internal/games/tetris"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "A terminal portfolio with an arcade inside",
	Long: `termfolio is a developer portfolio you browse from a command line.
Type 'help' at the prompt to explore projects, posts and the resume,
or 'play snake' to take a break.

Examples:
  termfolio
  termfolio play tetris
  termfolio seed content/seed.yaml
  termfolio serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTerminal,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to site config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to the content database (default from site config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(terminalCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(contentCmd)
}

// openApp opens the shared resources from the global flags.
func openApp(opts app.Options) (*app.App, error) {
	opts.ConfigPath = flagConfig
	opts.DBPath = flagDBPath
	opts.LogLevel = flagLogLevel
	return app.Open(opts)
}

// tuiEnv adapts the app for the terminal UI.
func tuiEnv(a *app.App, preset config.DifficultyPreset) *tui.Env {
	return &tui.Env{
		Site:     a.Site,
		Store:    a.Store,
		Themes:   a.Themes,
		Prefs:    a.Prefs,
		Sound:    a.Sound,
		Preset:   preset,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Logger:   a.Logger,
	}
}

// termSize returns the local terminal size, or 80x24.
func termSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
