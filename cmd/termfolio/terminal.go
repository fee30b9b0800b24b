package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/platform/tui"
)

var flagPreset string

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Open the interactive terminal (default)",
	Long: `Open the portfolio terminal. Games started with 'play' return to a
game menu; Esc in the menu goes back to the prompt.

Examples:
  termfolio terminal
  termfolio terminal --preset hard`,
	Args: cobra.NoArgs,
	RunE: runTerminal,
}

func init() {
	terminalCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset for games: easy, normal, hard")
}

func runTerminal(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}
	a, err := openApp(app.Options{Sound: true})
	if err != nil {
		return err
	}
	defer a.Close()

	w, h := termSize()
	return tui.RunSession(tuiEnv(a, preset), w, h)
}
