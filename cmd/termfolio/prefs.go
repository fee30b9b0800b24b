package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long: `Show the saved preferences. Preferences start from the site config
and are stored in the user's data directory.

Examples:
  termfolio prefs
  termfolio prefs set sound off
  termfolio prefs set theme retro`,
	Args: cobra.NoArgs,
	RunE: runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one preference",
	Args:      cobra.ExactArgs(2),
	ValidArgs: prefs.Keys(),
	RunE:      runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
}

func openPrefs() (*app.App, error) {
	a, err := openApp(app.Options{NoStore: true})
	if err != nil {
		return nil, err
	}
	if a.Prefs == nil {
		a.Close()
		return nil, errors.New("preferences directory is unavailable")
	}
	return a, nil
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	a, err := openPrefs()
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.Preferences()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sound           %s\n", onOff(p.SoundEnabled))
	fmt.Fprintf(out, "music           %s\n", onOff(p.Music))
	fmt.Fprintf(out, "reduced-motion  %s\n", onOff(p.ReducedMotion))
	fmt.Fprintf(out, "volume          %g\n", p.Volume)
	fmt.Fprintf(out, "theme           %s\n", p.Theme)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	a, err := openPrefs()
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.Preferences()
	if err := p.Set(args[0], args[1]); err != nil {
		return err
	}
	if _, ok := a.Themes.Get(p.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", p.Theme, a.Themes.Names())
	}
	if err := a.Prefs.Save(p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[0], args[1])
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
