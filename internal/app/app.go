// Package app opens the process-wide resources both front ends share: site
// config, logger, content store, palettes, preferences and the sound reactor.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/prefs"
	"github.com/vovakirdan/termfolio/internal/sound"
	"github.com/vovakirdan/termfolio/internal/sound/device"
	"github.com/vovakirdan/termfolio/internal/storage"
	"github.com/vovakirdan/termfolio/internal/theme"
)

// Options selects what Open sets up.
type Options struct {
	ConfigPath string
	DBPath     string // overrides the site config when set
	LogLevel   string
	LogOutput  io.Writer // stderr when nil

	// Sound opens the system speaker. Without it the reactor stays silent.
	Sound bool
	// NoStore skips the database.
	NoStore bool
}

// App holds the shared resources. Store, Prefs and Speaker may be nil.
type App struct {
	Site    config.SiteConfig
	Logger  *log.Logger
	Store   *storage.Store
	Themes  *theme.Set
	Prefs   *prefs.Store
	Sound   *sound.Reactor
	Speaker *device.Speaker
}

// NewLogger builds the process logger at the named level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "termfolio",
	})
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("app: log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Open loads the config and opens every resource. Optional resources that
// fail to open are logged and left nil; only a broken config, palette set
// or explicitly requested database is an error.
func Open(opts Options) (*App, error) {
	logger, err := NewLogger(opts.LogOutput, opts.LogLevel)
	if err != nil {
		return nil, err
	}

	site, err := config.LoadSite(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	themes, err := theme.FromConfig(site.Theme)
	if err != nil {
		return nil, err
	}

	a := &App{Site: site, Logger: logger, Themes: themes}

	if !opts.NoStore {
		path := site.Storage.DBPath
		if opts.DBPath != "" {
			path = opts.DBPath
		}
		store, err := storage.Open(path)
		if err != nil {
			if opts.DBPath != "" {
				return nil, err
			}
			logger.Warn("content store unavailable", "path", path, "err", err)
		} else {
			logger.Debug("content store opened", "path", path)
			a.Store = store
		}
	}

	if p, err := prefs.Open(); err != nil {
		logger.Warn("preferences unavailable", "err", err)
	} else {
		a.Prefs = p
	}

	var out sound.Output
	if opts.Sound {
		spk, err := device.Open(device.DefaultSampleRate, 80*time.Millisecond)
		if err != nil {
			logger.Warn("no audio device, running silent", "err", err)
		} else {
			a.Speaker = spk
			out = spk
		}
	}
	a.Sound = sound.NewReactor(out, sound.OptionsFrom(site.Sound), logger.WithPrefix("sound"))
	return a, nil
}

// Preferences returns the saved preferences, or the site defaults.
func (a *App) Preferences() prefs.Prefs {
	p := prefs.FromSite(a.Site)
	if a.Prefs == nil {
		return p
	}
	loaded, err := a.Prefs.Load(p)
	if err != nil {
		a.Logger.Warn("could not load preferences", "err", err)
	}
	return loaded
}

// Palette returns the palette named by the preferences.
func (a *App) Palette() theme.Palette {
	return theme.NewSelector(a.Themes, a.Preferences().Theme).Palette()
}

// Close releases everything Open acquired.
func (a *App) Close() {
	if a.Sound != nil {
		a.Sound.Close()
	}
	if a.Speaker != nil {
		a.Speaker.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn("could not close content store", "err", err)
		}
	}
}
