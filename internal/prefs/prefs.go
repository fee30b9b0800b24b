// Package prefs persists per-user preferences (sound, reduced motion, theme)
// in the platform's application data directory.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/sound"
)

// AppName is the gdata application directory.
const AppName = "termfolio"

const itemKey = "prefs"

// ErrUnknownKey is returned by Set for a key that is not a preference.
var ErrUnknownKey = errors.New("unknown preference")

// Prefs are the persisted preferences.
type Prefs struct {
	SoundEnabled  bool    `json:"sound_enabled"`
	ReducedMotion bool    `json:"reduced_motion"`
	Music         bool    `json:"music"`
	Volume        float64 `json:"volume"`
	Theme         string  `json:"theme"`
}

// FromSite returns the preferences implied by the site config, used until the
// user saves their own.
func FromSite(c config.SiteConfig) Prefs {
	return Prefs{
		SoundEnabled:  c.Sound.Enabled,
		ReducedMotion: c.Sound.ReducedMotion,
		Music:         c.Sound.Music,
		Volume:        c.Sound.Volume,
		Theme:         c.Theme.Default,
	}
}

// SoundOptions converts the preferences for the sound reactor.
func (p Prefs) SoundOptions() sound.Options {
	return sound.Options{
		Enabled:       p.SoundEnabled,
		ReducedMotion: p.ReducedMotion,
		Music:         p.Music,
		Volume:        p.Volume,
	}
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := []string{"sound", "reduced-motion", "music", "volume", "theme"}
	sort.Strings(keys)
	return keys
}

// Set updates one preference from its string form.
func (p *Prefs) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "sound":
		return parseBool(key, value, &p.SoundEnabled)
	case "reduced-motion":
		return parseBool(key, value, &p.ReducedMotion)
	case "music":
		return parseBool(key, value, &p.Music)
	case "volume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("prefs: volume %q: %w", value, err)
		}
		p.Volume = v
		return nil
	case "theme":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("prefs: theme must not be empty")
		}
		p.Theme = strings.ToLower(value)
		return nil
	default:
		return fmt.Errorf("prefs: %q: %w", key, ErrUnknownKey)
	}
}

func parseBool(key, value string, dst *bool) error {
	switch strings.ToLower(value) {
	case "on", "yes":
		*dst = true
		return nil
	case "off", "no":
		*dst = false
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("prefs: %s %q: %w", key, value, err)
	}
	*dst = b
	return nil
}

// backend is the part of gdata.Manager the store uses.
type backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store loads and saves preferences.
type Store struct {
	data backend
}

// Open opens the store in the user's application data directory.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("prefs: cannot open data dir: %w", err)
	}
	return &Store{data: m}, nil
}

// Load returns the saved preferences, or defaults if nothing was saved yet.
func (s *Store) Load(defaults Prefs) (Prefs, error) {
	data, err := s.data.LoadItem(itemKey)
	if err != nil {
		return defaults, fmt.Errorf("prefs: cannot load: %w", err)
	}
	if len(data) == 0 {
		return defaults, nil
	}
	p := defaults
	if err := json.Unmarshal(data, &p); err != nil {
		return defaults, fmt.Errorf("prefs: cannot parse: %w", err)
	}
	return p, nil
}

// Save writes the preferences.
func (s *Store) Save(p Prefs) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: cannot encode: %w", err)
	}
	if err := s.data.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("prefs: cannot save: %w", err)
	}
	return nil
}
