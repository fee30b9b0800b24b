// Package theme maps color tokens to concrete colors.
package theme

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
)

// DefaultName is the palette used when nothing else is configured.
const DefaultName = "dark"

// Fallback is the color of a token no palette defines.
const Fallback = "#ffffff"

// Palette maps tokens to hex colors.
type Palette struct {
	Name   string
	Colors map[core.Color]string
}

var dark = Palette{Name: "dark", Colors: map[core.Color]string{
	core.ColorBackground: "#0f1117",
	core.ColorSurface:    "#1b1e28",
	core.ColorText:       "#e6e6e6",
	core.ColorMuted:      "#6c7086",
	core.ColorAccent:     "#7aa2f7",
	core.ColorAccentAlt:  "#bb9af7",
	core.ColorDanger:     "#f7768e",
	core.ColorSuccess:    "#9ece6a",
	core.ColorWarning:    "#e0af68",

	core.ColorPieceCyan:   "#00d7d7",
	core.ColorPieceYellow: "#f0e130",
	core.ColorPiecePurple: "#a25ddc",
	core.ColorPieceGreen:  "#3ec46d",
	core.ColorPieceRed:    "#e5484d",
	core.ColorPieceBlue:   "#3e63dd",
	core.ColorPieceOrange: "#f76b15",
}}

var light = Palette{Name: "light", Colors: map[core.Color]string{
	core.ColorBackground: "#fafafa",
	core.ColorSurface:    "#ececec",
	core.ColorText:       "#1f2328",
	core.ColorMuted:      "#8c959f",
	core.ColorAccent:     "#0969da",
	core.ColorAccentAlt:  "#8250df",
	core.ColorDanger:     "#cf222e",
	core.ColorSuccess:    "#1a7f37",
	core.ColorWarning:    "#9a6700",
}}

var retro = Palette{Name: "retro", Colors: map[core.Color]string{
	core.ColorBackground: "#000000",
	core.ColorSurface:    "#0a1a0a",
	core.ColorText:       "#33ff33",
	core.ColorMuted:      "#1f8f1f",
	core.ColorAccent:     "#66ff66",
	core.ColorAccentAlt:  "#ccff00",
	core.ColorDanger:     "#ff3333",
	core.ColorSuccess:    "#33ff99",
	core.ColorWarning:    "#ffcc00",
}}

var ocean = Palette{Name: "ocean", Colors: map[core.Color]string{
	core.ColorBackground: "#0b1d2a",
	core.ColorSurface:    "#12324a",
	core.ColorText:       "#d8eefe",
	core.ColorMuted:      "#5d7b93",
	core.ColorAccent:     "#3da9fc",
	core.ColorAccentAlt:  "#90e0ef",
	core.ColorDanger:     "#ef4565",
	core.ColorSuccess:    "#2cb67d",
	core.ColorWarning:    "#ffd166",
}}

// Resolve returns the hex color for token. Tokens the palette lacks come from
// the dark palette, and unknown tokens resolve to plain white.
func (p Palette) Resolve(token core.Color) string {
	if hex, ok := p.Colors[token]; ok {
		return hex
	}
	if hex, ok := dark.Colors[token]; ok {
		return hex
	}
	return Fallback
}

// RGBA resolves token to an image color for pixel backends.
func (p Palette) RGBA(token core.Color) color.RGBA {
	c, err := colorful.Hex(p.Resolve(token))
	if err != nil {
		c, _ = colorful.Hex(Fallback)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Style returns a lipgloss foreground style for token.
func (p Palette) Style(token core.Color) lipgloss.Style {
	if token == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Resolve(token)))
}

// Set is a named collection of palettes.
type Set struct {
	palettes map[string]Palette
}

// NewSet returns a set holding the built-in palettes.
func NewSet() *Set {
	s := &Set{palettes: make(map[string]Palette)}
	for _, p := range []Palette{dark, light, retro, ocean} {
		s.palettes[p.Name] = clonePalette(p)
	}
	return s
}

func clonePalette(p Palette) Palette {
	out := Palette{Name: p.Name, Colors: make(map[core.Color]string, len(p.Colors))}
	for k, v := range p.Colors {
		out.Colors[k] = v
	}
	return out
}

// Get looks a palette up by case-insensitive name.
func (s *Set) Get(name string) (Palette, bool) {
	p, ok := s.palettes[strings.ToLower(name)]
	return p, ok
}

// MustGet returns the named palette or the default one.
func (s *Set) MustGet(name string) Palette {
	if p, ok := s.Get(name); ok {
		return p
	}
	return s.palettes[DefaultName]
}

// Names returns the palette names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.palettes))
	for n := range s.palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Override adds a palette or patches an existing one with token -> hex pairs.
func (s *Set) Override(name string, colors map[string]string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("theme: palette name is empty")
	}
	p, ok := s.palettes[name]
	if !ok {
		p = Palette{Name: name, Colors: make(map[core.Color]string)}
	}
	for token, hex := range colors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("theme: palette %q token %q: invalid color %q", name, token, hex)
		}
		p.Colors[core.Color(token)] = hex
	}
	s.palettes[name] = p
	return nil
}

// Selector tracks the active palette of one session.
type Selector struct {
	set      *Set
	current  string
	onChange func(name string)
}

// NewSelector starts on name, or on the default palette if name is unknown.
func NewSelector(set *Set, name string) *Selector {
	return &Selector{set: set, current: set.MustGet(name).Name}
}

// OnChange registers fn to run after every successful SetTheme.
func (s *Selector) OnChange(fn func(name string)) { s.onChange = fn }

// Theme returns the active palette name.
func (s *Selector) Theme() string { return s.current }

// Themes lists the selectable palette names.
func (s *Selector) Themes() []string { return s.set.Names() }

// SetTheme switches palettes.
func (s *Selector) SetTheme(name string) error {
	p, ok := s.set.Get(strings.TrimSpace(name))
	if !ok {
		return fmt.Errorf("unknown theme %q (try: %s)", name, strings.Join(s.set.Names(), ", "))
	}
	s.current = p.Name
	if s.onChange != nil {
		s.onChange(p.Name)
	}
	return nil
}

// Palette returns the active palette.
func (s *Selector) Palette() Palette { return s.set.MustGet(s.current) }

// FromConfig builds a set with the built-in palettes patched by cfg.
func FromConfig(cfg config.ThemeConfig) (*Set, error) {
	s := NewSet()
	for _, name := range slices.Sorted(maps.Keys(cfg.Palettes)) {
		if err := s.Override(name, cfg.Palettes[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}
