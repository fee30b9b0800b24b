package theme

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
)

func TestBuiltinPalettes(t *testing.T) {
	s := NewSet()
	assert.Equal(t, []string{"dark", "light", "ocean", "retro"}, s.Names())

	p, ok := s.Get("RETRO")
	require.True(t, ok)
	assert.Equal(t, "#33ff33", p.Resolve(core.ColorText))
}

func TestResolveFallsBack(t *testing.T) {
	s := NewSet()
	light := s.MustGet("light")

	// light has no piece colors; they come from dark.
	assert.Equal(t, "#e5484d", light.Resolve(core.ColorPieceRed))
	assert.Equal(t, Fallback, light.Resolve(core.Color("no-such-token")))
}

func TestMustGetUnknownIsDefault(t *testing.T) {
	s := NewSet()
	assert.Equal(t, DefaultName, s.MustGet("neon").Name)
}

func TestRGBA(t *testing.T) {
	p := NewSet().MustGet("retro")
	assert.Equal(t, color.RGBA{R: 0x33, G: 0xff, B: 0x33, A: 0xff}, p.RGBA(core.ColorText))
}

func TestOverride(t *testing.T) {
	s := NewSet()

	require.NoError(t, s.Override("Dark", map[string]string{"accent": "#ff00ff"}))
	assert.Equal(t, "#ff00ff", s.MustGet("dark").Resolve(core.ColorAccent))

	require.NoError(t, s.Override("sunset", map[string]string{"text": "#ffeedd"}))
	p, ok := s.Get("sunset")
	require.True(t, ok)
	assert.Equal(t, "#ffeedd", p.Resolve(core.ColorText))

	assert.Error(t, s.Override("dark", map[string]string{"text": "not-a-color"}))
	assert.Error(t, s.Override(" ", nil))
}

func TestOverrideDoesNotLeakBetweenSets(t *testing.T) {
	a, b := NewSet(), NewSet()
	require.NoError(t, a.Override("dark", map[string]string{"text": "#000000"}))
	assert.NotEqual(t, "#000000", b.MustGet("dark").Resolve(core.ColorText))
}

func TestSelector(t *testing.T) {
	sel := NewSelector(NewSet(), "nope")
	assert.Equal(t, DefaultName, sel.Theme())

	var changed []string
	sel.OnChange(func(name string) { changed = append(changed, name) })

	require.NoError(t, sel.SetTheme(" Ocean "))
	assert.Equal(t, "ocean", sel.Theme())
	assert.Equal(t, "ocean", sel.Palette().Name)

	err := sel.SetTheme("neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark, light, ocean, retro")
	assert.Equal(t, "ocean", sel.Theme())
	assert.Equal(t, []string{"ocean"}, changed)
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(config.ThemeConfig{Palettes: map[string]map[string]string{
		"dark":  {"accent": "#123456"},
		"paper": {"text": "#222222"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "#123456", s.MustGet("dark").Resolve(core.ColorAccent))
	assert.Contains(t, s.Names(), "paper")

	_, err = FromConfig(config.ThemeConfig{Palettes: map[string]map[string]string{"bad": {"text": "nope"}}})
	assert.Error(t, err)
}
