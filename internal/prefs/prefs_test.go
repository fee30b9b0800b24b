package prefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termfolio/internal/config"
)

type memBackend struct {
	items map[string][]byte
	err   error
}

func (m *memBackend) LoadItem(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[key], nil
}

func (m *memBackend) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.items[key] = data
	return nil
}

func newStore() (*Store, *memBackend) {
	b := &memBackend{items: map[string][]byte{}}
	return &Store{data: b}, b
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s, _ := newStore()
	defaults := FromSite(config.DefaultSiteConfig())

	p, err := s.Load(defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, p)
	assert.True(t, p.SoundEnabled)
	assert.Equal(t, "dark", p.Theme)
}

func TestSaveLoad(t *testing.T) {
	s, _ := newStore()
	want := Prefs{SoundEnabled: false, ReducedMotion: true, Theme: "retro", Volume: -1}

	require.NoError(t, s.Save(want))
	got, err := s.Load(FromSite(config.DefaultSiteConfig()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadBrokenItem(t *testing.T) {
	s, b := newStore()
	b.items[itemKey] = []byte("{not json")
	defaults := Prefs{Theme: "dark"}

	p, err := s.Load(defaults)
	assert.Error(t, err)
	assert.Equal(t, defaults, p)
}

func TestBackendErrors(t *testing.T) {
	s, b := newStore()
	b.err = errors.New("disk gone")

	_, err := s.Load(Prefs{})
	assert.ErrorIs(t, err, b.err)
	assert.ErrorIs(t, s.Save(Prefs{}), b.err)
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, p Prefs)
	}{
		{"sound", "off", func(t *testing.T, p Prefs) { assert.False(t, p.SoundEnabled) }},
		{"sound", "true", func(t *testing.T, p Prefs) { assert.True(t, p.SoundEnabled) }},
		{"reduced-motion", "yes", func(t *testing.T, p Prefs) { assert.True(t, p.ReducedMotion) }},
		{"music", "0", func(t *testing.T, p Prefs) { assert.False(t, p.Music) }},
		{"volume", "-1.5", func(t *testing.T, p Prefs) { assert.Equal(t, -1.5, p.Volume) }},
		{"THEME", "Ocean", func(t *testing.T, p Prefs) { assert.Equal(t, "ocean", p.Theme) }},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			p := FromSite(config.DefaultSiteConfig())
			require.NoError(t, p.Set(tt.key, tt.value))
			tt.check(t, p)
		})
	}
}

func TestSetErrors(t *testing.T) {
	p := Prefs{}
	assert.ErrorIs(t, p.Set("colour", "red"), ErrUnknownKey)
	assert.Error(t, p.Set("sound", "maybe"))
	assert.Error(t, p.Set("volume", "loud"))
	assert.Error(t, p.Set("theme", "  "))
}

func TestSoundOptions(t *testing.T) {
	p := Prefs{SoundEnabled: true, ReducedMotion: true, Music: true, Volume: -2}
	o := p.SoundOptions()
	assert.True(t, o.Enabled)
	assert.True(t, o.ReducedMotion)
	assert.True(t, o.Music)
	assert.Equal(t, -2.0, o.Volume)
}
