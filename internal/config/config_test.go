package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fireworks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, WindowWidth, s.Window.Width)
	assert.Equal(t, WindowHeight, s.Window.Height)
	assert.True(t, s.Window.Resizable)
	assert.True(t, s.Audio.Enabled)
	assert.True(t, s.HUD)
	assert.Empty(t, s.Palette)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
window:
  width: 640
audio:
  volume: -2
palette: ["#FF0000", "#00FF00"]
seed: 99
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, s.Window.Width)
	assert.Equal(t, WindowHeight, s.Window.Height)
	assert.Equal(t, WindowTitle, s.Window.Title)
	assert.Equal(t, -2.0, s.Audio.Volume)
	assert.True(t, s.Audio.Enabled)
	assert.Equal(t, []string{"#FF0000", "#00FF00"}, s.Palette)
	assert.Equal(t, int64(99), s.ResolveSeed())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "window: [oops"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"zero width", func(s *Settings) { s.Window.Width = 0 }, false},
		{"negative height", func(s *Settings) { s.Window.Height = -5 }, false},
		{"too loud", func(s *Settings) { s.Audio.Volume = 2 }, false},
		{"too quiet", func(s *Settings) { s.Audio.Volume = -6 }, false},
		{"edge volume", func(s *Settings) { s.Audio.Volume = MaxVolume }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeFile(t, "window:\n  width: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.Palette = []string{"rainbow"}
	want.Seed = 5
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveSeed(t *testing.T) {
	s := Default()
	assert.NotZero(t, s.ResolveSeed())
}
