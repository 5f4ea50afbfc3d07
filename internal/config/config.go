package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Fireworks - Space: start/stop, S: save, M: mute, Esc/Q: quit"

	// Spawner
	SpawnInterval   = 800 * time.Millisecond
	RocketMinSpeed  = 2.0
	RocketSpeedSpan = 2.0
	RocketMinTarget = 100.0
	RocketSize      = 2.0

	// Explosion
	BurstMinParticles  = 100.0
	BurstParticleSpan  = 200.0
	ParticleMinSpeed   = 1.0
	ParticleSpeedSpan  = 4.0
	ParticleMinSize    = 1.0
	ParticleSizeSpan   = 3.0
	ParticleMinLife    = 100.0
	ParticleLifeSpan   = 50.0
	ParticleMinDecay   = 0.5
	ParticleDecaySpan  = 1.0
	ParticleGravity    = 0.05
	ParticleShrink     = 0.99
	ParticleVanishSize = 0.1

	// Rendering
	FadeAlpha  = 0.2
	TailLength = 20.0
	CoreAlpha  = 0.8
	GlowAlpha  = 0xCC

	// Audio
	SampleRate   = 44100
	MinVolume    = -5.0
	MaxVolume    = 1.0
	MeterSamples = 1024
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	Window  WindowSettings `yaml:"window"`
	Palette []string       `yaml:"palette"`
	Audio   AudioSettings  `yaml:"audio"`
	Seed    int64          `yaml:"seed"`
	HUD     bool           `yaml:"hud"`
}

type WindowSettings struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	Resizable  bool   `yaml:"resizable"`
}

type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

func Default() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Audio: AudioSettings{
			Enabled: true,
			Volume:  -1,
		},
		HUD: true,
	}
}

// Load reads a YAML settings file over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	}
	if s.Audio.Volume < MinVolume || s.Audio.Volume > MaxVolume {
		return fmt.Errorf("%w: volume %.2f outside [%.0f, %.0f]", ErrInvalidSettings, s.Audio.Volume, MinVolume, MaxVolume)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time based one when unset.
func (s *Settings) ResolveSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
