package fireworks

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/fireworks/internal/config"
)

func newTestShow(t *testing.T) *Show {
	t.Helper()
	s := New(WithSize(800, 600), WithSeed(42))
	s.Start()
	return s
}

func TestNewShowIsInactive(t *testing.T) {
	s := New(WithSize(800, 600), WithSeed(1))
	assert.False(t, s.Active())

	_, ok := s.Launch()
	assert.False(t, ok)
	assert.Empty(t, s.Rockets())

	f := s.Advance(time.Second)
	assert.Empty(t, f.Launched)
	assert.Empty(t, s.Rockets())
}

func TestLaunchRanges(t *testing.T) {
	s := newTestShow(t)
	palette := DefaultPalette()

	for i := 0; i < 500; i++ {
		r, ok := s.Launch()
		require.True(t, ok)
		assert.GreaterOrEqual(t, r.X, 0.0)
		assert.Less(t, r.X, 800.0)
		assert.Equal(t, 600.0, r.Y)
		assert.GreaterOrEqual(t, r.Speed, 2.0)
		assert.Less(t, r.Speed, 4.0)
		assert.GreaterOrEqual(t, r.TargetY, 100.0)
		assert.Less(t, r.TargetY, 400.0)
		assert.Equal(t, 2.0, r.Size)
		assert.Contains(t, palette, r.Color)
	}
	assert.Len(t, s.Rockets(), 500)
}

func TestLaunchOnEmptySurface(t *testing.T) {
	s := New(WithSeed(1))
	s.Start()
	_, ok := s.Launch()
	assert.False(t, ok)
}

func TestExplodeParticles(t *testing.T) {
	s := newTestShow(t)
	c := Color{R: 255}

	for i := 0; i < 50; i++ {
		before := len(s.Particles())
		b := s.Explode(100, 200, c)
		assert.GreaterOrEqual(t, b.Particles, 100)
		assert.LessOrEqual(t, b.Particles, 300)
		assert.Equal(t, before+b.Particles, len(s.Particles()))
	}

	for _, p := range s.Particles() {
		assert.Equal(t, 100.0, p.X)
		assert.Equal(t, 200.0, p.Y)
		assert.Equal(t, c, p.Color)
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 1.0-1e-9)
		assert.Less(t, speed, 5.0+1e-9)
		assert.GreaterOrEqual(t, p.Size, 1.0)
		assert.Less(t, p.Size, 4.0)
		assert.GreaterOrEqual(t, p.Life, 100.0)
		assert.Less(t, p.Life, 150.0)
		assert.GreaterOrEqual(t, p.Decay, 0.5)
		assert.Less(t, p.Decay, 1.5)
		assert.Equal(t, 0.05, p.Gravity)
	}
	assert.Equal(t, 50, s.Stats().Bursts)
}

func TestStepParticlePhysics(t *testing.T) {
	s := newTestShow(t)
	s.particles = append(s.particles, Particle{
		X: 10, Y: 20, VX: 1, VY: -2, Size: 2, Life: 10, Decay: 1, Gravity: 0.05,
	})

	s.Step()

	require.Len(t, s.Particles(), 1)
	p := s.Particles()[0]
	assert.Equal(t, 11.0, p.X)
	assert.Equal(t, 18.0, p.Y)
	assert.InDelta(t, -1.95, p.VY, 1e-12)
	assert.Equal(t, 9.0, p.Life)
	assert.InDelta(t, 1.98, p.Size, 1e-12)
}

func TestStepRemovesExpiredParticles(t *testing.T) {
	tests := []struct {
		name string
		p    Particle
		keep bool
	}{
		{"life runs out", Particle{Size: 2, Life: 1, Decay: 1}, false},
		{"life below zero", Particle{Size: 2, Life: 0.5, Decay: 1}, false},
		{"size vanishes", Particle{Size: 0.1, Life: 50, Decay: 1}, false},
		{"alive", Particle{Size: 2, Life: 50, Decay: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestShow(t)
			s.particles = append(s.particles, tt.p)
			s.Step()
			if tt.keep {
				assert.Len(t, s.Particles(), 1)
			} else {
				assert.Empty(t, s.Particles())
			}
		})
	}
}

func TestStepKeepsParticleOrder(t *testing.T) {
	s := newTestShow(t)
	s.particles = []Particle{
		{X: 1, Size: 2, Life: 50, Decay: 1},
		{X: 2, Size: 2, Life: 1, Decay: 1},
		{X: 3, Size: 2, Life: 50, Decay: 1},
	}
	s.Step()
	require.Len(t, s.Particles(), 2)
	assert.Equal(t, 1.0, s.Particles()[0].X)
	assert.Equal(t, 3.0, s.Particles()[1].X)
}

func TestRocketBurstsAtTarget(t *testing.T) {
	s := newTestShow(t)
	c := Color{G: 200}
	s.rockets = []Rocket{
		{X: 50, Y: 105, Speed: 3, TargetY: 100, Color: c, Size: 2},
		{X: 70, Y: 300, Speed: 3, TargetY: 100, Color: c, Size: 2},
	}

	bursts := s.Step()
	assert.Empty(t, bursts)
	require.Len(t, s.Rockets(), 2)
	assert.Equal(t, 102.0, s.Rockets()[0].Y)

	bursts = s.Step()
	require.Len(t, bursts, 1)
	assert.Equal(t, 50.0, bursts[0].X)
	assert.Equal(t, 99.0, bursts[0].Y)
	assert.Equal(t, c, bursts[0].Color)
	require.Len(t, s.Rockets(), 1)
	assert.Equal(t, 70.0, s.Rockets()[0].X)

	// Fresh particles are stepped in the frame they are born.
	assert.Len(t, s.Particles(), bursts[0].Particles)
	for _, p := range s.Particles() {
		assert.Less(t, p.Life, 150.0)
	}
}

func TestAdvanceSpawnCadence(t *testing.T) {
	s := newTestShow(t)

	f := s.Advance(config.SpawnInterval - time.Millisecond)
	assert.Empty(t, f.Launched)

	f = s.Advance(time.Millisecond)
	assert.Len(t, f.Launched, 1)

	f = s.Advance(3 * config.SpawnInterval)
	assert.Len(t, f.Launched, 3)
	assert.Equal(t, 4, s.Stats().Rockets)
}

func TestStopClearsAndRestart(t *testing.T) {
	s := newTestShow(t)
	s.Launch()
	s.Explode(10, 10, Color{})
	require.NotEmpty(t, s.Rockets())
	require.NotEmpty(t, s.Particles())

	s.Stop()
	assert.False(t, s.Active())
	assert.Empty(t, s.Rockets())
	assert.Empty(t, s.Particles())

	f := s.Advance(10 * config.SpawnInterval)
	assert.Empty(t, f.Launched)
	assert.Empty(t, s.Rockets())

	s.Start()
	f = s.Advance(config.SpawnInterval)
	assert.Len(t, f.Launched, 1)
}

func TestResizeIgnoresInvalid(t *testing.T) {
	s := New(WithSize(320, 240))
	s.Resize(0, 100)
	s.Resize(100, -1)
	w, h := s.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	s.Resize(640, 480)
	w, h = s.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestSimulationDrainsAfterStopSpawning(t *testing.T) {
	s := newTestShow(t)
	for i := 0; i < 600; i++ {
		s.Advance(time.Second / 60)
	}
	require.NotZero(t, s.Stats().Bursts)

	for _, p := range s.Particles() {
		assert.Greater(t, p.Life, 0.0)
		assert.Greater(t, p.Size, 0.1)
	}
	for _, r := range s.Rockets() {
		assert.Greater(t, r.Y, r.TargetY)
	}

	// Without new launches every rocket bursts and every particle expires.
	for i := 0; i < 1000; i++ {
		s.Step()
	}
	assert.Empty(t, s.Rockets())
	assert.Empty(t, s.Particles())
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New(WithSize(800, 600), WithSeed(7))
	b := New(WithSize(800, 600), WithSeed(7))
	a.Start()
	b.Start()
	for i := 0; i < 300; i++ {
		a.Advance(time.Second / 60)
		b.Advance(time.Second / 60)
	}
	assert.Equal(t, a.Stats(), b.Stats())
	assert.Equal(t, a.Particles(), b.Particles())
}
