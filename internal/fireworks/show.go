package fireworks

import (
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/fireworks/internal/config"
)

// Rocket rises from the bottom edge until it reaches TargetY, where it bursts.
type Rocket struct {
	X, Y    float64
	Speed   float64 // pixels per frame
	TargetY float64
	Color   Color
	Size    float64
}

// Particle is one spark of a burst.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   Color
	Size    float64
	Life    float64
	Decay   float64
	Gravity float64
}

// Burst describes a rocket that exploded during a step.
type Burst struct {
	X, Y      float64
	Color     Color
	Particles int
}

// Frame is what happened during one Advance.
type Frame struct {
	Launched []Rocket
	Bursts   []Burst
}

type Stats struct {
	Rockets   int
	Particles int
	Bursts    int
}

// Show is the whole simulation: the surface it lives on, every rocket and
// particle in flight and the spawn clock. It is not safe for concurrent use;
// the frame loop owns it.
type Show struct {
	width, height float64
	palette       Palette
	rng           *rand.Rand

	rockets   []Rocket
	particles []Particle

	active     bool
	spawnClock time.Duration
	bursts     int
}

type Option func(*Show)

func WithSize(w, h int) Option {
	return func(s *Show) { s.Resize(w, h) }
}

func WithPalette(p Palette) Option {
	return func(s *Show) {
		if len(p) > 0 {
			s.palette = p
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *Show) {
		if r != nil {
			s.rng = r
		}
	}
}

func WithSeed(seed int64) Option {
	return func(s *Show) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New returns an inactive show. Call Start to begin spawning rockets.
func New(opts ...Option) *Show {
	s := &Show{
		palette: DefaultPalette(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resize sets the drawing surface in pixels. Non-positive sizes are ignored.
// Objects already in flight keep their coordinates.
func (s *Show) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = float64(w), float64(h)
}

func (s *Show) Size() (int, int) {
	return int(s.width), int(s.height)
}

func (s *Show) Start() {
	s.active = true
	s.spawnClock = 0
}

// Stop halts the show and clears the sky.
func (s *Show) Stop() {
	s.active = false
	s.spawnClock = 0
	s.rockets = s.rockets[:0]
	s.particles = s.particles[:0]
}

func (s *Show) Active() bool { return s.active }

func (s *Show) Rockets() []Rocket { return s.rockets }

func (s *Show) Particles() []Particle { return s.particles }

func (s *Show) Stats() Stats {
	return Stats{Rockets: len(s.rockets), Particles: len(s.particles), Bursts: s.bursts}
}

// Launch fires one rocket from a random point on the bottom edge.
func (s *Show) Launch() (Rocket, bool) {
	if !s.active || s.width <= 0 || s.height <= 0 {
		return Rocket{}, false
	}
	r := Rocket{
		X:       s.rng.Float64() * s.width,
		Y:       s.height,
		Speed:   config.RocketMinSpeed + s.rng.Float64()*config.RocketSpeedSpan,
		TargetY: config.RocketMinTarget + s.rng.Float64()*(s.height/2),
		Color:   s.palette[s.rng.Intn(len(s.palette))],
		Size:    config.RocketSize,
	}
	s.rockets = append(s.rockets, r)
	return r, true
}

// Explode emits a radial batch of particles at (x, y).
func (s *Show) Explode(x, y float64, c Color) Burst {
	n := int(math.Ceil(config.BurstMinParticles + s.rng.Float64()*config.BurstParticleSpan))
	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * math.Pi * 2
		speed := config.ParticleMinSpeed + s.rng.Float64()*config.ParticleSpeedSpan
		s.particles = append(s.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Color:   c,
			Size:    config.ParticleMinSize + s.rng.Float64()*config.ParticleSizeSpan,
			Life:    config.ParticleMinLife + s.rng.Float64()*config.ParticleLifeSpan,
			Decay:   config.ParticleMinDecay + s.rng.Float64()*config.ParticleDecaySpan,
			Gravity: config.ParticleGravity,
		})
	}
	s.bursts++
	return Burst{X: x, Y: y, Color: c, Particles: n}
}

// Advance moves the spawn clock by dt, launching one rocket per elapsed
// spawn interval, then runs one physics step.
func (s *Show) Advance(dt time.Duration) Frame {
	var f Frame
	if !s.active {
		return f
	}
	s.spawnClock += dt
	for s.spawnClock >= config.SpawnInterval {
		s.spawnClock -= config.SpawnInterval
		if r, ok := s.Launch(); ok {
			f.Launched = append(f.Launched, r)
		}
	}
	f.Bursts = s.Step()
	return f
}

// Step advances every rocket and particle by one frame.
func (s *Show) Step() []Burst {
	bursts := s.stepRockets()
	s.stepParticles()
	return bursts
}

func (s *Show) stepRockets() []Burst {
	var bursts []Burst
	kept := s.rockets[:0]
	for _, r := range s.rockets {
		r.Y -= r.Speed
		if r.Y <= r.TargetY {
			bursts = append(bursts, s.Explode(r.X, r.Y, r.Color))
			continue
		}
		kept = append(kept, r)
	}
	s.rockets = kept
	return bursts
}

func (s *Show) stepParticles() {
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VY += p.Gravity
		p.Life -= p.Decay
		p.Size *= config.ParticleShrink
		if p.Life <= 0 || p.Size <= config.ParticleVanishSize {
			continue
		}
		kept = append(kept, p)
	}
	s.particles = kept
}
