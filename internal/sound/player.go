package sound

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/fireworks/internal/config"
)

var ErrClosed = errors.New("sound player closed")

// Player mixes launch and burst sounds onto the speaker. A disabled Player
// never touches the audio device and all of its methods are no-ops.
type Player struct {
	sr      beep.SampleRate
	mixer   *beep.Mixer
	volume  *effects.Volume
	tap     *levelTap
	enabled bool

	mu     sync.Mutex
	rng    *rand.Rand
	closed bool
}

// Disabled returns a Player that plays nothing.
func Disabled() *Player {
	return &Player{}
}

func New(s config.AudioSettings) (*Player, error) {
	if !s.Enabled {
		return Disabled(), nil
	}
	sr := beep.SampleRate(config.SampleRate)
	mixer := &beep.Mixer{}
	volume := &effects.Volume{Streamer: mixer, Base: 2, Volume: s.Volume}
	tap := newLevelTap(volume, config.MeterSamples)

	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(tap)
	log.Printf("[Sound] Speaker ready at %d Hz (volume %.2f)", sr, s.Volume)

	return &Player{
		sr:      sr,
		mixer:   mixer,
		volume:  volume,
		tap:     tap,
		enabled: true,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (p *Player) Enabled() bool { return p.enabled }

func (p *Player) Launch() {
	p.add(func() beep.Streamer { return Whistle(p.sr) })
}

// Burst plays a boom scaled by the number of particles in the explosion.
func (p *Player) Burst(particles int) {
	p.add(func() beep.Streamer { return Boom(p.sr, particles, p.rng.Int63()) })
}

func (p *Player) add(build func() beep.Streamer) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s := build()
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) SetMuted(muted bool) {
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.volume.Silent = muted
	speaker.Unlock()
}

func (p *Player) Muted() bool {
	if !p.enabled {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.volume.Silent
}

// Level is the RMS of the most recent output, 0 when disabled or muted.
func (p *Player) Level() float64 {
	if !p.enabled {
		return 0
	}
	return p.tap.Level()
}

func (p *Player) Close() error {
	if !p.enabled {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}
