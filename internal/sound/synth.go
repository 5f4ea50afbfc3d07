package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

const (
	whistleDuration = 350 * time.Millisecond
	whistleFromHz   = 700.0
	whistleToHz     = 1800.0
	whistleGain     = 0.12

	boomMinDuration = 600 * time.Millisecond
	boomMaxDuration = 1200 * time.Millisecond
	boomMinGain     = 0.25
	boomMaxGain     = 0.5
	boomSmoothing   = 0.08
)

// mono renders n samples produced by fn into both channels and then drains.
func mono(n int, fn func(i int) float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			v := fn(pos)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return i, true
	})
}

// Whistle is the rising sine sweep of a launching rocket.
func Whistle(sr beep.SampleRate) beep.Streamer {
	n := sr.N(whistleDuration)
	phase := 0.0
	return mono(n, func(i int) float64 {
		u := float64(i) / float64(n)
		freq := whistleFromHz + (whistleToHz-whistleFromHz)*u
		phase += 2 * math.Pi * freq / float64(sr)
		return whistleGain * envelope(u, 0.1) * math.Sin(phase)
	})
}

// Boom is the low rumble of a burst. Bigger bursts are louder and longer.
func Boom(sr beep.SampleRate, particles int, seed int64) beep.Streamer {
	strength := burstStrength(particles)
	d := boomMinDuration + time.Duration(strength*float64(boomMaxDuration-boomMinDuration))
	gain := boomMinGain + strength*(boomMaxGain-boomMinGain)
	n := sr.N(d)

	rng := rand.New(rand.NewSource(seed))
	y := 0.0
	return mono(n, func(i int) float64 {
		u := float64(i) / float64(n)
		x := rng.Float64()*2 - 1
		y += boomSmoothing * (x - y)
		return gain * 3 * y * math.Exp(-5*u) * envelope(u, 0.01)
	})
}

// burstStrength maps a particle count of 100..300 onto 0..1.
func burstStrength(particles int) float64 {
	s := (float64(particles) - 100) / 200
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// envelope is a linear attack over the first part of u followed by a
// quadratic release to silence at u = 1.
func envelope(u, attack float64) float64 {
	if u < 0 || u >= 1 {
		return 0
	}
	if u < attack {
		return u / attack
	}
	r := 1 - (u-attack)/(1-attack)
	return r * r
}
