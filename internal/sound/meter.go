package sound

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap sits between the mixer and the speaker. It keeps the latest
// output in a ring so bursts can light up the sky in proportion to their boom.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// Level returns the mono RMS of the recorded window.
func (t *levelTap) Level() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.buffer) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range t.buffer {
		m := (s[0] + s[1]) * 0.5
		sumSquares += m * m
	}
	return math.Sqrt(sumSquares / float64(len(t.buffer)))
}
