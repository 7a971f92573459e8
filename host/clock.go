// Package host drives the timing engine when Pocket runs standalone: an
// internal transport clock stands in for the plugin host's playhead, MIDI
// comes from a live input and the audio device's callback paces the blocks.
package host

import (
	"sync/atomic"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/timing"
)

const (
	MinBPM = 20
	MaxBPM = 300
)

// Clock is a transport that advances with the rendered audio. Start, Stop,
// Rewind and SetBPM may be called from any goroutine; Advance belongs to
// the audio goroutine.
type Clock struct {
	playing atomic.Bool
	rewind  atomic.Bool
	bpm     timing.Float64
	ppq     timing.Float64
}

func NewClock(bpm float64) *Clock {
	c := &Clock{}
	c.SetBPM(bpm)
	return c
}

func (c *Clock) Start() { c.playing.Store(true) }
func (c *Clock) Stop()  { c.playing.Store(false) }

// Toggle flips between playing and stopped and returns the new state.
func (c *Clock) Toggle() bool {
	for {
		p := c.playing.Load()
		if c.playing.CompareAndSwap(p, !p) {
			return !p
		}
	}
}

// Rewind moves the position back to zero at the start of the next block.
func (c *Clock) Rewind() { c.rewind.Store(true) }

// SetBPM sets the tempo, clamped to [MinBPM, MaxBPM].
func (c *Clock) SetBPM(bpm float64) {
	c.bpm.Store(min(max(bpm, MinBPM), MaxBPM))
}

func (c *Clock) BPM() float64      { return c.bpm.Load() }
func (c *Clock) Playing() bool     { return c.playing.Load() }
func (c *Clock) Position() float64 { return c.ppq.Load() }

// Advance returns the transport at the start of a block of frames samples
// and moves the position to the end of the block if the clock is playing.
func (c *Clock) Advance(frames int, sampleRate float64) pocket.Transport {
	if c.rewind.Swap(false) {
		c.ppq.Store(0)
	}
	t := pocket.Transport{Playing: c.playing.Load(), BPM: c.bpm.Load(), PPQ: c.ppq.Load()}
	if t.Playing && sampleRate > 0 {
		c.ppq.Store(t.PPQ + float64(frames)/sampleRate*(t.BPM/60))
	}
	return t
}
