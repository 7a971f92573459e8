package timing_test

import (
	"math"
	"testing"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/timing"
)

type blockContext struct {
	transport    pocket.Transport
	hasTransport bool
	sampleRate   float64
	events       []pocket.NoteEvent
	index        int
	finished     int
}

func (c *blockContext) Transport() (pocket.Transport, bool) {
	return c.transport, c.hasTransport
}

func (c *blockContext) NextEvent() (pocket.NoteEvent, bool) {
	if c.index >= len(c.events) {
		return pocket.NoteEvent{}, false
	}
	c.index++
	return c.events[c.index-1], true
}

func (c *blockContext) SampleRate() float64 {
	return c.sampleRate
}

func (c *blockContext) FinishBlock(frames int) {
	c.finished++
	c.index = 0
}

func playing(bpm, ppq float64) pocket.Transport {
	return pocket.Transport{Playing: true, BPM: bpm, PPQ: ppq}
}

func noteOn(frame int) pocket.NoteEvent {
	return pocket.NoteEvent{Frame: frame, On: true, Note: 60, Velocity: 100}
}

func noteOff(frame int) pocket.NoteEvent {
	return pocket.NoteEvent{Frame: frame, On: false, Note: 60}
}

func TestEngineProcess(t *testing.T) {
	tests := []struct {
		name          string
		ctx           blockContext
		wantDeviation float64
		wantPosition  float64
	}{
		{
			name:          "half beat ties round up",
			ctx:           blockContext{transport: playing(120, 4), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(11025)}},
			wantDeviation: -250,
			wantPosition:  4,
		},
		{
			name:          "on the beat",
			ctx:           blockContext{transport: playing(120, 8), hasTransport: true, sampleRate: 48000, events: []pocket.NoteEvent{noteOn(0)}},
			wantDeviation: 0,
			wantPosition:  8,
		},
		{
			name:          "late",
			ctx:           blockContext{transport: playing(120, 1.05), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(0)}},
			wantDeviation: 25,
			wantPosition:  1.05,
		},
		{
			name:          "early",
			ctx:           blockContext{transport: playing(60, 2.9), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(0)}},
			wantDeviation: -100,
			wantPosition:  2.9,
		},
		{
			name:          "last note-on of the block wins",
			ctx:           blockContext{transport: playing(120, 0), hasTransport: true, sampleRate: 1000, events: []pocket.NoteEvent{noteOn(10), noteOff(20), noteOn(30), noteOff(40)}},
			wantDeviation: 30,
			wantPosition:  0,
		},
		{
			name:          "zero tempo",
			ctx:           blockContext{transport: playing(0, 3.5), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(100)}},
			wantDeviation: 0,
			wantPosition:  3.5,
		},
		{
			name:          "negative tempo",
			ctx:           blockContext{transport: playing(-120, 3.5), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(100)}},
			wantDeviation: 0,
			wantPosition:  3.5,
		},
		{
			name:          "stopped",
			ctx:           blockContext{transport: pocket.Transport{Playing: false, BPM: 120, PPQ: 7}, hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(100)}},
			wantDeviation: 0,
			wantPosition:  timing.Stopped,
		},
		{
			name:          "no transport",
			ctx:           blockContext{sampleRate: 44100, events: []pocket.NoteEvent{noteOn(100)}},
			wantDeviation: 0,
			wantPosition:  timing.Stopped,
		},
		{
			name:          "playing without a position",
			ctx:           blockContext{transport: playing(120, math.NaN()), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(100)}},
			wantDeviation: 0,
			wantPosition:  timing.Stopped,
		},
		{
			name:          "negative frame offset",
			ctx:           blockContext{transport: playing(120, 4), hasTransport: true, sampleRate: 1000, events: []pocket.NoteEvent{noteOn(-50)}},
			wantDeviation: -50,
			wantPosition:  4,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := timing.NewEngine(nil)
			ctx := test.ctx
			e.Process(512, &ctx)
			if got := e.State().Deviation(); math.Abs(got-test.wantDeviation) > 1e-9 {
				t.Errorf("deviation: got %v, want %v", got, test.wantDeviation)
			}
			if got := e.State().Position(); got != test.wantPosition {
				t.Errorf("position: got %v, want %v", got, test.wantPosition)
			}
			if ctx.finished != 1 {
				t.Errorf("FinishBlock called %d times, want 1", ctx.finished)
			}
		})
	}
}

func TestEngineRoundTripIsExact(t *testing.T) {
	e := timing.NewEngine(nil)
	ctx := blockContext{transport: playing(120, 4), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(11025)}}
	e.Process(16384, &ctx)
	if got := e.State().Deviation(); got != -250.0 {
		t.Fatalf("got %v, want exactly -250", got)
	}
}

func TestEngineKeepsDeviationWithoutNoteOns(t *testing.T) {
	e := timing.NewEngine(nil)
	first := blockContext{transport: playing(120, 1.05), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(0)}}
	e.Process(512, &first)
	want := e.State().Deviation()
	if want == 0 {
		t.Fatalf("first block should have produced a deviation")
	}
	blocks := []blockContext{
		{transport: playing(120, 1.1), hasTransport: true, sampleRate: 44100},
		{transport: playing(120, 1.2), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOff(3), noteOff(7)}},
		{transport: playing(120, 1.3), hasTransport: true, sampleRate: 0, events: []pocket.NoteEvent{noteOn(3)}},
		{transport: playing(120, 1.4), hasTransport: true, sampleRate: math.Inf(1), events: []pocket.NoteEvent{noteOn(3)}},
	}
	for i := range blocks {
		e.Process(512, &blocks[i])
		if got := e.State().Deviation(); got != want {
			t.Fatalf("block %d: deviation changed from %v to %v", i, want, got)
		}
		if got := e.State().Position(); got != blocks[i].transport.PPQ {
			t.Fatalf("block %d: position %v, want %v", i, got, blocks[i].transport.PPQ)
		}
	}
}

func TestEngineStopResetsState(t *testing.T) {
	e := timing.NewEngine(nil)
	ctx := blockContext{transport: playing(100, 2.2), hasTransport: true, sampleRate: 44100, events: []pocket.NoteEvent{noteOn(0)}}
	e.Process(512, &ctx)
	if !e.State().Playing() {
		t.Fatalf("state should be playing")
	}
	e.Process(512, pocket.NullProcessContext{})
	if e.State().Playing() || e.State().Position() != timing.Stopped || e.State().Deviation() != 0 {
		t.Fatalf("state after stop: position %v, deviation %v", e.State().Position(), e.State().Deviation())
	}
}

func TestEngineDoesNotAllocate(t *testing.T) {
	e := timing.NewEngine(nil)
	ctx := &blockContext{transport: playing(128, 16.3), hasTransport: true, sampleRate: 48000, events: []pocket.NoteEvent{noteOn(5), noteOff(9), noteOn(300)}}
	allocs := testing.AllocsPerRun(1000, func() {
		e.Process(512, ctx)
	})
	if allocs != 0 {
		t.Fatalf("Process allocated %v times per block", allocs)
	}
}
