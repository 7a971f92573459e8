package host

import (
	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/timing"
)

// Host ties a Clock, an EventSource, the Engine and an optional Metronome
// together. Process is a pocket.AudioSource.
type Host struct {
	clock      *Clock
	engine     *timing.Engine
	metronome  *Metronome
	sampleRate float64
	context    blockContext
}

func New(engine *timing.Engine, clock *Clock, events EventSource, sampleRate int) *Host {
	if events == nil {
		events = NullEventSource{}
	}
	return &Host{
		clock:      clock,
		engine:     engine,
		sampleRate: float64(sampleRate),
		context:    blockContext{sampleRate: float64(sampleRate), events: events},
	}
}

// SetMetronome sets the click generator. Call it before playback starts.
func (h *Host) SetMetronome(m *Metronome) {
	h.metronome = m
}

func (h *Host) State() *timing.State {
	return h.engine.State()
}

// Process renders one block: it advances the clock, runs the engine on the
// events of the block and fills buf with the metronome, or silence.
func (h *Host) Process(buf pocket.AudioBuffer) error {
	buf.Clear()
	t := h.clock.Advance(len(buf), h.sampleRate)
	h.context.transport = t
	h.engine.Process(len(buf), &h.context)
	if h.metronome != nil {
		h.metronome.Render(buf, t, h.sampleRate)
	}
	return nil
}
