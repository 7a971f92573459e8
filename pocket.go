// Package pocket holds the types shared between the timing engine, the
// hosts that drive it and the displays that poll it.
package pocket

import "math"

type (
	// Transport is the host playback state at the start of a block. It is
	// only valid for the duration of one block and should not be retained.
	Transport struct {
		Playing bool
		BPM     float64 // tempo in beats (quarter notes) per minute; may be <= 0 if the host has none
		PPQ     float64 // musical position at the block start, in quarter notes
	}

	// NoteEvent is a MIDI event triggering or releasing a note. Frame is the
	// sample offset relative to the start of the current block.
	NoteEvent struct {
		Frame    int
		On       bool
		Channel  int
		Note     byte
		Velocity byte
	}

	// ProcessContext is what a host hands to the engine once per block: the
	// transport, the MIDI events of the block in arrival order and the
	// current sample rate. FinishBlock is called once after the events of
	// the block have been consumed, so that the context can recycle its
	// buffers.
	ProcessContext interface {
		Transport() (t Transport, ok bool)
		NextEvent() (event NoteEvent, ok bool)
		SampleRate() float64
		FinishBlock(frames int)
	}

	// NullProcessContext has no transport, no events and no sample rate.
	NullProcessContext struct{}
)

// Valid reports whether the transport carries a usable musical position.
// A host claiming to play without a finite position is treated as stopped.
func (t Transport) Valid() bool {
	return t.Playing && !math.IsNaN(t.PPQ) && !math.IsInf(t.PPQ, 0)
}

// TempoValid reports whether musical time can be converted to seconds.
func (t Transport) TempoValid() bool {
	return t.BPM > 0 && !math.IsInf(t.BPM, 0)
}

// SecondsPerBeat is the length of one quarter note; zero when the tempo is
// not valid.
func (t Transport) SecondsPerBeat() float64 {
	if !t.TempoValid() {
		return 0
	}
	return 60 / t.BPM
}

func (NullProcessContext) Transport() (Transport, bool) { return Transport{}, false }
func (NullProcessContext) NextEvent() (NoteEvent, bool) { return NoteEvent{}, false }
func (NullProcessContext) SampleRate() float64          { return 0 }
func (NullProcessContext) FinishBlock(frames int)       {}
