package timing

import "github.com/pocketaudio/pocket"

// Engine turns the transport and note-ons of each block into a published
// deviation and position.
type Engine struct {
	state *State
}

// NewEngine returns an engine publishing to state. A nil state gets a fresh
// one.
func NewEngine(state *State) *Engine {
	if state == nil {
		state = NewState()
	}
	return &Engine{state: state}
}

func (e *Engine) State() *State {
	return e.state
}

// Process handles one block of frames samples. It is meant to be called
// from the audio callback: every input it does not understand is mapped to
// a default output rather than an error.
//
//   - no transport, or a transport that is not playing: position Stopped,
//     deviation 0, events ignored
//   - playing with a non-positive tempo: position published, deviation 0
//   - unusable sample rate: position published, deviation untouched
//   - otherwise the last note-on of the block sets the deviation; a block
//     without note-ons leaves it as it was
//
// context.FinishBlock is always called before returning.
func (e *Engine) Process(frames int, context pocket.ProcessContext) {
	defer context.FinishBlock(frames)
	t, ok := context.Transport()
	if !ok || !t.Valid() {
		e.state.position.Store(Stopped)
		e.state.deviation.Store(0)
		return
	}
	e.state.position.Store(t.PPQ)
	if !t.TempoValid() {
		e.state.deviation.Store(0)
		return
	}
	sampleRate := context.SampleRate()
	if !validSampleRate(sampleRate) {
		return
	}
	var last float64
	found := false
	for {
		ev, ok := context.NextEvent()
		if !ok {
			break
		}
		if !ev.On {
			continue
		}
		last = deviation(t, sampleRate, ev.Frame)
		found = true
	}
	if found {
		e.state.deviation.Store(last)
	}
}
