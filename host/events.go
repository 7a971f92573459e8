package host

import "github.com/pocketaudio/pocket"

type (
	// EventSource hands out the note events of the current block, with
	// frames relative to the block start. FinishBlock tells it that a block
	// of the given length has been rendered.
	EventSource interface {
		NextEvent() (event pocket.NoteEvent, ok bool)
		FinishBlock(frames int)
	}

	NullEventSource struct{}

	// blockContext is the pocket.ProcessContext the host gives the engine.
	blockContext struct {
		transport  pocket.Transport
		sampleRate float64
		events     EventSource
	}
)

func (NullEventSource) NextEvent() (pocket.NoteEvent, bool) { return pocket.NoteEvent{}, false }
func (NullEventSource) FinishBlock(frames int)              {}

func (c *blockContext) Transport() (pocket.Transport, bool) { return c.transport, true }
func (c *blockContext) NextEvent() (pocket.NoteEvent, bool) { return c.events.NextEvent() }
func (c *blockContext) SampleRate() float64                 { return c.sampleRate }
func (c *blockContext) FinishBlock(frames int)              { c.events.FinishBlock(frames) }
