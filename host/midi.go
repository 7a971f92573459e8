package host

import "errors"

var (
	ErrNoMIDI  = errors.New("MIDI is not available in this build")
	ErrNoInput = errors.New("no matching MIDI input")
)

type (
	// MIDIContext is a live MIDI input feeding the host.
	MIDIContext interface {
		EventSource
		// Inputs lists the names of the available input devices.
		Inputs() []string
		// Open opens the first input whose name starts with namePrefix and
		// returns its name. An empty prefix opens the first input.
		Open(namePrefix string) (string, error)
		Close()
	}

	NullMIDIContext struct{ NullEventSource }
)

func (NullMIDIContext) Inputs() []string                       { return nil }
func (NullMIDIContext) Open(namePrefix string) (string, error) { return "", ErrNoMIDI }
func (NullMIDIContext) Close()                                 {}
