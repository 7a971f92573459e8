//go:build !cgo

package cmd

import "github.com/pocketaudio/pocket/host"

func NewMidiContext(sampleRate int) host.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return host.NullMIDIContext{}
}
