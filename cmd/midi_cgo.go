//go:build cgo

package cmd

import (
	"github.com/pocketaudio/pocket/host"
	"github.com/pocketaudio/pocket/host/gomidi"
)

func NewMidiContext(sampleRate int) host.MIDIContext {
	return gomidi.NewContext(sampleRate)
}
