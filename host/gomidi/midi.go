// Package gomidi reads live MIDI input through gomidi and its RtMidi driver.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/host"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		currentIn drivers.In
		stop      func()
		queue     *host.MessageQueue
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the driver. Incoming messages are stamped with frames at
// the given sample rate.
func NewContext(sampleRate int) *RTMIDIContext {
	m := RTMIDIContext{queue: host.NewMessageQueue(sampleRate)}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

func (m *RTMIDIContext) InputDevices(yield func(RTMIDIDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for _, in := range ins {
		if !yield(RTMIDIDevice{context: m, in: in}) {
			return
		}
	}
}

func (m *RTMIDIContext) Inputs() []string {
	var names []string
	for d := range m.InputDevices {
		names = append(names, d.String())
	}
	return names
}

// Open opens the first input starting with namePrefix, closing the current
// one.
func (m *RTMIDIContext) Open(namePrefix string) (string, error) {
	for d := range m.InputDevices {
		if strings.HasPrefix(d.String(), namePrefix) {
			if err := d.Open(); err != nil {
				return "", err
			}
			return d.String(), nil
		}
	}
	if namePrefix == "" {
		return "", host.ErrNoInput
	}
	return "", fmt.Errorf("%w starting with %q", host.ErrNoInput, namePrefix)
}

// Open an input device while closing the currently open if necessary.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in {
		return nil
	}
	if c.driver == nil {
		return errors.New("no driver available")
	}
	c.closeInput()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, c.queue.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.currentIn, c.stop = d.in, stop
	return nil
}

func (d RTMIDIDevice) String() string {
	return d.in.String()
}

func (m *RTMIDIContext) closeInput() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	if m.currentIn != nil && m.currentIn.IsOpen() {
		m.currentIn.Close()
	}
	m.currentIn = nil
}

func (m *RTMIDIContext) Close() {
	if m.driver == nil {
		return
	}
	m.closeInput()
	m.driver.Close()
}

func (m *RTMIDIContext) NextEvent() (pocket.NoteEvent, bool) {
	return m.queue.NextEvent()
}

func (m *RTMIDIContext) FinishBlock(frames int) {
	m.queue.FinishBlock(frames)
}

var _ host.MIDIContext = (*RTMIDIContext)(nil)
