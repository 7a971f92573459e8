// Package replay measures the timing of a recorded performance offline: it
// plays a Standard MIDI File through the timing engine the way a host would
// and reports the deviation of every note.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pocketaudio/pocket"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultBPM is the tempo of a file until its first tempo event.
const DefaultBPM = 120

var ErrTimeFormat = errors.New("only metric (ticks per quarter note) time formats are supported")

type (
	// Performance is the content of a MIDI file reduced to what the timing
	// engine needs: the tempo map and the note-ons.
	Performance struct {
		Resolution int // ticks per quarter note
		Tempo      []TempoChange
		Notes      []Note
	}

	// TempoChange sets the tempo from Tick on. Seconds is the time of Tick.
	TempoChange struct {
		Tick    int64
		BPM     float64
		Seconds float64
	}

	Note struct {
		Track    int
		Tick     int64
		Seconds  float64
		PPQ      float64
		Channel  int
		Key      byte
		Velocity byte
	}
)

// Load reads the MIDI file at path.
func Load(path string) (*Performance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", path, err)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", path, err)
	}
	return p, nil
}

// Read parses a Standard MIDI File.
func Read(r io.Reader) (*Performance, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, ErrTimeFormat
	}
	p := &Performance{Resolution: int(ticks)}
	var tempo []TempoChange
	for i, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				if bpm > 0 {
					tempo = append(tempo, TempoChange{Tick: tick, BPM: bpm})
				}
				continue
			}
			var channel, key, velocity uint8
			if ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				p.Notes = append(p.Notes, Note{Track: i, Tick: tick, Channel: int(channel), Key: key, Velocity: velocity})
			}
		}
	}
	p.setTempo(tempo)
	sort.SliceStable(p.Notes, func(i, j int) bool { return p.Notes[i].Tick < p.Notes[j].Tick })
	for i := range p.Notes {
		p.Notes[i].Seconds = p.SecondsAt(p.Notes[i].Tick)
		p.Notes[i].PPQ = float64(p.Notes[i].Tick) / float64(p.Resolution)
	}
	return p, nil
}

func (p *Performance) setTempo(changes []TempoChange) {
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Tick < changes[j].Tick })
	p.Tempo = []TempoChange{{BPM: DefaultBPM}}
	for _, c := range changes {
		last := &p.Tempo[len(p.Tempo)-1]
		if c.Tick == last.Tick {
			last.BPM = c.BPM
			continue
		}
		c.Seconds = last.Seconds + float64(c.Tick-last.Tick)/float64(p.Resolution)*60/last.BPM
		p.Tempo = append(p.Tempo, c)
	}
}

func (p *Performance) segmentAtTick(tick int64) TempoChange {
	i := sort.Search(len(p.Tempo), func(i int) bool { return p.Tempo[i].Tick > tick })
	return p.Tempo[max(i-1, 0)]
}

func (p *Performance) segmentAtSeconds(seconds float64) TempoChange {
	i := sort.Search(len(p.Tempo), func(i int) bool { return p.Tempo[i].Seconds > seconds })
	return p.Tempo[max(i-1, 0)]
}

// SecondsAt converts a tick to seconds from the start of the file.
func (p *Performance) SecondsAt(tick int64) float64 {
	seg := p.segmentAtTick(tick)
	return seg.Seconds + float64(tick-seg.Tick)/float64(p.Resolution)*60/seg.BPM
}

// TransportAt is the transport of a host playing the file, seconds after
// the start.
func (p *Performance) TransportAt(seconds float64) pocket.Transport {
	seg := p.segmentAtSeconds(seconds)
	return pocket.Transport{
		Playing: true,
		BPM:     seg.BPM,
		PPQ:     float64(seg.Tick)/float64(p.Resolution) + (seconds-seg.Seconds)*seg.BPM/60,
	}
}

// Duration is the time of the last note-on.
func (p *Performance) Duration() float64 {
	if len(p.Notes) == 0 {
		return 0
	}
	return p.Notes[len(p.Notes)-1].Seconds
}
