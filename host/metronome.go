package host

import (
	"math"

	"github.com/pocketaudio/pocket"
	"github.com/viterin/vek/vek32"
)

const (
	clickFrequency = 1760 // Hz
	clickLength    = 0.03 // seconds
	clickDecay     = 0.006
	accentLevel    = 1.0
	beatLevel      = 0.5
	beatsPerBar    = 4
)

// Metronome clicks on every quarter note of a playing transport, louder on
// every fourth one. A click can spill over into the following blocks.
type Metronome struct {
	gain      float32
	remaining int     // samples left of the current click
	elapsed   int     // samples already played of the current click
	lastLine  float64 // grid line of the latest click
	lastPPQ   float64 // transport position of the previous block
	level     float64
	scratch   []float32
}

func NewMetronome(gain float64) *Metronome {
	return &Metronome{gain: float32(gain), lastLine: math.Inf(-1), lastPPQ: math.Inf(-1), scratch: make([]float32, 4096)}
}

// Render mixes the clicks falling inside buf into it. t is the transport at
// the start of the block.
func (m *Metronome) Render(buf pocket.AudioBuffer, t pocket.Transport, sampleRate float64) {
	if m.gain == 0 || len(buf) == 0 || sampleRate <= 0 {
		return
	}
	if !t.Valid() || !t.TempoValid() {
		m.remaining = 0
		m.lastLine = math.Inf(-1)
		m.lastPPQ = math.Inf(-1)
		return
	}
	if t.PPQ < m.lastPPQ { // rewound or looped
		m.lastLine = math.Inf(-1)
	}
	m.lastPPQ = t.PPQ
	if len(m.scratch) < len(buf) {
		m.scratch = append(m.scratch, make([]float32, len(buf)-len(m.scratch))...)
	}
	click := m.scratch[:len(buf)]
	for i := range click {
		click[i] = 0
	}
	framesPerBeat := t.SecondsPerBeat() * sampleRate
	next := math.Ceil(t.PPQ)
	if next == m.lastLine {
		next++ // clicked at the end of the previous block already
	}
	nextFrame := int((next - t.PPQ) * framesPerBeat)
	for i := range click {
		if i == nextFrame {
			m.remaining = int(clickLength * sampleRate)
			m.elapsed = 0
			m.lastLine = next
			m.level = beatLevel
			if math.Mod(next, beatsPerBar) == 0 {
				m.level = accentLevel
			}
			next++
			nextFrame = int((next - t.PPQ) * framesPerBeat)
		}
		if m.remaining > 0 {
			s := float64(m.elapsed) / sampleRate
			click[i] = float32(m.level * math.Sin(2*math.Pi*clickFrequency*s) * math.Exp(-s/clickDecay))
			m.elapsed++
			m.remaining--
		}
	}
	vek32.MulNumber_Inplace(click, m.gain)
	for i, v := range click {
		buf[i][0] += v
		buf[i][1] += v
	}
}
