package replay

import (
	"fmt"
	"math"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/monitor"
	"github.com/pocketaudio/pocket/timing"
)

type (
	// Options describe the simulated host. Threshold is the smallest
	// deviation, in ms, reported as early or late.
	Options struct {
		SampleRate int
		BlockSize  int
		Threshold  float64
	}

	// NoteResult is the measured deviation of one note-on. Index is the
	// position of the note in Performance.Notes.
	NoteResult struct {
		Index       int
		Channel     int
		Note        byte
		Seconds     float64
		PPQ         float64
		DeviationMs float64
	}

	// Report is the outcome of a replay. Deviation and Position are what the
	// engine published after the last block.
	Report struct {
		Options
		Notes     []NoteResult
		Deviation float64
		Position  float64
	}

	// replayContext feeds one block of the performance to the engine.
	replayContext struct {
		transport  pocket.Transport
		sampleRate float64
		events     []pocket.NoteEvent
		index      int
	}
)

func DefaultOptions() Options {
	return Options{SampleRate: 44100, BlockSize: 512, Threshold: monitor.DefaultThreshold}
}

// Run plays the performance through a timing engine, block by block, with
// the transport of each block taken from the tempo map at its first frame.
func Run(p *Performance, opts Options) (*Report, error) {
	if opts.SampleRate <= 0 || opts.BlockSize <= 0 || opts.Threshold < 0 {
		return nil, fmt.Errorf("invalid replay options: sample rate %d, block size %d, threshold %v", opts.SampleRate, opts.BlockSize, opts.Threshold)
	}
	sr := float64(opts.SampleRate)
	engine := timing.NewEngine(nil)
	ctx := &replayContext{sampleRate: sr}
	report := &Report{Options: opts, Notes: make([]NoteResult, 0, len(p.Notes))}
	i := 0
	for start := 0; i < len(p.Notes); start += opts.BlockSize {
		t := p.TransportAt(float64(start) / sr)
		ctx.transport = t
		ctx.events = ctx.events[:0]
		for ; i < len(p.Notes); i++ {
			n := p.Notes[i]
			frame := int(math.Round(n.Seconds*sr)) - start
			if frame >= opts.BlockSize {
				break
			}
			ctx.events = append(ctx.events, pocket.NoteEvent{Frame: frame, On: true, Channel: n.Channel, Note: n.Key, Velocity: n.Velocity})
			ms, _ := timing.Measure(t, sr, frame)
			report.Notes = append(report.Notes, NoteResult{
				Index:       i,
				Channel:     n.Channel,
				Note:        n.Key,
				Seconds:     n.Seconds,
				PPQ:         n.PPQ,
				DeviationMs: ms,
			})
		}
		engine.Process(opts.BlockSize, ctx)
	}
	report.Deviation = engine.State().Deviation()
	report.Position = engine.State().Position()
	return report, nil
}

// Tolerance is the threshold used to call a note early or late. Notes are
// placed on whole frames, so it is never less than half a frame.
func (r *Report) Tolerance() float64 {
	if r.SampleRate <= 0 {
		return r.Threshold
	}
	return max(r.Threshold, 500/float64(r.SampleRate))
}

func (c *replayContext) Transport() (pocket.Transport, bool) { return c.transport, true }
func (c *replayContext) SampleRate() float64                 { return c.sampleRate }

func (c *replayContext) NextEvent() (pocket.NoteEvent, bool) {
	if c.index >= len(c.events) {
		return pocket.NoteEvent{}, false
	}
	c.index++
	return c.events[c.index-1], true
}

func (c *replayContext) FinishBlock(frames int) {
	c.index = 0
}
