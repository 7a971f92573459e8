//go:build plugin

package main

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/monitor"
	"github.com/pocketaudio/pocket/monitor/gioui"
	"github.com/pocketaudio/pocket/timing"
	"github.com/pocketaudio/pocket/version"
	"pipelined.dev/audio/vst2"
)

const PLUGIN_NAME = "Pocket"

var PLUGIN_ID = [4]byte{'P', 'c', 'k', 't'}

type VSTIProcessContext struct {
	events     []vst2.MIDIEvent
	eventIndex int
	host       vst2.Host
	timeInfo   *vst2.TimeInfo
}

// begin reads the host time info for the block about to be processed.
func (c *VSTIProcessContext) begin() {
	c.timeInfo = c.host.GetTimeInfo(vst2.PpqPosValid | vst2.TempoValid)
}

func (c *VSTIProcessContext) Transport() (t pocket.Transport, ok bool) {
	ti := c.timeInfo
	if ti == nil {
		return pocket.Transport{}, false
	}
	t.Playing = ti.Flags&vst2.TransportPlaying != 0
	t.PPQ = math.NaN()
	if ti.Flags&vst2.PpqPosValid != 0 {
		t.PPQ = ti.PpqPos
	}
	if ti.Flags&vst2.TempoValid != 0 {
		t.BPM = ti.Tempo
	}
	return t, true
}

func (c *VSTIProcessContext) SampleRate() float64 {
	if c.timeInfo == nil {
		return 0
	}
	return c.timeInfo.SampleRate
}

func (c *VSTIProcessContext) NextEvent() (event pocket.NoteEvent, ok bool) {
	for c.eventIndex < len(c.events) {
		ev := c.events[c.eventIndex]
		c.eventIndex++
		switch {
		case ev.Data[0] >= 0x80 && ev.Data[0] < 0x90:
			channel := ev.Data[0] - 0x80
			return pocket.NoteEvent{Frame: int(ev.DeltaFrames), On: false, Channel: int(channel), Note: ev.Data[1], Velocity: ev.Data[2]}, true
		case ev.Data[0] >= 0x90 && ev.Data[0] < 0xA0:
			channel := ev.Data[0] - 0x90
			return pocket.NoteEvent{Frame: int(ev.DeltaFrames), On: ev.Data[2] > 0, Channel: int(channel), Note: ev.Data[1], Velocity: ev.Data[2]}, true
		default:
			// ignore all other MIDI messages
		}
	}
	return pocket.NoteEvent{}, false
}

func (c *VSTIProcessContext) FinishBlock(frames int) {
	c.events = c.events[:0] // reset buffer, but keep the allocated memory
	c.eventIndex = 0
	c.timeInfo = nil
}

func init() {
	var (
		pluginVersion = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		engine := timing.NewEngine(nil)
		w := gioui.NewWindow(PLUGIN_NAME)
		go w.Main()
		ctx, cancel := context.WithCancel(context.Background())
		go monitor.NewPoller(engine.State(), w).Run(ctx)
		context := VSTIProcessContext{host: h, events: make([]vst2.MIDIEvent, 0, 256)}
		return vst2.Plugin{
				UniqueID:       PLUGIN_ID,
				Version:        pluginVersion,
				InputChannels:  2,
				OutputChannels: 2,
				Name:           PLUGIN_NAME,
				Vendor:         "pocketaudio",
				Category:       vst2.PluginCategoryEffect,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					for ch := 0; ch < out.Channels; ch++ {
						var src []float32
						if ch < in.Channels {
							src = in.Channel(ch)
						}
						pocket.PassThrough(out.Channel(ch), src)
					}
					context.begin()
					engine.Process(out.Frames, &context)
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent, vst2.PluginCanReceiveTimeInfo:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						a := ev.Event(i)
						switch v := a.(type) {
						case *vst2.MIDIEvent:
							context.events = append(context.events, *v)
						}
					}
				},
				CloseFunc: func() {
					cancel()
					w.Close()
					if !w.WaitClosed(3 * time.Second) {
						slog.Warn("editor window did not close in time")
					}
				},
				GetChunkFunc: func(isPreset bool) []byte {
					return nil
				},
				SetChunkFunc: func(data []byte, isPreset bool) {},
			}
	}
	slog.Debug("pocket plugin registered", "version", version.VersionOrHash)
}

func main() {}
