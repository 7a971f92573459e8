package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gioui.org/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pocketaudio/pocket/cmd"
	"github.com/pocketaudio/pocket/host"
	"github.com/pocketaudio/pocket/host/oto"
	"github.com/pocketaudio/pocket/monitor"
	"github.com/pocketaudio/pocket/monitor/gioui"
	"github.com/pocketaudio/pocket/monitor/tui"
	"github.com/pocketaudio/pocket/timing"
	"github.com/spf13/cobra"
)

var (
	argBPM         float64
	argMidiInput   string
	argNoMetronome bool
	argGUI         bool

	liveCmd = &cobra.Command{
		Use:   "live",
		Short: "Play a click and show the timing of a live MIDI input",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
)

func init() {
	liveCmd.Flags().Float64Var(&argBPM, "bpm", 0, "tempo (default from config)")
	liveCmd.Flags().StringVar(&argMidiInput, "midi-input", "", "connect MIDI input to matching device name prefix (default from config)")
	liveCmd.Flags().BoolVar(&argNoMetronome, "no-metronome", false, "do not play the click")
	liveCmd.Flags().BoolVar(&argGUI, "gui", false, "show the readout in a window instead of the terminal")
}

func runLive(c *cobra.Command, args []string) error {
	hc := cfg.Host
	if c.Flags().Changed("bpm") {
		hc.BPM = argBPM
	}
	if c.Flags().Changed("midi-input") {
		hc.MIDIInput = argMidiInput
	}
	midiContext := cmd.NewMidiContext(hc.SampleRate)
	input, err := midiContext.Open(hc.MIDIInput)
	if err != nil {
		logger.Warn("no MIDI input, showing the transport only", "err", err)
	} else {
		logger.Info("MIDI input opened", "name", input)
	}
	clock := host.NewClock(hc.BPM)
	engine := timing.NewEngine(nil)
	h := host.New(engine, clock, midiContext, hc.SampleRate)
	if hc.MetronomeGain > 0 && !argNoMetronome {
		h.SetMetronome(host.NewMetronome(hc.MetronomeGain))
	}
	audioContext, err := oto.NewContext(hc.SampleRate, hc.BlockSize)
	if err != nil {
		midiContext.Close()
		return fmt.Errorf("could not acquire oto AudioContext: %w", err)
	}
	stream := audioContext.Play(h.Process)
	logger.Info("audio started", "samplerate", hc.SampleRate, "blocksize", hc.BlockSize, "bpm", clock.BPM())
	shutdown := func() {
		stream.Close()
		audioContext.Close()
		midiContext.Close()
	}
	ctx, cancel := context.WithCancel(c.Context())
	opts := []monitor.Option{
		monitor.RefreshRate(cfg.Monitor.RefreshRate),
		monitor.Threshold(cfg.Monitor.Threshold),
		monitor.Logger(logger),
	}
	if argGUI {
		runWindow(ctx, engine.State(), clock, opts, func() {
			cancel()
			shutdown()
		})
		return nil
	}
	defer shutdown()
	defer cancel()
	if argLogFile == "" {
		// the terminal belongs to the display now
		opts = append(opts, monitor.Logger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	}
	sink := monitor.NewChanSink(1)
	go monitor.NewPoller(engine.State(), sink, opts...).Run(ctx)
	if _, err := tea.NewProgram(tui.New(sink, clock, input)).Run(); err != nil {
		return fmt.Errorf("terminal display failed: %w", err)
	}
	return nil
}

// runWindow shows the readout in a gioui window; the window owns the main
// goroutine, so it never returns.
func runWindow(ctx context.Context, src monitor.Source, clock *host.Clock, opts []monitor.Option, done func()) {
	w := gioui.NewWindow("Pocket")
	clock.Start()
	go monitor.NewPoller(src, w, opts...).Run(ctx)
	go func() {
		w.Main()
		done()
		if logCloser != nil {
			logCloser.Close()
		}
		os.Exit(0)
	}()
	app.Main()
}
