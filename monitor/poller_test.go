package monitor_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/monitor"
	"github.com/pocketaudio/pocket/timing"
)

func TestPollerDeliversOnlyChanges(t *testing.T) {
	src := &fixedSource{deviation: 0, position: -1}
	var got []monitor.Readout
	p := monitor.NewPoller(src, monitor.SinkFunc(func(r monitor.Readout) bool {
		got = append(got, r)
		return true
	}))
	if !p.Poll() {
		t.Fatal("first poll should always deliver")
	}
	if p.Poll() {
		t.Fatal("unchanged state should not be delivered again")
	}
	src.deviation, src.position = 20, 1.5
	if !p.Poll() {
		t.Fatal("changed state should be delivered")
	}
	if len(got) != 2 || got[1].Late != "+ 20.0 ms" {
		t.Fatalf("unexpected deliveries %+v", got)
	}
}

func TestPollerIgnoresUndisplayableChanges(t *testing.T) {
	src := &fixedSource{deviation: math.NaN(), position: 2}
	n := 0
	p := monitor.NewPoller(src, monitor.SinkFunc(func(monitor.Readout) bool {
		n++
		return true
	}))
	p.Poll()
	p.Poll()
	src.deviation = 0.0001
	p.Poll()
	if n != 1 {
		t.Fatalf("delivered %d readouts, want 1", n)
	}
}

func TestPollerRetriesDroppedReadouts(t *testing.T) {
	src := &fixedSource{deviation: -3, position: 2}
	sink := monitor.NewChanSink(1)
	sink <- monitor.Readout{} // full
	p := monitor.NewPoller(src, sink)
	if p.Poll() {
		t.Fatal("a full sink should drop the readout")
	}
	<-sink
	if !p.Poll() {
		t.Fatal("the dropped readout should be retried on the next poll")
	}
	if r := <-sink; r.Early != "3.0 ms" {
		t.Fatalf("unexpected readout %+v", r)
	}
}

func TestPollerOptions(t *testing.T) {
	p := monitor.NewPoller(&fixedSource{}, monitor.NewChanSink(1), monitor.RefreshRate(50), monitor.RefreshRate(-1))
	if p.Interval() != 20*time.Millisecond {
		t.Fatalf("interval %v, want 20ms", p.Interval())
	}
	if d := monitor.NewPoller(&fixedSource{}, monitor.NewChanSink(1)).Interval(); d != time.Second/monitor.DefaultRefreshRate {
		t.Fatalf("default interval %v", d)
	}
}

type playingContext struct {
	ppq   float64
	event bool
}

func (c *playingContext) Transport() (pocket.Transport, bool) {
	return pocket.Transport{Playing: true, BPM: 120, PPQ: c.ppq}, true
}

func (c *playingContext) NextEvent() (pocket.NoteEvent, bool) {
	if !c.event {
		return pocket.NoteEvent{}, false
	}
	c.event = false
	return pocket.NoteEvent{Frame: 0, On: true}, true
}

func (c *playingContext) SampleRate() float64 { return 44100 }
func (c *playingContext) FinishBlock(int)     {}

// TestPollerFollowsEngine runs the engine on one goroutine and the poller on
// another, and checks that the display eventually shows the final state.
func TestPollerFollowsEngine(t *testing.T) {
	engine := timing.NewEngine(nil)
	sink := monitor.NewChanSink(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := monitor.NewPoller(engine.State(), sink, monitor.RefreshRate(1000))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx)
	}()
	pc := &playingContext{}
	for i := 0; i < 1000; i++ {
		pc.ppq = float64(i) + 0.1
		pc.event = true
		engine.Process(256, pc)
	}
	want := monitor.Format(engine.State().Deviation(), engine.State().Position(), monitor.DefaultThreshold)
	deadline := time.Now().Add(5 * time.Second)
	for {
		r, ok := monitor.TimeoutReceive[monitor.Readout](sink, time.Until(deadline))
		if !ok {
			t.Fatalf("poller never delivered the final readout %+v", want)
		}
		if r == want {
			cancel()
			wg.Wait()
			return
		}
	}
}
