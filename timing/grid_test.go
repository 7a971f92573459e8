package timing_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/timing"
)

func TestNearestGridLine(t *testing.T) {
	tests := []struct {
		pos  float64
		want float64
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{0.51, 1},
		{4.5, 5},
		{-0.5, 0},
		{-0.51, -1},
		{-1.5, -1},
		{0.49999999999999994, 0},
		{1e9 + 0.25, 1e9},
	}
	for _, test := range tests {
		if got := timing.NearestGridLine(test.pos); got != test.want {
			t.Errorf("NearestGridLine(%v) = %v, want %v", test.pos, got, test.want)
		}
	}
}

func TestGridErrorIsBoundedAndSigned(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		pos := (r.Float64() - 0.25) * 10000
		e := timing.GridError(pos)
		if e < -0.5 || e >= 0.5 {
			t.Fatalf("GridError(%v) = %v out of [-0.5, 0.5)", pos, e)
		}
		line := timing.NearestGridLine(pos)
		if pos < line && e >= 0 {
			t.Fatalf("pos %v below grid line %v but error %v is not negative", pos, line, e)
		}
		if pos > line && e <= 0 {
			t.Fatalf("pos %v above grid line %v but error %v is not positive", pos, line, e)
		}
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name       string
		transport  pocket.Transport
		sampleRate float64
		frame      int
		want       float64
		wantOk     bool
	}{
		{"half beat at 120 bpm", playing(120, 4), 44100, 11025, -250, true},
		{"sixteenth late at 90 bpm", playing(90, 3), 48000, 8000, 0.25 * 60000 / 90, true},
		{"stopped", pocket.Transport{BPM: 120, PPQ: 1}, 44100, 0, 0, false},
		{"zero tempo", playing(0, 1), 44100, 0, 0, false},
		{"infinite tempo", playing(math.Inf(1), 1), 44100, 0, 0, false},
		{"zero sample rate", playing(120, 1), 0, 10, 0, false},
		{"NaN sample rate", playing(120, 1), math.NaN(), 10, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := timing.Measure(test.transport, test.sampleRate, test.frame)
			if ok != test.wantOk {
				t.Fatalf("ok = %v, want %v", ok, test.wantOk)
			}
			if math.Abs(got-test.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestDeviationSignFollowsGridSide(t *testing.T) {
	for _, bpm := range []float64{40, 97.5, 120, 174, 300} {
		for frame := 0; frame < 44100; frame += 997 {
			tr := playing(bpm, 12.3)
			ms, ok := timing.Measure(tr, 44100, frame)
			if !ok {
				t.Fatalf("no measurement at bpm %v", bpm)
			}
			beat := 60000 / bpm
			if math.Abs(ms) > beat/2+1e-9 {
				t.Fatalf("bpm %v frame %v: |%v| exceeds half a beat (%v)", bpm, frame, ms, beat/2)
			}
			pos := tr.PPQ + float64(frame)/44100*(bpm/60)
			if line := timing.NearestGridLine(pos); (pos < line) != (ms < 0) && pos != line {
				t.Fatalf("bpm %v frame %v: sign of %v does not match side of grid line %v (pos %v)", bpm, frame, ms, line, pos)
			}
		}
	}
}
