package host_test

import (
	"testing"

	"github.com/pocketaudio/pocket"
	"github.com/pocketaudio/pocket/host"
	"gitlab.com/gomidi/midi/v2"
)

func drainEvents(q *host.MessageQueue) []pocket.NoteEvent {
	var ret []pocket.NoteEvent
	for {
		ev, ok := q.NextEvent()
		if !ok {
			return ret
		}
		ret = append(ret, ev)
	}
}

func TestMessageQueueEvents(t *testing.T) {
	q := host.NewMessageQueue(44100)
	q.HandleMessage(midi.NoteOn(0, 60, 100), 1000)
	q.HandleMessage(midi.ControlChange(0, 7, 100), 1005)
	q.HandleMessage(midi.NoteOn(1, 62, 0), 1010)
	q.HandleMessage(midi.NoteOff(2, 64), 1011)
	got := drainEvents(q)
	want := []pocket.NoteEvent{
		{Frame: 0, On: true, Channel: 0, Note: 60, Velocity: 100},
		{Frame: 441, On: false, Channel: 1, Note: 62, Velocity: 0},
		{Frame: 485, On: false, Channel: 2, Note: 64, Velocity: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	q.FinishBlock(512)
	q.HandleMessage(midi.NoteOn(0, 60, 90), 1020)
	got = drainEvents(q)
	if len(got) != 1 || got[0].Frame != 44982-44612 {
		t.Errorf("next block: got %+v, want one event at frame %d", got, 44982-44612)
	}
}

func TestMessageQueueLateEventsStartTheBlock(t *testing.T) {
	q := host.NewMessageQueue(1000)
	q.HandleMessage(midi.NoteOn(0, 60, 100), 100)
	drainEvents(q)
	q.FinishBlock(1000)
	q.HandleMessage(midi.NoteOn(0, 60, 100), 500)
	got := drainEvents(q)
	if len(got) != 1 || got[0].Frame != 0 {
		t.Errorf("got %+v, want one event at frame 0", got)
	}
}

func TestMessageQueueFinishBlockDiscardsUnread(t *testing.T) {
	q := host.NewMessageQueue(44100)
	q.HandleMessage(midi.NoteOn(0, 60, 100), 0)
	q.FinishBlock(512)
	if ev, ok := q.NextEvent(); ok {
		t.Errorf("got stale event %+v", ev)
	}
}

func TestMessageQueueDropsWhenFull(t *testing.T) {
	q := host.NewMessageQueue(44100)
	for i := 0; i < 2000; i++ {
		q.HandleMessage(midi.NoteOn(0, 60, 100), int32(i))
	}
	if n := len(drainEvents(q)); n != 1024 {
		t.Errorf("got %d events, want 1024", n)
	}
}

func TestMessageQueueBlockHoldsAtMostQueueSize(t *testing.T) {
	q := host.NewMessageQueue(44100)
	n := 0
	for batch := 0; batch < 3; batch++ {
		for i := 0; i < 1000; i++ {
			q.HandleMessage(midi.NoteOn(0, 60, 100), int32(i))
		}
		n += len(drainEvents(q))
	}
	if n != 1024 {
		t.Errorf("got %d events in one block, want 1024", n)
	}
	q.FinishBlock(512)
	q.HandleMessage(midi.NoteOn(0, 60, 100), 20)
	if got := drainEvents(q); len(got) != 1 {
		t.Errorf("next block: got %d events, want 1", len(got))
	}
}
