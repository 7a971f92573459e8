package host

import (
	"github.com/pocketaudio/pocket"
	"gitlab.com/gomidi/midi/v2"
)

const queueSize = 1024

type (
	// MessageQueue carries MIDI messages from a driver goroutine to the
	// audio goroutine. Messages are stamped in milliseconds by the driver;
	// the queue maps them to frames of the blocks being rendered, slowly
	// pulling its block clock towards the driver clock.
	MessageQueue struct {
		sampleRate    int
		incoming      chan timestampedMsg
		pending       []timestampedMsg
		index         int
		startFrame    int
		startFrameSet bool
	}

	timestampedMsg struct {
		frame int
		msg   midi.Message
	}
)

func NewMessageQueue(sampleRate int) *MessageQueue {
	return &MessageQueue{
		sampleRate: sampleRate,
		incoming:   make(chan timestampedMsg, queueSize),
		pending:    make([]timestampedMsg, 0, queueSize),
	}
}

// HandleMessage is the driver callback. The message is dropped if the queue
// is full. At most queueSize messages are handed out per block; the rest are
// dropped too.
func (q *MessageQueue) HandleMessage(msg midi.Message, timestampms int32) {
	select {
	case q.incoming <- timestampedMsg{frame: int(int64(timestampms) * int64(q.sampleRate) / 1000), msg: msg}:
	default:
	}
}

func (q *MessageQueue) drain() {
	for {
		select {
		case m := <-q.incoming:
			if !q.startFrameSet {
				q.startFrame = m.frame
				q.startFrameSet = true
			}
			if len(q.pending) < queueSize {
				q.pending = append(q.pending, m)
			}
		default:
			return
		}
	}
}

// NextEvent returns the next note event received so far. A note-on with
// zero velocity is a note-off. Events stamped before the current block are
// placed at its start.
func (q *MessageQueue) NextEvent() (event pocket.NoteEvent, ok bool) {
	q.drain()
	for q.index < len(q.pending) {
		var channel, key, velocity uint8
		m := q.pending[q.index]
		q.index++
		isNoteOn := m.msg.GetNoteOn(&channel, &key, &velocity)
		isNoteOff := !isNoteOn && m.msg.GetNoteOff(&channel, &key, &velocity)
		if !isNoteOn && !isNoteOff {
			continue
		}
		return pocket.NoteEvent{
			Frame:    max(m.frame-q.startFrame, 0),
			On:       isNoteOn && velocity > 0,
			Channel:  int(channel),
			Note:     key,
			Velocity: velocity,
		}, true
	}
	return pocket.NoteEvent{}, false
}

// FinishBlock forgets the events of the block, read or not, and moves the
// block clock frames forward.
func (q *MessageQueue) FinishBlock(frames int) {
	q.drain()
	end := q.startFrame + frames
	if n := len(q.pending); n > 0 {
		last := q.pending[n-1].frame
		switch {
		case last < q.startFrame: // blocks run ahead of the driver
			end -= (q.startFrame - last) / 5
		case last > end:
			end += (last - end) / 5
		}
	}
	q.startFrame = end
	q.pending = q.pending[:0]
	q.index = 0
}
