package monitor

import "time"

type (
	// Sink receives readouts from a Poller. Show must not block; it returns
	// false if the readout was dropped.
	Sink interface {
		Show(r Readout) bool
	}

	// ChanSink delivers readouts over a buffered channel, dropping them when
	// the channel is full.
	ChanSink chan Readout

	// SinkFunc adapts a function to a Sink.
	SinkFunc func(r Readout) bool
)

// NewChanSink returns a ChanSink with room for size readouts.
func NewChanSink(size int) ChanSink {
	return make(ChanSink, size)
}

func (c ChanSink) Show(r Readout) bool {
	return TrySend(c, r)
}

func (f SinkFunc) Show(r Readout) bool {
	return f(r)
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
