package timing

// Stopped is the position published while the transport is not playing.
const Stopped = -1.0

// State is the outcome of the last processed block. Only the Engine writes
// it; everybody else reads. Use NewState: the zero value would report a
// playing transport at position 0.
type State struct {
	deviation Float64 // ms, negative = early, positive = late
	position  Float64 // quarter notes, or Stopped
}

func NewState() *State {
	s := &State{}
	s.position.Store(Stopped)
	return s
}

// Deviation returns the signed distance in milliseconds between the most
// recent note-on and its nearest quarter note. It keeps its value through
// blocks without note-ons and is reset to 0 when the transport stops or
// the tempo is invalid.
func (s *State) Deviation() float64 {
	return s.deviation.Load()
}

// Position returns the transport position in quarter notes at the start of
// the last block, or Stopped.
func (s *State) Position() float64 {
	return s.position.Load()
}

// Playing reports whether the last block saw a playing transport.
func (s *State) Playing() bool {
	return s.Position() >= 0
}
