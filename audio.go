package pocket

type (
	// AudioBuffer is a buffer of stereo audio samples of variable length,
	// each sample represented by [2]float32: [0] is left channel, [1] is right.
	AudioBuffer [][2]float32

	// AudioSource fills the given buffer completely. It is called from the
	// audio device's thread and must not block.
	AudioSource func(buf AudioBuffer) error

	// AudioContext is an audio back-end able to pull audio from a source.
	AudioContext interface {
		Play(source AudioSource) CloserWaiter
		Close() error
	}

	// CloserWaiter is a playing stream. Close stops it; Wait blocks until it
	// has stopped.
	CloserWaiter interface {
		Close() error
		Wait()
	}
)

// Clear zeroes the buffer while keeping its length.
func (b AudioBuffer) Clear() {
	for i := range b {
		b[i] = [2]float32{}
	}
}

// PassThrough copies src into dst and silences the part of dst that src
// does not cover. A nil src silences all of dst.
func PassThrough(dst, src []float32) {
	n := copy(dst, src)
	clear(dst[n:])
}
