// Package oto plays a pocket.AudioSource on the default audio device.
package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pocketaudio/pocket"
)

const (
	channelCount   = 2
	bytesPerSample = 2
	bytesPerFrame  = channelCount * bytesPerSample
)

type (
	// Context owns the process-wide oto context. Blocks of blockSize frames
	// are pulled from the sources it plays.
	Context struct {
		ctx       *oto.Context
		blockSize int
	}

	stream struct {
		player *oto.Player
		source pocket.AudioSource
		buf    pocket.AudioBuffer
		bytes  []byte
		offset int
		done   chan struct{}
		once   sync.Once
	}
)

func NewContext(sampleRate, blockSize int) (*Context, error) {
	if sampleRate <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("invalid audio format: sample rate %d, block size %d", sampleRate, blockSize)
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(blockSize) * time.Second / time.Duration(sampleRate),
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, blockSize: blockSize}, nil
}

// Play starts pulling audio from source until the returned stream is
// closed or source fails.
func (c *Context) Play(source pocket.AudioSource) pocket.CloserWaiter {
	s := &stream{
		source: source,
		buf:    make(pocket.AudioBuffer, c.blockSize),
		bytes:  make([]byte, 0, c.blockSize*bytesPerFrame),
		done:   make(chan struct{}),
	}
	s.player = c.ctx.NewPlayer(s)
	s.player.Play()
	return s
}

// Close suspends the device. oto allows only one context per process, so it
// cannot be reopened.
func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (s *stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.offset == len(s.bytes) {
			if err := s.source(s.buf); err != nil {
				s.finish()
				return n, io.EOF
			}
			s.bytes = FloatBufferTo16BitLE(s.buf, s.bytes[:0])
			s.offset = 0
		}
		c := copy(p[n:], s.bytes[s.offset:])
		s.offset += c
		n += c
	}
	return n, nil
}

func (s *stream) finish() {
	s.once.Do(func() { close(s.done) })
}

func (s *stream) Close() error {
	err := s.player.Close()
	s.finish()
	if err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

// Wait blocks until the stream is closed or its source has failed.
func (s *stream) Wait() {
	<-s.done
}
