package oto

import (
	"encoding/binary"
	"math"

	"github.com/pocketaudio/pocket"
)

// FloatBufferTo16BitLE appends buf to dst as interleaved 16-bit
// little-endian samples, clipping values outside [-1, 1].
func FloatBufferTo16BitLE(buf pocket.AudioBuffer, dst []byte) []byte {
	for _, frame := range buf {
		for _, v := range frame {
			var uv int16
			if v < -1.0 {
				uv = -math.MaxInt16
			} else if v > 1.0 {
				uv = math.MaxInt16
			} else {
				uv = int16(v * math.MaxInt16)
			}
			dst = binary.LittleEndian.AppendUint16(dst, uint16(uv))
		}
	}
	return dst
}
