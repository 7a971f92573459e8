package timing

import (
	"math"
	"sync/atomic"
)

// Float64 is a float64 that can be loaded and stored atomically. The value
// is kept as its IEEE-754 bit pattern in an atomic.Uint64. The zero value
// holds 0.
type Float64 struct {
	bits atomic.Uint64
}

func (f *Float64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *Float64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}
