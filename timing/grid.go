package timing

import (
	"math"

	"github.com/pocketaudio/pocket"
)

// NearestGridLine returns the quarter note closest to pos. A position
// exactly halfway between two grid lines rounds up, towards +Inf, so 4.5
// snaps to 5 and -0.5 snaps to 0.
func NearestGridLine(pos float64) float64 {
	floor := math.Floor(pos)
	if pos-floor >= 0.5 {
		return floor + 1
	}
	return floor
}

// GridError returns pos minus its nearest grid line, in quarter notes. The
// result lies in [-0.5, 0.5). It is computed from the fractional part so
// that values just below a half never round across it.
func GridError(pos float64) float64 {
	frac := pos - math.Floor(pos)
	if frac >= 0.5 {
		return frac - 1
	}
	return frac
}

// Measure returns the deviation in milliseconds of a note-on arriving frame
// samples into a block that starts at transport t. ok is false when the
// transport is stopped, the tempo is not positive or the sample rate is
// unusable; no measurement can be made then.
func Measure(t pocket.Transport, sampleRate float64, frame int) (ms float64, ok bool) {
	if !t.Valid() || !t.TempoValid() || !validSampleRate(sampleRate) {
		return 0, false
	}
	return deviation(t, sampleRate, frame), true
}

func deviation(t pocket.Transport, sampleRate float64, frame int) float64 {
	seconds := float64(frame) / sampleRate
	pos := t.PPQ + seconds*(t.BPM/60)
	return GridError(pos) * (60000 / t.BPM)
}

func validSampleRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}
