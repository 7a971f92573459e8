// Package monitor polls the published timing state on a wall-clock cadence
// and turns it into text for a display.
package monitor

import (
	"fmt"
	"math"
)

type (
	// Source is anything publishing a deviation and a position, typically
	// a *timing.State.
	Source interface {
		Deviation() float64
		Position() float64
	}

	// Readout is what a display shows. Early is set when the last note
	// rushed, Late when it dragged; both are empty when the note was within
	// the threshold of the grid.
	Readout struct {
		Early    string
		Late     string
		Position string

		DeviationMs float64
		PPQ         float64
		Playing     bool
	}
)

// DefaultThreshold hides deviations too small to be worth showing, in ms.
const DefaultThreshold = 0.001

// Format builds the readout for a deviation in ms and a position in quarter
// notes. A negative position means the transport is stopped.
func Format(deviationMs, ppq, threshold float64) Readout {
	r := Readout{DeviationMs: deviationMs, PPQ: ppq, Playing: ppq >= 0}
	switch {
	case deviationMs < -threshold:
		r.Early = fmt.Sprintf("%.1f ms", math.Abs(deviationMs))
	case deviationMs > threshold:
		r.Late = fmt.Sprintf("+ %.1f ms", deviationMs)
	}
	if r.Playing {
		r.Position = fmt.Sprintf("PPQ: %.3f", ppq)
	} else {
		r.Position = "Stopped"
	}
	return r
}

// SameText reports whether r and o look the same on a display.
func (r Readout) SameText(o Readout) bool {
	return r.Early == o.Early && r.Late == o.Late && r.Position == o.Position && r.Playing == o.Playing
}

// Sample reads both values from the source and formats them.
func Sample(src Source, threshold float64) Readout {
	return Format(src.Deviation(), src.Position(), threshold)
}
