package replay

import (
	"github.com/viterin/vek"
)

// Summary condenses the deviations of a report. Early and Late count the
// notes outside the tolerance of the report.
type Summary struct {
	Count   int
	Mean    float64
	MeanAbs float64
	Min     float64
	Max     float64
	Early   int
	Late    int
}

func (r *Report) Deviations() []float64 {
	ret := make([]float64, len(r.Notes))
	for i, n := range r.Notes {
		ret[i] = n.DeviationMs
	}
	return ret
}

func (r *Report) Summary() Summary {
	d := r.Deviations()
	if len(d) == 0 {
		return Summary{}
	}
	s := Summary{
		Count:   len(d),
		Mean:    vek.Mean(d),
		MeanAbs: vek.Mean(vek.Abs(d)),
		Min:     vek.Min(d),
		Max:     vek.Max(d),
	}
	tol := r.Tolerance()
	for _, v := range d {
		switch {
		case v < -tol:
			s.Early++
		case v > tol:
			s.Late++
		}
	}
	return s
}
